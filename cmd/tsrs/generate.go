// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package main

import (
	"log/slog"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/gavinleroy/ts-rs/export"
	"github.com/gavinleroy/ts-rs/internal/builder"
	"github.com/gavinleroy/ts-rs/internal/feed"
	"github.com/gavinleroy/ts-rs/internal/parser"
	"github.com/gavinleroy/ts-rs/model"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate TypeScript declarations",
	Long:  `generate сканирует проект (и/или JSON-фид) и раскладывает TypeScript-декларации по директории экспорта`,
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringP("project", "p", ".", "project root directory")
	generateCmd.Flags().StringSlice("package", nil, "package patterns to scan (default ./...)")
	generateCmd.Flags().StringP("feed", "f", "", "JSON feed with raw type definitions")
	generateCmd.Flags().StringP("out", "o", "", "export root directory")
	generateCmd.Flags().StringSliceP("types", "t", nil, "export only the listed root types")
	generateCmd.Flags().Bool("overwrite", false, "overwrite conflicting artifacts")
}

func runGenerate(cmd *cobra.Command, _ []string) error {

	log := newLogger(cmd)

	project, _ := cmd.Flags().GetString("project")
	cfg, err := loadFileConfig(project)
	if err != nil {
		return err
	}

	registry := model.NewRegistry()
	if err = populate(cmd, log, registry, project, cfg); err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	types, _ := cmd.Flags().GetStringSlice("types")
	if len(types) == 0 {
		types = cfg.Types
	}
	overwrite, _ := cmd.Flags().GetBool("overwrite")

	report, err := export.Export(export.Options{
		Registry:  registry,
		Logger:    log,
		Root:      resolveExportDir(out, cfg),
		Overwrite: overwrite || cfg.Overwrite,
		Types:     types,
	})
	if err != nil {
		return err
	}

	printSummary(report)
	if len(report.Failures) != 0 {
		return errors.Errorf("%d of %d types failed to export", len(report.Failures), len(report.Failures)+len(report.Results))
	}
	return nil
}

// populate наполняет реестр из JSON-фида и/или Go-исходников проекта.
// Без явного фида сканируются Go-пакеты; заданный фид отключает
// сканирование, если пакеты не запрошены явно.
func populate(cmd *cobra.Command, log *slog.Logger, registry *model.Registry, project string, cfg fileConfig) error {

	feedPath, _ := cmd.Flags().GetString("feed")
	feedPath = firstNonEmpty(feedPath, cfg.Feed)

	patterns, _ := cmd.Flags().GetStringSlice("package")
	if len(patterns) == 0 {
		patterns = cfg.Packages
	}

	if feedPath != "" {
		doc, err := feed.Load(feedPath)
		if err != nil {
			return err
		}
		if err = feed.Register(log, registry, doc); err != nil {
			return err
		}
	}

	if feedPath == "" || len(patterns) != 0 {
		raws, err := parser.Scan(log, project, patterns...)
		if err != nil {
			return err
		}
		for _, raw := range raws {
			if err = builder.Register(log, registry, raw); err != nil {
				return err
			}
		}
	}
	return nil
}

func printSummary(report *export.Report) {

	table := tablewriter.NewTable(os.Stdout)
	table.Header("Type", "Artifact", "Status")
	for _, result := range report.Results {
		_ = table.Append([]string{result.TypeName, result.Path, string(result.Status)})
	}
	for _, failure := range report.Failures {
		_ = table.Append([]string{failure.TypeName, "-", "failed: " + failure.Err.Error()})
	}
	_ = table.Render()
}
