// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package main

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/gavinleroy/ts-rs/export"
	"github.com/gavinleroy/ts-rs/model"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that generated declarations are up to date",
	Long:  `check рендерит декларации без записи и сравнивает их с содержимым директории экспорта; расхождение - ненулевой код выхода`,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringP("project", "p", ".", "project root directory")
	checkCmd.Flags().StringSlice("package", nil, "package patterns to scan (default ./...)")
	checkCmd.Flags().StringP("feed", "f", "", "JSON feed with raw type definitions")
	checkCmd.Flags().StringP("out", "o", "", "export root directory")
	checkCmd.Flags().StringSliceP("types", "t", nil, "check only the listed root types")
}

func runCheck(cmd *cobra.Command, _ []string) error {

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
	root := resolveExportDir(out, cfg)

	report, err := export.Export(export.Options{
		Registry: registry,
		Logger:   log,
		Root:     root,
		Types:    types,
		DryRun:   true,
	})
	if err != nil {
		return err
	}
	for _, failure := range report.Failures {
		log.Error("type failed to render", "type", failure.TypeName, "error", failure.Err)
	}

	var stale []string
	for rel, content := range report.Rendered {
		existing, readErr := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if readErr != nil || string(existing) != content {
			stale = append(stale, rel)
		}
	}
	sort.Strings(stale)
	for _, rel := range stale {
		log.Warn("artifact is missing or out of date", "path", rel)
	}

	if len(stale) != 0 || len(report.Failures) != 0 {
		return errors.Errorf("declarations are out of date: %d stale, %d failed", len(stale), len(report.Failures))
	}
	log.Info("declarations are up to date", "artifacts", len(report.Rendered))
	return nil
}
