// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gavinleroy/ts-rs/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "tsrs",
	Short: "TypeScript declaration generator",
	Long:  `tsrs переводит определения типов проекта в TypeScript-декларации`,
}

func main() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger строит консольный логгер с уровнем по флагам команды.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		level = slog.LevelError
	}
	return logger.NewConsole(os.Stderr, level)
}
