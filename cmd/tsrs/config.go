// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/gavinleroy/ts-rs/export"
)

const (
	configFile = "tsrs.toml"
	exportEnv  = "TS_EXPORT_DIR"
)

// fileConfig - проектная конфигурация из tsrs.toml.
type fileConfig struct {
	ExportDir string   `toml:"export_dir"`
	Feed      string   `toml:"feed"`
	Packages  []string `toml:"packages"`
	Types     []string `toml:"types"`
	Overwrite bool     `toml:"overwrite"`
}

// loadFileConfig читает tsrs.toml из корня проекта.
// Отсутствие файла не является ошибкой.
func loadFileConfig(projectRoot string) (fileConfig, error) {
	var cfg fileConfig
	path := filepath.Join(projectRoot, configFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "decode %s", configFile)
	}
	return cfg, nil
}

// resolveExportDir выбирает корень экспорта по приоритету:
// флаг, переменная окружения, tsrs.toml, умолчание.
func resolveExportDir(flagValue string, cfg fileConfig) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(exportEnv); env != "" {
		return env
	}
	if cfg.ExportDir != "" {
		return cfg.ExportDir
	}
	return export.DefaultRoot
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
