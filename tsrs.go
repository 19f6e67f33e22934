// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.

// Package tsrs переводит определения типов в TypeScript-декларации.
//
// Типы регистрируются один раз (программно, из JSON-фида или Go-исходников)
// и экспортируются пакетно: движок обходит замыкание зависимостей и
// раскладывает по одному .ts файлу на тип.
package tsrs

import (
	"log/slog"

	"github.com/gavinleroy/ts-rs/export"
	"github.com/gavinleroy/ts-rs/internal/builder"
	"github.com/gavinleroy/ts-rs/model"
)

// Register регистрирует сырое определение типа в реестре процесса.
// Ссылки на ещё не зарегистрированные типы допустимы: определения строятся
// лениво, при экспорте.
func Register(raw model.RawType) error {
	return builder.Register(slog.New(slog.DiscardHandler), model.DefaultRegistry(), raw)
}

// MustRegister регистрирует определение и паникует при ошибке.
// Удобно для регистрации в init().
func MustRegister(raw model.RawType) {
	if err := Register(raw); err != nil {
		panic(err)
	}
}

// Export экспортирует все зарегистрированные типы в директорию root.
func Export(root string) (*export.Report, error) {
	return export.Export(export.Options{Root: root})
}

// ExportTypes экспортирует перечисленные корневые типы и их зависимости.
func ExportTypes(root string, types ...string) (*export.Report, error) {
	return export.Export(export.Options{Root: root, Types: types})
}
