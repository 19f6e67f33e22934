// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package export

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/gavinleroy/ts-rs/internal/graph"
	"github.com/gavinleroy/ts-rs/internal/render"
	"github.com/gavinleroy/ts-rs/internal/writer"
	"github.com/gavinleroy/ts-rs/model"
)

// DefaultRoot - корневая директория артефактов по умолчанию.
const DefaultRoot = "bindings"

// Options управляет пакетным экспортом.
type Options struct {
	// Registry - источник определений. nil означает реестр по умолчанию.
	Registry *model.Registry
	// Logger для диагностики. nil отключает логирование.
	Logger *slog.Logger
	// Root - корневая директория артефактов. Пустая строка - DefaultRoot.
	Root string
	// Overwrite разрешает перезапись существующих артефактов с другим
	// содержимым вместо конфликта.
	Overwrite bool
	// Types ограничивает экспорт перечисленными корневыми типами.
	// Пустой список экспортирует все зарегистрированные типы.
	Types []string
	// DryRun рендерит без записи на диск.
	DryRun bool
}

// Failure - отказ экспорта одного типа. Отказы изолированы: сбой одного
// типа не мешает остальным, кроме конфликта имён, валящего весь пакет.
type Failure struct {
	TypeName string
	Err      error
}

// Report - итог пакетного экспорта.
type Report struct {
	Results  []writer.Result
	Failures []Failure
	Rendered map[string]string // относительный путь -> содержимое
}

// Export рендерит замыкание достижимости от корневых типов и раскладывает
// артефакты по файловой системе. Работа двухфазная: сначала рендерится
// всё замыкание, затем успешно отрендеренные артефакты записываются.
func Export(opts Options) (*Report, error) {

	registry := opts.Registry
	if registry == nil {
		registry = model.DefaultRegistry()
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	root := opts.Root
	if root == "" {
		root = DefaultRoot
	}

	names := opts.Types
	if len(names) == 0 {
		names = registry.Names()
	}

	report := &Report{Rendered: make(map[string]string)}

	// Фаза замыкания: каждый корень обходится отдельно, чтобы сбой
	// одного не скрывал определения, достижимые из остальных.
	seen := make(map[string]bool)
	var closure []*model.TypeDefinition
	for _, name := range names {
		def, err := registry.Lookup(name)
		if err != nil {
			log.Warn("type failed to build", "type", name, "error", err)
			report.Failures = append(report.Failures, Failure{TypeName: name, Err: err})
			continue
		}
		emission, err := graph.Walk(registry, def)
		if err != nil {
			log.Warn("dependency walk failed", "type", name, "error", err)
			report.Failures = append(report.Failures, Failure{TypeName: name, Err: err})
			continue
		}
		for _, dep := range emission {
			if !seen[dep.Name] {
				seen[dep.Name] = true
				closure = append(closure, dep)
			}
		}
	}

	w := writer.New(log, root, opts.Overwrite)
	ctx := render.Context{
		Lookup: registry,
		PathOf: w.RelPath,
	}

	// Фаза рендеринга: всё замыкание рендерится до первой записи.
	type artifact struct {
		def     *model.TypeDefinition
		content string
	}
	var artifacts []artifact
	for _, def := range closure {
		content, err := render.Declaration(ctx, def)
		if err != nil {
			log.Warn("render failed", "type", def.Name, "error", err)
			report.Failures = append(report.Failures, Failure{TypeName: def.Name, Err: err})
			continue
		}
		artifacts = append(artifacts, artifact{def: def, content: content})
		report.Rendered[w.RelPath(def)] = content
	}

	if opts.DryRun {
		return report, nil
	}

	// Фаза записи: конфликт имён валит весь пакет.
	for _, art := range artifacts {
		result, err := w.Write(art.def, art.content)
		if err != nil {
			if model.IsKind(err, model.ErrDuplicateNameConflict) {
				return report, err
			}
			return report, errors.Wrapf(err, "export %q", art.def.Name)
		}
		report.Results = append(report.Results, result)
	}

	log.Info("export finished",
		"written", countStatus(report.Results, writer.StatusWritten),
		"unchanged", countStatus(report.Results, writer.StatusUnchanged),
		"failed", len(report.Failures))

	return report, nil
}

func countStatus(results []writer.Result, status writer.Status) (n int) {
	for _, result := range results {
		if result.Status == status {
			n++
		}
	}
	return
}
