// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package writer

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/gavinleroy/ts-rs/model"
)

// Status - итог записи одного артефакта.
type Status string

const (
	StatusWritten   Status = "written"
	StatusUnchanged Status = "unchanged"
)

// Result описывает записанный артефакт.
type Result struct {
	TypeName string
	Path     string // относительно export root
	Status   Status
}

// Writer раскладывает отрендеренные артефакты по файловой системе.
// Запись атомарна: содержимое пишется во временный файл рядом с целевым
// и переименовывается. Повторный запуск с тем же входом не трогает
// неизменившиеся файлы.
type Writer struct {
	log       *slog.Logger
	root      string
	overwrite bool
	claimed   map[string]claim // относительный путь -> кто и чем его занял
}

type claim struct {
	typeName string
	sum      string
}

func New(log *slog.Logger, root string, overwrite bool) *Writer {
	return &Writer{
		log:       log,
		root:      root,
		overwrite: overwrite,
		claimed:   make(map[string]claim),
	}
}

// Root возвращает корневую директорию экспорта.
func (w *Writer) Root() string {
	return w.root
}

// RelPath возвращает путь артефакта относительно export root.
// export_to переопределяет раскладку: путь с завершающим "/" задаёт
// директорию, иначе это полный относительный путь файла. Без
// переопределения артефакт кладётся в поддиректорию модуля.
func (w *Writer) RelPath(def *model.TypeDefinition) string {
	if override := def.Config.ExportTo; override != "" {
		if strings.HasSuffix(override, "/") {
			return path.Join(override, def.Name+".ts")
		}
		return path.Clean(override)
	}
	return path.Join(def.Module, def.Name+".ts")
}

// Write записывает артефакт типа def. Два типа, претендующие на один
// путь с разным содержимым, дают DuplicateNameConflict; существующий
// файл с другим содержимым - тоже, если перезапись не разрешена.
func (w *Writer) Write(def *model.TypeDefinition, content string) (Result, error) {

	rel := w.RelPath(def)
	result := Result{TypeName: def.Name, Path: rel}

	if strings.HasPrefix(rel, "..") || path.IsAbs(rel) {
		return result, errors.Errorf("writer: artifact path %q escapes export root", rel)
	}

	sum := contentSum(content)

	if prev, ok := w.claimed[rel]; ok {
		if prev.sum == sum {
			result.Status = StatusUnchanged
			return result, nil
		}
		return result, model.NewError(model.ErrDuplicateNameConflict, def.Name, "",
			"artifact path %q already claimed by %q with different content", rel, prev.typeName)
	}
	w.claimed[rel] = claim{typeName: def.Name, sum: sum}

	target := filepath.Join(w.root, filepath.FromSlash(rel))

	if existing, err := os.ReadFile(target); err == nil {
		if contentSum(string(existing)) == sum {
			w.log.Debug("artifact unchanged", "type", def.Name, "path", rel)
			result.Status = StatusUnchanged
			return result, nil
		}
		if !w.overwrite {
			return result, model.NewError(model.ErrDuplicateNameConflict, def.Name, "",
				"artifact %q already exists with different content", rel)
		}
	} else if !os.IsNotExist(err) {
		return result, errors.Wrapf(err, "writer: read existing artifact %q", rel)
	}

	if err := writeAtomic(target, content); err != nil {
		return result, errors.Wrapf(err, "writer: write artifact %q", rel)
	}

	w.log.Debug("artifact written", "type", def.Name, "path", rel)
	result.Status = StatusWritten
	return result, nil
}

func writeAtomic(target, content string) (err error) {

	if err = os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}

func contentSum(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
