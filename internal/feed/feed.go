// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package feed

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/gavinleroy/ts-rs/internal/builder"
	"github.com/gavinleroy/ts-rs/model"
)

// Document - JSON-фид с сырыми определениями типов. Фид позволяет
// скармливать движку определения, полученные вне Go-кода.
type Document struct {
	Types []model.RawType `json:"types"`
}

// Decode читает фид из r и валидирует его поверхностно: известные kind,
// непустые имена, отсутствие дубликатов внутри документа.
func Decode(r io.Reader) (*Document, error) {

	var doc Document
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "feed: decode")
	}

	seen := make(map[string]bool, len(doc.Types))
	for _, raw := range doc.Types {
		if raw.Name == "" {
			return nil, errors.New("feed: type without a name")
		}
		switch raw.Kind {
		case model.KindStruct, model.KindEnum, model.KindAlias, model.KindTuple:
		default:
			return nil, errors.Errorf("feed: type %q has unknown kind %q", raw.Name, raw.Kind)
		}
		if seen[raw.Name] {
			return nil, model.NewError(model.ErrDuplicateNameConflict, raw.Name, "",
				"type %q declared more than once in feed", raw.Name)
		}
		seen[raw.Name] = true
	}
	return &doc, nil
}

// Load читает фид из файла.
func Load(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "feed: open %q", path)
	}
	defer func() { _ = file.Close() }()
	return Decode(file)
}

// Register регистрирует все типы документа в реестре.
func Register(log *slog.Logger, registry *model.Registry, doc *Document) error {
	for _, raw := range doc.Types {
		if err := builder.Register(log, registry, raw); err != nil {
			return err
		}
		log.Debug("type registered from feed", "type", raw.Name, "kind", string(raw.Kind))
	}
	return nil
}
