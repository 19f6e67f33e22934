// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package attrs

import (
	"log/slog"
	"strings"

	"github.com/gavinleroy/ts-rs/model"
)

// Директивы экспорта. Host отдаёт их плоским списком строк вида
// "key" или "key=value", по одной директиве на элемент.
const (
	dirRename    = "rename"
	dirRenameAll = "rename_all"
	dirSkip      = "skip"
	dirFlatten   = "flatten"
	dirOptional  = "optional"
	dirTag       = "tag"
	dirContent   = "content"
	dirUntagged  = "untagged"
	dirExportTo  = "export_to"
	dirType      = "type"
	dirExport    = "export" // маркер экспорта, самим конфигом не является
)

// ParseTypeConfig нормализует директивы уровня типа в ExportConfig.
// Директивы представления enum (tag, content, untagged) валидны только
// на enum; на любой другой форме это InvalidAttributeTarget.
func ParseTypeConfig(log *slog.Logger, kind model.DefKind, typeName string, directives []string) (cfg model.ExportConfig, err error) {

	cfg.Tag = model.TagStrategy{Kind: model.TagExternal}

	var hasTag, hasContent, hasUntagged bool
	for _, directive := range directives {
		key, value := splitDirective(directive)
		switch key {
		case dirExport:
			// Маркер обрабатывает host, здесь игнорируем.
		case dirRename:
			if value == "" {
				return cfg, model.NewError(model.ErrInvalidAttributeTarget, typeName, "", "rename requires a value")
			}
			cfg.Rename = value
		case dirRenameAll:
			conv, convErr := ParseCaseConvention(value)
			if convErr != nil {
				return cfg, model.NewError(model.ErrInvalidAttributeTarget, typeName, "", "%v", convErr)
			}
			if kind == model.KindTuple || kind == model.KindAlias {
				return cfg, model.NewError(model.ErrInvalidAttributeTarget, typeName, "", "rename_all is not applicable to %s types", kind)
			}
			cfg.RenameAll = conv
		case dirTag:
			if kind != model.KindEnum {
				return cfg, model.NewError(model.ErrInvalidAttributeTarget, typeName, "", "tag is only applicable to enums, not to %s types", kind)
			}
			if value == "" {
				return cfg, model.NewError(model.ErrInvalidAttributeTarget, typeName, "", "tag requires a field name")
			}
			hasTag = true
			cfg.Tag.Tag = value
		case dirContent:
			if kind != model.KindEnum {
				return cfg, model.NewError(model.ErrInvalidAttributeTarget, typeName, "", "content is only applicable to enums, not to %s types", kind)
			}
			if value == "" {
				return cfg, model.NewError(model.ErrInvalidAttributeTarget, typeName, "", "content requires a field name")
			}
			hasContent = true
			cfg.Tag.Content = value
		case dirUntagged:
			if kind != model.KindEnum {
				return cfg, model.NewError(model.ErrInvalidAttributeTarget, typeName, "", "untagged is only applicable to enums, not to %s types", kind)
			}
			hasUntagged = true
		case dirExportTo:
			if value == "" {
				return cfg, model.NewError(model.ErrInvalidAttributeTarget, typeName, "", "export_to requires a path")
			}
			cfg.ExportTo = value
		default:
			return cfg, model.NewError(model.ErrInvalidAttributeTarget, typeName, "", "unknown directive %q", key)
		}
	}

	switch {
	case hasUntagged && (hasTag || hasContent):
		return cfg, model.NewError(model.ErrInvalidAttributeTarget, typeName, "", "untagged conflicts with tag/content")
	case hasContent && !hasTag:
		return cfg, model.NewError(model.ErrInvalidAttributeTarget, typeName, "", "content requires tag")
	case hasUntagged:
		cfg.Tag = model.TagStrategy{Kind: model.TagUntagged}
	case hasTag && hasContent:
		cfg.Tag.Kind = model.TagAdjacent
	case hasTag:
		cfg.Tag.Kind = model.TagInternal
	}

	return cfg, nil
}

// ParseFieldConfig нормализует директивы уровня поля.
// Конфликтующие директивы (skip вместе с rename/flatten/type) принимаются,
// skip доминирует, но выдаётся предупреждение.
func ParseFieldConfig(log *slog.Logger, typeName, fieldName string, directives []string) (cfg model.FieldConfig, err error) {

	for _, directive := range directives {
		key, value := splitDirective(directive)
		switch key {
		case dirRename:
			if value == "" {
				return cfg, model.NewError(model.ErrInvalidAttributeTarget, typeName, fieldName, "rename requires a value")
			}
			cfg.Rename = value
		case dirSkip:
			cfg.Skip = true
		case dirFlatten:
			cfg.Flatten = true
		case dirOptional:
			cfg.Optional = true
		case dirType:
			if value == "" {
				return cfg, model.NewError(model.ErrInvalidAttributeTarget, typeName, fieldName, "type requires a value")
			}
			cfg.TypeOverride = value
		default:
			return cfg, model.NewError(model.ErrInvalidAttributeTarget, typeName, fieldName, "unknown directive %q", key)
		}
	}

	if cfg.Flatten && cfg.Optional {
		return cfg, model.NewError(model.ErrInvalidAttributeTarget, typeName, fieldName, "flatten is not applicable to optional fields")
	}
	if cfg.Flatten && cfg.TypeOverride != "" {
		return cfg, model.NewError(model.ErrInvalidAttributeTarget, typeName, fieldName, "flatten conflicts with type override")
	}
	if cfg.Skip && (cfg.Rename != "" || cfg.Flatten || cfg.TypeOverride != "") {
		if log != nil {
			log.Warn("skip dominates other field directives",
				"type", typeName,
				"field", fieldName)
		}
		cfg = model.FieldConfig{Skip: true}
	}

	return cfg, nil
}

// ParseVariantConfig нормализует директивы уровня варианта enum.
func ParseVariantConfig(log *slog.Logger, typeName, variantName string, directives []string) (cfg model.VariantConfig, err error) {

	for _, directive := range directives {
		key, value := splitDirective(directive)
		switch key {
		case dirRename:
			if value == "" {
				return cfg, model.NewError(model.ErrInvalidAttributeTarget, typeName, variantName, "rename requires a value")
			}
			cfg.Rename = value
		case dirSkip:
			cfg.Skip = true
		default:
			return cfg, model.NewError(model.ErrInvalidAttributeTarget, typeName, variantName, "unknown directive %q", key)
		}
	}

	if cfg.Skip && cfg.Rename != "" {
		if log != nil {
			log.Warn("skip dominates rename on variant",
				"type", typeName,
				"variant", variantName)
		}
		cfg = model.VariantConfig{Skip: true}
	}

	return cfg, nil
}

// MemberName применяет к имени поля или варианта rename и rename_all.
// Явный rename всегда сильнее соглашения rename_all контейнера.
func MemberName(declared, rename string, convention model.CaseConvention) string {
	if rename != "" {
		return rename
	}
	if convention == "" {
		return declared
	}
	converted, err := ApplyCase(declared, convention)
	if err != nil {
		// Соглашение валидируется при разборе директив, сюда не попадает.
		return declared
	}
	return converted
}

func splitDirective(directive string) (key, value string) {
	key, value, _ = strings.Cut(directive, "=")
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	// Значения в кавычках допустимы: rename="some name".
	value = strings.Trim(value, `"`)
	return key, value
}
