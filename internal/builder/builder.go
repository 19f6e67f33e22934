// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package builder

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/gavinleroy/ts-rs/internal/attrs"
	"github.com/gavinleroy/ts-rs/internal/resolver"
	"github.com/gavinleroy/ts-rs/model"
)

// Build собирает из сырой формы и директив неизменяемое TypeDefinition.
// Порядок полей и вариантов сохраняется ровно как объявлен: детерминизм
// вывода опирается на этот порядок.
func Build(log *slog.Logger, raw model.RawType) (*model.TypeDefinition, error) {

	if raw.Name == "" {
		return nil, errors.New("builder: type without a name")
	}

	cfg, err := attrs.ParseTypeConfig(log, raw.Kind, raw.Name, raw.Directives)
	if err != nil {
		return nil, err
	}

	def := &model.TypeDefinition{
		Name:     raw.Name,
		Module:   raw.Module,
		Kind:     raw.Kind,
		Generics: raw.Generics,
		Config:   cfg,
		Docs:     raw.Docs,
	}

	switch raw.Kind {
	case model.KindStruct:
		def.Fields, err = buildFields(log, raw.Name, raw.Fields, raw.Generics)
		if err != nil {
			return nil, err
		}

	case model.KindTuple:
		if len(raw.Variants) != 0 || raw.AliasOf != nil {
			return nil, errors.Errorf("builder: tuple type %q with non-field content", raw.Name)
		}
		def.Fields, err = buildFields(log, raw.Name, raw.Fields, raw.Generics)
		if err != nil {
			return nil, err
		}

	case model.KindEnum:
		def.Variants, err = buildVariants(log, raw.Name, raw.Variants, raw.Generics)
		if err != nil {
			return nil, err
		}
		if err = validateTagStrategy(raw.Name, cfg.Tag, def.Variants); err != nil {
			return nil, err
		}

	case model.KindAlias:
		if raw.AliasOf == nil {
			return nil, errors.Errorf("builder: alias type %q without a target", raw.Name)
		}
		ref, refErr := resolver.Resolve(*raw.AliasOf, raw.Generics)
		if refErr != nil {
			return nil, site(refErr, raw.Name, "")
		}
		def.Alias = &ref

	default:
		return nil, errors.Errorf("builder: type %q has unknown kind %q", raw.Name, raw.Kind)
	}

	return def, nil
}

// Register строит ленивый builder для raw и регистрирует его в реестре.
func Register(log *slog.Logger, registry *model.Registry, raw model.RawType) error {
	return registry.Register(raw.Name, func() (*model.TypeDefinition, error) {
		return Build(log, raw)
	})
}

func buildFields(log *slog.Logger, typeName string, rawFields []model.RawField, scope []string) ([]model.Field, error) {

	fields := make([]model.Field, 0, len(rawFields))
	for _, rawField := range rawFields {
		cfg, err := attrs.ParseFieldConfig(log, typeName, rawField.Name, rawField.Directives)
		if err != nil {
			return nil, err
		}

		field := model.Field{
			Name:     rawField.Name,
			Optional: rawField.Optional || cfg.Optional,
			Config:   cfg,
			Docs:     rawField.Docs,
		}

		// Для пропущенных полей и полей с переопределённым типом ссылка
		// не разрешается: их зависимости в замыкание не входят.
		if !cfg.Skip && cfg.TypeOverride == "" {
			field.Ref, err = resolver.Resolve(rawField.Type, scope)
			if err != nil {
				return nil, site(err, typeName, rawField.Name)
			}
			if cfg.Flatten {
				if err = validateFlattenRef(typeName, rawField.Name, field.Ref); err != nil {
					return nil, err
				}
			}
		}

		fields = append(fields, field)
	}
	return fields, nil
}

func buildVariants(log *slog.Logger, typeName string, rawVariants []model.RawVariant, scope []string) ([]model.Variant, error) {

	variants := make([]model.Variant, 0, len(rawVariants))
	for _, rawVariant := range rawVariants {
		cfg, err := attrs.ParseVariantConfig(log, typeName, rawVariant.Name, rawVariant.Directives)
		if err != nil {
			return nil, err
		}
		if len(rawVariant.TupleOf) != 0 && len(rawVariant.Fields) != 0 {
			return nil, errors.Errorf("builder: variant %s.%s has both tuple and struct payload", typeName, rawVariant.Name)
		}

		variant := model.Variant{
			Name:   rawVariant.Name,
			Config: cfg,
		}

		switch {
		case len(rawVariant.TupleOf) != 0:
			variant.Payload = model.PayloadTuple
			for _, expr := range rawVariant.TupleOf {
				ref, refErr := resolver.Resolve(expr, scope)
				if refErr != nil {
					return nil, site(refErr, typeName, rawVariant.Name)
				}
				variant.TupleOf = append(variant.TupleOf, ref)
			}
		case len(rawVariant.Fields) != 0:
			variant.Payload = model.PayloadStruct
			variant.Fields, err = buildFields(log, typeName+"."+rawVariant.Name, rawVariant.Fields, scope)
			if err != nil {
				return nil, err
			}
		default:
			variant.Payload = model.PayloadUnit
		}

		variants = append(variants, variant)
	}
	return variants, nil
}

// validateTagStrategy проверяет совместимость стратегии с формами вариантов.
// Internal-тег встраивается в полезную нагрузку, поэтому нагрузка обязана
// быть объектной (struct) или отсутствовать.
func validateTagStrategy(typeName string, strategy model.TagStrategy, variants []model.Variant) error {
	if strategy.Kind != model.TagInternal {
		return nil
	}
	for _, variant := range variants {
		if variant.Config.Skip {
			continue
		}
		if variant.Payload == model.PayloadTuple {
			return model.NewError(model.ErrInvalidAttributeTarget, typeName, variant.Name,
				"internal tag requires struct-shaped or unit payload")
		}
	}
	return nil
}

// validateFlattenRef проверяет структурную часть ограничения flatten:
// допустимы только именованные ссылки и map-контейнеры. Что именованная
// ссылка указывает именно на struct, знает только обход графа.
func validateFlattenRef(typeName, fieldName string, ref model.TypeRef) error {
	switch {
	case ref.Kind == model.RefNamed:
		return nil
	case ref.Kind == model.RefContainer && ref.Container == model.ContainerMap:
		return nil
	default:
		return model.NewError(model.ErrInvalidAttributeTarget, typeName, fieldName,
			"flatten is only applicable to named struct types and maps")
	}
}

// site дополняет ExportError позицией, если она ещё не проставлена.
func site(err error, typeName, fieldName string) error {
	var ee *model.ExportError
	if errors.As(err, &ee) && ee.TypeName == "" {
		return model.NewError(ee.Kind, typeName, fieldName, "%s", ee.Reason)
	}
	return err
}
