// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package graph

import (
	"github.com/gavinleroy/ts-rs/model"
)

// Lookuper разрешает имя типа в определение. Обычно это model.Registry.
type Lookuper interface {
	Lookup(name string) (*model.TypeDefinition, error)
}

// reference - именованная ссылка вместе с местом, откуда она пришла.
// Место нужно для точного сообщения об неразрешённой ссылке.
type reference struct {
	ref  model.TypeRef
	site string
	// flatten помечает ссылку из flatten-поля: её цель обязана быть struct.
	flatten bool
}

// Walk выполняет обход достижимости по именованным ссылкам от корневых
// определений и возвращает множество эмиссии: каждое достижимое определение
// ровно один раз, в детерминированном порядке (корни в порядке вызова,
// затем зависимости в порядке первого обнаружения).
//
// Циклы допустимы и соответствуют рекурсивным типам: посещённые имена
// мемоизируются и повторно не обходятся, обход всегда завершается.
func Walk(lookup Lookuper, roots ...*model.TypeDefinition) ([]*model.TypeDefinition, error) {

	visited := make(map[string]bool)
	var emission []*model.TypeDefinition

	var visit func(def *model.TypeDefinition) error
	visit = func(def *model.TypeDefinition) error {
		if visited[def.Name] {
			return nil
		}
		visited[def.Name] = true
		emission = append(emission, def)

		for _, ref := range collect(def) {
			target, err := lookup.Lookup(ref.ref.Name)
			if err != nil {
				if model.IsKind(err, model.ErrUnresolvedTypeReference) {
					return model.NewError(model.ErrUnresolvedTypeReference, def.Name, ref.site,
						"referenced type %q is not registered", ref.ref.Name)
				}
				return err
			}
			if ref.flatten && target.Kind != model.KindStruct {
				return model.NewError(model.ErrInvalidAttributeTarget, def.Name, ref.site,
					"flattened type %q is not a struct", ref.ref.Name)
			}
			if len(ref.ref.Args) != len(target.Generics) {
				return model.NewError(model.ErrGenericArityMismatch, def.Name, ref.site,
					"%q takes %d type arguments, got %d", target.Name, len(target.Generics), len(ref.ref.Args))
			}
			if err = visit(target); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range roots {
		if err := visit(root); err != nil {
			return nil, err
		}
	}
	return emission, nil
}

// collect возвращает все именованные ссылки определения: из полей
// (включая вложенные в контейнеры и generic-аргументы), полезных нагрузок
// вариантов и цели алиаса. Пропущенные поля и варианты зависимостей не дают.
func collect(def *model.TypeDefinition) []reference {
	var refs []reference

	appendField := func(owner string, field model.Field) {
		if field.Config.Skip || field.Config.TypeOverride != "" {
			return
		}
		site := field.Name
		if owner != "" {
			site = owner + "." + field.Name
		}
		for _, named := range model.NamedRefs(field.Ref) {
			refs = append(refs, reference{
				ref:  named,
				site: site,
				// Признак относится только к ссылке верхнего уровня поля.
				flatten: field.Config.Flatten && named.Name == field.Ref.Name,
			})
		}
	}

	for _, field := range def.Fields {
		appendField("", field)
	}

	for _, variant := range def.Variants {
		if variant.Config.Skip {
			continue
		}
		for _, ref := range variant.TupleOf {
			for _, named := range model.NamedRefs(ref) {
				refs = append(refs, reference{ref: named, site: variant.Name})
			}
		}
		for _, field := range variant.Fields {
			appendField(variant.Name, field)
		}
	}

	if def.Alias != nil {
		for _, named := range model.NamedRefs(*def.Alias) {
			refs = append(refs, reference{ref: named, site: ""})
		}
	}

	return refs
}
