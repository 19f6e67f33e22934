// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package render

import (
	"strings"

	"github.com/gavinleroy/ts-rs/internal/attrs"
	"github.com/gavinleroy/ts-rs/internal/tsg"
	"github.com/gavinleroy/ts-rs/model"
)

// enumText рендерит тело enum-определения: объединение ветвей по одной
// на каждый непропущенный вариант, в объявленном порядке. Форма ветви
// задаётся стратегией тегирования. Пустое объединение - never.
func (r *renderer) enumText(def *model.TypeDefinition) (string, error) {

	bind := identityBinding(def.Generics)

	var branches []string
	for _, variant := range def.Variants {
		if variant.Config.Skip {
			continue
		}
		name := attrs.MemberName(variant.Name, variant.Config.Rename, def.Config.RenameAll)

		branch, err := r.variantBranch(def, variant, name, bind)
		if err != nil {
			return "", err
		}
		branches = append(branches, branch)
	}

	if len(branches) == 0 {
		return "never", nil
	}
	return strings.Join(branches, " | "), nil
}

func (r *renderer) variantBranch(def *model.TypeDefinition, variant model.Variant, name string, bind map[string]string) (string, error) {

	payload, err := r.payloadText(def, variant, bind)
	if err != nil {
		return "", err
	}

	switch def.Config.Tag.Kind {
	case model.TagExternal:
		// Unit-вариант внешнего тегирования - просто строка с именем.
		if variant.Payload == model.PayloadUnit {
			return tsg.Quote(name), nil
		}
		return "{ " + tsg.MemberName(name) + ": " + payload + " }", nil

	case model.TagInternal:
		tag := tsg.MemberName(def.Config.Tag.Tag) + ": " + tsg.Quote(name)
		if variant.Payload == model.PayloadUnit {
			return "{ " + tag + " }", nil
		}
		// Тег встраивается в объектную нагрузку первым членом.
		inner := strings.TrimSuffix(strings.TrimPrefix(payload, "{"), "}")
		inner = strings.TrimSpace(inner)
		if inner == "" {
			return "{ " + tag + " }", nil
		}
		return "{ " + tag + ", " + inner + " }", nil

	case model.TagAdjacent:
		tag := tsg.MemberName(def.Config.Tag.Tag) + ": " + tsg.Quote(name)
		if variant.Payload == model.PayloadUnit {
			return "{ " + tag + " }", nil
		}
		return "{ " + tag + ", " + tsg.MemberName(def.Config.Tag.Content) + ": " + payload + " }", nil

	case model.TagUntagged:
		if variant.Payload == model.PayloadUnit {
			return "null", nil
		}
		return payload, nil

	default:
		return "", model.NewError(model.ErrUnsupportedType, def.Name, variant.Name,
			"unknown tag strategy %q", def.Config.Tag.Kind)
	}
}

// payloadText рендерит полезную нагрузку варианта без учёта тегирования:
// одиночный tuple схлопывается до своего типа, struct-нагрузка даёт
// однострочный объектный тип.
func (r *renderer) payloadText(def *model.TypeDefinition, variant model.Variant, bind map[string]string) (string, error) {
	switch variant.Payload {
	case model.PayloadUnit:
		return "null", nil

	case model.PayloadTuple:
		elems := make([]string, 0, len(variant.TupleOf))
		for _, ref := range variant.TupleOf {
			text, err := r.typeRef(def.Name, ref, bind)
			if err != nil {
				return "", err
			}
			elems = append(elems, text)
		}
		if len(elems) == 1 {
			return elems[0], nil
		}
		return "[" + strings.Join(elems, ", ") + "]", nil

	case model.PayloadStruct:
		// Поля struct-вариантов именуются как объявлены: rename_all
		// enum-уровня переименовывает варианты, а не их поля.
		members, err := r.assembleMembers(def.Name+"."+variant.Name, variant.Fields, bind, "", map[string]bool{def.Name: true})
		if err != nil {
			return "", err
		}
		return objectText(members), nil

	default:
		return "", model.NewError(model.ErrUnsupportedType, def.Name, variant.Name,
			"unknown payload kind %q", variant.Payload)
	}
}
