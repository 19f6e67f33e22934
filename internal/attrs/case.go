// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package attrs

import (
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"

	"github.com/gavinleroy/ts-rs/model"
)

// ParseCaseConvention разбирает значение директивы rename_all.
func ParseCaseConvention(value string) (model.CaseConvention, error) {
	switch conv := model.CaseConvention(value); conv {
	case model.CaseLower, model.CaseUpper, model.CaseCamel, model.CaseSnake,
		model.CasePascal, model.CaseScreamingSnake, model.CaseKebab:
		return conv, nil
	default:
		return "", errors.Errorf("unknown case convention %q", value)
	}
}

// ApplyCase приводит имя к заданному соглашению.
func ApplyCase(name string, convention model.CaseConvention) (string, error) {
	switch convention {
	case model.CaseLower:
		return strings.ToLower(name), nil
	case model.CaseUpper:
		return strings.ToUpper(name), nil
	case model.CaseCamel:
		return strcase.ToLowerCamel(name), nil
	case model.CaseSnake:
		return strcase.ToSnake(name), nil
	case model.CasePascal:
		return strcase.ToCamel(name), nil
	case model.CaseScreamingSnake:
		return strcase.ToScreamingSnake(name), nil
	case model.CaseKebab:
		return strcase.ToKebab(name), nil
	case "":
		return name, nil
	default:
		return "", errors.Errorf("unknown case convention %q", convention)
	}
}
