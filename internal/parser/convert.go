// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package parser

import (
	"go/types"
	"strings"

	"github.com/pkg/errors"

	"github.com/gavinleroy/ts-rs/model"
)

// convert переводит go/types тип в сырое выражение. Семантика следует
// encoding/json: указатель - опциональность, срез байтов - строка base64,
// map - объект-словарь. Module-local именованные типы остаются ссылками
// и ставятся в очередь на сбор.
func (p *Parser) convert(typ types.Type) (model.TypeExpr, error) {
	switch t := typ.(type) {
	case *types.Basic:
		if t.Info()&types.IsUntyped != 0 || t.Kind() == types.Invalid {
			return model.TypeExpr{}, errors.Errorf("unsupported basic type %q", t.Name())
		}
		return model.TypeExpr{Name: t.Name()}, nil

	case *types.Pointer:
		elem, err := p.convert(t.Elem())
		if err != nil {
			return model.TypeExpr{}, err
		}
		return model.TypeExpr{Name: "Option", Args: []model.TypeExpr{elem}}, nil

	case *types.Slice:
		if isByte(t.Elem()) {
			return model.TypeExpr{Name: "string"}, nil
		}
		elem, err := p.convert(t.Elem())
		if err != nil {
			return model.TypeExpr{}, err
		}
		return model.TypeExpr{Name: "Vec", Args: []model.TypeExpr{elem}}, nil

	case *types.Array:
		if isByte(t.Elem()) {
			return model.TypeExpr{Name: "string"}, nil
		}
		elem, err := p.convert(t.Elem())
		if err != nil {
			return model.TypeExpr{}, err
		}
		return model.TypeExpr{Name: "Vec", Args: []model.TypeExpr{elem}}, nil

	case *types.Map:
		key, err := p.convert(t.Key())
		if err != nil {
			return model.TypeExpr{}, err
		}
		value, err := p.convert(t.Elem())
		if err != nil {
			return model.TypeExpr{}, err
		}
		return model.TypeExpr{Name: "HashMap", Args: []model.TypeExpr{key, value}}, nil

	case *types.TypeParam:
		return model.TypeExpr{Name: t.Obj().Name()}, nil

	case *types.Interface:
		if t.Empty() {
			return model.TypeExpr{Name: "any"}, nil
		}
		return model.TypeExpr{}, errors.New("non-empty interface types are not supported")

	case *types.Chan:
		return model.TypeExpr{Name: "chan"}, nil

	case *types.Signature:
		return model.TypeExpr{Name: "func"}, nil

	case *types.Struct:
		return model.TypeExpr{}, errors.New("anonymous struct types are not supported, declare a named type")

	case *types.Named:
		return p.convertNamed(t.Obj(), typeArgs(t))

	case *types.Alias:
		return p.convertNamed(t.Obj(), nil)

	default:
		return model.TypeExpr{}, errors.Errorf("unsupported type %s", typ.String())
	}
}

func (p *Parser) convertNamed(obj *types.TypeName, args []types.Type) (model.TypeExpr, error) {

	if obj.Pkg() == nil {
		// Универсальные объявления: error, comparable и подобные.
		if obj.Name() == "error" {
			return model.TypeExpr{Name: "string"}, nil
		}
		return model.TypeExpr{}, errors.Errorf("unsupported builtin type %q", obj.Name())
	}

	if spelled, ok := wellKnown(obj); ok {
		return model.TypeExpr{Name: spelled}, nil
	}

	if strings.HasPrefix(obj.Pkg().Path(), p.modulePath) {
		expr := model.TypeExpr{Name: obj.Name()}
		for _, arg := range args {
			converted, err := p.convert(arg)
			if err != nil {
				return model.TypeExpr{}, err
			}
			expr.Args = append(expr.Args, converted)
		}
		p.enqueue(obj)
		return expr, nil
	}

	// Внешний именованный тип разворачивается в свою структурную форму,
	// если она выразима; внешние структуры требуют локального определения.
	underlying := obj.Type().Underlying()
	if _, isStruct := underlying.(*types.Struct); isStruct {
		return model.TypeExpr{}, errors.Errorf(
			"external struct type %s.%s is not supported, wrap it in a local type", obj.Pkg().Path(), obj.Name())
	}
	return p.convert(underlying)
}

// wellKnown покрывает внешние типы с фиксированным JSON-представлением.
func wellKnown(obj *types.TypeName) (string, bool) {
	switch obj.Pkg().Path() + "." + obj.Name() {
	case "time.Time":
		return "string", true
	case "time.Duration":
		return "int64", true
	case "encoding/json.RawMessage":
		return "any", true
	case "math/big.Int":
		return "string", true
	case "net/netip.Addr", "net/url.URL":
		return "string", true
	default:
		return "", false
	}
}

func typeArgs(named *types.Named) []types.Type {
	list := named.TypeArgs()
	if list == nil {
		return nil
	}
	args := make([]types.Type, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		args = append(args, list.At(i))
	}
	return args
}

func isByte(typ types.Type) bool {
	basic, ok := typ.Underlying().(*types.Basic)
	return ok && basic.Kind() == types.Uint8
}
