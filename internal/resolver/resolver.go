// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package resolver

import (
	"slices"

	"github.com/gavinleroy/ts-rs/model"
)

// Таблица примитивов: имя конструктора источника -> примитив TypeScript.
// Источник может отдавать имена в Rust-нотации (фид, программная регистрация)
// или в Go-нотации (фронтенд go/types), таблица покрывает оба словаря.
var primitives = map[string]model.Primitive{
	// 8/16/32-битные целые и числа с плавающей точкой.
	"i8": model.PrimNumber, "i16": model.PrimNumber, "i32": model.PrimNumber,
	"u8": model.PrimNumber, "u16": model.PrimNumber, "u32": model.PrimNumber,
	"f32": model.PrimNumber, "f64": model.PrimNumber,
	"isize": model.PrimNumber, "usize": model.PrimNumber,
	"int8": model.PrimNumber, "int16": model.PrimNumber, "int32": model.PrimNumber,
	"uint8": model.PrimNumber, "uint16": model.PrimNumber, "uint32": model.PrimNumber,
	"int": model.PrimNumber, "uint": model.PrimNumber,
	"float32": model.PrimNumber, "float64": model.PrimNumber,
	"byte": model.PrimNumber, "rune": model.PrimNumber,

	// 64/128-битные целые не помещаются в number без потерь.
	"i64": model.PrimBigInt, "u64": model.PrimBigInt,
	"i128": model.PrimBigInt, "u128": model.PrimBigInt,
	"int64": model.PrimBigInt, "uint64": model.PrimBigInt,

	"bool": model.PrimBoolean,

	"String": model.PrimString, "str": model.PrimString, "char": model.PrimString,
	"string": model.PrimString,

	"any": model.PrimUnknown,
}

// Контейнеры с одним элементом, дающие nullable-представление.
var optionalNames = []string{"Option"}

// Контейнеры-последовательности: порядок/уникальность элементов
// в объявлении типа неразличимы, всё отображается в массив.
var listNames = []string{"Vec", "VecDeque", "HashSet", "BTreeSet", "BinaryHeap"}

// Map-подобные контейнеры.
var mapNames = []string{"HashMap", "BTreeMap", "Record"}

// Прозрачные обёртки: представление совпадает с представлением аргумента.
var transparentNames = []string{"Box", "Arc", "Rc", "Cell", "RefCell", "Mutex", "RwLock", "Weak", "Cow"}

// Конструкции без представления в TypeScript.
var unsupportedNames = []string{"fn", "func", "chan", "union", "*const", "*mut", "unsafe"}

// Resolve отображает сырое объявление типа в TypeRef в области видимости
// generic-параметров scope. Неизвестные имена становятся форвардными
// именованными ссылками; их существование проверяет обход графа зависимостей.
func Resolve(expr model.TypeExpr, scope []string) (model.TypeRef, error) {

	if expr.IsTuple() {
		if len(expr.Tuple) == 0 {
			// Unit-тип.
			return model.TypeRef{Kind: model.RefPrimitive, Primitive: model.PrimNull}, nil
		}
		elems, err := resolveAll(expr.Tuple, scope)
		if err != nil {
			return model.TypeRef{}, err
		}
		return model.TypeRef{Kind: model.RefContainer, Container: model.ContainerTuple, Elems: elems}, nil
	}

	if slices.Contains(unsupportedNames, expr.Name) {
		return model.TypeRef{}, model.NewError(model.ErrUnsupportedType, "", "",
			"construct %q has no TypeScript representation", expr.Name)
	}

	if prim, ok := primitives[expr.Name]; ok {
		if len(expr.Args) != 0 {
			return model.TypeRef{}, model.NewError(model.ErrUnsupportedType, "", "",
				"primitive %q does not take type arguments", expr.Name)
		}
		return model.TypeRef{Kind: model.RefPrimitive, Primitive: prim}, nil
	}

	switch {
	case slices.Contains(optionalNames, expr.Name):
		elem, err := resolveSingle(expr, scope)
		if err != nil {
			return model.TypeRef{}, err
		}
		return model.TypeRef{Kind: model.RefContainer, Container: model.ContainerOptional, Elems: []model.TypeRef{elem}}, nil

	case slices.Contains(listNames, expr.Name):
		elem, err := resolveSingle(expr, scope)
		if err != nil {
			return model.TypeRef{}, err
		}
		return model.TypeRef{Kind: model.RefContainer, Container: model.ContainerList, Elems: []model.TypeRef{elem}}, nil

	case slices.Contains(mapNames, expr.Name):
		if len(expr.Args) != 2 {
			return model.TypeRef{}, model.NewError(model.ErrUnsupportedType, "", "",
				"%s expects 2 type arguments, got %d", expr.Name, len(expr.Args))
		}
		elems, err := resolveAll(expr.Args, scope)
		if err != nil {
			return model.TypeRef{}, err
		}
		if !validMapKey(elems[0]) {
			return model.TypeRef{}, model.NewError(model.ErrUnsupportedType, "", "",
				"%s key must render to string or number", expr.Name)
		}
		return model.TypeRef{Kind: model.RefContainer, Container: model.ContainerMap, Elems: elems}, nil

	case slices.Contains(transparentNames, expr.Name):
		return resolveSingle(expr, scope)
	}

	// Голый идентификатор из области generic-параметров.
	if slices.Contains(scope, expr.Name) {
		if len(expr.Args) != 0 {
			return model.TypeRef{}, model.NewError(model.ErrUnsupportedType, "", "",
				"generic parameter %q cannot take type arguments", expr.Name)
		}
		return model.TypeRef{Kind: model.RefGenericParam, Name: expr.Name}, nil
	}

	// Именованный тип, возможно форвардная ссылка.
	args, err := resolveAll(expr.Args, scope)
	if err != nil {
		return model.TypeRef{}, err
	}
	return model.TypeRef{Kind: model.RefNamed, Name: expr.Name, Args: args}, nil
}

func resolveSingle(expr model.TypeExpr, scope []string) (model.TypeRef, error) {
	if len(expr.Args) != 1 {
		return model.TypeRef{}, model.NewError(model.ErrUnsupportedType, "", "",
			"%s expects 1 type argument, got %d", expr.Name, len(expr.Args))
	}
	return Resolve(expr.Args[0], scope)
}

func resolveAll(exprs []model.TypeExpr, scope []string) ([]model.TypeRef, error) {
	if len(exprs) == 0 {
		return nil, nil
	}
	refs := make([]model.TypeRef, 0, len(exprs))
	for _, expr := range exprs {
		ref, err := Resolve(expr, scope)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// validMapKey проверяет, что ключ map представим индексной сигнатурой.
// Именованные типы и generic-параметры пропускаются: их представление
// известно только после разрешения, это проверит рендер.
func validMapKey(ref model.TypeRef) bool {
	switch ref.Kind {
	case model.RefPrimitive:
		return ref.Primitive == model.PrimString || ref.Primitive == model.PrimNumber || ref.Primitive == model.PrimBigInt
	case model.RefNamed, model.RefGenericParam:
		return true
	default:
		return false
	}
}
