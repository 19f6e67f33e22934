// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package model

// TypeExpr - сырое объявление типа, как его отдаёт host (фронтенд Go-кода,
// JSON-фид или программная регистрация). Дерево: имя конструктора плюс
// аргументы, либо кортеж.
type TypeExpr struct {
	Name string     `json:"name,omitempty"`
	Args []TypeExpr `json:"args,omitempty"`

	// Tuple заполнен для кортежных выражений, Name при этом пустое.
	// Пустой кортеж - unit-тип.
	Tuple []TypeExpr `json:"tuple,omitempty"`
}

// IsTuple сообщает, является ли выражение кортежным.
// Пустое выражение (без имени и элементов) считается unit-кортежем.
func (e TypeExpr) IsTuple() bool {
	return e.Name == ""
}

// RawField представляет поле сырого определения.
type RawField struct {
	Name       string   `json:"name"`
	Type       TypeExpr `json:"type"`
	Optional   bool     `json:"optional,omitempty"`
	Directives []string `json:"directives,omitempty"`
	Docs       []string `json:"docs,omitempty"`
}

// RawVariant представляет вариант сырого enum-определения.
// Заполнено не более одного из TupleOf и Fields; оба пустые - unit-вариант.
type RawVariant struct {
	Name       string     `json:"name"`
	TupleOf    []TypeExpr `json:"tupleOf,omitempty"`
	Fields     []RawField `json:"fields,omitempty"`
	Directives []string   `json:"directives,omitempty"`
}

// RawType - сырое определение типа с плоским списком директив.
// Builder превращает его в TypeDefinition.
type RawType struct {
	Name       string       `json:"name"`
	Module     string       `json:"module,omitempty"`
	Kind       DefKind      `json:"kind"`
	Generics   []string     `json:"generics,omitempty"`
	Fields     []RawField   `json:"fields,omitempty"`
	Variants   []RawVariant `json:"variants,omitempty"`
	AliasOf    *TypeExpr    `json:"aliasOf,omitempty"`
	Directives []string     `json:"directives,omitempty"`
	Docs       []string     `json:"docs,omitempty"`
}
