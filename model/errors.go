// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package model

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind классифицирует ошибки генерации.
// Все ошибки обнаруживаются на этапе генерации, не при потреблении артефактов.
type ErrorKind string

const (
	// ErrUnsupportedType - конструкция источника не имеет представления в TypeScript.
	ErrUnsupportedType ErrorKind = "UnsupportedType"
	// ErrInvalidAttributeTarget - директива применена к несовместимой форме.
	ErrInvalidAttributeTarget ErrorKind = "InvalidAttributeTarget"
	// ErrGenericArityMismatch - число generic-аргументов не совпадает с объявлением.
	ErrGenericArityMismatch ErrorKind = "GenericArityMismatch"
	// ErrUnresolvedTypeReference - именованная ссылка не разрешается ни в одно определение.
	ErrUnresolvedTypeReference ErrorKind = "UnresolvedTypeReference"
	// ErrUnsupportedRecursiveType - рекурсия, которую целевой язык выразить не может
	// (например цикл через flatten).
	ErrUnsupportedRecursiveType ErrorKind = "UnsupportedRecursiveType"
	// ErrDuplicateNameConflict - разные типы схлопываются в одно имя артефакта.
	// Единственная ошибка, фатальная для всей партии.
	ErrDuplicateNameConflict ErrorKind = "DuplicateNameConflict"
)

// ExportError - ошибка генерации с привязкой к типу и месту.
type ExportError struct {
	Kind ErrorKind
	// TypeName - тип, генерация которого провалилась.
	TypeName string
	// Site - поле или вариант, вызвавший ошибку (пустое для ошибок уровня типа).
	Site   string
	Reason string
}

func (e *ExportError) Error() string {
	where := e.TypeName
	if e.Site != "" {
		where = e.TypeName + "." + e.Site
	}
	if where == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, where, e.Reason)
}

// NewError создаёт ExportError.
func NewError(kind ErrorKind, typeName, site, format string, args ...any) error {
	return &ExportError{
		Kind:     kind,
		TypeName: typeName,
		Site:     site,
		Reason:   fmt.Sprintf(format, args...),
	}
}

// IsKind сообщает, является ли err (или любая из обёрнутых ошибок)
// ExportError данного вида.
func IsKind(err error, kind ErrorKind) bool {
	var ee *ExportError
	if !errors.As(err, &ee) {
		return false
	}
	return ee.Kind == kind
}
