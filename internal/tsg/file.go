// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package tsg

import (
	"sort"
	"strings"
)

// File представляет TypeScript файл для генерации (аналог jen.File).
type File struct {
	imports    map[string]importInfo
	statements []*Statement
	comment    string
}

type importInfo struct {
	path      string
	named     []string
	namedType []string // type-only импорты
}

// NewFile создаёт новый TypeScript файл.
func NewFile() *File {
	return &File{
		imports:    make(map[string]importInfo),
		statements: make([]*Statement, 0),
	}
}

// Comment устанавливает комментарий в начале файла.
func (f *File) Comment(comment string) *File {
	f.comment = comment
	return f
}

// ImportNamed добавляет именованный импорт.
func (f *File) ImportNamed(path string, names ...string) *File {
	info := f.imports[path]
	info.path = path
	info.named = append(info.named, names...)
	f.imports[path] = info
	return f
}

// ImportType добавляет type-only именованный импорт.
func (f *File) ImportType(path string, names ...string) *File {
	info := f.imports[path]
	info.path = path
	info.namedType = append(info.namedType, names...)
	f.imports[path] = info
	return f
}

// Add добавляет statement в файл.
func (f *File) Add(stmt *Statement) *File {
	if stmt != nil {
		f.statements = append(f.statements, stmt)
	}
	return f
}

// Line добавляет пустую строку.
func (f *File) Line() *File {
	f.statements = append(f.statements, NewStatement().Line())
	return f
}

// String возвращает строковое представление файла: комментарий,
// импорты в отсортированном по пути порядке, затем statements.
func (f *File) String() string {
	var buf strings.Builder

	if f.comment != "" {
		buf.WriteString(f.comment)
	}

	paths := make([]string, 0, len(f.imports))
	for path := range f.imports {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		info := f.imports[path]

		var names []string
		names = append(names, info.named...)
		for _, name := range info.namedType {
			names = append(names, "type "+name)
		}
		if len(names) == 0 {
			continue
		}
		sort.Strings(names)
		buf.WriteString("import { " + strings.Join(names, ", ") + " } from '" + path + "';\n")
	}
	if len(paths) > 0 {
		buf.WriteString("\n")
	}

	for _, stmt := range f.statements {
		buf.WriteString(stmt.String())
	}

	return buf.String()
}
