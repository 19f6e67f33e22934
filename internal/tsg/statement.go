// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package tsg

import (
	"strings"
)

// Statement представляет фрагмент TypeScript кода (аналог jen.Code),
// ограниченный объявлениями типов.
type Statement struct {
	code   strings.Builder
	indent int
	export bool
}

// NewStatement создаёт новый statement.
func NewStatement() *Statement {
	return &Statement{}
}

// String возвращает строковое представление statement.
func (s *Statement) String() string {
	result := s.code.String()
	if s.export && result != "" && !strings.HasPrefix(strings.TrimSpace(result), "export ") {
		// export ставится перед первой строкой, не являющейся комментарием.
		lines := strings.Split(result, "\n")
		for i, line := range lines {
			trimmed := strings.TrimSpace(line)
			if trimmed != "" && !strings.HasPrefix(trimmed, "//") && !strings.HasPrefix(trimmed, "*") && !strings.HasPrefix(trimmed, "/*") {
				lines[i] = "export " + line
				break
			}
		}
		result = strings.Join(lines, "\n")
	}
	return result
}

// Export помечает statement как экспортируемый.
func (s *Statement) Export() *Statement {
	s.export = true
	return s
}

// Line добавляет перенос строки.
func (s *Statement) Line() *Statement {
	s.code.WriteString("\n")
	return s
}

// Raw добавляет произвольный TypeScript текст как есть.
func (s *Statement) Raw(code string) *Statement {
	s.code.WriteString(code)
	return s
}

// Comment добавляет однострочные комментарии.
func (s *Statement) Comment(text string) *Statement {
	for _, line := range strings.Split(text, "\n") {
		s.writeIndent()
		if line != "" {
			s.code.WriteString("// " + line)
		}
		s.code.WriteString("\n")
	}
	return s
}

// DocComment добавляет JSDoc блок из строк документации.
func (s *Statement) DocComment(lines []string) *Statement {
	if len(lines) == 0 {
		return s
	}
	s.writeIndent()
	s.code.WriteString("/**\n")
	for _, line := range lines {
		s.writeIndent()
		if strings.TrimSpace(line) == "" {
			s.code.WriteString(" *\n")
			continue
		}
		s.code.WriteString(" * " + strings.TrimRight(line, " \t") + "\n")
	}
	s.writeIndent()
	s.code.WriteString(" */\n")
	return s
}

// Interface создаёт объявление интерфейса.
func (s *Statement) Interface(name string) *Statement {
	s.writeIndent()
	s.code.WriteString("interface " + name)
	return s
}

// TypeAlias создаёт объявление type alias (type X = ...).
func (s *Statement) TypeAlias(name string) *Statement {
	s.writeIndent()
	s.code.WriteString("type " + name + " = ")
	return s
}

// Generic добавляет список generic-параметров.
func (s *Statement) Generic(params ...string) *Statement {
	if len(params) == 0 {
		return s
	}
	s.code.WriteString("<" + strings.Join(params, ", ") + ">")
	return s
}

// Semicolon добавляет ;.
func (s *Statement) Semicolon() *Statement {
	s.code.WriteString(";")
	return s
}

// Body создаёт блок членов интерфейса.
func (s *Statement) Body(fn func(*Members)) *Statement {
	s.code.WriteString(" {")
	s.code.WriteString("\n")
	s.indent++
	if fn != nil {
		fn(&Members{statement: s})
	}
	s.indent--
	s.writeIndent()
	s.code.WriteString("}")
	return s
}

func (s *Statement) writeIndent() {
	s.code.WriteString(strings.Repeat("    ", s.indent))
}

// Members представляет список членов интерфейса или объектного типа.
type Members struct {
	statement *Statement
}

// Field добавляет член "name: type," или "name?: type,".
func (m *Members) Field(name, typ string, optional bool) {
	m.statement.writeIndent()
	m.statement.code.WriteString(MemberName(name))
	if optional {
		m.statement.code.WriteString("?")
	}
	m.statement.code.WriteString(": " + typ + ",\n")
}

// Index добавляет индексную сигнатуру "[key: K]: V,".
func (m *Members) Index(key, value string) {
	m.statement.writeIndent()
	m.statement.code.WriteString("[key: " + key + "]: " + value + ",\n")
}

// Comment добавляет комментарий к членам.
func (m *Members) Comment(text string) {
	m.statement.Comment(text)
}

// DocComment добавляет JSDoc блок к члену.
func (m *Members) DocComment(lines []string) {
	m.statement.DocComment(lines)
}

// MemberName приводит произвольное имя к валидному имени члена TypeScript.
// Имена со спецсимволами или начинающиеся с цифры берутся в кавычки.
func MemberName(name string) string {
	valid := name != ""
	for i, r := range name {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				valid = false
			}
		default:
			valid = false
		}
	}
	if valid {
		return name
	}
	return Quote(name)
}

// Quote возвращает строковый литерал TypeScript.
func Quote(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	return `"` + escaped + `"`
}
