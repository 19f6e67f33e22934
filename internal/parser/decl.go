// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package parser

import (
	"go/ast"
	"reflect"
	"strings"
)

const directivePrefix = "ts:"

// parseDoc разбирает doc-комментарий объявления типа: строки с префиксом
// "ts:" дают директивы (маркер export среди них), остальные - документацию.
//
//	// Пользователь сервиса.
//	// ts:export
//	// ts:rename_all=camelCase
func parseDoc(doc *ast.CommentGroup) (directives []string, docs []string, exported bool) {
	// CommentGroup.Text() вырезает directive-комментарии вида "//ts:...",
	// поэтому строки собираются вручную.
	for _, line := range commentLines(doc) {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, directivePrefix) {
			docs = append(docs, line)
			continue
		}
		for _, directive := range strings.Split(strings.TrimPrefix(trimmed, directivePrefix), ",") {
			directive = strings.TrimSpace(directive)
			switch {
			case directive == "":
			case directive == "export":
				exported = true
			default:
				directives = append(directives, directive)
			}
		}
	}
	// Полностью директивный комментарий не даёт документации.
	if allBlank(docs) {
		docs = nil
	}
	return directives, docs, exported
}

// parseFieldTag разбирает тег поля. Тег json задаёт сериализуемое имя и
// опциональность так же, как их видит encoding/json; тег ts добавляет
// директивы поверх и выигрывает при пересечении.
func parseFieldTag(tag *ast.BasicLit) (directives []string, optional, skip bool) {
	if tag == nil {
		return nil, false, false
	}
	structTag := reflect.StructTag(strings.Trim(tag.Value, "`"))

	if jsonTag, ok := structTag.Lookup("json"); ok {
		name, opts, _ := strings.Cut(jsonTag, ",")
		switch name {
		case "-":
			return []string{"skip"}, false, true
		case "":
		default:
			directives = append(directives, "rename="+name)
		}
		for _, opt := range strings.Split(opts, ",") {
			if opt == "omitempty" {
				optional = true
			}
		}
	}

	if tsTag, ok := structTag.Lookup("ts"); ok {
		for _, directive := range strings.Split(tsTag, ",") {
			directive = strings.TrimSpace(directive)
			switch directive {
			case "":
			case "skip":
				skip = true
				directives = append(directives, directive)
			case "optional":
				optional = true
				directives = append(directives, directive)
			default:
				directives = append(directives, directive)
			}
		}
	}

	return directives, optional, skip
}

func docLines(doc *ast.CommentGroup) []string {
	lines := commentLines(doc)
	if allBlank(lines) {
		return nil
	}
	return lines
}

// commentLines возвращает строки группы комментариев без маркеров // и /*.
func commentLines(doc *ast.CommentGroup) (lines []string) {
	if doc == nil {
		return nil
	}
	for _, comment := range doc.List {
		text := comment.Text
		switch {
		case strings.HasPrefix(text, "//"):
			lines = append(lines, strings.TrimPrefix(strings.TrimPrefix(text, "//"), " "))
		case strings.HasPrefix(text, "/*"):
			text = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
			for _, line := range strings.Split(text, "\n") {
				lines = append(lines, strings.TrimSpace(line))
			}
		}
	}
	return lines
}

func allBlank(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}
