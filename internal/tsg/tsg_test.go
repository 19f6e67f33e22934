// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package tsg

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFileImportsSortedAndDeduplicated(t *testing.T) {

	file := NewFile().
		ImportType("./b/Role", "Role").
		ImportType("./a/User", "User").
		ImportNamed("./a/User", "parseUser")
	file.Add(NewStatement().Raw("type X = User;").Line())

	want := "import { parseUser, type User } from './a/User';\n" +
		"import { type Role } from './b/Role';\n" +
		"\n" +
		"type X = User;\n"
	if diff := cmp.Diff(want, file.String()); diff != "" {
		t.Errorf("File.String() mismatch (-want +got):\n%s", diff)
	}
}

func TestStatementInterface(t *testing.T) {

	stmt := NewStatement().Export().Interface("User").Generic("T").Body(func(m *Members) {
		m.Field("id", "number", false)
		m.Field("value", "T", true)
		m.Field("full name", "string", false)
	})
	stmt.Line()

	want := "export interface User<T> {\n" +
		"    id: number,\n" +
		"    value?: T,\n" +
		"    \"full name\": string,\n" +
		"}\n"
	if diff := cmp.Diff(want, stmt.String()); diff != "" {
		t.Errorf("Statement.String() mismatch (-want +got):\n%s", diff)
	}
}

func TestStatementExportAfterDocComment(t *testing.T) {

	stmt := NewStatement().Export()
	stmt.DocComment([]string{"Doc line."})
	stmt.TypeAlias("Id").Raw("number").Semicolon().Line()

	want := "/**\n * Doc line.\n */\nexport type Id = number;\n"
	if diff := cmp.Diff(want, stmt.String()); diff != "" {
		t.Errorf("Statement.String() mismatch (-want +got):\n%s", diff)
	}
}

func TestMemberName(t *testing.T) {

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain identifier", input: "userName", want: "userName"},
		{name: "underscore and dollar", input: "_a$b", want: "_a$b"},
		{name: "leading digit", input: "1abc", want: `"1abc"`},
		{name: "space", input: "full name", want: `"full name"`},
		{name: "dash", input: "content-type", want: `"content-type"`},
		{name: "empty", input: "", want: `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MemberName(tt.input); got != tt.want {
				t.Errorf("MemberName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestQuote(t *testing.T) {

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "abc", want: `"abc"`},
		{name: "embedded quote", input: `a"b`, want: `"a\"b"`},
		{name: "backslash", input: `a\b`, want: `"a\\b"`},
		{name: "newline", input: "a\nb", want: `"a\nb"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quote(tt.input); got != tt.want {
				t.Errorf("Quote(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
