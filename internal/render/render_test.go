// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gavinleroy/ts-rs/model"
)

type mapLookup map[string]*model.TypeDefinition

func (m mapLookup) Lookup(name string) (*model.TypeDefinition, error) {
	if def, ok := m[name]; ok {
		return def, nil
	}
	return nil, model.NewError(model.ErrUnresolvedTypeReference, name, "", "type is not registered")
}

func testContext(lookup mapLookup) Context {
	return Context{
		Lookup: lookup,
		PathOf: func(def *model.TypeDefinition) string { return def.Name + ".ts" },
	}
}

func prim(p model.Primitive) model.TypeRef {
	return model.TypeRef{Kind: model.RefPrimitive, Primitive: p}
}

func namedRef(name string, args ...model.TypeRef) model.TypeRef {
	return model.TypeRef{Kind: model.RefNamed, Name: name, Args: args}
}

func listOf(elem model.TypeRef) model.TypeRef {
	return model.TypeRef{Kind: model.RefContainer, Container: model.ContainerList, Elems: []model.TypeRef{elem}}
}

func optionOf(elem model.TypeRef) model.TypeRef {
	return model.TypeRef{Kind: model.RefContainer, Container: model.ContainerOptional, Elems: []model.TypeRef{elem}}
}

func mapOf(key, value model.TypeRef) model.TypeRef {
	return model.TypeRef{Kind: model.RefContainer, Container: model.ContainerMap, Elems: []model.TypeRef{key, value}}
}

const banner = "// This file was generated by ts-rs. Do not edit this file manually.\n\n"

func TestDeclarationStruct(t *testing.T) {

	def := &model.TypeDefinition{
		Name: "User",
		Kind: model.KindStruct,
		Fields: []model.Field{
			{Name: "id", Ref: prim(model.PrimNumber)},
			{Name: "email", Ref: optionOf(prim(model.PrimString)), Optional: true},
			{Name: "nick", Ref: optionOf(prim(model.PrimString))},
			{Name: "tags", Ref: listOf(prim(model.PrimString))},
			{Name: "secret", Ref: prim(model.PrimString), Config: model.FieldConfig{Skip: true}},
			{Name: "created", Config: model.FieldConfig{TypeOverride: "Date"}},
		},
	}

	got, err := Declaration(testContext(mapLookup{"User": def}), def)
	if err != nil {
		t.Fatalf("Declaration() error = %v", err)
	}

	want := banner +
		"export interface User {\n" +
		"    id: number,\n" +
		"    email?: string,\n" +
		"    nick: string | null,\n" +
		"    tags: Array<string>,\n" +
		"    created: Date,\n" +
		"}\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Declaration() mismatch (-want +got):\n%s", diff)
	}
}

func TestDeclarationRenameAll(t *testing.T) {

	def := &model.TypeDefinition{
		Name: "Account",
		Kind: model.KindStruct,
		Fields: []model.Field{
			{Name: "UserName", Ref: prim(model.PrimString)},
			{Name: "LastSeen", Ref: prim(model.PrimNumber), Config: model.FieldConfig{Rename: "seen_at"}},
		},
		Config: model.ExportConfig{RenameAll: model.CaseCamel},
	}

	got, err := Declaration(testContext(mapLookup{"Account": def}), def)
	if err != nil {
		t.Fatalf("Declaration() error = %v", err)
	}

	want := banner +
		"export interface Account {\n" +
		"    userName: string,\n" +
		"    seen_at: number,\n" +
		"}\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Declaration() mismatch (-want +got):\n%s", diff)
	}
}

func TestDeclarationGenericsAndImports(t *testing.T) {

	wrapper := &model.TypeDefinition{
		Name:     "Wrapper",
		Kind:     model.KindStruct,
		Generics: []string{"T"},
		Fields: []model.Field{
			{Name: "value", Ref: model.TypeRef{Kind: model.RefGenericParam, Name: "T"}},
		},
	}
	holder := &model.TypeDefinition{
		Name: "Holder",
		Kind: model.KindStruct,
		Fields: []model.Field{
			{Name: "w", Ref: namedRef("Wrapper", prim(model.PrimNumber))},
		},
	}
	lookup := mapLookup{"Wrapper": wrapper, "Holder": holder}

	got, err := Declaration(testContext(lookup), wrapper)
	if err != nil {
		t.Fatalf("Declaration() error = %v", err)
	}
	want := banner +
		"export interface Wrapper<T> {\n" +
		"    value: T,\n" +
		"}\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Declaration(Wrapper) mismatch (-want +got):\n%s", diff)
	}

	got, err = Declaration(testContext(lookup), holder)
	if err != nil {
		t.Fatalf("Declaration() error = %v", err)
	}
	want = banner +
		"import { type Wrapper } from './Wrapper';\n\n" +
		"export interface Holder {\n" +
		"    w: Wrapper<number>,\n" +
		"}\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Declaration(Holder) mismatch (-want +got):\n%s", diff)
	}
}

func TestDeclarationRecursiveByName(t *testing.T) {

	tree := &model.TypeDefinition{
		Name: "Tree",
		Kind: model.KindStruct,
		Fields: []model.Field{
			{Name: "children", Ref: listOf(namedRef("Tree"))},
		},
	}

	got, err := Declaration(testContext(mapLookup{"Tree": tree}), tree)
	if err != nil {
		t.Fatalf("Declaration() error = %v", err)
	}
	// Рекурсия по имени не даёт импорта самого себя.
	want := banner +
		"export interface Tree {\n" +
		"    children: Array<Tree>,\n" +
		"}\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Declaration() mismatch (-want +got):\n%s", diff)
	}
}

func TestDeclarationTupleAndAlias(t *testing.T) {

	tests := []struct {
		name string
		def  *model.TypeDefinition
		want string
	}{
		{
			name: "newtype collapses",
			def: &model.TypeDefinition{
				Name:   "UserId",
				Kind:   model.KindTuple,
				Fields: []model.Field{{Name: "0", Ref: prim(model.PrimNumber)}},
			},
			want: banner + "export type UserId = number;\n",
		},
		{
			name: "pair",
			def: &model.TypeDefinition{
				Name: "Pair",
				Kind: model.KindTuple,
				Fields: []model.Field{
					{Name: "0", Ref: prim(model.PrimNumber)},
					{Name: "1", Ref: prim(model.PrimString)},
				},
			},
			want: banner + "export type Pair = [number, string];\n",
		},
		{
			name: "newtype with skipped inner",
			def: &model.TypeDefinition{
				Name: "Opaque",
				Kind: model.KindTuple,
				Fields: []model.Field{
					{Name: "0", Ref: prim(model.PrimNumber), Config: model.FieldConfig{Skip: true}},
				},
			},
			want: banner + "export type Opaque = null;\n",
		},
		{
			name: "alias",
			def: &model.TypeDefinition{
				Name:  "Index",
				Kind:  model.KindAlias,
				Alias: &model.TypeRef{Kind: model.RefContainer, Container: model.ContainerMap, Elems: []model.TypeRef{prim(model.PrimString), prim(model.PrimNumber)}},
			},
			want: banner + "export type Index = Record<string, number>;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Declaration(testContext(mapLookup{tt.def.Name: tt.def}), tt.def)
			if err != nil {
				t.Fatalf("Declaration() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Declaration() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func shapeVariants() []model.Variant {
	return []model.Variant{
		{Name: "Empty", Payload: model.PayloadUnit},
		{Name: "Circle", Payload: model.PayloadTuple, TupleOf: []model.TypeRef{prim(model.PrimNumber)}},
		{Name: "Rect", Payload: model.PayloadStruct, Fields: []model.Field{
			{Name: "w", Ref: prim(model.PrimNumber)},
			{Name: "h", Ref: prim(model.PrimNumber)},
		}},
	}
}

func TestDeclarationEnumStrategies(t *testing.T) {

	tests := []struct {
		name string
		tag  model.TagStrategy
		want string
	}{
		{
			name: "external",
			tag:  model.TagStrategy{Kind: model.TagExternal},
			want: banner + `export type Shape = "Empty" | { Circle: number } | { Rect: { w: number, h: number } };` + "\n",
		},
		{
			name: "adjacent",
			tag:  model.TagStrategy{Kind: model.TagAdjacent, Tag: "kind", Content: "data"},
			want: banner + `export type Shape = { kind: "Empty" } | { kind: "Circle", data: number } | { kind: "Rect", data: { w: number, h: number } };` + "\n",
		},
		{
			name: "untagged",
			tag:  model.TagStrategy{Kind: model.TagUntagged},
			want: banner + `export type Shape = null | number | { w: number, h: number };` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := &model.TypeDefinition{
				Name:     "Shape",
				Kind:     model.KindEnum,
				Variants: shapeVariants(),
				Config:   model.ExportConfig{Tag: tt.tag},
			}
			got, err := Declaration(testContext(mapLookup{"Shape": def}), def)
			if err != nil {
				t.Fatalf("Declaration() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Declaration() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeclarationEnumInternalTag(t *testing.T) {

	def := &model.TypeDefinition{
		Name: "Msg",
		Kind: model.KindEnum,
		Variants: []model.Variant{
			{Name: "Ping", Payload: model.PayloadUnit},
			{Name: "Move", Payload: model.PayloadStruct, Fields: []model.Field{
				{Name: "x", Ref: prim(model.PrimNumber)},
				{Name: "y", Ref: prim(model.PrimNumber)},
			}},
		},
		Config: model.ExportConfig{Tag: model.TagStrategy{Kind: model.TagInternal, Tag: "type"}},
	}

	got, err := Declaration(testContext(mapLookup{"Msg": def}), def)
	if err != nil {
		t.Fatalf("Declaration() error = %v", err)
	}
	want := banner + `export type Msg = { type: "Ping" } | { type: "Move", x: number, y: number };` + "\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Declaration() mismatch (-want +got):\n%s", diff)
	}
}

func TestDeclarationEnumRenameAndSkip(t *testing.T) {

	def := &model.TypeDefinition{
		Name: "Status",
		Kind: model.KindEnum,
		Variants: []model.Variant{
			{Name: "InProgress", Payload: model.PayloadUnit},
			{Name: "Done", Payload: model.PayloadUnit, Config: model.VariantConfig{Rename: "finished"}},
			{Name: "Hidden", Payload: model.PayloadUnit, Config: model.VariantConfig{Skip: true}},
		},
		Config: model.ExportConfig{
			RenameAll: model.CaseKebab,
			Tag:       model.TagStrategy{Kind: model.TagExternal},
		},
	}

	got, err := Declaration(testContext(mapLookup{"Status": def}), def)
	if err != nil {
		t.Fatalf("Declaration() error = %v", err)
	}
	want := banner + `export type Status = "in-progress" | "finished";` + "\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Declaration() mismatch (-want +got):\n%s", diff)
	}
}

func TestDeclarationEmptyEnum(t *testing.T) {

	def := &model.TypeDefinition{
		Name:   "Never",
		Kind:   model.KindEnum,
		Config: model.ExportConfig{Tag: model.TagStrategy{Kind: model.TagExternal}},
	}
	got, err := Declaration(testContext(mapLookup{"Never": def}), def)
	if err != nil {
		t.Fatalf("Declaration() error = %v", err)
	}
	want := banner + "export type Never = never;\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Declaration() mismatch (-want +got):\n%s", diff)
	}
}

func TestDeclarationFlatten(t *testing.T) {

	inner := &model.TypeDefinition{
		Name: "Audit",
		Kind: model.KindStruct,
		Fields: []model.Field{
			{Name: "createdAt", Ref: prim(model.PrimString)},
			{Name: "updatedAt", Ref: prim(model.PrimString)},
		},
	}
	outer := &model.TypeDefinition{
		Name: "Article",
		Kind: model.KindStruct,
		Fields: []model.Field{
			{Name: "id", Ref: prim(model.PrimNumber)},
			{Name: "audit", Ref: namedRef("Audit"), Config: model.FieldConfig{Flatten: true}},
			{Name: "extra", Ref: mapOf(prim(model.PrimString), prim(model.PrimString)), Config: model.FieldConfig{Flatten: true}},
		},
	}

	got, err := Declaration(testContext(mapLookup{"Audit": inner, "Article": outer}), outer)
	if err != nil {
		t.Fatalf("Declaration() error = %v", err)
	}
	// Члены раскрытого типа встраиваются на место поля, без импорта.
	want := banner +
		"export interface Article {\n" +
		"    id: number,\n" +
		"    createdAt: string,\n" +
		"    updatedAt: string,\n" +
		"    [key: string]: string,\n" +
		"}\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Declaration() mismatch (-want +got):\n%s", diff)
	}
}

func TestDeclarationFlattenGenericBinding(t *testing.T) {

	inner := &model.TypeDefinition{
		Name:     "Page",
		Kind:     model.KindStruct,
		Generics: []string{"T"},
		Fields: []model.Field{
			{Name: "items", Ref: listOf(model.TypeRef{Kind: model.RefGenericParam, Name: "T"})},
			{Name: "total", Ref: prim(model.PrimNumber)},
		},
	}
	outer := &model.TypeDefinition{
		Name: "UserPage",
		Kind: model.KindStruct,
		Fields: []model.Field{
			{Name: "page", Ref: namedRef("Page", prim(model.PrimString)), Config: model.FieldConfig{Flatten: true}},
		},
	}

	got, err := Declaration(testContext(mapLookup{"Page": inner, "UserPage": outer}), outer)
	if err != nil {
		t.Fatalf("Declaration() error = %v", err)
	}
	want := banner +
		"export interface UserPage {\n" +
		"    items: Array<string>,\n" +
		"    total: number,\n" +
		"}\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Declaration() mismatch (-want +got):\n%s", diff)
	}
}

func TestDeclarationErrors(t *testing.T) {

	flattenCycleA := &model.TypeDefinition{
		Name: "A",
		Kind: model.KindStruct,
		Fields: []model.Field{
			{Name: "b", Ref: namedRef("B"), Config: model.FieldConfig{Flatten: true}},
		},
	}
	flattenCycleB := &model.TypeDefinition{
		Name: "B",
		Kind: model.KindStruct,
		Fields: []model.Field{
			{Name: "a", Ref: namedRef("A"), Config: model.FieldConfig{Flatten: true}},
		},
	}

	tests := []struct {
		name     string
		lookup   mapLookup
		root     string
		wantKind model.ErrorKind
	}{
		{
			name:     "flatten cycle",
			lookup:   mapLookup{"A": flattenCycleA, "B": flattenCycleB},
			root:     "A",
			wantKind: model.ErrUnsupportedRecursiveType,
		},
		{
			name: "unresolved reference",
			lookup: mapLookup{
				"A": {Name: "A", Kind: model.KindStruct, Fields: []model.Field{
					{Name: "ghost", Ref: namedRef("Ghost")},
				}},
			},
			root:     "A",
			wantKind: model.ErrUnresolvedTypeReference,
		},
		{
			name: "generic arity mismatch",
			lookup: mapLookup{
				"A": {Name: "A", Kind: model.KindStruct, Fields: []model.Field{
					{Name: "w", Ref: namedRef("Wrapper")},
				}},
				"Wrapper": {Name: "Wrapper", Kind: model.KindStruct, Generics: []string{"T"}},
			},
			root:     "A",
			wantKind: model.ErrGenericArityMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Declaration(testContext(tt.lookup), tt.lookup[tt.root])
			if err == nil {
				t.Fatal("Declaration() error = nil, want error")
			}
			if !model.IsKind(err, tt.wantKind) {
				t.Errorf("Declaration() error = %v, want kind %s", err, tt.wantKind)
			}
		})
	}
}

func TestDeclarationDocs(t *testing.T) {

	def := &model.TypeDefinition{
		Name: "User",
		Kind: model.KindStruct,
		Docs: []string{"Учётная запись пользователя."},
		Fields: []model.Field{
			{Name: "id", Ref: prim(model.PrimNumber), Docs: []string{"Первичный ключ."}},
		},
	}

	got, err := Declaration(testContext(mapLookup{"User": def}), def)
	if err != nil {
		t.Fatalf("Declaration() error = %v", err)
	}
	want := banner +
		"/**\n" +
		" * Учётная запись пользователя.\n" +
		" */\n" +
		"export interface User {\n" +
		"    /**\n" +
		"     * Первичный ключ.\n" +
		"     */\n" +
		"    id: number,\n" +
		"}\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Declaration() mismatch (-want +got):\n%s", diff)
	}
}
