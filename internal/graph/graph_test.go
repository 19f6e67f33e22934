// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package graph

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gavinleroy/ts-rs/model"
)

// mapLookup - реестр на карте для тестов.
type mapLookup map[string]*model.TypeDefinition

func (m mapLookup) Lookup(name string) (*model.TypeDefinition, error) {
	if def, ok := m[name]; ok {
		return def, nil
	}
	return nil, model.NewError(model.ErrUnresolvedTypeReference, name, "", "type is not registered")
}

func structDef(name string, fields ...model.Field) *model.TypeDefinition {
	return &model.TypeDefinition{Name: name, Kind: model.KindStruct, Fields: fields}
}

func namedField(field, target string, args ...model.TypeRef) model.Field {
	return model.Field{
		Name: field,
		Ref:  model.TypeRef{Kind: model.RefNamed, Name: target, Args: args},
	}
}

func emitted(defs []*model.TypeDefinition) []string {
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
	}
	return names
}

func TestWalkOrder(t *testing.T) {

	lookup := mapLookup{
		"A": structDef("A", namedField("b", "B"), namedField("c", "C")),
		"B": structDef("B", namedField("c", "C")),
		"C": structDef("C"),
	}

	defs, err := Walk(lookup, lookup["A"])
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	// Порядок первого обнаружения: корень, затем зависимости в глубину.
	if diff := cmp.Diff([]string{"A", "B", "C"}, emitted(defs)); diff != "" {
		t.Errorf("Walk() order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkRecursiveTerminates(t *testing.T) {

	lookup := mapLookup{
		"Tree": structDef("Tree",
			model.Field{Name: "children", Ref: model.TypeRef{
				Kind:      model.RefContainer,
				Container: model.ContainerList,
				Elems:     []model.TypeRef{{Kind: model.RefNamed, Name: "Tree"}},
			}},
		),
	}

	defs, err := Walk(lookup, lookup["Tree"])
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(defs) != 1 {
		t.Errorf("Walk() emitted %d definitions, want 1", len(defs))
	}
}

func TestWalkMutualRecursion(t *testing.T) {

	lookup := mapLookup{
		"A": structDef("A", namedField("b", "B")),
		"B": structDef("B", namedField("a", "A")),
	}

	defs, err := Walk(lookup, lookup["A"], lookup["B"])
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if diff := cmp.Diff([]string{"A", "B"}, emitted(defs)); diff != "" {
		t.Errorf("Walk() mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkErrors(t *testing.T) {

	tests := []struct {
		name     string
		lookup   mapLookup
		root     string
		wantKind model.ErrorKind
	}{
		{
			name: "unresolved reference",
			lookup: mapLookup{
				"A": structDef("A", namedField("ghost", "Ghost")),
			},
			root:     "A",
			wantKind: model.ErrUnresolvedTypeReference,
		},
		{
			name: "generic arity mismatch",
			lookup: mapLookup{
				"A": structDef("A", namedField("w", "Wrapper",
					model.TypeRef{Kind: model.RefPrimitive, Primitive: model.PrimNumber},
				)),
				"Wrapper": structDef("Wrapper"),
			},
			root:     "A",
			wantKind: model.ErrGenericArityMismatch,
		},
		{
			name: "flatten of enum",
			lookup: mapLookup{
				"A": structDef("A", model.Field{
					Name:   "inner",
					Ref:    model.TypeRef{Kind: model.RefNamed, Name: "E"},
					Config: model.FieldConfig{Flatten: true},
				}),
				"E": {Name: "E", Kind: model.KindEnum},
			},
			root:     "A",
			wantKind: model.ErrInvalidAttributeTarget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Walk(tt.lookup, tt.lookup[tt.root])
			if err == nil {
				t.Fatal("Walk() error = nil, want error")
			}
			if !model.IsKind(err, tt.wantKind) {
				t.Errorf("Walk() error = %v, want kind %s", err, tt.wantKind)
			}
		})
	}
}

func TestWalkSkippedFieldsExcluded(t *testing.T) {

	// Ссылки пропущенных полей и полей с переопределённым типом
	// в замыкание не входят.
	lookup := mapLookup{
		"A": structDef("A",
			model.Field{
				Name:   "hidden",
				Ref:    model.TypeRef{Kind: model.RefNamed, Name: "Ghost"},
				Config: model.FieldConfig{Skip: true},
			},
			model.Field{
				Name:   "overridden",
				Ref:    model.TypeRef{Kind: model.RefNamed, Name: "Ghost"},
				Config: model.FieldConfig{TypeOverride: "Date"},
			},
		),
	}

	defs, err := Walk(lookup, lookup["A"])
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(defs) != 1 {
		t.Errorf("Walk() emitted %d definitions, want 1", len(defs))
	}
}
