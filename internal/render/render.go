// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package render

import (
	"sort"
	"strings"

	"github.com/gavinleroy/ts-rs/internal/attrs"
	"github.com/gavinleroy/ts-rs/internal/tsg"
	"github.com/gavinleroy/ts-rs/model"
)

const header = "// This file was generated by ts-rs. Do not edit this file manually.\n\n"

// Lookuper разрешает имя типа в определение.
type Lookuper interface {
	Lookup(name string) (*model.TypeDefinition, error)
}

// Context - окружение рендеринга: разрешение имён и раскладка артефактов.
// PathOf возвращает путь артефакта относительно export root; по нему
// строятся относительные импорты между сгенерированными файлами.
type Context struct {
	Lookup Lookuper
	PathOf func(def *model.TypeDefinition) string
}

// Declaration рендерит полный артефакт для одного определения:
// заголовок, импорты зависимостей и само объявление.
func Declaration(ctx Context, def *model.TypeDefinition) (string, error) {

	r := &renderer{ctx: ctx, deps: make(map[string]*model.TypeDefinition)}

	stmt, err := r.declStatement(def)
	if err != nil {
		return "", err
	}

	file := tsg.NewFile().Comment(header)
	for _, dep := range sortedDeps(r.deps) {
		if dep.Name == def.Name {
			continue
		}
		file.ImportType(importPath(ctx.PathOf(def), ctx.PathOf(dep)), dep.ExportName())
	}
	file.Add(stmt)

	return file.String(), nil
}

// renderer накапливает зависимости, обнаруженные при рендеринге ссылок.
type renderer struct {
	ctx  Context
	deps map[string]*model.TypeDefinition
}

// member - один отрендеренный член объектного типа.
type member struct {
	name     string
	typ      string
	optional bool
	docs     []string
	// Индексная сигнатура вместо именованного члена (flatten map-поля).
	index      bool
	key, value string
}

func (r *renderer) declStatement(def *model.TypeDefinition) (*tsg.Statement, error) {

	stmt := tsg.NewStatement().Export()
	stmt.DocComment(def.Docs)

	switch def.Kind {
	case model.KindStruct:
		members, err := r.assembleMembers(def.Name, def.Fields, identityBinding(def.Generics), def.Config.RenameAll, map[string]bool{def.Name: true})
		if err != nil {
			return nil, err
		}
		stmt.Interface(def.ExportName()).Generic(def.Generics...).Body(func(m *tsg.Members) {
			for _, mem := range members {
				m.DocComment(mem.docs)
				if mem.index {
					m.Index(mem.key, mem.value)
					continue
				}
				m.Field(mem.name, mem.typ, mem.optional)
			}
		})
		stmt.Line()

	case model.KindTuple:
		text, err := r.tupleText(def)
		if err != nil {
			return nil, err
		}
		stmt.TypeAlias(def.ExportName() + genericList(def.Generics)).Raw(text).Semicolon().Line()

	case model.KindAlias:
		text, err := r.typeRef(def.Name, *def.Alias, identityBinding(def.Generics))
		if err != nil {
			return nil, err
		}
		stmt.TypeAlias(def.ExportName() + genericList(def.Generics)).Raw(text).Semicolon().Line()

	case model.KindEnum:
		text, err := r.enumText(def)
		if err != nil {
			return nil, err
		}
		stmt.TypeAlias(def.ExportName() + genericList(def.Generics)).Raw(text).Semicolon().Line()

	default:
		return nil, model.NewError(model.ErrUnsupportedType, def.Name, "", "unknown definition kind %q", def.Kind)
	}

	return stmt, nil
}

// typeRef рендерит ссылку на тип в TypeScript текст.
// bind - активная подстановка generic-параметров; на верхнем уровне
// объявления это тождественная подстановка.
func (r *renderer) typeRef(owner string, ref model.TypeRef, bind map[string]string) (string, error) {
	switch ref.Kind {
	case model.RefPrimitive:
		return string(ref.Primitive), nil

	case model.RefGenericParam:
		if bound, ok := bind[ref.Name]; ok {
			return bound, nil
		}
		return ref.Name, nil

	case model.RefContainer:
		return r.containerRef(owner, ref, bind)

	case model.RefNamed:
		target, err := r.ctx.Lookup.Lookup(ref.Name)
		if err != nil {
			if model.IsKind(err, model.ErrUnresolvedTypeReference) {
				return "", model.NewError(model.ErrUnresolvedTypeReference, owner, "",
					"referenced type %q is not registered", ref.Name)
			}
			return "", err
		}
		if len(ref.Args) != len(target.Generics) {
			return "", model.NewError(model.ErrGenericArityMismatch, owner, "",
				"%q takes %d type arguments, got %d", target.Name, len(target.Generics), len(ref.Args))
		}
		r.deps[target.Name] = target

		// Рекурсивные ссылки рендерятся по имени, без встраивания:
		// TypeScript допускает форвардные ссылки между объявлениями типов.
		if len(ref.Args) == 0 {
			return target.ExportName(), nil
		}
		args := make([]string, 0, len(ref.Args))
		for _, arg := range ref.Args {
			text, argErr := r.typeRef(owner, arg, bind)
			if argErr != nil {
				return "", argErr
			}
			args = append(args, text)
		}
		return target.ExportName() + "<" + strings.Join(args, ", ") + ">", nil

	default:
		return "", model.NewError(model.ErrUnsupportedType, owner, "", "unknown reference kind %q", ref.Kind)
	}
}

func (r *renderer) containerRef(owner string, ref model.TypeRef, bind map[string]string) (string, error) {
	switch ref.Container {
	case model.ContainerOptional:
		inner, err := r.typeRef(owner, ref.Elems[0], bind)
		if err != nil {
			return "", err
		}
		return inner + " | null", nil

	case model.ContainerList:
		inner, err := r.typeRef(owner, ref.Elems[0], bind)
		if err != nil {
			return "", err
		}
		return "Array<" + inner + ">", nil

	case model.ContainerMap:
		key, err := r.typeRef(owner, ref.Elems[0], bind)
		if err != nil {
			return "", err
		}
		value, err := r.typeRef(owner, ref.Elems[1], bind)
		if err != nil {
			return "", err
		}
		return "Record<" + key + ", " + value + ">", nil

	case model.ContainerTuple:
		elems := make([]string, 0, len(ref.Elems))
		for _, elem := range ref.Elems {
			text, err := r.typeRef(owner, elem, bind)
			if err != nil {
				return "", err
			}
			elems = append(elems, text)
		}
		return "[" + strings.Join(elems, ", ") + "]", nil

	default:
		return "", model.NewError(model.ErrUnsupportedType, owner, "", "unknown container kind %q", ref.Container)
	}
}

// assembleMembers собирает члены объектного типа в объявленном порядке:
// пропущенные поля опускаются, flatten-поля рекурсивно раскрываются.
// visiting защищает от цикла через flatten - такой цикл невозможно
// выразить в TypeScript (в отличие от рекурсии по имени).
func (r *renderer) assembleMembers(owner string, fields []model.Field, bind map[string]string, convention model.CaseConvention, visiting map[string]bool) ([]member, error) {

	members := make([]member, 0, len(fields))
	for _, field := range fields {
		if field.Config.Skip {
			continue
		}

		if field.Config.Flatten {
			flattened, err := r.flattenField(owner, field, bind, visiting)
			if err != nil {
				return nil, err
			}
			members = append(members, flattened...)
			continue
		}

		name := attrs.MemberName(field.Name, field.Config.Rename, convention)

		var typ string
		if field.Config.TypeOverride != "" {
			typ = field.Config.TypeOverride
		} else {
			ref := field.Ref
			// Опциональное поле рендерится как "name?: T", слой "| null"
			// при этом снимается.
			if field.Optional && ref.Kind == model.RefContainer && ref.Container == model.ContainerOptional {
				ref = ref.Elems[0]
			}
			text, err := r.typeRef(owner, ref, bind)
			if err != nil {
				return nil, err
			}
			typ = text
		}

		members = append(members, member{
			name:     name,
			typ:      typ,
			optional: field.Optional,
			docs:     field.Docs,
		})
	}
	return members, nil
}

func (r *renderer) flattenField(owner string, field model.Field, bind map[string]string, visiting map[string]bool) ([]member, error) {

	// flatten map-поля даёт индексную сигнатуру.
	if field.Ref.Kind == model.RefContainer && field.Ref.Container == model.ContainerMap {
		key, err := r.typeRef(owner, field.Ref.Elems[0], bind)
		if err != nil {
			return nil, err
		}
		value, err := r.typeRef(owner, field.Ref.Elems[1], bind)
		if err != nil {
			return nil, err
		}
		return []member{{index: true, key: key, value: value}}, nil
	}

	if field.Ref.Kind != model.RefNamed {
		return nil, model.NewError(model.ErrInvalidAttributeTarget, owner, field.Name,
			"flatten is only applicable to named struct types and maps")
	}

	target, err := r.ctx.Lookup.Lookup(field.Ref.Name)
	if err != nil {
		if model.IsKind(err, model.ErrUnresolvedTypeReference) {
			return nil, model.NewError(model.ErrUnresolvedTypeReference, owner, field.Name,
				"referenced type %q is not registered", field.Ref.Name)
		}
		return nil, err
	}
	if target.Kind != model.KindStruct {
		return nil, model.NewError(model.ErrInvalidAttributeTarget, owner, field.Name,
			"flattened type %q is not a struct", target.Name)
	}
	if target.Config.Tag.Kind == model.TagInternal {
		return nil, model.NewError(model.ErrInvalidAttributeTarget, owner, field.Name,
			"cannot flatten internally tagged type %q", target.Name)
	}
	if visiting[target.Name] {
		return nil, model.NewError(model.ErrUnsupportedRecursiveType, owner, field.Name,
			"recursive flatten of %q cannot be represented", target.Name)
	}
	if len(field.Ref.Args) != len(target.Generics) {
		return nil, model.NewError(model.ErrGenericArityMismatch, owner, field.Name,
			"%q takes %d type arguments, got %d", target.Name, len(target.Generics), len(field.Ref.Args))
	}

	// Параметры вложенного типа связываются с уже отрендеренными
	// аргументами места использования.
	inner := make(map[string]string, len(target.Generics))
	for i, param := range target.Generics {
		text, argErr := r.typeRef(owner, field.Ref.Args[i], bind)
		if argErr != nil {
			return nil, argErr
		}
		inner[param] = text
	}

	visiting[target.Name] = true
	defer delete(visiting, target.Name)
	return r.assembleMembers(target.Name, target.Fields, inner, target.Config.RenameAll, visiting)
}

// tupleText рендерит тело tuple-определения: кортеж из непропущенных
// позиций; одна позиция схлопывается до неё самой (newtype), ни одной - null.
func (r *renderer) tupleText(def *model.TypeDefinition) (string, error) {
	bind := identityBinding(def.Generics)
	elems := make([]string, 0, len(def.Fields))
	for _, field := range def.Fields {
		if field.Config.Skip {
			continue
		}
		if field.Config.TypeOverride != "" {
			elems = append(elems, field.Config.TypeOverride)
			continue
		}
		text, err := r.typeRef(def.Name, field.Ref, bind)
		if err != nil {
			return "", err
		}
		elems = append(elems, text)
	}
	switch len(elems) {
	case 0:
		return "null", nil
	case 1:
		return elems[0], nil
	default:
		return "[" + strings.Join(elems, ", ") + "]", nil
	}
}

// objectText рендерит набор членов в однострочный объектный тип.
func objectText(members []member) string {
	if len(members) == 0 {
		return "{ }"
	}
	parts := make([]string, 0, len(members))
	for _, mem := range members {
		if mem.index {
			parts = append(parts, "[key: "+mem.key+"]: "+mem.value)
			continue
		}
		name := tsg.MemberName(mem.name)
		if mem.optional {
			name += "?"
		}
		parts = append(parts, name+": "+mem.typ)
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// identityBinding - тождественная подстановка generic-параметров.
func identityBinding(generics []string) map[string]string {
	bind := make(map[string]string, len(generics))
	for _, param := range generics {
		bind[param] = param
	}
	return bind
}

func genericList(generics []string) string {
	if len(generics) == 0 {
		return ""
	}
	return "<" + strings.Join(generics, ", ") + ">"
}

func sortedDeps(deps map[string]*model.TypeDefinition) []*model.TypeDefinition {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	// Детерминированный порядок импортов.
	sort.Strings(names)
	out := make([]*model.TypeDefinition, 0, len(names))
	for _, name := range names {
		out = append(out, deps[name])
	}
	return out
}

// importPath строит относительный путь импорта от файла from к файлу to
// (оба - пути относительно export root, с расширением).
func importPath(from, to string) string {
	fromParts := strings.Split(from, "/")
	toParts := strings.Split(to, "/")

	fromDir := fromParts[:len(fromParts)-1]

	common := 0
	for common < len(fromDir) && common < len(toParts)-1 && fromDir[common] == toParts[common] {
		common++
	}

	var parts []string
	for range fromDir[common:] {
		parts = append(parts, "..")
	}
	parts = append(parts, toParts[common:]...)

	joined := strings.Join(parts, "/")
	joined = strings.TrimSuffix(joined, ".ts")
	if !strings.HasPrefix(joined, ".") {
		joined = "./" + joined
	}
	return joined
}
