// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package model

// DefKind представляет вид определения типа.
type DefKind string

const (
	KindStruct DefKind = "struct"
	KindEnum   DefKind = "enum"
	KindAlias  DefKind = "alias"
	KindTuple  DefKind = "tuple"
)

// RefKind представляет вид ссылки на тип.
type RefKind string

const (
	RefPrimitive    RefKind = "primitive"
	RefNamed        RefKind = "named"
	RefGenericParam RefKind = "generic"
	RefContainer    RefKind = "container"
)

// Primitive представляет примитив целевого языка (TypeScript).
type Primitive string

const (
	PrimNumber  Primitive = "number"
	PrimBigInt  Primitive = "bigint"
	PrimString  Primitive = "string"
	PrimBoolean Primitive = "boolean"
	PrimNull    Primitive = "null"
	PrimUnknown Primitive = "unknown"
)

// ContainerKind представляет вид параметрического контейнера.
type ContainerKind string

const (
	ContainerOptional ContainerKind = "optional"
	ContainerList     ContainerKind = "list"
	ContainerMap      ContainerKind = "map"
	ContainerTuple    ContainerKind = "tuple"
)

// TypeRef - разрешённая ссылка на тип: примитив, именованный тип,
// generic-параметр или контейнер. Дискриминатор - поле Kind.
type TypeRef struct {
	Kind RefKind `json:"kind"`

	// Для RefPrimitive.
	Primitive Primitive `json:"primitive,omitempty"`

	// Для RefNamed и RefGenericParam.
	Name string `json:"name,omitempty"`
	// Generic-аргументы именованной ссылки, позиционные.
	Args []TypeRef `json:"args,omitempty"`

	// Для RefContainer.
	Container ContainerKind `json:"container,omitempty"`
	// Элементы контейнера: Optional и List - один, Map - ключ и значение,
	// Tuple - произвольное количество.
	Elems []TypeRef `json:"elems,omitempty"`
}

// PayloadKind представляет вид полезной нагрузки варианта enum.
type PayloadKind string

const (
	PayloadUnit   PayloadKind = "unit"
	PayloadTuple  PayloadKind = "tuple"
	PayloadStruct PayloadKind = "struct"
)

// CaseConvention представляет соглашение об именовании для rename_all.
type CaseConvention string

const (
	CaseLower          CaseConvention = "lowercase"
	CaseUpper          CaseConvention = "UPPERCASE"
	CaseCamel          CaseConvention = "camelCase"
	CaseSnake          CaseConvention = "snake_case"
	CasePascal         CaseConvention = "PascalCase"
	CaseScreamingSnake CaseConvention = "SCREAMING_SNAKE_CASE"
	CaseKebab          CaseConvention = "kebab-case"
)

// TagKind представляет стратегию представления enum на проводе.
type TagKind string

const (
	TagExternal TagKind = "external"
	TagInternal TagKind = "internal"
	TagAdjacent TagKind = "adjacent"
	TagUntagged TagKind = "untagged"
)

// TagStrategy описывает схему дискриминанта enum.
// Поле Content заполняется только для TagAdjacent.
type TagStrategy struct {
	Kind    TagKind `json:"kind"`
	Tag     string  `json:"tag,omitempty"`
	Content string  `json:"content,omitempty"`
}

// ExportConfig содержит нормализованные директивы уровня типа.
type ExportConfig struct {
	Rename    string         `json:"rename,omitempty"`
	RenameAll CaseConvention `json:"renameAll,omitempty"`
	Tag       TagStrategy    `json:"tag,omitempty"`
	ExportTo  string         `json:"exportTo,omitempty"`
}

// FieldConfig содержит нормализованные директивы уровня поля.
type FieldConfig struct {
	Rename  string `json:"rename,omitempty"`
	Skip    bool   `json:"skip,omitempty"`
	Flatten bool   `json:"flatten,omitempty"`
	// Optional переключает рендеринг Option-поля с "name: T | null" на "name?: T".
	Optional bool `json:"optional,omitempty"`
	// TypeOverride - сырой TypeScript текст вместо разрешённого типа поля.
	TypeOverride string `json:"typeOverride,omitempty"`
}

// VariantConfig содержит нормализованные директивы уровня варианта.
type VariantConfig struct {
	Rename string `json:"rename,omitempty"`
	Skip   bool   `json:"skip,omitempty"`
}

// Field представляет поле структуры или позицию кортежа.
type Field struct {
	Name     string      `json:"name"`
	Ref      TypeRef     `json:"ref"`
	Optional bool        `json:"optional,omitempty"`
	Config   FieldConfig `json:"config,omitempty"`
	Docs     []string    `json:"docs,omitempty"`
}

// Variant представляет вариант enum.
type Variant struct {
	Name    string      `json:"name"`
	Payload PayloadKind `json:"payload"`
	// Для PayloadTuple.
	TupleOf []TypeRef `json:"tupleOf,omitempty"`
	// Для PayloadStruct.
	Fields []Field       `json:"fields,omitempty"`
	Config VariantConfig `json:"config,omitempty"`
}

// TypeDefinition - внутреннее представление одного экспортируемого типа.
// Неизменяемо после построения.
type TypeDefinition struct {
	Name string `json:"name"`
	// Module - относительный путь модуля, объявившего тип. Определяет
	// подкаталог в export root, чтобы одноимённые типы из разных модулей
	// не коллапсировали в один артефакт.
	Module string `json:"module,omitempty"`

	Kind DefKind `json:"kind"`

	// Упорядоченный список имён generic-параметров. Порядок значим:
	// аргументы на месте использования сопоставляются позиционно.
	Generics []string `json:"generics,omitempty"`

	Fields   []Field   `json:"fields,omitempty"`
	Variants []Variant `json:"variants,omitempty"`

	// Для KindAlias - целевой тип.
	Alias *TypeRef `json:"alias,omitempty"`

	Config ExportConfig `json:"config,omitempty"`
	Docs   []string     `json:"docs,omitempty"`
}

// ExportName возвращает имя типа в целевом языке с учётом rename.
func (d *TypeDefinition) ExportName() string {
	if d.Config.Rename != "" {
		return d.Config.Rename
	}
	return d.Name
}

// NamedRefs возвращает все именованные ссылки, достижимые из ref без
// перехода через другие определения (включая вложенные в контейнеры
// и generic-аргументы).
func NamedRefs(ref TypeRef) []TypeRef {
	var out []TypeRef
	switch ref.Kind {
	case RefNamed:
		out = append(out, ref)
		for _, arg := range ref.Args {
			out = append(out, NamedRefs(arg)...)
		}
	case RefContainer:
		for _, elem := range ref.Elems {
			out = append(out, NamedRefs(elem)...)
		}
	}
	return out
}
