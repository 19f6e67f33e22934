// Copyright (c) 2020 Khramtsov Aleksei (seniorGolang@gmail.com).
// This file is subject to the terms and conditions defined in file 'LICENSE', which is part of this project source code.
package parser

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/packages"

	"github.com/gavinleroy/ts-rs/model"
)

// declInfo связывает объявление типа с пакетом, где оно найдено.
type declInfo struct {
	pkg  *packages.Package
	spec *ast.TypeSpec
	doc  *ast.CommentGroup
}

// Parser извлекает сырые определения типов из Go-исходников проекта.
// Экспортируются типы, помеченные маркером "ts:export" в doc-комментарии;
// их module-local зависимости подхватываются автоматически.
type Parser struct {
	log        *slog.Logger
	modulePath string

	decls map[string]declInfo // "pkgPath.Name" -> объявление
	done  map[string]bool
	queue []string
	out   []model.RawType
}

// Scan загружает пакеты проекта в projectRoot и возвращает сырые
// определения всех помеченных типов вместе с их зависимостями.
func Scan(log *slog.Logger, projectRoot string, patterns ...string) ([]model.RawType, error) {

	modulePath, err := readModulePath(projectRoot)
	if err != nil {
		return nil, err
	}

	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	cfg := &packages.Config{
		Mode:  packages.NeedName | packages.NeedFiles | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedDeps,
		Fset:  token.NewFileSet(),
		Dir:   projectRoot,
		Tests: false,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "parser: load packages")
	}

	p := &Parser{
		log:        log,
		modulePath: modulePath,
		decls:      make(map[string]declInfo),
		done:       make(map[string]bool),
	}

	var roots []string
	for _, pkg := range pkgs {
		if len(pkg.Errors) != 0 {
			return nil, errors.Errorf("parser: package %s: %v", pkg.PkgPath, pkg.Errors[0])
		}
		for _, file := range pkg.Syntax {
			roots = append(roots, p.indexFile(pkg, file)...)
		}
	}
	sort.Strings(roots)

	log.Info("project packages loaded", "packages", len(pkgs), "marked", len(roots))

	p.queue = roots
	for len(p.queue) != 0 {
		key := p.queue[0]
		p.queue = p.queue[1:]
		if p.done[key] {
			continue
		}
		p.done[key] = true
		if err = p.process(key); err != nil {
			return nil, err
		}
	}

	sort.Slice(p.out, func(i, j int) bool { return p.out[i].Name < p.out[j].Name })
	return p.out, nil
}

// indexFile индексирует объявления типов файла и возвращает ключи
// помеченных на экспорт.
func (p *Parser) indexFile(pkg *packages.Package, file *ast.File) (marked []string) {
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			doc := typeSpec.Doc
			if doc == nil && len(genDecl.Specs) == 1 {
				doc = genDecl.Doc
			}

			key := pkg.PkgPath + "." + typeSpec.Name.Name
			p.decls[key] = declInfo{pkg: pkg, spec: typeSpec, doc: doc}

			if _, _, exported := parseDoc(doc); exported {
				marked = append(marked, key)
			}
		}
	}
	return marked
}

func (p *Parser) process(key string) error {

	decl, ok := p.decls[key]
	if !ok {
		// Зависимость вне просканированных пакетов: оставляем ссылку
		// неразрешённой, об этом сообщит обход графа.
		p.log.Warn("referenced type has no local declaration", "type", key)
		return nil
	}

	directives, docs, _ := parseDoc(decl.doc)

	raw := model.RawType{
		Name:       decl.spec.Name.Name,
		Module:     p.moduleOf(decl.pkg.PkgPath),
		Generics:   typeParamNames(decl.spec),
		Directives: directives,
		Docs:       docs,
	}

	switch specType := decl.spec.Type.(type) {
	case *ast.StructType:
		raw.Kind = model.KindStruct
		fields, err := p.structFields(decl.pkg, specType)
		if err != nil {
			return errors.Wrapf(err, "parser: type %s", raw.Name)
		}
		raw.Fields = fields

	case *ast.InterfaceType:
		return model.NewError(model.ErrUnsupportedType, raw.Name, "",
			"interface types cannot be exported")

	default:
		variants, isEnum := p.stringConstVariants(decl.pkg, decl.spec)
		if isEnum {
			raw.Kind = model.KindEnum
			raw.Variants = variants
			break
		}
		raw.Kind = model.KindAlias
		target, err := p.convert(decl.pkg.TypesInfo.TypeOf(decl.spec.Type))
		if err != nil {
			return errors.Wrapf(err, "parser: type %s", raw.Name)
		}
		raw.AliasOf = &target
	}

	p.log.Debug("type collected", "type", raw.Name, "kind", string(raw.Kind), "module", raw.Module)
	p.out = append(p.out, raw)
	return nil
}

func (p *Parser) structFields(pkg *packages.Package, structType *ast.StructType) ([]model.RawField, error) {

	var fields []model.RawField
	for _, field := range structType.Fields.List {

		// Неэкспортируемые поля невидимы для encoding/json, их типы
		// не обязаны быть выразимыми.
		embedded := len(field.Names) == 0
		if !embedded && !anyExported(field.Names) {
			continue
		}

		directives, optional, skip := parseFieldTag(field.Tag)
		docs := docLines(field.Doc)

		// Пропущенные поля и поля с переопределённым типом не требуют
		// выразимого Go-типа.
		var expr model.TypeExpr
		if !skip && !hasTypeOverride(directives) {
			var err error
			expr, err = p.convert(pkg.TypesInfo.TypeOf(field.Type))
			if err != nil {
				return nil, err
			}
		}

		// Встроенное поле раскрывается в членов его типа, как это
		// делает encoding/json.
		if embedded {
			name := embeddedName(field.Type)
			if name == "" {
				return nil, errors.New("unsupported embedded field")
			}
			// Встраивание через указатель раскрывается так же, как по значению.
			if expr.Name == "Option" && len(expr.Args) == 1 {
				expr = expr.Args[0]
			}
			fields = append(fields, model.RawField{
				Name:       name,
				Type:       expr,
				Directives: append(directives, "flatten"),
				Docs:       docs,
			})
			continue
		}

		for _, ident := range field.Names {
			fields = append(fields, model.RawField{
				Name:       ident.Name,
				Type:       expr,
				Optional:   optional,
				Directives: directives,
				Docs:       docs,
			})
		}
	}
	return fields, nil
}

// stringConstVariants распознаёт строковый enum: именованный строковый тип
// с набором констант этого типа в том же пакете. Каждая константа даёт
// unit-вариант, сериализуемое имя берётся из её значения.
func (p *Parser) stringConstVariants(pkg *packages.Package, spec *ast.TypeSpec) ([]model.RawVariant, bool) {

	obj := pkg.TypesInfo.Defs[spec.Name]
	if obj == nil {
		return nil, false
	}
	basic, ok := obj.Type().Underlying().(*types.Basic)
	if !ok || basic.Info()&types.IsString == 0 {
		return nil, false
	}

	scope := pkg.Types.Scope()
	var variants []model.RawVariant
	for _, name := range scope.Names() {
		constObj, ok := scope.Lookup(name).(*types.Const)
		if !ok || !types.Identical(constObj.Type(), obj.Type()) {
			continue
		}
		value := constant.StringVal(constObj.Val())
		variant := model.RawVariant{Name: constObj.Name()}
		if value != constObj.Name() {
			variant.Directives = []string{"rename=" + value}
		}
		variants = append(variants, variant)
	}
	if len(variants) == 0 {
		return nil, false
	}
	sort.Slice(variants, func(i, j int) bool { return variants[i].Name < variants[j].Name })
	return variants, true
}

// moduleOf возвращает путь пакета относительно корня модуля.
func (p *Parser) moduleOf(pkgPath string) string {
	rel := strings.TrimPrefix(pkgPath, p.modulePath)
	return strings.TrimPrefix(rel, "/")
}

// enqueue ставит module-local тип в очередь на сбор.
func (p *Parser) enqueue(obj *types.TypeName) {
	key := obj.Pkg().Path() + "." + obj.Name()
	if !p.done[key] {
		p.queue = append(p.queue, key)
	}
}

func typeParamNames(spec *ast.TypeSpec) []string {
	if spec.TypeParams == nil {
		return nil
	}
	var names []string
	for _, field := range spec.TypeParams.List {
		for _, ident := range field.Names {
			names = append(names, ident.Name)
		}
	}
	return names
}

func anyExported(names []*ast.Ident) bool {
	for _, ident := range names {
		if ident.IsExported() {
			return true
		}
	}
	return false
}

func hasTypeOverride(directives []string) bool {
	for _, directive := range directives {
		if strings.HasPrefix(directive, "type=") {
			return true
		}
	}
	return false
}

func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(t.X)
	case *ast.IndexListExpr:
		return embeddedName(t.X)
	default:
		return ""
	}
}

func readModulePath(projectRoot string) (string, error) {
	data, err := os.ReadFile(filepath.Join(projectRoot, "go.mod"))
	if err != nil {
		return "", errors.Wrap(err, "parser: read go.mod")
	}
	modulePath := modfile.ModulePath(data)
	if modulePath == "" {
		return "", errors.New("parser: go.mod without module path")
	}
	return modulePath, nil
}
