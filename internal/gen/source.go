package gen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/fatih/structtag"
)

const (
	markersDirective = "//many:markers"
	configDirective  = "//many:config"

	// scopedTagKey is the struct tag key holding marker-scoped field configuration.
	scopedTagKey = "many"
)

// File is one parsed Go source file and the annotated declarations it holds.
type File struct {
	Path    string
	Package string
	Fset    *token.FileSet
	AST     *ast.File
	Decls   []*Declaration

	// imports maps local package names to import specs.
	imports map[string]*ast.ImportSpec
}

// ParseFile parses src (or the file at filename when src is nil) and
// builds a Declaration for every type carrying a many directive.
//
// Syntax errors abort immediately. Unsupported shapes are reported
// together.
func ParseFile(filename string, src any) (*File, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, diagnostic(ErrParse, token.Position{Filename: filename}, "%v", err)
	}

	file := &File{
		Path:    filename,
		Package: f.Name.Name,
		Fset:    fset,
		AST:     f,
		imports: make(map[string]*ast.ImportSpec),
	}
	for _, spec := range f.Imports {
		file.imports[importName(spec)] = spec
	}

	consts := collectConsts(f)

	var diags Diagnostics
	for _, d := range f.Decls {
		gd, ok := d.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)
			doc := ts.Doc
			if doc == nil && len(gd.Specs) == 1 {
				doc = gd.Doc
			}
			annotations := file.directives(doc)
			if len(annotations) == 0 {
				continue
			}

			decl, err := file.declaration(ts, annotations, consts)
			if err != nil {
				diags.Append(err)
				continue
			}
			file.Decls = append(file.Decls, decl)
		}
	}

	if err := diags.Err(); err != nil {
		return nil, err
	}
	return file, nil
}

// Position converts a token.Pos of the file.
func (f *File) Position(p token.Pos) token.Position {
	return f.Fset.Position(p)
}

// Lookup returns the annotated declaration with the given name.
func (f *File) Lookup(name string) (*Declaration, bool) {
	for _, d := range f.Decls {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// typeSpec returns the type declared in the file under name.
func (f *File) typeSpec(name string) (*ast.TypeSpec, bool) {
	if f.AST == nil {
		return nil, false
	}
	for _, d := range f.AST.Decls {
		gd, ok := d.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			if ts := spec.(*ast.TypeSpec); ts.Name.Name == name {
				return ts, true
			}
		}
	}
	return nil, false
}

func (f *File) declaration(ts *ast.TypeSpec, annotations []Annotation, consts []constSpec) (*Declaration, error) {
	decl := &Declaration{
		Name:        ts.Name.Name,
		Annotations: annotations,
		Pos:         f.Position(ts.Name.Pos()),
		Source:      f,
	}

	if ts.Assign.IsValid() {
		return nil, diagnostic(ErrUnsupported, decl.Pos, "type alias %s cannot carry many directives", decl.Name)
	}

	if ts.TypeParams != nil {
		for _, field := range ts.TypeParams.List {
			for _, name := range field.Names {
				decl.TypeParams = append(decl.TypeParams, TypeParam{Name: name.Name, Constraint: field.Type})
			}
		}
	}

	switch t := ts.Type.(type) {
	case *ast.StructType:
		decl.Kind = KindRecord
		fields, err := f.fields(t)
		if err != nil {
			return nil, err
		}
		decl.Fields = fields
	case *ast.Ident:
		if !basicTypes[t.Name] {
			return nil, diagnostic(ErrUnsupported, decl.Pos,
				"%s: only struct types and named basic types can carry many directives", decl.Name)
		}
		if len(decl.TypeParams) > 0 {
			return nil, diagnostic(ErrUnsupported, decl.Pos, "%s: generic enum types are not supported", decl.Name)
		}
		decl.Kind = KindSum
		decl.Underlying = t
		decl.Variants = f.variants(decl.Name, consts)
	default:
		return nil, diagnostic(ErrUnsupported, decl.Pos,
			"%s: only struct types and named basic types can carry many directives", decl.Name)
	}

	return decl, nil
}

func (f *File) fields(st *ast.StructType) ([]Field, error) {
	var (
		out   []Field
		diags Diagnostics
	)
	for _, field := range st.Fields.List {
		annotations, err := f.tagAnnotations(field.Tag)
		if err != nil {
			diags.Append(err)
			continue
		}

		if len(field.Names) == 0 {
			out = append(out, Field{
				Name:        embeddedName(field.Type),
				Embedded:    true,
				Type:        field.Type,
				Annotations: annotations,
				Pos:         f.Position(field.Type.Pos()),
			})
			continue
		}
		for _, name := range field.Names {
			out = append(out, Field{
				Name:        name.Name,
				Type:        field.Type,
				Annotations: annotations,
				Pos:         f.Position(name.Pos()),
			})
		}
	}
	if err := diags.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// tagAnnotations splits a struct tag into Plain entries and the Scoped
// content of the many key.
func (f *File) tagAnnotations(lit *ast.BasicLit) ([]Annotation, error) {
	if lit == nil {
		return nil, nil
	}
	pos := f.Position(lit.Pos())

	raw, err := strconv.Unquote(lit.Value)
	if err != nil {
		return nil, diagnostic(ErrParse, pos, "invalid struct tag %s", lit.Value)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	tags, err := structtag.Parse(raw)
	if err != nil {
		return nil, diagnostic(ErrParse, pos, "invalid struct tag %s: %v", lit.Value, err)
	}

	var out []Annotation
	for _, tag := range tags.Tags() {
		if tag.Key == scopedTagKey {
			value := tag.Value()
			if strings.TrimSpace(value) == "" {
				continue
			}
			// Point at the value inside the literal; exact for raw strings.
			off := 1
			if i := strings.Index(raw, scopedTagKey+`:"`); i >= 0 {
				off += i + len(scopedTagKey) + 2
			}
			out = append(out, Scoped{Text: value, Pos: shift(pos, off)})
			continue
		}
		out = append(out, Plain{Key: tag.Key, Value: tag.Value(), Pos: pos})
	}
	return out, nil
}

// directives extracts many directives from a comment group.
func (f *File) directives(doc *ast.CommentGroup) []Annotation {
	if doc == nil {
		return nil
	}
	var out []Annotation
	for _, c := range doc.List {
		pos := f.Position(c.Slash)
		switch {
		case hasDirective(c.Text, markersDirective):
			text, off := directiveText(c.Text, markersDirective)
			out = append(out, MarkerList{Text: text, Pos: shift(pos, off)})
		case hasDirective(c.Text, configDirective):
			text, off := directiveText(c.Text, configDirective)
			out = append(out, Scoped{Text: text, Pos: shift(pos, off)})
		}
	}
	return out
}

func hasDirective(text, directive string) bool {
	if !strings.HasPrefix(text, directive) {
		return false
	}
	rest := text[len(directive):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

// directiveText returns the directive body and its offset in the comment.
func directiveText(text, directive string) (string, int) {
	rest := text[len(directive):]
	trimmed := strings.TrimLeft(rest, " \t")
	off := len(directive) + len(rest) - len(trimmed)
	return strings.TrimRight(trimmed, " \t"), off
}

// constSpec is one constant name with its resolved type and value, after
// implicit repetition inside const blocks.
type constSpec struct {
	name  *ast.Ident
	typ   ast.Expr
	value ast.Expr
	spec  *ast.ValueSpec
	doc   *ast.CommentGroup
}

func collectConsts(f *ast.File) []constSpec {
	var out []constSpec
	for _, d := range f.Decls {
		gd, ok := d.(*ast.GenDecl)
		if !ok || gd.Tok != token.CONST {
			continue
		}
		var (
			typ    ast.Expr
			values []ast.Expr
		)
		for _, s := range gd.Specs {
			vs := s.(*ast.ValueSpec)
			if vs.Type != nil || len(vs.Values) > 0 {
				typ, values = vs.Type, vs.Values
			}
			doc := vs.Doc
			if doc == nil && len(gd.Specs) == 1 {
				doc = gd.Doc
			}
			for i, name := range vs.Names {
				c := constSpec{name: name, typ: typ, spec: vs, doc: doc}
				if i < len(values) {
					c.value = values[i]
				}
				out = append(out, c)
			}
		}
	}
	return out
}

func (f *File) variants(typeName string, consts []constSpec) []Variant {
	var out []Variant
	for _, c := range consts {
		id, ok := c.typ.(*ast.Ident)
		if !ok || id.Name != typeName || c.name.Name == "_" {
			continue
		}
		annotations := f.directives(c.doc)
		annotations = append(annotations, f.directives(c.spec.Comment)...)
		out = append(out, Variant{
			Name:         c.name.Name,
			Discriminant: c.value,
			Annotations:  annotations,
			Pos:          f.Position(c.name.Pos()),
		})
	}
	return out
}

// nestedScoped returns the Scoped annotations of struct type literals
// nested anywhere inside expr.
func (f *File) nestedScoped(expr ast.Expr) ([]Scoped, error) {
	if expr == nil {
		return nil, nil
	}
	var (
		out   []Scoped
		diags Diagnostics
	)
	ast.Inspect(expr, func(n ast.Node) bool {
		st, ok := n.(*ast.StructType)
		if !ok {
			return true
		}
		for _, field := range st.Fields.List {
			annotations, err := f.tagAnnotations(field.Tag)
			if err != nil {
				diags.Append(err)
				continue
			}
			for _, a := range annotations {
				if s, ok := a.(Scoped); ok {
					out = append(out, s)
				}
			}
		}
		return true
	})
	return out, diags.Err()
}

// embeddedName is the implicit field name of an embedded type.
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
	case *ast.ParenExpr:
		return embeddedName(t.X)
	}
	return fmt.Sprintf("%T", expr)
}

var versionSuffix = regexp.MustCompile(`^v[0-9]+$`)

// importName returns the local name an import is referenced by.
func importName(spec *ast.ImportSpec) string {
	if spec.Name != nil {
		return spec.Name.Name
	}
	p, err := strconv.Unquote(spec.Path.Value)
	if err != nil {
		return ""
	}
	name := path.Base(p)
	if versionSuffix.MatchString(name) && path.Dir(p) != "." {
		name = path.Base(path.Dir(p))
	}
	if i := strings.Index(name, ".v"); i > 0 {
		name = name[:i]
	}
	name = strings.TrimPrefix(name, "go-")
	return strings.ReplaceAll(name, "-", "_")
}

var basicTypes = map[string]bool{
	"bool": true, "string": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	"byte": true, "rune": true,
	"float32": true, "float64": true,
	"complex64": true, "complex128": true,
}

// predeclared lists identifiers that name builtin types; fields of these
// types are never routed.
var predeclared = func() map[string]bool {
	m := map[string]bool{"any": true, "error": true, "comparable": true}
	for k := range basicTypes {
		m[k] = true
	}
	return m
}()
