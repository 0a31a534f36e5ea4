package gen

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/printer"
	"go/token"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/structtag"
	"github.com/samber/lo"
)

// RuntimePath is the import path of the runtime package generated code
// depends on.
const RuntimePath = "github.com/zoobzio/many"

// Fragment is the generated code of one declaration and direction:
// declarations only, without package clause or imports.
type Fragment struct {
	Type      string
	Direction Direction
	Code      []byte

	// Imports lists the source file imports the code references.
	Imports []*ast.ImportSpec
}

// emitter writes the code of one fragment.
type emitter struct {
	buf   bytes.Buffer
	decl  *Declaration
	file  *File
	used  map[string]bool
	diags *Diagnostics
}

func newEmitter(decl *Declaration) *emitter {
	return &emitter{
		decl:  decl,
		file:  decl.Source,
		used:  make(map[string]bool),
		diags: &Diagnostics{},
	}
}

func (e *emitter) printf(format string, args ...any) {
	fmt.Fprintf(&e.buf, format, args...)
}

// expr prints a source expression and records the packages it references.
func (e *emitter) expr(x ast.Expr) string {
	e.reference(x)
	var b strings.Builder
	fset := token.NewFileSet()
	if e.file != nil {
		fset = e.file.Fset
	}
	if err := printer.Fprint(&b, fset, x); err != nil {
		e.diags.Add(ErrUnsupported, e.decl.Pos, "cannot print expression: %v", err)
	}
	return b.String()
}

func (e *emitter) reference(x ast.Expr) {
	ast.Inspect(x, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			if id, ok := sel.X.(*ast.Ident); ok {
				e.used[id.Name] = true
			}
			return false
		}
		return true
	})
}

// markerType prints a marker's type reference.
func (e *emitter) markerType(m Marker) string {
	e.reference(m.Type)
	return m.TypeText()
}

// typeParams renders the constrained parameter list, e.g. [K comparable, V any].
func (e *emitter) typeParams() string {
	if len(e.decl.TypeParams) == 0 {
		return ""
	}
	parts := lo.Map(e.decl.TypeParams, func(tp TypeParam, _ int) string {
		return tp.Name + " " + e.expr(tp.Constraint)
	})
	return "[" + strings.Join(parts, ", ") + "]"
}

// typeArgs renders the bare parameter list, e.g. [K, V].
func (e *emitter) typeArgs() string {
	if len(e.decl.TypeParams) == 0 {
		return ""
	}
	names := lo.Map(e.decl.TypeParams, func(tp TypeParam, _ int) string { return tp.Name })
	return "[" + strings.Join(names, ", ") + "]"
}

// receiver is the original type as used in method receivers.
func (e *emitter) receiver() string {
	return e.decl.Name + e.typeArgs()
}

// routable reports whether a field of type x can be wrapped in As.
func routable(x ast.Expr) bool {
	switch t := x.(type) {
	case *ast.Ident:
		return !predeclared[t.Name]
	case *ast.SelectorExpr:
		return true
	case *ast.StarExpr:
		return routable(t.X)
	case *ast.ParenExpr:
		return routable(t.X)
	case *ast.IndexExpr, *ast.IndexListExpr:
		return true
	}
	return false
}

// xmlNameField is the field encoding/xml reads the element name from; it
// must keep its xml.Name type.
const xmlNameField = "XMLName"

// shape classifies a routed field type. Emptiness of the wrapped value is
// only visible to json and xml omitempty for pointers and basic kinds.
type shape int

const (
	shapeOther shape = iota
	shapePointer
	shapeStruct
	shapeBasic
)

// shapeOf resolves the shape of a field type against the declarations of
// the source file. Imported and parameter types are shapeOther.
func (e *emitter) shapeOf(x ast.Expr) shape {
	switch t := x.(type) {
	case *ast.ParenExpr:
		return e.shapeOf(t.X)
	case *ast.StarExpr:
		return shapePointer
	case *ast.IndexExpr:
		return e.shapeOf(t.X)
	case *ast.IndexListExpr:
		return e.shapeOf(t.X)
	case *ast.Ident:
		if e.file == nil {
			return shapeOther
		}
		ts, ok := e.file.typeSpec(t.Name)
		if !ok || ts.Assign.IsValid() {
			return shapeOther
		}
		switch u := ts.Type.(type) {
		case *ast.StructType:
			return shapeStruct
		case *ast.Ident:
			if basicTypes[u.Name] {
				return shapeBasic
			}
		}
	}
	return shapeOther
}

// tagOptions returns the options of the Plain tag key of f.
func tagOptions(f Field, key string) []string {
	for _, p := range plains(f.Annotations) {
		if p.Key == key {
			return strings.Split(p.Value, ",")[1:]
		}
	}
	return nil
}

// route returns the marker a field is wrapped with, if any.
//
// A field stays unwrapped when As would change its plain encoding: json's
// string option does not apply to marshalers, and omitempty never omits
// a struct, so an empty value of another shape must stay visible.
func (e *emitter) route(f Field) (Marker, bool) {
	d, ok := delegate(f.Annotations)
	if !ok || f.Embedded || f.Blank() || f.Name == xmlNameField || !routable(f.Type) {
		return Marker{}, false
	}
	jsonOpts := tagOptions(f, "json")
	if lo.Contains(jsonOpts, "string") {
		return Marker{}, false
	}
	jsonOmit := lo.Contains(jsonOpts, "omitempty")
	xmlOmit := lo.Contains(tagOptions(f, "xml"), "omitempty")
	if !jsonOmit && !xmlOmit {
		return d.Marker, true
	}
	switch e.shapeOf(f.Type) {
	case shapePointer, shapeStruct:
		return d.Marker, true
	case shapeBasic:
		if !xmlOmit {
			return d.Marker, true
		}
	}
	return Marker{}, false
}

// tag renders the Plain annotations of a field as a struct tag literal.
// A routed pointer or basic field with json omitempty also gets omitzero:
// encoding/json consults As.IsZero for it, while json-iterator keeps using
// omitempty.
func (e *emitter) tag(f Field, routed bool) string {
	list := plains(f.Annotations)
	if len(list) == 0 {
		return ""
	}
	omitzero := routed && lo.Contains([]shape{shapePointer, shapeBasic}, e.shapeOf(f.Type))
	tags := &structtag.Tags{}
	for _, p := range list {
		parts := strings.Split(p.Value, ",")
		t := &structtag.Tag{Key: p.Key, Name: parts[0], Options: parts[1:]}
		if omitzero && p.Key == "json" && t.HasOption("omitempty") && !t.HasOption("omitzero") {
			t.Options = append(t.Options, "omitzero")
		}
		if err := tags.Set(t); err != nil {
			e.diags.Add(ErrParse, p.Pos, "field %s: invalid tag %s: %v", f.Name, p.Key, err)
		}
	}
	s := tags.String()
	if strings.Contains(s, "`") {
		return strconv.Quote(s)
	}
	return "`" + s + "`"
}

// shadow writes the View's package-level struct type.
func (e *emitter) shadow(view *View, name string) {
	e.printf("type %s%s struct {\n", name, e.typeParams())
	for _, f := range view.Decl.Fields {
		typ := e.expr(f.Type)
		m, routed := e.route(f)
		if routed {
			typ = fmt.Sprintf("many.As[%s, %s]", typ, e.markerType(m))
		}
		if f.Embedded {
			e.printf("\t%s", typ)
		} else {
			e.printf("\t%s %s", f.Name, typ)
		}
		if tag := e.tag(f, routed); tag != "" {
			e.printf(" %s", tag)
		}
		e.printf("\n")
	}
	e.printf("}\n\n")
}

// load writes the shadow composite literal copying fields out of v.
func (e *emitter) load(view *View, name string) {
	e.printf("%s%s{\n", name, e.typeArgs())
	for _, f := range view.Decl.Fields {
		if f.Blank() {
			continue
		}
		if m, ok := e.route(f); ok {
			e.printf("\t\t%s: many.Wrap[%s](v.%s),\n", f.Name, e.markerType(m), f.Name)
			continue
		}
		e.printf("\t\t%s: v.%s,\n", f.Name, f.Name)
	}
	e.printf("\t}")
}

func (e *emitter) recordMarshal(view *View) {
	name := shadowName(view, Marshal)
	e.shadow(view, name)

	e.printf("func (v %s) %s() (any, error) {\n", e.receiver(), marshalMethod(view.Marker))
	e.printf("\treturn &")
	e.load(view, name)
	e.printf(", nil\n}\n\n")
}

func (e *emitter) recordUnmarshal(view *View) {
	name := shadowName(view, Unmarshal)
	e.shadow(view, name)

	e.printf("func (v *%s) %s() (many.Decoding, error) {\n", e.receiver(), unmarshalMethod(view.Marker))
	e.printf("\tshadow := &")
	e.load(view, name)
	e.printf("\n\treturn many.Decoding{\n\t\tTarget: shadow,\n\t\tCommit: func() error {\n")
	for _, f := range view.Decl.Fields {
		if f.Blank() {
			continue
		}
		if _, ok := e.route(f); ok {
			e.printf("\t\t\tv.%s = shadow.%s.Unwrap()\n", f.Name, f.Name)
			continue
		}
		e.printf("\t\t\tv.%s = shadow.%s\n", f.Name, f.Name)
	}
	e.printf("\t\t\treturn nil\n\t\t},\n\t}, nil\n}\n\n")
}

func (e *emitter) sumMarshal(view *View) {
	e.printf("func (v %s) %s() (any, error) {\n", e.receiver(), marshalMethod(view.Marker))
	if view.Enum == EnumValue {
		e.printf("\treturn v, nil\n}\n\n")
		return
	}
	e.printf("\tswitch {\n")
	for _, wv := range view.Variants {
		e.printf("\tcase v == %s:\n\t\treturn %s, nil\n", wv.Const, strconv.Quote(wv.Wire))
	}
	e.printf("\t}\n\treturn nil, many.UnknownVariant(%s, v)\n}\n\n", strconv.Quote(view.Original))
}

func (e *emitter) sumUnmarshal(view *View) {
	e.printf("func (v *%s) %s() (many.Decoding, error) {\n", e.receiver(), unmarshalMethod(view.Marker))
	if view.Enum == EnumValue {
		e.printf("\treturn many.Decoding{Target: v}, nil\n}\n\n")
		return
	}
	e.printf("\tvar shadow string\n")
	e.printf("\treturn many.Decoding{\n\t\tTarget: &shadow,\n\t\tCommit: func() error {\n")
	e.printf("\t\t\tswitch shadow {\n")
	for _, wv := range view.Variants {
		names := lo.Map(append([]string{wv.Wire}, wv.Aliases...), func(n string, _ int) string {
			return strconv.Quote(n)
		})
		e.printf("\t\t\tcase %s:\n\t\t\t\t*v = %s\n", strings.Join(names, ", "), wv.Const)
	}
	e.printf("\t\t\tdefault:\n\t\t\t\treturn many.UnknownVariant(%s, shadow)\n\t\t\t}\n", strconv.Quote(view.Original))
	e.printf("\t\t\treturn nil\n\t\t},\n\t}, nil\n}\n\n")
}

// dispatch writes the exported method selecting a per-marker implementation.
func (e *emitter) dispatch(markers *Markers, dir Direction) {
	if dir == Marshal {
		e.printf("// MarshalMany implements many.Marshaler.\n")
		e.printf("func (v %s) MarshalMany(marker any) (any, error) {\n", e.receiver())
	} else {
		e.printf("// UnmarshalMany implements many.Unmarshaler.\n")
		e.printf("func (v *%s) UnmarshalMany(marker any) (many.Decoding, error) {\n", e.receiver())
	}
	e.printf("\tswitch marker.(type) {\n")
	for _, m := range markers.List() {
		e.printf("\tcase %s:\n", e.markerType(m))
		if dir == Marshal {
			e.printf("\t\treturn v.%s()\n", marshalMethod(m))
		} else {
			e.printf("\t\treturn v.%s()\n", unmarshalMethod(m))
		}
	}
	if dir == Marshal {
		e.printf("\t}\n\treturn nil, many.ErrUnhandledMarker\n}\n\n")
	} else {
		e.printf("\t}\n\treturn many.Decoding{}, many.ErrUnhandledMarker\n}\n\n")
	}
}

// owner writes OwnsMany, which lets the runtime ignore dispatch methods
// promoted into a type embedding this one.
func (e *emitter) owner() {
	recv := e.receiver()
	e.printf("// OwnsMany implements many.Owner.\n")
	e.printf("func (%s) OwnsMany(v any) bool {\n", recv)
	e.printf("\tswitch v.(type) {\n\tcase %s, *%s:\n\t\treturn true\n\t}\n\treturn false\n}\n\n", recv, recv)
}

// imports resolves referenced package names against the source file.
func (e *emitter) imports() []*ast.ImportSpec {
	names := lo.Keys(e.used)
	sort.Strings(names)

	var out []*ast.ImportSpec
	for _, name := range names {
		if e.file == nil {
			break
		}
		spec, ok := e.file.imports[name]
		if !ok {
			e.diags.Add(ErrUnsupported, e.decl.Pos,
				"%s: cannot resolve package %q, import it in %s", e.decl.Name, name, e.file.Path)
			continue
		}
		out = append(out, spec)
	}
	return out
}

// emit renders the fragment of one direction from the marker views.
func emit(decl *Declaration, markers *Markers, views []*View, dir Direction) (*Fragment, error) {
	e := newEmitter(decl)

	for _, view := range views {
		switch {
		case decl.Kind == KindRecord && dir == Marshal:
			e.recordMarshal(view)
		case decl.Kind == KindRecord:
			e.recordUnmarshal(view)
		case dir == Marshal:
			e.sumMarshal(view)
		default:
			e.sumUnmarshal(view)
		}
	}
	e.dispatch(markers, dir)
	if dir == Marshal {
		e.owner()
	}

	imports := e.imports()
	if err := e.diags.Err(); err != nil {
		return nil, err
	}
	return &Fragment{
		Type:      decl.Name,
		Direction: dir,
		Code:      e.buf.Bytes(),
		Imports:   imports,
	}, nil
}
