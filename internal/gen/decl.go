package gen

import (
	"go/ast"
	"go/token"
)

// Kind distinguishes the two declaration shapes the generator handles.
type Kind uint8

const (
	// KindRecord is a struct type with named or embedded fields.
	KindRecord Kind = iota
	// KindSum is a named basic type whose variants are the constants
	// declared with it.
	KindSum
)

func (k Kind) String() string {
	switch k {
	case KindRecord:
		return "record"
	case KindSum:
		return "sum"
	}
	return "unknown"
}

// Declaration is the annotated type shape under transformation.
//
// Declarations are never mutated once built by the source frontend. View
// synthesis clones them.
type Declaration struct {
	Name        string
	Kind        Kind
	TypeParams  []TypeParam
	Annotations []Annotation
	Fields      []Field   // KindRecord
	Variants    []Variant // KindSum
	Underlying  ast.Expr  // KindSum: the basic type
	Pos         token.Position

	Source *File
}

// TypeParam is one type parameter of a generic declaration.
type TypeParam struct {
	Name       string
	Constraint ast.Expr
}

// Field is one struct field. Fields declared together (X, Y int) are
// split into one Field each, sharing type and annotations.
type Field struct {
	Name        string
	Embedded    bool
	Type        ast.Expr
	Annotations []Annotation
	Pos         token.Position
}

// Blank reports whether the field cannot be referenced by name.
func (f Field) Blank() bool {
	return f.Name == "_"
}

// Variant is one constant of a sum declaration.
type Variant struct {
	Name string
	// Discriminant is the value expression, explicit or inherited by
	// implicit repetition inside a const block. Nil when absent.
	Discriminant ast.Expr
	Annotations  []Annotation
	Pos          token.Position
}

// Annotation is the tagged union of metadata attached to a declaration,
// field or variant. Raw input carries Plain, Scoped and MarkerList;
// synthesized Views carry only Plain and Delegate.
type Annotation interface {
	Position() token.Position
	annotation()
}

// Plain is metadata understood by the underlying framework: a struct tag
// entry, or a generator configuration key after unwrapping.
type Plain struct {
	Key   string
	Value string
	Pos   token.Position
}

// Scoped is raw marker-scoped content, e.g. `special(json:'x') default(json:'y')`.
type Scoped struct {
	Text string
	Pos  token.Position
}

// MarkerList is the raw body of a //many:markers directive.
type MarkerList struct {
	Text string
	Pos  token.Position
}

// Delegate routes a field through the dispatch capability of Marker.
type Delegate struct {
	Marker Marker
	Pos    token.Position
}

func (a Plain) Position() token.Position      { return a.Pos }
func (a Scoped) Position() token.Position     { return a.Pos }
func (a MarkerList) Position() token.Position { return a.Pos }
func (a Delegate) Position() token.Position   { return a.Pos }

func (Plain) annotation()      {}
func (Scoped) annotation()     {}
func (MarkerList) annotation() {}
func (Delegate) annotation()   {}

// clone returns a deep copy of d. AST nodes are shared: they are only
// read after parsing.
func (d *Declaration) clone() *Declaration {
	out := *d
	out.TypeParams = append([]TypeParam(nil), d.TypeParams...)
	out.Annotations = append([]Annotation(nil), d.Annotations...)
	out.Fields = make([]Field, len(d.Fields))
	for i, f := range d.Fields {
		f.Annotations = append([]Annotation(nil), f.Annotations...)
		out.Fields[i] = f
	}
	out.Variants = make([]Variant, len(d.Variants))
	for i, v := range d.Variants {
		v.Annotations = append([]Annotation(nil), v.Annotations...)
		out.Variants[i] = v
	}
	return &out
}

// plains returns the Plain annotations of list, in order.
func plains(list []Annotation) []Plain {
	var out []Plain
	for _, a := range list {
		if p, ok := a.(Plain); ok {
			out = append(out, p)
		}
	}
	return out
}

// delegate returns the Delegate annotation of list, if any.
func delegate(list []Annotation) (Delegate, bool) {
	for _, a := range list {
		if d, ok := a.(Delegate); ok {
			return d, true
		}
	}
	return Delegate{}, false
}

// shift moves pos forward by n columns on the same line.
func shift(pos token.Position, n int) token.Position {
	if !pos.IsValid() {
		return pos
	}
	pos.Offset += n
	pos.Column += n
	return pos
}
