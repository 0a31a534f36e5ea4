package gen

import "go/ast"

// Validate checks that every scoped annotation of decl names a declared
// marker. Only group names are inspected; group content is interpreted
// later, per marker. The whole declaration is visited before returning.
func Validate(decl *Declaration, markers *Markers) error {
	v := &validator{markers: markers, diags: &Diagnostics{}}

	v.annotations(decl.Annotations)
	for _, f := range decl.Fields {
		v.annotations(f.Annotations)
		v.nested(decl.Source, f.Type)
	}
	for _, variant := range decl.Variants {
		v.annotations(variant.Annotations)
		v.nested(decl.Source, variant.Discriminant)
	}

	return v.diags.Err()
}

type validator struct {
	markers *Markers
	diags   *Diagnostics
}

func (v *validator) annotations(list []Annotation) {
	for _, a := range list {
		if s, ok := a.(Scoped); ok {
			v.scoped(s)
		}
	}
}

// nested visits struct type literals inside a type or value expression.
func (v *validator) nested(file *File, expr ast.Expr) {
	if file == nil || expr == nil {
		return
	}
	scoped, err := file.nestedScoped(expr)
	v.diags.Append(err)
	for _, s := range scoped {
		v.scoped(s)
	}
}

func (v *validator) scoped(s Scoped) {
	groups, err := GroupNames(s)
	v.diags.Append(err)
	for _, g := range groups {
		if _, ok := v.markers.Lookup(g.Name); !ok {
			v.diags.Add(ErrUnknownMarker, g.Pos,
				"unknown marker name %q, have you forgotten to add it to //many:markers?", g.Name)
		}
	}
}
