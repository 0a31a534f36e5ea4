package gen

import (
	"go/ast"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// EnumMode selects how a sum declaration appears on the wire.
type EnumMode uint8

const (
	// EnumValue encodes the constant's underlying value.
	EnumValue EnumMode = iota
	// EnumName encodes the variant's wire name.
	EnumName
)

const withDirect = "direct"

// View is a marker-specific clone of a declaration. Its annotations are
// only Plain entries (baseline merged with the marker's unwrapped
// configuration) and Delegate routes.
type View struct {
	// Name is the placeholder identifier; Original the declaration's.
	Name     string
	Original string
	Marker   Marker
	Decl     *Declaration

	// Sum declarations only.
	Enum     EnumMode
	Variants []WireVariant
}

// WireVariant is a variant resolved for one marker.
type WireVariant struct {
	Const   string
	Wire    string
	Aliases []string
}

// containerConfig is the unwrapped container configuration of one marker.
type containerConfig struct {
	renameAll  func(string) string
	trimPrefix string
	tags       []string
	with       *Delegate
	direct     bool
	enum       EnumMode
}

// Synthesize builds the View of decl for marker. Every field and variant
// is visited; all errors found are returned together.
func Synthesize(decl *Declaration, markers *Markers, marker Marker, cfg *Config) (*View, error) {
	s := &synthesizer{
		markers: markers,
		marker:  marker,
		diags:   &Diagnostics{},
	}

	view := &View{
		Name:     placeholderName(decl.Name, marker),
		Original: decl.Name,
		Marker:   marker,
	}

	out := decl.clone()
	cc := s.container(out, cfg)
	switch out.Kind {
	case KindRecord:
		out.Fields = s.fields(out, cc)
	case KindSum:
		out.Variants = s.variants(out)
		view.Enum = cc.enum
		view.Variants = s.wire(out.Variants, cc)
	}
	out.Name = view.Name
	view.Decl = out

	if err := s.diags.Err(); err != nil {
		return nil, err
	}
	return view, nil
}

type synthesizer struct {
	markers *Markers
	marker  Marker
	diags   *Diagnostics
}

// unwrap returns the entries of the current marker's groups in list, and
// the remaining Plain annotations. Other groups are discarded.
func (s *synthesizer) unwrap(list []Annotation) ([]Entry, []Plain) {
	var (
		entries []Entry
		rest    []Plain
	)
	for _, a := range list {
		switch a := a.(type) {
		case Plain:
			rest = append(rest, a)
		case Scoped:
			groups, err := ParseGroups(a)
			if err != nil {
				s.diags.Append(err)
				continue
			}
			for _, g := range groups {
				if g.Name == s.marker.Name {
					entries = append(entries, g.Entries...)
				}
			}
		}
	}

	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.Key] {
			s.diags.Add(ErrParse, e.Pos, "duplicate key %q for marker %q", e.Key, s.marker.Name)
		}
		seen[e.Key] = true
	}
	return entries, rest
}

func (s *synthesizer) resolveWith(e Entry) (*Delegate, bool) {
	if e.Value == withDirect {
		return nil, true
	}
	m, ok := s.markers.Lookup(e.Value)
	if !ok {
		s.diags.Add(ErrUnknownMarker, e.Pos,
			"unknown marker name %q, have you forgotten to add it to //many:markers?", e.Value)
		return nil, false
	}
	return &Delegate{Marker: m, Pos: e.Pos}, true
}

func (s *synthesizer) container(decl *Declaration, cfg *Config) containerConfig {
	cc := containerConfig{tags: cfg.tags()}

	entries, _ := s.unwrap(decl.Annotations)
	annotations := make([]Annotation, 0, len(entries))
	for _, e := range entries {
		annotations = append(annotations, Plain{Key: e.Key, Value: e.Value, Pos: e.Pos})

		switch e.Key {
		case "rename_all":
			fn, ok := renameCases[e.Value]
			if !ok {
				s.diags.Add(ErrParse, e.Pos, "unknown rename_all case %q", e.Value)
				continue
			}
			cc.renameAll = fn
		case "trim_prefix":
			cc.trimPrefix = e.Value
		case "tags":
			cc.tags = lo.Compact(lo.Map(strings.Split(e.Value, ","), func(t string, _ int) string {
				return strings.TrimSpace(t)
			}))
		case "with":
			d, ok := s.resolveWith(e)
			if ok {
				cc.with, cc.direct = d, d == nil
			}
		case "enum":
			if decl.Kind != KindSum {
				s.diags.Add(ErrUnsupported, e.Pos, "enum applies to named basic types only, %s is a struct", decl.Name)
				continue
			}
			switch e.Value {
			case "value":
				cc.enum = EnumValue
			case "name":
				cc.enum = EnumName
			default:
				s.diags.Add(ErrParse, e.Pos, "enum must be 'value' or 'name', got %q", e.Value)
			}
		default:
			s.diags.Add(ErrParse, e.Pos, "unknown container key %q", e.Key)
		}
	}
	decl.Annotations = annotations
	return cc
}

func (s *synthesizer) fields(decl *Declaration, cc containerConfig) []Field {
	out := make([]Field, len(decl.Fields))
	for i, f := range decl.Fields {
		s.nested(decl.Source, f.Type)

		entries, baseline := s.unwrap(f.Annotations)

		merged := append([]Plain(nil), baseline...)
		var (
			route    *Delegate
			explicit bool
		)
		for _, e := range entries {
			if e.Key == "with" {
				if d, ok := s.resolveWith(e); ok {
					route, explicit = d, true
				}
				continue
			}
			entry := Plain{Key: e.Key, Value: e.Value, Pos: e.Pos}
			if _, idx, ok := lo.FindIndexOf(merged, func(p Plain) bool { return p.Key == e.Key }); ok {
				merged[idx] = entry
			} else {
				merged = append(merged, entry)
			}
		}

		if cc.renameAll != nil && !f.Embedded && !f.Blank() {
			merged = fillNames(merged, cc.tags, cc.renameAll(f.Name))
		}

		if !explicit && !cc.direct {
			route = &Delegate{Marker: s.marker, Pos: f.Pos}
			if cc.with != nil {
				route = cc.with
			}
		}
		if f.Embedded || f.Blank() {
			if explicit && route != nil {
				s.diags.Add(ErrUnsupported, f.Pos, "field %s: embedded and blank fields cannot be routed", f.Name)
			}
			route = nil
		}

		f.Annotations = make([]Annotation, 0, len(merged)+1)
		for _, p := range merged {
			f.Annotations = append(f.Annotations, p)
		}
		if route != nil {
			f.Annotations = append(f.Annotations, *route)
		}
		out[i] = f
	}
	return out
}

// fillNames sets the name part of every configured tag key lacking one.
func fillNames(list []Plain, keys []string, name string) []Plain {
	for _, key := range keys {
		_, idx, ok := lo.FindIndexOf(list, func(p Plain) bool { return p.Key == key })
		if !ok {
			list = append(list, Plain{Key: key, Value: name})
			continue
		}
		if strings.HasPrefix(list[idx].Value, ",") || list[idx].Value == "" {
			list[idx].Value = name + list[idx].Value
		}
	}
	return list
}

// nested reports marker-scoped tags inside struct literals of expr; the
// emitter copies such types verbatim.
func (s *synthesizer) nested(file *File, expr ast.Expr) {
	if file == nil || expr == nil {
		return
	}
	scoped, err := file.nestedScoped(expr)
	if err != nil {
		s.diags.Append(err)
		return
	}
	for _, sc := range scoped {
		s.diags.Add(ErrUnsupported, sc.Pos, "marker-scoped tags inside nested struct types are not supported")
	}
}

func (s *synthesizer) variants(decl *Declaration) []Variant {
	out := make([]Variant, len(decl.Variants))
	for i, v := range decl.Variants {
		s.nested(decl.Source, v.Discriminant)

		entries, _ := s.unwrap(v.Annotations)
		v.Annotations = make([]Annotation, 0, len(entries))
		for _, e := range entries {
			switch e.Key {
			case "name", "alias":
			case "skip":
				if _, err := strconv.ParseBool(e.Value); err != nil {
					s.diags.Add(ErrParse, e.Pos, "skip must be 'true' or 'false', got %q", e.Value)
					continue
				}
			default:
				s.diags.Add(ErrParse, e.Pos, "unknown variant key %q", e.Key)
				continue
			}
			v.Annotations = append(v.Annotations, Plain{Key: e.Key, Value: e.Value, Pos: e.Pos})
		}
		out[i] = v
	}
	return out
}

// wire resolves names of the non-skipped variants and rejects collisions.
func (s *synthesizer) wire(variants []Variant, cc containerConfig) []WireVariant {
	var (
		out   []WireVariant
		owner = make(map[string]string)
	)
	for _, v := range variants {
		wv := WireVariant{Const: v.Name}
		skip := false
		for _, p := range plains(v.Annotations) {
			switch p.Key {
			case "name":
				wv.Wire = p.Value
			case "alias":
				for _, a := range strings.Split(p.Value, ",") {
					if a = strings.TrimSpace(a); a != "" {
						wv.Aliases = append(wv.Aliases, a)
					}
				}
			case "skip":
				skip, _ = strconv.ParseBool(p.Value)
			}
		}
		if skip {
			continue
		}
		if wv.Wire == "" {
			wv.Wire = strings.TrimPrefix(v.Name, cc.trimPrefix)
			if cc.renameAll != nil {
				wv.Wire = cc.renameAll(wv.Wire)
			}
		}

		if cc.enum == EnumName {
			for _, name := range append([]string{wv.Wire}, wv.Aliases...) {
				if prev, dup := owner[name]; dup {
					s.diags.Add(ErrDuplicateName, v.Pos,
						"wire name %q of %s already used by %s under marker %q", name, v.Name, prev, s.marker.Name)
					continue
				}
				owner[name] = v.Name
			}
		}
		out = append(out, wv)
	}
	return out
}
