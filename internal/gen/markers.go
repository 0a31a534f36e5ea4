package gen

import (
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"strconv"
	"strings"
)

// Marker is one entry of a marker declaration: a name used in scoped
// annotations bound to the Go type that selects the encoding.
type Marker struct {
	Name string
	Type ast.Expr // *ast.Ident or *ast.SelectorExpr
	Pos  token.Position

	// Suffix distinguishes generated identifiers of this marker.
	Suffix string
}

// TypeText renders the marker type reference as written.
func (m Marker) TypeText() string {
	return exprString(m.Type)
}

// Markers is the ordered marker set of one declaration.
type Markers struct {
	list  []Marker
	index map[string]int
}

// Len returns the number of markers.
func (m *Markers) Len() int {
	return len(m.list)
}

// List returns the markers in declaration order.
func (m *Markers) List() []Marker {
	return m.list
}

// Lookup returns the marker with the given name.
func (m *Markers) Lookup(name string) (Marker, bool) {
	i, ok := m.index[name]
	if !ok {
		return Marker{}, false
	}
	return m.list[i], true
}

// Names returns marker names in declaration order.
func (m *Markers) Names() []string {
	names := make([]string, len(m.list))
	for i, mk := range m.list {
		names[i] = mk.Name
	}
	return names
}

// ParseMarkers collects every MarkerList annotation of the container into
// one ordered set. It fails on the first malformed entry.
func ParseMarkers(annotations []Annotation) (*Markers, error) {
	set := &Markers{index: make(map[string]int)}

	var last token.Position
	for _, a := range annotations {
		list, ok := a.(MarkerList)
		if !ok {
			continue
		}
		last = list.Pos
		entries, err := scanMarkerList(list)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if _, dup := set.index[entry.Name]; dup {
				return nil, diagnostic(ErrDuplicateMarker, entry.Pos,
					"duplicate marker key %q", entry.Name)
			}
			set.index[entry.Name] = len(set.list)
			set.list = append(set.list, entry)
		}
	}

	if len(set.list) == 0 {
		return nil, diagnostic(ErrEmptyMarkerSet, last,
			"at least one marker is required, declare it with //many:markers name=\"Type\"")
	}

	assignSuffixes(set.list)
	return set, nil
}

// scanMarkerList tokenizes `name="Type", other="pkg.Type"`.
func scanMarkerList(list MarkerList) ([]Marker, error) {
	var (
		s       scanner.Scanner
		scanErr *Diagnostic
		out     []Marker
	)

	src := []byte(list.Text)
	file := token.NewFileSet().AddFile("", -1, len(src))
	s.Init(file, src, func(pos token.Position, msg string) {
		if scanErr == nil {
			scanErr = diagnostic(ErrParse, shift(list.Pos, pos.Offset), "%s", msg)
		}
	}, 0)

	at := func(p token.Pos) token.Position {
		return shift(list.Pos, file.Offset(p))
	}
	next := func() (token.Pos, token.Token, string) {
		pos, tok, lit := s.Scan()
		// The scanner inserts a semicolon at end of input after an
		// identifier or literal.
		if tok == token.SEMICOLON && lit == "\n" {
			tok = token.EOF
		}
		return pos, tok, lit
	}

	pos, tok, lit := next()
	if tok == token.EOF {
		return nil, diagnostic(ErrEmptyMarkerSet, list.Pos, "empty //many:markers directive")
	}

	for {
		// Keywords such as default are valid marker names.
		if tok != token.IDENT && !tok.IsKeyword() {
			return nil, diagnostic(ErrParse, at(pos), "expected marker name, found %s", describe(tok, lit))
		}
		entry := Marker{Name: lit, Pos: at(pos)}

		pos, tok, lit = next()
		if tok != token.ASSIGN {
			return nil, diagnostic(ErrParse, at(pos), "expected '=' after marker name %q, found %s", entry.Name, describe(tok, lit))
		}

		pos, tok, lit = next()
		if tok != token.STRING {
			return nil, diagnostic(ErrParse, at(pos), "expected quoted marker type for %q, found %s", entry.Name, describe(tok, lit))
		}
		typ, err := parseMarkerType(lit, at(pos))
		if err != nil {
			return nil, err
		}
		entry.Type = typ
		out = append(out, entry)

		pos, tok, lit = next()
		if tok == token.EOF {
			break
		}
		if tok != token.COMMA {
			return nil, diagnostic(ErrParse, at(pos), "expected ',' between markers, found %s", describe(tok, lit))
		}
		pos, tok, lit = next()
		if tok == token.EOF {
			// Trailing comma.
			break
		}
	}

	if scanErr != nil {
		return nil, scanErr
	}
	return out, nil
}

// parseMarkerType parses the quoted type reference of a marker entry.
func parseMarkerType(lit string, pos token.Position) (ast.Expr, error) {
	text, err := strconv.Unquote(lit)
	if err != nil {
		return nil, diagnostic(ErrParse, pos, "invalid marker type literal %s", lit)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, diagnostic(ErrParse, pos, "empty marker type")
	}

	expr, err := parser.ParseExpr(text)
	if err != nil {
		return nil, diagnostic(ErrParse, pos, "invalid marker type %q: %v", text, err)
	}

	switch e := expr.(type) {
	case *ast.Ident:
		return e, nil
	case *ast.SelectorExpr:
		if _, ok := e.X.(*ast.Ident); ok {
			return e, nil
		}
	}
	return nil, diagnostic(ErrParse, pos, "marker type %q must be an identifier or a qualified identifier", text)
}

func describe(tok token.Token, lit string) string {
	switch tok {
	case token.EOF:
		return "end of directive"
	case token.IDENT, token.STRING, token.INT, token.FLOAT, token.CHAR:
		return strconv.Quote(lit)
	}
	return "'" + tok.String() + "'"
}
