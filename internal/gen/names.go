package gen

import (
	"fmt"
	"go/ast"
	"go/types"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

// Direction selects the generated half of a dispatch implementation.
type Direction uint8

const (
	Marshal Direction = iota
	Unmarshal
)

func (d Direction) String() string {
	if d == Marshal {
		return "marshal"
	}
	return "unmarshal"
}

func (d Direction) suffix() string {
	if d == Marshal {
		return "Enc"
	}
	return "Dec"
}

// assignSuffixes derives a distinct identifier suffix for every marker.
// Names that camel-case to nothing, or to an already used suffix, fall
// back to a positional suffix.
func assignSuffixes(list []Marker) {
	used := make(map[string]bool, len(list))
	for i := range list {
		suffix := strcase.ToCamel(list[i].Name)
		if suffix == "" || used[suffix] {
			suffix = fmt.Sprintf("M%d", i)
		}
		used[suffix] = true
		list[i].Suffix = suffix
	}
}

// placeholderName is the identifier of a View. Shadow types append the
// direction to it.
func placeholderName(decl string, m Marker) string {
	return lowerFirst(decl) + "Many" + m.Suffix
}

// shadowName is the shadow type of view for one direction.
func shadowName(view *View, dir Direction) string {
	return view.Name + dir.suffix()
}

func marshalMethod(m Marker) string {
	return "marshalMany" + m.Suffix
}

func unmarshalMethod(m Marker) string {
	return "unmarshalMany" + m.Suffix
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}

// renameCases maps rename_all values to converters. Short and long
// spellings are both accepted.
var renameCases = map[string]func(string) string{
	"lower":                strings.ToLower,
	"lowercase":            strings.ToLower,
	"upper":                strings.ToUpper,
	"UPPERCASE":            strings.ToUpper,
	"camel":                strcase.ToLowerCamel,
	"camelCase":            strcase.ToLowerCamel,
	"pascal":               strcase.ToCamel,
	"PascalCase":           strcase.ToCamel,
	"snake":                strcase.ToSnake,
	"snake_case":           strcase.ToSnake,
	"screaming_snake":      strcase.ToScreamingSnake,
	"SCREAMING_SNAKE_CASE": strcase.ToScreamingSnake,
	"kebab":                strcase.ToKebab,
	"kebab-case":           strcase.ToKebab,
	"screaming_kebab":      strcase.ToScreamingKebab,
	"SCREAMING-KEBAB-CASE": strcase.ToScreamingKebab,
}

// exprString renders an identifier, selector or simple type expression.
func exprString(e ast.Expr) string {
	if e == nil {
		return ""
	}
	return types.ExprString(e)
}
