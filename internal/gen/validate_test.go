package gen

import (
	"errors"
	"strings"
	"testing"
)

func declFrom(t *testing.T, src, name string) *Declaration {
	t.Helper()
	file, err := ParseFile("decl.go", src)
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	decl, ok := file.Lookup(name)
	if !ok {
		t.Fatalf("declaration %s not found", name)
	}
	return decl
}

func markersOf(t *testing.T, decl *Declaration) *Markers {
	t.Helper()
	markers, err := ParseMarkers(decl.Annotations)
	if err != nil {
		t.Fatalf("ParseMarkers error: %v", err)
	}
	return markers
}

func TestValidate_Valid(t *testing.T) {
	decl := declFrom(t, pointSource, "Point")
	if err := Validate(decl, markersOf(t, decl)); err != nil {
		t.Errorf("Validate error: %v", err)
	}
}

func TestValidate_UnknownMarker(t *testing.T) {
	src := `package p

//many:markers default="DefaultMarker", special="SpecialMarker"
//many:config spacial(rename_all:'snake')
type T struct {
	A int ` + "`many:\"special(json:'a')\"`" + `
	B int ` + "`many:\"speshal(json:'b') default(json:'b')\"`" + `
}
`
	decl := declFrom(t, src, "T")
	err := Validate(decl, markersOf(t, decl))
	if !errors.Is(err, ErrUnknownMarker) {
		t.Fatalf("Validate error = %v, want ErrUnknownMarker", err)
	}

	var diags *DiagnosticsError
	if !errors.As(err, &diags) {
		t.Fatalf("error is %T, want *DiagnosticsError", err)
	}
	if len(diags.Items) != 2 {
		t.Fatalf("got %d diagnostics, want 2 (every unknown name reported)", len(diags.Items))
	}
	if !strings.Contains(diags.Items[0].Msg, `unknown marker name "spacial", have you forgotten to add it to //many:markers?`) {
		t.Errorf("first message = %q", diags.Items[0].Msg)
	}
	if diags.Items[0].Pos.Line != 4 || diags.Items[0].Pos.Column != 15 {
		t.Errorf("first position = %d:%d, want 4:15", diags.Items[0].Pos.Line, diags.Items[0].Pos.Column)
	}
	if diags.Items[1].Pos.Line != 7 {
		t.Errorf("second position line = %d, want 7", diags.Items[1].Pos.Line)
	}
}

func TestValidate_NestedStruct(t *testing.T) {
	src := `package p

//many:markers default="DefaultMarker"
type T struct {
	Inner struct {
		A int ` + "`many:\"unknown(json:'a')\"`" + `
	}
}
`
	decl := declFrom(t, src, "T")
	if err := Validate(decl, markersOf(t, decl)); !errors.Is(err, ErrUnknownMarker) {
		t.Errorf("Validate error = %v, want ErrUnknownMarker from nested struct", err)
	}
}

func TestValidate_Variants(t *testing.T) {
	src := `package p

//many:markers default="DefaultMarker"
type Level int

const (
	//many:config nope(name:'low')
	Low Level = iota
	High
)
`
	decl := declFrom(t, src, "Level")
	if err := Validate(decl, markersOf(t, decl)); !errors.Is(err, ErrUnknownMarker) {
		t.Errorf("Validate error = %v, want ErrUnknownMarker from variant", err)
	}
}

func TestValidate_SyntaxAndUnknownTogether(t *testing.T) {
	src := `package p

//many:markers default="DefaultMarker"
type T struct {
	A int ` + "`many:\"default(json:'a'\"`" + `
	B int ` + "`many:\"other(json:'b')\"`" + `
}
`
	decl := declFrom(t, src, "T")
	err := Validate(decl, markersOf(t, decl))
	if !errors.Is(err, ErrParse) {
		t.Errorf("Validate error = %v, want ErrParse", err)
	}
	if !errors.Is(err, ErrUnknownMarker) {
		t.Errorf("Validate error = %v, want ErrUnknownMarker as well", err)
	}
}

func TestValidate_IgnoresGroupContent(t *testing.T) {
	src := `package p

//many:markers default="DefaultMarker"
type T struct {
	A int ` + "`many:\"default(bogus:'x' json:'a')\"`" + `
}
`
	decl := declFrom(t, src, "T")
	if err := Validate(decl, markersOf(t, decl)); err != nil {
		t.Errorf("Validate error = %v, want nil", err)
	}
}

func TestValidate_UnknownAfterSyntaxErrorInSameTag(t *testing.T) {
	src := `package p

//many:markers default="DefaultMarker"
type T struct {
	A int ` + "`many:\"9lives(json:'a') other(json:'b')\"`" + `
}
`
	decl := declFrom(t, src, "T")
	err := Validate(decl, markersOf(t, decl))
	if !errors.Is(err, ErrParse) {
		t.Errorf("Validate error = %v, want ErrParse", err)
	}
	if !errors.Is(err, ErrUnknownMarker) {
		t.Errorf("Validate error = %v, want ErrUnknownMarker for the later group", err)
	}
}
