package jsoniter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/zoobzio/many"
	manytest "github.com/zoobzio/many/testing"
)

func TestNew(t *testing.T) {
	if New() == nil {
		t.Error("New() should return non-nil codec")
	}
	if NewFastest() == nil {
		t.Error("NewFastest() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	for _, c := range []many.Codec{New(), NewFastest()} {
		if c.ContentType() != "application/json" {
			t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/json")
		}
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	c := New()

	type TestStruct struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}

	original := TestStruct{Name: "test", Value: 42}

	data, err := c.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored TestStruct
	if err := c.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if restored != original {
		t.Errorf("round-trip failed: got %+v, want %+v", restored, original)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	var v struct{}
	if err := New().Unmarshal([]byte("invalid json"), &v); err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}

// The compatible configuration produces the same bytes as encoding/json,
// including for shadow values and nested As fields.
func TestMatchesEncodingJSON(t *testing.T) {
	shape := manytest.SampleShape()

	for _, tc := range []struct {
		name string
		enc  func(many.Codec) ([]byte, error)
	}{
		{"default", func(c many.Codec) ([]byte, error) { return many.Marshal[manytest.DefaultMarker](c, &shape) }},
		{"special", func(c many.Codec) ([]byte, error) { return many.Marshal[manytest.SpecialMarker](c, &shape) }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.enc(New())
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			view, err := many.View[manytest.DefaultMarker](&shape)
			if tc.name == "special" {
				view, err = many.View[manytest.SpecialMarker](&shape)
			}
			if err != nil {
				t.Fatalf("View() error: %v", err)
			}
			want, err := json.Marshal(view)
			if err != nil {
				t.Fatalf("json.Marshal() error: %v", err)
			}
			if string(got) != string(want) {
				t.Errorf("Marshal() = %s, want %s", got, want)
			}
		})
	}
}

func TestMarkerRouting(t *testing.T) {
	c := NewFastest()
	p := manytest.SamplePoint()

	data, err := many.Marshal[manytest.SpecialMarker](c, &p)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored manytest.Point
	if err := many.Unmarshal[manytest.SpecialMarker](c, data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if restored != p {
		t.Errorf("round-trip failed: got %+v, want %+v", restored, p)
	}
}

type nested struct {
	Ratio many.As[float64, manytest.DefaultMarker]         `json:"ratio"`
	Point many.As[*manytest.Point, manytest.DefaultMarker] `json:"point,omitempty"`
	Count many.As[int, manytest.DefaultMarker]             `json:"count,omitempty"`
	Fill  many.As[manytest.Color, manytest.SpecialMarker]  `json:"fill,omitempty"`
}

// Values nested in As are encoded by the codec's own configuration.
func TestAdapter_UsesCodecConfig(t *testing.T) {
	in := nested{Ratio: many.Wrap[manytest.DefaultMarker](1.23456789)}

	tests := []struct {
		name  string
		codec many.Codec
		want  string
	}{
		{"compatible", New(), `{"ratio":1.23456789}`},
		{"fastest", NewFastest(), `{"ratio":1.234568}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.codec.Marshal(&in)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal() = %s, want %s", data, tt.want)
			}
		})
	}
}

func TestAdapter_OmitEmpty(t *testing.T) {
	c := New()
	point := manytest.SamplePoint()

	tests := []struct {
		name string
		in   nested
		want string
	}{
		{"empty", nested{}, `{"ratio":0}`},
		{"set", nested{
			Point: many.Wrap[manytest.DefaultMarker](&point),
			Count: many.Wrap[manytest.DefaultMarker](3),
			Fill:  many.Wrap[manytest.SpecialMarker](manytest.ColorRed),
		}, `{"ratio":0,"point":{"x":1,"y":2},"count":3,"fill":"red"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := c.Marshal(&tt.in)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal() = %s, want %s", data, tt.want)
			}
		})
	}
}

func TestAdapter_Decode(t *testing.T) {
	c := New()

	var out nested
	out.Point = many.Wrap[manytest.DefaultMarker](&manytest.Point{X: 9})
	if err := c.Unmarshal([]byte(`{"ratio":0.5,"point":null,"count":4,"fill":"verde"}`), &out); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if out.Ratio.Unwrap() != 0.5 || out.Count.Unwrap() != 4 {
		t.Errorf("Unmarshal() = %+v", out)
	}
	if out.Point.Unwrap() != nil {
		t.Error("null should clear a pointer")
	}
	if out.Fill.Unwrap() != manytest.ColorGreen {
		t.Errorf("Fill = %v, want ColorGreen", out.Fill.Unwrap())
	}

	if err := c.Unmarshal([]byte(`{"point":{"x":5,"y":6}}`), &out); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if p := out.Point.Unwrap(); p == nil || *p != (manytest.Point{X: 5, Y: 6}) {
		t.Errorf("Point = %+v", p)
	}

	err := c.Unmarshal([]byte(`{"fill":"purple"}`), &out)
	if err == nil || !strings.Contains(err.Error(), "purple") {
		t.Errorf("Unmarshal() error = %v, want unknown variant", err)
	}
}
