package json

import (
	"testing"

	"github.com/zoobzio/many"
	manytest "github.com/zoobzio/many/testing"
)

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/json" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/json")
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

	if restored.Name != original.Name || restored.Value != original.Value {
		t.Errorf("round-trip failed: got %+v, want %+v", restored, original)
	}
}

func TestMarshalNil(t *testing.T) {
	c := New()

	data, err := c.Marshal(nil)
	if err != nil {
		t.Fatalf("Marshal(nil) error: %v", err)
	}

	if string(data) != "null" {
		t.Errorf("Marshal(nil) = %q, want %q", data, "null")
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	var v struct{}
	err := c.Unmarshal([]byte("invalid json"), &v)
	if err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}

func TestMarkerRouting(t *testing.T) {
	c := New()
	p := manytest.SamplePoint()

	data, err := many.Marshal[manytest.SpecialMarker](c, &p)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := `{"x_value":1,"y":2}`
	if string(data) != want {
		t.Errorf("Marshal() = %q, want %q", data, want)
	}

	var restored manytest.Point
	if err := many.Unmarshal[manytest.SpecialMarker](c, data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if restored != p {
		t.Errorf("round-trip failed: got %+v, want %+v", restored, p)
	}
}
