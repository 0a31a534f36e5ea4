package bson

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
	if c.ContentType() != "application/bson" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/bson")
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	c := New()

	type TestStruct struct {
		Name  string `bson:"name"`
		Value int    `bson:"value"`
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

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	var v struct{}
	err := c.Unmarshal([]byte("invalid bson"), &v)
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

	var keys map[string]any
	if err := c.Unmarshal(data, &keys); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if _, ok := keys["x_value"]; !ok {
		t.Errorf("keys = %v, want x_value", keys)
	}
	if _, ok := keys["x"]; ok {
		t.Errorf("keys = %v, want no x", keys)
	}

	var restored manytest.Point
	if err := many.Unmarshal[manytest.SpecialMarker](c, data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if restored != p {
		t.Errorf("round-trip failed: got %+v, want %+v", restored, p)
	}
}
