// Package json provides a JSON codec implementation backed by encoding/json.
//
// The codec itself is marker-agnostic. Pass it to many.Marshal or
// many.Unmarshal, or to a many.Processor, to route values through their
// generated code for a marker; many.As fields encode through their
// MarshalJSON and UnmarshalJSON hooks.
package json

import (
	"encoding/json"

	"github.com/zoobzio/many"
)

// jsonCodec implements many.Codec for JSON.
type jsonCodec struct{}

// New returns a JSON codec.
func New() many.Codec {
	return &jsonCodec{}
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON.
func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
