// Package yaml provides a YAML codec implementation backed by
// gopkg.in/yaml.v3.
//
// The codec itself is marker-agnostic. Pass it to many.Marshal or
// many.Unmarshal, or to a many.Processor, to route values through their
// generated code for a marker; many.As fields encode through their
// MarshalYAML and UnmarshalYAML hooks.
package yaml

import (
	"github.com/zoobzio/many"
	"gopkg.in/yaml.v3"
)

// yamlCodec implements many.Codec for YAML.
type yamlCodec struct{}

// New returns a YAML codec.
func New() many.Codec {
	return &yamlCodec{}
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML.
func (c *yamlCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal decodes YAML data into v.
func (c *yamlCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
