// Package xml provides a XML codec implementation backed by encoding/xml.
//
// The codec itself is marker-agnostic. Pass it to many.Marshal or
// many.Unmarshal, or to a many.Processor, to route values through their
// generated code for a marker; many.As fields encode through their
// MarshalXML and UnmarshalXML hooks.
package xml

import (
	"encoding/xml"

	"github.com/zoobzio/many"
)

// xmlCodec implements many.Codec for XML.
type xmlCodec struct{}

// New returns a XML codec.
func New() many.Codec {
	return &xmlCodec{}
}

// ContentType returns the MIME type for XML.
func (c *xmlCodec) ContentType() string {
	return "application/xml"
}

// Marshal encodes v as XML.
func (c *xmlCodec) Marshal(v any) ([]byte, error) {
	return xml.Marshal(v)
}

// Unmarshal decodes XML data into v.
func (c *xmlCodec) Unmarshal(data []byte, v any) error {
	return xml.Unmarshal(data, v)
}
