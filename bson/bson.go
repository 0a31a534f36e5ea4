// Package bson provides a BSON codec implementation backed by the mongo
// driver.
//
// The codec itself is marker-agnostic. Pass it to many.Marshal or
// many.Unmarshal, or to a many.Processor, to route values through their
// generated code for a marker; many.As fields encode through their
// MarshalBSONValue and UnmarshalBSONValue hooks.
package bson

import (
	"github.com/zoobzio/many"
	"go.mongodb.org/mongo-driver/bson"
)

// bsonCodec implements many.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec.
func New() many.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as BSON.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes BSON data into v.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	return bson.Unmarshal(data, v)
}
