// Package msgpack provides a MessagePack codec implementation backed by
// github.com/vmihailenco/msgpack/v5.
//
// The codec itself is marker-agnostic. Pass it to many.Marshal or
// many.Unmarshal, or to a many.Processor, to route values through their
// generated code for a marker; many.As fields encode through their
// EncodeMsgpack and DecodeMsgpack hooks.
package msgpack

import (
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/many"
)

// msgpackCodec implements many.Codec for MessagePack.
type msgpackCodec struct{}

// New returns a MessagePack codec.
func New() many.Codec {
	return &msgpackCodec{}
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackCodec) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack.
func (c *msgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal decodes MessagePack data into v.
func (c *msgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
