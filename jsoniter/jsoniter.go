// Package jsoniter provides a JSON codec backed by json-iterator.
//
// The configuration of New is compatible with encoding/json, so shadow types
// and the As adapter encode identically under both JSON codecs. Each codec
// registers an extension for many.As, so values nested under a marker are
// encoded by the same API as the enclosing value.
package jsoniter

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/zoobzio/many"
)

// jsoniterCodec implements many.Codec for JSON through json-iterator.
type jsoniterCodec struct {
	api jsoniter.API
}

// New returns a JSON codec compatible with encoding/json.
func New() many.Codec {
	return newCodec(jsoniter.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
	})
}

// NewFastest returns a JSON codec using json-iterator's fastest settings.
// Output is not HTML-escaped and float precision is reduced.
func NewFastest() many.Codec {
	return newCodec(jsoniter.Config{
		EscapeHTML:                    false,
		MarshalFloatWith6Digits:       true,
		ObjectFieldMustBeSimpleString: true,
	})
}

// newCodec freezes cfg into a private API so the extension does not leak
// into json-iterator's shared configurations.
func newCodec(cfg jsoniter.Config) many.Codec {
	api := cfg.Froze()
	api.RegisterExtension(&adapterExtension{})
	return &jsoniterCodec{api: api}
}

// ContentType returns the MIME type for JSON.
func (c *jsoniterCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON.
func (c *jsoniterCodec) Marshal(v any) ([]byte, error) {
	return c.api.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func (c *jsoniterCodec) Unmarshal(data []byte, v any) error {
	return c.api.Unmarshal(data, v)
}
