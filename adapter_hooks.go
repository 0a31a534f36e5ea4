package many

import (
	"bytes"
	"encoding/json"
	"encoding/xml"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"gopkg.in/yaml.v3"
)

// Hooks for every codec provided by this module. Each one resolves the
// marker-specific view and hands it back to the codec already in charge,
// so encoder state (indentation, struct tag settings) carries through.
// The JSON hooks are bound to encoding/json; the jsoniter codec handles As
// through Adapter instead.

var jsonNull = []byte("null")

// MarshalJSON implements json.Marshaler.
func (a As[T, M]) MarshalJSON() ([]byte, error) {
	view, err := View[M](a.value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(view)
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *As[T, M]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		a.clearNullable()
		return nil
	}
	return a.decode(func(target any) error {
		return json.Unmarshal(data, target)
	})
}

// MarshalYAML implements yaml.Marshaler.
func (a As[T, M]) MarshalYAML() (any, error) {
	return View[M](a.value)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *As[T, M]) UnmarshalYAML(node *yaml.Node) error {
	if node.ShortTag() == "!!null" {
		a.clearNullable()
		return nil
	}
	return a.decode(node.Decode)
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (a As[T, M]) EncodeMsgpack(enc *msgpack.Encoder) error {
	view, err := View[M](a.value)
	if err != nil {
		return err
	}
	return enc.Encode(view)
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (a *As[T, M]) DecodeMsgpack(dec *msgpack.Decoder) error {
	code, err := dec.PeekCode()
	if err != nil {
		return err
	}
	if code == msgpcode.Nil {
		a.clearNullable()
		return dec.DecodeNil()
	}
	return a.decode(dec.Decode)
}

// MarshalBSONValue implements bson.ValueMarshaler.
func (a As[T, M]) MarshalBSONValue() (bsontype.Type, []byte, error) {
	view, err := View[M](a.value)
	if err != nil {
		return 0, nil, err
	}
	return bson.MarshalValue(view)
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler.
func (a *As[T, M]) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bsontype.Null {
		a.clearNullable()
		return nil
	}
	raw := bson.RawValue{Type: t, Value: data}
	return a.decode(raw.Unmarshal)
}

// MarshalXML implements xml.Marshaler.
func (a As[T, M]) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	view, err := View[M](a.value)
	if err != nil {
		return err
	}
	return e.EncodeElement(view, start)
}

// UnmarshalXML implements xml.Unmarshaler.
func (a *As[T, M]) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return a.decode(func(target any) error {
		return d.DecodeElement(target, &start)
	})
}
