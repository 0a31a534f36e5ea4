// Package many provides several independently configured encodings for a
// single Go type, selected at compile time by a marker type.
//
// The encoding itself is always done by an ordinary single-strategy codec
// (encoding/json, yaml, msgpack, bson, xml). A generator, manygen, reads
// marker-scoped struct tags and emits one shadow type per marker whose plain
// struct tags carry that marker's configuration. At runtime the value is
// copied into the shadow and the shadow is handed to the codec.
//
// # Markers
//
// A marker is any concrete type used only as a compile-time tag:
//
//	type Default struct{}
//	type Public struct{}
//
// # Declaring markers
//
// Markers are declared on the type with a directive, scoped configuration
// lives in the many struct tag:
//
//	//many:markers default="Default", public="Public"
//	type User struct {
//	    ID       string `json:"id"`
//	    Password string `json:"password" many:"public(json:'-')"`
//	}
//
// Running manygen (usually through go generate) produces user_many.go.
// Tags outside the many key apply under every marker; a marker group
// replaces the entry with the same key.
//
// # Encoding
//
//	data, err := many.Marshal[Public](json.New(), &user)
//	err = many.Unmarshal[Default](json.New(), data, &user)
//
// Types without generated code, and markers a type does not declare, fall
// back to the codec unchanged. Nested fields are routed through the same
// marker with the As adapter, which is also usable directly wherever a plain
// codec is in charge:
//
//	payload := struct {
//	    User many.As[User, Public] `json:"user"`
//	}{User: many.Wrap[Public](user)}
//
// # Codec Providers
//
// The following codec implementations are available as subpackages:
//
//   - json - JSON encoding (application/json)
//   - jsoniter - JSON encoding through json-iterator (application/json)
//   - xml - XML encoding (application/xml)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
package many

// Marshaler is implemented by generated code for types declaring markers.
//
// MarshalMany receives the zero value of a marker type and returns the
// value the codec should encode in place of the receiver. Markers the type
// does not declare return ErrUnhandledMarker.
type Marshaler interface {
	MarshalMany(marker any) (any, error)
}

// Unmarshaler is implemented by generated code for types declaring markers.
//
// UnmarshalMany returns the target the codec should decode into and the
// write-back into the receiver. Markers the type does not declare return
// ErrUnhandledMarker.
type Unmarshaler interface {
	UnmarshalMany(marker any) (Decoding, error)
}

// Owner is implemented by generated code next to the dispatch methods.
//
// OwnsMany reports whether v is the type that declares them. It is false
// when the methods are promoted from an embedded field, in which case the
// value falls back to the codec unchanged.
type Owner interface {
	OwnsMany(v any) bool
}

// Decoding pairs a decode target with the step that copies it back into
// the original value.
type Decoding struct {
	// Target is handed to the codec's Unmarshal.
	Target any

	// Commit runs after a successful decode. Nil when Target is the
	// original value.
	Commit func() error
}

func (d Decoding) commit() error {
	if d.Commit == nil {
		return nil
	}
	return d.Commit()
}
