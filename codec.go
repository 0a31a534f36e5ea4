package many

// Codec provides content-type aware marshaling.
//
// A Codec is the single-strategy framework every marker-specific encoding
// is delegated to. It never sees the marker: it is handed either the value
// itself or the generated shadow value that stands in for it.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}
