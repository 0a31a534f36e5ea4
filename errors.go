package many

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrUnhandledMarker indicates a type does not declare the requested marker.
	// Marshal and Unmarshal treat it as a request to fall back to the codec.
	ErrUnhandledMarker = errors.New("unhandled marker")

	// ErrUnknownVariant indicates an enum value or wire name has no variant
	// under the requested marker.
	ErrUnknownVariant = errors.New("unknown variant")

	// ErrNotGenerated indicates a type carries many struct tags but has no
	// generated dispatch methods.
	ErrNotGenerated = errors.New("missing generated code")

	// ErrMissingCodec indicates a processor was built without a codec.
	ErrMissingCodec = errors.New("missing codec")

	// ErrInvalidTarget indicates an unmarshal target that is not a non-nil pointer.
	ErrInvalidTarget = errors.New("invalid unmarshal target")

	// ErrUnmarshal indicates the codec failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")
)

// ConfigError represents a processor configuration error.
// It wraps a sentinel error with additional context about the type and field.
type ConfigError struct {
	Err   error  // Underlying sentinel error (ErrNotGenerated, etc.)
	Type  string // Type name that triggered the error
	Field string // Field name that triggered the error
}

func (e *ConfigError) Error() string {
	if e.Type != "" && e.Field != "" {
		return fmt.Sprintf("%s for type %s (field %s)", e.Err.Error(), e.Type, e.Field)
	}
	if e.Type != "" {
		return fmt.Sprintf("%s for type %s", e.Err.Error(), e.Type)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s (field %s)", e.Err.Error(), e.Field)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err    error  // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Marker string // Marker the operation ran under
	Cause  error  // Original error from the codec or the generated code
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (marker %s): %v", e.Err.Error(), e.Marker, e.Cause)
	}
	return fmt.Sprintf("%s (marker %s)", e.Err.Error(), e.Marker)
}

// Unwrap exposes both the sentinel and the cause to errors.Is and errors.As.
func (e *CodecError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// VariantError reports a value with no variant under the active marker.
type VariantError struct {
	Type  string // Enum type name
	Value string // Offending value or wire name
}

func (e *VariantError) Error() string {
	return fmt.Sprintf("%s %q for %s", ErrUnknownVariant.Error(), e.Value, e.Type)
}

func (e *VariantError) Unwrap() error {
	return ErrUnknownVariant
}

// UnknownVariant is called by generated code when an enum value or wire
// name does not map to a variant.
func UnknownVariant(typeName string, value any) error {
	return &VariantError{Type: typeName, Value: fmt.Sprint(value)}
}

// newConfigError creates a ConfigError for a type that cannot be processed.
func newConfigError(sentinel error, typeName, field string) error {
	return &ConfigError{
		Err:   sentinel,
		Type:  typeName,
		Field: field,
	}
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, marker string, cause error) error {
	return &CodecError{
		Err:    sentinel,
		Marker: marker,
		Cause:  cause,
	}
}
