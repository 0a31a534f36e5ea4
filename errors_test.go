package many

import (
	"errors"
	"testing"
)

func TestConfigError_Is(t *testing.T) {
	err := newConfigError(ErrNotGenerated, "User", "Password")

	if !errors.Is(err, ErrNotGenerated) {
		t.Error("ConfigError should unwrap to ErrNotGenerated")
	}
	if errors.Is(err, ErrMissingCodec) {
		t.Error("ConfigError should not match ErrMissingCodec")
	}
}

func TestConfigError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "full context",
			err:  newConfigError(ErrNotGenerated, "User", "Password"),
			want: "missing generated code for type User (field Password)",
		},
		{
			name: "type only",
			err:  &ConfigError{Err: ErrMissingCodec, Type: "User"},
			want: "missing codec for type User",
		},
		{
			name: "field only",
			err:  &ConfigError{Err: ErrNotGenerated, Field: "Password"},
			want: "missing generated code (field Password)",
		},
		{
			name: "bare",
			err:  &ConfigError{Err: ErrMissingCodec},
			want: "missing codec",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCodecError_Is(t *testing.T) {
	cause := errors.New("invalid json")
	err := newCodecError(ErrUnmarshal, "Public", cause)

	if !errors.Is(err, ErrUnmarshal) {
		t.Error("CodecError should unwrap to ErrUnmarshal")
	}
	if !errors.Is(err, cause) {
		t.Error("CodecError should unwrap to its cause")
	}
	if errors.Is(err, ErrMarshal) {
		t.Error("CodecError should not match ErrMarshal")
	}
}

func TestCodecError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "with cause",
			err:  newCodecError(ErrMarshal, "Public", errors.New("boom")),
			want: "marshal failed (marker Public): boom",
		},
		{
			name: "without cause",
			err:  newCodecError(ErrUnmarshal, "Public", nil),
			want: "unmarshal failed (marker Public)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCodecError_WrapsVariantError(t *testing.T) {
	err := newCodecError(ErrUnmarshal, "Public", UnknownVariant("Color", "purple"))

	if !errors.Is(err, ErrUnknownVariant) {
		t.Error("CodecError should expose ErrUnknownVariant through its cause")
	}
	var verr *VariantError
	if !errors.As(err, &verr) {
		t.Fatal("errors.As should find the VariantError")
	}
	if verr.Type != "Color" || verr.Value != "purple" {
		t.Errorf("VariantError = %+v", verr)
	}
}

func TestUnknownVariant(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"name", "purple", `unknown variant "purple" for Color`},
		{"value", 42, `unknown variant "42" for Color`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := UnknownVariant("Color", tt.value)
			if got := err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(err, ErrUnknownVariant) {
				t.Error("should unwrap to ErrUnknownVariant")
			}
		})
	}
}

func TestSentinelErrors_Distinct(t *testing.T) {
	sentinels := []error{
		ErrUnhandledMarker,
		ErrUnknownVariant,
		ErrNotGenerated,
		ErrMissingCodec,
		ErrInvalidTarget,
		ErrUnmarshal,
		ErrMarshal,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v should not match %v", a, b)
			}
		}
	}
}
