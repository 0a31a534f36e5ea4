package many

import "reflect"

// As associates a value with marker M so it can be embedded in a context
// driven by a plain codec.
//
// Encoding an As encodes the wrapped value under M, decoding it decodes
// under M. Generated shadow types use As for every field routed through
// the active marker, which is how a field of another multi-marker type
// follows the same marker recursively.
//
//	type Envelope struct {
//	    Kind string                 `json:"kind"`
//	    Body many.As[Point, Public] `json:"body"`
//	}
type As[T any, M any] struct {
	value T
}

// Wrap associates v with marker M.
func Wrap[M any, T any](v T) As[T, M] {
	return As[T, M]{value: v}
}

// Unwrap returns the wrapped value.
func (a As[T, M]) Unwrap() T {
	return a.value
}

// IsZero reports whether the wrapped value is zero. A pointer is zero only
// when nil. Codecs that honor IsZero for omitempty (yaml, bson, msgpack)
// and json's omitzero use it.
func (a As[T, M]) IsZero() bool {
	rv := reflect.ValueOf(&a.value).Elem()
	switch rv.Kind() {
	case reflect.Pointer:
		return rv.IsNil()
	case reflect.Interface, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return true
		}
	}
	if z, ok := any(a.value).(interface{ IsZero() bool }); ok {
		return z.IsZero()
	}
	return rv.IsZero()
}

// decode resolves the decode target for the wrapped value, runs fn on it
// and commits the result.
func (a *As[T, M]) decode(fn func(target any) error) error {
	d, err := Target[M](&a.value)
	if err != nil {
		return err
	}
	if err := fn(d.Target); err != nil {
		return err
	}
	return d.commit()
}

// clearNullable resets nillable wrapped values on a null input.
// Other kinds keep their value, matching encoding/json.
func (a *As[T, M]) clearNullable() {
	rv := reflect.ValueOf(&a.value).Elem()
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		var zero T
		a.value = zero
	}
}

// Adapter is implemented by *As. Codec packages that run their own engine
// use it in place of the encoding/json hooks, so nested views are encoded
// with the same configuration as the enclosing value.
type Adapter interface {
	// ViewMany returns the value to encode in place of the adapter.
	ViewMany() (any, error)

	// TargetMany returns the decode target of the wrapped value.
	TargetMany() (Decoding, error)

	// ResetMany applies a null input.
	ResetMany()

	// EmptyMany reports whether encoding/json's omitempty would omit the
	// wrapped value.
	EmptyMany() bool
}

// ViewMany implements Adapter.
func (a As[T, M]) ViewMany() (any, error) {
	return View[M](a.value)
}

// TargetMany implements Adapter.
func (a *As[T, M]) TargetMany() (Decoding, error) {
	return Target[M](&a.value)
}

// ResetMany implements Adapter.
func (a *As[T, M]) ResetMany() {
	a.clearNullable()
}

// EmptyMany implements Adapter.
func (a As[T, M]) EmptyMany() bool {
	rv := reflect.ValueOf(&a.value).Elem()
	switch rv.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return rv.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return rv.IsZero()
	}
	return false
}
