package many

import (
	"errors"
	"reflect"
)

// Marshal encodes v with c under marker M.
//
// When v has generated code declaring M, the codec receives the shadow value
// for M. Otherwise the codec receives v unchanged. The codec's output and
// error are returned as is.
func Marshal[M any](c Codec, v any) ([]byte, error) {
	view, err := View[M](v)
	if err != nil {
		return nil, err
	}
	return c.Marshal(view)
}

// Unmarshal decodes data with c into v under marker M.
// v must be a non-nil pointer.
func Unmarshal[M any](c Codec, data []byte, v any) error {
	d, err := Target[M](v)
	if err != nil {
		return err
	}
	if err := c.Unmarshal(data, d.Target); err != nil {
		return err
	}
	return d.commit()
}

// View returns the value a codec should encode for v under marker M.
// Values without a marker-specific encoding for M are returned unchanged.
func View[M any](v any) (any, error) {
	if v == nil || isNilPointer(v) {
		return v, nil
	}
	m, ok := v.(Marshaler)
	if !ok || !declares(v) {
		return v, nil
	}
	var marker M
	view, err := m.MarshalMany(marker)
	if errors.Is(err, ErrUnhandledMarker) {
		return v, nil
	}
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Target returns the decode target for v under marker M.
//
// v must be a non-nil pointer. Nil pointers reached through v are allocated
// while looking for an Unmarshaler, so **T resolves to T's generated code.
func Target[M any](v any) (Decoding, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return Decoding{}, ErrInvalidTarget
	}

	var marker M
	for {
		cur := rv.Interface()
		if u, ok := cur.(Unmarshaler); ok && declares(cur) {
			d, err := u.UnmarshalMany(marker)
			if errors.Is(err, ErrUnhandledMarker) {
				return Decoding{Target: v}, nil
			}
			return d, err
		}

		elem := rv.Elem()
		if elem.Kind() != reflect.Pointer {
			break
		}
		if elem.IsNil() {
			if !elem.CanSet() {
				break
			}
			elem.Set(reflect.New(elem.Type().Elem()))
		}
		rv = elem
	}

	return Decoding{Target: v}, nil
}

// Handles reports whether T has generated code declaring marker M.
func Handles[T, M any]() bool {
	var zero T
	var marker M
	candidate := any(zero)
	if isNilPointer(candidate) {
		candidate = reflect.New(reflect.TypeFor[T]().Elem()).Interface()
	}
	m, ok := candidate.(Marshaler)
	if !ok || !declares(candidate) {
		return false
	}
	_, err := m.MarshalMany(marker)
	return !errors.Is(err, ErrUnhandledMarker)
}

// MarkerName returns the printable name of marker type M.
func MarkerName[M any]() string {
	return reflect.TypeFor[M]().String()
}

// declares reports whether v's dispatch methods belong to its own type
// rather than to an embedded field.
func declares(v any) bool {
	o, ok := v.(Owner)
	return !ok || o.OwnsMany(v)
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
