package many

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/zoobzio/sentinel"
)

// scopedTag is the struct tag key holding marker-scoped configuration.
const scopedTag = "many"

func init() {
	sentinel.Tag(scopedTag)
}

// Processor binds a type, a marker and a codec.
//
// Processors are safe for concurrent use. Validation occurs automatically
// on first operation; call Validate to surface configuration errors at
// startup instead.
type Processor[T any, M any] struct {
	codec Codec

	// Validation state (runs once on first operation)
	validateOnce sync.Once
	validateErr  error

	// Fields of T carrying many tags (immutable after construction)
	scopedFields []string

	// Type metadata
	typeName string
	marker   string
}

// NewProcessor creates a new Processor encoding T under marker M with codec.
func NewProcessor[T any, M any](codec Codec) (*Processor[T, M], error) {
	if codec == nil {
		return nil, newConfigError(ErrMissingCodec, reflect.TypeFor[T]().String(), "")
	}

	p := &Processor[T, M]{
		codec:        codec,
		scopedFields: scanScopedFields[T](),
		typeName:     reflect.TypeFor[T]().String(),
		marker:       MarkerName[M](),
	}

	emitProcessorCreated(context.Background(), codec.ContentType(), p.typeName, p.marker)
	return p, nil
}

// Codec returns the codec the processor delegates to.
func (p *Processor[T, M]) Codec() Codec {
	return p.codec
}

// Validate checks that T's many tags are backed by generated code.
//
// A type with scoped tags but no generated dispatch would silently fall
// back to the codec, ignoring every marker group.
func (p *Processor[T, M]) Validate() error {
	return p.ensureValidated()
}

// ensureValidated runs validation once and caches the result.
func (p *Processor[T, M]) ensureValidated() error {
	p.validateOnce.Do(func() {
		p.validateErr = p.validateGenerated()
	})
	return p.validateErr
}

func (p *Processor[T, M]) validateGenerated() error {
	if len(p.scopedFields) == 0 {
		return nil
	}

	var zero T
	_, hasMarshaler := any(zero).(Marshaler)
	_, hasUnmarshaler := any(&zero).(Unmarshaler)
	if !hasMarshaler || !hasUnmarshaler || !declares(zero) {
		return newConfigError(ErrNotGenerated, p.typeName, p.scopedFields[0])
	}
	return nil
}

// Marshal encodes obj under the processor's marker.
func (p *Processor[T, M]) Marshal(ctx context.Context, obj *T) ([]byte, error) {
	if err := p.ensureValidated(); err != nil {
		return nil, err
	}

	start := time.Now()
	emitMarshalStart(ctx, p.codec.ContentType(), p.typeName, p.marker)

	var retErr error
	var retData []byte
	defer func() {
		emitMarshalComplete(ctx, p.codec.ContentType(), p.typeName, p.marker,
			len(retData), time.Since(start), retErr)
	}()

	if obj == nil {
		retData, retErr = p.codec.Marshal(nil)
		return retData, retErr
	}

	data, err := Marshal[M](p.codec, obj)
	if err != nil {
		retErr = newCodecError(ErrMarshal, p.marker, err)
		return nil, retErr
	}

	retData = data
	return retData, nil
}

// Unmarshal decodes data under the processor's marker.
func (p *Processor[T, M]) Unmarshal(ctx context.Context, data []byte) (*T, error) {
	if err := p.ensureValidated(); err != nil {
		return nil, err
	}

	start := time.Now()
	emitUnmarshalStart(ctx, p.codec.ContentType(), p.typeName, p.marker, len(data))

	var retErr error
	defer func() {
		emitUnmarshalComplete(ctx, p.codec.ContentType(), p.typeName, p.marker,
			time.Since(start), retErr)
	}()

	var obj T
	if err := Unmarshal[M](p.codec, data, &obj); err != nil {
		retErr = newCodecError(ErrUnmarshal, p.marker, err)
		return nil, retErr
	}

	return &obj, nil
}

// scanScopedFields lists the fields of T carrying a many tag.
func scanScopedFields[T any]() []string {
	if reflect.TypeFor[T]().Kind() != reflect.Struct {
		return nil
	}

	spec := sentinel.Scan[T]()
	var fields []string
	for _, field := range spec.Fields {
		if _, ok := field.Tags[scopedTag]; ok {
			fields = append(fields, field.Name)
		}
	}
	return fields
}
