package many

import (
	"reflect"
	"sync"
)

// registryKey combines type, marker and codec for cache lookup.
type registryKey struct {
	typ         reflect.Type
	marker      reflect.Type
	contentType string
}

var (
	registry   = make(map[registryKey]any)
	registryMu sync.RWMutex
)

// Use returns a cached processor or builds a new one.
// The processor is cached by type, marker and codec content type.
func Use[T any, M any](codec Codec) (*Processor[T, M], error) {
	if codec == nil {
		return NewProcessor[T, M](codec)
	}

	key := registryKey{
		typ:         reflect.TypeFor[T](),
		marker:      reflect.TypeFor[M](),
		contentType: codec.ContentType(),
	}

	// Fast path: read-lock cache check
	registryMu.RLock()
	if cached, ok := registry[key]; ok {
		registryMu.RUnlock()
		return cached.(*Processor[T, M]), nil
	}
	registryMu.RUnlock()

	// Slow path: build and cache with write-lock
	registryMu.Lock()
	defer registryMu.Unlock()

	// Double-check pattern
	if cached, ok := registry[key]; ok {
		return cached.(*Processor[T, M]), nil
	}

	processor, err := NewProcessor[T, M](codec)
	if err != nil {
		return nil, err
	}

	registry[key] = processor
	return processor, nil
}

// Reset clears the processor registry.
// This is primarily useful for test isolation.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[registryKey]any)
}
