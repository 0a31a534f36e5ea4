package jsoniter

import (
	"reflect"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
	"github.com/zoobzio/many"
)

var adapterType = reflect.TypeFor[many.Adapter]()

// adapterExtension encodes many.As fields with the codec's own API rather
// than the encoding/json hooks, and applies omitempty to the wrapped value.
type adapterExtension struct {
	jsoniter.DummyExtension
}

func isAdapter(typ reflect2.Type) bool {
	t := typ.Type1()
	return t.Kind() == reflect.Struct && reflect.PointerTo(t).Implements(adapterType)
}

func (*adapterExtension) CreateEncoder(typ reflect2.Type) jsoniter.ValEncoder {
	if !isAdapter(typ) {
		return nil
	}
	return &adapterEncoder{typ: typ}
}

func (*adapterExtension) CreateDecoder(typ reflect2.Type) jsoniter.ValDecoder {
	if !isAdapter(typ) {
		return nil
	}
	return &adapterDecoder{typ: typ}
}

// adapterOf returns a pointer to the As stored at ptr.
func adapterOf(typ reflect2.Type, ptr unsafe.Pointer) many.Adapter {
	return reflect.NewAt(typ.Type1(), ptr).Interface().(many.Adapter)
}

type adapterEncoder struct {
	typ reflect2.Type
}

func (e *adapterEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return adapterOf(e.typ, ptr).EmptyMany()
}

func (e *adapterEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	view, err := adapterOf(e.typ, ptr).ViewMany()
	if err != nil {
		if stream.Error == nil {
			stream.Error = err
		}
		return
	}
	stream.WriteVal(view)
}

type adapterDecoder struct {
	typ reflect2.Type
}

func (d *adapterDecoder) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	a := adapterOf(d.typ, ptr)
	if iter.ReadNil() {
		a.ResetMany()
		return
	}
	target, err := a.TargetMany()
	if err != nil {
		setError(iter, err)
		return
	}
	iter.ReadVal(target.Target)
	if iter.Error != nil || target.Commit == nil {
		return
	}
	if err := target.Commit(); err != nil {
		setError(iter, err)
	}
}

func setError(iter *jsoniter.Iterator, err error) {
	if iter.Error == nil {
		iter.Error = err
	}
}
