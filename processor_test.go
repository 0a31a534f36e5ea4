package many

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
)

// testCodec is a simple JSON codec for testing.
type testCodec struct{}

func (c *testCodec) ContentType() string { return "application/json" }

func (c *testCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (c *testCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// failingCodec fails every operation.
type failingCodec struct{}

func (c *failingCodec) ContentType() string { return "application/x-failing" }

func (c *failingCodec) Marshal(any) ([]byte, error) { return nil, errCodec }

func (c *failingCodec) Unmarshal([]byte, any) error { return errCodec }

var (
	errCodec = errors.New("codec failure")
	errImpl  = errors.New("implementation failure")
)

type publicMarker struct{}

type internalMarker struct{}

// Account hides Secret under publicMarker. Its dispatch is written by hand
// in the shape manygen produces.
type Account struct {
	ID     string `json:"id"`
	Secret string `json:"secret" many:"public(json:'-')"`
}

type accountPublic struct {
	ID     string `json:"id"`
	Secret string `json:"-"`
}

func (a Account) MarshalMany(marker any) (any, error) {
	switch marker.(type) {
	case publicMarker:
		return &accountPublic{ID: a.ID, Secret: a.Secret}, nil
	}
	return nil, ErrUnhandledMarker
}

func (a *Account) UnmarshalMany(marker any) (Decoding, error) {
	switch marker.(type) {
	case publicMarker:
		shadow := &accountPublic{ID: a.ID, Secret: a.Secret}
		return Decoding{
			Target: shadow,
			Commit: func() error {
				a.ID = shadow.ID
				a.Secret = shadow.Secret
				return nil
			},
		}, nil
	}
	return Decoding{}, ErrUnhandledMarker
}

// Ungenerated carries a scoped tag without dispatch methods.
type Ungenerated struct {
	Name  string `json:"name"`
	Label string `json:"label" many:"public(json:'title')"`
}

// Simple has no scoped tags.
type Simple struct {
	ID string `json:"id"`
}

// Faulty fails in its marker implementations.
type Faulty struct {
	ID string `json:"id" many:"public(json:'key')"`
}

func (Faulty) MarshalMany(any) (any, error) { return nil, errImpl }

func (*Faulty) UnmarshalMany(any) (Decoding, error) { return Decoding{}, errImpl }

func TestNewProcessor(t *testing.T) {
	proc, err := NewProcessor[Account, publicMarker](&testCodec{})
	if err != nil {
		t.Fatalf("NewProcessor error: %v", err)
	}
	if proc.Codec().ContentType() != "application/json" {
		t.Errorf("Codec() = %v", proc.Codec())
	}
	if proc.marker != "many.publicMarker" {
		t.Errorf("marker = %q", proc.marker)
	}
	if len(proc.scopedFields) != 1 || proc.scopedFields[0] != "Secret" {
		t.Errorf("scopedFields = %v, want [Secret]", proc.scopedFields)
	}
}

func TestNewProcessor_NilCodec(t *testing.T) {
	_, err := NewProcessor[Account, publicMarker](nil)
	if !errors.Is(err, ErrMissingCodec) {
		t.Fatalf("NewProcessor error = %v, want ErrMissingCodec", err)
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Type != "many.Account" {
		t.Errorf("ConfigError = %+v", cfgErr)
	}
}

func TestProcessor_Validate(t *testing.T) {
	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{"generated", func() error {
			p, _ := NewProcessor[Account, publicMarker](&testCodec{})
			return p.Validate()
		}, nil},
		{"no scoped tags", func() error {
			p, _ := NewProcessor[Simple, publicMarker](&testCodec{})
			return p.Validate()
		}, nil},
		{"non-struct", func() error {
			p, _ := NewProcessor[int, publicMarker](&testCodec{})
			return p.Validate()
		}, nil},
		{"missing generated code", func() error {
			p, _ := NewProcessor[Ungenerated, publicMarker](&testCodec{})
			return p.Validate()
		}, ErrNotGenerated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			if tt.wantErr == nil && err != nil {
				t.Errorf("Validate error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestProcessor_Validate_NamesField(t *testing.T) {
	p, _ := NewProcessor[Ungenerated, publicMarker](&testCodec{})

	var cfgErr *ConfigError
	if err := p.Validate(); !errors.As(err, &cfgErr) {
		t.Fatalf("Validate error = %v, want ConfigError", err)
	}
	if cfgErr.Field != "Label" {
		t.Errorf("Field = %q, want Label", cfgErr.Field)
	}
}

func TestProcessor_Validate_CalledOnce(t *testing.T) {
	p, _ := NewProcessor[Ungenerated, publicMarker](&testCodec{})

	err1 := p.Validate()
	err2 := p.Validate()
	if err1 != err2 {
		t.Error("Validate should cache its result")
	}
}

func TestProcessor_Operations_FailWithoutGeneratedCode(t *testing.T) {
	p, _ := NewProcessor[Ungenerated, publicMarker](&testCodec{})
	ctx := context.Background()

	if _, err := p.Marshal(ctx, &Ungenerated{Name: "x"}); !errors.Is(err, ErrNotGenerated) {
		t.Errorf("Marshal error = %v, want ErrNotGenerated", err)
	}
	if _, err := p.Unmarshal(ctx, []byte(`{}`)); !errors.Is(err, ErrNotGenerated) {
		t.Errorf("Unmarshal error = %v, want ErrNotGenerated", err)
	}
}

func TestProcessor_Marshal(t *testing.T) {
	ctx := context.Background()
	account := &Account{ID: "1", Secret: "hunter2"}

	public, _ := NewProcessor[Account, publicMarker](&testCodec{})
	data, err := public.Marshal(ctx, account)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != `{"id":"1"}` {
		t.Errorf("public = %s", data)
	}

	internal, _ := NewProcessor[Account, internalMarker](&testCodec{})
	data, err = internal.Marshal(ctx, account)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != `{"id":"1","secret":"hunter2"}` {
		t.Errorf("undeclared marker = %s, want the plain encoding", data)
	}

	if account.Secret != "hunter2" {
		t.Error("Marshal must not modify its input")
	}
}

func TestProcessor_Marshal_Nil(t *testing.T) {
	p, _ := NewProcessor[Account, publicMarker](&testCodec{})

	data, err := p.Marshal(context.Background(), nil)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != "null" {
		t.Errorf("Marshal(nil) = %s", data)
	}
}

func TestProcessor_Unmarshal(t *testing.T) {
	p, _ := NewProcessor[Account, publicMarker](&testCodec{})

	got, err := p.Unmarshal(context.Background(), []byte(`{"id":"2","secret":"ignored"}`))
	if err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if got.ID != "2" || got.Secret != "" {
		t.Errorf("Unmarshal = %+v, want secret dropped", got)
	}
}

func TestProcessor_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		run      func() error
		sentinel error
		cause    error
	}{
		{"codec marshal", func() error {
			p, _ := NewProcessor[Account, publicMarker](&failingCodec{})
			_, err := p.Marshal(ctx, &Account{})
			return err
		}, ErrMarshal, errCodec},
		{"codec unmarshal", func() error {
			p, _ := NewProcessor[Account, publicMarker](&failingCodec{})
			_, err := p.Unmarshal(ctx, []byte(`{}`))
			return err
		}, ErrUnmarshal, errCodec},
		{"implementation marshal", func() error {
			p, _ := NewProcessor[Faulty, publicMarker](&testCodec{})
			_, err := p.Marshal(ctx, &Faulty{})
			return err
		}, ErrMarshal, errImpl},
		{"implementation unmarshal", func() error {
			p, _ := NewProcessor[Faulty, publicMarker](&testCodec{})
			_, err := p.Unmarshal(ctx, []byte(`{}`))
			return err
		}, ErrUnmarshal, errImpl},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("error = %v, want %v", err, tt.sentinel)
			}
			if !errors.Is(err, tt.cause) {
				t.Errorf("error = %v, want cause %v", err, tt.cause)
			}
			var codecErr *CodecError
			if errors.As(err, &codecErr) && codecErr.Marker != "many.publicMarker" {
				t.Errorf("Marker = %q", codecErr.Marker)
			}
		})
	}
}

func TestProcessor_Concurrent(t *testing.T) {
	p, _ := NewProcessor[Account, publicMarker](&testCodec{})
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("id-%d", i)
			data, err := p.Marshal(ctx, &Account{ID: id, Secret: "s"})
			if err != nil {
				errs <- err
				return
			}
			got, err := p.Unmarshal(ctx, data)
			if err != nil {
				errs <- err
				return
			}
			if got.ID != id {
				errs <- fmt.Errorf("ID = %q, want %q", got.ID, id)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
