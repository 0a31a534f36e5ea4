package gen

import (
	"errors"
	"fmt"
	"go/token"
	"sort"
	"strings"
)

// Sentinel errors for programmatic error handling.
// Every Diagnostic wraps exactly one of them.
var (
	// ErrParse indicates malformed annotation syntax or a malformed marker value.
	ErrParse = errors.New("parse error")

	// ErrDuplicateMarker indicates the same marker name was declared twice.
	ErrDuplicateMarker = errors.New("duplicate marker key")

	// ErrEmptyMarkerSet indicates a declaration with no markers.
	ErrEmptyMarkerSet = errors.New("empty marker set")

	// ErrUnknownMarker indicates a scoped annotation naming an undeclared marker.
	ErrUnknownMarker = errors.New("unknown marker")

	// ErrConflictingImplementation indicates two markers resolving to the same
	// marker type, which would give the type two implementations for it.
	ErrConflictingImplementation = errors.New("conflicting implementation")

	// ErrDuplicateName indicates two variants sharing a wire name under one marker.
	ErrDuplicateName = errors.New("duplicate wire name")

	// ErrUnsupported indicates a declaration shape the generator cannot handle.
	ErrUnsupported = errors.New("unsupported declaration")
)

// Diagnostic is one positioned generation error.
type Diagnostic struct {
	Err error // Underlying sentinel error
	Pos token.Position
	Msg string
}

func (d *Diagnostic) Error() string {
	if d.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", d.Pos, d.Msg)
	}
	return d.Msg
}

func (d *Diagnostic) Unwrap() error {
	return d.Err
}

// diagnostic creates a Diagnostic wrapping sentinel.
func diagnostic(sentinel error, pos token.Position, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Err: sentinel,
		Pos: pos,
		Msg: fmt.Sprintf(format, args...),
	}
}

// Diagnostics accumulates errors over one pass. Adding never stops the
// pass; callers inspect Err once the traversal completes.
type Diagnostics struct {
	items []*Diagnostic
}

// Add records a diagnostic.
func (d *Diagnostics) Add(sentinel error, pos token.Position, format string, args ...any) {
	d.items = append(d.items, diagnostic(sentinel, pos, format, args...))
}

// Append records err, flattening Diagnostic and DiagnosticsError values.
// Errors of any other type are recorded as ErrParse without position.
func (d *Diagnostics) Append(err error) {
	if err == nil {
		return
	}
	var list *DiagnosticsError
	if errors.As(err, &list) {
		d.items = append(d.items, list.Items...)
		return
	}
	var one *Diagnostic
	if errors.As(err, &one) {
		d.items = append(d.items, one)
		return
	}
	d.items = append(d.items, &Diagnostic{Err: ErrParse, Msg: err.Error()})
}

// Merge appends every diagnostic of other.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}
	d.items = append(d.items, other.items...)
}

// Len returns the number of recorded diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.items)
}

// Items returns the recorded diagnostics. Do not modify the returned slice.
func (d *Diagnostics) Items() []*Diagnostic {
	return d.items
}

// Err returns nil when nothing was recorded, otherwise a DiagnosticsError
// holding every diagnostic sorted by position with duplicates removed.
func (d *Diagnostics) Err() error {
	if len(d.items) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(d.items))
	items := make([]*Diagnostic, 0, len(d.items))
	for _, item := range d.items {
		key := item.Error()
		if seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		pi, pj := items[i].Pos, items[j].Pos
		if pi.Filename != pj.Filename {
			return pi.Filename < pj.Filename
		}
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		return pi.Column < pj.Column
	})

	return &DiagnosticsError{Items: items}
}

// DiagnosticsError is the aggregated failure of one pass.
type DiagnosticsError struct {
	Items []*Diagnostic
}

func (e *DiagnosticsError) Error() string {
	lines := make([]string, len(e.Items))
	for i, item := range e.Items {
		lines[i] = item.Error()
	}
	return strings.Join(lines, "\n")
}

// Unwrap exposes every diagnostic, so errors.Is matches any contained sentinel.
func (e *DiagnosticsError) Unwrap() []error {
	errs := make([]error, len(e.Items))
	for i, item := range e.Items {
		errs[i] = item
	}
	return errs
}
