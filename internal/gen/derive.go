package gen

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Header is the first line of every generated file.
const Header = "// Code generated by manygen. DO NOT EDIT."

// DeriveMarshal generates the encoding half of decl: one implementation per
// marker plus the MarshalMany dispatcher.
func DeriveMarshal(ctx context.Context, decl *Declaration, cfg *Config) (*Fragment, error) {
	return derive(ctx, decl, cfg, Marshal)
}

// DeriveUnmarshal generates the decoding half of decl: one implementation
// per marker plus the UnmarshalMany dispatcher.
func DeriveUnmarshal(ctx context.Context, decl *Declaration, cfg *Config) (*Fragment, error) {
	return derive(ctx, decl, cfg, Unmarshal)
}

func derive(ctx context.Context, decl *Declaration, cfg *Config, dir Direction) (frag *Fragment, err error) {
	start := time.Now()
	emitDeriveStart(ctx, decl.Name, dir)

	views := 0
	defer func() {
		emitDeriveComplete(ctx, decl.Name, dir, views, time.Since(start), err)
	}()

	markers, err := ParseMarkers(decl.Annotations)
	if err != nil {
		return nil, err
	}
	if err := checkConflicts(markers); err != nil {
		return nil, err
	}
	if err := Validate(decl, markers); err != nil {
		return nil, err
	}

	var diags Diagnostics
	list := make([]*View, 0, markers.Len())
	for _, m := range markers.List() {
		view, err := Synthesize(decl, markers, m, cfg)
		if err != nil {
			diags.Append(err)
			continue
		}
		emitViewSynthesized(ctx, decl.Name, m.Name)
		list = append(list, view)
	}
	if err := diags.Err(); err != nil {
		return nil, err
	}
	views = len(list)

	return emit(decl, markers, list, dir)
}

// checkConflicts rejects two markers naming the same type: the type
// switch of a dispatcher cannot hold both.
func checkConflicts(markers *Markers) error {
	var diags Diagnostics
	owner := make(map[string]string, markers.Len())
	for _, m := range markers.List() {
		text := m.TypeText()
		if prev, ok := owner[text]; ok {
			diags.Add(ErrConflictingImplementation, m.Pos,
				"markers %q and %q both resolve to %s", prev, m.Name, text)
			continue
		}
		owner[text] = m.Name
	}
	return diags.Err()
}

// Generate derives both directions of every selected declaration of file
// and assembles one formatted source file. It returns nil when file has
// nothing to generate. Any error yields no output.
func Generate(ctx context.Context, file *File, cfg *Config) (out []byte, err error) {
	start := time.Now()
	defer func() {
		if out != nil || err != nil {
			emitFileGenerated(ctx, file.Path, time.Since(start), err)
		}
	}()

	var (
		diags     Diagnostics
		fragments []*Fragment
	)
	for _, decl := range file.Decls {
		if !cfg.Wants(decl.Name) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, fn := range []func(context.Context, *Declaration, *Config) (*Fragment, error){DeriveMarshal, DeriveUnmarshal} {
			frag, err := fn(ctx, decl, cfg)
			if err != nil {
				diags.Append(err)
				continue
			}
			fragments = append(fragments, frag)
		}
	}
	if err := diags.Err(); err != nil {
		return nil, err
	}
	if len(fragments) == 0 {
		return nil, nil
	}

	src := assemble(file.Package, fragments)
	formatted, err := format.Source(src)
	if err != nil {
		return nil, fmt.Errorf("%s: formatting generated code: %w\n%s", file.Path, err, src)
	}
	return formatted, nil
}

// GenerateFile parses the Go file at path and generates its companion.
func GenerateFile(ctx context.Context, path string, cfg *Config) ([]byte, error) {
	file, err := ParseFile(path, nil)
	if err != nil {
		return nil, err
	}
	return Generate(ctx, file, cfg)
}

// OutputPath returns the generated file path for a source file.
func OutputPath(path string, cfg *Config) string {
	return strings.TrimSuffix(path, ".go") + cfg.Suffix()
}

func assemble(pkg string, fragments []*Fragment) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n\npackage %s\n\n", Header, pkg)

	type importLine struct{ name, path string }
	seen := map[string]bool{RuntimePath: true}
	lines := []importLine{{path: RuntimePath}}
	for _, frag := range fragments {
		for _, spec := range frag.Imports {
			path, err := strconv.Unquote(spec.Path.Value)
			if err != nil || seen[path] {
				continue
			}
			seen[path] = true
			line := importLine{path: path}
			if spec.Name != nil {
				line.name = spec.Name.Name
			}
			lines = append(lines, line)
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].path < lines[j].path })

	buf.WriteString("import (\n")
	for _, std := range []bool{true, false} {
		group := lo.Filter(lines, func(l importLine, _ int) bool { return isStdlib(l.path) == std })
		if len(group) == 0 {
			continue
		}
		if !std && len(group) < len(lines) {
			buf.WriteString("\n")
		}
		for _, l := range group {
			if l.name != "" {
				fmt.Fprintf(&buf, "\t%s %q\n", l.name, l.path)
			} else {
				fmt.Fprintf(&buf, "\t%q\n", l.path)
			}
		}
	}
	buf.WriteString(")\n\n")

	for _, frag := range fragments {
		buf.Write(frag.Code)
	}
	return buf.Bytes()
}

// isStdlib reports whether an import path belongs to the standard library.
func isStdlib(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".")
}
