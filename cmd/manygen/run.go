package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/zoobzio/many/internal/gen"
)

// errFailed is returned once every diagnostic has been reported.
var errFailed = errors.New("manygen: generation failed")

type options struct {
	types      []string
	suffix     string
	configPath string
	check      bool
	tags       []string
	verbose    bool

	stdout io.Writer
	stderr io.Writer

	// explicit is the --config file, loaded once and shared read-only.
	explicit *gen.Config
}

// target is one package directory and the source files to process in it.
type target struct {
	dir   string
	files []string
}

// outcome collects the result of one target.
type outcome struct {
	errs    []error
	written []string
	stale   []string
}

func run(ctx context.Context, opts *options, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.stderr == nil {
		opts.stderr = os.Stderr
	}
	if opts.stdout == nil {
		opts.stdout = os.Stdout
	}

	logger := newLogger(opts.verbose, opts.stderr)
	defer func() { _ = logger.Sync() }()

	if len(args) == 0 {
		if file := os.Getenv("GOFILE"); file != "" {
			args = []string{file}
		} else {
			args = []string{"."}
		}
	}

	suffix := gen.DefaultSuffix
	if opts.configPath != "" {
		cfg, err := gen.LoadConfig(opts.configPath)
		if err != nil {
			return err
		}
		opts.explicit = opts.override(cfg)
		suffix = cfg.Generate.Suffix
	}

	targets, err := resolveTargets(args, opts.suffixOr(suffix))
	if err != nil {
		return err
	}

	outcomes := make([]outcome, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(runtime.GOMAXPROCS(0), max(len(targets), 1)))

	for i, t := range targets {
		g.Go(func() error {
			outcomes[i] = process(gctx, opts, t, logger.With(zap.String("dir", t.dir)))
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := false
	for _, o := range outcomes {
		for _, e := range o.errs {
			report(opts.stderr, e)
			failed = true
		}
		for _, path := range o.stale {
			fmt.Fprintf(opts.stderr, "%s: %s\n", path, staleColor.Sprint("generated file is stale, run manygen"))
			failed = true
		}
		for _, path := range o.written {
			fmt.Fprintln(opts.stdout, path)
		}
	}
	if failed {
		return errFailed
	}
	return nil
}

// suffixOr returns the suffix flag, or def when unset.
func (o *options) suffixOr(def string) string {
	if o.suffix != "" {
		return o.suffix
	}
	return def
}

// config resolves the configuration of dir with flag overrides applied.
func (o *options) config(dir string) (*gen.Config, error) {
	if o.explicit != nil {
		return o.explicit, nil
	}
	cfg, err := gen.ResolveConfig(dir)
	if err != nil {
		return nil, err
	}
	return o.override(cfg), nil
}

// override applies the flags that take precedence over the config file.
func (o *options) override(cfg *gen.Config) *gen.Config {
	if o.suffix != "" {
		cfg.Generate.Suffix = o.suffix
	}
	if len(o.tags) > 0 {
		cfg.Generate.Tags = o.tags
	}
	if len(o.types) > 0 {
		cfg.Generate.Types = o.types
	}
	return cfg
}

func process(ctx context.Context, opts *options, t target, logger *zap.Logger) outcome {
	var out outcome

	cfg, err := opts.config(t.dir)
	if err != nil {
		out.errs = append(out.errs, err)
		return out
	}
	if cfg.Path != "" {
		logger.Debug("using config", zap.String("path", cfg.Path))
	}

	for _, path := range t.files {
		if ctx.Err() != nil {
			return out
		}

		src, err := gen.GenerateFile(ctx, path, cfg)
		if err != nil {
			out.errs = append(out.errs, err)
			continue
		}
		if src == nil {
			logger.Debug("nothing to generate", zap.String("file", path))
			continue
		}

		dest := gen.OutputPath(path, cfg)
		existing, err := os.ReadFile(dest)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			out.errs = append(out.errs, err)
			continue
		}
		if bytes.Equal(existing, src) {
			logger.Debug("up to date", zap.String("file", dest))
			continue
		}

		if opts.check {
			out.stale = append(out.stale, dest)
			continue
		}
		if err := os.WriteFile(dest, src, 0o644); err != nil {
			out.errs = append(out.errs, err)
			continue
		}
		logger.Info("generated", zap.String("file", dest), zap.Int("size", len(src)))
		out.written = append(out.written, dest)
	}
	return out
}

// resolveTargets groups the Go source files named by args by directory.
// Directories contribute every non-test, non-generated .go file.
func resolveTargets(args []string, suffix string) ([]target, error) {
	byDir := make(map[string][]string)
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if filepath.Ext(arg) != ".go" {
				return nil, fmt.Errorf("%s: not a Go source file", arg)
			}
			dir := filepath.Dir(arg)
			byDir[dir] = append(byDir[dir], arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !isSource(name, suffix) {
				continue
			}
			byDir[arg] = append(byDir[arg], filepath.Join(arg, name))
		}
	}

	targets := make([]target, 0, len(byDir))
	for dir, files := range byDir {
		sort.Strings(files)
		targets = append(targets, target{dir: dir, files: slices.Compact(files)})
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i].dir < targets[j].dir })
	return targets, nil
}

func isSource(name, suffix string) bool {
	return strings.HasSuffix(name, ".go") &&
		!strings.HasSuffix(name, "_test.go") &&
		!strings.HasSuffix(name, suffix)
}

func newLogger(verbose bool, w io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), zapcore.DebugLevel))
}
