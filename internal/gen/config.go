package gen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigFile is the name of the generator configuration file.
const ConfigFile = "many.toml"

// DefaultSuffix is appended to a source file's base name to name its
// generated file.
const DefaultSuffix = "_many.go"

// DefaultTags are the tag keys rename_all writes when a declaration does
// not name its own.
var DefaultTags = []string{"json", "yaml", "msgpack", "bson", "xml"}

// Config controls generation.
type Config struct {
	// Path is the configuration file the values were loaded from, if any.
	Path string `toml:"-"`

	Generate GenerateConfig `toml:"generate"`
}

// GenerateConfig is the [generate] table of many.toml.
type GenerateConfig struct {
	Suffix string   `toml:"suffix"`
	Tags   []string `toml:"tags"`
	Types  []string `toml:"types"`
}

// DefaultConfig returns the configuration used when no many.toml exists.
func DefaultConfig() *Config {
	return &Config{
		Generate: GenerateConfig{
			Suffix: DefaultSuffix,
			Tags:   append([]string(nil), DefaultTags...),
		},
	}
}

func (c *Config) tags() []string {
	if c == nil || len(c.Generate.Tags) == 0 {
		return DefaultTags
	}
	return c.Generate.Tags
}

// Suffix returns the generated file suffix.
func (c *Config) Suffix() string {
	if c == nil || c.Generate.Suffix == "" {
		return DefaultSuffix
	}
	return c.Generate.Suffix
}

// Wants reports whether the declaration named name should be generated.
// An empty type filter selects every annotated declaration.
func (c *Config) Wants(name string) bool {
	if c == nil || len(c.Generate.Types) == 0 {
		return true
	}
	for _, t := range c.Generate.Types {
		if t == name {
			return true
		}
	}
	return false
}

// FindConfig walks up from startDir to locate many.toml.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadConfig decodes path over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if !strings.HasSuffix(cfg.Generate.Suffix, ".go") {
		return nil, fmt.Errorf("%s: [generate].suffix must end in .go, got %q", path, cfg.Generate.Suffix)
	}
	cfg.Path = path
	return cfg, nil
}

// ResolveConfig loads the nearest many.toml above dir, or the defaults
// when there is none.
func ResolveConfig(dir string) (*Config, error) {
	path, ok, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}
