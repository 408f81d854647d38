package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "PROTOBASE_"

// LookupFunc resolves an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

type loader struct {
	path      string
	readFile  func(string) ([]byte, error)
	lookup    LookupFunc
	overrides []func(*Config)
}

// Option configures Load.
type Option func(*loader)

// WithFile layers the file at path over the defaults. The decoder is
// chosen by extension: .toml, .yaml or .yml.
func WithFile(path string) Option {
	return func(l *loader) {
		l.path = path
	}
}

// WithEnv layers PROTOBASE_* variables resolved by lookup over the file.
func WithEnv(lookup LookupFunc) Option {
	return func(l *loader) {
		l.lookup = lookup
	}
}

// WithOverride applies fn after every other layer. Flags use this.
func WithOverride(fn func(*Config)) Option {
	return func(l *loader) {
		if fn != nil {
			l.overrides = append(l.overrides, fn)
		}
	}
}

// Load builds a Config from defaults, file, environment and overrides, in
// that order, and validates the result.
func Load(opts ...Option) (Config, error) {
	l := &loader{readFile: os.ReadFile}
	for _, opt := range opts {
		opt(l)
	}

	cfg := Default()
	if l.path != "" {
		if err := l.loadFile(&cfg); err != nil {
			return Config{}, err
		}
	}
	if l.lookup != nil {
		if err := applyEnv(&cfg, l.lookup); err != nil {
			return Config{}, err
		}
	}
	for _, fn := range l.overrides {
		fn(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (l *loader) loadFile(cfg *Config) error {
	data, err := l.readFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil // File doesn't exist, not an error
		}
		return fmt.Errorf("reading config file %s: %w", l.path, err)
	}
	return decode(l.path, data, cfg)
}

func decode(path string, data []byte, cfg *Config) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(cfg)
		if errors.Is(err, io.EOF) {
			err = nil // empty document
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return &ParseError{Path: path, Err: err}
	}
	return nil
}

// envBinding maps one variable onto a setting.
type envBinding struct {
	key string
	set func(*Config, string) error
}

// envBindings returns the variable table keyed by the name after EnvPrefix.
func envBindings() map[string]envBinding {
	return map[string]envBinding{
		"BREAKPOINTS_MEDIUM_MIN": {"breakpoints.medium_min", setInt(func(c *Config) *int { return &c.Breakpoints.MediumMin })},
		"BREAKPOINTS_LARGE_MIN":  {"breakpoints.large_min", setInt(func(c *Config) *int { return &c.Breakpoints.LargeMin })},
		"BREAKPOINTS_PX_PER_EM":  {"breakpoints.px_per_em", setFloat(func(c *Config) *float64 { return &c.Breakpoints.PxPerEm })},
		"VIEWPORT_CELL_WIDTH_PX": {"viewport.cell_width_px", setInt(func(c *Config) *int { return &c.Viewport.CellWidthPx })},
		"VIEWPORT_LEGACY":        {"viewport.legacy", setBool(func(c *Config) *bool { return &c.Viewport.Legacy })},
		"LOG_LEVEL":              {"log.level", setString(func(c *Config) *string { return &c.Log.Level })},
		"LOG_FILE":               {"log.file", setString(func(c *Config) *string { return &c.Log.File })},
	}
}

func applyEnv(cfg *Config, lookup LookupFunc) error {
	var errs []error
	for name, b := range envBindings() {
		val, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		if err := b.set(cfg, strings.TrimSpace(val)); err != nil {
			errs = append(errs, &ValidationError{Key: b.key, Value: val, Reason: err.Error()})
		}
	}
	return errors.Join(errs...)
}

func setInt(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return errors.New("not an integer")
		}
		*field(c) = n
		return nil
	}
}

func setFloat(field func(*Config) *float64) func(*Config, string) error {
	return func(c *Config, s string) error {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.New("not a number")
		}
		*field(c) = f
		return nil
	}
}

func setBool(field func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, s string) error {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return errors.New("not a boolean")
		}
		*field(c) = v
		return nil
	}
}

func setString(field func(*Config) *string) func(*Config, string) error {
	return func(c *Config, s string) error {
		*field(c) = s
		return nil
	}
}
