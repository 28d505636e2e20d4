package phpgen

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config controls how code is laid out. A Generator copies its Config at
// construction, so a Config can never change while an encode is running.
type Config struct {
	// TabWidth is the width of one indentation level in columns.
	TabWidth int `yaml:"tab_width"`

	// UseSpaces indents with TabWidth spaces instead of a tab character.
	// Keys are then always aligned with spaces.
	UseSpaces bool `yaml:"use_spaces"`

	// MixSpaces pads keys with tabs and finishes the alignment with spaces.
	// Ignored when SpacesAfterKey or UseSpaces is set.
	MixSpaces bool `yaml:"mix_spaces"`

	// SpacesAfterKey pads keys with spaces only.
	SpacesAfterKey bool `yaml:"spaces_after_key"`

	// OneLineStrings escapes tabs and newlines inside strings.
	// By default only other control characters are escaped.
	OneLineStrings bool `yaml:"one_line_strings"`

	// OutputSerialKeys prints keys of 0..n-1 indexed arrays too.
	OutputSerialKeys bool `yaml:"output_serial_keys"`

	// ShortArraySyntax uses [] instead of array().
	ShortArraySyntax bool `yaml:"short_array_syntax"`

	// AlignMultilineBreaks aligns keys before and after a multiline value
	// separately.
	AlignMultilineBreaks bool `yaml:"align_multiline_breaks"`

	// MaxLineLength is the approximate maximum line length used to decide
	// whether a one-element array fits on a single line. Lengths and key
	// widths are measured in display columns, so wide characters count
	// double and tabs inside values count as zero.
	MaxLineLength int `yaml:"max_line_length"`

	// Precision is the number of significant digits for floats.
	// -1 selects the shortest representation that reads back exactly.
	Precision int `yaml:"precision"`

	// EscapeHighBytes escapes every byte >= 0x80, producing pure ASCII
	// string literals.
	EscapeHighBytes bool `yaml:"escape_high_bytes"`

	// MaxDepth limits nesting depth. Zero means no limit.
	MaxDepth int `yaml:"max_depth"`
}

// DefaultConfig returns the default layout settings.
func DefaultConfig() Config {
	return Config{
		TabWidth:             4,
		UseSpaces:            false,
		MixSpaces:            true,
		SpacesAfterKey:       true,
		OneLineStrings:       false,
		OutputSerialKeys:     false,
		ShortArraySyntax:     true,
		AlignMultilineBreaks: true,
		MaxLineLength:        60,
		Precision:            -1,
	}
}

// Validate reports whether c can be used by a Generator.
func (c Config) Validate() error {
	var errs []error
	if c.TabWidth < 1 {
		errs = append(errs, fmt.Errorf("%w: tab width must be at least 1, got %d", ErrInvalidConfig, c.TabWidth))
	}
	if c.MaxLineLength < 0 {
		errs = append(errs, fmt.Errorf("%w: max line length must not be negative, got %d", ErrInvalidConfig, c.MaxLineLength))
	}
	if c.Precision == 0 || c.Precision < -1 || c.Precision > 17 {
		errs = append(errs, fmt.Errorf("%w: precision must be -1 or 1..17, got %d", ErrInvalidConfig, c.Precision))
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidConfig, c.MaxDepth))
	}
	return errors.Join(errs...)
}

// LoadConfig reads a YAML config document. Fields missing from the document
// keep their defaults; unknown fields are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Option configures a Generator.
type Option func(*Generator)

// WithConfig replaces the whole layout configuration.
func WithConfig(cfg Config) Option {
	return func(g *Generator) { g.cfg = cfg }
}

// WithTabWidth sets the indentation width.
func WithTabWidth(n int) Option {
	return func(g *Generator) { g.cfg.TabWidth = n }
}

// WithSpaces indents with spaces instead of tabs.
func WithSpaces(on bool) Option {
	return func(g *Generator) { g.cfg.UseSpaces = on }
}

// WithShortArraySyntax toggles [] versus array().
func WithShortArraySyntax(on bool) Option {
	return func(g *Generator) { g.cfg.ShortArraySyntax = on }
}

// WithMaxLineLength sets the line length used by the one-element collapse rule.
func WithMaxLineLength(n int) Option {
	return func(g *Generator) { g.cfg.MaxLineLength = n }
}

// WithOneLineStrings escapes tabs and newlines inside strings.
func WithOneLineStrings(on bool) Option {
	return func(g *Generator) { g.cfg.OneLineStrings = on }
}

// WithPrecision sets the number of significant digits for floats.
func WithPrecision(n int) Option {
	return func(g *Generator) { g.cfg.Precision = n }
}

// WithFallback sets the encoder used for values no other rule handles.
func WithFallback(f Fallback) Option {
	return func(g *Generator) { g.fallback = f }
}

// WithLogger sets the logger. The default logger discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}
