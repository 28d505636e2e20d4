package phpgen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedValue = errors.New("unsupported value")
	ErrRecursionLimit   = errors.New("recursion limit exceeded")
	ErrInvalidConfig    = errors.New("invalid config")
)

const tail = ";"

// Generator turns Go values into PHP code.
//
// Encoding methods are safe for concurrent use. AddHandler is not: register
// all handlers before sharing a Generator between goroutines.
//
// Encoding a value that refers to itself never terminates unless
// Config.MaxDepth is set.
type Generator struct {
	cfg      Config
	handlers []handler
	fallback Fallback
	logger   *zap.Logger
}

// New returns a Generator using DefaultConfig modified by opts.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg:      DefaultConfig(),
		fallback: SerializeFallback,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.fallback == nil {
		g.fallback = RejectFallback
	}
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

var (
	defaultGen  *Generator
	defaultOnce sync.Once
)

// Default returns a process-wide Generator with the default configuration.
// Handlers added to it are visible to every caller.
func Default() *Generator {
	defaultOnce.Do(func() {
		g, err := New()
		if err != nil {
			panic(err)
		}
		defaultGen = g
	})
	return defaultGen
}

// Config returns a copy of the generator configuration.
func (g *Generator) Config() Config { return g.cfg }

// Encode returns PHP code for v followed by a semicolon.
func Encode(v any) (string, error) {
	return Default().Encode(v, 0, false, false)
}

// Marshal returns PHP code for v followed by a semicolon.
func Marshal(v any) ([]byte, error) {
	return Default().Marshal(v)
}

// Encode returns PHP code for v.
//
// indent is the nesting level the code will be placed at; it only affects
// arrays. noFormat disables line breaks and alignment. noTail omits the
// trailing semicolon.
func (g *Generator) Encode(v any, indent int, noFormat, noTail bool) (string, error) {
	code, err := g.encode(reflect.ValueOf(v), max(indent, 0), noFormat, 0)
	if err != nil {
		return "", err
	}
	if !noTail {
		code += tail
	}
	return code, nil
}

// EncodeUnformatted returns PHP code for v on a single line.
func (g *Generator) EncodeUnformatted(v any, noTail bool) (string, error) {
	return g.Encode(v, 0, true, noTail)
}

// EncodeNoTail returns PHP code for v without the trailing semicolon.
func (g *Generator) EncodeNoTail(v any, indent int, noFormat bool) (string, error) {
	return g.Encode(v, indent, noFormat, true)
}

// Marshal returns formatted PHP code for v followed by a semicolon.
func (g *Generator) Marshal(v any) ([]byte, error) {
	code, err := g.Encode(v, 0, false, false)
	if err != nil {
		return nil, err
	}
	return []byte(code), nil
}

// Write writes formatted PHP code for v and a newline to w.
// Nothing is written if encoding fails.
func (g *Generator) Write(w io.Writer, v any) error {
	code, err := g.Encode(v, 0, false, false)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, code+"\n")
	return err
}

// WriteScript writes a complete PHP file that returns v, suitable for
// loading with include or require.
func (g *Generator) WriteScript(w io.Writer, v any) error {
	code, err := g.Encode(v, 0, false, false)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	buf.WriteString("<?php\n\nreturn ")
	buf.WriteString(code)
	buf.WriteByte('\n')
	_, err = buf.WriteTo(w)
	return err
}

func (g *Generator) encode(v reflect.Value, indent int, noFormat bool, depth int) (string, error) {
	if g.cfg.MaxDepth > 0 && depth > g.cfg.MaxDepth {
		return "", fmt.Errorf("%w: depth %d > %d", ErrRecursionLimit, depth, g.cfg.MaxDepth)
	}
	if isNil(v) {
		return "null", nil
	}

	if v.CanInterface() {
		x := v.Interface()
		if c, ok := x.(Coder); ok {
			return c.PHPCode(), nil
		}
		if code, ok, err := g.handle(x); ok || err != nil {
			return code, err
		}
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return g.encode(v.Elem(), indent, noFormat, depth+1)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32:
		return g.formatFloat(v.Float(), 32), nil
	case reflect.Float64:
		return g.formatFloat(v.Float(), 64), nil
	case reflect.String:
		return g.Quote(v.String()), nil
	}

	if b, ok := byteString(v); ok {
		return g.Quote(b), nil
	}
	if entries, ok := collect(v); ok {
		return g.encodeArray(entries, indent, noFormat, depth)
	}
	return g.encodeFallback(v)
}

func (g *Generator) encodeFallback(v reflect.Value) (string, error) {
	if !v.CanInterface() {
		return "", fmt.Errorf("%w: unexported %s", ErrUnsupportedValue, v.Type())
	}
	x := v.Interface()
	code, err := g.fallback(g, x)
	if err != nil {
		return "", err
	}
	g.logger.Debug("encoded value with fallback", zap.String("type", fmt.Sprintf("%T", x)))
	return code, nil
}

// isNil reports whether v encodes as PHP null.
func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return v.IsNil()
	}
	return false
}
