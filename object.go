package phpgen

import (
	"fmt"

	"go.uber.org/zap"
)

// Coder is implemented by values that produce their own PHP code. The
// returned code is used verbatim, without escaping.
type Coder interface {
	PHPCode() string
}

// Code is raw PHP code that is emitted as is.
//
//	phpgen.Encode(phpgen.Code(`DIRECTORY_SEPARATOR . "file"`))
type Code string

// PHPCode implements [Coder].
func (c Code) PHPCode() string { return string(c) }

// Matcher reports whether a handler applies to v.
type Matcher func(v any) bool

// HandlerFunc returns PHP code for v. The code is used verbatim.
type HandlerFunc func(v any) (string, error)

type handler struct {
	match Matcher
	fn    HandlerFunc
}

// AddHandler registers fn for values accepted by match. Handlers are tried
// in registration order before the value's kind is looked at, and the first
// match wins. Values implementing [Coder] never reach handlers.
func (g *Generator) AddHandler(match Matcher, fn HandlerFunc) {
	if match == nil || fn == nil {
		return
	}
	g.handlers = append(g.handlers, handler{match: match, fn: fn})
}

// TypeOf returns a Matcher accepting values of type T. For an interface T
// it accepts every implementation.
func TypeOf[T any]() Matcher {
	return func(v any) bool {
		_, ok := v.(T)
		return ok
	}
}

// Handle registers fn for values of type T.
//
//	phpgen.Handle(g, func(t time.Time) (string, error) {
//		return g.EncodeNoTail(t.Format(time.RFC3339), 0, true)
//	})
func Handle[T any](g *Generator, fn func(T) (string, error)) {
	g.AddHandler(TypeOf[T](), func(v any) (string, error) {
		return fn(v.(T))
	})
}

func (g *Generator) handle(v any) (string, bool, error) {
	for i, h := range g.handlers {
		if !h.match(v) {
			continue
		}
		code, err := h.fn(v)
		if err != nil {
			return "", true, fmt.Errorf("handler %d for %T: %w", i, v, err)
		}
		g.logger.Debug("encoded value with handler", zap.Int("handler", i), zap.String("type", fmt.Sprintf("%T", v)))
		return code, true, nil
	}
	return "", false, nil
}
