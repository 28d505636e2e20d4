package phpgen

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Fallback encodes values that are neither scalars nor collections and are
// not claimed by a [Coder] or a handler. The result is used verbatim.
type Fallback func(g *Generator, v any) (string, error)

// SerializeFallback emits unserialize("...") with the value in PHP's
// serialize() format. Evaluating the code rebuilds an equivalent object,
// but class identity only survives if the PHP side knows the class named by
// [ClassNamer]; plain structs become stdClass objects.
func SerializeFallback(g *Generator, v any) (string, error) {
	data, err := Serialize(v)
	if err != nil {
		return "", err
	}
	return "unserialize(" + g.Quote(string(data)) + ")", nil
}

// RejectFallback fails for every value. Use it to make unexpected types an
// error instead of serialized blobs.
func RejectFallback(_ *Generator, v any) (string, error) {
	return "", fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
}

// ClassNamer sets the PHP class a struct is serialized as.
// Default: stdClass.
type ClassNamer interface {
	PHPClassName() string
}

const defaultClass = "stdClass"

// Serialize encodes v in PHP's serialize() format.
//
// Structs become objects holding their exported fields. Field names come
// from the php struct tag when present; php:"-" skips a field. Structs with
// no exported fields, funcs, channels, complex numbers and [Coder] values
// cannot be serialized.
func Serialize(v any) ([]byte, error) {
	var s serializer
	if err := s.value(reflect.ValueOf(v)); err != nil {
		return nil, err
	}
	return s.buf.Bytes(), nil
}

type serializer struct {
	buf bytes.Buffer
}

func (s *serializer) value(v reflect.Value) error {
	if isNil(v) {
		s.buf.WriteString("N;")
		return nil
	}
	if v.CanInterface() {
		if _, ok := v.Interface().(Coder); ok {
			return fmt.Errorf("%w: cannot serialize code of %s", ErrUnsupportedValue, v.Type())
		}
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return s.value(v.Elem())
	case reflect.Bool:
		s.buf.WriteString("b:")
		s.buf.WriteString(strconv.Itoa(boolInt(v.Bool())))
		s.buf.WriteByte(';')
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		s.int(v.Int())
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := v.Uint(); u <= math.MaxInt64 {
			s.int(int64(u))
		} else {
			s.float(float64(u))
		}
		return nil
	case reflect.Float32, reflect.Float64:
		s.float(v.Float())
		return nil
	case reflect.String:
		s.string(v.String())
		return nil
	case reflect.Struct:
		return s.object(v)
	}

	if b, ok := byteString(v); ok {
		s.string(b)
		return nil
	}
	if entries, ok := collect(v); ok {
		return s.array(entries)
	}
	return fmt.Errorf("%w: cannot serialize %s", ErrUnsupportedValue, v.Type())
}

func (s *serializer) int(n int64) {
	s.buf.WriteString("i:")
	s.buf.WriteString(strconv.FormatInt(n, 10))
	s.buf.WriteByte(';')
}

func (s *serializer) float(f float64) {
	s.buf.WriteString("d:")
	switch {
	case math.IsNaN(f):
		s.buf.WriteString("NAN")
	case math.IsInf(f, 1):
		s.buf.WriteString("INF")
	case math.IsInf(f, -1):
		s.buf.WriteString("-INF")
	default:
		s.buf.WriteString(strings.ToUpper(strconv.FormatFloat(f, 'g', -1, 64)))
	}
	s.buf.WriteByte(';')
}

func (s *serializer) string(str string) {
	s.buf.WriteString("s:")
	s.buf.WriteString(strconv.Itoa(len(str)))
	s.buf.WriteString(`:"`)
	s.buf.WriteString(str)
	s.buf.WriteString(`";`)
}

func (s *serializer) array(entries []kv) error {
	s.buf.WriteString("a:")
	s.buf.WriteString(strconv.Itoa(len(entries)))
	s.buf.WriteString(":{")
	for _, e := range entries {
		if err := s.key(e.key); err != nil {
			return err
		}
		if err := s.value(e.value); err != nil {
			return err
		}
	}
	s.buf.WriteByte('}')
	return nil
}

// key writes an array key. PHP keys are integers or strings.
func (s *serializer) key(k reflect.Value) error {
	if n, ok := intKey(k); ok {
		s.int(n)
		return nil
	}
	for k.IsValid() && k.Kind() == reflect.Interface {
		k = k.Elem()
	}
	if !k.IsValid() {
		s.string("")
		return nil
	}
	switch k.Kind() {
	case reflect.String:
		s.string(k.String())
		return nil
	case reflect.Bool:
		s.int(int64(boolInt(k.Bool())))
		return nil
	}
	return fmt.Errorf("%w: cannot serialize array key of type %s", ErrUnsupportedValue, k.Type())
}

type field struct {
	name  string
	index []int
}

func (s *serializer) object(v reflect.Value) error {
	fields := cachedFields(v.Type())
	if len(fields) == 0 && v.NumField() > 0 {
		return fmt.Errorf("%w: %s has no exported fields", ErrUnsupportedValue, v.Type())
	}

	class := defaultClass
	if v.CanInterface() {
		if cn, ok := v.Interface().(ClassNamer); ok {
			class = cn.PHPClassName()
		}
	}

	s.buf.WriteString("O:")
	s.buf.WriteString(strconv.Itoa(len(class)))
	s.buf.WriteString(`:"`)
	s.buf.WriteString(class)
	s.buf.WriteString(`":`)
	s.buf.WriteString(strconv.Itoa(len(fields)))
	s.buf.WriteString(":{")
	for _, f := range fields {
		s.string(f.name)
		fv, err := v.FieldByIndexErr(f.index)
		if err != nil {
			// Nil embedded pointer.
			s.buf.WriteString("N;")
			continue
		}
		if err := s.value(fv); err != nil {
			return err
		}
	}
	s.buf.WriteByte('}')
	return nil
}

const fieldCacheSize = 512

// fieldCache holds the field list of every struct type serialized so far.
// Cached slices are shared and must not be modified.
var fieldCache = newFieldCache()

func newFieldCache() *lru.Cache[reflect.Type, []field] {
	c, err := lru.New[reflect.Type, []field](fieldCacheSize)
	if err != nil {
		panic(err)
	}
	return c
}

func cachedFields(t reflect.Type) []field {
	if fields, ok := fieldCache.Get(t); ok {
		return fields
	}
	fields := structFields(t)
	fieldCache.Add(t, fields)
	return fields
}

// structFields lists the serializable fields of t in declaration order.
// Untagged embedded structs are flattened, like encoding/json does.
func structFields(t reflect.Type) []field {
	var fields []field
	for _, sf := range reflect.VisibleFields(t) {
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("php")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		ft := sf.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if sf.Anonymous && name == "" && ft.Kind() == reflect.Struct {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		fields = append(fields, field{name: name, index: slices.Clone(sf.Index)})
	}
	return fields
}
