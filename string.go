package phpgen

import (
	"reflect"
	"strings"
)

const hexDigits = "0123456789ABCDEF"

// Quote returns s as a double-quoted PHP string literal.
//
// Backslash, double quote and dollar sign are escaped. CR, VT and FF use
// their short escapes, other control bytes and DEL use \xHH. Tabs and
// newlines stay raw unless OneLineStrings is set. Bytes >= 0x80 are copied
// as is unless EscapeHighBytes is set, so binary data survives unchanged.
func (g *Generator) Quote(s string) string {
	oneLine := g.cfg.OneLineStrings
	escapeHigh := g.cfg.EscapeHighBytes

	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' || c == '"' || c == '$':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c == '\n' && oneLine:
			sb.WriteString(`\n`)
		case c == '\t' && oneLine:
			sb.WriteString(`\t`)
		case c == '\n' || c == '\t':
			sb.WriteByte(c)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\v':
			sb.WriteString(`\v`)
		case c == '\f':
			sb.WriteString(`\f`)
		case c < 0x20 || c == 0x7F || (c >= 0x80 && escapeHigh):
			sb.WriteString(`\x`)
			sb.WriteByte(hexDigits[c>>4])
			sb.WriteByte(hexDigits[c&0x0F])
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// byteString returns the contents of a byte slice or byte array. PHP
// strings are byte strings, so these encode as string literals.
func byteString(v reflect.Value) (string, bool) {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() != reflect.Uint8 {
			return "", false
		}
	default:
		return "", false
	}
	if v.Kind() == reflect.Slice {
		return string(v.Bytes()), true
	}
	b := make([]byte, v.Len())
	for i := range b {
		b[i] = byte(v.Index(i).Uint())
	}
	return string(b), true
}
