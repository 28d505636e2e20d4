package phpgen

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mattn/go-runewidth"
)

// arrayPart is one encoded array element.
type arrayPart struct {
	key       string
	value     string
	keyWidth  int
	breaks    bool // value spans several lines
	multiline bool // value ends an alignment block
}

// encodeArray renders entries as a PHP array literal.
//
// Layout takes two passes: the first encodes every key and value and
// records the widest key of each alignment block, the second pads the keys
// and joins the parts. A multiline value closes its block when
// AlignMultilineBreaks is set, so keys after it are aligned on their own.
func (g *Generator) encodeArray(entries []kv, indent int, noFormat bool, depth int) (string, error) {
	begin, end := "array(", ")"
	if g.cfg.ShortArraySyntax {
		begin, end = "[", "]"
	}
	if len(entries) == 0 {
		return begin + end, nil
	}

	tab := "\t"
	if g.cfg.UseSpaces {
		tab = strings.Repeat(" ", g.cfg.TabWidth)
	}

	simple := !g.cfg.OutputSerialKeys
	blocks := []int{0}
	parts := make([]arrayPart, len(entries))
	for i, e := range entries {
		if simple {
			if n, ok := intKey(e.key); !ok || n != int64(i) {
				simple = false
			}
		}

		key, err := g.encodeKey(e.key, depth+1)
		if err != nil {
			return "", err
		}
		value, err := g.encode(e.value, indent+1, noFormat, depth+1)
		if err != nil {
			return "", err
		}

		p := arrayPart{key: key, value: value, breaks: strings.Contains(value, "\n")}
		if !noFormat {
			p.keyWidth = runewidth.StringWidth(key)
			if last := len(blocks) - 1; p.keyWidth > blocks[last] {
				blocks[last] = p.keyWidth
			}
			if p.breaks && g.cfg.AlignMultilineBreaks {
				p.multiline = true
				blocks = append(blocks, 0)
			}
		}
		parts[i] = p
	}

	// A lone short value of a list stays on one line.
	if simple && !noFormat && len(parts) == 1 && !parts[0].breaks &&
		g.cfg.MaxLineLength >= runewidth.StringWidth(parts[0].value)+indent*g.cfg.TabWidth {
		noFormat = true
	}

	block := 0
	items := make([]string, len(parts))
	for i, p := range parts {
		var sb strings.Builder
		if !simple {
			sb.WriteString(p.key)
			if !noFormat {
				sb.WriteString(g.padKey(p.keyWidth, blocks[block], tab))
			}
			sb.WriteString("=>")
			if !noFormat {
				sb.WriteByte(' ')
			}
		}
		if !noFormat && p.multiline {
			block++
		}
		sb.WriteString(p.value)
		sb.WriteByte(',')
		items[i] = sb.String()
	}

	if noFormat {
		return begin + strings.TrimSuffix(strings.Join(items, ""), ",") + end, nil
	}
	indentStr := strings.Repeat(tab, indent)
	sep := "\n" + indentStr + tab
	return begin + sep + strings.Join(items, sep) + "\n" + indentStr + end, nil
}

// encodeKey renders an array key. PHP keys are integers or strings; bools,
// floats and null are accepted too and converted by PHP when the array is
// built. [Coder] keys are trusted to produce a valid key.
func (g *Generator) encodeKey(k reflect.Value, depth int) (string, error) {
	for k.IsValid() && k.Kind() == reflect.Interface {
		k = k.Elem()
	}
	if !k.IsValid() {
		return "null", nil
	}
	if k.CanInterface() {
		if c, ok := k.Interface().(Coder); ok {
			return c.PHPCode(), nil
		}
	}
	switch k.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return g.encode(k, 0, true, depth)
	}
	return "", fmt.Errorf("%w: array key of type %s", ErrUnsupportedValue, k.Type())
}

// padKey returns the padding placed after a key of keyWidth columns so the
// following "=>" lines up one column past maxWidth.
func (g *Generator) padKey(keyWidth, maxWidth int, tab string) string {
	tabWidth := g.cfg.TabWidth
	align := maxWidth - keyWidth + 1

	if g.cfg.UseSpaces || g.cfg.SpacesAfterKey {
		return strings.Repeat(" ", align)
	}

	var sb strings.Builder
	if g.cfg.MixSpaces {
		// Distance from the end of the key to the next tab stop.
		toStop := 0
		if r := keyWidth % tabWidth; r != 0 {
			toStop = tabWidth - r
		}
		rest := align % tabWidth
		if toStop <= rest || align >= tabWidth {
			if toStop != 0 {
				sb.WriteString(tab)
				align -= toStop
			}
			sb.WriteString(strings.Repeat(tab, align/tabWidth))
			rest = align % tabWidth
		}
		sb.WriteString(strings.Repeat(" ", rest))
		return sb.String()
	}

	// Tabs only: round up to the next tab stop.
	if r := keyWidth % tabWidth; r != 0 {
		sb.WriteString(tab)
		align -= tabWidth - r
	}
	if align > 0 {
		sb.WriteString(strings.Repeat(tab, (align+tabWidth-1)/tabWidth))
	}
	return sb.String()
}
