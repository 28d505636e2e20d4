package phpgen

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSONFallback emits json_decode("...", true) with the value encoded by
// encoding/json. Structs come back as associative arrays, so the output is
// portable to any PHP runtime but loses object types.
func JSONFallback(g *Generator, v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("%w: %T: %s", ErrUnsupportedValue, v, err)
	}
	data := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return "json_decode(" + g.Quote(string(data)) + ", true)", nil
}
