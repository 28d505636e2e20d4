package phpgen

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DecodeDocument reads one YAML or JSON document and returns it as values
// the Generator understands. Mappings and sequences become [Array] values so
// key order from the document is kept. An empty document decodes to nil.
//
// Aliases are expanded in place. An anchor that contains an alias to itself
// is an error, and so is a document whose aliases expand far beyond its own
// size.
func DecodeDocument(r io.Reader) (any, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode document: %w", err)
	}
	d := nodeDecoder{expanding: make(map[*yaml.Node]bool)}
	v, err := d.value(&doc)
	if err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return v, nil
}

// Alias expansion limits, the same ones yaml.v3 applies when decoding into
// Go values. Below aliasRatioRangeLow nodes almost any ratio is accepted;
// from aliasRatioRangeHigh on at most a tenth of the nodes may come from
// aliases.
const (
	aliasRatioRangeLow  = 400000
	aliasRatioRangeHigh = 4000000
	aliasRatioRange     = float64(aliasRatioRangeHigh - aliasRatioRangeLow)
)

func allowedAliasRatio(decoded int) float64 {
	switch {
	case decoded <= aliasRatioRangeLow:
		return 0.99
	case decoded >= aliasRatioRangeHigh:
		return 0.10
	default:
		return 0.99 - 0.89*(float64(decoded-aliasRatioRangeLow)/aliasRatioRange)
	}
}

type nodeDecoder struct {
	expanding  map[*yaml.Node]bool // anchors whose alias is being expanded
	aliasDepth int
	decoded    int // nodes visited
	aliased    int // nodes visited inside an alias expansion
}

func (d *nodeDecoder) value(n *yaml.Node) (any, error) {
	d.decoded++
	if d.aliasDepth > 0 {
		d.aliased++
	}
	if d.aliased > 100 && d.decoded > 1000 && float64(d.aliased)/float64(d.decoded) > allowedAliasRatio(d.decoded) {
		return nil, fmt.Errorf("line %d: document contains excessive aliasing", n.Line)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return d.value(n.Content[0])
	case yaml.AliasNode:
		return d.alias(n)
	case yaml.SequenceNode:
		out := make(Array, 0, len(n.Content))
		for i, c := range n.Content {
			v, err := d.value(c)
			if err != nil {
				return nil, err
			}
			out = append(out, Entry{Key: i, Value: v})
		}
		return out, nil
	case yaml.MappingNode:
		out := make(Array, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, err := d.value(n.Content[i])
			if err != nil {
				return nil, err
			}
			v, err := d.value(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out = append(out, Entry{Key: k, Value: v})
		}
		return out, nil
	case yaml.ScalarNode:
		// Timestamps stay strings; PHP has no date literal.
		if n.ShortTag() == "!!timestamp" {
			return n.Value, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("line %d: unexpected yaml node kind %d", n.Line, n.Kind)
}

func (d *nodeDecoder) alias(n *yaml.Node) (any, error) {
	target := n.Alias
	if target == nil {
		return nil, fmt.Errorf("line %d: unknown anchor %q", n.Line, n.Value)
	}
	if d.expanding[target] {
		return nil, fmt.Errorf("line %d: anchor %q refers to itself", n.Line, n.Value)
	}
	d.expanding[target] = true
	d.aliasDepth++
	v, err := d.value(target)
	d.aliasDepth--
	delete(d.expanding, target)
	return v, err
}
