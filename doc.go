// Package phpgen generates PHP code for Go values.
//
// The output is a PHP expression that evaluates to a value equal to the
// input: scalars become literals, slices, maps and iterators become arrays,
// and other values go through an extension chain. Arrays are pretty-printed
// with aligned keys, in the style PHP developers write config files by hand.
// The central entry point is [Generator.Encode]:
//
//	g, _ := phpgen.New()
//	code, err := g.Encode(map[string]any{"debug": true, "hosts": []string{"a", "b"}}, 0, false, false)
//
// produces
//
//	[
//		"debug" => true,
//		"hosts" => [
//			"a",
//			"b",
//		],
//	];
//
// [Generator.EncodeUnformatted] and [Generator.EncodeNoTail] bind the
// formatting and trailing semicolon flags. [Encode] and [Marshal] use the
// shared [Default] generator. [Generator.WriteScript] writes a complete
// "<?php return ...;" file.
//
// # Values
//
//   - nil, nil pointers, nil maps and nil slices → null
//   - bool, integers → true, false, 123
//   - floats → var_export style, with NAN, INF and -INF for special values
//   - strings and byte slices → double-quoted strings, binary safe
//   - slices and arrays → lists
//   - maps → arrays sorted by key
//   - [Array] → arrays in insertion order with mixed keys
//   - iter.Seq and iter.Seq2 → arrays in iteration order
//
// Go maps have no order, so use [Array] when key order matters:
//
//	phpgen.Array{{Key: "abc", Value: 0}, {Key: 0, Value: 1}, {Key: 1, Value: 2}}
//
// # Extension Chain
//
// Every non-nil value is checked, in order, against:
//
//   - [Coder] → the value's own code, used verbatim ([Code] is the simplest)
//   - handlers → registered with [Generator.AddHandler] or [Handle]
//   - the kind rules above
//   - the [Fallback] → [SerializeFallback] by default
//
// [SerializeFallback] emits unserialize("...") with the value in PHP's
// serialize() format. Swap it for [JSONFallback] or [RejectFallback] with
// [WithFallback].
//
// # Layout
//
// [Config] controls indentation (tabs or spaces), key alignment (spaces,
// tabs mixed with spaces, or tabs only), array syntax, string escaping and
// float precision. A Generator copies its Config when created, so the
// layout of an encode call never changes halfway through. Load a Config
// from YAML with [LoadConfig].
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrUnsupportedValue]: no rule can encode the value
//   - [ErrRecursionLimit]: nesting deeper than Config.MaxDepth
//   - [ErrInvalidConfig]: the Config failed validation
//
// Self-referencing values are not detected. Without Config.MaxDepth they
// recurse until the stack overflows.
package phpgen
