package phpgen

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"
)

// Entry is a single key/value pair of an [Array].
type Entry struct {
	Key   any
	Value any
}

// Array is an ordered PHP array. Unlike a Go map it keeps insertion order
// and may mix integer and string keys:
//
//	phpgen.Array{{Key: "abc", Value: 0}, {Key: 0, Value: 1}}
type Array []Entry

var arrayType = reflect.TypeFor[Array]()

type kv struct {
	key, value reflect.Value
}

// collect materializes a collection into ordered key/value pairs. Slices
// and arrays are keyed 0..n-1, maps are sorted by key, and range-over-func
// iterators keep their iteration order.
func collect(v reflect.Value) ([]kv, bool) {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if v.Type() == arrayType {
			entries := make([]kv, v.Len())
			for i := range entries {
				e := v.Index(i)
				entries[i] = kv{key: e.Field(0), value: e.Field(1)}
			}
			return entries, true
		}
		entries := make([]kv, v.Len())
		for i := range entries {
			entries[i] = kv{key: reflect.ValueOf(i), value: v.Index(i)}
		}
		return entries, true
	case reflect.Map:
		keys := v.MapKeys()
		slices.SortStableFunc(keys, compareKeys)
		entries := make([]kv, len(keys))
		for i, k := range keys {
			entries[i] = kv{key: k, value: v.MapIndex(k)}
		}
		return entries, true
	case reflect.Func:
		switch iteratorArity(v.Type()) {
		case 1:
			var entries []kv
			i := 0
			for x := range v.Seq() {
				entries = append(entries, kv{key: reflect.ValueOf(i), value: x})
				i++
			}
			return entries, true
		case 2:
			var entries []kv
			for k, x := range v.Seq2() {
				entries = append(entries, kv{key: k, value: x})
			}
			return entries, true
		}
	}
	return nil, false
}

// iteratorArity returns 1 for iter.Seq shaped funcs, 2 for iter.Seq2 shaped
// funcs and 0 for anything else.
func iteratorArity(t reflect.Type) int {
	if t.Kind() != reflect.Func || t.NumIn() != 1 || t.NumOut() != 0 {
		return 0
	}
	yield := t.In(0)
	if yield.Kind() != reflect.Func || yield.NumOut() != 1 || yield.Out(0).Kind() != reflect.Bool {
		return 0
	}
	if n := yield.NumIn(); n == 1 || n == 2 {
		return n
	}
	return 0
}

// intKey reports whether k is an integer key and returns its value.
func intKey(k reflect.Value) (int64, bool) {
	for k.IsValid() && k.Kind() == reflect.Interface {
		k = k.Elem()
	}
	if !k.IsValid() {
		return 0, false
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return k.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := k.Uint(); u <= math.MaxInt64 {
			return int64(u), true
		}
	}
	return 0, false
}

// keyRank orders keys of different kinds: null, bools, numbers, strings,
// then everything else.
func keyRank(k reflect.Value) int {
	if !k.IsValid() {
		return 0
	}
	switch k.Kind() {
	case reflect.Bool:
		return 1
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return 2
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return 3
	case reflect.Float32, reflect.Float64:
		return 4
	case reflect.String:
		return 5
	}
	return 6
}

func compareKeys(a, b reflect.Value) int {
	for a.IsValid() && a.Kind() == reflect.Interface {
		a = a.Elem()
	}
	for b.IsValid() && b.Kind() == reflect.Interface {
		b = b.Elem()
	}
	ra, rb := keyRank(a), keyRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case 0:
		return 0
	case 1:
		return cmp.Compare(boolInt(a.Bool()), boolInt(b.Bool()))
	case 2:
		return cmp.Compare(a.Int(), b.Int())
	case 3:
		return cmp.Compare(a.Uint(), b.Uint())
	case 4:
		return cmp.Compare(a.Float(), b.Float())
	case 5:
		return strings.Compare(a.String(), b.String())
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
