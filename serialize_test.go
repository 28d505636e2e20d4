package phpgen_test

import (
	"math"
	"testing"

	"github.com/bjaus/phpgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serialBase struct {
	ID int
}

type serialDerived struct {
	serialBase
	Name string
}

type SerialRef struct {
	Ref string
}

type serialNilEmbed struct {
	*SerialRef
	Name string
}

type serialTagged struct {
	Inner serialBase `php:"inner"`
}

func TestSerialize(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		v    any
		want string
	}{
		"nil":          {v: nil, want: `N;`},
		"true":         {v: true, want: `b:1;`},
		"false":        {v: false, want: `b:0;`},
		"int":          {v: -42, want: `i:-42;`},
		"small uint":   {v: uint8(7), want: `i:7;`},
		"huge uint":    {v: uint64(math.MaxUint64), want: `d:1.8446744073709552E+19;`},
		"float":        {v: 1.5, want: `d:1.5;`},
		"big float":    {v: 1e100, want: `d:1E+100;`},
		"nan":          {v: math.NaN(), want: `d:NAN;`},
		"inf":          {v: math.Inf(1), want: `d:INF;`},
		"neg inf":      {v: math.Inf(-1), want: `d:-INF;`},
		"string":       {v: "hé", want: `s:3:"hé";`},
		"quote inside": {v: `a"b`, want: `s:3:"a"b";`},
		"bytes":        {v: []byte("ab"), want: `s:2:"ab";`},
		"list":         {v: []int{1, 2}, want: `a:2:{i:0;i:1;i:1;i:2;}`},
		"empty list":   {v: []int{}, want: `a:0:{}`},
		"nil slice":    {v: []int(nil), want: `N;`},
		"pointer":      {v: new(int), want: `i:0;`},
		"nested map": {
			v:    map[string]any{"b": []int{1}, "a": nil},
			want: `a:2:{s:1:"a";N;s:1:"b";a:1:{i:0;i:1;}}`,
		},
		"bool keys": {
			v:    map[bool]int{true: 1, false: 0},
			want: `a:2:{i:0;i:0;i:1;i:1;}`,
		},
		"ordered array": {
			v:    phpgen.Array{{Key: "x", Value: 1}, {Key: 5, Value: nil}, {Key: nil, Value: "n"}},
			want: `a:3:{s:1:"x";i:1;i:5;N;s:0:"";s:1:"n";}`,
		},
		"tagged struct": {
			v:    pair{A: 1, B: 2},
			want: `O:8:"stdClass":2:{s:1:"a";i:1;s:1:"b";i:2;}`,
		},
		"class name": {
			v:    point{X: 1, Y: 2},
			want: `O:5:"Point":2:{s:1:"X";i:1;s:1:"Y";i:2;}`,
		},
		"skipped field": {
			v:    withSkipped{Name: "n", Tmp: "t"},
			want: `O:8:"stdClass":1:{s:4:"Name";s:1:"n";}`,
		},
		"embedded struct": {
			v:    serialDerived{serialBase: serialBase{ID: 1}, Name: "x"},
			want: `O:8:"stdClass":2:{s:2:"ID";i:1;s:4:"Name";s:1:"x";}`,
		},
		"nil embedded pointer": {
			v:    serialNilEmbed{Name: "x"},
			want: `O:8:"stdClass":2:{s:3:"Ref";N;s:4:"Name";s:1:"x";}`,
		},
		"nested object": {
			v:    serialTagged{Inner: serialBase{ID: 3}},
			want: `O:8:"stdClass":1:{s:5:"inner";O:8:"stdClass":1:{s:2:"ID";i:3;}}`,
		},
		"empty struct": {
			v:    struct{}{},
			want: `O:8:"stdClass":0:{}`,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := phpgen.Serialize(tt.v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestSerializeErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		v any
	}{
		"func":               {v: func() {}},
		"chan":               {v: make(chan int)},
		"complex":            {v: complex(1, 2)},
		"no exported fields": {v: hiddenOnly{secret: 1}},
		"code":               {v: phpgen.Code("1 + 1")},
		"code in struct":     {v: withCode{C: phpgen.Code("x")}},
		"float key":          {v: map[float64]int{1.5: 1}},
		"func in slice":      {v: []any{1, func() {}}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := phpgen.Serialize(tt.v)
			assert.ErrorIs(t, err, phpgen.ErrUnsupportedValue)
		})
	}
}

func TestSerializeFallbackQuotes(t *testing.T) {
	t.Parallel()
	g := newGen(t)
	code, err := phpgen.SerializeFallback(g, pair{A: 1, B: 2})
	require.NoError(t, err)
	assert.Equal(t, `unserialize("O:8:\"stdClass\":2:{s:1:\"a\";i:1;s:1:\"b\";i:2;}")`, code)
}

func TestRejectFallback(t *testing.T) {
	t.Parallel()
	_, err := phpgen.RejectFallback(newGen(t), pair{})
	require.ErrorIs(t, err, phpgen.ErrUnsupportedValue)
	assert.Contains(t, err.Error(), "phpgen_test.pair")
}
