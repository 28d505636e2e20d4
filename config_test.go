package phpgen_test

import (
	"strings"
	"testing"

	"github.com/bjaus/phpgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	cfg := phpgen.DefaultConfig()
	assert.Equal(t, 4, cfg.TabWidth)
	assert.False(t, cfg.UseSpaces)
	assert.True(t, cfg.MixSpaces)
	assert.True(t, cfg.SpacesAfterKey)
	assert.False(t, cfg.OneLineStrings)
	assert.False(t, cfg.OutputSerialKeys)
	assert.True(t, cfg.ShortArraySyntax)
	assert.True(t, cfg.AlignMultilineBreaks)
	assert.Equal(t, 60, cfg.MaxLineLength)
	assert.Equal(t, -1, cfg.Precision)
	assert.False(t, cfg.EscapeHighBytes)
	assert.Zero(t, cfg.MaxDepth)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		modify  func(*phpgen.Config)
		wantErr string
	}{
		"zero tab width":        {modify: func(c *phpgen.Config) { c.TabWidth = 0 }, wantErr: "tab width"},
		"negative line length":  {modify: func(c *phpgen.Config) { c.MaxLineLength = -1 }, wantErr: "max line length"},
		"zero precision":        {modify: func(c *phpgen.Config) { c.Precision = 0 }, wantErr: "precision"},
		"precision too high":    {modify: func(c *phpgen.Config) { c.Precision = 18 }, wantErr: "precision"},
		"precision below -1":    {modify: func(c *phpgen.Config) { c.Precision = -2 }, wantErr: "precision"},
		"negative depth":        {modify: func(c *phpgen.Config) { c.MaxDepth = -1 }, wantErr: "max depth"},
		"zero line length":      {modify: func(c *phpgen.Config) { c.MaxLineLength = 0 }},
		"precision 17":          {modify: func(c *phpgen.Config) { c.Precision = 17 }},
		"tab width 1":           {modify: func(c *phpgen.Config) { c.TabWidth = 1 }},
		"depth limit":           {modify: func(c *phpgen.Config) { c.MaxDepth = 3 }},
		"spaces and tabs mixed": {modify: func(c *phpgen.Config) { c.UseSpaces, c.MixSpaces = true, true }},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := phpgen.DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, phpgen.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigValidateJoinsErrors(t *testing.T) {
	t.Parallel()
	cfg := phpgen.Config{TabWidth: 0, Precision: 0, MaxDepth: -1}
	err := cfg.Validate()
	require.ErrorIs(t, err, phpgen.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "tab width")
	assert.Contains(t, err.Error(), "precision")
	assert.Contains(t, err.Error(), "max depth")
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	doc := `
tab_width: 2
use_spaces: true
short_array_syntax: false
max_line_length: 80
precision: 6
escape_high_bytes: true
`
	cfg, err := phpgen.LoadConfig(strings.NewReader(doc))
	require.NoError(t, err)

	want := phpgen.DefaultConfig()
	want.TabWidth = 2
	want.UseSpaces = true
	want.ShortArraySyntax = false
	want.MaxLineLength = 80
	want.Precision = 6
	want.EscapeHighBytes = true
	assert.Equal(t, want, cfg)
}

func TestLoadConfigEmpty(t *testing.T) {
	t.Parallel()
	cfg, err := phpgen.LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, phpgen.DefaultConfig(), cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		doc     string
		wantErr string
	}{
		"unknown field": {doc: "tabwidth: 2\n", wantErr: "tabwidth"},
		"wrong type":    {doc: "tab_width: wide\n", wantErr: "cannot unmarshal"},
		"invalid value": {doc: "tab_width: 0\n", wantErr: "tab width"},
		"not a mapping": {doc: "- 1\n- 2\n", wantErr: "cannot unmarshal"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := phpgen.LoadConfig(strings.NewReader(tt.doc))
			require.ErrorIs(t, err, phpgen.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfigLayout(t *testing.T) {
	t.Parallel()
	cfg, err := phpgen.LoadConfig(strings.NewReader("use_spaces: true\ntab_width: 2\nshort_array_syntax: false\n"))
	require.NoError(t, err)
	g := newGen(t, phpgen.WithConfig(cfg))
	assert.Equal(t, "array(\n  1,\n  2,\n);", encode(t, g, []int{1, 2}))
}
