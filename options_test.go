package csstypes

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr error
	}{
		{
			name:    "missing generator",
			opts:    Options{OutputPath: "out.json"},
			wantErr: ErrMissingGenerator,
		},
		{
			name:    "empty generator name",
			opts:    Options{Generator: "", OutputPath: "out.json"},
			wantErr: ErrMissingGenerator,
		},
		{
			name:    "generator of wrong type",
			opts:    Options{Generator: 42, OutputPath: "out.json"},
			wantErr: ErrInvalidGeneratorType,
		},
		{
			name:    "unknown generator name",
			opts:    Options{Generator: "kotlin", OutputPath: "out.kt"},
			wantErr: ErrUnknownGeneratorName,
		},
		{
			name:    "generator checked before output path",
			opts:    Options{Generator: 42},
			wantErr: ErrInvalidGeneratorType,
		},
		{
			name:    "json has no default output path",
			opts:    Options{Generator: "json"},
			wantErr: ErrMissingOutputPath,
		},
		{
			name:    "filter of wrong type",
			opts:    Options{Generator: "json", OutputPath: "out.json", Filter: "container"},
			wantErr: ErrInvalidFilterType,
		},
		{
			name:    "content of wrong type",
			opts:    Options{Generator: "json", OutputPath: "out.json", Content: 3},
			wantErr: ErrInvalidContent,
		},
		{
			name:    "content path missing",
			opts:    Options{Generator: "json", OutputPath: "out.json", Content: ContentSource{Regex: `x`}},
			wantErr: ErrInvalidContentPath,
		},
		{
			name:    "content path of wrong type",
			opts:    Options{Generator: "json", OutputPath: "out.json", Content: ContentSource{Path: 7}},
			wantErr: ErrInvalidContentPath,
		},
		{
			name: "content mapper of wrong type",
			opts: Options{Generator: "json", OutputPath: "out.json", Content: ContentSource{
				Path:   []string{"src/**/*.rs"},
				Mapper: 5,
			}},
			wantErr: ErrInvalidContentMapper,
		},
		{
			name: "unknown mapper name",
			opts: Options{Generator: "json", OutputPath: "out.json", Content: ContentSource{
				Path:   "src/**/*.rs",
				Mapper: "reverse",
			}},
			wantErr: ErrInvalidContentMapper,
		},
		{
			name: "regex does not compile",
			opts: Options{Generator: "json", OutputPath: "out.json", Content: ContentSource{
				Path:  "src/**/*.rs",
				Regex: `C\.(`,
			}},
			wantErr: ErrInvalidContentRegex,
		},
		{
			name: "content checked before filter",
			opts: Options{
				Generator:  "json",
				OutputPath: "out.json",
				Content:    ContentSource{Path: 7},
				Filter:     "nope",
			},
			wantErr: ErrInvalidContentPath,
		},
		{
			name: "content validated without purge",
			opts: Options{Generator: "json", OutputPath: "out.json", Content: []any{"a/*.rs", 9}},
			wantErr: ErrInvalidContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.opts)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, p)
		})
	}
}

func TestNewAcceptedShapes(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{name: "builtin name", opts: Options{Generator: "Rust"}},
		{name: "generator value", opts: Options{Generator: JSONGenerator{}, OutputPath: "x.json"}},
		{name: "generator func", opts: Options{Generator: func([]Class) (string, bool) { return "", false }, OutputPath: "x"}},
		{name: "string func", opts: Options{Generator: func([]Class) string { return "" }, OutputPath: "x"}},
		{name: "filter func", opts: Options{Generator: Discard, OutputPath: "x", Filter: func(string) bool { return true }}},
		{name: "filter type", opts: Options{Generator: Discard, OutputPath: "x", Filter: FilterFunc(func(string) bool { return true })}},
		{name: "content string", opts: Options{Generator: "rust", Content: "src/**/*.rs"}},
		{name: "content strings", opts: Options{Generator: "rust", Content: []string{"src/*.rs", "lib/*.rs"}}},
		{name: "content sources", opts: Options{Generator: "json", OutputPath: "x", Content: []ContentSource{
			{Path: []any{"a/*.html"}, HTML: true},
			{Path: "b/*.rs", Regex: regexp.MustCompile(`C\.[a-z]+`), Mapper: func(m string) string { return m[2:] }},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.opts)
			require.NoError(t, err)
			assert.NotNil(t, p)
		})
	}
}

func TestGeneratorDefaults(t *testing.T) {
	p, err := New(Options{Generator: "rust"})
	require.NoError(t, err)
	assert.Equal(t, "src/css_classes.rs", p.OutputPath())
	require.Len(t, p.cfg.content, 1)
	assert.Equal(t, []string{"src/**/*.rs"}, p.cfg.content[0].Paths)

	p, err = New(Options{Generator: "go"})
	require.NoError(t, err)
	assert.Equal(t, "ui/classes.gen.go", p.OutputPath())
	assert.Equal(t, "BtnPrimary", p.cfg.escape("btn--primary"))

	p, err = New(Options{Generator: "rust", Content: []any{"a/*.rs", ContentSource{Path: []string{"b/*.rs", "c/*.rs"}}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a/*.rs", "b/*.rs", "c/*.rs"}, p.ContentPaths())
}

func TestOutputPathOverride(t *testing.T) {
	p, err := New(Options{Generator: "rust", OutputPath: "gen/classes.rs"})
	require.NoError(t, err)
	assert.Equal(t, "gen/classes.rs", p.OutputPath())
}

func TestContentShorthandUsesDefaultPattern(t *testing.T) {
	p, err := New(Options{Generator: "rust", Content: "views/**/*.rs"})
	require.NoError(t, err)
	require.Len(t, p.cfg.content, 1)

	src := p.cfg.content[0]
	assert.Equal(t, []string{"views/**/*.rs"}, src.Paths)
	assert.Equal(t, []string{"btn", "btn-lg", "card"},
		src.Extractor.Extract(`html! { div(class=TC!("btn")) span(class=TC!["btn-lg", "card"]) }`))
}

func TestContentSourceInheritsDefaults(t *testing.T) {
	p, err := New(Options{Generator: "rust", Content: ContentSource{Path: "app/*.rs", Escape: true}})
	require.NoError(t, err)

	src := p.cfg.content[0]
	assert.True(t, src.Escape)
	assert.Equal(t, []string{"row"}, src.Extractor.Extract(`TC!("row")`))
}

func TestContentSourceDefaultPattern(t *testing.T) {
	p, err := New(Options{Generator: "json", OutputPath: "x", Content: "src/*.txt"})
	require.NoError(t, err)

	got := p.cfg.content[0].Extractor.Extract("md:flex w-1/2, btn")
	assert.Equal(t, []string{"md:flex", "w-1/2", "btn"}, got)
}

func TestEscapeClassNameOverride(t *testing.T) {
	p, err := New(Options{Generator: "go", EscapeClassName: func(s string) string { return "x" + s }})
	require.NoError(t, err)
	assert.Equal(t, "xbtn", p.cfg.escape("btn"))

	p, err = New(Options{Generator: "json", OutputPath: "x"})
	require.NoError(t, err)
	assert.Equal(t, "btn", p.cfg.escape("btn"))
}
