package csstypes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/csstypes/internal/selector"
	"github.com/yacobolo/csstypes/stylesheet"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func process(t *testing.T, opts Options, css string) (string, *Result) {
	t.Helper()
	p, err := New(opts)
	require.NoError(t, err)
	out, result, err := p.ProcessCSS(css)
	require.NoError(t, err)
	return out, result
}

func TestProcessWritesAggregatedJSON(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "classes.json")

	css := `@media (min-width: 576px) { .container { max-width: 576px; } }
.container { max-width: 768px; }`
	out, result := process(t, Options{Generator: "json", OutputPath: output}, css)

	assert.Equal(t, css, out, "stylesheet untouched without filter or purge")

	assert.Equal(t, 2, result.ClassesExtracted)
	assert.Equal(t, 1, result.ClassesGenerated)
	assert.True(t, result.Generated)
	assert.True(t, result.Written)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	want, _ := JSONGenerator{}.Generate([]Class{{Name: "container", Properties: []Property{
		{Property: "max-width: 576px", MediaQuery: "@media (min-width: 576px)"},
		{Property: "max-width: 768px"},
	}}})
	assert.Equal(t, want, string(data))
}

func TestFilterRemovesWholeRule(t *testing.T) {
	opts := Options{
		Generator:  Discard,
		OutputPath: "unused",
		Filter:     func(name string) bool { return name != "container" },
	}
	out, result := process(t, opts, `.container { max-width: 576px; }`)

	assert.Empty(t, out)
	assert.Equal(t, 1, result.RulesRemoved)
}

func TestFilterRemovesOnlyMatchingSelector(t *testing.T) {
	opts := Options{
		Generator:  Discard,
		OutputPath: "unused",
		Filter:     func(name string) bool { return name != "btn" },
	}
	out, result := process(t, opts, `.btn, .btn-lg { color: red; }`)

	assert.Equal(t, ".btn-lg { color: red; }", out)
	assert.Equal(t, 1, result.SelectorsRemoved)
	assert.Zero(t, result.RulesRemoved)
}

func TestFilterMatchesWholeClassTokens(t *testing.T) {
	tests := []struct {
		name   string
		remove string
		css    string
		want   string
	}{
		{
			name:   "compound selector",
			remove: "active",
			css:    `.card.active, .card { color: red; }`,
			want:   ".card { color: red; }",
		},
		{
			name:   "prefix of another class",
			remove: "col",
			css:    `.col-6, .row .col { width: 50%; }`,
			want:   ".col-6 { width: 50%; }",
		},
		{
			name:   "regex metacharacters in name",
			remove: "w-1/2",
			css:    `.w-1\/2, .w-1 { width: 50%; }`,
			want:   ".w-1 { width: 50%; }",
		},
		{
			name:   "class inside :not",
			remove: "hidden",
			css:    `.item:not(.hidden), .item { display: block; }`,
			want:   ".item { display: block; }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{
				Generator:  Discard,
				OutputPath: "unused",
				Filter:     func(name string) bool { return name != tt.remove },
			}
			out, _ := process(t, opts, tt.css)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFilterKeepsEmptyAtRules(t *testing.T) {
	opts := Options{
		Generator:  Discard,
		OutputPath: "unused",
		Filter:     func(string) bool { return false },
	}
	out, result := process(t, opts, `@media print { .a { color: red; } }`)

	assert.Equal(t, "@media print { }", out)
	assert.Zero(t, result.AtRulesRemoved)
}

func TestGeneratorSeesRemovedClasses(t *testing.T) {
	var seen []string
	gen := func(classes []Class) (string, bool) {
		for _, c := range classes {
			seen = append(seen, c.Name)
		}
		return "", false
	}

	opts := Options{
		Generator:  gen,
		OutputPath: "unused",
		Filter:     func(name string) bool { return name == "kept" },
	}
	out, _ := process(t, opts, `.gone { a: 1 } .kept { b: 2 } .gone-too, .kept { c: 3 }`)

	assert.Equal(t, []string{"gone", "kept", "gone-too"}, seen)
	assert.Equal(t, ".kept { b: 2 } .kept { c: 3 }", out)
}

func TestPurge(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "main.rs"), `fn view() { div(class = C.container) }`)

	opts := Options{
		Generator:  "json",
		OutputPath: filepath.Join(dir, "classes.json"),
		Purge:      true,
		Content: ContentSource{
			Path:   filepath.Join(dir, "src", "*.rs"),
			Regex:  `C\.[a-z_]+`,
			Mapper: func(m string) string { return m[2:] },
		},
	}
	css := `.container { max-width: 576px; }
.row { display: flex; }
@media (min-width: 576px) { .row { margin: 0; } }`
	out, result := process(t, opts, css)

	assert.Equal(t, ".container { max-width: 576px; }", out)
	assert.Equal(t, 2, result.RulesRemoved)
	assert.Equal(t, 1, result.AtRulesRemoved)
	assert.Equal(t, 1, result.UsedClasses)
	assert.Equal(t, 1, result.FilesScanned)
	// Generated code still documents the purged class
	assert.Equal(t, 2, result.ClassesGenerated)
}

func TestPurgeSoundAndComplete(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "views", "a.html"), `<div class="card shadow"><b class="title">x</b></div>`)
	writeFile(t, filepath.Join(dir, "views", "b.rs"), `C.badge C.card`)

	used := map[string]bool{"card": true, "shadow": true, "title": true, "badge": true}

	opts := Options{
		Generator:  Discard,
		OutputPath: filepath.Join(dir, "out"),
		Purge:      true,
		Content: []ContentSource{
			{Path: filepath.Join(dir, "views", "*.html"), HTML: true},
			{Path: filepath.Join(dir, "views", "*.rs"), Regex: `C\.[a-z]+`, Mapper: "trim-prefix:C."},
		},
	}
	css := `
.card, .panel { padding: 1rem; }
.card.active { border: 1px solid; }
.shadow:hover, .title > .icon { box-shadow: none; }
.title { font-weight: bold; }
@media print { .badge { display: none; } .modal { display: none; } }
@supports (display: grid) { @media (min-width: 1px) { .grid { display: grid; } } }
div { margin: 0; }
`
	out, _ := process(t, opts, css)

	sheet, err := stylesheet.ParseString(out)
	require.NoError(t, err)

	survivors := map[string]bool{}
	for _, rule := range sheet.Rules() {
		for _, group := range rule.Selectors() {
			for _, class := range selector.Classes(group) {
				assert.True(t, used[class], "unused class %q survived in %q", class, group)
				survivors[class] = true
			}
		}
	}
	for class := range used {
		assert.True(t, survivors[class], "used class %q was purged", class)
	}

	assert.NotContains(t, out, "@supports")
	assert.Contains(t, out, "div {")
	assert.Contains(t, out, "@media print {")
}

func TestPurgeEscapesComparedNames(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.html"), `<section class="HERO"></section>`)

	opts := Options{
		Generator:       Discard,
		OutputPath:      filepath.Join(dir, "out"),
		Purge:           true,
		EscapeClassName: strings.ToLower,
		Content: ContentSource{
			Path:   filepath.Join(dir, "*.html"),
			HTML:   true,
			Escape: true,
		},
	}
	out, _ := process(t, opts, `.Hero { color: red; } .footer { color: blue; }`)
	assert.Equal(t, ".Hero { color: red; }", out)
}

func TestPurgeUsesGoIdentifiers(t *testing.T) {
	tests := []struct {
		name    string
		usage   string
		escape  func(string) string
		want    string
		removed int
	}{
		{
			name:    "suffixed constant keeps the later class",
			usage:   "var _ = ui.BtnLg2",
			want:    ".btn_lg { b: 2 }",
			removed: 1,
		},
		{
			name:    "base constant keeps the first class",
			usage:   "var _ = ui.BtnLg",
			want:    ".btn-lg { a: 1 }",
			removed: 1,
		},
		{
			name:    "explicit escape wins",
			usage:   "var _ = ui.BtnLg2",
			escape:  GoName,
			want:    "",
			removed: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, "views", "page.go"), tt.usage)

			opts := Options{
				Generator:       "go",
				OutputPath:      filepath.Join(dir, "ui", "classes.gen.go"),
				Purge:           true,
				Content:         filepath.Join(dir, "views", "*.go"),
				EscapeClassName: tt.escape,
			}
			out, result := process(t, opts, `.btn-lg { a: 1 } .btn_lg { b: 2 }`)

			assert.Equal(t, tt.want, out)
			assert.Equal(t, tt.removed, result.RulesRemoved)
		})
	}
}

func TestPurgeSkipsOutputFile(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "src", "css_classes.rs")
	writeFile(t, output, `TC!("stale")`)
	writeFile(t, filepath.Join(dir, "src", "main.rs"), `let c = TC!("btn");`)

	opts := Options{
		Generator:  "rust",
		OutputPath: output,
		Purge:      true,
		Content:    filepath.Join(dir, "src", "**", "*.rs"),
	}
	out, result := process(t, opts, `.btn { a: 1 } .stale { b: 2 }`)

	assert.Equal(t, ".btn { a: 1 }", out)
	assert.Equal(t, 1, result.FilesScanned)
	assert.True(t, result.Written)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `("stale") => {`)
}

func TestPurgeWithoutContentRemovesEveryClass(t *testing.T) {
	opts := Options{Generator: Discard, OutputPath: "unused", Purge: true}
	out, _ := process(t, opts, `@charset "utf-8"; .a { b: c } p { d: e }`)
	assert.Equal(t, `@charset "utf-8"; p { d: e }`, out)
}

func TestFilterTakesPrecedenceOverPurge(t *testing.T) {
	opts := Options{
		Generator:  Discard,
		OutputPath: "unused",
		Purge:      true,
		Content:    filepath.Join(t.TempDir(), "*.rs"),
		Filter:     func(string) bool { return true },
	}
	out, result := process(t, opts, `.a { b: c }`)
	assert.Equal(t, ".a { b: c }", out)
	assert.Zero(t, result.FilesScanned)
}

func TestNoOutputSkipsWriter(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "missing", "out.txt")

	_, result := process(t, Options{Generator: Discard, OutputPath: output}, `.a { b: c }`)
	assert.False(t, result.Generated)
	assert.False(t, result.Written)

	_, err := os.Stat(filepath.Join(dir, "missing"))
	assert.True(t, os.IsNotExist(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProcessTwiceDoesNotRewrite(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "src", "css_classes.rs")
	opts := Options{Generator: "rust_macro", OutputPath: output}
	css := `.a { b: c } .d { e: f }`

	_, first := process(t, opts, css)
	require.True(t, first.Written)

	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(output, past, past))

	_, second := process(t, opts, css)
	assert.True(t, second.Generated)
	assert.False(t, second.Written)

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(past))
}

func TestRun(t *testing.T) {
	sheet, err := stylesheet.ParseString(`.a { b: c }`)
	require.NoError(t, err)

	result, err := Run(sheet, Options{Generator: Discard, OutputPath: "unused"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.ClassesGenerated)

	_, err = Run(sheet, Options{})
	require.ErrorIs(t, err, ErrMissingGenerator)
}
