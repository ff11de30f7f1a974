package csstypes

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/yacobolo/csstypes/internal/content"
)

// Mapper turns one raw content match into zero or more class names.
type Mapper = content.Mapper

// FilterFunc reports whether a class should stay in the stylesheet.
type FilterFunc func(className string) bool

// defaultUsagePattern matches anything that looks like a class token when a
// content source names neither a regex nor HTML scanning.
const defaultUsagePattern = `[\w\-:/@]+`

// Options configures a Processor. Fields typed any accept several shapes;
// New rejects anything else with the matching Err* value.
type Options struct {
	// Generator is a built-in name ("rust", "rust_macro", "json", "yaml",
	// "go"), a Generator, or a func([]Class) (string, bool) / func([]Class) string.
	// Required.
	Generator any

	// OutputPath of the generated file. Falls back to the generator's default.
	OutputPath string

	// Filter is nil, a FilterFunc, or a func(string) bool. When set it wins
	// over Purge.
	Filter any

	// Content is a glob string, a []string of globs, a ContentSource, a
	// []ContentSource, or a []any mixing strings and ContentSource values.
	// nil means the generator's default content.
	Content any

	// Purge removes selectors of classes that no content file uses.
	Purge bool

	// EscapeClassName maps a class name to the form content tokens are
	// compared in. Falls back to the generator's default, then identity.
	EscapeClassName func(string) string

	// IgnoreFile is a .gitignore-style file applied to content globs.
	IgnoreFile string

	// Logger receives debug output. nil discards it.
	Logger *slog.Logger
}

// ContentSource tells purge mode where classes are used and how to find them.
// Unset Path, Regex and Mapper fall back to the generator's first default
// content source.
type ContentSource struct {
	Path   any  // string, []string, or []any of strings; glob patterns with ** support
	Regex  any  // string or *regexp.Regexp; every match is one raw token
	Mapper any  // Mapper, func(string) []string, func(string) string, or a mapper name
	Escape bool // Pass mapped tokens through EscapeClassName before comparing
	HTML   bool // Also collect every token of every class attribute
}

// config is the fully resolved, immutable form of Options.
type config struct {
	generator  Generator
	outputPath string
	filter     FilterFunc
	purge      bool
	content    []content.Source
	escape     func(string) string
	escapeSet  bool // escape came from Options
	ignoreFile string
}

// resolve validates opts in a fixed order (generator, output path, content,
// filter) and fills every default. It performs no I/O.
func resolve(opts Options) (*config, error) {
	gen, err := resolveGenerator(opts.Generator)
	if err != nil {
		return nil, err
	}
	defaults := defaultsOf(gen)

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = defaults.OutputPath
	}
	if outputPath == "" {
		return nil, ErrMissingOutputPath
	}

	sources, err := resolveContent(opts.Content, defaults.Content)
	if err != nil {
		return nil, err
	}

	filter, err := resolveFilter(opts.Filter)
	if err != nil {
		return nil, err
	}

	escape := opts.EscapeClassName
	if escape == nil {
		escape = defaults.EscapeClassName
	}
	if escape == nil {
		escape = func(name string) string { return name }
	}

	return &config{
		generator:  gen,
		outputPath: outputPath,
		filter:     filter,
		purge:      opts.Purge,
		content:    sources,
		escape:     escape,
		escapeSet:  opts.EscapeClassName != nil,
		ignoreFile: opts.IgnoreFile,
	}, nil
}

func resolveFilter(v any) (FilterFunc, error) {
	switch f := v.(type) {
	case nil:
		return nil, nil
	case FilterFunc:
		return f, nil
	case func(string) bool:
		return f, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidFilterType, v)
	}
}

// resolveContent normalizes every accepted Content shape to resolved sources.
func resolveContent(v any, defaults []ContentSource) ([]content.Source, error) {
	var base ContentSource
	if len(defaults) > 0 {
		base = defaults[0]
	}

	var entries []ContentSource
	switch c := v.(type) {
	case nil:
		entries = defaults
	case string:
		entries = []ContentSource{shorthand(base, c)}
	case []string:
		entries = []ContentSource{shorthand(base, c)}
	case ContentSource:
		entries = []ContentSource{c}
	case []ContentSource:
		entries = c
	case []any:
		for i, item := range c {
			switch e := item.(type) {
			case string:
				entries = append(entries, shorthand(base, e))
			case ContentSource:
				entries = append(entries, e)
			default:
				return nil, fmt.Errorf("%w: content[%d] is %T", ErrInvalidContent, i, item)
			}
		}
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidContent, v)
	}

	sources := make([]content.Source, 0, len(entries))
	for i, entry := range entries {
		src, err := resolveSource(entry, base)
		if err != nil {
			return nil, fmt.Errorf("content[%d]: %w", i, err)
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// shorthand is a bare glob: everything but the path comes from the default.
func shorthand(base ContentSource, path any) ContentSource {
	src := base
	src.Path = path
	return src
}

func resolveSource(src, base ContentSource) (content.Source, error) {
	if src.Path == nil {
		src.Path = base.Path
	}
	paths, err := contentPaths(src.Path)
	if err != nil {
		return content.Source{}, err
	}

	if src.Regex == nil && !src.HTML {
		src.Regex = base.Regex
	}
	if src.Mapper == nil {
		src.Mapper = base.Mapper
	}

	pattern, err := contentPattern(src.Regex, src.HTML)
	if err != nil {
		return content.Source{}, err
	}

	mapper, err := contentMapper(src.Mapper, pattern)
	if err != nil {
		return content.Source{}, err
	}

	var extractors content.Extractors
	if pattern != nil {
		extractors = append(extractors, content.RegexExtractor{Pattern: pattern, Mapper: mapper})
	}
	if src.HTML {
		extractors = append(extractors, content.HTMLExtractor{})
	}

	var extractor content.Extractor = extractors
	if len(extractors) == 1 {
		extractor = extractors[0]
	}

	return content.Source{
		Paths:     paths,
		Extractor: extractor,
		Escape:    src.Escape,
	}, nil
}

func contentPaths(v any) ([]string, error) {
	switch p := v.(type) {
	case string:
		if p != "" {
			return []string{p}, nil
		}
	case []string:
		if len(p) > 0 {
			return append([]string(nil), p...), nil
		}
	case []any:
		paths := make([]string, 0, len(p))
		for _, item := range p {
			s, ok := item.(string)
			if !ok || s == "" {
				return nil, fmt.Errorf("%w: path entry is %T", ErrInvalidContentPath, item)
			}
			paths = append(paths, s)
		}
		if len(paths) > 0 {
			return paths, nil
		}
	}
	return nil, fmt.Errorf("%w: got %#v", ErrInvalidContentPath, v)
}

// contentPattern compiles the regex of a source. nil with html set means the
// source only scans class attributes.
func contentPattern(v any, html bool) (*regexp.Regexp, error) {
	switch r := v.(type) {
	case nil:
		if html {
			return nil, nil
		}
		return regexp.MustCompile(defaultUsagePattern), nil
	case *regexp.Regexp:
		return r, nil
	case string:
		re, err := regexp.Compile(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidContentRegex, err)
		}
		return re, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidContentRegex, v)
	}
}

func contentMapper(v any, pattern *regexp.Regexp) (Mapper, error) {
	switch m := v.(type) {
	case nil:
		return content.Identity, nil
	case Mapper:
		return m, nil
	case func(string) []string:
		return m, nil
	case func(string) string:
		return func(match string) []string { return []string{m(match)} }, nil
	case string:
		if mapper, ok := content.LookupMapper(m, pattern); ok {
			return mapper, nil
		}
		return nil, fmt.Errorf("%w: unknown mapper %q", ErrInvalidContentMapper, m)
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidContentMapper, v)
	}
}
