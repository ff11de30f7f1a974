package csstypes

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// Generator turns aggregated classes into source text. It must be pure.
// ok == false means "no output": the writer is skipped entirely.
type Generator interface {
	Generate(classes []Class) (text string, ok bool)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(classes []Class) (string, bool)

// Generate implements Generator.
func (f GeneratorFunc) Generate(classes []Class) (string, bool) {
	return f(classes)
}

// Discard never produces output. Use it to filter or purge CSS without
// generating code.
var Discard Generator = GeneratorFunc(func([]Class) (string, bool) { return "", false })

// Defaults are consulted when Options leaves a field unset.
type Defaults struct {
	OutputPath      string
	Content         []ContentSource
	EscapeClassName func(string) string
}

// Defaulter is implemented by generators that ship defaults.
type Defaulter interface {
	Defaults() Defaults
}

// Namer is implemented by generators whose emitted identifiers depend on the
// whole class list, such as Go constants with collision suffixes. Names maps
// each class name to its identifier. Unless EscapeClassName is set, purge
// compares content tokens against these identifiers.
type Namer interface {
	Names(classes []Class) map[string]string
}

// Built-in generator names.
const (
	KindTable          = "rust"       // macro table, one entry per class
	KindTableVariadic  = "rust_macro" // macro table with a variadic list entry
	KindStructuredDump = "json"       // pretty-printed JSON
	KindYAML           = "yaml"       // YAML dump
	KindGo             = "go"         // Go constants
)

// lineEnding follows the host platform, like the text editors that open the
// generated files.
var lineEnding = func() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}()

var builtins = map[string]func() Generator{
	KindTable:          func() Generator { return RustGenerator{} },
	KindTableVariadic:  func() Generator { return RustGenerator{Variadic: true} },
	KindStructuredDump: func() Generator { return JSONGenerator{} },
	KindYAML:           func() Generator { return YAMLGenerator{} },
	KindGo:             func() Generator { return GoGenerator{Package: defaultGoPackage} },
}

// LookupGenerator returns the built-in generator registered under name
// (case-insensitive).
func LookupGenerator(name string) (Generator, error) {
	factory, ok := builtins[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownGeneratorName, name, strings.Join(BuiltinNames(), ", "))
	}
	return factory(), nil
}

// BuiltinNames lists the built-in generator names, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolveGenerator accepts a built-in name, a Generator, or a generator function.
func resolveGenerator(v any) (Generator, error) {
	switch g := v.(type) {
	case nil:
		return nil, ErrMissingGenerator
	case string:
		if g == "" {
			return nil, ErrMissingGenerator
		}
		return LookupGenerator(g)
	case Generator:
		return g, nil
	case func([]Class) (string, bool):
		return GeneratorFunc(g), nil
	case func([]Class) string:
		return GeneratorFunc(func(classes []Class) (string, bool) { return g(classes), true }), nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidGeneratorType, v)
	}
}

func defaultsOf(g Generator) Defaults {
	if d, ok := g.(Defaulter); ok {
		return d.Defaults()
	}
	return Defaults{}
}
