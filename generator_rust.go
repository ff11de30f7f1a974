package csstypes

import (
	"strings"

	"github.com/yacobolo/csstypes/internal/content"
)

// Rust defaults: the table lands in src/ and content tokens are the string
// literals passed to TC!, e.g. TC!("btn") or TC!["btn", "btn-lg"].
const (
	rustOutputPath = "src/css_classes.rs"
	rustContent    = "src/**/*.rs"
	rustUsage      = `TC!\s*[(\[]\s*"[^)\]]*[)\]]`
)

// rustVariadicCase maps TC!(a, b, c) to [TC!(a), TC!(b), TC!(c)].
const rustVariadicCase = `    ($head:tt, $($tail:tt),+ $(,)?) => {` + "\n" +
	`        [TC!($head), $(TC!($tail)),+]` + "\n" +
	`    };` + "\n"

// RustGenerator emits a TC! macro_rules table with one arm per class, so a
// misspelled class name fails to compile:
//
//	macro_rules! TC {
//	    ("container") => {
//	        "container"
//	    };
//	}
//
// Variadic adds a leading arm that expands a list of names to an array.
type RustGenerator struct {
	Variadic bool
}

// Generate implements Generator.
func (g RustGenerator) Generate(classes []Class) (string, bool) {
	var sb strings.Builder
	sb.WriteString("macro_rules! TC {\n")
	if g.Variadic {
		sb.WriteString(rustVariadicCase)
	}
	for _, class := range classes {
		literal := rustString(class.Name)
		sb.WriteString("    (" + literal + ") => {\n")
		sb.WriteString("        " + literal + "\n")
		sb.WriteString("    };\n")
	}
	sb.WriteString("}")

	text := sb.String()
	if lineEnding != "\n" {
		text = strings.ReplaceAll(text, "\n", lineEnding)
	}
	return text, true
}

// Defaults implements Defaulter.
func (RustGenerator) Defaults() Defaults {
	return Defaults{
		OutputPath: rustOutputPath,
		Content: []ContentSource{{
			Path:   rustContent,
			Regex:  rustUsage,
			Mapper: Mapper(content.Quoted),
		}},
	}
}

// rustString quotes s as a Rust string literal.
func rustString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}
