package csstypes

import (
	"fmt"
	"go/format"
	"path"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/yacobolo/csstypes/internal/content"
)

const defaultGoPackage = "ui"

// GoGenerator emits a Go file with one string constant per class and an
// AllClasses map, so templates reference ui.BtnPrimary instead of a raw
// "btn--primary" string.
type GoGenerator struct {
	Package string // Package clause and directory of the generated file
}

func (g GoGenerator) pkg() string {
	if g.Package == "" {
		return defaultGoPackage
	}
	return g.Package
}

// Generate implements Generator.
func (g GoGenerator) Generate(classes []Class) (string, bool) {
	var sb strings.Builder
	sb.WriteString("// Code generated by csstypes. DO NOT EDIT.\n\n")
	fmt.Fprintf(&sb, "package %s\n\n", g.pkg())

	names := goNames(classes)

	sb.WriteString("const (\n")
	for i, class := range classes {
		fmt.Fprintf(&sb, "\t// %s is the %q class.\n", names[i], class.Name)
		if len(class.Properties) > 0 {
			sb.WriteString("\t//\n")
			for _, prop := range class.Properties {
				if prop.MediaQuery != "" {
					fmt.Fprintf(&sb, "\t//\t%s (%s)\n", prop.Property, prop.MediaQuery)
				} else {
					fmt.Fprintf(&sb, "\t//\t%s\n", prop.Property)
				}
			}
		}
		fmt.Fprintf(&sb, "\t%s = %s\n", names[i], strconv.Quote(class.Name))
	}
	sb.WriteString(")\n\n")

	sb.WriteString("// AllClasses maps every class name to its constant.\n")
	sb.WriteString("var AllClasses = map[string]string{\n")
	for i, class := range classes {
		fmt.Fprintf(&sb, "\t%s: %s,\n", strconv.Quote(class.Name), names[i])
	}
	sb.WriteString("}\n")

	src := []byte(sb.String())
	if formatted, err := format.Source(src); err == nil {
		src = formatted
	}
	return string(src), true
}

// Defaults implements Defaulter. Content tokens are qualified identifiers
// such as ui.BtnPrimary; class names are compared by their Go name.
func (g GoGenerator) Defaults() Defaults {
	pkg := g.pkg()
	return Defaults{
		OutputPath: path.Join(pkg, "classes.gen.go"),
		Content: []ContentSource{{
			Path:   "**/*.go",
			Regex:  `\b` + regexp.QuoteMeta(pkg) + `\.[A-Z][A-Za-z0-9_]*`,
			Mapper: Mapper(content.TrimPrefix(pkg + ".")),
			Escape: false,
		}},
		EscapeClassName: GoName,
	}
}

// Names implements Namer with the identifiers Generate emits.
func (g GoGenerator) Names(classes []Class) map[string]string {
	names := goNames(classes)
	byClass := make(map[string]string, len(classes))
	for i, class := range classes {
		byClass[class.Name] = names[i]
	}
	return byClass
}

// goNames assigns each class a unique identifier. Later collisions get a
// numeric suffix: "btn-lg" and "btn_lg" become BtnLg and BtnLg2.
func goNames(classes []Class) []string {
	names := make([]string, len(classes))
	used := make(map[string]bool, len(classes))
	for i, class := range classes {
		base := GoName(class.Name)
		name := base
		for n := 2; used[name]; n++ {
			name = base + strconv.Itoa(n)
		}
		used[name] = true
		names[i] = name
	}
	return names
}

// GoName converts a class name to an exported Go identifier.
//
//	btn--primary   -> BtnPrimary
//	md:hover:flex  -> MdHoverFlex
//	_internal      -> _Internal
//	2xl            -> C2xl
func GoName(className string) string {
	name := strings.TrimPrefix(className, ".")

	isInternal := strings.HasPrefix(name, "_")
	name = strings.TrimPrefix(name, "_")

	// Anything that cannot appear in an identifier separates words
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for i, part := range parts {
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		parts[i] = string(runes)
	}

	result := strings.Join(parts, "")
	if result == "" {
		result = "Class"
	}
	if unicode.IsDigit([]rune(result)[0]) {
		result = "C" + result
	}

	if isInternal {
		result = "_" + result
	}
	return result
}
