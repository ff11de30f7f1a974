// Package report prints the outcome of a csstypes run for humans or machines.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/yacobolo/csstypes"
)

// Format selects how a result is printed.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// DetermineFormat maps the --format flag to a Format. Unknown values fall back
// to text.
func DetermineFormat(flag string) Format {
	switch flag {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

// Reporter writes run summaries.
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a reporter; forceColor skips terminal detection.
func NewReporter(w io.Writer, forceColor bool) *Reporter {
	return &Reporter{w: w, useColors: ShouldUseColors(forceColor)}
}

// ShouldUseColors determines if colors should be enabled
func ShouldUseColors(force bool) bool {
	if force {
		return true
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// Write prints result in the given format.
func (r *Reporter) Write(result *csstypes.Result, format Format) error {
	if format == FormatJSON {
		return WriteJSON(r.w, result)
	}
	r.PrintResult(result)
	return nil
}

// PrintResult prints a short human-readable summary.
func (r *Reporter) PrintResult(result *csstypes.Result) {
	switch {
	case result.Written:
		fmt.Fprintf(r.w, "%s %s\n", RenderStyle(StyleGreen, "Wrote", r.useColors), RenderStyle(StyleCyan, result.OutputPath, r.useColors))
	case result.Generated:
		fmt.Fprintf(r.w, "%s %s\n", RenderStyle(StyleGray, "Unchanged", r.useColors), result.OutputPath)
	default:
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "No output generated", r.useColors))
	}

	fmt.Fprintf(r.w, "  Classes: %s from %s\n",
		pluralizeCount(result.ClassesGenerated, "class", "classes"),
		pluralizeCount(result.ClassesExtracted, "record", "records"))

	if result.FilesScanned > 0 || result.UsedClasses > 0 {
		fmt.Fprintf(r.w, "  Content: %s, %s used\n",
			pluralizeCount(result.FilesScanned, "file", "files"),
			pluralizeCount(result.UsedClasses, "class", "classes"))
	}

	removed := result.RulesRemoved + result.SelectorsRemoved + result.AtRulesRemoved
	if removed > 0 {
		fmt.Fprintf(r.w, "  Removed: %s\n", RenderStyle(StyleYellow, fmt.Sprintf("%s, %s, %s",
			pluralizeCount(result.RulesRemoved, "rule", "rules"),
			pluralizeCount(result.SelectorsRemoved, "selector", "selectors"),
			pluralizeCount(result.AtRulesRemoved, "at-rule", "at-rules")), r.useColors))
	}
}

// PrintError prints a failed run.
func (r *Reporter) PrintError(err error) {
	fmt.Fprintf(r.w, "%s %v\n", RenderStyle(StyleRed, "Error:", r.useColors), err)
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
