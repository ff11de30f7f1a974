package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/csstypes"
	"github.com/yacobolo/csstypes/internal/report"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate class bindings from a stylesheet",
	Long: `Parse the input stylesheet, optionally filter or purge unused classes,
and write the generated class bindings. The output file is only rewritten
when its content changes.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runGenerate,
}

func init() {
	addPipelineFlags(generateCmd)
}

// addPipelineFlags registers the flags shared by generate, watch and the root command.
func addPipelineFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("input", "i", "styles.css", "Input stylesheet")
	f.StringP("generator", "g", "", "Generator: "+fmt.Sprint(csstypes.BuiltinNames()))
	f.StringP("output", "o", "", "Generated file path (default: the generator's)")
	f.String("css-output", "", "Write the filtered stylesheet here (- for stdout)")
	f.String("package", "", "Package name for the go generator")
	f.Bool("purge", false, "Remove classes no content file uses")
	f.StringSlice("content", nil, "Content globs scanned for used classes")
	f.StringSlice("exclude", nil, "Class names to remove from the stylesheet")
	f.String("ignore-file", ".gitignore", "Ignore file applied to content globs")
	f.String("escape", "", "Class-name escape: identity|lower|go")
	f.String("format", "text", "Summary format: text|json")
}

func runGenerate(_ *cobra.Command, _ []string) error {
	rc, err := buildRunConfig()
	if err != nil {
		return err
	}

	result, err := generateOnce(rc)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if rc.Quiet {
		return nil
	}
	return report.NewReporter(os.Stdout, rc.Color).Write(result, rc.Format)
}

// generateOnce validates the options, then reads the input stylesheet, runs
// the pipeline and writes the filtered stylesheet when asked to.
func generateOnce(rc runConfig) (*csstypes.Result, error) {
	p, err := csstypes.New(rc.Options)
	if err != nil {
		return nil, err
	}

	// #nosec G304 - input path comes from trusted configuration
	source, err := os.ReadFile(rc.Input)
	if err != nil {
		return nil, fmt.Errorf("read stylesheet: %w", err)
	}

	css, result, err := p.ProcessCSS(string(source))
	if err != nil {
		return nil, err
	}

	switch rc.CSSOutput {
	case "":
	case "-":
		fmt.Print(css)
	default:
		if _, err := csstypes.WriteIfChanged(rc.CSSOutput, css); err != nil {
			return nil, fmt.Errorf("write stylesheet: %w", err)
		}
	}

	return result, nil
}
