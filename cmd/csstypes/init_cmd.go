package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .csstypes.yaml config file",
	Long:  `Create a .csstypes.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		return writeDefaultConfig(defaultConfigPath, force)
	},
}

func writeDefaultConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	// #nosec G306 - config file is meant to be committed and shared
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	fmt.Printf("Created %s\n", path)
	return nil
}

const defaultConfig = `# csstypes configuration

input: styles.css
generator: rust            # rust | rust_macro | json | yaml | go
# output: src/css_classes.rs  (defaults to the generator's)
# css-output: dist/styles.css
# package: ui              # go generator only

# Purge: drop every class no content file uses
purge: false
ignore-file: .gitignore
content:
  - path: "src/**/*.rs"
    regex: 'TC!\s*[(\[]\s*"[^)\]]*[)\]]'
    mapper: quoted         # identity | fields | quoted | submatch | trim-prefix:<p>
  - path: "static/**/*.html"
    html: true

# Filter: classes always removed from the stylesheet (wins over purge)
# exclude:
#   - debug-outline
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
