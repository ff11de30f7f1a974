package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/yacobolo/csstypes"
	"github.com/yacobolo/csstypes/internal/report"
)

const defaultConfigPath = ".csstypes.yaml"

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// Only flags that were explicitly set override file and env values
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), parserFor(configPath)); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// CSSTYPES_CSS_OUTPUT -> css-output, CSSTYPES_PURGE -> purge
	if err := k.Load(env.Provider("CSSTYPES_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "CSSTYPES_")),
			"_", "-",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// parserFor picks the koanf parser by file extension. YAML is the default.
func parserFor(path string) koanf.Parser {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return tomlParser{}
	}
	return yaml.Parser()
}

// tomlParser adapts go-toml/v2 to koanf.Parser.
type tomlParser struct{}

func (tomlParser) Unmarshal(b []byte) (map[string]any, error) {
	var out map[string]any
	if err := toml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (tomlParser) Marshal(m map[string]any) ([]byte, error) {
	return toml.Marshal(m)
}

// runConfig is everything one generate run needs.
type runConfig struct {
	Input     string
	CSSOutput string
	Options   csstypes.Options
	Format    report.Format
	Quiet     bool
	Color     bool
}

// buildRunConfig constructs the run configuration from koanf state.
func buildRunConfig() (runConfig, error) {
	content, err := contentOption(k.Get("content"))
	if err != nil {
		return runConfig{}, err
	}

	escape, err := escapeOption(getStringWithFallback("escape", ""))
	if err != nil {
		return runConfig{}, err
	}

	opts := csstypes.Options{
		Generator:       generatorOption(getStringWithFallback("generator", ""), getStringWithFallback("package", "")),
		OutputPath:      getStringWithFallback("output", ""),
		Purge:           getBoolWithFallback("purge", false),
		Content:         content,
		EscapeClassName: escape,
		IgnoreFile:      getStringWithFallback("ignore-file", ".gitignore"),
		Logger:          newLogger(getBoolWithFallback("verbose", false)),
	}

	if exclude := k.Strings("exclude"); len(exclude) > 0 {
		opts.Filter = excludeFilter(exclude)
	}

	return runConfig{
		Input:     getStringWithFallback("input", "styles.css"),
		CSSOutput: getStringWithFallback("css-output", ""),
		Options:   opts,
		Format:    report.DetermineFormat(getStringWithFallback("format", "text")),
		Quiet:     getBoolWithFallback("quiet", false),
		Color:     getBoolWithFallback("color", false),
	}, nil
}

// generatorOption turns the configured generator name into an Options value.
// The go generator takes its package name from the package key.
func generatorOption(name, pkg string) any {
	if name == "" {
		return nil
	}
	if strings.EqualFold(name, csstypes.KindGo) && pkg != "" {
		return csstypes.GoGenerator{Package: pkg}
	}
	return name
}

// excludeFilter keeps every class that is not listed.
func excludeFilter(names []string) csstypes.FilterFunc {
	excluded := make(map[string]bool, len(names))
	for _, name := range names {
		excluded[name] = true
	}
	return func(className string) bool {
		return !excluded[className]
	}
}

// escapeOption resolves a named class-name escape function. Empty leaves the
// generator's default in place.
func escapeOption(name string) (func(string) string, error) {
	switch name {
	case "":
		return nil, nil
	case "identity":
		return func(s string) string { return s }, nil
	case "lower":
		return strings.ToLower, nil
	case "go":
		return csstypes.GoName, nil
	default:
		return nil, fmt.Errorf("unknown escape %q (known: identity, lower, go)", name)
	}
}

// contentOption converts the raw content value of a config file, env var or
// flag into the shapes csstypes.Options accepts.
func contentOption(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		if v == "" {
			return nil, nil
		}
		// Env vars arrive as one comma separated string
		return strings.Split(v, ","), nil
	case []string:
		if len(v) == 0 {
			return nil, nil
		}
		return v, nil
	case map[string]any:
		return contentSource(v), nil
	case []any:
		items := make([]any, 0, len(v))
		for _, item := range v {
			switch e := item.(type) {
			case string:
				items = append(items, e)
			case map[string]any:
				items = append(items, contentSource(e))
			default:
				return nil, fmt.Errorf("content entries must be globs or tables, got %T", item)
			}
		}
		return items, nil
	default:
		return nil, fmt.Errorf("content must be a glob, a list, or a table, got %T", raw)
	}
}

func contentSource(m map[string]any) csstypes.ContentSource {
	src := csstypes.ContentSource{
		Path:   m["path"],
		Regex:  m["regex"],
		Mapper: m["mapper"],
	}
	src.Escape, _ = m["escape"].(bool)
	src.HTML, _ = m["html"].(bool)
	return src
}

// newLogger writes library debug records to stderr when verbose is set.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// getStringWithFallback returns the configured value for key, or defaultVal when unset or empty.
func getStringWithFallback(key, defaultVal string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback returns the configured value for key, or defaultVal when unset.
func getBoolWithFallback(key string, defaultVal bool) bool {
	if k.Exists(key) {
		return k.Bool(key)
	}
	return defaultVal
}
