package csstypes

import (
	"fmt"
	"log/slog"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/yacobolo/csstypes/internal/content"
	"github.com/yacobolo/csstypes/stylesheet"
)

// Processor runs the extract, filter, aggregate, generate and write pipeline
// with a validated configuration. It holds no per-run state and may be reused.
type Processor struct {
	cfg    *config
	ignore *ignore.GitIgnore
	logger *slog.Logger
}

// New validates opts and returns a ready Processor. Configuration errors are
// reported before any file is touched; match them with errors.Is.
func New(opts Options) (*Processor, error) {
	cfg, err := resolve(opts)
	if err != nil {
		return nil, err
	}

	gi, err := content.LoadIgnoreFile(cfg.ignoreFile)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Processor{cfg: cfg, ignore: gi, logger: logger}, nil
}

// OutputPath is the resolved destination of the generated file.
func (p *Processor) OutputPath() string {
	return p.cfg.outputPath
}

// ContentPaths lists the glob patterns of every resolved content source, in
// configuration order.
func (p *Processor) ContentPaths() []string {
	var paths []string
	for _, src := range p.cfg.content {
		paths = append(paths, src.Paths...)
	}
	return paths
}

// Process runs the pipeline over sheet, mutating it in place when a filter or
// purge is configured. The generator always sees every class of the original
// stylesheet, including those removed from it.
func (p *Processor) Process(sheet *stylesheet.Sheet) (*Result, error) {
	result := &Result{OutputPath: p.cfg.outputPath}

	var classes []Class
	sheet.WalkRules(func(rule *stylesheet.Rule) {
		classes = append(classes, Extract(rule)...)
	})
	result.ClassesExtracted = len(classes)

	aggregated := Aggregate(classes)
	result.ClassesGenerated = len(aggregated)

	keep, err := p.keepFunc(aggregated, result)
	if err != nil {
		return nil, err
	}
	if keep != nil {
		sheet.WalkRules(func(rule *stylesheet.Rule) {
			for _, name := range classNames(rule) {
				if rule.Removed() {
					break
				}
				if !keep(name) {
					removeClass(rule, name, result)
				}
			}
		})
	}

	if p.purging() {
		pruneEmptyAtRules(sheet, result)
	}

	p.logger.Debug("extracted classes",
		"records", result.ClassesExtracted,
		"unique", result.ClassesGenerated,
		"rules_removed", result.RulesRemoved,
		"selectors_removed", result.SelectorsRemoved,
		"at_rules_removed", result.AtRulesRemoved)

	text, ok := p.cfg.generator.Generate(aggregated)
	if !ok {
		p.logger.Debug("generator produced no output")
		return result, nil
	}
	result.Generated = true

	written, err := WriteIfChanged(p.cfg.outputPath, text)
	if err != nil {
		return nil, err
	}
	result.Written = written
	p.logger.Debug("output", "path", p.cfg.outputPath, "written", written)

	return result, nil
}

// ProcessCSS parses source, runs Process, and returns the resulting stylesheet
// text.
func (p *Processor) ProcessCSS(source string) (string, *Result, error) {
	sheet, err := stylesheet.ParseString(source)
	if err != nil {
		return "", nil, err
	}
	result, err := p.Process(sheet)
	if err != nil {
		return "", nil, err
	}
	return sheet.String(), result, nil
}

// purging reports whether purge mode is active. A filter takes precedence.
func (p *Processor) purging() bool {
	return p.cfg.filter == nil && p.cfg.purge
}

// keepFunc returns the per-class keep decision, or nil when the stylesheet is
// left alone. In purge mode the content files are scanned here, before the
// stylesheet is touched.
func (p *Processor) keepFunc(classes []Class, result *Result) (func(string) bool, error) {
	if p.cfg.filter != nil {
		return p.cfg.filter, nil
	}
	if !p.cfg.purge {
		return nil, nil
	}

	escape := p.escapeFor(classes)

	scanner := content.NewScanner([]string{p.cfg.outputPath}, p.ignore, p.logger)
	used, stats, err := scanner.UsedClasses(p.cfg.content, escape)
	if err != nil {
		return nil, fmt.Errorf("scan content: %w", err)
	}
	result.UsedClasses = len(used)
	result.FilesScanned = stats.FilesScanned
	p.logger.Debug("scanned content",
		"files", stats.FilesScanned,
		"skipped", stats.FilesSkipped,
		"used_classes", len(used))

	return func(name string) bool {
		_, ok := used[escape(name)]
		return ok
	}, nil
}

// escapeFor returns the escape purge compares with. Unless EscapeClassName
// is set, a Namer generator's identifiers replace its default escape.
func (p *Processor) escapeFor(classes []Class) func(string) string {
	namer, ok := p.cfg.generator.(Namer)
	if !ok || p.cfg.escapeSet {
		return p.cfg.escape
	}

	names := namer.Names(classes)
	fallback := p.cfg.escape
	return func(name string) string {
		if id, ok := names[name]; ok {
			return id
		}
		return fallback(name)
	}
}

// Run is a one-shot New followed by Process.
func Run(sheet *stylesheet.Sheet, opts Options) (*Result, error) {
	p, err := New(opts)
	if err != nil {
		return nil, err
	}
	return p.Process(sheet)
}
