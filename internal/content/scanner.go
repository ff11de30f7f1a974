package content

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// Source is a resolved content source: where to look and how to read tokens.
type Source struct {
	Paths     []string  // Glob patterns, ** supported
	Extractor Extractor // Token strategy for file text
	Escape    bool      // Pass tokens through the class-name escape function
}

// ScanStats tracks file scanning statistics
type ScanStats struct {
	FilesDiscovered int // Files matched by glob patterns
	FilesScanned    int // Files actually read
	FilesSkipped    int // Files excluded or ignored
}

// Scanner expands content globs and collects the used-class set.
type Scanner struct {
	exclude map[string]bool
	ignore  *ignore.GitIgnore
	logger  *slog.Logger
}

// NewScanner creates a scanner that never reads the exclude paths.
// gi may be nil.
func NewScanner(exclude []string, gi *ignore.GitIgnore, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Scanner{
		exclude: make(map[string]bool, len(exclude)),
		ignore:  gi,
		logger:  logger,
	}
	for _, path := range exclude {
		s.exclude[absPath(path)] = true
	}
	return s
}

// LoadIgnoreFile compiles a .gitignore-style file. A missing file yields nil
// and no error.
func LoadIgnoreFile(path string) (*ignore.GitIgnore, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, fmt.Errorf("compile ignore file %s: %w", path, err)
	}
	return gi, nil
}

// shouldSkipFile reports whether a matched file is excluded from scanning.
// The ignore file applies to relative paths only; absolute paths are outside
// the project it describes.
func (s *Scanner) shouldSkipFile(path string) bool {
	if s.exclude[absPath(path)] {
		return true
	}
	if s.ignore != nil && !filepath.IsAbs(path) && s.ignore.MatchesPath(path) {
		return true
	}
	return false
}

// ExpandGlobs expands patterns to a deduplicated list of regular files, in
// pattern order.
func (s *Scanner) ExpandGlobs(patterns []string) ([]string, ScanStats, error) {
	var files []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if s.shouldSkipFile(match) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesScanned++
		}
	}

	return files, stats, nil
}

// UsedClasses reads every file of every source and returns the set of class
// tokens found. Tokens of sources with Escape set go through escape first.
// Read errors are returned, not skipped.
func (s *Scanner) UsedClasses(sources []Source, escape func(string) string) (map[string]struct{}, ScanStats, error) {
	used := make(map[string]struct{})
	var total ScanStats

	for _, src := range sources {
		files, stats, err := s.ExpandGlobs(src.Paths)
		if err != nil {
			return nil, total, err
		}
		total.FilesDiscovered += stats.FilesDiscovered
		total.FilesScanned += stats.FilesScanned
		total.FilesSkipped += stats.FilesSkipped

		for _, file := range files {
			// #nosec G304 - paths come from trusted configuration
			data, err := os.ReadFile(file)
			if err != nil {
				return nil, total, fmt.Errorf("read content file: %w", err)
			}

			tokens := src.Extractor.Extract(string(data))
			for _, token := range tokens {
				if src.Escape && escape != nil {
					token = escape(token)
				}
				used[token] = struct{}{}
			}
			s.logger.Debug("scanned content file", "file", file, "tokens", len(tokens))
		}
	}

	return used, total, nil
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
