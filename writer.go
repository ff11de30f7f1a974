package csstypes

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteIfChanged writes text to path unless the file already holds exactly
// text. An unchanged file is not touched, so its mtime stays put and file
// watchers downstream do not fire. Missing parent directories are created.
func WriteIfChanged(path, text string) (bool, error) {
	// #nosec G304 - path comes from trusted configuration
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if bytes.Equal(existing, []byte(text)) {
			return false, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("read output file: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("create output directory: %w", err)
		}
	}

	// #nosec G306 - generated source is meant to be readable
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return false, fmt.Errorf("write output file: %w", err)
	}
	return true, nil
}
