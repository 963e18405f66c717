// Package writer persists the scraper's output files. Save is the single
// idempotent write primitive; Flusher layers the sponsor/participant merge
// rules on top of it for the end-of-show registry flush.
package writer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Writer performs idempotent file writes. A Writer never overwrites an
// existing file unless told to, and every skip and write is logged.
type Writer struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Writer {
	return &Writer{log: log}
}

// Save writes content to path, creating parent directories as needed. When
// the file already exists and overwrite is false the call is a logged no-op.
// The returned bool reports whether a write happened.
func (w *Writer) Save(path string, content []byte, overwrite bool) (bool, error) {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			w.log.Warn().Str("path", path).Msg("Skipping save, file already exists")
			return false, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}

	w.log.Info().Str("path", path).Msg("Saved file")
	return true, nil
}

// Exists reports whether path names an existing file.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
