package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"show-scraper/pkg/domain"
	"show-scraper/pkg/frontmatter"
)

// Flusher writes registry entries to their content files at the end of a
// show. The lock it holds is the same one guarding the in-memory registries,
// so the exists-check, read, compare and write of one destination file never
// interleave with another worker's.
type Flusher struct {
	writer       *Writer
	mu           sync.Locker
	dontOverride []string
	log          zerolog.Logger
}

func NewFlusher(w *Writer, mu sync.Locker, dontOverride []string, log zerolog.Logger) *Flusher {
	return &Flusher{writer: w, mu: mu, dontOverride: dontOverride, log: log}
}

// Sponsor persists one sponsor registry entry into dir. An existing file is
// replaced only when the candidate was mentioned in a strictly later episode
// than the persisted one; ties keep the file as it is.
func (f *Flusher) Sponsor(dir, filename string, record domain.SponsorRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := filepath.Join(dir, filename)
	existing, done, err := f.loadExisting(path, filename)
	if done || err != nil {
		return err
	}
	if existing != nil {
		var persisted domain.SponsorRecord
		if err := frontmatter.Decode(existing, &persisted); err != nil {
			return fmt.Errorf("failed to read persisted sponsor %s: %w", path, err)
		}
		if persisted.Episode != "" && persisted.Episode.Ordinal() >= record.Episode.Ordinal() {
			f.log.Warn().Str("path", path).Msg("Skipping save, the current file is the latest")
			return nil
		}
	}

	content, err := frontmatter.Encode(record)
	if err != nil {
		return err
	}
	_, err = f.writer.Save(path, content, true)
	return err
}

// Participant persists one participant registry entry into dir. Merging into
// an existing file replaces only the homepage and avatar fields; everything
// else in the persisted document, including fields this scraper never wrote,
// stays as it was.
func (f *Flusher) Participant(dir, filename string, record domain.ParticipantRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := filepath.Join(dir, filename)
	existing, done, err := f.loadExisting(path, filename)
	if done || err != nil {
		return err
	}

	var content []byte
	if existing != nil {
		meta, err := frontmatter.DecodeMap(existing)
		if err != nil {
			return fmt.Errorf("failed to read persisted participant %s: %w", path, err)
		}
		meta["homepage"] = record.Homepage
		meta["avatar"] = record.Avatar
		content, err = frontmatter.Encode(meta)
		if err != nil {
			return err
		}
	} else {
		content, err = frontmatter.Encode(record)
		if err != nil {
			return err
		}
	}

	_, err = f.writer.Save(path, content, true)
	return err
}

// loadExisting handles the shared preamble of both flush paths: honoring the
// do-not-override list and reading any persisted document. done means the
// entry is fully handled (skipped).
func (f *Flusher) loadExisting(path, filename string) (existing []byte, done bool, err error) {
	if !Exists(path) {
		return nil, false, nil
	}
	if slices.Contains(f.dontOverride, filename) {
		f.log.Warn().Str("filename", filename).Msg("Filename found in data_dont_override, will not save to it")
		return nil, true, nil
	}

	existing, err = os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return existing, false, nil
}
