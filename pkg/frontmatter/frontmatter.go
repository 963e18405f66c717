// Package frontmatter encodes records as front-matter documents: a YAML
// metadata block between "---" fences followed by an empty body. Every file
// this scraper produces, episodes, sponsors, people and picks, has this shape.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var delimiter = []byte("---\n")

// ErrNoFrontMatter is returned when a document does not open with a fenced
// metadata block.
var ErrNoFrontMatter = errors.New("document has no front matter block")

// Encode serializes meta into a front-matter document with an empty body.
func Encode(meta any) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(delimiter)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return nil, fmt.Errorf("failed to encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode front matter: %w", err)
	}

	buf.Write(delimiter)
	return buf.Bytes(), nil
}

// Decode unmarshals the metadata block of a front-matter document into meta.
// The body, if any, is ignored.
func Decode(data []byte, meta any) error {
	block, err := metadataBlock(data)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(block, meta); err != nil {
		return fmt.Errorf("failed to decode front matter: %w", err)
	}
	return nil
}

// DecodeMap unmarshals the metadata block into a generic map, preserving
// fields the caller's types do not know about.
func DecodeMap(data []byte) (map[string]any, error) {
	meta := make(map[string]any)
	if err := Decode(data, &meta); err != nil {
		return nil, err
	}
	return meta, nil
}

func metadataBlock(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, delimiter) {
		return nil, ErrNoFrontMatter
	}
	rest := data[len(delimiter):]
	end := bytes.Index(rest, delimiter)
	if end < 0 {
		return nil, ErrNoFrontMatter
	}
	return rest[:end], nil
}
