package domain

import (
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// EpisodeValue is an episode number as it appears in front matter and URLs.
// Numeric episodes serialize as YAML integers; URL-derived slugs stay strings.
type EpisodeValue string

// MarshalYAML emits an integer node for numeric values so episode numbers
// round-trip as `episode: 42`, not `episode: "42"`.
func (v EpisodeValue) MarshalYAML() (interface{}, error) {
	if n, err := strconv.Atoi(string(v)); err == nil {
		return n, nil
	}
	return string(v), nil
}

// UnmarshalYAML accepts both integer and string scalars.
func (v *EpisodeValue) UnmarshalYAML(node *yaml.Node) error {
	*v = EpisodeValue(node.Value)
	return nil
}

// Ordinal returns the numeric rank used for recency comparisons. Missing or
// non-numeric values rank below every real episode number.
func (v EpisodeValue) Ordinal() int {
	n, err := strconv.Atoi(string(v))
	if err != nil {
		return -1
	}
	return n
}

// EpisodeNumber is the parsed identity of an episode within a show.
type EpisodeNumber struct {
	// Value is the display form, e.g. "42" or a trailing URL slug.
	Value EpisodeValue

	// Key is the output file stem: zero-padded to 4 digits for numeric
	// episodes, the raw slug otherwise.
	Key string
}

// Episode is the canonical record built from one feed entry. It is owned by
// the worker that built it and never mutated after assembly.
type Episode struct {
	ShowSlug        string       `yaml:"show_slug"`
	ShowName        string       `yaml:"show_name"`
	Episode         EpisodeValue `yaml:"episode"`
	EpisodePadded   string       `yaml:"episode_padded"`
	GUID            string       `yaml:"episode_guid"`
	Title           string       `yaml:"title"`
	Description     string       `yaml:"description"`
	Date            time.Time    `yaml:"date"`
	Tags            []string     `yaml:"tags"`
	Hosts           []string     `yaml:"hosts"`
	Guests          []string     `yaml:"guests"`
	Sponsors        []string     `yaml:"sponsors"`
	Duration        string       `yaml:"podcast_duration"`
	File            string       `yaml:"podcast_file"`
	Bytes           int64        `yaml:"podcast_bytes"`
	Chapters        *ChaptersRef `yaml:"podcast_chapters"`
	AltFile         *string      `yaml:"podcast_alt_file"`
	OggFile         *string      `yaml:"podcast_ogg_file"`
	VideoFile       *string      `yaml:"video_file"`
	VideoHDFile     *string      `yaml:"video_hd_file"`
	VideoMobileFile *string      `yaml:"video_mobile_file"`
	YouTubeLink     *string      `yaml:"youtube_link"`
	JBURL           string       `yaml:"jb_url"`
	FiresideURL     string       `yaml:"fireside_url"`
	Value           *Value       `yaml:"value"`
	Links           string       `yaml:"episode_links"`
	Transcripts     []Transcript `yaml:"transcripts"`
}
