// Package builder turns one feed entry into a persisted episode file. It is
// the seam where the content cleaner, the page scraper, the chapters fetch
// and the shared registries meet.
package builder

import (
	"fmt"
	"path/filepath"
	"slices"
	"sort"

	"github.com/rs/zerolog"

	"show-scraper/pkg/chapters"
	"show-scraper/pkg/config"
	"show-scraper/pkg/content"
	"show-scraper/pkg/domain"
	"show-scraper/pkg/feed"
	"show-scraper/pkg/frontmatter"
	"show-scraper/pkg/httpclient"
	"show-scraper/pkg/registry"
	"show-scraper/pkg/scrape"
	"show-scraper/pkg/writer"
)

// Status is the terminal state of one episode build.
type Status int

const (
	StatusWritten Status = iota
	StatusSkippedExists
	StatusSkippedBonus
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusWritten:
		return "written"
	case StatusSkippedExists:
		return "skipped (exists)"
	case StatusSkippedBonus:
		return "skipped (bonus)"
	default:
		return "failed"
	}
}

// Builder builds the episodes of one show. The scrape strategy is resolved
// once, when the builder is created; a builder is safe for concurrent use by
// the show's workers.
type Builder struct {
	show       string
	showCfg    config.Show
	settings   *config.Settings
	conf       *config.Config
	extractor  *scrape.Extractor
	chapters   *chapters.Fetcher
	registries *registry.Registries
	writer     *writer.Writer
	log        zerolog.Logger
}

func New(show string, showCfg config.Show, conf *config.Config, registries *registry.Registries, w *writer.Writer, log zerolog.Logger) *Builder {
	return &Builder{
		show:       show,
		showCfg:    showCfg,
		settings:   &conf.Settings,
		conf:       conf,
		extractor:  scrape.NewExtractor(httpclient.NewClient(httpclient.HTMLProfile), scrape.ForPlatform(showCfg.HostPlatform), log),
		chapters:   chapters.NewFetcher(httpclient.NewClient(httpclient.JSONProfile), conf.Settings.RetryCount, log),
		registries: registries,
		writer:     w,
		log:        log,
	}
}

// Build runs one feed entry through the whole pipeline and reports its
// terminal state. A failure is local to the entry; callers log it and move
// on.
func (b *Builder) Build(entry feed.Entry) (Status, error) {
	if entry.EpisodeType == "bonus" {
		b.log.Warn().
			Str("show", b.show).
			Str("title", entry.Title).
			Msg("Skipping episode of type bonus")
		return StatusSkippedBonus, nil
	}

	number := episodeNumber(entry)
	outputFile := filepath.Join(b.settings.DataDir, "content", "show", b.show, number.Key+".md")

	if !b.settings.OverwriteExisting && writer.Exists(outputFile) {
		b.log.Warn().
			Str("path", outputFile).
			Msg("Skipping, file already exists and not overwriting")
		return StatusSkippedExists, nil
	}

	mentions, err := b.extractor.Sponsors(entry.Link, number.Value, b.show, b.showCfg)
	if err != nil {
		return StatusFailed, fmt.Errorf("could not get episode page for %s episode %s: %w", b.showCfg.Name, number.Value, err)
	}
	b.registries.MergeSponsors(mentions)

	episode, err := b.assemble(entry, number, sponsorShortnames(mentions))
	if err != nil {
		return StatusFailed, err
	}

	if patch, ok := episodePatches[b.show]; ok {
		patch(episode)
	}

	if err := b.savePicks(entry.Summary, number.Value); err != nil {
		return StatusFailed, err
	}
	b.registries.RegisterParticipants(entry.Persons)

	data, err := frontmatter.Encode(episode)
	if err != nil {
		return StatusFailed, err
	}

	overwrite := b.settings.OverwriteExisting && !slices.Contains(b.showCfg.DontOverride, number.Key+".md")
	written, err := b.writer.Save(outputFile, data, overwrite)
	if err != nil {
		return StatusFailed, err
	}
	if !written {
		return StatusSkippedExists, nil
	}
	return StatusWritten, nil
}

// assemble fills in the episode record from the entry and everything scraped
// around it.
func (b *Builder) assemble(entry feed.Entry, number domain.EpisodeNumber, sponsors []string) (*domain.Episode, error) {
	links, err := b.episodeLinks(entry)
	if err != nil {
		return nil, err
	}

	description := entry.Subtitle
	if description == "" {
		description, err = content.Description(entry.Summary)
		if err != nil {
			return nil, fmt.Errorf("failed to extract description: %w", err)
		}
	}

	episode := &domain.Episode{
		ShowSlug:      b.show,
		ShowName:      b.showCfg.Name,
		Episode:       number.Value,
		EpisodePadded: number.Key,
		GUID:          entry.GUID,
		Title:         plainTitle(entry.Title),
		Description:   description,
		Tags:          b.episodeTags(entry, number.Value),
		Hosts:         b.usernames(entry.Persons, b.settings.IsHostRole),
		Guests:        b.usernames(entry.Persons, b.settings.IsGuestRole),
		Sponsors:      sponsors,
		Duration:      entry.Duration,
		File:          entry.Enclosure.URL,
		Bytes:         entry.Enclosure.Length,
		JBURL:         b.showCfg.JBURL + "/" + string(number.Value),
		FiresideURL:   entry.Link,
		Value:         entry.Value,
		Links:         links,
		Transcripts:   entry.Transcripts,
	}
	if entry.Published != nil {
		episode.Date = *entry.Published
	}

	// The chapters reference is kept only when the linked document checks
	// out against the chapters schema.
	if entry.Chapters != nil && b.chapters.Fetch(entry.Chapters.URL, number.Value, b.show) != nil {
		episode.Chapters = entry.Chapters
	}

	return episode, nil
}

// episodeLinks cleans the richer of the entry's two HTML bodies into the
// links section, then applies any show-scoped text patch.
func (b *Builder) episodeLinks(entry feed.Entry) (string, error) {
	raw := entry.Content
	if raw == "" {
		raw = entry.Summary
	}
	links, err := content.Links(raw)
	if err != nil {
		return "", fmt.Errorf("failed to extract links: %w", err)
	}
	if patch, ok := linkPatches[b.show]; ok {
		links = patch(links)
	}
	return links, nil
}

// episodeTags prefers the feed's own keywords; only keyword-less feeds are
// worth a scrape of the episode page.
func (b *Builder) episodeTags(entry feed.Entry, episode domain.EpisodeValue) []string {
	if len(entry.Keywords) > 0 {
		tags := slices.Clone(entry.Keywords)
		sort.Strings(tags)
		return tags
	}
	return b.extractor.Tags(entry.Link, episode, b.show)
}

// usernames canonicalizes the persons matching a role predicate and returns
// them sorted.
func (b *Builder) usernames(persons []domain.Person, match func(string) bool) []string {
	var names []string
	for _, person := range persons {
		if match(person.Role) {
			names = append(names, b.conf.CanonicalUsername(person.Name))
		}
	}
	sort.Strings(names)
	return names
}

// sponsorShortnames lists the page's sponsors in order of first mention.
func sponsorShortnames(mentions []scrape.Mention) []string {
	var shortnames []string
	seen := make(map[string]bool)
	for _, m := range mentions {
		if seen[m.Key] {
			continue
		}
		seen[m.Key] = true
		shortnames = append(shortnames, m.Record.Shortname)
	}
	return shortnames
}
