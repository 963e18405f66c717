package feed

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"show-scraper/pkg/domain"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
	"github.com/rs/zerolog"
)

// Feed is the typed representation of one show's parsed RSS/Atom feed.
type Feed struct {
	Title   string
	GUID    string // channel-level podcast:guid, empty when absent or invalid
	Medium  string
	Entries []Entry
}

// Entry is one feed item with its enclosure, iTunes fields and podcast
// namespace payloads normalized.
type Entry struct {
	Title     string
	Link      string
	GUID      string
	Published *time.Time
	Summary   string // <description>
	Content   string // <content:encoded>
	Enclosure Enclosure

	Duration    string   // itunes:duration
	EpisodeType string   // itunes:episodeType
	Subtitle    string   // itunes:subtitle
	Keywords    []string // itunes:keywords, split and deduplicated

	Persons     []domain.Person
	Episode     *EpisodeTag
	Chapters    *domain.ChaptersRef
	Transcripts []domain.Transcript
	Value       *domain.Value
}

// EpisodeTag is the feed-declared podcast:episode element.
type EpisodeTag struct {
	Value   string
	Display string
}

// Enclosure is the episode's media attachment.
type Enclosure struct {
	URL    string
	Length int64
	Type   string
}

// Parser handles RSS/Atom feed parsing operations
type Parser struct {
	feedParser *gofeed.Parser
	log        zerolog.Logger
}

// NewParser creates a new feed parser
func NewParser(log zerolog.Logger) *Parser {
	return &Parser{
		feedParser: gofeed.NewParser(),
		log:        log,
	}
}

// Parse parses raw feed bytes into the typed feed model. A feed that cannot
// be parsed, or carries no items, is an error for the caller's show.
func (p *Parser) Parse(data []byte) (*Feed, error) {
	parsed, err := p.feedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	if len(parsed.Items) == 0 {
		return nil, fmt.Errorf("feed contains no items")
	}

	feed := &Feed{
		Title:  parsed.Title,
		GUID:   p.channelGUID(parsed),
		Medium: extValue(parsed.Extensions, "medium"),
	}

	feed.Entries = make([]Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		feed.Entries = append(feed.Entries, p.normalizeItem(item))
	}

	return feed, nil
}

// channelGUID reads the channel-level podcast:guid, dropping values that are
// not valid UUIDs.
func (p *Parser) channelGUID(parsed *gofeed.Feed) string {
	raw := extValue(parsed.Extensions, "guid")
	if raw == "" {
		return ""
	}
	if _, err := uuid.Parse(raw); err != nil {
		p.log.Warn().Str("guid", raw).Msg("Ignoring invalid podcast:guid")
		return ""
	}
	return raw
}

func (p *Parser) normalizeItem(item *gofeed.Item) Entry {
	entry := Entry{
		Title:     item.Title,
		Link:      item.Link,
		GUID:      item.GUID,
		Published: item.PublishedParsed,
		Summary:   item.Description,
		Content:   item.Content,
	}

	if len(item.Enclosures) > 0 {
		encl := item.Enclosures[0]
		length, _ := strconv.ParseInt(encl.Length, 10, 64)
		entry.Enclosure = Enclosure{URL: encl.URL, Length: length, Type: encl.Type}
	}

	if it := item.ITunesExt; it != nil {
		entry.Duration = it.Duration
		entry.EpisodeType = it.EpisodeType
		entry.Subtitle = it.Subtitle
		entry.Keywords = splitKeywords(it.Keywords)
	}

	entry.Persons = parsePersons(item.Extensions)
	entry.Episode = parseEpisodeTag(item.Extensions)
	entry.Chapters = parseChapters(item.Extensions)
	entry.Transcripts = parseTranscripts(item.Extensions)
	entry.Value = parseValue(item.Extensions)

	return entry
}

// splitKeywords splits the comma-separated itunes:keywords string into a
// deduplicated list.
func splitKeywords(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var keywords []string
	seen := make(map[string]bool)
	for _, kw := range strings.Split(raw, ",") {
		kw = strings.TrimSpace(kw)
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		keywords = append(keywords, kw)
	}
	return keywords
}

// podcastExts returns the item's podcast-namespace elements with the given
// name. Extensions are keyed by the declared prefix, so feeds carrying a
// non-canonical namespace URL still resolve as long as they use the
// conventional "podcast" prefix.
func podcastExts(extensions ext.Extensions, name string) []ext.Extension {
	podcast, ok := extensions["podcast"]
	if !ok {
		return nil
	}
	return podcast[name]
}

// extValue returns the text of the first podcast-namespace element with the
// given name, or "".
func extValue(extensions ext.Extensions, name string) string {
	exts := podcastExts(extensions, name)
	if len(exts) == 0 {
		return ""
	}
	return strings.TrimSpace(exts[0].Value)
}

func parsePersons(extensions ext.Extensions) []domain.Person {
	var persons []domain.Person
	for _, e := range podcastExts(extensions, "person") {
		person := domain.Person{
			Name:  strings.TrimSpace(e.Value),
			Role:  e.Attrs["role"],
			Group: e.Attrs["group"],
			Href:  e.Attrs["href"],
			Img:   e.Attrs["img"],
		}
		if person.Role == "" {
			person.Role = "host"
		}
		if person.Group == "" {
			person.Group = "cast"
		}
		persons = append(persons, person)
	}
	return persons
}

func parseEpisodeTag(extensions ext.Extensions) *EpisodeTag {
	exts := podcastExts(extensions, "episode")
	if len(exts) == 0 {
		return nil
	}
	return &EpisodeTag{
		Value:   strings.TrimSpace(exts[0].Value),
		Display: exts[0].Attrs["display"],
	}
}

func parseChapters(extensions ext.Extensions) *domain.ChaptersRef {
	exts := podcastExts(extensions, "chapters")
	if len(exts) == 0 {
		return nil
	}
	return &domain.ChaptersRef{
		URL:  exts[0].Attrs["url"],
		Type: exts[0].Attrs["type"],
	}
}

func parseTranscripts(extensions ext.Extensions) []domain.Transcript {
	var transcripts []domain.Transcript
	for _, e := range podcastExts(extensions, "transcript") {
		transcripts = append(transcripts, domain.Transcript{
			URL:      e.Attrs["url"],
			Type:     e.Attrs["type"],
			Language: e.Attrs["language"],
			Rel:      e.Attrs["rel"],
		})
	}
	return transcripts
}

func parseValue(extensions ext.Extensions) *domain.Value {
	exts := podcastExts(extensions, "value")
	if len(exts) == 0 {
		return nil
	}

	e := exts[0]
	value := &domain.Value{
		Type:       e.Attrs["type"],
		Method:     e.Attrs["method"],
		Suggested:  e.Attrs["suggested"],
		Recipients: parseRecipients(e.Children["valueRecipient"]),
	}

	for _, split := range e.Children["valueTimeSplit"] {
		ts := domain.ValueTimeSplit{
			StartTime:        atoi(split.Attrs["startTime"]),
			Duration:         atoi(split.Attrs["duration"]),
			RemotePercentage: atoi(split.Attrs["remotePercentage"]),
			Recipients:       parseRecipients(split.Children["valueRecipient"]),
		}
		if raw, ok := split.Attrs["remoteStartTime"]; ok {
			n := atoi(raw)
			ts.RemoteStartTime = &n
		}
		if remotes := split.Children["remoteItem"]; len(remotes) > 0 {
			ts.RemoteItem = &domain.RemoteItem{
				FeedGUID: remotes[0].Attrs["feedGuid"],
				FeedURL:  remotes[0].Attrs["feedUrl"],
				ItemGUID: remotes[0].Attrs["itemGuid"],
				Medium:   remotes[0].Attrs["medium"],
			}
		}
		value.TimeSplits = append(value.TimeSplits, ts)
	}

	return value
}

func parseRecipients(exts []ext.Extension) []domain.ValueRecipient {
	var recipients []domain.ValueRecipient
	for _, e := range exts {
		recipient := domain.ValueRecipient{
			Name:        e.Attrs["name"],
			Type:        e.Attrs["type"],
			Address:     e.Attrs["address"],
			CustomKey:   e.Attrs["customKey"],
			CustomValue: e.Attrs["customValue"],
			Split:       atoi(e.Attrs["split"]),
		}
		if raw, ok := e.Attrs["fee"]; ok {
			fee, err := strconv.ParseBool(raw)
			if err == nil {
				recipient.Fee = &fee
			}
		}
		recipients = append(recipients, recipient)
	}
	return recipients
}

func atoi(raw string) int {
	n, _ := strconv.Atoi(raw)
	return n
}
