package builder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"show-scraper/pkg/domain"
	"show-scraper/pkg/feed"
)

var (
	// plainTitleRe strips an "Episode 42:" style prefix and anything after
	// a " | " separator, leaving just the show title.
	// https://regex101.com/r/gkUzld/
	plainTitleRe = regexp.MustCompile(`^(?:(?:Episode)?\s?[0-9]+:+\s+)?(.+?)(?:(\s+\|+.*)|\s+)?$`)

	// episodeNumberRe pulls the episode number off the front of a title.
	// The "Pocket Office" prefix rides along so those specials fall through
	// to the URL-slug path instead of colliding with the numeric range.
	episodeNumberRe = regexp.MustCompile(`^.*?((?:Pocket Office )?\d+):`)
)

// plainTitle returns the show title without numbering or trailing extras.
func plainTitle(title string) string {
	m := plainTitleRe.FindStringSubmatch(title)
	if m == nil {
		return title
	}
	return m[1]
}

// titleEpisodeNumber extracts the leading episode number from a title, or ""
// when the title carries none.
func titleEpisodeNumber(title string) string {
	m := episodeNumberRe.FindStringSubmatch(title)
	if m == nil {
		return ""
	}
	return m[1]
}

// episodeNumber determines the entry's episode identity. A feed-declared
// podcast:episode value wins, then a number parsed from the title. Numeric
// values get the zero-padded file key; everything else falls back to the
// trailing path segment of the entry link, which is used raw, with no
// padding and no numeric ordering.
func episodeNumber(entry feed.Entry) domain.EpisodeNumber {
	var raw string
	if entry.Episode != nil {
		raw = entry.Episode.Value
	} else {
		raw = titleEpisodeNumber(entry.Title)
	}

	if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
		return domain.EpisodeNumber{
			Value: domain.EpisodeValue(strconv.Itoa(n)),
			Key:   fmt.Sprintf("%04d", n),
		}
	}

	segments := strings.Split(entry.Link, "/")
	slug := segments[len(segments)-1]
	return domain.EpisodeNumber{
		Value: domain.EpisodeValue(slug),
		Key:   slug,
	}
}
