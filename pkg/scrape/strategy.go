package scrape

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"show-scraper/pkg/config"
	"show-scraper/pkg/domain"
)

// Mention is one sponsor anchor located on an episode page. Key is the
// sponsor registry file name, "<host>-<acronym>.json".
type Mention struct {
	Key    string
	Record domain.SponsorRecord
}

// Strategy extracts sponsor mentions and topic tags from the episode pages
// of one hosting platform.
type Strategy interface {
	Sponsors(doc *goquery.Document, show config.Show, episode domain.EpisodeValue) ([]Mention, error)
	Tags(doc *goquery.Document) ([]string, error)
}

// ForPlatform selects the strategy for a show's hosting platform key.
// Fireside is the default for unrecognized or absent keys.
func ForPlatform(key string) Strategy {
	switch key {
	case "podhome":
		return podhomeStrategy{}
	default:
		return firesideStrategy{}
	}
}

// sponsorMention derives a Mention from a sponsor anchor. The identifier
// joins the link's host, any www prefix dropped, with the show acronym, so a
// Linode campaign link on LINUX Unplugged becomes "linode.com-lup". Anchors
// without a resolvable host are skipped.
func sponsorMention(href, text string, show config.Show, episode domain.EpisodeValue) (Mention, bool) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil || u.Hostname() == "" {
		return Mention{}, false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	shortname := strings.ToLower(host + "-" + show.Acronym)
	return Mention{
		Key: shortname + ".json",
		Record: domain.SponsorRecord{
			Shortname:   shortname,
			Title:       shortname,
			Description: strings.TrimSpace(text),
			Link:        href,
			Episode:     episode,
		},
	}, true
}
