package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"show-scraper/pkg/config"
	"show-scraper/pkg/domain"
)

// firesideStrategy reads the DOM conventions of Fireside episode pages.
type firesideStrategy struct{}

func (firesideStrategy) Sponsors(doc *goquery.Document, show config.Show, episode domain.EpisodeValue) ([]Mention, error) {
	var mentions []Mention
	doc.Find("div.episode-sponsors a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if m, ok := sponsorMention(href, sel.Text(), show, episode); ok {
			mentions = append(mentions, m)
		}
	})
	return mentions, nil
}

func (firesideStrategy) Tags(doc *goquery.Document) ([]string, error) {
	var tags []string
	doc.Find("ul.tags a.tag").Each(func(_ int, sel *goquery.Selection) {
		if tag := strings.ToLower(strings.TrimSpace(sel.Text())); tag != "" {
			tags = append(tags, tag)
		}
	})
	return tags, nil
}
