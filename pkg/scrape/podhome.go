package scrape

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	json "github.com/goccy/go-json"

	"show-scraper/pkg/config"
	"show-scraper/pkg/domain"
)

// podhomeStrategy reads the DOM conventions of Podhome episode pages.
type podhomeStrategy struct{}

func (podhomeStrategy) Sponsors(doc *goquery.Document, show config.Show, episode domain.EpisodeValue) ([]Mention, error) {
	var mentions []Mention
	doc.Find("section.sponsors a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if m, ok := sponsorMention(href, sel.Text(), show, episode); ok {
			mentions = append(mentions, m)
		}
	})
	return mentions, nil
}

// Tags reads the page's JSON-LD metadata block; Podhome keeps episode
// keywords there rather than in the markup.
func (podhomeStrategy) Tags(doc *goquery.Document) ([]string, error) {
	block := doc.Find(`script[type="application/ld+json"]`).First()
	if block.Length() == 0 {
		return nil, nil
	}
	var meta struct {
		Keywords keywordList `json:"keywords"`
	}
	if err := json.Unmarshal([]byte(block.Text()), &meta); err != nil {
		return nil, fmt.Errorf("failed to decode JSON-LD block: %w", err)
	}
	var tags []string
	for _, kw := range meta.Keywords {
		if tag := strings.ToLower(strings.TrimSpace(kw)); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

// keywordList accepts both JSON-LD keyword shapes, a single comma-separated
// string or an array of strings.
type keywordList []string

func (k *keywordList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*k = strings.Split(single, ",")
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*k = many
	return nil
}
