package scrape

import (
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"show-scraper/pkg/config"
	"show-scraper/pkg/domain"
	"show-scraper/pkg/httpclient"
)

// Extractor runs a platform strategy against fetched episode pages. One
// extractor serves all episodes of a show; the strategy is resolved when the
// show's run starts.
type Extractor struct {
	client   *httpclient.HTTPClient
	strategy Strategy
	log      zerolog.Logger
}

func NewExtractor(client *httpclient.HTTPClient, strategy Strategy, log zerolog.Logger) *Extractor {
	return &Extractor{client: client, strategy: strategy, log: log}
}

// Sponsors fetches the episode page and returns its sponsor mentions in page
// order. A link without a scheme means there is no page to fetch and yields
// no mentions; any other fetch failure is returned so the caller can abort
// the episode build. Strategy failures degrade to no mentions.
func (e *Extractor) Sponsors(pageURL string, episode domain.EpisodeValue, show string, showCfg config.Show) ([]Mention, error) {
	resp, err := e.client.Get(pageURL)
	if err != nil {
		if errors.Is(err, httpclient.ErrNoScheme) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch episode page: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse episode page: %w", err)
	}

	mentions, err := e.strategy.Sponsors(doc, showCfg, episode)
	if err != nil {
		e.log.Warn().Err(err).
			Str("show", show).
			Str("episode", string(episode)).
			Msg("failed to collect sponsor data from episode page")
		return nil, nil
	}
	return mentions, nil
}

// Tags fetches the episode page and returns its tag values. Tag scraping is
// best effort: an unusable URL, a failed fetch, or a strategy failure all
// degrade to no tags. The response body is parsed whatever the status code,
// an error page simply has no tags in it.
func (e *Extractor) Tags(pageURL string, episode domain.EpisodeValue, show string) []string {
	req, err := httpclient.NewGetRequest(pageURL)
	if err != nil {
		return nil
	}
	resp, err := e.client.Do(req)
	if err != nil {
		e.log.Warn().Err(err).
			Str("show", show).
			Str("episode", string(episode)).
			Msg("failed to fetch episode page for tags")
		return nil
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		e.log.Warn().Err(err).
			Str("show", show).
			Str("episode", string(episode)).
			Msg("failed to parse episode page for tags")
		return nil
	}

	tags, err := e.strategy.Tags(doc)
	if err != nil {
		e.log.Warn().Err(err).
			Str("show", show).
			Str("episode", string(episode)).
			Msg("failed to collect tags from episode page")
		return nil
	}
	return tags
}
