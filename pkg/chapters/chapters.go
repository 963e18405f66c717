package chapters

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
	"github.com/rs/zerolog"

	"show-scraper/pkg/domain"
	"show-scraper/pkg/httpclient"
)

var errEmptyBody = errors.New("chapters document body is empty")

// Document is a podcast chapters JSON document as linked from the feed's
// podcast:chapters tag.
type Document struct {
	Version  string    `json:"version" validate:"required"`
	Chapters []Chapter `json:"chapters" validate:"required|minLen:1"`
}

// Chapter is a single entry in a chapters document. Fields beyond the
// required pair are passed through untouched.
type Chapter struct {
	StartTime float64 `json:"startTime"`
	Title     string  `json:"title"`
	Img       string  `json:"img,omitempty"`
	URL       string  `json:"url,omitempty"`
}

func (d *Document) validate() error {
	v := validate.Struct(d)
	if !v.Validate() {
		return fmt.Errorf("chapters document failed validation: %s", v.Errors.One())
	}
	for i, ch := range d.Chapters {
		if ch.StartTime < 0 {
			return fmt.Errorf("chapter %d has a negative start time", i)
		}
		if ch.Title == "" {
			return fmt.Errorf("chapter %d has no title", i)
		}
	}
	return nil
}

// status classifies one fetch attempt. Only transient outcomes are retried;
// a missing document is a normal outcome, not an error.
type status int

const (
	statusOk status = iota
	statusNotFound
	statusInvalid
	statusTransient
)

type result struct {
	status status
	doc    *Document
	err    error
}

// Fetcher validates the chapter documents linked from podcast feeds.
type Fetcher struct {
	client     *httpclient.HTTPClient
	retryCount int
	log        zerolog.Logger
}

func NewFetcher(client *httpclient.HTTPClient, retryCount int, log zerolog.Logger) *Fetcher {
	return &Fetcher{client: client, retryCount: retryCount, log: log}
}

// Fetch retrieves and validates the chapters document at url, retrying
// transient failures up to the configured attempt count. It returns nil when
// the document is missing, invalid, or still unreadable after the last
// attempt; the caller keeps the feed's chapter reference only for a document
// that checks out.
func (f *Fetcher) Fetch(url string, episode domain.EpisodeValue, show string) *Document {
	for attempt := 1; attempt <= f.retryCount; attempt++ {
		res := f.fetchOnce(url)
		switch res.status {
		case statusOk:
			return res.doc
		case statusNotFound:
			f.log.Debug().
				Str("show", show).
				Str("episode", string(episode)).
				Str("url", url).
				Msg("no chapters document")
			return nil
		case statusInvalid:
			f.log.Warn().Err(res.err).
				Str("show", show).
				Str("episode", string(episode)).
				Str("url", url).
				Msg("invalid chapters document")
			return nil
		case statusTransient:
			f.log.Warn().Err(res.err).
				Int("attempt", attempt).
				Str("show", show).
				Str("episode", string(episode)).
				Msg("transient failure fetching chapters")
		}
	}
	f.log.Error().
		Str("show", show).
		Str("episode", string(episode)).
		Str("url", url).
		Msg("failed to fetch chapters after retries")
	return nil
}

func (f *Fetcher) fetchOnce(url string) result {
	req, err := httpclient.NewGetRequest(url)
	if err != nil {
		return result{status: statusNotFound, err: err}
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return result{status: statusTransient, err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return result{status: statusNotFound, err: &httpclient.StatusError{StatusCode: resp.StatusCode, URL: url}}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result{status: statusTransient, err: err}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return result{status: statusTransient, err: errEmptyBody}
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return result{status: statusInvalid, err: fmt.Errorf("failed to decode chapters document: %w", err)}
	}
	if err := doc.validate(); err != nil {
		return result{status: statusInvalid, err: err}
	}
	return result{status: statusOk, doc: &doc}
}
