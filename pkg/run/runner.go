// Package run coordinates a full scrape: shows are processed one after
// another, the episodes of each show concurrently. After a show's episodes
// drain, the shared registries are flushed to disk and cleared before the
// next show starts.
package run

import (
	"io"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"show-scraper/pkg/builder"
	"show-scraper/pkg/config"
	"show-scraper/pkg/feed"
	"show-scraper/pkg/httpclient"
	"show-scraper/pkg/registry"
	"show-scraper/pkg/writer"
)

// Counters summarize one show's outcome for the final report.
type Counters struct {
	Show         string
	Built        int
	Skipped      int
	Failed       int
	Sponsors     int
	Participants int
}

// Runner executes the scrape described by one immutable configuration.
type Runner struct {
	conf       *config.Config
	feedClient *httpclient.HTTPClient
	parser     *feed.Parser
	writer     *writer.Writer
	registries *registry.Registries
	flusher    *writer.Flusher
	log        zerolog.Logger
}

func New(conf *config.Config, log zerolog.Logger) *Runner {
	w := writer.New(log)
	client := httpclient.NewClient(httpclient.HTMLProfile)
	registries := registry.New(conf, client, w, log)

	return &Runner{
		conf:       conf,
		feedClient: client,
		parser:     feed.NewParser(log),
		writer:     w,
		registries: registries,
		flusher:    writer.NewFlusher(w, registries.Locker(), conf.DataDontOverride, log),
		log:        log,
	}
}

// Run processes every configured show and returns the per-show counters.
// Errors never propagate past the show that raised them; a completed Run is
// always a process success.
func (r *Runner) Run() []Counters {
	summary := make([]Counters, 0, len(r.conf.Shows))
	for _, show := range r.conf.SortedSlugs() {
		summary = append(summary, r.runShow(show, r.conf.Shows[show]))
	}
	return summary
}

func (r *Runner) runShow(show string, showCfg config.Show) Counters {
	counters := Counters{Show: show}
	log := r.log.With().Str("show", show).Logger()
	log.Info().Str("feed", showCfg.ShowRSS).Msg("Processing show")

	entries, err := r.fetchEntries(showCfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to ingest feed, skipping show")
		counters.Failed++
		return counters
	}

	if r.conf.Settings.LatestOnly && len(entries) > r.conf.Settings.LatestOnlyEpLimit {
		log.Debug().
			Int("limit", r.conf.Settings.LatestOnlyEpLimit).
			Msg("Limiting scraping to the most recent episodes")
		entries = entries[:r.conf.Settings.LatestOnlyEpLimit]
	}

	b := builder.New(show, showCfg, r.conf, r.registries, r.writer, log)
	r.buildEpisodes(b, entries, log, &counters)

	log.Info().Msg("Saving the sponsors found in episodes")
	counters.Sponsors = r.flushSponsors(show)
	log.Info().Msg("Saving the participants found in episodes")
	counters.Participants = r.flushParticipants(show)
	r.registries.Clear()

	return counters
}

func (r *Runner) fetchEntries(showCfg config.Show) ([]feed.Entry, error) {
	resp, err := r.feedClient.Get(showCfg.ShowRSS)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	parsed, err := r.parser.Parse(body)
	if err != nil {
		return nil, err
	}
	return parsed.Entries, nil
}

// buildEpisodes fans the entries out over the worker pool and drains every
// result. A failed episode is logged here, at drain time, and its siblings
// keep running.
func (r *Runner) buildEpisodes(b *builder.Builder, entries []feed.Entry, log zerolog.Logger, counters *Counters) {
	type result struct {
		title  string
		status builder.Status
		err    error
	}

	jobs := make(chan feed.Entry, len(entries))
	for _, entry := range entries {
		jobs <- entry
	}
	close(jobs)

	results := make(chan result, len(entries))

	var wg sync.WaitGroup
	for i := 0; i < r.conf.Settings.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range jobs {
				status, err := b.Build(entry)
				results <- result{title: entry.Title, status: status, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		switch res.status {
		case builder.StatusWritten:
			counters.Built++
		case builder.StatusSkippedExists, builder.StatusSkippedBonus:
			counters.Skipped++
		case builder.StatusFailed:
			counters.Failed++
			log.Error().Err(res.err).Str("title", res.title).Msg("Episode build failed")
		}
	}
}

func (r *Runner) flushSponsors(show string) int {
	dir := filepath.Join(r.conf.Settings.DataDir, "content", "sponsors")
	return flushRecords(r, dir, r.registries.Sponsors(), r.flusher.Sponsor, show, "sponsor")
}

func (r *Runner) flushParticipants(show string) int {
	dir := filepath.Join(r.conf.Settings.DataDir, "content", "people")
	return flushRecords(r, dir, r.registries.Participants(), r.flusher.Participant, show, "participant")
}

// flushRecords drives one registry's entries through the worker pool,
// counting the entries that persisted without error.
func flushRecords[T any](r *Runner, dir string, records map[string]T, save func(dir, filename string, record T) error, show, kind string) int {
	type job struct {
		filename string
		record   T
	}

	jobs := make(chan job, len(records))
	for filename, record := range records {
		jobs <- job{filename: filename, record: record}
	}
	close(jobs)

	errs := make(chan error, len(records))

	var wg sync.WaitGroup
	for i := 0; i < r.conf.Settings.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				errs <- save(dir, j.filename, j.record)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(errs)
	}()

	flushed := 0
	for err := range errs {
		if err != nil {
			r.log.Error().Err(err).Str("show", show).Msgf("Failed to flush %s record", kind)
			continue
		}
		flushed++
	}
	return flushed
}
