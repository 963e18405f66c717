// Package registry holds the cross-episode state a show's workers share:
// the sponsors and participants discovered while episode pages are scraped.
// Both maps live under one mutex, which also serializes the end-of-show
// flush (see pkg/writer), so no two workers interleave a check-then-act
// write to the same destination file.
package registry

import (
	"sync"

	"github.com/rs/zerolog"

	"show-scraper/pkg/config"
	"show-scraper/pkg/domain"
	"show-scraper/pkg/httpclient"
	"show-scraper/pkg/scrape"
	"show-scraper/pkg/writer"
)

// Registries accumulates sponsor and participant records while a show's
// episodes are built, then is flushed and cleared before the next show.
type Registries struct {
	mu           sync.Mutex
	sponsors     map[string]domain.SponsorRecord
	participants map[string]domain.ParticipantRecord

	settings *config.Settings
	conf     *config.Config
	client   *httpclient.HTTPClient
	writer   *writer.Writer
	log      zerolog.Logger
}

func New(conf *config.Config, client *httpclient.HTTPClient, w *writer.Writer, log zerolog.Logger) *Registries {
	return &Registries{
		sponsors:     make(map[string]domain.SponsorRecord),
		participants: make(map[string]domain.ParticipantRecord),
		settings:     &conf.Settings,
		conf:         conf,
		client:       client,
		writer:       w,
		log:          log,
	}
}

// Locker exposes the registry mutex so the flush path can run its
// check-then-act sequence under the same lock.
func (r *Registries) Locker() sync.Locker {
	return &r.mu
}

// MergeSponsors folds a page's sponsor mentions into the registry. Per key
// the mention from the highest-numbered episode wins; an equal or lower
// episode number leaves the registered record in place.
func (r *Registries) MergeSponsors(mentions []scrape.Mention) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range mentions {
		if current, ok := r.sponsors[m.Key]; ok && m.Record.Episode.Ordinal() <= current.Episode.Ordinal() {
			continue
		}
		r.sponsors[m.Key] = m.Record
	}
}

// RegisterParticipants records the hosts and guests credited on one episode,
// keyed by canonical username. A person credited on several episodes of a
// show keeps the most recently processed episode's view. Avatars are
// downloaded on first sight; avatar failures are logged and never fatal.
func (r *Registries) RegisterParticipants(persons []domain.Person) {
	for _, person := range persons {
		var role string
		switch {
		case r.settings.IsHostRole(person.Role):
			role = "host"
		case r.settings.IsGuestRole(person.Role):
			role = "guest"
		default:
			continue
		}

		username := r.conf.CanonicalUsername(person.Name)
		record := domain.ParticipantRecord{
			Type:     role,
			Username: username,
			Title:    person.Name,
		}
		if person.Href != "" {
			href := person.Href
			record.Homepage = &href
		}
		if person.Img != "" {
			relative := avatarPath(username, person.Img)
			r.saveAvatar(person.Img, username, relative)
			avatar := "/" + relative
			record.Avatar = &avatar
		}

		r.mu.Lock()
		r.participants[username+".md"] = record
		r.mu.Unlock()
	}
}

// Sponsors returns a copy of the sponsor registry.
func (r *Registries) Sponsors() map[string]domain.SponsorRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make(map[string]domain.SponsorRecord, len(r.sponsors))
	for key, record := range r.sponsors {
		snapshot[key] = record
	}
	return snapshot
}

// Participants returns a copy of the participant registry.
func (r *Registries) Participants() map[string]domain.ParticipantRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make(map[string]domain.ParticipantRecord, len(r.participants))
	for key, record := range r.participants {
		snapshot[key] = record
	}
	return snapshot
}

// Clear empties both registries, called between shows.
func (r *Registries) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sponsors = make(map[string]domain.SponsorRecord)
	r.participants = make(map[string]domain.ParticipantRecord)
}
