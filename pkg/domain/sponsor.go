package domain

// SponsorRecord is one sponsor destination collected while scraping episode
// pages. Records are keyed by a normalized destination identifier such as
// "linode.com-lup.json"; across episodes only the mention with the highest
// episode number survives.
type SponsorRecord struct {
	Shortname   string       `yaml:"shortname"`
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
	Link        string       `yaml:"link"`
	Episode     EpisodeValue `yaml:"episode"`
}
