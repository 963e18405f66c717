package domain

// Pick is a recommendation item extracted from an episode description.
type Pick struct {
	Title       string     `yaml:"title"`
	URL         string     `yaml:"url"`
	Description *string    `yaml:"description"`
	Shows       []PickShow `yaml:"shows"`
}

// PickShow records which episode of which show mentioned a pick.
type PickShow struct {
	Show    string       `yaml:"show"`
	Episode EpisodeValue `yaml:"episode"`
	Slug    string       `yaml:"slug"`
}
