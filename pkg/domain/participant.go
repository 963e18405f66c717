package domain

// ParticipantRecord is a host or guest profile accumulated across the
// episodes of a show, keyed by "<canonical username>.md". Later episodes
// simply overwrite earlier views of the same person.
type ParticipantRecord struct {
	Type     string  `yaml:"type"`
	Username string  `yaml:"username"`
	Title    string  `yaml:"title"`
	Homepage *string `yaml:"homepage"`
	Avatar   *string `yaml:"avatar"`
}
