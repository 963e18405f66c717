package config

import "slices"

// Flags are the command-line overrides applied on top of config.yml and the
// SCRAPER_* environment.
type Flags struct {
	ConfigPath string
	DataDir    string
	LogLevel   string
	Workers    int
	Latest     bool
	Overwrite  bool
}

// Settings are the process-wide knobs read from the `settings:` block of
// config.yml, overridable through SCRAPER_* env vars and flags.
type Settings struct {
	DataDir           string   `mapstructure:"data_dir" validate:"required"`
	RetryCount        int      `mapstructure:"retry_count" validate:"required|int|min:1"`
	OverwriteExisting bool     `mapstructure:"overwrite_existing"`
	LatestOnly        bool     `mapstructure:"latest_only"`
	LatestOnlyEpLimit int      `mapstructure:"latest_only_ep_limit" validate:"int|min:1"`
	LogLevel          string   `mapstructure:"log_level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Workers           int      `mapstructure:"workers" validate:"required|int|min:1"`
	HostRoles         []string `mapstructure:"host_roles"`
	GuestRoles        []string `mapstructure:"guest_roles"`
}

// IsHostRole reports whether a feed person role counts as a host credit.
func (s *Settings) IsHostRole(role string) bool {
	return slices.Contains(s.HostRoles, role)
}

// IsGuestRole reports whether a feed person role counts as a guest credit.
func (s *Settings) IsGuestRole(role string) bool {
	return slices.Contains(s.GuestRoles, role)
}
