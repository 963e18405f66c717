package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gookit/validate"
	"github.com/spf13/viper"
)

// Show is the configuration block for a single podcast.
type Show struct {
	ShowRSS      string   `mapstructure:"show_rss" validate:"required|fullUrl"`
	ShowURL      string   `mapstructure:"show_url" validate:"required|fullUrl"`
	JBURL        string   `mapstructure:"jb_url" validate:"required|fullUrl"`
	Acronym      string   `mapstructure:"acronym" validate:"required"`
	Name         string   `mapstructure:"name" validate:"required"`
	HostPlatform string   `mapstructure:"host_platform"`
	DontOverride []string `mapstructure:"dont_override"`
}

// Config is the full process configuration, read once at startup and
// immutable for the rest of the run.
type Config struct {
	Settings         Settings            `mapstructure:"settings"`
	Shows            map[string]Show     `mapstructure:"shows"`
	UsernamesMap     map[string][]string `mapstructure:"usernames_map"`
	DataDontOverride []string            `mapstructure:"data_dont_override"`
}

// Load reads the YAML config file, binds SCRAPER_* environment overrides,
// applies flag overrides and validates the result.
func Load(flags *Flags) (*Config, error) {
	var conf Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("settings.data_dir", "data")
	v.SetDefault("settings.retry_count", 3)
	v.SetDefault("settings.overwrite_existing", false)
	v.SetDefault("settings.latest_only", false)
	v.SetDefault("settings.latest_only_ep_limit", 1)
	v.SetDefault("settings.log_level", "info")
	v.SetDefault("settings.workers", 8)
	v.SetDefault("settings.host_roles", []string{"host", "co-host"})
	v.SetDefault("settings.guest_roles", []string{"guest"})

	v.BindEnv("settings.data_dir", "SCRAPER_DATA_DIR")
	v.BindEnv("settings.retry_count", "SCRAPER_RETRY_COUNT")
	v.BindEnv("settings.overwrite_existing", "SCRAPER_OVERWRITE_EXISTING")
	v.BindEnv("settings.latest_only", "SCRAPER_LATEST_ONLY")
	v.BindEnv("settings.latest_only_ep_limit", "SCRAPER_LATEST_ONLY_EP_LIMIT")
	v.BindEnv("settings.log_level", "SCRAPER_LOG_LEVEL")
	v.BindEnv("settings.workers", "SCRAPER_WORKERS")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	applyFlags(&conf, flags)

	if err := conf.validate(); err != nil {
		return nil, err
	}

	return &conf, nil
}

func applyFlags(conf *Config, flags *Flags) {
	if flags.DataDir != "" {
		conf.Settings.DataDir = flags.DataDir
	}
	if flags.LogLevel != "" {
		conf.Settings.LogLevel = flags.LogLevel
	}
	if flags.Workers > 0 {
		conf.Settings.Workers = flags.Workers
	}
	if flags.Latest {
		conf.Settings.LatestOnly = true
	}
	if flags.Overwrite {
		conf.Settings.OverwriteExisting = true
	}
}

func (c *Config) validate() error {
	if v := validate.Struct(c.Settings); !v.Validate() {
		return fmt.Errorf("settings: %s", v.Errors.One())
	}
	if len(c.Shows) == 0 {
		return errors.New("no shows configured")
	}
	for slug, show := range c.Shows {
		if v := validate.Struct(show); !v.Validate() {
			return fmt.Errorf("show %q: %s", slug, v.Errors.One())
		}
	}
	return nil
}

// SortedSlugs returns the show slugs in their stable processing order.
func (c *Config) SortedSlugs() []string {
	slugs := make([]string, 0, len(c.Shows))
	for slug := range c.Shows {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}
