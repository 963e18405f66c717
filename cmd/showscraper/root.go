package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"show-scraper/pkg/config"
	"show-scraper/pkg/run"
)

func newRootCommand() *cobra.Command {
	flags := &config.Flags{}

	rootCmd := &cobra.Command{
		Use:           "showscraper",
		Short:         "Scrape podcast feeds into episode, sponsor and people content files",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load(flags)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return runScrape(conf)
		},
	}

	rootCmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "config.yml", "Configuration file path")
	rootCmd.Flags().StringVar(&flags.DataDir, "data-dir", "", "Output data directory (overrides config)")
	rootCmd.Flags().StringVar(&flags.LogLevel, "log-level", "", "Log level (overrides config)")
	rootCmd.Flags().IntVar(&flags.Workers, "workers", 0, "Episode workers per show (overrides config)")
	rootCmd.Flags().BoolVar(&flags.Latest, "latest", false, "Only scrape the most recent episodes")
	rootCmd.Flags().BoolVar(&flags.Overwrite, "overwrite", false, "Overwrite existing output files")

	return rootCmd
}

// runScrape executes the full run. Individual episode and show failures are
// contained and logged inside the coordinator; a completed run is always a
// success.
func runScrape(conf *config.Config) error {
	log, err := newLogger(conf.Settings.LogLevel)
	if err != nil {
		return err
	}

	log.Info().Msg("Scraper started")
	start := time.Now()

	summary := run.New(conf, log).Run()

	fmt.Println(run.RenderSummary(summary))
	log.Info().Str("duration", time.Since(start).Round(time.Millisecond).String()).Msg("All done")
	return nil
}

func newLogger(level string) (zerolog.Logger, error) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(parsed).With().Timestamp().Logger(), nil
}
