package builder

import (
	"fmt"
	"path/filepath"
	"strings"

	"show-scraper/pkg/content"
	"show-scraper/pkg/domain"
	"show-scraper/pkg/frontmatter"
)

// filenameSanitizer strips the characters that are unsafe in filenames
// across platforms.
var filenameSanitizer = strings.NewReplacer(
	`\`, "", "/", "", ":", "", "*", "", "?", "", `"`, "", "<", "", ">", "", "|", "",
)

// savePicks extracts the episode's pick recommendations and writes each one
// to its own data file. Pick files are always rewritten so the most recent
// mention's description wins.
func (b *Builder) savePicks(description string, episode domain.EpisodeValue) error {
	mentions, err := content.Picks(description)
	if err != nil {
		return fmt.Errorf("failed to extract picks: %w", err)
	}

	for _, m := range mentions {
		pick := domain.Pick{
			Title:       m.Title,
			URL:         m.URL,
			Description: m.Description,
			Shows: []domain.PickShow{{
				Show:    b.showCfg.Name,
				Episode: episode,
				Slug:    b.show,
			}},
		}

		data, err := frontmatter.Encode(pick)
		if err != nil {
			return err
		}

		filename := filenameSanitizer.Replace(strings.ReplaceAll(strings.ToLower(pick.Title), " ", "-")) + ".yaml"
		path := filepath.Join(b.settings.DataDir, "data", "picks", filename)
		if _, err := b.writer.Save(path, data, true); err != nil {
			return err
		}
	}
	return nil
}
