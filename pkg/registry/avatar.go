package registry

import (
	"io"
	"path/filepath"
	"strings"

	"show-scraper/pkg/writer"
)

// avatarPath builds the avatar location relative to the static folder, e.g.
// "images/people/chris.jpg". The extension is whatever trails the last dot
// of the image URL.
func avatarPath(username, imgURL string) string {
	parts := strings.Split(imgURL, ".")
	ext := parts[len(parts)-1]
	return "images/people/" + username + "." + ext
}

// saveAvatar downloads a participant's avatar image unless it is already on
// disk. The existence check runs before the request, no point spending
// bandwidth on an image we will not keep.
func (r *Registries) saveAvatar(imgURL, username, relativePath string) {
	path := filepath.Join(r.settings.DataDir, "static", relativePath)

	if writer.Exists(path) {
		r.log.Warn().Str("path", path).Msg("Skipping saving avatar, it already exists")
		return
	}

	resp, err := r.client.Get(imgURL)
	if err != nil {
		r.log.Error().Err(err).
			Str("img_url", imgURL).
			Str("username", username).
			Msg("Failed to save avatar")
		return
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		r.log.Error().Err(err).
			Str("img_url", imgURL).
			Str("username", username).
			Msg("Failed to read avatar response")
		return
	}

	if _, err := r.writer.Save(path, content, false); err != nil {
		r.log.Error().Err(err).
			Str("img_url", imgURL).
			Str("username", username).
			Msg("Failed to save avatar")
	}
}
