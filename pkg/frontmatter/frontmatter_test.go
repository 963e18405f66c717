package frontmatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"show-scraper/pkg/domain"
)

func TestEncodeProducesFencedDocument(t *testing.T) {
	record := domain.SponsorRecord{
		Shortname:   "linode.com-lup",
		Title:       "linode.com-lup",
		Description: "Linode Cloud Hosting",
		Link:        "https://linode.com/unplugged",
		Episode:     "442",
	}

	data, err := Encode(record)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "---\n"))
	assert.True(t, strings.HasSuffix(text, "---\n"))
	assert.Contains(t, text, "shortname: linode.com-lup")
	assert.Contains(t, text, "episode: 442")
	assert.NotContains(t, text, `episode: "442"`, "numeric episodes serialize as integers")
}

func TestDecodeRoundTrip(t *testing.T) {
	record := domain.SponsorRecord{
		Shortname: "acme.com-coder",
		Title:     "acme.com-coder",
		Link:      "https://acme.com",
		Episode:   "17",
	}
	data, err := Encode(record)
	require.NoError(t, err)

	var decoded domain.SponsorRecord
	require.NoError(t, Decode(data, &decoded))
	assert.Equal(t, record, decoded)
}

func TestDecodeMapKeepsUnknownFields(t *testing.T) {
	doc := "---\nusername: chris\ntitle: Chris\nfavorite_distro: NixOS\n---\n"

	meta, err := DecodeMap([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "chris", meta["username"])
	assert.Equal(t, "NixOS", meta["favorite_distro"])
}

func TestDecodeRejectsBareYAML(t *testing.T) {
	err := Decode([]byte("username: chris\n"), &map[string]any{})
	assert.ErrorIs(t, err, ErrNoFrontMatter)
}
