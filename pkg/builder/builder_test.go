package builder

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"show-scraper/pkg/config"
	"show-scraper/pkg/domain"
	"show-scraper/pkg/feed"
	"show-scraper/pkg/frontmatter"
	"show-scraper/pkg/httpclient"
	"show-scraper/pkg/registry"
	"show-scraper/pkg/writer"
)

func TestPlainTitle(t *testing.T) {
	cases := map[string]string{
		"42: My Episode | Extra":         "My Episode",
		"Episode 7: Deep Dive":           "Deep Dive",
		"Just a Title":                   "Just a Title",
		"314: Trailing Spaces  ":         "Trailing Spaces",
		"100: Pipes | Dreams | And More": "Pipes",
	}
	for title, want := range cases {
		assert.Equal(t, want, plainTitle(title), "title %q", title)
	}
}

func TestEpisodeNumberFromTitle(t *testing.T) {
	entry := feed.Entry{Title: "42: My Episode | Extra", Link: "https://example.com/42"}

	number := episodeNumber(entry)
	assert.Equal(t, domain.EpisodeValue("42"), number.Value)
	assert.Equal(t, "0042", number.Key)
}

func TestEpisodeNumberPrefersFeedDeclared(t *testing.T) {
	entry := feed.Entry{
		Title:   "999: Wrong Number",
		Link:    "https://example.com/7",
		Episode: &feed.EpisodeTag{Value: "7"},
	}

	number := episodeNumber(entry)
	assert.Equal(t, domain.EpisodeValue("7"), number.Value)
	assert.Equal(t, "0007", number.Key)
}

func TestEpisodeNumberURLFallbackSkipsPadding(t *testing.T) {
	entry := feed.Entry{
		Title: "Pocket Office 3: Desk Setups",
		Link:  "https://example.com/show/pocket-office-3",
	}

	number := episodeNumber(entry)
	assert.Equal(t, domain.EpisodeValue("pocket-office-3"), number.Value)
	assert.Equal(t, "pocket-office-3", number.Key, "URL-derived keys are not zero-padded")
}

func TestLaunchPhoneNumberPatch(t *testing.T) {
	assert.Equal(t,
		"**CALL 1-774-462-5667** stay tuned",
		launchPhoneNumber("**** stay tuned"))
	assert.Equal(t,
		"**CALL 1-774-462-5667**\n\nregular notes",
		launchPhoneNumber("regular notes"))
}

func TestDefaultHostPatch(t *testing.T) {
	episode := &domain.Episode{}
	defaultHost(episode)
	assert.Equal(t, []string{"chris"}, episode.Hosts)

	episode = &domain.Episode{Hosts: []string{"jane"}}
	defaultHost(episode)
	assert.Equal(t, []string{"jane"}, episode.Hosts)
}

func testConfig(dataDir string) *config.Config {
	return &config.Config{
		Settings: config.Settings{
			DataDir:    dataDir,
			RetryCount: 1,
			LogLevel:   "info",
			Workers:    1,
			HostRoles:  []string{"host", "co-host"},
			GuestRoles: []string{"guest"},
		},
		UsernamesMap: map[string][]string{
			"chris": {"Chris Fisher"},
			"wes":   {"Wes Payne"},
		},
	}
}

func testBuilder(t *testing.T, conf *config.Config, show string, showCfg config.Show) (*Builder, *registry.Registries) {
	t.Helper()
	log := zerolog.Nop()
	w := writer.New(log)
	registries := registry.New(conf, httpclient.NewClient(httpclient.HTMLProfile), w, log)
	return New(show, showCfg, conf, registries, w, log), registries
}

const episodePageHTML = `<html><body>
<div class="episode-sponsors">
	<a href="https://www.linode.com/unplugged">Linode Cloud Hosting</a>
</div>
<ul class="tags">
	<li><a class="tag" href="/tags/linux">Linux</a></li>
</ul>
</body></html>`

const episodeNotesHTML = `<p>A fine episode about pipelines.</p>` +
	`<p>Sponsored By:</p>` +
	`<ul><li><a href="https://linode.com/unplugged">Linode</a></li></ul>` +
	`<p><strong>Links:</strong></p>` +
	`<ul><li><a href="https://example.com/x">X</a></li></ul>`

func testEntry(link string) feed.Entry {
	published := time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)
	return feed.Entry{
		Title:     "42: My Episode | Extra",
		Link:      link,
		GUID:      "guid-42",
		Published: &published,
		Summary:   episodeNotesHTML,
		Enclosure: feed.Enclosure{URL: "https://cdn.example.com/42.mp3", Length: 1234567, Type: "audio/mpeg"},
		Duration:  "1:02:03",
		Persons: []domain.Person{
			{Name: "Chris Fisher", Role: "host"},
			{Name: "Wes Payne", Role: "host"},
			{Name: "Jane Doe", Role: "guest"},
		},
	}
}

func TestBuildWritesEpisodeFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(episodePageHTML))
	}))
	defer server.Close()

	dataDir := t.TempDir()
	conf := testConfig(dataDir)
	showCfg := config.Show{
		Name:    "LINUX Unplugged",
		Acronym: "lup",
		JBURL:   "https://www.jupiterbroadcasting.com/show/linux-unplugged",
	}
	b, registries := testBuilder(t, conf, "linux-unplugged", showCfg)

	status, err := b.Build(testEntry(server.URL + "/42"))
	require.NoError(t, err)
	assert.Equal(t, StatusWritten, status)

	path := filepath.Join(dataDir, "content", "show", "linux-unplugged", "0042.md")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var episode domain.Episode
	require.NoError(t, frontmatter.Decode(data, &episode))
	assert.Equal(t, "My Episode", episode.Title)
	assert.Equal(t, domain.EpisodeValue("42"), episode.Episode)
	assert.Equal(t, "0042", episode.EpisodePadded)
	assert.Equal(t, "A fine episode about pipelines.", episode.Description)
	assert.Equal(t, []string{"chris", "wes"}, episode.Hosts)
	assert.Equal(t, []string{"jane-doe"}, episode.Guests)
	assert.Equal(t, []string{"linode.com-lup"}, episode.Sponsors)
	assert.Equal(t, []string{"linux"}, episode.Tags)
	assert.Equal(t, "https://www.jupiterbroadcasting.com/show/linux-unplugged/42", episode.JBURL)
	assert.Contains(t, episode.Links, "[X](https://example.com/x)")
	assert.NotContains(t, episode.Links, "Linode")

	sponsors := registries.Sponsors()
	require.Contains(t, sponsors, "linode.com-lup.json")
	assert.Equal(t, domain.EpisodeValue("42"), sponsors["linode.com-lup.json"].Episode)

	participants := registries.Participants()
	assert.Contains(t, participants, "chris.md")
	assert.Contains(t, participants, "jane-doe.md")
}

func TestBuildSkipsExistingFile(t *testing.T) {
	dataDir := t.TempDir()
	conf := testConfig(dataDir)
	b, _ := testBuilder(t, conf, "linux-unplugged", config.Show{Name: "LINUX Unplugged", Acronym: "lup"})

	path := filepath.Join(dataDir, "content", "show", "linux-unplugged", "0042.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("existing"), 0o644))

	status, err := b.Build(testEntry("https://example.com/42"))
	require.NoError(t, err)
	assert.Equal(t, StatusSkippedExists, status)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "existing", string(data))
}

func TestBuildSkipsBonusEpisodes(t *testing.T) {
	dataDir := t.TempDir()
	conf := testConfig(dataDir)
	b, _ := testBuilder(t, conf, "linux-unplugged", config.Show{Name: "LINUX Unplugged", Acronym: "lup"})

	entry := testEntry("https://example.com/42")
	entry.EpisodeType = "bonus"

	status, err := b.Build(entry)
	require.NoError(t, err)
	assert.Equal(t, StatusSkippedBonus, status)

	path := filepath.Join(dataDir, "content", "show", "linux-unplugged", "0042.md")
	assert.NoFileExists(t, path)
}

func TestBuildFailsWhenEpisodePageUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	dataDir := t.TempDir()
	conf := testConfig(dataDir)
	b, _ := testBuilder(t, conf, "linux-unplugged", config.Show{Name: "LINUX Unplugged", Acronym: "lup"})

	status, err := b.Build(testEntry(server.URL + "/42"))
	require.Error(t, err)
	assert.Equal(t, StatusFailed, status)

	path := filepath.Join(dataDir, "content", "show", "linux-unplugged", "0042.md")
	assert.NoFileExists(t, path)
}

func TestBuildTreatsSchemelessLinkAsNoSponsors(t *testing.T) {
	dataDir := t.TempDir()
	conf := testConfig(dataDir)
	b, _ := testBuilder(t, conf, "linux-unplugged", config.Show{Name: "LINUX Unplugged", Acronym: "lup"})

	entry := testEntry("relative/path/42")
	entry.Title = "42: My Episode"

	status, err := b.Build(entry)
	require.NoError(t, err)
	assert.Equal(t, StatusWritten, status)

	data, err := os.ReadFile(filepath.Join(dataDir, "content", "show", "linux-unplugged", "0042.md"))
	require.NoError(t, err)
	var episode domain.Episode
	require.NoError(t, frontmatter.Decode(data, &episode))
	assert.Empty(t, episode.Sponsors)
}

func TestBuildPrefersFeedKeywordsOverScrapedTags(t *testing.T) {
	pageRequests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		pageRequests++
		w.Write([]byte(episodePageHTML))
	}))
	defer server.Close()

	dataDir := t.TempDir()
	conf := testConfig(dataDir)
	b, _ := testBuilder(t, conf, "linux-unplugged", config.Show{Name: "LINUX Unplugged", Acronym: "lup"})

	entry := testEntry(server.URL + "/42")
	entry.Keywords = []string{"zfs", "linux", "nixos"}

	status, err := b.Build(entry)
	require.NoError(t, err)
	assert.Equal(t, StatusWritten, status)
	assert.Equal(t, 1, pageRequests, "tags must come from the feed, only sponsors hit the page")

	data, err := os.ReadFile(filepath.Join(dataDir, "content", "show", "linux-unplugged", "0042.md"))
	require.NoError(t, err)
	var episode domain.Episode
	require.NoError(t, frontmatter.Decode(data, &episode))
	assert.Equal(t, []string{"linux", "nixos", "zfs"}, episode.Tags, "feed keywords are sorted")
}

func TestBuildWritesPickFiles(t *testing.T) {
	dataDir := t.TempDir()
	conf := testConfig(dataDir)
	b, _ := testBuilder(t, conf, "coder-radio", config.Show{Name: "Coder Radio", Acronym: "coder"})

	entry := testEntry("relative/42")
	entry.Summary = `<ul><li><a href="https://example.com/tool">Pick: Fancy Tool</a> — a very fancy tool</li></ul>` +
		episodeNotesHTML

	status, err := b.Build(entry)
	require.NoError(t, err)
	assert.Equal(t, StatusWritten, status)

	data, err := os.ReadFile(filepath.Join(dataDir, "data", "picks", "fancy-tool.yaml"))
	require.NoError(t, err)
	var pick domain.Pick
	require.NoError(t, frontmatter.Decode(data, &pick))
	assert.Equal(t, "Fancy Tool", pick.Title)
	assert.Equal(t, "https://example.com/tool", pick.URL)
	require.Len(t, pick.Shows, 1)
	assert.Equal(t, "coder-radio", pick.Shows[0].Slug)
	assert.Equal(t, domain.EpisodeValue("42"), pick.Shows[0].Episode)
}

func TestBuildHonorsDontOverrideWithOverwriteOn(t *testing.T) {
	dataDir := t.TempDir()
	conf := testConfig(dataDir)
	conf.Settings.OverwriteExisting = true
	showCfg := config.Show{Name: "LINUX Unplugged", Acronym: "lup", DontOverride: []string{"0042.md"}}
	b, _ := testBuilder(t, conf, "linux-unplugged", showCfg)

	path := filepath.Join(dataDir, "content", "show", "linux-unplugged", "0042.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("hand edited"), 0o644))

	status, err := b.Build(testEntry("relative/42"))
	require.NoError(t, err)
	assert.Equal(t, StatusSkippedExists, status)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hand edited", string(data))
}
