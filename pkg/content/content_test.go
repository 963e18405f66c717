package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const episodeNotesHTML = `<p>Intro text about the episode.</p>` +
	`<p>Sponsored By:</p>` +
	`<ul><li><a href="https://linode.com/unplugged">Linode</a></li></ul>` +
	`<p><strong>Links:</strong></p>` +
	`<ul><li><a href="https://example.com/x">X</a></li></ul>`

func TestLinks_SplitsSponsorAndLinkSections(t *testing.T) {
	got, err := Links(episodeNotesHTML)
	require.NoError(t, err)

	assert.Contains(t, got, "[X](https://example.com/x)")
	assert.NotContains(t, got, "Linode")
	assert.NotContains(t, got, "Sponsored By")
	assert.NotContains(t, got, "Intro text")
}

func TestLinks_AffiliateMarkerSurvives(t *testing.T) {
	raw := `<p><strong>Affiliate LINKS:</strong></p>` +
		`<ul><li><a href="https://aff.example/1">Aff</a></li></ul>` +
		`<p><strong>Links:</strong></p>` +
		`<ul><li><a href="https://example.com/x">X</a></li></ul>`

	got, err := Links(raw)
	require.NoError(t, err)

	assert.Contains(t, got, "Affiliate Links:")
	assert.NotContains(t, got, "Affiliate LINKS:")
	assert.Contains(t, got, "[Aff](https://aff.example/1)")
	assert.Contains(t, got, "[X](https://example.com/x)")
}

func TestLinks_NoHeadingKeepsList(t *testing.T) {
	got, err := Links(`<ul><li><a href="https://example.com/a">A</a></li></ul>`)
	require.NoError(t, err)
	assert.Contains(t, got, "[A](https://example.com/a)")
}

func TestLinks_EscapesQuotedAnchorTitles(t *testing.T) {
	raw := `<p><strong>Links:</strong></p>` +
		`<ul><li><a href="https://example.com" title="He said &quot;hi&quot;">E</a></li></ul>`

	got, err := Links(raw)
	require.NoError(t, err)

	assert.Contains(t, got, "&#34;hi&#34;")
	assert.NotContains(t, got, `"hi"`)
}

func TestLinks_DropsLineBreakInsideBold(t *testing.T) {
	raw := `<p><strong>Links:</strong></p><strong>A<br/>B</strong>`

	got, err := Links(raw)
	require.NoError(t, err)
	assert.Contains(t, got, "**AB**")
}

func TestLinks_EmptyInput(t *testing.T) {
	got, err := Links("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDescription_LooseTextStripsEmoji(t *testing.T) {
	raw := "\U0001F680 This week on the show <em>we</em> dig in. <p>More notes</p>"

	got, err := Description(raw)
	require.NoError(t, err)
	assert.Equal(t, "This week on the show we dig in.", got)
}

func TestDescription_SingleAnchorParagraph(t *testing.T) {
	raw := `<p><a href="https://jblive.tv">Live stream Sundays</a></p><p>rest</p>`

	got, err := Description(raw)
	require.NoError(t, err)
	assert.Equal(t, "Live stream Sundays", got)
}

func TestDescription_MixedParagraphKeepsFirstNode(t *testing.T) {
	raw := `<p>Intro words <a href="https://a.example">a</a> middle <a href="https://b.example">b</a></p>`

	got, err := Description(raw)
	require.NoError(t, err)
	assert.Equal(t, "Intro words", got)
}

func TestDescription_NormalizesCompatibilityForms(t *testing.T) {
	// U+FB01 is the "fi" ligature; NFKC expands it.
	raw := "The ﬁnal word <p>tail</p>"

	got, err := Description(raw)
	require.NoError(t, err)
	assert.Equal(t, "The final word", got)
}

func TestDescription_EmptyInput(t *testing.T) {
	got, err := Description("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPicks_FindsAnchorsAndTrailingText(t *testing.T) {
	raw := `<ul>` +
		`<li><a href="https://pick.example/tool">Pick: Tool</a> — a handy thing</li>` +
		`<li><a href="https://other.example">Other</a></li>` +
		`<li><a href="https://pick.example/lone">Pick: Lone</a></li>` +
		`</ul>`

	picks, err := Picks(raw)
	require.NoError(t, err)
	require.Len(t, picks, 2)

	assert.Equal(t, "Tool", picks[0].Title)
	assert.Equal(t, "https://pick.example/tool", picks[0].URL)
	require.NotNil(t, picks[0].Description)
	assert.Equal(t, "a handy thing", *picks[0].Description)

	assert.Equal(t, "Lone", picks[1].Title)
	assert.Nil(t, picks[1].Description)
}

func TestPicks_NoMentions(t *testing.T) {
	picks, err := Picks(`<p>No picks this week.</p>`)
	require.NoError(t, err)
	assert.Empty(t, picks)
}

func TestLinks_Deterministic(t *testing.T) {
	first, err := Links(episodeNotesHTML)
	require.NoError(t, err)
	for range 3 {
		again, err := Links(episodeNotesHTML)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, strings.TrimSpace(first), first)
}
