package builder

import (
	"strings"

	"show-scraper/pkg/domain"
)

// A couple of shows need a hand applied after the generic build. Patches are
// named, keyed by show slug and run just before persistence, never after.

// linkPatches rewrite the rendered links text.
var linkPatches = map[string]func(string) string{
	"the-launch": launchPhoneNumber,
}

// episodePatches adjust the assembled episode record.
var episodePatches = map[string]func(*domain.Episode){
	"this-week-in-bitcoin": defaultHost,
}

// launchPhoneNumber puts the call-in number at the top of The Launch's show
// notes. The feed opens the notes with a bare "****" placeholder when the
// number was left out.
func launchPhoneNumber(links string) string {
	const number = "**CALL 1-774-462-5667**"
	if strings.HasPrefix(links, "****") {
		return strings.ReplaceAll(links, "****", number)
	}
	return number + "\n\n" + links
}

// defaultHost credits Chris on This Week in Bitcoin episodes; its feed does
// not carry podcast:person tags.
func defaultHost(episode *domain.Episode) {
	if len(episode.Hosts) == 0 {
		episode.Hosts = []string{"chris"}
	}
}
