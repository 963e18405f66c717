package content

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PickMention is a "Pick:" recommendation anchor found in episode HTML.
type PickMention struct {
	Title       string
	URL         string
	Description *string
}

// Picks returns the pick mentions in an episode's HTML in document order. A
// pick is an anchor whose text starts with "Pick:"; the anchor text names the
// pick and any trailing text in the same list item describes it.
func Picks(rawHTML string) ([]PickMention, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}
	section := rebuild(strain(doc, map[atom.Atom]bool{
		atom.A:  true,
		atom.Li: true,
	}))

	var picks []PickMention
	for n := nextNode(section); n != nil; n = nextNode(n) {
		if !isElement(n, atom.A) {
			continue
		}
		text, ok := tagString(n)
		if !ok || !strings.HasPrefix(text, "Pick:") {
			continue
		}
		href, _ := attrValue(n, "href")
		picks = append(picks, PickMention{
			Title:       strings.TrimSpace(strings.ReplaceAll(text, "Pick:", "")),
			URL:         href,
			Description: pickDescription(n),
		})
	}
	return picks, nil
}

// pickDescription reads the text trailing the anchor inside its list item,
// with the em-dash separator removed. An anchor that is its parent's only
// content has no description.
func pickDescription(anchor *html.Node) *string {
	parent := anchor.Parent
	if parent == nil || (parent.FirstChild == anchor && parent.LastChild == anchor) {
		return nil
	}
	last := parent.LastChild
	if last == nil || last.Type != html.TextNode {
		return nil
	}
	desc := strings.TrimSpace(strings.ReplaceAll(last.Data, "—", ""))
	return &desc
}
