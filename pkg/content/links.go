package content

import (
	"bytes"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	sponsorHeading  = "Sponsored By:"
	affiliateMarker = "Affiliate LINKS:"
)

var (
	linksHeadingRe  = regexp.MustCompile(`(?i)links|show`)
	trailingSpaceRe = regexp.MustCompile(` {2,}\n`)
)

// Links extracts the show-links section from raw episode HTML and renders it
// as Markdown. Episode notes put the links list at the bottom, under a bold
// "Links:" or "Show Notes:" heading; everything above that heading, and any
// sponsor block, is cut. An "Affiliate LINKS:" marker survives the cut so
// affiliate links stay attached to the regular ones.
func Links(rawHTML string) (string, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", err
	}

	section := rebuild(strain(doc, map[atom.Atom]bool{
		atom.Strong: true,
		atom.Ul:     true,
		atom.P:      true,
	}))
	removeSponsorBlock(section)
	cutAboveLinksHeading(section)

	section = rebuild(strain(section, map[atom.Atom]bool{
		atom.Strong: true,
		atom.Li:     true,
	}))
	fixupStrongs(section)
	escapeLinkTitles(section)

	var buf bytes.Buffer
	for c := section.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	markdown, err := md.NewConverter("", true, nil).ConvertString(buf.String())
	if err != nil {
		return "", err
	}
	markdown = trailingSpaceRe.ReplaceAllString(markdown, "\n")
	return strings.TrimSpace(markdown), nil
}

// removeSponsorBlock drops the paragraph labelled "Sponsored By:" together
// with the list that follows it.
func removeSponsorBlock(root *html.Node) {
	var heading *html.Node
	for n := nextNode(root); n != nil; n = nextNode(n) {
		if !isElement(n, atom.P) {
			continue
		}
		if s, ok := tagString(n); ok && s == sponsorHeading {
			heading = n
			break
		}
	}
	if heading == nil {
		return
	}
	var list *html.Node
	for n := nextNode(heading); n != nil; n = nextNode(n) {
		if isElement(n, atom.Ul) {
			list = n
			break
		}
	}
	detach(heading)
	if list != nil {
		detach(list)
	}
}

// cutAboveLinksHeading finds the first simple strong or p whose text mentions
// links or show notes and removes it along with everything that precedes it
// in document order. Nodes whose entire text is the affiliate marker are
// spared, though a spared node still falls with an unspared ancestor.
func cutAboveLinksHeading(root *html.Node) {
	nodes := nodesInOrder(root)
	heading := -1
	for i, n := range nodes {
		if !isElement(n, atom.Strong) && !isElement(n, atom.P) {
			continue
		}
		if s, ok := tagString(n); ok && linksHeadingRe.MatchString(s) {
			heading = i
			break
		}
	}
	if heading < 0 {
		return
	}
	for i := heading; i >= 0; i-- {
		if fullText(nodes[i]) == affiliateMarker {
			continue
		}
		detach(nodes[i])
	}
}

// fixupStrongs prepares bold runs for Markdown conversion: a line break is
// forced before any strong that directly follows text, the affiliate marker
// is title-cased, and a stray br inside a strong is dropped so the bold
// delimiters stay on one line.
func fixupStrongs(root *html.Node) {
	var strongs []*html.Node
	for n := nextNode(root); n != nil; n = nextNode(n) {
		if isElement(n, atom.Strong) {
			strongs = append(strongs, n)
		}
	}
	titleCaser := cases.Title(language.English)
	for _, strong := range strongs {
		if prev := prevNode(strong); prev != nil && prev.Type == html.TextNode {
			strong.Parent.InsertBefore(&html.Node{
				Type:     html.ElementNode,
				DataAtom: atom.Br,
				Data:     "br",
			}, strong)
		}
		if fullText(strong) == affiliateMarker {
			replaceTagString(strong, titleCaser.String(affiliateMarker))
		}
		for _, d := range descendantElements(strong) {
			if isElement(d, atom.Br) {
				detach(d)
				break
			}
		}
	}
}

// replaceTagString swaps the single string wrapped by n, if there is one.
func replaceTagString(n *html.Node, s string) {
	for {
		c := n.FirstChild
		if c == nil || c.NextSibling != nil {
			return
		}
		if c.Type == html.TextNode {
			c.Data = s
			return
		}
		if c.Type != html.ElementNode {
			return
		}
		n = c
	}
}

// escapeLinkTitles HTML-escapes anchor title attributes so quotes inside
// them cannot terminate the Markdown link title early.
func escapeLinkTitles(root *html.Node) {
	for n := nextNode(root); n != nil; n = nextNode(n) {
		if !isElement(n, atom.A) {
			continue
		}
		if title, ok := attrValue(n, "title"); ok {
			setAttrValue(n, "title", html.EscapeString(title))
		}
	}
}
