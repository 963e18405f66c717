package content

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"
)

const emojiClass = `\x{1F600}-\x{1F64F}` + // emoticons
	`\x{1F300}-\x{1F5FF}` + // symbols and pictographs
	`\x{1F680}-\x{1F6FF}` + // transport and map symbols
	`\x{1F1E0}-\x{1F1FF}` + // flags
	`\x{1FA70}-\x{1FAFF}` +
	`\x{2702}-\x{27B0}` +
	`\x{24C2}-\x{1F251}`

var emojiEdgeRe = regexp.MustCompile(`^[` + emojiClass + `]+\s*|\s*[` + emojiClass + `]+$`)

// Description pulls the prose summary out of raw episode HTML. Episode notes
// open with either a run of loose text or a single leading paragraph before
// the structural blocks start; both shapes reduce to one plain line.
func Description(rawHTML string) (string, error) {
	doc, err := html.Parse(strings.NewReader("<div>" + strings.TrimSpace(rawHTML) + "</div>"))
	if err != nil {
		return "", err
	}
	var wrapper *html.Node
	for n := nextNode(doc); n != nil; n = nextNode(n) {
		if isElement(n, atom.Div) {
			wrapper = n
			break
		}
	}
	if wrapper == nil {
		return "", nil
	}

	// Line-break and emphasis tags carry no structure here, only flow.
	var inline []*html.Node
	for n := nextNode(wrapper); n != nil; n = nextNode(n) {
		if isElement(n, atom.Br) || isElement(n, atom.Em) {
			inline = append(inline, n)
		}
	}
	for _, n := range inline {
		unwrap(n)
	}

	first := wrapper.FirstChild
	if first == nil {
		return "", nil
	}
	if first.Type == html.ElementNode {
		return leadingElementText(first), nil
	}
	return leadingLooseText(first), nil
}

// leadingElementText handles notes that open with a wrapper element. A
// paragraph holding nothing but a single anchor reads whole; mixed content
// contributes only its first node.
func leadingElementText(first *html.Node) string {
	elems := descendantElements(first)
	if len(elems) == 1 && isElement(elems[0], atom.A) {
		return strings.TrimSpace(fullText(first))
	}
	if first.FirstChild == nil {
		return ""
	}
	return strings.TrimSpace(fullText(first.FirstChild))
}

// leadingLooseText accumulates text nodes from first up to the next element,
// then normalizes to NFKC and trims decorative emoji off both ends.
func leadingLooseText(first *html.Node) string {
	var parts []string
	for n := first; n != nil && n.Type != html.ElementNode; n = nextNode(n) {
		if n.Type != html.TextNode || n.Data == " " {
			continue
		}
		parts = append(parts, strings.TrimSpace(n.Data))
	}
	joined := norm.NFKC.String(strings.Join(parts, " "))
	return emojiEdgeRe.ReplaceAllString(joined, "")
}
