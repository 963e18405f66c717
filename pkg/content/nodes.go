package content

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// strain walks the tree under root and collects the top-most elements whose
// tag is in keep, in document order, without descending into a kept subtree.
// Everything outside the kept subtrees (wrapper tags, loose text) is left
// behind, which mirrors a filtered re-parse of the document.
func strain(root *html.Node, keep map[atom.Atom]bool) []*html.Node {
	var kept []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && keep[c.DataAtom] {
				kept = append(kept, c)
				continue
			}
			walk(c)
		}
	}
	walk(root)
	return kept
}

// rebuild detaches the given nodes from their parents and mounts them, in
// order, under a fresh container element.
func rebuild(nodes []*html.Node) *html.Node {
	container := &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
	for _, n := range nodes {
		detach(n)
		container.AppendChild(n)
	}
	return container
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// unwrap replaces an element with its own children.
func unwrap(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
		c = next
	}
	parent.RemoveChild(n)
}

// nextNode returns the node following n in document order, or nil at the end
// of the tree n belongs to.
func nextNode(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}

// prevNode returns the node preceding n in document order; for the first
// child that is its parent.
func prevNode(n *html.Node) *html.Node {
	if n.PrevSibling != nil {
		n = n.PrevSibling
		for n.LastChild != nil {
			n = n.LastChild
		}
		return n
	}
	return n.Parent
}

// nodesInOrder returns every node under root in document order, root excluded.
func nodesInOrder(root *html.Node) []*html.Node {
	var nodes []*html.Node
	for n := nextNode(root); n != nil; n = nextNode(n) {
		nodes = append(nodes, n)
	}
	return nodes
}

// descendantElements returns the element nodes under n in document order.
func descendantElements(n *html.Node) []*html.Node {
	var elems []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				elems = append(elems, c)
			}
			walk(c)
		}
	}
	walk(n)
	return elems
}

// tagString returns the element's text when it wraps exactly one string,
// following single-child chains through simple formatting wrappers. Elements
// with mixed content report ok=false.
func tagString(n *html.Node) (string, bool) {
	for {
		c := n.FirstChild
		if c == nil || c.NextSibling != nil {
			return "", false
		}
		if c.Type == html.TextNode {
			return c.Data, true
		}
		if c.Type != html.ElementNode {
			return "", false
		}
		n = c
	}
}

// fullText concatenates the text of every string under n, with no separators.
func fullText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(fullText(c))
	}
	return sb.String()
}

func isElement(n *html.Node, a atom.Atom) bool {
	return n.Type == html.ElementNode && n.DataAtom == a
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttrValue(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
