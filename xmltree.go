package arnak

import (
	"strings"

	"github.com/beevik/etree"
)

const snippetLength = 120

// xmlEntities registers non-standard entities the API emits inside text
// fields. These are not part of the XML spec, so the parser would reject
// them otherwise.
var xmlEntities = map[string]string{
	"mdash": "—",
	"ndash": "–",
	"nbsp":  " ",
}

// document is a parsed XML response body. It is a read-only view; decoders
// walk it through node and never mutate it.
type document struct {
	doc *etree.Document
}

// parseDocument parses raw response bytes into a navigable tree.
func parseDocument(body []byte) (*document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Entity = xmlEntities
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, newParseError("malformed XML in response", snippet(body), err)
	}
	if doc.Root() == nil {
		return nil, newParseError("response has no root element", snippet(body), nil)
	}
	return &document{doc: doc}, nil
}

func (d *document) root() *node {
	return &node{el: d.doc.Root()}
}

// node wraps a single element of the parsed tree.
type node struct {
	el *etree.Element
}

func (n *node) tag() string {
	return n.el.Tag
}

// children returns the child elements with the given tag, in document order.
func (n *node) children(tag string) []*node {
	elements := n.el.SelectElements(tag)
	nodes := make([]*node, len(elements))
	for i, el := range elements {
		nodes[i] = &node{el: el}
	}
	return nodes
}

// allChildren returns every child element in document order.
func (n *node) allChildren() []*node {
	elements := n.el.ChildElements()
	nodes := make([]*node, len(elements))
	for i, el := range elements {
		nodes[i] = &node{el: el}
	}
	return nodes
}

// child returns the first child element with the given tag, or nil.
func (n *node) child(tag string) *node {
	el := n.el.SelectElement(tag)
	if el == nil {
		return nil
	}
	return &node{el: el}
}

// attr returns the value of the named attribute, and whether it was present.
func (n *node) attr(name string) (string, bool) {
	a := n.el.SelectAttr(name)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// text returns the element's text content with surrounding whitespace trimmed.
func (n *node) text() string {
	return strings.TrimSpace(n.el.Text())
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > snippetLength {
		s = s[:snippetLength]
	}
	return s
}
