// ABOUTME: goquery-backed implementation of the ParsedHTML abstraction
// ABOUTME: Wraps selections so adapters only see select/text/attribute operations

package dom

import (
	"bytes"
	"io"
	"strings"

	"yomu-news-api/core/interfaces"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document implements interfaces.ParsedHTML
type Document struct {
	doc *goquery.Document
}

// Parse reads an HTML document
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc}, nil
}

// ParseBytes parses an HTML document held in memory
func ParseBytes(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data))
}

// ParseString parses an HTML document held in a string
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Select returns all elements matching the CSS selector
func (d *Document) Select(rule string) []interfaces.HTMLElement {
	return wrapAll(d.doc.Find(rule))
}

// SelectFirst returns the first element matching the CSS selector
func (d *Document) SelectFirst(rule string) (interfaces.HTMLElement, bool) {
	return first(d.doc.Find(rule))
}

// HTML returns the serialized document
func (d *Document) HTML() string {
	out, err := goquery.OuterHtml(d.doc.Selection)
	if err != nil {
		return ""
	}
	return out
}

// element wraps a single-node selection
type element struct {
	sel *goquery.Selection
}

func (e element) node() *html.Node {
	return e.sel.Get(0)
}

func (e element) IsText() bool {
	return e.node().Type == html.TextNode
}

func (e element) Tag() string {
	n := e.node()
	if n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(n.Data)
}

func (e element) Text() string {
	return e.sel.Text()
}

func (e element) RawText() string {
	var b strings.Builder
	writeRawText(&b, e.node())
	return b.String()
}

func (e element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e element) ChildNodes() []interfaces.HTMLElement {
	var out []interfaces.HTMLElement
	e.sel.Contents().Each(func(_ int, s *goquery.Selection) {
		switch s.Get(0).Type {
		case html.ElementNode, html.TextNode:
			out = append(out, element{sel: s})
		}
	})
	return out
}

func (e element) Select(rule string) []interfaces.HTMLElement {
	if e.IsText() {
		return nil
	}
	return wrapAll(e.sel.Find(rule))
}

func (e element) SelectFirst(rule string) (interfaces.HTMLElement, bool) {
	if e.IsText() {
		return nil, false
	}
	return first(e.sel.Find(rule))
}

func wrapAll(sel *goquery.Selection) []interfaces.HTMLElement {
	out := make([]interfaces.HTMLElement, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, element{sel: s})
	})
	return out
}

func first(sel *goquery.Selection) (interfaces.HTMLElement, bool) {
	if sel.Length() == 0 {
		return nil, false
	}
	return element{sel: sel.First()}, true
}

var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "blockquote": true,
	"li": true, "ul": true, "ol": true, "tr": true, "table": true, "figure": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// writeRawText flattens a subtree the way a browser's innerText would:
// <br> becomes a line break, block elements are separated by a blank line and
// ruby readings are left out
func writeRawText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript", "rt", "rp":
			return
		case "br":
			b.WriteString("\n")
			return
		}
	}

	block := n.Type == html.ElementNode && blockElements[strings.ToLower(n.Data)]
	if block {
		b.WriteString("\n\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeRawText(b, c)
	}
	if block {
		b.WriteString("\n\n")
	}
}
