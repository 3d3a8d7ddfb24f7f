// ABOUTME: Plain-text and markup renderings of content nodes
// ABOUTME: Flattening for TTS/search drops hiragana duplicated right after a ruby node

package domain

import (
	"html"
	"strings"
)

// duplicateReading reports whether nodes[i] is a text node repeating the reading
// of the ruby node right before it. Some sources print the reading again as plain text.
func duplicateReading(nodes []ContentNode, i int) bool {
	if i == 0 || !nodes[i].IsText() {
		return false
	}
	prev := nodes[i-1]
	return prev.IsRuby() && nodes[i].Content == prev.Reading
}

// FlattenText concatenates text content and ruby kanji. The nodes are not modified.
func FlattenText(nodes []ContentNode) string {
	var b strings.Builder
	for i, n := range nodes {
		switch {
		case n.IsRuby():
			b.WriteString(n.Kanji)
		case duplicateReading(nodes, i):
		default:
			b.WriteString(n.Content)
		}
	}
	return b.String()
}

// FlattenReading renders the kana reading: ruby nodes contribute their reading instead of kanji
func FlattenReading(nodes []ContentNode) string {
	var b strings.Builder
	for i, n := range nodes {
		switch {
		case n.IsRuby():
			b.WriteString(n.Reading)
		case duplicateReading(nodes, i):
		default:
			b.WriteString(n.Content)
		}
	}
	return b.String()
}

// FlattenParagraphs joins paragraph texts with newlines
func FlattenParagraphs(paragraphs []Paragraph) string {
	parts := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		parts = append(parts, FlattenText(p.Content))
	}
	return strings.Join(parts, "\n")
}

// RenderAnnotated renders ruby inline as 漢字(かんじ), for terminals without ruby support
func RenderAnnotated(nodes []ContentNode) string {
	var b strings.Builder
	for i, n := range nodes {
		switch {
		case n.IsRuby():
			b.WriteString(n.Kanji)
			b.WriteString("(")
			b.WriteString(n.Reading)
			b.WriteString(")")
		case duplicateReading(nodes, i):
		default:
			b.WriteString(n.Content)
		}
	}
	return b.String()
}

// RenderHTML renders nodes as escaped HTML with <ruby> markup.
// Every node is rendered; duplicate readings are a flattening concern only.
func RenderHTML(nodes []ContentNode) string {
	var b strings.Builder
	for _, n := range nodes {
		if n.IsRuby() {
			b.WriteString("<ruby>")
			b.WriteString(html.EscapeString(n.Kanji))
			b.WriteString("<rt>")
			b.WriteString(html.EscapeString(n.Reading))
			b.WriteString("</rt></ruby>")
			continue
		}
		b.WriteString(html.EscapeString(n.Content))
	}
	return b.String()
}
