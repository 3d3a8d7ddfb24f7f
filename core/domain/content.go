// ABOUTME: Canonical content model for furigana-annotated article text
// ABOUTME: Text and ruby nodes, paragraphs, parsed articles and their JSON wire shapes

package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// NodeKind discriminates the ContentNode variants
type NodeKind string

const (
	// KindText is a run of plain text
	KindText NodeKind = "text"

	// KindRuby is kanji annotated with its phonetic reading
	KindRuby NodeKind = "ruby"

	// KindParagraph tags a Paragraph on the wire
	KindParagraph NodeKind = "paragraph"
)

// ContentNode is either a text node or a ruby node.
// Only the fields of the active Kind are meaningful.
type ContentNode struct {
	Kind    NodeKind `json:"kind" enum:"text,ruby"`
	Content string   `json:"content,omitempty"` // text nodes
	Kanji   string   `json:"kanji,omitempty"`   // ruby nodes
	Reading string   `json:"reading,omitempty"` // ruby nodes
}

// NewText creates a text node
func NewText(content string) ContentNode {
	return ContentNode{Kind: KindText, Content: content}
}

// NewRuby creates a ruby node. A ruby node needs both its kanji and its reading;
// when either is missing ok is false and the fragment must not be emitted.
func NewRuby(kanji, reading string) (ContentNode, bool) {
	kanji = strings.TrimSpace(kanji)
	reading = strings.TrimSpace(reading)
	if kanji == "" || reading == "" {
		return ContentNode{}, false
	}
	return ContentNode{Kind: KindRuby, Kanji: kanji, Reading: reading}, true
}

// IsText reports whether the node is a text node
func (n ContentNode) IsText() bool { return n.Kind == KindText }

// IsRuby reports whether the node is a ruby node
func (n ContentNode) IsRuby() bool { return n.Kind == KindRuby }

// wireNode is the JSON shape shared by both node kinds
type wireNode struct {
	Kind    NodeKind `json:"kind"`
	Content *string  `json:"content,omitempty"`
	Kanji   *string  `json:"kanji,omitempty"`
	Reading *string  `json:"reading,omitempty"`
}

// MarshalJSON emits {"kind":"text","content":..} or {"kind":"ruby","kanji":..,"reading":..}
func (n ContentNode) MarshalJSON() ([]byte, error) {
	switch n.Kind {
	case KindText:
		content := n.Content
		return json.Marshal(wireNode{Kind: KindText, Content: &content})
	case KindRuby:
		kanji, reading := n.Kanji, n.Reading
		return json.Marshal(wireNode{Kind: KindRuby, Kanji: &kanji, Reading: &reading})
	default:
		return nil, fmt.Errorf("unknown content node kind %q", n.Kind)
	}
}

// UnmarshalJSON decodes either node shape; unknown kinds and degenerate ruby nodes are rejected
func (n *ContentNode) UnmarshalJSON(data []byte) error {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Kind {
	case KindText:
		var content string
		if w.Content != nil {
			content = *w.Content
		}
		*n = NewText(content)
	case KindRuby:
		if w.Kanji == nil || w.Reading == nil {
			return fmt.Errorf("ruby node requires kanji and reading")
		}
		node, ok := NewRuby(*w.Kanji, *w.Reading)
		if !ok {
			return fmt.Errorf("ruby node with empty kanji or reading")
		}
		*n = node
	default:
		return fmt.Errorf("unknown content node kind %q", w.Kind)
	}
	return nil
}

// Paragraph is an ordered run of content nodes in reading order
type Paragraph struct {
	Content []ContentNode `json:"content"`
}

type wireParagraph struct {
	Kind    NodeKind      `json:"kind"`
	Content []ContentNode `json:"content"`
}

// MarshalJSON emits {"kind":"paragraph","content":[...]}
func (p Paragraph) MarshalJSON() ([]byte, error) {
	content := p.Content
	if content == nil {
		content = []ContentNode{}
	}
	return json.Marshal(wireParagraph{Kind: KindParagraph, Content: content})
}

// UnmarshalJSON decodes a paragraph
func (p *Paragraph) UnmarshalJSON(data []byte) error {
	var w wireParagraph
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Kind != KindParagraph {
		return fmt.Errorf("expected paragraph, got %q", w.Kind)
	}
	p.Content = w.Content
	return nil
}

// SourceID identifies the publisher an article was parsed from
type SourceID string

// ParsedArticle is the output of a source adapter. It is built once per fetch and only read afterwards.
type ParsedArticle struct {
	Title         []ContentNode `json:"title"`
	Labels        []string      `json:"labels"`
	Content       []Paragraph   `json:"content"`
	PublishedDate *time.Time    `json:"publishedDate"`
	Images        []string      `json:"images"`
	Source        SourceID      `json:"source"`
}

// DecodeNodes parses a serialized []ContentNode as kept by the article store
func DecodeNodes(raw string) ([]ContentNode, error) {
	if strings.TrimSpace(raw) == "" {
		return []ContentNode{}, nil
	}
	var nodes []ContentNode
	if err := json.Unmarshal([]byte(raw), &nodes); err != nil {
		return nil, fmt.Errorf("decode content nodes: %w", err)
	}
	return nodes, nil
}

// DecodeParagraphs parses a serialized []Paragraph as kept by the article store
func DecodeParagraphs(raw string) ([]Paragraph, error) {
	if strings.TrimSpace(raw) == "" {
		return []Paragraph{}, nil
	}
	var paragraphs []Paragraph
	if err := json.Unmarshal([]byte(raw), &paragraphs); err != nil {
		return nil, fmt.Errorf("decode paragraphs: %w", err)
	}
	return paragraphs, nil
}

// EncodeNodes serializes nodes for the article store
func EncodeNodes(nodes []ContentNode) (string, error) {
	if nodes == nil {
		nodes = []ContentNode{}
	}
	data, err := json.Marshal(nodes)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// EncodeParagraphs serializes paragraphs for the article store
func EncodeParagraphs(paragraphs []Paragraph) (string, error) {
	if paragraphs == nil {
		paragraphs = []Paragraph{}
	}
	data, err := json.Marshal(paragraphs)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
