// ABOUTME: Sentence segmentation of parsed article content
// ABOUTME: Splits paragraphs at terminal punctuation without crossing paragraph boundaries

package segment

import (
	"strings"
	"unicode"

	"yomu-news-api/core/domain"
)

// terminals end a sentence when a text node ends with one of them
const terminals = "。！？"

// trailing closing marks and whitespace are ignored when looking for a terminal
const closers = "」』）】\"'"

// Segment splits paragraphs into sentences. Every node lands in exactly one
// sentence, in order, so Join(Segment(p)) reproduces p.
func Segment(paragraphs []domain.Paragraph) []domain.Sentence {
	sentences := []domain.Sentence{}
	for pi, p := range paragraphs {
		start := 0
		for i, node := range p.Content {
			if !IsTerminal(node) {
				continue
			}
			sentences = append(sentences, domain.Sentence{Paragraph: pi, Nodes: p.Content[start : i+1 : i+1]})
			start = i + 1
		}
		if start < len(p.Content) {
			sentences = append(sentences, domain.Sentence{Paragraph: pi, Nodes: p.Content[start:len(p.Content):len(p.Content)]})
		}
	}
	return sentences
}

// IsTerminal reports whether a node closes a sentence
func IsTerminal(node domain.ContentNode) bool {
	if node.Kind != domain.KindText {
		return false
	}
	s := strings.TrimRightFunc(node.Content, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(closers, r)
	})
	if s == "" {
		return false
	}
	last := []rune(s)
	return strings.ContainsRune(terminals, last[len(last)-1])
}

// Join regroups sentences into paragraphs by their paragraph index
func Join(sentences []domain.Sentence) []domain.Paragraph {
	paragraphs := []domain.Paragraph{}
	current := -1
	for _, s := range sentences {
		if s.Paragraph != current {
			paragraphs = append(paragraphs, domain.Paragraph{Content: []domain.ContentNode{}})
			current = s.Paragraph
		}
		last := &paragraphs[len(paragraphs)-1]
		last.Content = append(last.Content, s.Nodes...)
	}
	return paragraphs
}

// Texts returns the flattened text of each sentence
func Texts(sentences []domain.Sentence) []string {
	texts := make([]string, len(sentences))
	for i, s := range sentences {
		texts[i] = s.Text()
	}
	return texts
}
