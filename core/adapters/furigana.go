// ABOUTME: Furigana extraction shared by the source adapters
// ABOUTME: Walks <ruby> markup and scans inline 漢字（かんじ） annotations into content nodes

package adapters

import (
	"strings"
	"unicode"

	"yomu-news-api/core/domain"
	"yomu-news-api/core/interfaces"
)

const (
	openParen  = '（'
	closeParen = '）'
)

// sentenceEnders close a sentence when they end a text node
const sentenceEnders = "。！？"

// closingMarks may trail a sentence ender and stay with it
const closingMarks = "」』）】"

// nodeBuilder accumulates content nodes. Text is split after sentence-ending
// punctuation so each sentence boundary falls on a node boundary.
type nodeBuilder struct {
	nodes []domain.ContentNode
}

func (b *nodeBuilder) text(s string) {
	s = cleanText(s)
	if strings.TrimSpace(s) == "" {
		return
	}
	runes := []rune(s)
	start := 0
	for i := 0; i < len(runes); i++ {
		if !strings.ContainsRune(sentenceEnders, runes[i]) {
			continue
		}
		end := i + 1
		for end < len(runes) && (strings.ContainsRune(sentenceEnders, runes[end]) || strings.ContainsRune(closingMarks, runes[end])) {
			end++
		}
		b.nodes = append(b.nodes, domain.NewText(string(runes[start:end])))
		start = end
		i = end - 1
	}
	if start < len(runes) {
		b.nodes = append(b.nodes, domain.NewText(string(runes[start:])))
	}
}

func (b *nodeBuilder) ruby(kanji, reading string) {
	if node, ok := domain.NewRuby(kanji, reading); ok {
		b.nodes = append(b.nodes, node)
	}
}

func (b *nodeBuilder) result() []domain.ContentNode {
	if b.nodes == nil {
		return []domain.ContentNode{}
	}
	return b.nodes
}

// cleanText drops markup indentation: line breaks and tabs along with the spaces around them
func cleanText(s string) string {
	if !strings.ContainsAny(s, "\n\r\t") {
		return s
	}
	lines := strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '\r' || r == '\t' })
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.Join(lines, "")
}

// ExtractRubyNodes converts an element's children into text and ruby nodes.
// <ruby> yields a ruby node from its base text and <rt> reading; wrapper
// elements such as <span> and <a> are descended into.
func ExtractRubyNodes(el interfaces.HTMLElement) []domain.ContentNode {
	var b nodeBuilder
	walkRuby(&b, el)
	return b.result()
}

func walkRuby(b *nodeBuilder, el interfaces.HTMLElement) {
	for _, child := range el.ChildNodes() {
		if child.IsText() {
			b.text(child.Text())
			continue
		}
		switch child.Tag() {
		case "ruby":
			kanji, reading := splitRuby(child)
			b.ruby(kanji, reading)
		case "script", "style", "rt", "rp", "br", "img", "figure", "figcaption":
		default:
			walkRuby(b, child)
		}
	}
}

// splitRuby separates a <ruby> element into its base text and reading
func splitRuby(el interfaces.HTMLElement) (string, string) {
	var kanji, reading strings.Builder
	for _, child := range el.ChildNodes() {
		if child.IsText() {
			kanji.WriteString(child.Text())
			continue
		}
		switch child.Tag() {
		case "rt":
			reading.WriteString(child.Text())
		case "rp":
		case "rb":
			kanji.WriteString(child.Text())
		default:
			kanji.WriteString(child.Text())
		}
	}
	return cleanText(kanji.String()), cleanText(reading.String())
}

// ExtractInlineFurigana scans flattened text for 漢字（かんじ） annotations.
// A run of ideographs directly before a full-width opening paren becomes a ruby
// node whose reading is the parenthesized kana. Parens that do not follow an
// ideograph, or that hold something other than kana, stay as text.
func ExtractInlineFurigana(text string) []domain.ContentNode {
	var b nodeBuilder
	runes := []rune(cleanText(text))
	var pending []rune

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != openParen {
			pending = append(pending, r)
			continue
		}

		start := len(pending)
		for start > 0 && isIdeograph(pending[start-1]) {
			start--
		}
		end := matchingParen(runes, i)
		if start == len(pending) || end < 0 {
			pending = append(pending, r)
			continue
		}
		reading := string(runes[i+1 : end])
		if !isKana(reading) {
			pending = append(pending, r)
			continue
		}

		b.text(string(pending[:start]))
		b.ruby(string(pending[start:]), reading)
		pending = pending[:0]
		i = end
	}
	b.text(string(pending))
	return b.result()
}

// matchingParen returns the index of the closing paren for the opening paren at open, or -1
func matchingParen(runes []rune, open int) int {
	for j := open + 1; j < len(runes); j++ {
		switch runes[j] {
		case closeParen:
			return j
		case openParen:
			return -1
		}
	}
	return -1
}

func isIdeograph(r rune) bool {
	return unicode.Is(unicode.Han, r) || r == '々' || r == '〆' || r == 'ヶ'
}

func isKana(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.Is(unicode.Hiragana, r) && !unicode.Is(unicode.Katakana, r) && r != 'ー' && r != '・' {
			return false
		}
	}
	return true
}
