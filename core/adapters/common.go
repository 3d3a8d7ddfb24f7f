// ABOUTME: Extraction steps shared by the source adapters
// ABOUTME: Title, image and body fallback chains over the ParsedHTML abstraction

package adapters

import (
	"net/url"
	"regexp"
	"strings"

	"yomu-news-api/core/domain"
	"yomu-news-api/core/interfaces"
)

// siteSuffix matches a trailing " | site-name" in og:title
var siteSuffix = regexp.MustCompile(`\s*[|｜]\s*[^|｜]*$`)

// blankLines separates chunks of flattened body text
var blankLines = regexp.MustCompile(`\n[ \t\x{3000}]*\n`)

// metaContent returns the content attribute of the first meta tag matching any rule
func metaContent(doc interfaces.ParsedHTML, rules ...string) string {
	for _, rule := range rules {
		if el, ok := doc.SelectFirst(rule); ok {
			if v, ok := el.Attr("content"); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
	}
	return ""
}

// ogTitle returns og:title without its trailing " | site-name"
func ogTitle(doc interfaces.ParsedHTML) string {
	title := metaContent(doc, `meta[property="og:title"]`, `meta[name="og:title"]`)
	if title == "" {
		return ""
	}
	stripped := strings.TrimSpace(siteSuffix.ReplaceAllString(title, ""))
	if stripped == "" {
		return title
	}
	return stripped
}

// metaDescription returns the page description
func metaDescription(doc interfaces.ParsedHTML) string {
	return metaContent(doc, `meta[name="description"]`, `meta[property="og:description"]`)
}

// imageRules describes where an adapter looks for the lead image
type imageRules struct {
	origin    string
	mainImage string
	figure    string
}

// extractImages walks og:image, the main image container and the first figure,
// stopping at the first level that yields an image
func extractImages(doc interfaces.ParsedHTML, rules imageRules) []string {
	if og := metaContent(doc, `meta[property="og:image"]`, `meta[name="og:image"]`); og != "" {
		return []string{resolveURL(rules.origin, og)}
	}
	for _, container := range []string{rules.mainImage, rules.figure} {
		if container == "" {
			continue
		}
		if src := firstImageSrc(doc, container); src != "" {
			return []string{resolveURL(rules.origin, src)}
		}
	}
	return []string{}
}

func firstImageSrc(doc interfaces.ParsedHTML, container string) string {
	box, ok := doc.SelectFirst(container)
	if !ok {
		return ""
	}
	img := box
	if box.Tag() != "img" {
		if img, ok = box.SelectFirst("img"); !ok {
			return ""
		}
	}
	for _, attr := range []string{"src", "data-src"} {
		if v, ok := img.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// resolveURL resolves a possibly relative reference against the source origin
func resolveURL(origin, ref string) string {
	base, err := url.Parse(origin)
	if err != nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}

// bodyRules describes where an adapter finds the article body
type bodyRules struct {
	container string
	// paragraphTags are the child element names treated as paragraphs
	paragraphTags map[string]bool
	// nodes converts one paragraph element into content nodes
	nodes func(interfaces.HTMLElement) []domain.ContentNode
}

// extractBody runs the body fallback chain. Each strategy runs only when every
// earlier one produced nothing: container paragraphs, then blank-line chunks of
// the container text, then the meta description.
func extractBody(doc interfaces.ParsedHTML, rules bodyRules) []domain.Paragraph {
	container, found := doc.SelectFirst(rules.container)
	if found {
		if paragraphs := containerParagraphs(container, rules); len(paragraphs) > 0 {
			return paragraphs
		}
		if paragraphs := chunkParagraphs(container.RawText()); len(paragraphs) > 0 {
			return paragraphs
		}
	}
	if desc := metaDescription(doc); desc != "" {
		if nodes := ExtractInlineFurigana(desc); len(nodes) > 0 {
			return []domain.Paragraph{{Content: nodes}}
		}
	}
	return []domain.Paragraph{}
}

func containerParagraphs(container interfaces.HTMLElement, rules bodyRules) []domain.Paragraph {
	var paragraphs []domain.Paragraph
	for _, child := range container.ChildNodes() {
		if child.IsText() || !rules.paragraphTags[child.Tag()] {
			continue
		}
		if nodes := rules.nodes(child); len(nodes) > 0 {
			paragraphs = append(paragraphs, domain.Paragraph{Content: nodes})
		}
	}
	return paragraphs
}

// chunkParagraphs splits flattened text on blank lines and re-runs furigana extraction per chunk
func chunkParagraphs(raw string) []domain.Paragraph {
	var paragraphs []domain.Paragraph
	for _, chunk := range blankLines.Split(strings.ReplaceAll(raw, "\r\n", "\n"), -1) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		if nodes := ExtractInlineFurigana(chunk); len(nodes) > 0 {
			paragraphs = append(paragraphs, domain.Paragraph{Content: nodes})
		}
	}
	return paragraphs
}

// dedupe removes empty and repeated labels, keeping first occurrences
func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
