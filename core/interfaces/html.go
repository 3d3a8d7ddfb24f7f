// ABOUTME: Minimal HTML document abstraction consumed by the source adapters
// ABOUTME: Keeps adapters independent of the HTML parsing backend

package interfaces

// HTMLElement is a node of a parsed HTML tree. Text nodes report IsText and an empty Tag.
type HTMLElement interface {
	// IsText reports whether this is a text node
	IsText() bool

	// Tag returns the lower-case element name, or "" for text nodes
	Tag() string

	// Text returns the concatenated text content
	Text() string

	// RawText returns the text content with <br> and block boundaries kept as newlines
	RawText() string

	// Attr returns the attribute value and whether it is present
	Attr(name string) (string, bool)

	// ChildNodes returns element and text children in document order
	ChildNodes() []HTMLElement

	// Select returns all descendants matching the CSS selector
	Select(rule string) []HTMLElement

	// SelectFirst returns the first descendant matching the CSS selector
	SelectFirst(rule string) (HTMLElement, bool)
}

// ParsedHTML is a whole parsed document
type ParsedHTML interface {
	// Select returns all elements matching the CSS selector
	Select(rule string) []HTMLElement

	// SelectFirst returns the first element matching the CSS selector
	SelectFirst(rule string) (HTMLElement, bool)

	// HTML returns the serialized document
	HTML() string
}
