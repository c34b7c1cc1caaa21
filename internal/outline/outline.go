// Package outline extracts the heading structure from rendered Markdown.
// It backs the CLI conversion summary and the /outline API endpoint.
package outline

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is one entry in a document outline.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Extract parses Markdown and returns its headings in document order.
func Extract(src []byte) []Heading {
	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var headings []Heading
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		headings = append(headings, Heading{
			Level: h.Level,
			Text:  string(headingText(h, src)),
		})
	}
	return headings
}

// headingText collects the text content of a heading's inline children.
func headingText(n ast.Node, src []byte) []byte {
	var out []byte
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			out = append(out, t.Value(src)...)
			continue
		}
		out = append(out, headingText(c, src)...)
	}
	return out
}
