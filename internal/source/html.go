package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/pagemark/internal/glyph"
	"golang.org/x/net/html"
)

// Synthetic typography for HTML. Tag defaults are chosen so the geometric
// classifier reconstructs h1/h2 and inline emphasis survives as styled
// runs at body size.
const (
	htmlBodyFont    = "Helvetica"
	htmlBoldFont    = "Helvetica-Bold"
	htmlObliqueFont = "Helvetica-Oblique"

	htmlBodySize     = 12
	htmlHeading1Size = 24
	htmlHeading2Size = 16
	htmlHeading3Size = 13
)

// HTMLSource synthesizes a glyph stream from an HTML document. The whole
// document becomes one page; each block element is one visual row.
type HTMLSource struct {
	Reader io.Reader
	Name   string
}

type htmlStyle struct {
	font string
	size float64
}

func (s *HTMLSource) Pages(ctx context.Context) ([]glyph.Page, error) {
	doc, err := html.Parse(s.Reader)
	if err != nil {
		return nil, &ExtractionError{Doc: s.Name, Err: fmt.Errorf("parse html: %w", err)}
	}

	w := newRowWriter(1)
	body := findBody(doc)
	if body == nil {
		body = doc
	}
	walkBlocks(body, w)

	return []glyph.Page{w.result()}, nil
}

// walkBlocks visits block-level elements and writes each as one row.
func walkBlocks(n *html.Node, w *rowWriter) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "nav", "head":
			return
		case "h1":
			writeRow(n, w, htmlStyle{htmlBoldFont, htmlHeading1Size})
			return
		case "h2":
			writeRow(n, w, htmlStyle{htmlBoldFont, htmlHeading2Size})
			return
		case "h3", "h4", "h5", "h6":
			writeRow(n, w, htmlStyle{htmlBoldFont, htmlHeading3Size})
			return
		case "p", "li", "td", "blockquote", "pre":
			writeRow(n, w, htmlStyle{htmlBodyFont, htmlBodySize})
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkBlocks(c, w)
	}
}

// writeRow emits one block element as a visual row, tracking inline
// bold/italic tags as font changes within the row.
func writeRow(n *html.Node, w *rowWriter, base htmlStyle) {
	w.newRow(base.size)
	var emit func(*html.Node, htmlStyle)
	emit = func(n *html.Node, style htmlStyle) {
		if n.Type == html.TextNode {
			text := collapseSpace(n.Data)
			if text != "" {
				w.writeSpan(text, style.font, style.size, glyph.Black)
			}
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "b", "strong":
				style.font = htmlBoldFont
			case "i", "em":
				style.font = htmlObliqueFont
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			emit(c, style)
		}
	}
	emit(n, base)
}

// collapseSpace folds runs of whitespace into single spaces.
func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if strings.Contains(s, " ") || strings.Contains(s, "\n") || strings.Contains(s, "\t") {
			return " "
		}
		return ""
	}
	out := strings.Join(fields, " ")
	if s != "" && (s[0] == ' ' || s[0] == '\n' || s[0] == '\t') {
		out = " " + out
	}
	if last := s[len(s)-1]; last == ' ' || last == '\n' || last == '\t' {
		out += " "
	}
	return out
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
