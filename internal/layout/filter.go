package layout

import (
	"fmt"
	"regexp"
	"strings"
)

// PatternError reports an invalid header or footer pattern. Patterns are
// compiled before any page is processed, so a bad pattern fails the whole
// document up front rather than per page.
type PatternError struct {
	Field   string // "header" or "footer"
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid %s pattern %q: %v", e.Field, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// LineFilter drops lines whose trimmed text matches a configured header
// or footer pattern from the start of the text.
type LineFilter struct {
	header *regexp.Regexp
	footer *regexp.Regexp
}

// NewLineFilter compiles the optional header and footer patterns. An empty
// pattern disables that side of the filter.
func NewLineFilter(headerPattern, footerPattern string) (*LineFilter, error) {
	f := &LineFilter{}
	var err error
	if headerPattern != "" {
		f.header, err = compileAnchored(headerPattern)
		if err != nil {
			return nil, &PatternError{Field: "header", Pattern: headerPattern, Err: err}
		}
	}
	if footerPattern != "" {
		f.footer, err = compileAnchored(footerPattern)
		if err != nil {
			return nil, &PatternError{Field: "footer", Pattern: footerPattern, Err: err}
		}
	}
	return f, nil
}

// compileAnchored wraps the pattern so it only matches from the start of
// the line text.
func compileAnchored(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`^(?:` + pattern + `)`)
}

// Drop reports whether a line with the given text should be discarded.
// A nil filter keeps everything.
func (f *LineFilter) Drop(text string) bool {
	if f == nil {
		return false
	}
	text = strings.TrimSpace(text)
	if f.header != nil && f.header.MatchString(text) {
		return true
	}
	if f.footer != nil && f.footer.MatchString(text) {
		return true
	}
	return false
}
