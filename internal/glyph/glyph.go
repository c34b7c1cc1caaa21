// Package glyph defines the character-level data model shared by the
// extraction sources and the layout reconstruction pipeline.
package glyph

import (
	"fmt"
	"math"
	"strings"
)

// Color is an RGB triple with each channel in [0, 1].
type Color [3]float64

// Black is the default color sentinel.
var Black = Color{0, 0, 0}

// colorDigits is the number of fractional digits kept when quantizing
// channels. Float equality on raw extractor output is fragile, so every
// comparison goes through Quantize first.
const colorDigits = 3

// NormalizeColor converts a raw channel slice into a Color. Malformed
// tuples (wrong arity) normalize to Black rather than erroring.
func NormalizeColor(channels []float64) Color {
	if len(channels) != 3 {
		return Black
	}
	var c Color
	for i, v := range channels {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		c[i] = v
	}
	return c
}

// Quantize rounds each channel to a fixed number of fractional digits so
// that colors can be compared with ==.
func (c Color) Quantize() Color {
	const scale = 1e3 // 10^colorDigits
	var q Color
	for i, v := range c {
		q[i] = math.Round(v*scale) / scale
	}
	return q
}

// IsBlack reports whether the quantized color equals the black sentinel.
func (c Color) IsBlack() bool {
	return c.Quantize() == Black
}

// Hex renders the color as #RRGGBB, scaling each channel to [0, 255].
func (c Color) Hex() string {
	r := int(math.Round(c[0] * 255))
	g := int(math.Round(c[1] * 255))
	b := int(math.Round(c[2] * 255))
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Char is one positioned character glyph as produced by a source.
// Chars are never mutated after extraction.
type Char struct {
	Text  string  // one grapheme or ligature
	Top   float64 // distance from the top of the page
	X0    float64 // left edge
	Size  float64 // font size in points
	Font  string  // font name as reported by the source
	Color Color
	Page  int // 1-based page number
}

// Page holds the unsorted glyphs of one page.
type Page struct {
	Number int
	Chars  []Char
}

// Style is the signature identifying a distinct visual style:
// lowercased font name, rounded point size, quantized color.
type Style struct {
	Font  string
	Size  int
	Color Color
}

// StyleOf derives the style signature of a glyph.
func StyleOf(c Char) Style {
	return Style{
		Font:  strings.ToLower(c.Font),
		Size:  int(math.Round(c.Size)),
		Color: c.Color.Quantize(),
	}
}

// boldMarkers are font-name substrings that denote bold weight.
var boldMarkers = []string{"bold", "black", "heavy", "semibold", "demibold"}

// Bold reports whether the font name denotes a bold weight.
func (s Style) Bold() bool {
	for _, m := range boldMarkers {
		if strings.Contains(s.Font, m) {
			return true
		}
	}
	return false
}

// Italic reports whether the font name denotes an italic or oblique face.
func (s Style) Italic() bool {
	return strings.Contains(s.Font, "italic") || strings.Contains(s.Font, "oblique")
}
