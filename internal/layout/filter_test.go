package layout

import (
	"errors"
	"testing"
)

func TestNewLineFilterInvalidPattern(t *testing.T) {
	_, err := NewLineFilter("([unclosed", "")
	if err == nil {
		t.Fatal("expected error for invalid header pattern")
	}
	var perr *PatternError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PatternError, got %T", err)
	}
	if perr.Field != "header" {
		t.Errorf("field = %q, want header", perr.Field)
	}

	_, err = NewLineFilter("", "([unclosed")
	if !errors.As(err, &perr) || perr.Field != "footer" {
		t.Fatalf("expected footer PatternError, got %v", err)
	}
}

func TestDropMatchesFromStartOfTrimmedText(t *testing.T) {
	f, err := NewLineFilter("CONFIDENTIAL", `Page \d+`)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		text string
		drop bool
	}{
		{"CONFIDENTIAL - internal use", true},
		{"  CONFIDENTIAL", true}, // leading whitespace is trimmed first
		{"This is CONFIDENTIAL", false},
		{"Page 12 of 90", true},
		{"See Page 12", false},
		{"Body text", false},
	}
	for _, tc := range cases {
		if got := f.Drop(tc.text); got != tc.drop {
			t.Errorf("Drop(%q) = %v, want %v", tc.text, got, tc.drop)
		}
	}
}

func TestDropWithEmptyPatterns(t *testing.T) {
	f, err := NewLineFilter("", "")
	if err != nil {
		t.Fatal(err)
	}
	if f.Drop("anything") {
		t.Fatal("empty patterns must keep every line")
	}
}

func TestDropNilFilterKeepsEverything(t *testing.T) {
	var f *LineFilter
	if f.Drop("anything") {
		t.Fatal("nil filter must keep every line")
	}
}
