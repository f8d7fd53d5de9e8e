package ui

import (
	"testing"
)

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		name     string
		r        rune
		expected int
	}{
		{"ASCII letter", 'A', 1},
		{"ASCII space", ' ', 1},
		{"Emoji", '😀', 2},
		{"Chinese character", '中', 2},
		{"Combining acute", '́', 0},
		{"Zero width joiner", '‍', 0},
		{"Tab", '\t', 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RuneWidth(tt.r)
			if got != tt.expected {
				t.Errorf("RuneWidth(%q) = %d, want %d", tt.r, got, tt.expected)
			}
		})
	}
}

func TestStringWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"ASCII only", "Hello", 5},
		{"Emoji with text", "😀 Hello", 8},
		{"Chinese", "中国", 4},
		{"Mixed CJK and ASCII", "Hello中国", 9},
		{"Empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StringWidth(tt.input)
			if got != tt.expected {
				t.Errorf("StringWidth(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		expected string
	}{
		{"Fits exactly", "Hello", 5, "Hello"},
		{"Needs truncation", "Hello World", 5, "Hello"},
		{"Wide char does not split", "ab中cd", 3, "ab"},
		{"Wide char fits", "ab中cd", 4, "ab中"},
		{"Zero width", "Hello", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateToWidth(tt.input, tt.maxWidth)
			if got != tt.expected {
				t.Errorf("TruncateToWidth(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.expected)
			}
		})
	}
}

func TestTruncateToWidthWithEllipsis(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		expected string
	}{
		{"Fits without ellipsis", "Hello", 10, "Hello"},
		{"Truncated with ellipsis", "Hello World", 8, "Hello..."},
		{"Tiny width skips ellipsis", "Hello", 3, "Hel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateToWidthWithEllipsis(tt.input, tt.maxWidth)
			if got != tt.expected {
				t.Errorf("TruncateToWidthWithEllipsis(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.expected)
			}
		})
	}
}

func TestPadStringToWidth(t *testing.T) {
	if got := PadStringToWidth("ab", 5); got != "ab   " {
		t.Errorf("PadStringToWidth(\"ab\", 5) = %q", got)
	}
	if got := PadStringToWidth("中国", 5); got != "中国 " {
		t.Errorf("PadStringToWidth(\"中国\", 5) = %q", got)
	}
	if got := PadStringToWidth("already wide", 5); got != "already wide" {
		t.Errorf("PadStringToWidth should not shrink, got %q", got)
	}
}

func TestCalculateBreakPoint(t *testing.T) {
	// Breaks after the space nearest to the limit
	idx, _ := CalculateBreakPoint("hello world again", 8)
	if idx != 6 {
		t.Errorf("break index = %d, want 6", idx)
	}

	// No space: breaks at the character boundary
	idx, width := CalculateBreakPoint("abcdefghij", 4)
	if idx != 4 || width != 4 {
		t.Errorf("break = (%d, %d), want (4, 4)", idx, width)
	}

	// Entire string fits
	idx, width = CalculateBreakPoint("short", 20)
	if idx != 5 || width != 5 {
		t.Errorf("break = (%d, %d), want (5, 5)", idx, width)
	}

	// Wide characters count as two columns
	idx, _ = CalculateBreakPoint("中中中", 4)
	if idx != len("中中") {
		t.Errorf("wide break index = %d, want %d", idx, len("中中"))
	}
}

func TestWordBoundaryIndex(t *testing.T) {
	s := "one two three"

	if got := WordBoundaryIndex(s, 0, true); got != 4 {
		t.Errorf("next from 0 = %d, want 4", got)
	}
	if got := WordBoundaryIndex(s, 4, true); got != 8 {
		t.Errorf("next from 4 = %d, want 8", got)
	}
	if got := WordBoundaryIndex(s, 8, true); got != 13 {
		t.Errorf("next from 8 = %d, want 13", got)
	}

	if got := WordBoundaryIndex(s, 13, false); got != 8 {
		t.Errorf("prev from 13 = %d, want 8", got)
	}
	// From a word start the preceding space ends the scan immediately
	if got := WordBoundaryIndex(s, 8, false); got != 8 {
		t.Errorf("prev from 8 = %d, want 8", got)
	}
	if got := WordBoundaryIndex(s, 3, false); got != 0 {
		t.Errorf("prev from 3 = %d, want 0", got)
	}

	if got := WordBoundaryIndex("", 0, true); got != 0 {
		t.Errorf("empty string = %d, want 0", got)
	}
}
