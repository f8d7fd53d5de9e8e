package theme

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestHexToColor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  tcell.Color
	}{
		{"Full form", "#7aa2f7", tcell.NewRGBColor(0x7a, 0xa2, 0xf7)},
		{"Short form expands", "#abc", tcell.NewRGBColor(0xaa, 0xbb, 0xcc)},
		{"No hash prefix", "9ece6a", tcell.NewRGBColor(0x9e, 0xce, 0x6a)},
		{"Wrong length", "#abcd", tcell.ColorDefault},
		{"Not hex", "#zzzzzz", tcell.ColorDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HexToColor(tt.input); got != tt.want {
				t.Errorf("HexToColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseColorString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  tcell.Color
	}{
		{"Hex", "#565f89", tcell.NewRGBColor(0x56, 0x5f, 0x89)},
		{"Hex with spaces", "  #565f89  ", tcell.NewRGBColor(0x56, 0x5f, 0x89)},
		{"RGB triple", "rgb(10, 20, 30)", tcell.NewRGBColor(10, 20, 30)},
		{"RGB out of range", "rgb(300, 0, 0)", tcell.ColorDefault},
		{"RGB wrong arity", "rgb(1, 2)", tcell.ColorDefault},
		{"Unknown format", "papayawhip", tcell.ColorDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseColorString(tt.input); got != tt.want {
				t.Errorf("ParseColorString(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
