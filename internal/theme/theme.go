package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds the color definitions for every rendered role
type Colors struct {
	// Document view colors
	DocText       tcell.Color
	Heading       tcell.Color
	HeadingAnchor tcell.Color
	Link          tcell.Color
	CodeInline    tcell.Color
	CodeText      tcell.Color
	CodeLangLabel tcell.Color
	BlockquoteBar tcell.Color
	Blockquote    tcell.Color
	ListBullet    tcell.Color
	TableBorder   tcell.Color
	TableHeader   tcell.Color
	Rule          tcell.Color
	Cursor        tcell.Color

	// Raw markdown mode colors
	RawText   tcell.Color
	RawCursor tcell.Color

	// Prompt colors
	PromptLabel  tcell.Color
	PromptText   tcell.Color
	PromptCursor tcell.Color
	PromptMatch  tcell.Color

	// Status line colors
	StatusMode     tcell.Color
	StatusMessage  tcell.Color
	StatusModified tcell.Color
	StatusFormats  tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// Default returns a default theme using terminal defaults
func Default() *Theme {
	return &Theme{
		Name: "default",
		Colors: Colors{
			DocText:        tcell.ColorDefault,
			Heading:        tcell.ColorDefault,
			HeadingAnchor:  tcell.ColorDefault,
			Link:           tcell.ColorDefault,
			CodeInline:     tcell.ColorDefault,
			CodeText:       tcell.ColorDefault,
			CodeLangLabel:  tcell.ColorDefault,
			BlockquoteBar:  tcell.ColorDefault,
			Blockquote:     tcell.ColorDefault,
			ListBullet:     tcell.ColorDefault,
			TableBorder:    tcell.ColorDefault,
			TableHeader:    tcell.ColorDefault,
			Rule:           tcell.ColorDefault,
			Cursor:         tcell.ColorDefault,
			RawText:        tcell.ColorDefault,
			RawCursor:      tcell.ColorDefault,
			PromptLabel:    tcell.ColorDefault,
			PromptText:     tcell.ColorDefault,
			PromptCursor:   tcell.ColorDefault,
			PromptMatch:    tcell.ColorDefault,
			StatusMode:     tcell.ColorDefault,
			StatusMessage:  tcell.ColorDefault,
			StatusModified: tcell.ColorDefault,
			StatusFormats:  tcell.ColorDefault,
		},
	}
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			// Tokyo Night palette
			DocText:        HexToColor("#c0caf5"), // Light gray-blue
			Heading:        HexToColor("#7aa2f7"), // Blue
			HeadingAnchor:  HexToColor("#565f89"), // Comment gray
			Link:           HexToColor("#7dcfff"), // Cyan
			CodeInline:     HexToColor("#9ece6a"), // Green
			CodeText:       HexToColor("#9ece6a"), // Green
			CodeLangLabel:  HexToColor("#565f89"), // Comment gray
			BlockquoteBar:  HexToColor("#bb9af7"), // Magenta
			Blockquote:     HexToColor("#a9b1d6"), // Muted foreground
			ListBullet:     HexToColor("#7dcfff"), // Cyan
			TableBorder:    HexToColor("#565f89"), // Comment gray
			TableHeader:    HexToColor("#7aa2f7"), // Blue
			Rule:           HexToColor("#565f89"), // Comment gray
			Cursor:         HexToColor("#7aa2f7"), // Blue
			RawText:        HexToColor("#c0caf5"), // Light gray-blue
			RawCursor:      HexToColor("#7aa2f7"), // Blue
			PromptLabel:    HexToColor("#bb9af7"), // Magenta
			PromptText:     HexToColor("#c0caf5"), // Light gray-blue
			PromptCursor:   HexToColor("#7aa2f7"), // Blue
			PromptMatch:    HexToColor("#9ece6a"), // Green
			StatusMode:     HexToColor("#bb9af7"), // Magenta
			StatusMessage:  HexToColor("#9ece6a"), // Green
			StatusModified: HexToColor("#f7768e"), // Red
			StatusFormats:  HexToColor("#7dcfff"), // Cyan
		},
	}
}
