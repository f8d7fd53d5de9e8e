package theme

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// HexToColor converts a hex color string (#RRGGBB or #RGB) to
// tcell.Color. Anything unparseable falls back to the terminal default.
func HexToColor(hexColor string) tcell.Color {
	hex := strings.TrimPrefix(hexColor, "#")

	// Expand short form (#RGB)
	if len(hex) == 3 {
		var sb strings.Builder
		for _, c := range hex {
			sb.WriteRune(c)
			sb.WriteRune(c)
		}
		hex = sb.String()
	}
	if len(hex) != 6 {
		return tcell.ColorDefault
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return tcell.ColorDefault
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// ParseColorString accepts the formats theme files may use: #RRGGBB,
// #RGB, or rgb(r,g,b)
func ParseColorString(colorStr string) tcell.Color {
	colorStr = strings.TrimSpace(colorStr)

	if strings.HasPrefix(colorStr, "#") {
		return HexToColor(colorStr)
	}
	if strings.HasPrefix(colorStr, "rgb(") && strings.HasSuffix(colorStr, ")") {
		return parseRGBTriple(colorStr[len("rgb(") : len(colorStr)-1])
	}
	return tcell.ColorDefault
}

func parseRGBTriple(inner string) tcell.Color {
	parts := strings.Split(inner, ",")
	if len(parts) != 3 {
		return tcell.ColorDefault
	}
	var vals [3]int32
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return tcell.ColorDefault
		}
		vals[i] = int32(v)
	}
	return tcell.NewRGBColor(vals[0], vals[1], vals[2])
}

// ColorToStyle creates a style with a specific foreground color
func ColorToStyle(fgColor tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fgColor)
}
