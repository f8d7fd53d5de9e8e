// Package highlight adapts chroma to the codec's highlighter contract:
// a pure function from code and language to an HTML fragment, with ""
// meaning "not available" so the codec falls back to plain rendering.
package highlight

import (
	"bytes"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Func matches markdown.HighlightFunc
type Func func(code, lang string) string

// New returns a highlighter using the named chroma style. Inline styles
// are emitted so the fragment needs no external CSS.
func New(styleName string) Func {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	formatter := html.New()

	return func(code, lang string) string {
		if lang == "" {
			return ""
		}
		lexer := lexers.Get(lang)
		if lexer == nil {
			return ""
		}
		lexer = chroma.Coalesce(lexer)

		iterator, err := lexer.Tokenise(nil, code)
		if err != nil {
			return ""
		}
		var buf bytes.Buffer
		if err := formatter.Format(&buf, style, iterator); err != nil {
			return ""
		}
		return buf.String()
	}
}
