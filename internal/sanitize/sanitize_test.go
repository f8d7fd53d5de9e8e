package sanitize

import (
	"strings"
	"testing"
)

func TestScriptRemovedWithContent(t *testing.T) {
	got := HTML(`<p>keep</p><script>alert("x")</script>`)
	if strings.Contains(got, "script") || strings.Contains(got, "alert") {
		t.Errorf("script element and content must be removed, got %q", got)
	}
	if !strings.Contains(got, "keep") {
		t.Errorf("safe content must survive, got %q", got)
	}
}

func TestActiveElementsDropped(t *testing.T) {
	for _, tag := range []string{"style", "iframe", "object", "embed", "form", "input", "button", "textarea"} {
		got := HTML("<" + tag + ">payload</" + tag + ">")
		if strings.Contains(got, "<"+tag) {
			t.Errorf("%s element must be dropped, got %q", tag, got)
		}
	}
}

func TestEventHandlersAndStyleStripped(t *testing.T) {
	got := HTML(`<p onclick="evil()" style="color:red" title="ok">text</p>`)
	if strings.Contains(got, "onclick") || strings.Contains(got, "style") {
		t.Errorf("handler and style attributes must be stripped, got %q", got)
	}
	if !strings.Contains(got, `title="ok"`) {
		t.Errorf("allow-listed attribute must survive, got %q", got)
	}
}

func TestAttributeAllowList(t *testing.T) {
	got := HTML(`<img src="x.png" alt="pic" data-tracking="1" id="z" width="10">`)
	for _, want := range []string{`src="x.png"`, `alt="pic"`, `width="10"`} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %s in %q", want, got)
		}
	}
	for _, bad := range []string{"data-tracking", "id="} {
		if strings.Contains(got, bad) {
			t.Errorf("attribute %s should be stripped, got %q", bad, got)
		}
	}
}

func TestJavascriptURINeutralized(t *testing.T) {
	cases := []string{
		`<a href="javascript:alert(1)">x</a>`,
		`<a href="JaVaScRiPt:alert(1)">x</a>`,
		`<a href=" javascript:alert(1)">x</a>`,
		`<img src="data:text/html,<script>alert(1)</script>">`,
	}
	for _, in := range cases {
		got := HTML(in)
		if strings.Contains(strings.ToLower(got), "javascript:") ||
			strings.Contains(strings.ToLower(got), "data:text/html") {
			t.Errorf("dangerous URI survived: %q -> %q", in, got)
		}
	}
}

func TestSafeURISurvives(t *testing.T) {
	got := HTML(`<a href="https://example.com/page">x</a>`)
	if !strings.Contains(got, `href="https://example.com/page"`) {
		t.Errorf("http link should survive, got %q", got)
	}
}

func TestTableAttributesSurvive(t *testing.T) {
	got := HTML(`<table><tr><td colspan="2" rowspan="3">x</td></tr></table>`)
	if !strings.Contains(got, `colspan="2"`) || !strings.Contains(got, `rowspan="3"`) {
		t.Errorf("table span attributes should survive, got %q", got)
	}
}

func TestMalformedInputDoesNotPanic(t *testing.T) {
	inputs := []string{
		"<p><b>unclosed",
		"<<<>>>",
		"<a href=>x",
		"",
	}
	for _, in := range inputs {
		_ = HTML(in) // must not panic
	}
}

func TestPlainText(t *testing.T) {
	got := PlainText("a < b\n& more")
	if got != "a &lt; b<br>&amp; more" {
		t.Errorf("PlainText = %q, want %q", got, "a &lt; b<br>&amp; more")
	}

	if got := PlainText("<b>raw</b>"); got != "&lt;b&gt;raw&lt;/b&gt;" {
		t.Errorf("markup must be escaped, got %q", got)
	}
}
