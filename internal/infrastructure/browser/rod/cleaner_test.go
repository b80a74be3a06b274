package rod

import (
	"strings"
	"testing"
)

func TestCleanHTML_RemovesScriptStyle(t *testing.T) {
	html := `
<body>
    <div id="main">Hello</div>
    <script>alert("hi")</script>
    <style>.x {}</style>
</body>`

	out := CleanHTML(html, &DefaultCleanConfig)

	if strings.Contains(out, "<script") || strings.Contains(out, "<style") {
		t.Errorf("script/style tags must be removed, output: %s", out)
	}
	if !strings.Contains(out, `id="main"`) {
		t.Errorf("expected to keep normal elements")
	}
}

func TestCleanHTML_RemovesComments(t *testing.T) {
	html := `
<body>
    <!-- comment -->
    <div>Text</div>
</body>`

	out := CleanHTML(html, &DefaultCleanConfig)

	if strings.Contains(out, "comment") {
		t.Errorf("HTML comments must be removed")
	}
}

func TestCleanHTML_KeepsUsefulAttributes(t *testing.T) {
	html := `
<body>
    <a href="https://example.com" class="link" id="x" data-x="1" aria-hidden="true">Go</a>
</body>`

	out := CleanHTML(html, &DefaultCleanConfig)

	for _, keep := range []string{`href="https://example.com"`, `class="link"`, `id="x"`} {
		if !strings.Contains(out, keep) {
			t.Errorf("%s must be kept, output: %s", keep, out)
		}
	}
	for _, drop := range []string{"data-x", "aria-hidden"} {
		if strings.Contains(out, drop) {
			t.Errorf("%s must be removed, output: %s", drop, out)
		}
	}
}

func TestCleanHTML_RemovesInlineStyles(t *testing.T) {
	html := `
<body>
    <div style="color:red" class="ok">Hi</div>
</body>`

	out := CleanHTML(html, &DefaultCleanConfig)

	if strings.Contains(out, "style=") {
		t.Errorf("style attribute must be removed")
	}
	if !strings.Contains(out, `class="ok"`) {
		t.Errorf("class must remain")
	}
}

func TestCleanHTML_TruncatesLongOutput(t *testing.T) {
	html := "<body><p>" + strings.Repeat("x", 500) + "</p></body>"

	out := CleanHTML(html, &CleanConfig{MaxOutputSize: 100})

	if !strings.Contains(out, "HTML truncated") {
		t.Errorf("expected truncation marker")
	}
	if len(out) > 200 {
		t.Errorf("output not truncated, len=%d", len(out))
	}
}

func TestCleanHTML_BareTextSurvives(t *testing.T) {
	// The parser normalizes fragments into a full document; the text
	// itself must survive cleaning.
	out := CleanHTML("just text, no markup", nil)

	if !strings.Contains(out, "just text, no markup") {
		t.Errorf("text content lost: %s", out)
	}
}
