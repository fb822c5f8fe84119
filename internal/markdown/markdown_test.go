package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	html, err := ToHTML("A list of **Python** resources.")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(html, "<strong>Python</strong>") {
		t.Errorf("expected bold rendering, got %q", html)
	}
}

func TestToHTMLEscapesRawHTML(t *testing.T) {
	html, err := ToHTML(`before <script>alert(1)</script> after`)
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("raw HTML must be escaped, got %q", html)
	}
}

func TestToHTMLAutolinks(t *testing.T) {
	html, err := ToHTML("See https://docs.djangoproject.com for details.")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(html, `<a href="https://docs.djangoproject.com"`) {
		t.Errorf("expected GFM autolink, got %q", html)
	}
}
