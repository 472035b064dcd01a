package markdown

import (
	"strings"
	"testing"
)

func TestRender_BasicMarkdown(t *testing.T) {
	out, err := Render("**Luna** comió bien")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "<strong>Luna</strong>") {
		t.Fatalf("expected bold, got %q", out)
	}
}

func TestRender_StripsScripts(t *testing.T) {
	out, err := Render("hola <script>alert(1)</script>")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("script should be sanitized, got %q", out)
	}
}
