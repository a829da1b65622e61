package htmlsanitize

import (
	"strings"
	"testing"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "  المخيم الكشفي  ", "المخيم الكشفي"},
		{"strips tags", "<b>Bold</b> text", "Bold text"},
		{"drops scripts", `<script>alert("x")</script>Hi`, "Hi"},
		{"drops attributes", `<a href="javascript:alert(1)" onclick="x()">link</a>`, "link"},
		{"keeps ampersand", "Scouts & Guides", "Scouts & Guides"},
		{"decodes entities", "Scouts &amp; Guides", "Scouts & Guides"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.in); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPlainText_Idempotent(t *testing.T) {
	in := `<p>Hello <i>world</i> &lt;3</p>`
	once := PlainText(in)
	if twice := PlainText(once); strings.Contains(twice, "<") && twice != once {
		t.Errorf("PlainText twice = %q, once = %q", twice, once)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("مرحبا بكم", 5); got != "مرحبا" {
		t.Errorf("Truncate() = %q", got)
	}
	if got := Truncate("short", 100); got != "short" {
		t.Errorf("Truncate() = %q", got)
	}
	if got := Truncate("any", 0); got != "any" {
		t.Errorf("Truncate(max=0) = %q", got)
	}
	if got := Clean("<b>abcdef</b>", 3); got != "abc" {
		t.Errorf("Clean() = %q", got)
	}
}

func TestParagraphs(t *testing.T) {
	got := string(Paragraphs("line <1>\r\nline 2"))
	if got != "line &lt;1&gt;<br>line 2" {
		t.Errorf("Paragraphs() = %q", got)
	}
	if Paragraphs("") != "" {
		t.Error("Paragraphs(\"\") should be empty")
	}
}
