package speech

import (
	"testing"
	"unicode/utf8"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain", "Hello world", "Hello world"},
		{"code block", "Done.\n```go\nfunc main() {}\n```\nAll set.", "Done.. code block omitted . All set."},
		{"inline code", "Run `go test` now", "Run now"},
		{"link keeps label", "See [the docs](https://example.com) here", "See the docs here"},
		{"bold", "This is **important** stuff", "This is important stuff"},
		{"italic", "This is *subtle* stuff", "This is subtle stuff"},
		{"header", "## Summary\nDone", "Summary. Done"},
		{"list items", "- first\n- second", "first. second"},
		{"windows path", `Wrote C:\Users\me\out.txt successfully`, "Wrote file path successfully"},
		{"unix path", "Wrote /home/me/out.txt successfully", "Wrote file path successfully"},
		{"newlines collapse", "line one\n\n\nline two", "line one. line two"},
		{"whitespace", "  spaced   out  ", "spaced out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.input)
			if got != tt.expected {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"short enough", "hello", 10, "hello"},
		{"exact length", "0123456789", 10, "0123456789"},
		{"no boundary gets ellipsis", "01234567890123456789012345678901234567890123456789", 10, "0123456789..."},
		{"sentence boundary past halfway", "One fine day. And then some more text after", 20, "One fine day."},
		{"boundary before halfway ignored", "Hi. 0123456789012345678901234567890123456789", 30, "Hi. 01234567890123456789012345..."},
		{"zero max means no limit", "hello there", 0, "hello there"},
		{"multibyte counts runes not bytes", "日本語の長いテキストをここで切り詰める", 5, "日本語の長..."},
		{"multibyte sentence boundary", "こんにちは. そしてさらに続くテキストです", 8, "こんにちは."},
		{"multibyte under limit untouched", "日本語", 10, "日本語"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.max)
			if got != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.expected)
			}
			if !utf8.ValidString(got) {
				t.Errorf("Truncate(%q, %d) produced invalid UTF-8", tt.input, tt.max)
			}
		})
	}
}

func TestHardTruncate(t *testing.T) {
	if got := hardTruncate("hello", 10); got != "hello" {
		t.Errorf("hardTruncate under limit = %q, want unchanged", got)
	}
	if got := hardTruncate("日本語テキスト", 3); got != "日本語..." {
		t.Errorf("hardTruncate(multibyte, 3) = %q, want %q", got, "日本語...")
	}
	if !utf8.ValidString(hardTruncate("日本語テキスト", 3)) {
		t.Error("hardTruncate produced invalid UTF-8")
	}
}
