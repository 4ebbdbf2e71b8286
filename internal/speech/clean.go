package speech

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	codeBlockRE  = regexp.MustCompile("```[\\s\\S]*?```")
	inlineCodeRE = regexp.MustCompile("`[^`]+`")
	linkRE       = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	boldRE       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRE     = regexp.MustCompile(`\*([^*]+)\*`)
	headerRE     = regexp.MustCompile(`#{1,6}\s*`)
	listItemRE   = regexp.MustCompile(`(?m)^[-*]\s+`)
	winPathRE    = regexp.MustCompile(`[A-Za-z]:[/\\][^\s]+`)
	unixPathRE   = regexp.MustCompile(`/[^\s]+/[^\s]+`)
	newlinesRE   = regexp.MustCompile(`\n+`)
	spacesRE     = regexp.MustCompile(`\s+`)
)

// Clean strips markdown and code from text so it reads well aloud. Code
// blocks become "code block omitted" and file paths become "file path"
// since neither speaks well.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = codeBlockRE.ReplaceAllString(text, " code block omitted ")
	text = inlineCodeRE.ReplaceAllString(text, "")

	// Markdown links keep their label
	text = linkRE.ReplaceAllString(text, "$1")

	text = boldRE.ReplaceAllString(text, "$1")
	text = italicRE.ReplaceAllString(text, "$1")
	text = headerRE.ReplaceAllString(text, "")
	text = listItemRE.ReplaceAllString(text, "")

	text = winPathRE.ReplaceAllString(text, "file path")
	text = unixPathRE.ReplaceAllString(text, "file path")

	text = newlinesRE.ReplaceAllString(text, ". ")
	text = spacesRE.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// Truncate cuts text to at most max characters, preferring to end at a
// sentence boundary when one falls past the halfway point; otherwise it
// hard-cuts and appends an ellipsis. Counting is in runes so multi-byte
// text never gets split mid-character.
func Truncate(text string, max int) string {
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}

	truncated := []rune(text)[:max]
	cut := -1
	for i, r := range truncated {
		if r == '.' || r == '?' || r == '!' {
			cut = i
		}
	}
	if cut > max/2 {
		return string(truncated[:cut+1])
	}
	return string(truncated) + "..."
}

// hardTruncate caps s at max runes with an ellipsis, no boundary search.
func hardTruncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
