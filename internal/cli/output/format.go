package output

import (
	"fmt"
	"strings"
)

// FormatHeader renders a markdown header of the given level.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue renders a "key: value" line.
func FormatKeyValue(key string, value any) string {
	return fmt.Sprintf("%s: %v", key, value)
}

// FormatCodeBlock renders a fenced markdown code block.
func FormatCodeBlock(lang, body string) string {
	return fmt.Sprintf("```%s\n%s\n```", lang, strings.TrimRight(body, "\n"))
}
