package report

import (
	"strings"
	"unicode/utf8"
)

// DescriptionWidth is the width of the description column of the plugin
// table.
const DescriptionWidth = 60

// SplitDescription breaks s into lines of at most limit characters by
// greedily filling words. A word longer than limit gets a line of its own.
// Whitespace inside s is collapsed; an empty s yields no lines.
func SplitDescription(s string, limit int) []string {
	var (
		lines   []string
		current []string
		width   int // characters in current, including separating spaces
	)
	for _, word := range strings.Fields(s) {
		n := utf8.RuneCountInString(word)
		switch {
		case len(current) == 0:
			current, width = []string{word}, n
		case width+1+n <= limit:
			current = append(current, word)
			width += 1 + n
		default:
			lines = append(lines, strings.Join(current, " "))
			current, width = []string{word}, n
		}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}
