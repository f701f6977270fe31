package label

import (
	"strings"
	"unicode/utf8"
)

// Wrap greedily breaks text into lines of at most width characters.
// Words are appended to the current line while it stays within width; a
// word that does not fit starts a new line. A single word longer than
// width gets a line of its own and is not split.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}

	lines := make([]string, 0, 2)
	line := words[0]
	for _, w := range words[1:] {
		if utf8.RuneCountInString(line)+1+utf8.RuneCountInString(w) <= width {
			line += " " + w
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}
