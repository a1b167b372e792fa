// Package textutil has small text-layout helpers for rendering usage output.
package textutil

import "strings"

// Wrap greedily wraps text into lines of at most width characters, breaking
// on whitespace. A word longer than width gets a line of its own. Empty text
// yields no lines.
func Wrap(text string, width int) []string {
	var (
		lines []string
		line  strings.Builder
	)
	for _, word := range strings.Fields(text) {
		if line.Len() == 0 {
			line.WriteString(word)
			continue
		}
		if line.Len()+1+len(word) > width {
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(word)
			continue
		}
		line.WriteByte(' ')
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// PadRight pads s with spaces to exactly width characters. Strings already
// that wide or wider are returned unchanged.
func PadRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
