// Package docstring extracts structured information from numpy-style
// documentation: a leading summary, titled sections underlined with hyphens,
// and per-parameter entries of the form "name : datatype" followed by an
// indented description.
package docstring

import (
	"strings"
)

// Dedent normalizes a raw doc comment. The first line is kept as is, the
// common leading whitespace of all remaining non-blank lines is removed, and
// leading and trailing blank lines are trimmed.
func Dedent(doc string) string {
	lines := strings.Split(doc, "\n")
	if len(lines) > 1 {
		margin := -1
		for _, line := range lines[1:] {
			trimmed := strings.TrimLeft(line, " \t")
			if trimmed == "" {
				continue
			}
			indent := len(line) - len(trimmed)
			if margin < 0 || indent < margin {
				margin = indent
			}
		}
		if margin > 0 {
			for i, line := range lines[1:] {
				if len(line) >= margin {
					lines[i+1] = line[margin:]
				} else {
					lines[i+1] = strings.TrimLeft(line, " \t")
				}
			}
		}
	}
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	out := strings.Join(lines, "\n")
	return strings.Trim(out, "\n")
}

// Summary returns the first paragraph of a dedented doc, with line breaks
// collapsed to single spaces. The paragraph ends at the first blank line or
// at the first section header.
func Summary(doc string) string {
	lines := strings.Split(doc, "\n")
	var fields []string
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			break
		}
		if i+1 < len(lines) && isUnderline(lines[i+1]) {
			break
		}
		fields = append(fields, strings.Fields(line)...)
	}
	return strings.Join(fields, " ")
}

// Section returns the body of the titled section: the lines between the
// title's hyphen underline and the next section header (or the end of the
// doc), with trailing blank lines removed. It returns "" when the section
// does not exist.
func Section(doc, title string) string {
	lines := strings.Split(doc, "\n")
	start := -1
	for i := 0; i+1 < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") == title && isUnderline(lines[i+1]) {
			start = i + 2
			break
		}
	}
	if start < 0 {
		return ""
	}
	end := len(lines)
	for i := start; i+1 < len(lines); i++ {
		if isUnderline(lines[i+1]) && strings.TrimSpace(lines[i]) != "" {
			end = i
			break
		}
	}
	body := lines[start:end]
	for len(body) > 0 && strings.TrimSpace(body[len(body)-1]) == "" {
		body = body[:len(body)-1]
	}
	return strings.Join(body, "\n")
}

// Param looks up one parameter entry in a Parameters section body. The entry
// starts at an unindented "name" or "name : datatype" line; its description is
// the indented block below. The returned description is dedented, the datatype
// is "" when the entry declares none, and ok reports whether the entry exists.
func Param(section, name string) (desc, dtype string, ok bool) {
	lines := strings.Split(section, "\n")
	for i, line := range lines {
		if line == "" || line[0] == ' ' || line[0] == '\t' {
			continue
		}
		key, rest, hasType := strings.Cut(line, ":")
		if strings.TrimSpace(key) != name {
			continue
		}
		if hasType {
			dtype = strings.TrimSpace(rest)
		}
		var block []string
		for _, next := range lines[i+1:] {
			if next != "" && next[0] != ' ' && next[0] != '\t' {
				break
			}
			block = append(block, next)
		}
		for len(block) > 0 && strings.TrimSpace(block[len(block)-1]) == "" {
			block = block[:len(block)-1]
		}
		return dedentBlock(block), dtype, true
	}
	return "", "", false
}

// isUnderline reports whether the line is a section underline, a run of at
// least three hyphens and nothing else.
func isUnderline(line string) bool {
	line = strings.TrimRight(line, " \t")
	if len(line) < 3 {
		return false
	}
	for _, r := range line {
		if r != '-' {
			return false
		}
	}
	return true
}

func dedentBlock(lines []string) string {
	margin := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}
	if margin > 0 {
		for i, line := range lines {
			if len(line) >= margin {
				lines[i] = line[margin:]
			} else {
				lines[i] = ""
			}
		}
	}
	return strings.Join(lines, "\n")
}
