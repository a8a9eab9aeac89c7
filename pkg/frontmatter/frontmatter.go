package frontmatter

import (
	"strings"
	"unicode"
)

// Fence is the delimiter line that opens and closes a frontmatter block.
const Fence = "---"

// IsFence reports whether line is a frontmatter fence.
func IsFence(line string) bool {
	return strings.TrimSpace(line) == Fence
}

// Opens reports whether the first line of s is a fence. Content that opens
// a fence but has no frontmatter according to Split is unterminated.
func Opens(s string) bool {
	first, _, _ := strings.Cut(s, "\n")
	return IsFence(first)
}

// Split separates a leading frontmatter block from the rest of input.
//
// When a block is recognized, matter holds the block including both fence
// lines with trailing whitespace trimmed, and body holds every line after
// the closing fence with leading and trailing blank lines removed. Interior
// blank lines are preserved.
//
// When no block is recognized, ok is false, matter is empty and body is the
// input with trailing whitespace removed. Split never fails.
func Split(input string) (body, matter string, ok bool) {
	if input == "" {
		return input, "", false
	}

	lines := splitLines(input)
	if len(lines) == 0 || !IsFence(lines[0]) {
		return trimTrailing(input), "", false
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if IsFence(lines[i]) {
			end = i
			break
		}
	}
	if end < 0 {
		// Unterminated fence: the document keeps its content.
		return trimTrailing(input), "", false
	}

	matter = trimTrailing(strings.Join(lines[:end+1], "\n"))
	body = trimBlankLines(lines[end+1:])
	return body, matter, true
}

// Cut is Split for chapter content: the body additionally loses any
// newline characters left at its start.
func Cut(content string) (body, matter string, ok bool) {
	body, matter, ok = Split(content)
	return strings.TrimLeft(body, "\r\n"), matter, ok
}

// Strip removes a leading frontmatter block from chapter content and drops
// any newline artifacts left at the start of the result.
func Strip(content string) string {
	body, _, _ := Cut(content)
	return body
}

// splitLines breaks s into lines the way a line reader would: a final line
// terminator does not produce an empty trailing line, and "\r" before "\n"
// is not part of the line.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// trimBlankLines joins lines with "\n" after dropping whitespace-only lines
// from both ends. Indentation of the first kept line is preserved.
func trimBlankLines(lines []string) string {
	start, end := 0, len(lines)
	for start < end && isBlank(lines[start]) {
		start++
	}
	for end > start && isBlank(lines[end-1]) {
		end--
	}
	return trimTrailing(strings.Join(lines[start:end], "\n"))
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func trimTrailing(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
