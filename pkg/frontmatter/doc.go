// Package frontmatter splits a leading frontmatter block off Markdown text.
//
// Frontmatter is delimited by fence lines, lines that read "---" once
// surrounding whitespace is trimmed. The block is treated as opaque text:
// it is never parsed as YAML or validated.
//
// # Basic Usage
//
//	body, matter, ok := frontmatter.Split(content)
//	if ok {
//		slog.Debug("dropped frontmatter", "frontmatter", matter)
//	}
//	fmt.Print(body)
//
// # Recognition Rules
//
// A block is recognized only when all of the following hold:
//
//   - the very first line of the text is a fence (leading blank lines
//     disqualify the block)
//   - a later line is also a fence; the first such line closes the block
//
// Text that does not satisfy both rules has no frontmatter and is returned
// as the body with only trailing whitespace removed. In particular an
// unterminated opening fence never swallows the rest of the document.
// Fence lines after the closing fence are ordinary body content.
//
// # Line Endings
//
// Lines are split on "\n" and a trailing "\r" is dropped from each line, so
// both LF and CRLF input is handled. When a block is recognized the body and
// frontmatter are rebuilt with "\n" separators.
//
// All functions are pure and safe for concurrent use.
package frontmatter
