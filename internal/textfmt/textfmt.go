// Package textfmt lays out free text for fixed-width plain-text reports.
package textfmt

import "strings"

// DefaultLineLength is the report line width.
const DefaultLineLength = 80

// listIndent is the hanging indent applied to continuation lines of list
// items.
const listIndent = "   "

// Wrap formats text at the given maximum line length. Paragraphs are split
// on blank lines; a paragraph beginning with a list marker (digit plus
// period, bullet, or dash) is wrapped line by line with a hanging indent,
// any other paragraph is re-flowed as a single block. Wrap is idempotent:
// re-wrapping its own output at the same width changes nothing.
func Wrap(text string, maxLineLength int) string {
	if maxLineLength <= 0 {
		maxLineLength = DefaultLineLength
	}

	var formatted []string
	for _, paragraph := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(paragraph) == "" {
			continue
		}
		if isListParagraph(paragraph) {
			formatted = append(formatted, wrapList(paragraph, maxLineLength))
		} else {
			formatted = append(formatted, fill(paragraph, maxLineLength, "", ""))
		}
	}

	return strings.Join(formatted, "\n\n")
}

// isListParagraph reports whether the paragraph opens with a recognized
// list marker.
func isListParagraph(paragraph string) bool {
	return hasListMarker(strings.TrimSpace(paragraph))
}

func hasListMarker(line string) bool {
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-") {
		return true
	}
	return len(line) >= 2 && line[0] >= '1' && line[0] <= '9' && line[1] == '.'
}

// wrapList wraps each line of a list paragraph separately. Marker lines
// keep their marker flush left with continuation text indented; lines that
// continue a previous item are indented throughout.
func wrapList(paragraph string, maxLineLength int) string {
	var lines []string
	for _, line := range strings.Split(paragraph, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if hasListMarker(trimmed) {
			lines = append(lines, fill(trimmed, maxLineLength, "", listIndent))
		} else {
			lines = append(lines, fill(trimmed, maxLineLength, listIndent, listIndent))
		}
	}
	return strings.Join(lines, "\n")
}

// fill greedily wraps text at width, prefixing the first line with
// initialIndent and every following line with subsequentIndent. All
// whitespace runs, including newlines, collapse to single spaces.
func fill(text string, width int, initialIndent, subsequentIndent string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	line := initialIndent + words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) <= width {
			line += " " + word
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
		line = subsequentIndent + word
	}
	b.WriteString(line)

	return b.String()
}
