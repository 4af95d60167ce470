// Package clean normalizes Markdown/MDX bodies for plain-text consumption.
//
// Everything here is purely textual: absence of matches is a no-op and no
// function can fail.
package clean

import (
	"regexp"
	"strings"
)

// Options selects the opt-in cleanup steps. HTML tag stripping and whitespace
// normalization always run.
type Options struct {
	RemoveImports           bool
	RemoveDuplicateHeadings bool
}

// Tag stripping is restricted to this named set. A blanket <[^>]*> match
// would corrupt angle-bracket samples (XML, generics) outside code fences.
var htmlTagPattern = regexp.MustCompile(`(?i)</?(?:div|span|p|br|hr|img|a|strong|em|b|i|u|h[1-6]|ul|ol|li|table|thead|tbody|tr|th|td)(?:\s[^>]*?)?/?>`)

// Matches default, default+destructured, destructured, namespace and
// side-effect ES import lines, anchored to line start with optional
// leading whitespace and trailing semicolon.
var importLinePattern = regexp.MustCompile(`^\s*import\s+(?:(?:[A-Za-z_$][\w$]*\s*,\s*)?\{[^}]*\}|\*\s*as\s+[A-Za-z_$][\w$]*|[A-Za-z_$][\w$]*)\s+from\s+['"][^'"]+['"];?\s*$|^\s*import\s+['"][^'"]+['"];?\s*$`)

var headingLinePattern = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// Clean applies the configured cleanup steps to a Markdown body.
func Clean(body string, opts Options) string {
	out := stripHTMLTags(body)
	if opts.RemoveImports {
		out = stripImports(out)
	}
	if opts.RemoveDuplicateHeadings {
		out = dedupHeadings(out)
	}
	return NormalizeWhitespace(out)
}

// NormalizeWhitespace converts CRLF to LF, collapses runs of three or more
// newlines to two, and trims both ends.
func NormalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = excessNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// stripHTMLTags removes known HTML tags outside fenced code blocks. Fenced
// content is passed through untouched so non-HTML markup samples survive.
func stripHTMLTags(s string) string {
	lines := strings.Split(s, "\n")
	inFence := false
	fenceMarker := ""

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			if !inFence {
				inFence = true
				if strings.HasPrefix(trimmed, "```") {
					fenceMarker = "```"
				} else {
					fenceMarker = "~~~"
				}
			} else if strings.HasPrefix(trimmed, fenceMarker) {
				inFence = false
			}
			continue
		}
		if inFence {
			continue
		}
		lines[i] = htmlTagPattern.ReplaceAllString(line, "")
	}
	return strings.Join(lines, "\n")
}

// stripImports drops ES import statement lines.
func stripImports(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if isImportLine(line) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func isImportLine(line string) bool {
	if !strings.Contains(line, "import") {
		return false
	}
	return importLinePattern.MatchString(line)
}

// dedupHeadings drops a line that merely repeats the text of the heading
// directly above it. Blank lines between the two are kept, and a genuine
// sub-heading that differs only by level is never removed.
func dedupHeadings(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))

	i := 0
	for i < len(lines) {
		line := lines[i]
		out = append(out, line)
		i++

		m := headingLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		headingText := strings.TrimSpace(m[2])
		if headingText == "" {
			continue
		}

		for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
			out = append(out, lines[i])
			i++
		}
		if i < len(lines) {
			next := strings.TrimSpace(lines[i])
			if next == headingText && !headingLinePattern.MatchString(next) {
				i++
			}
		}
	}
	return strings.Join(out, "\n")
}
