// Package render turns an ordered Document list into artifact text.
//
// Rendering is a pure fold over the input: the only state is the per-call
// used-header set, so rendering the same documents twice yields byte-equal
// output.
package render

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"git.home.luguber.info/inful/llmstxt/internal/config"
	"git.home.luguber.info/inful/llmstxt/internal/document"
	"git.home.luguber.info/inful/llmstxt/internal/util/sets"
)

const defaultLinksRootContent = "This file contains links to documentation sections following the llms.txt standard."

const descriptionLimit = 150

var firstLineHeading = regexp.MustCompile(`^(#{1,6})[ \t]+(.*)$`)

// Render produces the artifact text for one output target.
func Render(docs []*document.Document, target config.OutputTarget) string {
	if target.FullContent {
		return renderFull(docs, target)
	}
	return renderLinks(docs, target)
}

// header emits the shared artifact preamble: title, optional description
// blockquote, and the version line directly under the description.
func header(target config.OutputTarget) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", target.Title)
	if target.Description != "" {
		fmt.Fprintf(&sb, "> %s\n\n", target.Description)
	}
	if target.Version != "" {
		fmt.Fprintf(&sb, "Version: %s\n\n", target.Version)
	}
	return sb.String()
}

func renderLinks(docs []*document.Document, target config.OutputTarget) string {
	var sb strings.Builder
	sb.WriteString(header(target))

	root := target.RootContent
	if root == "" {
		root = defaultLinksRootContent
	}
	sb.WriteString(strings.TrimSpace(root))
	sb.WriteString("\n\n")

	for _, doc := range docs {
		fmt.Fprintf(&sb, "- [%s](%s)", doc.Title, doc.URL)
		if desc := linkDescription(doc.Description); desc != "" {
			fmt.Fprintf(&sb, ": %s", desc)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// linkDescription reduces a description to its first line, strips heading
// markers and truncates to the display limit. The limit counts runes, not
// bytes, so multi-byte text is never cut mid-rune.
func linkDescription(desc string) string {
	line := desc
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSpace(document.StripHeadingMarkers(line))
	if utf8.RuneCountInString(line) > descriptionLimit {
		runes := []rune(line)
		line = string(runes[:descriptionLimit]) + "..."
	}
	return line
}

func renderFull(docs []*document.Document, target config.OutputTarget) string {
	var sb strings.Builder
	sb.WriteString(header(target))

	if target.RootContent != "" {
		sb.WriteString(strings.TrimSpace(target.RootContent))
		sb.WriteString("\n\n")
	}

	used := sets.New[string]()
	sections := make([]string, 0, len(docs))
	for _, doc := range docs {
		sections = append(sections, renderSection(doc, used))
	}

	sb.WriteString(strings.Join(sections, "\n\n---\n\n"))
	sb.WriteString("\n")
	return sb.String()
}

// renderSection emits one document under a header unique within this render.
// Sections are always level two: the artifact's own title holds the single
// level-one heading.
func renderSection(doc *document.Document, used sets.Set[string]) string {
	name := uniqueHeader(doc, used)
	body := stripLeadingTitleHeading(doc.Content, doc.Title)

	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", name)
	sb.WriteString(strings.TrimSpace(body))
	return strings.TrimSpace(sb.String())
}

// uniqueHeader disambiguates colliding titles: first with the capitalized
// parent folder name, then with a numeric suffix.
func uniqueHeader(doc *document.Document, used sets.Set[string]) string {
	name := doc.Title
	if !used.Has(strings.ToLower(name)) {
		used.Add(strings.ToLower(name))
		return name
	}

	if folder := doc.ParentFolder(); folder != "" {
		candidate := fmt.Sprintf("%s (%s)", doc.Title, folder)
		if !used.Has(strings.ToLower(candidate)) {
			used.Add(strings.ToLower(candidate))
			return candidate
		}
	}

	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s (%d)", doc.Title, i)
		if !used.Has(strings.ToLower(candidate)) {
			used.Add(strings.ToLower(candidate))
			return candidate
		}
	}
}

// stripLeadingTitleHeading drops the body's first line when it is a heading
// whose text equals the title; the section header replaces it.
func stripLeadingTitleHeading(content, title string) string {
	lines := strings.SplitN(content, "\n", 2)
	m := firstLineHeading.FindStringSubmatch(lines[0])
	if m == nil || strings.TrimSpace(m[2]) != strings.TrimSpace(title) {
		return content
	}
	if len(lines) == 1 {
		return ""
	}
	return strings.TrimLeft(lines[1], "\n")
}
