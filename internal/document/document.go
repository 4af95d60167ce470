// Package document turns one source file into the canonical record the
// aggregation pipeline operates on.
package document

import (
	"strings"

	"git.home.luguber.info/inful/llmstxt/internal/frontmatter"
)

// Document is the canonical unit produced by loading a source file.
// It is immutable after load; the renderer only ever reads it.
//
// A Document is never constructed for a source whose frontmatter marks it as
// a draft.
type Document struct {
	// Title resolution order: frontmatter, first H1, filename.
	Title string
	// SourcePath is the corpus-relative path, forward-slash normalized.
	SourcePath string
	// URL is the absolute document URL (host-resolved route when available,
	// derived otherwise).
	URL string
	// Content is the cleaned body with partials inlined.
	Content string
	// Description resolution order: frontmatter, first non-heading
	// paragraph, first heading text.
	Description string
	// FrontMatter keeps the parsed fields for optional pass-through.
	FrontMatter frontmatter.Fields
}

// ParentFolder returns the capitalized name of the document's immediate
// parent directory, or "" for root-level documents. Used for section header
// disambiguation.
func (d *Document) ParentFolder() string {
	p := d.SourcePath
	idx := strings.LastIndex(p, "/")
	if idx < 0 {
		return ""
	}
	dir := p[:idx]
	if j := strings.LastIndex(dir, "/"); j >= 0 {
		dir = dir[j+1:]
	}
	if dir == "" {
		return ""
	}
	return strings.ToUpper(dir[:1]) + dir[1:]
}

// TitleCase derives a display title from a file name: separators become
// spaces and each word is capitalized.
func TitleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
