package render

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/llmstxt/internal/document"
	"git.home.luguber.info/inful/llmstxt/internal/util/sets"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// diacriticFolder decomposes and drops combining marks so "Ubersicht" comes
// out of "Übersicht" instead of a dash.
var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StandaloneFileName derives a collision-safe artifact name for doc.
//
// Name source priority: frontmatter slug, frontmatter id, sanitized title,
// sanitized source path. Exact collisions within used get a -2, -3, ...
// suffix. The chosen name (without extension) is recorded in used.
func StandaloneFileName(doc *document.Document, used sets.Set[string]) string {
	base := ""
	if slug, ok := doc.FrontMatter.Slug(); ok {
		base = Slugify(slug)
	}
	if base == "" {
		if id, ok := doc.FrontMatter.ID(); ok {
			base = Slugify(id)
		}
	}
	if base == "" {
		base = Slugify(doc.Title)
	}
	if base == "" {
		base = Slugify(strings.TrimSuffix(doc.SourcePath, ".md"))
	}
	if base == "" {
		base = "document"
	}

	name := base
	for i := 2; used.Has(name); i++ {
		name = fmt.Sprintf("%s-%d", base, i)
	}
	used.Add(name)
	return name + ".md"
}

// Slugify lowercases, folds diacritics and maps every non-alphanumeric run
// to a single dash.
func Slugify(s string) string {
	folded, _, err := transform.String(diacriticFolder, s)
	if err == nil {
		s = folded
	}
	s = strings.ToLower(s)
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// RenderStandalone emits the per-document cleaned file: title as H1,
// description as blockquote, optionally a preserved-frontmatter block, then
// the cleaned body.
func RenderStandalone(doc *document.Document, keepKeys []string) string {
	var sb strings.Builder

	if len(keepKeys) > 0 {
		if kept := doc.FrontMatter.Subset(keepKeys); len(kept) > 0 {
			if data, err := yaml.Marshal(map[string]any(kept)); err == nil {
				sb.WriteString("---\n")
				sb.Write(data)
				sb.WriteString("---\n\n")
			}
		}
	}

	fmt.Fprintf(&sb, "# %s\n\n", doc.Title)
	if doc.Description != "" {
		fmt.Fprintf(&sb, "> %s\n\n", doc.Description)
	}

	body := stripLeadingTitleHeading(doc.Content, doc.Title)
	sb.WriteString(strings.TrimSpace(body))
	sb.WriteString("\n")
	return sb.String()
}
