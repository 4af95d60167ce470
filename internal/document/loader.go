package document

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/llmstxt/internal/clean"
	"git.home.luguber.info/inful/llmstxt/internal/frontmatter"
	"git.home.luguber.info/inful/llmstxt/internal/markdown"
	"git.home.luguber.info/inful/llmstxt/internal/partials"
	"git.home.luguber.info/inful/llmstxt/internal/urlpath"
)

// Loader builds Documents from corpus-relative paths.
//
// Dirs maps the first path segment of a corpus path (the root prefix, e.g.
// "docs" or "blog") to the on-disk directory holding that root's files.
type Loader struct {
	Dirs         map[string]string
	SiteURL      string
	PathPrefix   string
	PathRules    urlpath.Rules
	CleanOptions clean.Options
	// ResolvedURLs maps corpus paths to host routes, preferred over
	// derivation.
	ResolvedURLs map[string]string
	Partials     *partials.Resolver
}

// Heading markers count only at line start followed by whitespace; an inline
// `#` is content.
var leadingHeadingMarker = regexp.MustCompile(`(?m)^#{1,6}[ \t]+`)

// Load reads, resolves and cleans one source file.
//
// A draft document (frontmatter `draft: true`, strict boolean) returns
// (nil, nil): skipped, not an error. All real failures return an error the
// caller is expected to absorb per file.
func (l *Loader) Load(relPath string) (*Document, error) {
	fullPath, err := l.diskPath(relPath)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileReadFailed, relPath, err)
	}

	fmRaw, body, _, err := frontmatter.Split(raw)
	if err != nil {
		// Unterminated frontmatter: treat the whole file as body.
		fmRaw, body = nil, raw
	}

	fields, err := frontmatter.ParseYAML(fmRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFrontmatterParse, relPath, err)
	}

	if fields.Draft() {
		return nil, nil
	}

	content := string(body)
	if l.Partials != nil {
		content = l.Partials.Resolve(content, fullPath)
	}
	content = clean.Clean(content, l.CleanOptions)

	doc := &Document{
		Title:       l.deriveTitle(fields, content, relPath),
		SourcePath:  relPath,
		URL:         l.deriveURL(relPath),
		Content:     content,
		Description: l.deriveDescription(fields, content),
		FrontMatter: fields,
	}
	return doc, nil
}

func (l *Loader) diskPath(relPath string) (string, error) {
	prefix := relPath
	rest := ""
	if idx := strings.Index(relPath, "/"); idx >= 0 {
		prefix, rest = relPath[:idx], relPath[idx+1:]
	}
	dir, ok := l.Dirs[prefix]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownRoot, relPath)
	}
	return filepath.Join(dir, filepath.FromSlash(rest)), nil
}

func (l *Loader) deriveURL(relPath string) string {
	if route, ok := l.ResolvedURLs[relPath]; ok && route != "" {
		return urlpath.JoinSite(l.SiteURL, route)
	}
	return urlpath.DeriveURL(relPath, l.SiteURL, l.PathPrefix, l.PathRules)
}

func (l *Loader) deriveTitle(fields frontmatter.Fields, content, relPath string) string {
	if title, ok := fields.Title(); ok {
		return title
	}
	if h1, ok := markdown.FirstHeading([]byte(content), 1); ok && h1 != "" {
		return h1
	}

	name := path.Base(relPath)
	name = strings.TrimSuffix(name, path.Ext(name))
	if name == "index" {
		if dir := path.Base(path.Dir(relPath)); dir != "." && dir != "/" {
			name = dir
		}
	}
	return TitleCase(name)
}

func (l *Loader) deriveDescription(fields frontmatter.Fields, content string) string {
	if desc, ok := fields.Description(); ok {
		return StripHeadingMarkers(desc)
	}
	if para, ok := markdown.FirstParagraph([]byte(content)); ok {
		return StripHeadingMarkers(para)
	}
	if heading, ok := markdown.FirstHeading([]byte(content), 0); ok {
		return heading
	}
	return ""
}

// StripHeadingMarkers removes `#` heading prefixes from line starts. Inline
// `#` characters are preserved.
func StripHeadingMarkers(s string) string {
	return strings.TrimSpace(leadingHeadingMarker.ReplaceAllString(s, ""))
}
