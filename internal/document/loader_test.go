package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/llmstxt/internal/clean"
	"git.home.luguber.info/inful/llmstxt/internal/partials"
)

func newTestLoader(t *testing.T) (*Loader, string) {
	t.Helper()
	dir := t.TempDir()
	loader := &Loader{
		Dirs:       map[string]string{"docs": dir},
		SiteURL:    "https://example.com",
		PathPrefix: "docs",
		Partials:   &partials.Resolver{},
	}
	return loader, dir
}

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_TitleFromFrontmatter(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeDoc(t, dir, "intro.md", "---\ntitle: Getting Started\n---\n# Different Heading\n\nbody\n")

	doc, err := loader.Load("docs/intro.md")
	require.NoError(t, err)
	require.Equal(t, "Getting Started", doc.Title)
}

func TestLoad_TitleFromFirstH1(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeDoc(t, dir, "intro.md", "# From Heading\n\nbody\n")

	doc, err := loader.Load("docs/intro.md")
	require.NoError(t, err)
	require.Equal(t, "From Heading", doc.Title)
}

func TestLoad_TitleFromFilename(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeDoc(t, dir, "getting-started.md", "plain text only\n")

	doc, err := loader.Load("docs/getting-started.md")
	require.NoError(t, err)
	require.Equal(t, "Getting Started", doc.Title)
}

func TestLoad_DraftTrue_ReturnsNil(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeDoc(t, dir, "wip.md", "---\ndraft: true\n---\n# WIP\n")

	doc, err := loader.Load("docs/wip.md")
	require.NoError(t, err)
	require.Nil(t, doc)
}

func TestLoad_DraftStringTrue_IsNotExcluded(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeDoc(t, dir, "wip.md", "---\ndraft: \"true\"\n---\n# Kept\n")

	doc, err := loader.Load("docs/wip.md")
	require.NoError(t, err)
	require.NotNil(t, doc)
	require.Equal(t, "Kept", doc.Title)
}

func TestLoad_DescriptionFromFrontmatter_PreservesInlineHash(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeDoc(t, dir, "a.md", "---\ndescription: \"Learn about the # symbol\"\n---\nbody\n")

	doc, err := loader.Load("docs/a.md")
	require.NoError(t, err)
	require.Equal(t, "Learn about the # symbol", doc.Description)
}

func TestLoad_DescriptionFromFrontmatter_StripsLeadingMarker(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeDoc(t, dir, "a.md", "---\ndescription: \"# Title\"\n---\nbody\n")

	doc, err := loader.Load("docs/a.md")
	require.NoError(t, err)
	require.Equal(t, "Title", doc.Description)
}

func TestLoad_DescriptionFromFirstParagraph(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeDoc(t, dir, "a.md", "# Heading\n\nFirst real paragraph.\n")

	doc, err := loader.Load("docs/a.md")
	require.NoError(t, err)
	require.Equal(t, "First real paragraph.", doc.Description)
}

func TestLoad_DescriptionFallsBackToFirstHeading(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeDoc(t, dir, "a.md", "## Only A Heading\n")

	doc, err := loader.Load("docs/a.md")
	require.NoError(t, err)
	require.Equal(t, "Only A Heading", doc.Description)
}

func TestLoad_URLDerivedFromPath(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeDoc(t, dir, "guide/setup.md", "# Setup\n")

	doc, err := loader.Load("docs/guide/setup.md")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/docs/guide/setup", doc.URL)
}

func TestLoad_URLPrefersResolvedRoute(t *testing.T) {
	loader, dir := newTestLoader(t)
	loader.ResolvedURLs = map[string]string{"docs/guide/setup.md": "/docs/custom-route"}
	writeDoc(t, dir, "guide/setup.md", "# Setup\n")

	doc, err := loader.Load("docs/guide/setup.md")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/docs/custom-route", doc.URL)
}

func TestLoad_PartialInlinedBeforeCleaning(t *testing.T) {
	loader, dir := newTestLoader(t)
	loader.CleanOptions = clean.Options{RemoveImports: true}
	writeDoc(t, dir, "_shared.mdx", "<div>shared body</div>\n")
	writeDoc(t, dir, "page.mdx", "import S from './_shared.mdx'\n\n# Page\n\n<S />\n")

	doc, err := loader.Load("docs/page.mdx")
	require.NoError(t, err)
	// The inlined partial content was itself cleaned: its div wrapper is gone.
	require.Contains(t, doc.Content, "shared body")
	require.NotContains(t, doc.Content, "<div>")
	require.NotContains(t, doc.Content, "import S")
}

func TestLoad_InvalidFrontmatterYAML_ReturnsError(t *testing.T) {
	loader, dir := newTestLoader(t)
	writeDoc(t, dir, "bad.md", "---\ntitle: [unclosed\n---\nbody\n")

	_, err := loader.Load("docs/bad.md")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrFrontmatterParse)
}

func TestLoad_MissingFile_ReturnsError(t *testing.T) {
	loader, _ := newTestLoader(t)

	_, err := loader.Load("docs/absent.md")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrFileReadFailed)
}

func TestLoad_UnknownRoot_ReturnsError(t *testing.T) {
	loader, _ := newTestLoader(t)

	_, err := loader.Load("elsewhere/file.md")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnknownRoot)
}

func TestParentFolder(t *testing.T) {
	require.Equal(t, "Advanced", (&Document{SourcePath: "docs/advanced/configuration.md"}).ParentFolder())
	require.Equal(t, "Docs", (&Document{SourcePath: "docs/configuration.md"}).ParentFolder())
	require.Equal(t, "", (&Document{SourcePath: "configuration.md"}).ParentFolder())
}
