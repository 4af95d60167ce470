package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "llmstxt.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "site_url: https://example.com\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ".", cfg.BaseDir)
	require.Equal(t, "docs", cfg.DocsRoot.Dir)
	require.Equal(t, "docs", cfg.PathPrefix)
	require.Equal(t, "llms.txt", cfg.LinksFile)
	require.Equal(t, "llms-full.txt", cfg.FullFile)
	require.True(t, cfg.GenerateLinksFile())
	require.True(t, cfg.GenerateFullFile())
	require.True(t, cfg.UnmatchedLast())
	require.Nil(t, cfg.BlogRoot)
}

func TestLoad_MissingSiteURL_Fails(t *testing.T) {
	path := writeConfig(t, "title: Docs\n")

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "site_url")
}

func TestLoad_MissingFile_Fails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_ExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("LLMSTXT_TEST_SITE", "https://env.example.com")
	path := writeConfig(t, "site_url: ${LLMSTXT_TEST_SITE}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://env.example.com", cfg.SiteURL)
}

func TestLoad_ExplicitFalseBooleans(t *testing.T) {
	path := writeConfig(t, `site_url: https://example.com
generate_links: false
include_unmatched_last: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.False(t, cfg.GenerateLinksFile())
	require.True(t, cfg.GenerateFullFile())
	require.False(t, cfg.UnmatchedLast())
}

func TestLoad_CustomOutputWithoutFilename_Fails(t *testing.T) {
	path := writeConfig(t, `site_url: https://example.com
custom_outputs:
  - full_content: true
`)

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "filename")
}

func TestTargets_StandardPairAndCustoms(t *testing.T) {
	cfg := &Config{
		SiteURL:     "https://example.com",
		Title:       "Docs",
		Description: "All the docs",
		Version:     "1.2.0",
		LinksFile:   "llms.txt",
		FullFile:    "llms-full.txt",
		IgnoreFiles: []string{"**/skip.md"},
		CustomOutputs: []CustomOutput{
			{FileName: "llms-api.txt", IncludePatterns: []string{"docs/api/**"}, FullContent: true, Title: "API"},
		},
	}

	targets := cfg.Targets()
	require.Len(t, targets, 3)

	require.Equal(t, "links", targets[0].Name)
	require.False(t, targets[0].FullContent)
	require.Equal(t, "full", targets[1].Name)
	require.True(t, targets[1].FullContent)

	api := targets[2]
	require.Equal(t, "llms-api.txt", api.FileName)
	require.Equal(t, "API", api.Title)
	require.Equal(t, "All the docs", api.Description)
	require.Equal(t, "1.2.0", api.Version)
	require.Equal(t, []string{"**/skip.md"}, api.IgnorePatterns)
	require.True(t, api.IncludeUnmatchedLast)
}

func TestTargets_GenerateFlagsDisableStandardTargets(t *testing.T) {
	no := false
	cfg := &Config{LinksFile: "llms.txt", FullFile: "llms-full.txt", GenerateLinks: &no, GenerateFull: &no}

	require.Empty(t, cfg.Targets())
}

func TestInit_WritesExampleAndRespectsForce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "llmstxt.yaml")

	require.NoError(t, Init(path, false))
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://example.com", cfg.SiteURL)
	require.Len(t, cfg.CustomOutputs, 1)
}
