package config

// Root is one documentation source tree. Either a local directory under the
// base dir, or a git source cloned into an ephemeral workspace for the run.
type Root struct {
	// Dir is the directory relative to base_dir. It doubles as the corpus
	// path prefix for files found under it.
	Dir string `yaml:"dir,omitempty"`
	// Git, when set, fetches the root from a repository instead of the
	// local filesystem. Dir then only names the corpus prefix.
	Git *GitSource `yaml:"git,omitempty"`
}

// GitSource points at a repository subtree used as a documentation root.
type GitSource struct {
	URL  string `yaml:"url"`
	Ref  string `yaml:"ref,omitempty"`  // branch name; repository default when empty
	Path string `yaml:"path,omitempty"` // subdirectory within the checkout
}

// PathTransformation mirrors the URL derivation rules: segments to drop from
// logical paths and segments to prepend.
type PathTransformation struct {
	IgnorePaths []string `yaml:"ignore_paths,omitempty"`
	AddPaths    []string `yaml:"add_paths,omitempty"`
}

// CustomOutput defines one additional artifact beyond the standard pair.
type CustomOutput struct {
	FileName        string   `yaml:"filename"`
	IncludePatterns []string `yaml:"include_patterns,omitempty"`
	IgnorePatterns  []string `yaml:"ignore_patterns,omitempty"`
	OrderPatterns   []string `yaml:"order_patterns,omitempty"`
	// FullContent selects full-content rendering; false means a links file.
	FullContent bool `yaml:"full_content,omitempty"`

	Title                string `yaml:"title,omitempty"`
	Description          string `yaml:"description,omitempty"`
	Version              string `yaml:"version,omitempty"`
	RootContent          string `yaml:"root_content,omitempty"`
	IncludeUnmatchedLast *bool  `yaml:"include_unmatched_last,omitempty"`
}

// OutputTarget is the resolved shape the pipeline and renderer work with.
// The two standard targets and every custom target share it.
type OutputTarget struct {
	Name        string
	FileName    string
	FullContent bool

	Title       string
	Description string
	Version     string
	RootContent string

	IncludePatterns      []string
	IgnorePatterns       []string
	OrderPatterns        []string
	IncludeUnmatchedLast bool
}

// Config is the application configuration.
type Config struct {
	SiteURL     string `yaml:"site_url"`
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`
	Version     string `yaml:"version,omitempty"`

	BaseDir    string `yaml:"base_dir,omitempty"`
	DocsRoot   Root   `yaml:"docs_root,omitempty"`
	BlogRoot   *Root  `yaml:"blog_root,omitempty"`
	PathPrefix string `yaml:"path_prefix,omitempty"`

	OutputDir     string `yaml:"output_dir,omitempty"`
	LinksFile     string `yaml:"links_file,omitempty"`
	FullFile      string `yaml:"full_file,omitempty"`
	GenerateLinks *bool  `yaml:"generate_links,omitempty"`
	GenerateFull  *bool  `yaml:"generate_full,omitempty"`

	IgnoreFiles          []string            `yaml:"ignore_files,omitempty"`
	IncludeOrder         []string            `yaml:"include_order,omitempty"`
	IncludeUnmatchedLast *bool               `yaml:"include_unmatched_last,omitempty"`
	PathTransformation   *PathTransformation `yaml:"path_transformation,omitempty"`

	RemoveImports           bool `yaml:"remove_imports,omitempty"`
	RemoveDuplicateHeadings bool `yaml:"remove_duplicate_headings,omitempty"`

	GenerateMarkdownFiles bool     `yaml:"generate_markdown_files,omitempty"`
	MarkdownDir           string   `yaml:"markdown_dir,omitempty"`
	KeepFrontMatterKeys   []string `yaml:"keep_frontmatter_keys,omitempty"`

	RootContent     string `yaml:"root_content,omitempty"`
	FullRootContent string `yaml:"full_root_content,omitempty"`

	CustomOutputs []CustomOutput `yaml:"custom_outputs,omitempty"`

	// ResolvedURLs maps corpus-relative paths to host-resolved routes, used
	// preferentially over derived URLs.
	ResolvedURLs map[string]string `yaml:"resolved_urls,omitempty"`

	// StateFile enables the sqlite artifact state store when set.
	StateFile string `yaml:"state_file,omitempty"`
}

// GenerateLinksFile reports whether the standard link index is wanted.
func (c *Config) GenerateLinksFile() bool { return boolOr(c.GenerateLinks, true) }

// GenerateFullFile reports whether the standard full-content file is wanted.
func (c *Config) GenerateFullFile() bool { return boolOr(c.GenerateFull, true) }

// UnmatchedLast reports the global include-unmatched-last policy.
func (c *Config) UnmatchedLast() bool { return boolOr(c.IncludeUnmatchedLast, true) }

// Transformation returns the configured path transformation or its zero value.
func (c *Config) Transformation() PathTransformation {
	if c.PathTransformation == nil {
		return PathTransformation{}
	}
	return *c.PathTransformation
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
