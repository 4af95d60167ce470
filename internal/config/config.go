package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load loads configuration from the specified file.
//
// Environment variables from .env/.env.local are loaded first (existing
// process environment wins), then ${VAR} references in the YAML are expanded
// before parsing, so tokens and site URLs can stay out of the config file.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadEnvFiles loads the first readable env file. godotenv never overrides
// variables already present in the process environment.
func loadEnvFiles() {
	for _, p := range []string{".env", ".env.local"} {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err == nil {
			fmt.Fprintf(os.Stderr, "Loaded environment variables from %s\n", p)
			return
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.BaseDir == "" {
		cfg.BaseDir = "."
	}
	if cfg.DocsRoot.Dir == "" {
		cfg.DocsRoot.Dir = "docs"
	}
	if cfg.BlogRoot != nil && cfg.BlogRoot.Dir == "" {
		cfg.BlogRoot.Dir = "blog"
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = "docs"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.LinksFile == "" {
		cfg.LinksFile = "llms.txt"
	}
	if cfg.FullFile == "" {
		cfg.FullFile = "llms-full.txt"
	}
	if cfg.Title == "" {
		cfg.Title = "Documentation"
	}
	if cfg.MarkdownDir == "" {
		cfg.MarkdownDir = "markdown"
	}
}

func validate(cfg *Config) error {
	if cfg.SiteURL == "" {
		return fmt.Errorf("site_url is required")
	}
	for i, custom := range cfg.CustomOutputs {
		if custom.FileName == "" {
			return fmt.Errorf("custom_outputs[%d]: filename is required", i)
		}
	}
	return nil
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		SiteURL:     "https://example.com",
		Title:       "My Project Documentation",
		Description: "Documentation for My Project",
		DocsRoot:    Root{Dir: "docs"},
		PathPrefix:  "docs",
		OutputDir:   "build",
		IgnoreFiles: []string{"**/CHANGELOG.md"},
		CustomOutputs: []CustomOutput{
			{
				FileName:        "llms-api.txt",
				IncludePatterns: []string{"docs/api/**"},
				FullContent:     true,
				Title:           "API Reference",
			},
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
