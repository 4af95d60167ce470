package config

// Targets returns the resolved output targets in emission order: the
// standard link index, the standard full-content file, then every custom
// output. Custom targets inherit global title/description/version and the
// global ignore list unless they override them.
func (c *Config) Targets() []OutputTarget {
	targets := make([]OutputTarget, 0, 2+len(c.CustomOutputs))

	if c.GenerateLinksFile() {
		targets = append(targets, OutputTarget{
			Name:                 "links",
			FileName:             c.LinksFile,
			FullContent:          false,
			Title:                c.Title,
			Description:          c.Description,
			Version:              c.Version,
			RootContent:          c.RootContent,
			IgnorePatterns:       c.IgnoreFiles,
			OrderPatterns:        c.IncludeOrder,
			IncludeUnmatchedLast: c.UnmatchedLast(),
		})
	}

	if c.GenerateFullFile() {
		targets = append(targets, OutputTarget{
			Name:                 "full",
			FileName:             c.FullFile,
			FullContent:          true,
			Title:                c.Title,
			Description:          c.Description,
			Version:              c.Version,
			RootContent:          c.FullRootContent,
			IgnorePatterns:       c.IgnoreFiles,
			OrderPatterns:        c.IncludeOrder,
			IncludeUnmatchedLast: c.UnmatchedLast(),
		})
	}

	for _, custom := range c.CustomOutputs {
		t := OutputTarget{
			Name:                 custom.FileName,
			FileName:             custom.FileName,
			FullContent:          custom.FullContent,
			Title:                stringOr(custom.Title, c.Title),
			Description:          stringOr(custom.Description, c.Description),
			Version:              stringOr(custom.Version, c.Version),
			RootContent:          custom.RootContent,
			IncludePatterns:      custom.IncludePatterns,
			IgnorePatterns:       append(append([]string{}, c.IgnoreFiles...), custom.IgnorePatterns...),
			OrderPatterns:        custom.OrderPatterns,
			IncludeUnmatchedLast: boolOr(custom.IncludeUnmatchedLast, c.UnmatchedLast()),
		}
		targets = append(targets, t)
	}

	return targets
}

func stringOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
