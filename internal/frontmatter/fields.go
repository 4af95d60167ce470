package frontmatter

import "strings"

// Fields is parsed frontmatter: a small set of well-known keys plus whatever
// else the author wrote. Accessors never assume presence.
type Fields map[string]any

// String returns the value for key when it is a non-empty string.
func (f Fields) String(key string) (string, bool) {
	v, ok := f[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// Title returns the frontmatter title, if present.
func (f Fields) Title() (string, bool) { return f.String("title") }

// Description returns the frontmatter description, if present.
func (f Fields) Description() (string, bool) { return f.String("description") }

// Slug returns the frontmatter slug, if present.
func (f Fields) Slug() (string, bool) { return f.String("slug") }

// ID returns the frontmatter id, if present.
func (f Fields) ID() (string, bool) { return f.String("id") }

// Draft reports whether the document is marked as a draft.
//
// Only the exact YAML boolean true counts; the string "true" does not
// exclude a document.
func (f Fields) Draft() bool {
	v, ok := f["draft"]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// Subset returns a copy containing only the requested keys (missing keys are
// skipped). Used when preserving caller-selected frontmatter on emitted files.
func (f Fields) Subset(keys []string) Fields {
	out := Fields{}
	for _, k := range keys {
		if v, ok := f[k]; ok {
			out[k] = v
		}
	}
	return out
}
