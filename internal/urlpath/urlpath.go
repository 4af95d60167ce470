// Package urlpath maps logical document paths to canonical URL paths.
//
// All functions are pure over their inputs: malformed paths transform
// literally rather than erroring, so callers never need an error branch.
package urlpath

import (
	"path"
	"strings"
)

// Rules controls path transformation.
//
// IgnorePaths lists segments removed wherever they appear as a complete path
// segment. AddPaths lists segments prepended in the order given, so the first
// entry ends up outermost.
type Rules struct {
	IgnorePaths []string
	AddPaths    []string
}

// IsZero reports whether no transformation is configured.
func (r Rules) IsZero() bool { return len(r.IgnorePaths) == 0 && len(r.AddPaths) == 0 }

// Ignores reports whether seg is listed in IgnorePaths.
func (r Rules) Ignores(seg string) bool {
	for _, s := range r.IgnorePaths {
		if s == seg {
			return true
		}
	}
	return false
}

// Transform applies the ignore/add rules to a slash-separated path.
// With zero rules it is the identity.
func Transform(p string, rules Rules) string {
	out := p
	for _, seg := range rules.IgnorePaths {
		out = removeSegment(out, seg)
	}
	for strings.Contains(out, "//") {
		out = strings.ReplaceAll(out, "//", "/")
	}
	out = strings.TrimPrefix(out, "/")

	// Prepend in reverse so the first configured segment is leftmost.
	for i := len(rules.AddPaths) - 1; i >= 0; i-- {
		seg := strings.Trim(rules.AddPaths[i], "/")
		if seg == "" {
			continue
		}
		if out == seg || strings.HasPrefix(out, seg+"/") {
			continue
		}
		if out == "" {
			out = seg
		} else {
			out = seg + "/" + out
		}
	}
	return out
}

// removeSegment strips every occurrence of seg as a complete path segment,
// repeating until none remain.
func removeSegment(p, seg string) string {
	if seg == "" {
		return p
	}
	for {
		switch {
		case p == seg:
			p = ""
		case strings.HasPrefix(p, seg+"/"):
			p = p[len(seg)+1:]
		case strings.HasSuffix(p, "/"+seg):
			p = p[:len(p)-len(seg)-1]
		case strings.Contains(p, "/"+seg+"/"):
			p = strings.Replace(p, "/"+seg+"/", "/", 1)
		default:
			return p
		}
	}
}

// DeriveURL derives the canonical absolute URL for a corpus-relative document
// path when the host did not resolve a route for it.
//
// The markdown extension is stripped, an index leaf collapses into its
// directory, the configured prefix is stripped and re-added (unless the
// transformation rules ignore it), and the transformation rules are applied.
func DeriveURL(relPath, siteURL, pathPrefix string, rules Rules) string {
	p := strings.ReplaceAll(relPath, "\\", "/")
	p = stripMarkdownExt(p)

	if path.Base(p) == "index" {
		p = path.Dir(p)
		if p == "." {
			p = ""
		}
	}

	// Only the leading prefix is stripped; a deeper segment that happens to
	// share the prefix name belongs to the document's own route.
	if pathPrefix != "" {
		if p == pathPrefix {
			p = ""
		} else {
			p = strings.TrimPrefix(p, pathPrefix+"/")
		}
	}

	p = Transform(p, rules)

	if pathPrefix != "" && !rules.Ignores(pathPrefix) {
		if p == "" {
			p = pathPrefix
		} else if p != pathPrefix && !strings.HasPrefix(p, pathPrefix+"/") {
			p = pathPrefix + "/" + p
		}
	}

	base := strings.TrimSuffix(siteURL, "/")
	if p == "" {
		return base + "/"
	}
	return base + "/" + p
}

// JoinSite resolves a host-provided route against the site URL. Absolute
// routes pass through untouched.
func JoinSite(siteURL, route string) string {
	if strings.HasPrefix(route, "http://") || strings.HasPrefix(route, "https://") {
		return route
	}
	return strings.TrimSuffix(siteURL, "/") + "/" + strings.TrimPrefix(route, "/")
}

func stripMarkdownExt(p string) string {
	for _, ext := range []string{".mdx", ".markdown", ".md"} {
		if strings.HasSuffix(p, ext) {
			return strings.TrimSuffix(p, ext)
		}
	}
	return p
}
