// Package partials inlines fragment documents referenced through MDX import
// statements. A partial is a document whose filename starts with an
// underscore; such files never appear in the discovery corpus and are only
// ever reached from here.
package partials

import (
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/llmstxt/internal/frontmatter"
	"git.home.luguber.info/inful/llmstxt/internal/logfields"
	"git.home.luguber.info/inful/llmstxt/internal/util/sets"
)

// Binding is one detected partial import: an identifier bound to a target
// path. Detection is a separate parse step from substitution so the
// substitution loop stays simple and cycle guarding has a single place.
type Binding struct {
	Identifier string
	TargetPath string
	Statement  string
}

var importPattern = regexp.MustCompile(`(?m)^[ \t]*import[ \t]+([A-Za-z_$][\w$]*)[ \t]+from[ \t]+['"]([^'"]+)['"];?[ \t]*$`)

// ParseImports returns the partial bindings found in body. Imports whose
// target contains no underscore-prefixed filename segment are not partials
// and are left alone.
func ParseImports(body string) []Binding {
	matches := importPattern.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}

	bindings := make([]Binding, 0, len(matches))
	for _, m := range matches {
		if !hasPartialSegment(m[2]) {
			continue
		}
		bindings = append(bindings, Binding{Identifier: m[1], TargetPath: m[2], Statement: m[0]})
	}
	return bindings
}

func hasPartialSegment(target string) bool {
	for _, seg := range strings.Split(target, "/") {
		if strings.HasPrefix(seg, "_") {
			return true
		}
	}
	return false
}

// Resolver inlines partial content into importing documents.
type Resolver struct{}

// Resolve replaces partial imports in body with the referenced file content.
// sourceFilePath is the on-disk path of the importing document; targets
// resolve relative to its directory.
//
// Unresolvable references are non-fatal: the import statement and its usages
// stay untouched and a warning is logged. Import cycles are broken with a
// visited-path set; the offending reference is likewise left in place.
func (r *Resolver) Resolve(body, sourceFilePath string) string {
	return r.resolve(body, sourceFilePath, sets.New[string]())
}

func (r *Resolver) resolve(body, sourceFilePath string, visited sets.Set[string]) string {
	for _, b := range ParseImports(body) {
		target := filepath.Join(filepath.Dir(sourceFilePath), filepath.FromSlash(b.TargetPath))
		target = filepath.Clean(target)

		if visited.Has(target) {
			slog.Warn("Partial import cycle detected, leaving reference untouched",
				logfields.File(sourceFilePath), logfields.Path(b.TargetPath))
			continue
		}

		raw, err := os.ReadFile(target)
		if err != nil {
			slog.Warn("Failed to read partial, leaving reference untouched",
				logfields.File(sourceFilePath), logfields.Path(b.TargetPath), logfields.Error(err))
			continue
		}

		_, partialBody, _, err := frontmatter.Split(raw)
		if err != nil {
			// Unterminated frontmatter: inline the file as-is.
			partialBody = raw
		}

		visited.Add(target)
		content := r.resolve(strings.TrimSpace(string(partialBody)), target, visited)
		visited.Delete(target)

		body = removeStatement(body, b.Statement)
		body = replaceUsages(body, b.Identifier, content)
	}
	return body
}

// removeStatement drops the import line including its trailing newline.
func removeStatement(body, statement string) string {
	if idx := strings.Index(body, statement); idx >= 0 {
		end := idx + len(statement)
		if end < len(body) && body[end] == '\n' {
			end++
		}
		body = body[:idx] + body[end:]
	}
	return body
}

// replaceUsages substitutes every JSX-style usage of the identifier, both
// self-closing (<Ident />) and paired (<Ident>...</Ident>).
func replaceUsages(body, identifier, content string) string {
	ident := regexp.QuoteMeta(identifier)
	selfClosing := regexp.MustCompile(`<` + ident + `(?:\s[^>]*)?/>`)
	paired := regexp.MustCompile(`(?s)<` + ident + `(?:\s[^>]*)?>.*?</` + ident + `>`)

	body = selfClosing.ReplaceAllLiteralString(body, content)
	body = paired.ReplaceAllLiteralString(body, content)
	return body
}
