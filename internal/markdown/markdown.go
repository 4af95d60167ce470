package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ParseBody parses a Markdown body (frontmatter already removed) into a
// Goldmark AST.
func ParseBody(body []byte) gmast.Node {
	md := goldmark.New()
	return md.Parser().Parse(text.NewReader(body))
}

// FirstHeading returns the raw text of the first heading at the given level.
// level 0 matches any heading level.
//
// This is an analysis API; it does not attempt to re-render Markdown.
func FirstHeading(body []byte, level int) (string, bool) {
	root := ParseBody(body)

	var found string
	ok := false
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering || ok {
			return gmast.WalkContinue, nil
		}
		if h, isHeading := n.(*gmast.Heading); isHeading {
			if level == 0 || h.Level == level {
				found = nodeText(h, body)
				ok = true
				return gmast.WalkStop, nil
			}
		}
		return gmast.WalkContinue, nil
	})
	return found, ok
}

// FirstParagraph returns the raw text of the first top-level paragraph.
// Headings, HTML blocks and JSX element blocks are not paragraphs and are
// skipped.
func FirstParagraph(body []byte) (string, bool) {
	root := ParseBody(body)

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if p, isPara := n.(*gmast.Paragraph); isPara {
			if txt := nodeText(p, body); txt != "" {
				return txt, true
			}
		}
	}
	return "", false
}

// nodeText joins the source line segments backing a block node. Goldmark's
// segments exclude block markers (the `#` prefix of ATX headings), which is
// exactly what callers here want.
func nodeText(n gmast.Node, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return strings.TrimSpace(sb.String())
}
