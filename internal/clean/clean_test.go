package clean

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClean_StripsKnownHTMLTags(t *testing.T) {
	body := "<div class=\"note\">Hello <strong>world</strong></div>\n\ntext"

	got := Clean(body, Options{})
	require.Equal(t, "Hello world\n\ntext", got)
}

func TestClean_PreservesAngleBracketsInCodeFences(t *testing.T) {
	body := "before <br/>\n\n```xml\n<project>\n  <artifactId>demo</artifactId>\n</project>\n```\n\nafter"

	got := Clean(body, Options{})
	require.Contains(t, got, "<project>")
	require.Contains(t, got, "<artifactId>demo</artifactId>")
	require.NotContains(t, got, "<br/>")
}

func TestClean_PreservesUnknownTags(t *testing.T) {
	body := "A <Tabs> element and a <customthing> stay"

	got := Clean(body, Options{})
	require.Equal(t, "A <Tabs> element and a <customthing> stay", got)
}

func TestClean_TildeFences(t *testing.T) {
	body := "~~~\n<div>kept</div>\n~~~"

	got := Clean(body, Options{})
	require.Contains(t, got, "<div>kept</div>")
}

func TestClean_RemoveImports_DropsImportLines(t *testing.T) {
	body := "import Foo from \"bar\";\n\n# X\n\nbody"

	got := Clean(body, Options{RemoveImports: true})
	require.Equal(t, "# X\n\nbody", got)
}

func TestClean_RemoveImportsDisabled_KeepsImportLines(t *testing.T) {
	body := "import Foo from \"bar\";\n\n# X\n\nbody"

	got := Clean(body, Options{})
	require.Equal(t, "import Foo from \"bar\";\n\n# X\n\nbody", got)
}

func TestClean_RemoveImports_AllForms(t *testing.T) {
	body := "import Foo from 'a'\n" +
		"  import { One, Two } from 'b';\n" +
		"import * as NS from 'c'\n" +
		"import Def, { Named } from 'd';\n" +
		"import './style.css';\n" +
		"keep this line"

	got := Clean(body, Options{RemoveImports: true})
	require.Equal(t, "keep this line", got)
}

func TestClean_RemoveImports_DoesNotDropProse(t *testing.T) {
	body := "We import data from the API."

	got := Clean(body, Options{RemoveImports: true})
	require.Equal(t, "We import data from the API.", got)
}

func TestClean_DedupHeadings_DropsRepeatedText(t *testing.T) {
	body := "# Configuration\n\nConfiguration\n\nreal text"

	got := Clean(body, Options{RemoveDuplicateHeadings: true})
	require.Equal(t, "# Configuration\n\nreal text", got)
}

func TestClean_DedupHeadings_KeepsSubHeadingOfSameText(t *testing.T) {
	body := "# Configuration\n\n## Configuration\n\ndetails"

	got := Clean(body, Options{RemoveDuplicateHeadings: true})
	require.Equal(t, "# Configuration\n\n## Configuration\n\ndetails", got)
}

func TestClean_DedupHeadingsDisabled_KeepsRepeatedText(t *testing.T) {
	body := "# Configuration\n\nConfiguration\n\nreal text"

	got := Clean(body, Options{})
	require.Equal(t, body, got)
}

func TestNormalizeWhitespace_CRLFAndNewlineRuns(t *testing.T) {
	got := NormalizeWhitespace("a\r\n\r\n\r\n\r\nb\n")
	require.Equal(t, "a\n\nb", got)
}

func TestClean_EmptyInput_NoOp(t *testing.T) {
	require.Equal(t, "", Clean("", Options{RemoveImports: true, RemoveDuplicateHeadings: true}))
}
