package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\nkey: value\n---\n# Title\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\n"), fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	input := []byte("---\nkey: value\n# Title\n")

	_, _, had, err := Split(input)
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\r\nkey: value\r\n---\r\n# Title\r\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\r\n"), fm)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestSplit_EmptyFrontmatterBlock_SplitsAsHadWithEmptyFrontmatter(t *testing.T) {
	input := []byte("---\n---\n# Title\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_ClosingDelimiterAtEOF_SplitsWithEmptyBody(t *testing.T) {
	input := []byte("---\nkey: value\n---")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\n"), fm)
	require.Empty(t, body)
}

func TestParseYAML_ValidYAML_ReturnsFields(t *testing.T) {
	fm := []byte("title: Intro\ntags:\n  - one\n")

	fields, err := ParseYAML(fm)
	require.NoError(t, err)
	title, ok := fields.Title()
	require.True(t, ok)
	require.Equal(t, "Intro", title)
	require.Equal(t, []any{"one"}, fields["tags"])
}

func TestParseYAML_Empty_ReturnsEmptyFields(t *testing.T) {
	fields, err := ParseYAML(nil)
	require.NoError(t, err)
	require.NotNil(t, fields)
	require.Empty(t, fields)
}

func TestFields_Draft_StrictBooleanOnly(t *testing.T) {
	require.True(t, Fields{"draft": true}.Draft())
	require.False(t, Fields{"draft": false}.Draft())
	require.False(t, Fields{"draft": "true"}.Draft())
	require.False(t, Fields{"draft": 1}.Draft())
	require.False(t, Fields{}.Draft())
}

func TestFields_String_TrimsAndRejectsNonStrings(t *testing.T) {
	f := Fields{"title": "  Intro  ", "weight": 3, "empty": "   "}

	title, ok := f.String("title")
	require.True(t, ok)
	require.Equal(t, "Intro", title)

	_, ok = f.String("weight")
	require.False(t, ok)

	_, ok = f.String("empty")
	require.False(t, ok)

	_, ok = f.String("missing")
	require.False(t, ok)
}

func TestFields_Subset_KeepsOnlyRequestedKeys(t *testing.T) {
	f := Fields{"title": "Intro", "sidebar": 2, "draft": false}

	sub := f.Subset([]string{"title", "sidebar", "missing"})
	require.Equal(t, Fields{"title": "Intro", "sidebar": 2}, sub)
}
