package document

import "errors"

var (
	// ErrFileReadFailed indicates reading a source file failed.
	ErrFileReadFailed = errors.New("source file read failed")

	// ErrFrontmatterParse indicates the frontmatter block is not valid YAML.
	ErrFrontmatterParse = errors.New("frontmatter parse failed")

	// ErrUnknownRoot indicates a corpus path whose first segment matches no
	// configured root.
	ErrUnknownRoot = errors.New("corpus path outside configured roots")
)
