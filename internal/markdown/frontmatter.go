package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// FrontMatter holds the raw metadata block of a document, keyed by field name.
type FrontMatter map[string]any

// Has reports whether key is present with a non-nil value.
func (fm FrontMatter) Has(key string) bool {
	if fm == nil {
		return false
	}
	value, ok := fm[key]
	return ok && value != nil
}

// Value returns the raw value stored under key.
func (fm FrontMatter) Value(key string) any {
	if fm == nil {
		return nil
	}
	return fm[key]
}

// ParseFrontMatter splits source into its metadata block and Markdown body.
// Documents without a front-matter block yield empty metadata and the full
// source as body.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	meta := FrontMatter{}
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta, body, nil
}
