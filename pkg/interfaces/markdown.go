package interfaces

// MarkdownParser converts raw Markdown bytes into HTML. Implementations must
// be free of side effects so a single instance can be shared by every post in
// a compile run and swapped for a fixture renderer in tests.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown rendering. The zero value escapes raw HTML
// in the source, so it shows as text, and emits headings without id attributes.
type ParseOptions struct {
	Extensions []string `mapstructure:"extensions" json:"extensions,omitempty"`
	HardWraps  bool     `mapstructure:"hard_wraps" json:"hard_wraps,omitempty"`
	// AllowRawHTML passes raw HTML blocks through to the output untouched.
	AllowRawHTML bool `mapstructure:"allow_raw_html" json:"allow_raw_html,omitempty"`
	// HeadingIDs adds generated id attributes to headings.
	HeadingIDs bool `mapstructure:"heading_ids" json:"heading_ids,omitempty"`
}
