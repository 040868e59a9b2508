package content

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/goliatone/go-portfolio/internal/dates"
)

// Post is the published form of a Markdown post. Field order defines the
// order of keys in the emitted JSON.
type Post struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Excerpt     string `json:"excerpt"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Featured    bool   `json:"featured"`
	ContentHTML string `json:"content_html"`
}

// NewPost builds a Post from front-matter metadata and the rendered body.
// A nil or absent id yields ErrMissingID and an id that cannot name a file
// yields ErrUnsafeID. All other fields degrade to their zero values.
func NewPost(meta map[string]any, html []byte) (Post, error) {
	raw, ok := meta["id"]
	if !ok || raw == nil {
		return Post{}, ErrMissingID
	}
	id, err := cast.ToStringE(raw)
	if err != nil || !SafeName(id) {
		return Post{}, fmt.Errorf("%w: %v", ErrUnsafeID, raw)
	}

	return Post{
		ID:          id,
		Title:       text(meta["title"]),
		Excerpt:     text(meta["excerpt"]),
		Category:    text(meta["category"]),
		Date:        dates.Format(meta["date"]),
		Featured:    flag(meta["featured"]),
		ContentHTML: string(html),
	}, nil
}

// text coerces a metadata value to a string. Empty or false-like values
// become the empty string. Lists join their elements with commas, so
// `title: [a, b]` reads "a,b". Maps have no string form and become "".
func text(value any) string {
	if falsy(value) {
		return ""
	}
	return stringify(value)
}

// stringify is text without the false-like check, so list elements such as
// false or 0 keep their literal form.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []string:
		return strings.Join(v, ",")
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = stringify(item)
		}
		return strings.Join(parts, ",")
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return ""
	}
	return s
}

func flag(value any) bool {
	if falsy(value) {
		return false
	}
	b, err := cast.ToBoolE(value)
	if err != nil {
		return false
	}
	return b
}

func falsy(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	}
	f, err := cast.ToFloat64E(value)
	return err == nil && f == 0
}
