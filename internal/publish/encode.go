package publish

import (
	"bytes"
	"encoding/json"
)

// EncodeJSON renders value the way published documents are stored: two
// space indentation, no HTML escaping and no trailing newline.
func EncodeJSON(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
