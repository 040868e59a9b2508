package content

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is a JSON object that keeps its keys in source order. Values are
// held as raw JSON so re-encoding a record reproduces the author's data.
type Record struct {
	keys   []string
	values map[string]json.RawMessage
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: map[string]json.RawMessage{}}
}

// Has reports whether key is present, whatever its value.
func (r *Record) Has(key string) bool {
	if r == nil {
		return false
	}
	_, ok := r.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.keys...)
}

// Raw returns the undecoded value stored under key.
func (r *Record) Raw(key string) (json.RawMessage, bool) {
	if r == nil {
		return nil, false
	}
	value, ok := r.values[key]
	return value, ok
}

// Value decodes the value stored under key. Numbers decode to json.Number.
func (r *Record) Value(key string) (any, bool) {
	raw, ok := r.Raw(key)
	if !ok {
		return nil, false
	}
	value, err := decodeValue(raw)
	if err != nil {
		return nil, false
	}
	return value, true
}

// Set stores value under key. Existing keys keep their position.
func (r *Record) Set(key string, value any) error {
	raw, err := encodeValue(value)
	if err != nil {
		return fmt.Errorf("content: encode %q: %w", key, err)
	}
	r.setRaw(key, raw)
	return nil
}

func (r *Record) setRaw(key string, raw json.RawMessage) {
	if r.values == nil {
		r.values = map[string]json.RawMessage{}
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = raw
}

// UnmarshalJSON reads a JSON object. A repeated key keeps its first position
// and its last value.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrNotObject
	}

	r.keys = nil
	r.values = map[string]json.RawMessage{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("content: unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		r.setRaw(key, raw)
	}
	_, err = dec.Token()
	return err
}

// MarshalJSON writes the object with keys in insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if r != nil {
		for i, key := range r.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			encodedKey, err := encodeValue(key)
			if err != nil {
				return nil, err
			}
			buf.Write(encodedKey)
			buf.WriteByte(':')
			buf.Write(r.values[key])
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeValue(value any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func decodeValue(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	return value, nil
}
