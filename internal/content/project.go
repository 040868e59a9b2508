package content

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
)

// Project kinds.
const (
	KindProject      = "project"
	KindExperimental = "experimental"
)

// Project is one entry of the combined project list. Items that are JSON
// objects carry a Record; anything else is kept verbatim so the aggregate
// reproduces the source.
type Project struct {
	record *Record
	raw    json.RawMessage
}

// NewProject wraps a record.
func NewProject(record *Record) Project {
	if record == nil {
		record = NewRecord()
	}
	return Project{record: record}
}

// Record returns the underlying object, or nil for non-object items.
func (p Project) Record() *Record {
	return p.record
}

// ID returns the addressable id of the project. The id key must be present
// and its value must be a string, number or boolean whose text form is a
// SafeName.
func (p Project) ID() (string, error) {
	if p.record == nil {
		return "", ErrNotObject
	}
	value, ok := p.record.Value("id")
	if !ok {
		return "", ErrMissingID
	}
	var id string
	switch v := value.(type) {
	case string:
		id = v
	case json.Number:
		id = v.String()
	case bool:
		id = cast.ToString(v)
	default:
		return "", fmt.Errorf("%w: %v", ErrUnsafeID, value)
	}
	if !SafeName(id) {
		return "", fmt.Errorf("%w: %q", ErrUnsafeID, id)
	}
	return id, nil
}

// Kind returns the kind field as a string, empty when absent.
func (p Project) Kind() string {
	value, ok := p.record.Value("kind")
	if !ok {
		return ""
	}
	return cast.ToString(value)
}

// Featured reports the featured flag using the same coercion as posts.
func (p Project) Featured() bool {
	value, _ := p.record.Value("featured")
	if n, ok := value.(json.Number); ok {
		value = n.String()
	}
	return flag(value)
}

// DefaultKind sets kind when the key is absent.
func (p Project) DefaultKind(kind string) error {
	if p.record == nil || p.record.Has("kind") {
		return nil
	}
	return p.record.Set("kind", kind)
}

// Fields decodes the project into a plain map, nil for non-object items.
func (p Project) Fields() map[string]any {
	if p.record == nil {
		return nil
	}
	out := make(map[string]any, len(p.record.keys))
	for _, key := range p.record.keys {
		value, _ := p.record.Value(key)
		out[key] = value
	}
	return out
}

// MarshalJSON writes the project as it was read, plus any defaults applied.
func (p Project) MarshalJSON() ([]byte, error) {
	if p.record != nil {
		return p.record.MarshalJSON()
	}
	if len(p.raw) == 0 {
		return []byte("null"), nil
	}
	return p.raw, nil
}

// UnmarshalJSON accepts any JSON value.
func (p *Project) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		record := NewRecord()
		if err := record.UnmarshalJSON(trimmed); err != nil {
			return err
		}
		p.record = record
		p.raw = nil
		return nil
	}
	p.record = nil
	p.raw = append(json.RawMessage(nil), trimmed...)
	return nil
}

// ParseProjects decodes a JSON array of projects.
func ParseProjects(data []byte) ([]Project, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}
	var items []Project
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("content: decode projects: %w", err)
	}
	if items == nil {
		items = []Project{}
	}
	return items, nil
}
