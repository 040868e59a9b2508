package content

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LatestResumeName is the alias under which the current resume is published.
const LatestResumeName = "resume-latest.pdf"

// ResumeVersion is one entry of ResumeMetadata.Versions.
type ResumeVersion struct {
	Version  any    `json:"version"`
	Filename string `json:"filename"`
}

// ResumeMetadata describes the available resume binaries. Raw keeps the
// document as authored so it can be republished unchanged.
type ResumeMetadata struct {
	CurrentVersion any
	Versions       []ResumeVersion
	Raw            json.RawMessage
}

// ParseResumeMetadata decodes the resume metadata document. Documents that
// are not objects decode to an empty ResumeMetadata. The versions list is
// read leniently: entries that cannot be decoded are ignored.
func ParseResumeMetadata(data []byte) (*ResumeMetadata, error) {
	raw, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("content: decode resume metadata: %w", err)
	}
	meta := &ResumeMetadata{Raw: raw}

	record := NewRecord()
	if err := record.UnmarshalJSON(raw); err != nil {
		return meta, nil
	}
	meta.CurrentVersion, _ = record.Value("current_version")

	if versions, ok := record.Raw("versions"); ok {
		var entries []json.RawMessage
		if err := json.Unmarshal(versions, &entries); err == nil {
			for _, entry := range entries {
				var v ResumeVersion
				dec := json.NewDecoder(bytes.NewReader(entry))
				dec.UseNumber()
				if err := dec.Decode(&v); err != nil {
					continue
				}
				meta.Versions = append(meta.Versions, v)
			}
		}
	}
	return meta, nil
}

// HasCurrentVersion reports whether a usable current_version is declared.
func (m *ResumeMetadata) HasCurrentVersion() bool {
	return m != nil && !falsy(normalizeNumber(m.CurrentVersion))
}

// CurrentFilename resolves current_version against the versions list. The
// comparison is type sensitive: a string version never matches a number.
func (m *ResumeMetadata) CurrentFilename() (string, bool) {
	if !m.HasCurrentVersion() {
		return "", false
	}
	for _, v := range m.Versions {
		if sameScalar(v.Version, m.CurrentVersion) {
			return v.Filename, v.Filename != ""
		}
	}
	return "", false
}

func sameScalar(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case json.Number:
		bv, ok := b.(json.Number)
		if !ok {
			return false
		}
		af, aerr := av.Float64()
		bf, berr := bv.Float64()
		if aerr != nil || berr != nil {
			return av == bv
		}
		return af == bf
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}
	return false
}

func normalizeNumber(value any) any {
	if n, ok := value.(json.Number); ok {
		f, err := n.Float64()
		if err != nil {
			return n.String()
		}
		return f
	}
	return value
}
