package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// PayloadValidationError surfaces validation issues with schema-aware context.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// Schema is a compiled JSON schema used to check published records.
type Schema struct {
	name     string
	compiled *jsonschema.Schema
}

// Compile compiles a JSON schema document.
func Compile(name string, document map[string]any) (*Schema, error) {
	compiled, err := compileSchema(name, document)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, name, err)
	}
	return &Schema{name: name, compiled: compiled}, nil
}

// Name returns the schema name.
func (s *Schema) Name() string {
	return s.name
}

// Validate checks a decoded JSON value. Numbers may be float64 or
// json.Number.
func (s *Schema) Validate(value any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	if err := s.compiled.Validate(value); err != nil {
		return &PayloadValidationError{
			Issues: Issues(err),
			Cause:  err,
		}
	}
	return nil
}

// ValidateJSON decodes data and validates the result.
func (s *Schema) ValidateJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return &PayloadValidationError{
			Issues: []ValidationIssue{{Message: err.Error()}},
			Cause:  err,
		}
	}
	return s.Validate(value)
}

var (
	builtinOnce     sync.Once
	projectSchema   *Schema
	timelineSchema  *Schema
	errBuiltinBuild error
)

// ProjectSchema returns the schema project records are checked against.
func ProjectSchema() (*Schema, error) {
	builtinOnce.Do(buildBuiltins)
	return projectSchema, errBuiltinBuild
}

// TimelineSchema returns the schema timeline items are checked against.
func TimelineSchema() (*Schema, error) {
	builtinOnce.Do(buildBuiltins)
	return timelineSchema, errBuiltinBuild
}

func buildBuiltins() {
	stringList := map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
	projectSchema, errBuiltinBuild = Compile("project.json", map[string]any{
		"type":     "object",
		"required": []any{"id", "title"},
		"properties": map[string]any{
			"id":              map[string]any{"type": []any{"string", "number"}},
			"kind":            map[string]any{"enum": []any{"project", "experimental"}},
			"title":           map[string]any{"type": "string"},
			"description":     map[string]any{"type": "string"},
			"tech":            stringList,
			"status":          map[string]any{"type": "string"},
			"images":          stringList,
			"video":           map[string]any{"type": "string"},
			"videoPoster":     map[string]any{"type": "string"},
			"role":            map[string]any{"type": "string"},
			"contribution":    map[string]any{"type": "string"},
			"link":            map[string]any{"type": "string"},
			"embedSite":       map[string]any{"type": "string"},
			"highlights":      stringList,
			"featured":        map[string]any{"type": "boolean"},
			"relatedProjects": map[string]any{"type": "array"},
			"relatedPosts":    map[string]any{"type": "array"},
		},
	})
	if errBuiltinBuild != nil {
		return
	}
	timelineSchema, errBuiltinBuild = Compile("timeline.json", map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":     "object",
			"required": []any{"id", "type", "title"},
			"properties": map[string]any{
				"id":           map[string]any{"type": []any{"string", "number"}},
				"type":         map[string]any{"enum": []any{"education", "experience"}},
				"title":        map[string]any{"type": "string"},
				"organization": map[string]any{"type": "string"},
				"start":        map[string]any{"type": "string"},
				"end":          map[string]any{"type": []any{"string", "null"}},
			},
		},
	})
}

func compileSchema(name string, schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(name, bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile(name)
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
