package content

import "errors"

var (
	// ErrMissingID indicates a record without an id value.
	ErrMissingID = errors.New("content: id is required")
	// ErrUnsafeID indicates an id that cannot be used as a file name.
	ErrUnsafeID = errors.New("content: id is not a valid file name")
	// ErrNotObject indicates a record that is not a JSON object.
	ErrNotObject = errors.New("content: record is not a JSON object")
	// ErrNotArray indicates a collection source that is not a JSON array.
	ErrNotArray = errors.New("content: collection is not a JSON array")
)
