package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingTag is returned when a node lacks its type tag.
	ErrMissingTag = errors.New("missing type tag")
	// ErrMissingField is returned when a required property is absent.
	ErrMissingField = errors.New("missing required field")
	// ErrNotObject is returned when a node is not a JSON object.
	ErrNotObject = errors.New("node is not an object")
	// ErrDocumentTooLarge is returned when a payload exceeds the loader cap.
	ErrDocumentTooLarge = errors.New("schema: document too large")
)

// DecodeError reports the node that failed to decode. Path uses the
// `$.child.children[1].onPress[0]` form.
type DecodeError struct {
	Path string
	Type string
	Err  error
}

func (e *DecodeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Type != "" {
		return fmt.Sprintf("schema: decode %s (%s): %v", e.Path, e.Type, e.Err)
	}
	return fmt.Sprintf("schema: decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func decodeErr(path, typ string, err error) error {
	var existing *DecodeError
	if errors.As(err, &existing) {
		return err
	}
	return &DecodeError{Path: path, Type: typ, Err: err}
}

func missingField(path, typ, field string) error {
	return &DecodeError{Path: path, Type: typ, Err: fmt.Errorf("%w %q", ErrMissingField, field)}
}
