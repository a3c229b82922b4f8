package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedType marks a property whose `type` is not in the type table.
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrMissingField marks a required key absent from the document.
	ErrMissingField = errors.New("missing field")
	// ErrFieldType marks a key holding a value of the wrong shape.
	ErrFieldType = errors.New("unexpected field type")
)

// UnsupportedTypeError names the property whose type could not be mapped.
type UnsupportedTypeError struct {
	Definition string
	Property   string
	Type       string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("model: definition %q property %q: unsupported type %q", e.Definition, e.Property, e.Type)
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// MissingFieldError reports a required key absent at Path.
type MissingFieldError struct {
	Path  []string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("model: %s: missing required field %q", formatPath(e.Path), e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// FieldTypeError reports a key whose value has the wrong JSON kind.
type FieldTypeError struct {
	Path []string
	Want string
	Got  string
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("model: %s: expected %s, got %s", formatPath(e.Path), e.Want, e.Got)
}

func (e *FieldTypeError) Is(target error) bool {
	return target == ErrFieldType
}

func formatPath(path []string) string {
	if len(path) == 0 {
		return "#"
	}
	escaped := make([]string, len(path))
	for i, segment := range path {
		segment = strings.ReplaceAll(segment, "~", "~0")
		escaped[i] = strings.ReplaceAll(segment, "/", "~1")
	}
	return "#/" + strings.Join(escaped, "/")
}
