package render

import (
	"errors"
	"fmt"
)

// ErrOverwriteDeclined is returned when the operator refuses to replace an
// existing output file.
var ErrOverwriteDeclined = errors.New("render: overwrite declined")

// RenderError reports the model whose rendering or persistence failed.
type RenderError struct {
	Model string
	File  string
	Err   error
}

func (e *RenderError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("render: model %q (%s): %v", e.Model, e.File, e.Err)
	}
	return fmt.Sprintf("render: model %q: %v", e.Model, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
