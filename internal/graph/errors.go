package graph

import (
	"fmt"
	"strings"
)

// FieldError reports a failed resolution with the path from the root
// to the failing field. Any field failure aborts the whole operation;
// no partial graph is returned.
type FieldError struct {
	Path []string
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("resolve %s: %v", strings.Join(e.Path, "."), e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldErr(path []string, err error) *FieldError {
	return &FieldError{Path: path, Err: err}
}
