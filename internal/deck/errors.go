package deck

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("card not found")

// ValidationError reports the first required field that was empty after
// trimming.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s must not be empty", e.Field)
}

// ConflictError signals that renaming a class would silently merge it
// into another existing class. The caller decides whether to retry with
// the merge allowed.
type ConflictError struct {
	Class string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("class %q already exists; renaming would merge the two classes", e.Class)
}
