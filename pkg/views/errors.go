package views

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is for a tag, loop or loop column that a view needs
	// but the saveframe does not have.
	ErrMissingField = errors.New("missing field")
	// ErrNumericConversion is for a shift value that is not a number.
	ErrNumericConversion = errors.New("not a number")
)

// FieldError says which saveframe and which field broke a view.
// Err is one of the errors above, possibly wrapping a strconv error.
type FieldError struct {
	Saveframe string
	Field     string
	Err       error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("saveframe %s, field %s: %v", e.Saveframe, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func missing(sf, field string) error {
	return &FieldError{Saveframe: sf, Field: field, Err: ErrMissingField}
}
