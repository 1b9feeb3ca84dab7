package quiz

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownQuestion   = errors.New("unknown question")
	ErrUnknownPersona    = errors.New("unknown persona")
	ErrUnknownOption     = errors.New("unknown option")
	ErrPersonaNotOffered = errors.New("persona not offered by question")
)

// SelectError describes a rejected selection.
type SelectError struct {
	QuestionID int
	Value      string
	Err        error
}

func (e *SelectError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("select answer for question %d: %v", e.QuestionID, e.Err)
	}
	return fmt.Sprintf("select %q for question %d: %v", e.Value, e.QuestionID, e.Err)
}

func (e *SelectError) Unwrap() error { return e.Err }
