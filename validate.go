package repwizard

import (
	"fmt"
	"strings"
)

// FieldError is one failed check against a named form input.
type FieldError struct {
	Input   string `json:"input"`
	Message string `json:"message"`
}

func (fe FieldError) String() string {
	return fmt.Sprintf("%s: %s", fe.Input, fe.Message)
}

type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	msgs := []string{}
	for _, fe := range ve {
		msgs = append(msgs, fe.String())
	}
	return strings.Join(msgs, "; ")
}

// Err returns nil when nothing failed, so callers can use the usual
// err != nil check.
func (ve ValidationErrors) Err() error {
	if len(ve) == 0 {
		return nil
	}
	return ve
}

func (ve *ValidationErrors) Add(input, format string, args ...interface{}) {
	*ve = append(*ve, FieldError{Input: input, Message: fmt.Sprintf(format, args...)})
}
