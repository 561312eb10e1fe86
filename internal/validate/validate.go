// Package validate holds the pure field validators for contact and note
// attributes. Every function either returns the canonical form of the input
// or a *ValidationError; nothing here touches global state.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ErrValidation is matched by every *ValidationError under errors.Is, for
// callers that only care whether an input was malformed.
var ErrValidation = errors.New("validation failed")

// DateLayout is the only accepted textual date format.
const DateLayout = "2006.01.02"

// ValidationError reports an input field that failed its format contract.
// It is always recoverable: callers surface it and re-prompt.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9]{10}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Phone validates a phone number and returns its canonical form: a bare
// 10-digit string. Input may carry a leading "+", which is stripped, so
// Phone is idempotent over its own output.
func Phone(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if !phonePattern.MatchString(trimmed) {
		return "", &ValidationError{
			Field:  "phone",
			Reason: "must be 10 digits, optionally prefixed with +",
		}
	}
	return strings.TrimPrefix(trimmed, "+"), nil
}

// Email validates an email address against a local@domain pattern where the
// domain contains at least one dot. The canonical form is the trimmed input.
func Email(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if !emailPattern.MatchString(trimmed) {
		return "", &ValidationError{
			Field:  "email",
			Reason: "must look like local@domain.tld",
		}
	}
	return trimmed, nil
}

// Date parses a date in the YYYY.MM.DD format. Impossible calendar dates
// (2023.02.30 and the like) are rejected by the strict parse.
func Date(raw string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, &ValidationError{
			Field:  "date",
			Reason: fmt.Sprintf("must match %s", "YYYY.MM.DD"),
		}
	}
	return parsed, nil
}
