package request

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound        = errors.New("request not found")
	ErrPermission      = errors.New("role not permitted for this operation")
	ErrAlreadyReviewed = errors.New("request already reviewed")
	ErrNotCancellable  = errors.New("only the creator may cancel a pending request")
)

type FieldIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError blocks a submission before anything is written.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Reason))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Add(field, reason string) {
	e.Issues = append(e.Issues, FieldIssue{Field: field, Reason: reason})
}

// OrNil returns nil when no issues were collected.
func (e *ValidationError) OrNil() *ValidationError {
	if len(e.Issues) == 0 {
		return nil
	}
	return e
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
