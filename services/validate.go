package services

import "fmt"

// ValidationError reports a rejected post before any write happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidatePost checks required fields and the configured content length bounds.
// Pure check, no side effects.
func ValidatePost(username, content string, minLen, maxLen int) error {
	if username == "" {
		return &ValidationError{Field: "username", Message: "username is required"}
	}
	if content == "" {
		return &ValidationError{Field: "content", Message: "content is required"}
	}
	if len(content) < minLen || len(content) > maxLen {
		return &ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("content must be between %d and %d characters", minLen, maxLen),
		}
	}
	return nil
}
