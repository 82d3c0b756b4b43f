// Package summary writes a professional summary for a resume with a language model.
package summary

import "fmt"

// GenerationError is returned when a summary could not be produced.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("summary generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("summary generation failed: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
