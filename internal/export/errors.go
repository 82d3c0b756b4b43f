// Package export turns a rendered resume into a downloadable PDF.
//
// The preview page is rasterised by a Capturer, and the resulting image is placed on a
// single A4-width PDF page whose height follows the image.
package export

import "fmt"

// ExportError is returned when any step of an export fails.
type ExportError struct {
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("export failed: %s", e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}
