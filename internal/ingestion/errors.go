package ingestion

import "fmt"

// UnsupportedFileTypeError is returned for uploads the importer will not read.
// Legacy marks binary .doc files, which get their own advice.
type UnsupportedFileTypeError struct {
	Filename string
	MIMEType string
	Legacy   bool
}

func (e *UnsupportedFileTypeError) Error() string {
	if e.Legacy {
		return ".doc files are not supported. Please save as a .docx or PDF and try again."
	}
	kind := e.MIMEType
	if kind == "" {
		kind = "unknown"
	}
	return fmt.Sprintf("Unsupported file type: %s. Please upload a PDF, DOCX, or TXT file.", kind)
}

// ExtractionError represents a failure to turn an accepted upload into a document:
// unreadable file contents, a failed model call or an unusable response.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
