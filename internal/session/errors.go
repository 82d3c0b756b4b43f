// Package session holds the state of one resume editing session and applies user
// actions to it.
//
// A Session serialises every change on its own mutex. Import, summary generation and
// export call out to slow collaborators; they run with the mutex released, guarded by
// a per-operation busy flag, and commit their result in one step afterwards.
package session

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/summary"
)

// Operation names a class of long-running action.
type Operation string

const (
	OpImport  Operation = "import"
	OpSummary Operation = "summary"
	OpExport  Operation = "export"
)

// Operations lists every operation class.
var Operations = []Operation{OpImport, OpSummary, OpExport}

// ErrBusy is matched by every *BusyError.
var ErrBusy = errors.New("operation already in progress")

// BusyError is returned when an operation is started while the same kind is running.
type BusyError struct {
	Op Operation
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("%s already in progress", e.Op)
}

func (e *BusyError) Is(target error) bool {
	return target == ErrBusy
}

// NotFoundError is returned for unknown or expired sessions.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session %q not found", e.ID)
}

// UnavailableError is returned when an operation's collaborator is not configured.
type UnavailableError struct {
	Op Operation
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s is not available on this server", e.Op)
}

// Banner messages shown for failed operations.
const (
	MsgImportFailed  = "Failed to parse resume. Please try again or fill the form manually."
	MsgSummaryFailed = "Failed to generate summary. Please ensure you have some experience and education filled out."
	MsgExportFailed  = "An error occurred while generating the PDF. Please try again."
)

// UserMessage converts an operation failure into the text shown in the error banner.
func UserMessage(err error) string {
	var (
		unsupported *ingestion.UnsupportedFileTypeError
		extraction  *ingestion.ExtractionError
		generation  *summary.GenerationError
		exportErr   *export.ExportError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &unsupported):
		return unsupported.Error()
	case errors.As(err, &extraction):
		return MsgImportFailed
	case errors.As(err, &generation):
		return MsgSummaryFailed
	case errors.As(err, &exportErr):
		return MsgExportFailed
	}
	return err.Error()
}
