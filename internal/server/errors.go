// Package server provides the HTTP API of the resume builder.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/reorder"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/jonathan/resume-builder/internal/summary"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation    *ErrValidation
		fieldErrs     validator.ValidationErrors
		sectionErr    *resume.SectionError
		fieldErr      *resume.FieldError
		orderErr      *resume.OrderError
		indexErr      *reorder.IndexError
		templateErr   *rendering.TemplateError
		unsupported   *ingestion.UnsupportedFileTypeError
		notFound      *session.NotFoundError
		unavailable   *session.UnavailableError
		extractionErr *ingestion.ExtractionError
		generationErr *summary.GenerationError
		exportErr     *export.ExportError
		tooLarge      *http.MaxBytesError
	)

	switch {
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, session.ErrBusy):
		return http.StatusConflict
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &fieldErrs),
		errors.As(err, &sectionErr), errors.As(err, &fieldErr), errors.As(err, &orderErr),
		errors.As(err, &indexErr), errors.As(err, &templateErr):
		return http.StatusBadRequest
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &extractionErr), errors.As(err, &generationErr), errors.As(err, &exportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
