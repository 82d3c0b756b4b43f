package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/jonathan/resume-builder/internal/types"
)

// uploadField is the multipart field holding the imported file.
const uploadField = "file"

// handleImport reads a multipart upload and replaces the session document with what
// the model extracted from it.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	up, err := s.readUpload(w, r)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	meta, err := sess.Import(r.Context(), up)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.ImportResponse{
		Document: sess.Document(),
		Metadata: meta,
	})
}

// readUpload pulls the file part out of a multipart request, holding the whole body to
// the configured upload limit.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (ingestion.Upload, error) {
	// Room for the multipart envelope around the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload+64<<10)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ingestion.Upload{}, err
		}
		return ingestion.Upload{}, &ErrValidation{Field: uploadField, Message: "expected a multipart form upload"}
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return ingestion.Upload{}, &ErrValidation{Field: uploadField, Message: "is required"}
		}
		return ingestion.Upload{}, fmt.Errorf("failed to read upload: %w", err)
	}
	defer file.Close()

	if header.Size > s.maxUpload {
		return ingestion.Upload{}, &http.MaxBytesError{Limit: s.maxUpload}
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return ingestion.Upload{}, fmt.Errorf("failed to read upload: %w", err)
	}

	return ingestion.Upload{
		Filename: header.Filename,
		MIMEType: header.Header.Get("Content-Type"),
		Data:     data,
	}, nil
}

func (s *Server) handleGenerateSummary(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	text, err := sess.GenerateSummary(r.Context())
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.SummaryResponse{Summary: text})
}

// handleExport streams the PDF of the current preview as a download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	res, err := sess.Export(r.Context())
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(res.PDF)))
	if res.Location != "" {
		w.Header().Set("X-Export-Location", res.Location)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.PDF)
}
