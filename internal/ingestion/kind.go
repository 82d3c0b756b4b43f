package ingestion

import (
	"path/filepath"
	"strings"
)

// Kind is an accepted upload format.
type Kind string

const (
	KindText Kind = "text"
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
)

// MIME types recognised at the upload gate.
const (
	MIMEText   = "text/plain"
	MIMEPDF    = "application/pdf"
	MIMEDOCX   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEMSWord = "application/msword"
)

// MIMEType returns the canonical MIME type for the kind.
func (k Kind) MIMEType() string {
	switch k {
	case KindText:
		return MIMEText
	case KindPDF:
		return MIMEPDF
	case KindDOCX:
		return MIMEDOCX
	}
	return ""
}

// Label is the human name of the format, as used in prompts.
func (k Kind) Label() string {
	switch k {
	case KindPDF:
		return "PDF"
	case KindDOCX:
		return "Word (.docx)"
	default:
		return "plain text"
	}
}

// DetectKind decides the upload format from the declared MIME type, falling back to
// the file extension. It runs before any parsing, so rejected files cost nothing.
func DetectKind(filename, mimeType string) (Kind, error) {
	mimeType = baseMIME(mimeType)
	ext := strings.ToLower(filepath.Ext(filename))

	switch {
	case mimeType == MIMEDOCX || ext == ".docx":
		return KindDOCX, nil
	case mimeType == MIMEPDF || ext == ".pdf":
		return KindPDF, nil
	case mimeType == MIMEText || ext == ".txt":
		return KindText, nil
	case mimeType == MIMEMSWord || ext == ".doc":
		return "", &UnsupportedFileTypeError{Filename: filename, MIMEType: mimeType, Legacy: true}
	}
	return "", &UnsupportedFileTypeError{Filename: filename, MIMEType: mimeType}
}

// baseMIME strips parameters such as "; charset=utf-8".
func baseMIME(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}
