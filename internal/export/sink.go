package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
)

// Sink stores a finished export and returns where it went.
type Sink interface {
	Save(ctx context.Context, name string, pdf []byte) (string, error)
}

// LocalSink writes exports into a directory.
type LocalSink struct {
	Dir string
}

// Save writes pdf to Dir/name, creating Dir if needed.
func (s LocalSink) Save(_ context.Context, name string, pdf []byte) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &ExportError{Message: "failed to create output directory", Cause: err}
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", &ExportError{Message: "failed to write PDF", Cause: err}
	}
	return path, nil
}

// GCSSink archives exports in a Cloud Storage bucket.
type GCSSink struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSSink connects to Cloud Storage with application default credentials.
func NewGCSSink(ctx context.Context, bucket, prefix string) (*GCSSink, error) {
	if bucket == "" {
		return nil, &ExportError{Message: "bucket is required"}
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, &ExportError{Message: "failed to create storage client", Cause: err}
	}
	return &GCSSink{client: client, bucket: bucket, prefix: prefix}, nil
}

// Save uploads pdf as prefix/name and returns its gs:// URI.
func (s *GCSSink) Save(ctx context.Context, name string, pdf []byte) (string, error) {
	object := ObjectName(s.prefix, name)

	w := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	w.ContentType = "application/pdf"
	if _, err := io.Copy(w, bytes.NewReader(pdf)); err != nil {
		_ = w.Close()
		return "", &ExportError{Message: "failed to upload PDF", Cause: err}
	}
	if err := w.Close(); err != nil {
		return "", &ExportError{Message: "failed to finalize upload", Cause: err}
	}
	return fmt.Sprintf("gs://%s/%s", s.bucket, object), nil
}

// Close releases the storage client.
func (s *GCSSink) Close() error {
	return s.client.Close()
}
