package storage

import (
	"context"
	"io"
)

const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeJSON = "application/json"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader stores exported files in object storage.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}
