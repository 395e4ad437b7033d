package storage

import (
	"context"
	"io"
)

// UploadResult is the durable location of a stored file.
type UploadResult struct {
	URL      string
	PublicID string
}

// Uploader is the narrow boundary to the cloud file store. The application
// never touches stored bytes again; it only keeps the returned URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, content io.Reader) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}
