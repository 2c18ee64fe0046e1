package storage

import (
	"context"
	"io"
)

type File struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Uploader stores raw file content under a path prefix and returns a stable
// URL for it.
type Uploader interface {
	Upload(ctx context.Context, file File, pathPrefix string) (string, error)
	UploadMany(ctx context.Context, files []File, pathPrefix string) ([]string, error)
}
