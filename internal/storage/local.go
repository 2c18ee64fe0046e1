package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "task-tracker.com/task-tracker/internal/errors"
)

// LocalUploader writes files below a root directory that the HTTP server
// exposes under publicBaseURL.
type LocalUploader struct {
	root          string
	publicBaseURL string
	maxBytes      int64
}

func NewLocalUploader(root, publicBaseURL string, maxBytes int64) (*LocalUploader, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalUploader{
		root:          filepath.Clean(root),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		maxBytes:      maxBytes,
	}, nil
}

func (u *LocalUploader) Root() string {
	return u.root
}

func (u *LocalUploader) Upload(ctx context.Context, file File, pathPrefix string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if u.maxBytes > 0 && file.Size > u.maxBytes {
		return "", apperrors.ErrFileTooLarge
	}

	prefix, err := cleanPrefix(pathPrefix)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(u.root, filepath.FromSlash(prefix))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	dst, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	src := file.Content
	if u.maxBytes > 0 {
		src = io.LimitReader(file.Content, u.maxBytes+1)
	}
	written, copyErr := io.Copy(dst, src)
	closeErr := dst.Close()
	if copyErr == nil && u.maxBytes > 0 && written > u.maxBytes {
		copyErr = apperrors.ErrFileTooLarge
	}
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(dst.Name())
		if copyErr != nil {
			return "", copyErr
		}
		return "", closeErr
	}

	return u.publicBaseURL + "/" + path.Join(prefix, name), nil
}

// UploadMany uploads files in order and stops at the first failure.
func (u *LocalUploader) UploadMany(ctx context.Context, files []File, pathPrefix string) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := u.Upload(ctx, f, pathPrefix)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func cleanPrefix(prefix string) (string, error) {
	cleaned := path.Clean("/" + strings.ReplaceAll(prefix, "\\", "/"))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", apperrors.ErrInvalidUploadPath
	}
	return cleaned, nil
}
