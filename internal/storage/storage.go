// Package storage persists uploaded media and returns public URLs for it.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"

	"github.com/google/uuid"
)

// FileStorage stores objects and returns their public URL
type FileStorage interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

// ObjectKey builds a unique key under dir, keeping the extension of filename
func ObjectKey(dir, filename string) string {
	return path.Join(dir, uuid.NewString()+strings.ToLower(path.Ext(filename)))
}

// SaveUpload stores an uploaded multipart file under dir
func SaveUpload(ctx context.Context, fs FileStorage, dir string, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return fs.Save(ctx, ObjectKey(dir, fh.Filename), f, fh.Size, contentType)
}

// keyFromURL strips base from url, reporting false when url is not under base
func keyFromURL(base, url string) (string, bool) {
	prefix := strings.TrimSuffix(base, "/") + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}
