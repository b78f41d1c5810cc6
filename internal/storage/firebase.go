package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
)

// FirebaseStorage stores objects in a Firebase (Cloud Storage) bucket
type FirebaseStorage struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

func NewFirebaseStorage(bucket *gcs.BucketHandle, bucketName string) *FirebaseStorage {
	return &FirebaseStorage{bucket: bucket, bucketName: bucketName}
}

func (s *FirebaseStorage) baseURL() string {
	return "https://storage.googleapis.com/" + s.bucketName
}

func (s *FirebaseStorage) Save(ctx context.Context, key string, r io.Reader, _ int64, contentType string) (string, error) {
	w := s.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return s.baseURL() + "/" + key, nil
}

func (s *FirebaseStorage) Delete(ctx context.Context, url string) error {
	key, ok := keyFromURL(s.baseURL(), url)
	if !ok {
		return nil
	}
	err := s.bucket.Object(key).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil
	}
	return err
}
