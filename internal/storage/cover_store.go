// Package storage holds the cover-photo upload path: a file goes in, a
// durable display URL and an opaque storage handle come back. The rest of
// the system only ever carries those two strings.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	gcs "cloud.google.com/go/storage"
	fbstorage "firebase.google.com/go/v4/storage"
	"github.com/google/uuid"
)

// ErrUnsupportedType is returned for uploads that are not images.
var ErrUnsupportedType = errors.New("unsupported cover photo content type")

// CoverPhotoStore uploads list cover photos to a Cloud Storage bucket.
type CoverPhotoStore struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

// NewCoverPhotoStore creates a CoverPhotoStore backed by the named bucket of
// the Firebase app's storage client.
func NewCoverPhotoStore(client *fbstorage.Client, bucketName string) (*CoverPhotoStore, error) {
	if client == nil {
		return nil, errors.New("storage client is not initialized for CoverPhotoStore")
	}
	if bucketName == "" {
		return nil, errors.New("bucket name is required for CoverPhotoStore")
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("opening bucket '%s': %w", bucketName, err)
	}
	return &CoverPhotoStore{bucket: bucket, bucketName: bucketName}, nil
}

// Upload stores one cover photo and returns its public display URL plus the
// object path, which callers keep as the opaque storage handle.
func (s *CoverPhotoStore) Upload(ctx context.Context, ownerID, filename, contentType string, r io.Reader) (displayURL, objectPath string, err error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedType, contentType)
	}

	ext := strings.ToLower(path.Ext(filename))
	objectPath = fmt.Sprintf("covers/%s/%s%s", ownerID, uuid.NewString(), ext)

	w := s.bucket.Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=86400"
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", "", fmt.Errorf("writing cover photo '%s': %w", objectPath, err)
	}
	if err := w.Close(); err != nil {
		return "", "", fmt.Errorf("finalizing cover photo '%s': %w", objectPath, err)
	}

	displayURL = fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, objectPath)
	return displayURL, objectPath, nil
}
