// Package storage implements the blob store on Google Cloud Storage.
package storage

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSStore stores uploads in a single GCS bucket and serves them via the
// public storage URL. Implements ports.BlobStore.
type GCSStore struct {
	client *storage.Client
	bucket string
}

// NewClient creates a GCS client. If credsPath is empty, application default
// credentials are used.
func NewClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

func NewGCSStore(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{client: client, bucket: bucket}
}

// Put uploads the object and returns its public URL.
func (s *GCSStore) Put(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	wc := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // uploads here are small; skip chunking
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("write object %s: %w", key, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("close object %s: %w", key, err)
	}
	return PublicURL(s.bucket, key), nil
}

// Delete removes the object. Deleting a missing object is not an error.
func (s *GCSStore) Delete(ctx context.Context, key string) error {
	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if err == storage.ErrObjectNotExist {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// PublicURL builds the public URL for an object, assuming public read access.
func PublicURL(bucket, key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, key)
}
