package ports

import (
	"context"
	"io"
)

// BlobStore is the opaque upload sink. Put stores the object under key and
// returns its public URL; Delete removes it.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}
