// Package filestore stores uploaded payment-proof blobs and hands back an
// opaque, retrievable reference.
package filestore

import (
	"context"
	"io"
)

type Store interface {
	// Save writes the blob and returns its reference.
	Save(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}
