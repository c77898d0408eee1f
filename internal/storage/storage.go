package storage

import (
	"context"
	"io"
)

// ObjectStore persists uploaded complaint photos and hands back a URL
// the record stores verbatim. The portal never replaces or deletes an
// object once written.
type ObjectStore interface {
	Save(ctx context.Context, originalName string, r io.Reader) (url string, err error)
	Open(name string) (io.ReadSeekCloser, error)
}
