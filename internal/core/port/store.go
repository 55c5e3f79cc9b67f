package port

import (
	"context"
	"io"
	"unblinkingbot/internal/core/domain"
)

type PrefixStore interface {
	// GetByPrefix returns every snapshot whose key starts with prefix, in store order.
	GetByPrefix(ctx context.Context, prefix string) ([]domain.Snapshot, error)
}

type SnapshotWriter interface {
	Put(ctx context.Context, snapshot domain.Snapshot) error
	Delete(ctx context.Context, name string) error
}

type SnapshotSource interface {
	// Open streams the snapshot image behind url. The caller closes the reader.
	Open(ctx context.Context, url string) (io.ReadCloser, error)
}
