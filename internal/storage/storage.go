package storage

import (
	"context"
	"io"

	"raone/internal/model"
)

// ImageStore uploads and destroys image assets on an external object-storage
// provider. No processing happens on this side; the provider's public id and
// serving URL are stored as-is.
type ImageStore interface {
	Upload(ctx context.Context, file io.Reader, folder string) (model.Image, error)
	Destroy(ctx context.Context, publicID string) error
}
