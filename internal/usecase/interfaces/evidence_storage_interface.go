package interfaces

import (
	"context"
	"io"
)

// IEvidenceStorage stores dispute evidence files.
type IEvidenceStorage interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	PresignedURL(ctx context.Context, key string) (string, error)
}
