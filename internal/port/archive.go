package port

import (
	"context"
	"io"
)

// ReportArchive stores finished report artifacts in remote object storage.
type ReportArchive interface {
	// Archive uploads body under key and returns the object location.
	Archive(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}
