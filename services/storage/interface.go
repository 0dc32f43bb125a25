package storage

import (
	"context"
	"time"
)

// StorageService is the object-store boundary for exam PDFs. Implementations
// return bucket-relative object paths; URLs are minted on demand and expire.
type StorageService interface {
	// UploadFile uploads a local file into destFolder and returns the
	// stored object path.
	UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error)
	// DeleteFile removes an object by its path.
	DeleteFile(ctx context.Context, objectPath string) error
	// GetSignedURL returns a signed, short-lived download URL for an object.
	GetSignedURL(ctx context.Context, objectPath string, expires time.Duration) (string, error)
}
