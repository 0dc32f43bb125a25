package storage

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSStorageService implements StorageService on a Google Cloud Storage
// bucket.
type GCSStorageService struct {
	client     *storage.Client
	bucketName string
}

// NewGCSStorageService creates a GCSStorageService. credentialsFile may be
// empty, in which case ambient credentials are used.
func NewGCSStorageService(ctx context.Context, bucketName, credentialsFile string) (*GCSStorageService, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSStorageService{client: client, bucketName: bucketName}, nil
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]`)

// objectName builds a collision-resistant object path from the original
// file name: timestamp, short random suffix, sanitized base name.
func objectName(destFolder, localFilePath string) string {
	base := unsafeNameChars.ReplaceAllString(filepath.Base(localFilePath), "_")
	name := fmt.Sprintf("%d_%06x_%s", time.Now().UnixMilli(), rand.Intn(1<<24), base)
	if destFolder == "" {
		return name
	}
	return destFolder + "/" + name
}

// UploadFile uploads a local file and returns the stored object path.
func (s *GCSStorageService) UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error) {
	file, err := os.Open(localFilePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	objectPath := objectName(destFolder, localFilePath)
	w := s.client.Bucket(s.bucketName).Object(objectPath).NewWriter(ctx)

	if ext := filepath.Ext(localFilePath); ext != "" {
		w.ObjectAttrs.ContentType = mime.TypeByExtension(ext)
	}

	if _, err := io.Copy(w, file); err != nil {
		return "", fmt.Errorf("failed to copy file to storage: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	return objectPath, nil
}

// DeleteFile deletes an object from the bucket.
func (s *GCSStorageService) DeleteFile(ctx context.Context, objectPath string) error {
	obj := s.client.Bucket(s.bucketName).Object(objectPath)
	if err := obj.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// GetSignedURL returns a V4 signed URL valid for the specified duration.
func (s *GCSStorageService) GetSignedURL(ctx context.Context, objectPath string, expires time.Duration) (string, error) {
	url, err := s.client.Bucket(s.bucketName).SignedURL(objectPath, &storage.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(expires),
		Scheme:  storage.SigningSchemeV4,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}
	return url, nil
}
