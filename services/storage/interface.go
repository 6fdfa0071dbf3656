package storage

import (
	"context"
	"io"
)

// UploadResult identifies a stored asset.
type UploadResult struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// StorageService stores studio media (thumbnails and images embedded in rich text).
type StorageService interface {
	// UploadFile stores the content under folder. name is a hint for the public ID and may be empty.
	UploadFile(ctx context.Context, file io.Reader, folder, name string) (*UploadResult, error)
	DeleteFile(ctx context.Context, publicID string) error
	GetDownloadURL(publicID string) (string, error)
}
