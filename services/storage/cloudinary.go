package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"facestudio/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// CloudinaryStorage implements StorageService on Cloudinary image assets.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorage connects with CLOUDINARY_URL when set, otherwise with the separate credentials.
func NewCloudinaryStorage(cloudinaryURL, cloudName, apiKey, apiSecret string) (*CloudinaryStorage, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cloudinaryURL != "" {
		cld, err = cloudinary.NewFromURL(cloudinaryURL)
	} else {
		cld, err = cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	}
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	cld.Config.URL.Secure = true
	utils.GetLogger().Info("Cloudinary storage initialized", zap.String("cloud", cld.Config.Cloud.CloudName))
	return &CloudinaryStorage{cld: cld}, nil
}

func (s *CloudinaryStorage) UploadFile(ctx context.Context, file io.Reader, folder, name string) (*UploadResult, error) {
	params := uploader.UploadParams{Folder: folder}
	if id := publicIDHint(name); id != "" {
		params.PublicID = id
	}
	result, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return nil, fmt.Errorf("CloudinaryStorage: failed to upload file: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("CloudinaryStorage: upload rejected: %s", result.Error.Message)
	}
	if result.PublicID == "" {
		return nil, fmt.Errorf("CloudinaryStorage: no public ID returned")
	}
	return &UploadResult{PublicID: result.PublicID, URL: result.SecureURL}, nil
}

func (s *CloudinaryStorage) DeleteFile(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("CloudinaryStorage: failed to delete %s: %w", publicID, err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("CloudinaryStorage: delete %s rejected: %s", publicID, result.Error.Message)
	}
	return nil
}

func (s *CloudinaryStorage) GetDownloadURL(publicID string) (string, error) {
	img, err := s.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("CloudinaryStorage: failed to get asset: %w", err)
	}
	u, err := img.String()
	if err != nil {
		return "", fmt.Errorf("CloudinaryStorage: failed to build URL: %w", err)
	}
	return u, nil
}

// publicIDHint turns an uploaded file name into a slug-like public ID without extension.
func publicIDHint(name string) string {
	base := strings.TrimSuffix(path.Base(strings.ReplaceAll(name, "\\", "/")), path.Ext(name))
	var b strings.Builder
	for _, r := range strings.ToLower(base) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == ' ' || r == '.':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

// PublicIDFromURL recovers the public ID from a Cloudinary delivery URL such as
// https://res.cloudinary.com/demo/image/upload/v1712/treatments/facial.jpg.
// Transformation segments and the version are skipped. Non-Cloudinary URLs yield "".
func PublicIDFromURL(raw string) string {
	_, rest, ok := strings.Cut(raw, "/upload/")
	if !ok || !strings.Contains(raw, "cloudinary.com/") {
		return ""
	}
	rest, _, _ = strings.Cut(rest, "?")
	parts := strings.Split(rest, "/")
	if i := versionIndex(parts); i >= 0 {
		parts = parts[i+1:]
	} else {
		for len(parts) > 1 && isTransformation(parts[0]) {
			parts = parts[1:]
		}
	}
	id := strings.Join(parts, "/")
	return strings.TrimSuffix(id, path.Ext(id))
}

func versionIndex(parts []string) int {
	for i, seg := range parts[:len(parts)-1] {
		if isVersion(seg) {
			return i
		}
	}
	return -1
}

func isVersion(seg string) bool {
	if len(seg) < 2 || seg[0] != 'v' {
		return false
	}
	for _, r := range seg[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isTransformation matches segments like "w_300,h_200,c_fill".
func isTransformation(seg string) bool {
	for _, part := range strings.Split(seg, ",") {
		key, value, ok := strings.Cut(part, "_")
		if !ok || value == "" || len(key) == 0 || len(key) > 2 {
			return false
		}
	}
	return true
}
