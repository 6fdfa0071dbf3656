package content

import (
	"context"
	"fmt"
	"io"
	"path"

	"facestudio/models"
	"facestudio/services/storage"
	"facestudio/utils"

	"go.uber.org/zap"
)

// mediaRefs collects the stored assets a record points at: its thumbnail and
// every Cloudinary image embedded in either language of the full description.
func mediaRefs(thumbnail string, full models.Localized) map[string]struct{} {
	refs := map[string]struct{}{}
	if thumbnail != "" {
		refs[thumbnail] = struct{}{}
	}
	for _, doc := range []string{full.HR, full.EN} {
		for _, src := range utils.ExtractImageSources(doc) {
			if id := storage.PublicIDFromURL(src); id != "" {
				refs[id] = struct{}{}
			}
		}
	}
	return refs
}

// releaseMedia deletes the assets in before that are not in after. Failures are
// logged; a leftover file is not worth failing the edit for.
func (s *DefaultContentService) releaseMedia(ctx context.Context, before, after map[string]struct{}) {
	if s.Storage == nil {
		return
	}
	for id := range before {
		if _, kept := after[id]; kept {
			continue
		}
		if err := s.Storage.DeleteFile(ctx, id); err != nil {
			s.logger().Warn("Failed to delete unused media", zap.String("public_id", id), zap.Error(err))
		}
	}
}

func (s *DefaultContentService) upload(ctx context.Context, file io.Reader, sub, filename string) (*storage.UploadResult, error) {
	if s.Storage == nil {
		return nil, ErrNoStorage
	}
	folder := path.Join(s.MediaFolder, sub)
	res, err := s.Storage.UploadFile(ctx, file, folder, filename)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}
	return res, nil
}

func (s *DefaultContentService) UploadImage(ctx context.Context, file io.Reader, filename string) (*storage.UploadResult, error) {
	return s.upload(ctx, file, "editor", filename)
}
