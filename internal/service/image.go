package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
)

// ImageListLimit caps how many images List returns.
const ImageListLimit = 100

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// ObjectStore persists uploaded bytes under a key.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader) (int64, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// ImageService validates uploads, writes them to the object store, and
// records their metadata.
type ImageService struct {
	images repo.ImageRepo
	store  ObjectStore
}

// NewImageService constructs an ImageService.
func NewImageService(images repo.ImageRepo, store ObjectStore) *ImageService {
	return &ImageService{images: images, store: store}
}

// Upload stores a PNG or JPEG under images/<uuid><ext>. Both the filename
// extension and the sniffed content must agree on an allowed type.
func (s *ImageService) Upload(ctx context.Context, ownerID uuid.UUID, filename string, data []byte) (domain.Image, error) {
	ext := strings.ToLower(path.Ext(filename))
	want, ok := imageTypes[ext]
	if !ok {
		return domain.Image{}, fmt.Errorf("%w: only .png, .jpg and .jpeg files are accepted", domain.ErrValidation)
	}
	if len(data) == 0 {
		return domain.Image{}, fmt.Errorf("%w: file is empty", domain.ErrValidation)
	}
	if got := http.DetectContentType(data); got != want {
		return domain.Image{}, fmt.Errorf("%w: content is %s, not %s", domain.ErrValidation, got, want)
	}

	key := "images/" + uuid.NewString() + ext
	size, err := s.store.Put(ctx, key, bytes.NewReader(data))
	if err != nil {
		return domain.Image{}, fmt.Errorf("service.ImageService.Upload: %w", err)
	}

	img, err := s.images.Create(ctx, domain.Image{OwnerID: ownerID, Key: key, ContentType: want, Size: size})
	if err != nil {
		if derr := s.store.Delete(ctx, key); derr != nil {
			slog.WarnContext(ctx, "orphaned image object", "key", key, "error", derr)
		}
		return domain.Image{}, fmt.Errorf("service.ImageService.Upload: %w", err)
	}
	img.URL = s.store.PublicURL(img.Key)
	return img, nil
}

// List returns up to ImageListLimit images, oldest first, with public URLs.
func (s *ImageService) List(ctx context.Context) ([]domain.Image, error) {
	imgs, err := s.images.List(ctx, ImageListLimit)
	if err != nil {
		return nil, fmt.Errorf("service.ImageService.List: %w", err)
	}
	out := make([]domain.Image, 0, len(imgs))
	for _, img := range imgs {
		img.URL = s.store.PublicURL(img.Key)
		out = append(out, img)
	}
	return out, nil
}
