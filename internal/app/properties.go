package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jatinm79/Real-Estate-App/internal/domain"
)

const (
	mainImageCategory = "real-estate/main"
	galleryCategory   = "real-estate/gallery"

	// Gallery uploads for one request run concurrently, bounded so a
	// 10-file request cannot monopolize outbound connections.
	uploadConcurrency = 4
)

// PropertyService orchestrates property writes: blob uploads happen before
// the database transaction, best-effort cleanup of replaced blobs happens
// only after the new state is durably committed.
type PropertyService struct {
	repo  domain.PropertyRepository
	blobs domain.BlobStore
	cache domain.Cache
	ttl   time.Duration
}

func NewPropertyService(repo domain.PropertyRepository, blobs domain.BlobStore, cache domain.Cache, ttl time.Duration) *PropertyService {
	return &PropertyService{repo: repo, blobs: blobs, cache: cache, ttl: ttl}
}

func (s *PropertyService) List(ctx context.Context, f domain.PropertyFilters) ([]domain.Property, error) {
	return s.repo.FindAll(ctx, f)
}

func (s *PropertyService) Get(ctx context.Context, id int64) (domain.Property, error) {
	key := cacheKey(id)
	var p domain.Property
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &p); ok {
			return p, nil
		}
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Property{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, p, int(s.ttl.Seconds()))
	}
	return p, nil
}

// Create uploads the request's images, then creates the property and its
// gallery rows in one transaction. An upload failure aborts before any row
// is written.
func (s *PropertyService) Create(ctx context.Context, np domain.NewProperty, mainImage []byte, gallery [][]byte) (domain.Property, error) {
	if mainImage != nil {
		url, err := s.blobs.Store(ctx, mainImage, mainImageCategory)
		if err != nil {
			return domain.Property{}, fmt.Errorf("upload main image: %w", err)
		}
		np.MainImage = &url
	}
	if len(gallery) > 0 {
		urls, err := s.uploadGallery(ctx, gallery)
		if err != nil {
			return domain.Property{}, err
		}
		np.GalleryImages = urls
	}
	return s.repo.Create(ctx, np)
}

// Update applies a partial patch. Newly uploaded images override the
// corresponding patch fields; blobs they replace are deleted best-effort
// after commit. The gallery, when patched, is a full replace.
func (s *PropertyService) Update(ctx context.Context, id int64, patch domain.PropertyPatch, mainImage []byte, gallery [][]byte) (domain.Property, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Property{}, err
	}

	if mainImage != nil {
		url, err := s.blobs.Store(ctx, mainImage, mainImageCategory)
		if err != nil {
			return domain.Property{}, fmt.Errorf("upload main image: %w", err)
		}
		patch.MainImage = &url
	}
	if len(gallery) > 0 {
		urls, err := s.uploadGallery(ctx, gallery)
		if err != nil {
			return domain.Property{}, err
		}
		patch.GalleryImages = &urls
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return domain.Property{}, err
	}

	if patch.MainImage != nil && existing.MainImage != nil && *existing.MainImage != *patch.MainImage {
		s.removeBlob(ctx, *existing.MainImage)
	}
	if patch.GalleryImages != nil {
		kept := make(map[string]bool, len(*patch.GalleryImages))
		for _, u := range *patch.GalleryImages {
			kept[u] = true
		}
		for _, u := range existing.GalleryImages {
			if !kept[u] {
				s.removeBlob(ctx, u)
			}
		}
	}

	s.invalidate(ctx, id)
	return updated, nil
}

// Delete removes the row (cascading gallery and favorites, detaching
// inquiries) and then cleans the property's blobs best-effort.
func (s *PropertyService) Delete(ctx context.Context, id int64) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if p.MainImage != nil {
		s.removeBlob(ctx, *p.MainImage)
	}
	for _, u := range p.GalleryImages {
		s.removeBlob(ctx, u)
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *PropertyService) uploadGallery(ctx context.Context, files [][]byte) ([]string, error) {
	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)
	for i, data := range files {
		i, data := i, data
		g.Go(func() error {
			url, err := s.blobs.Store(gctx, data, galleryCategory)
			if err != nil {
				return fmt.Errorf("upload gallery image %d: %w", i+1, err)
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

// removeBlob is the single place where a failure is absorbed rather than
// propagated: a stale orphan blob beats failing a committed write.
func (s *PropertyService) removeBlob(ctx context.Context, ref string) {
	if err := s.blobs.Remove(ctx, ref); err != nil {
		log.Warn().Err(err).Str("ref", ref).Msg("cleanup of replaced image failed")
	}
}

func (s *PropertyService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, cacheKey(id))
}

func cacheKey(id int64) string { return fmt.Sprintf("property:%d", id) }
