package domain

import "context"

type PropertyRepository interface {
	// Read paths
	FindAll(ctx context.Context, f PropertyFilters) ([]Property, error)
	FindByID(ctx context.Context, id int64) (Property, error)

	// Write paths. Create and Update are transactional over the property
	// row and its gallery rows; both re-read the committed state.
	Create(ctx context.Context, np NewProperty) (Property, error)
	Update(ctx context.Context, id int64, patch PropertyPatch) (Property, error)
	Delete(ctx context.Context, id int64) error
}

type FavoritesLedger interface {
	Add(ctx context.Context, sessionID string, propertyID int64) error
	Remove(ctx context.Context, sessionID string, propertyID int64) error
	IsFavorited(ctx context.Context, sessionID string, propertyID int64) (bool, error)
	ListForSession(ctx context.Context, sessionID string) ([]Property, error)
}

type InquiryLog interface {
	Submit(ctx context.Context, ni NewInquiry) (Inquiry, error)
}

// BlobStore persists uploaded images and deletes them by the reference
// embedded in a previously returned URL.
type BlobStore interface {
	Store(ctx context.Context, data []byte, category string) (string, error)
	Remove(ctx context.Context, ref string) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
