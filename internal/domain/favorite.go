package domain

import "time"

// Favorite bookmarks a property for an opaque client-generated session id.
// The (session, property) pair is unique; adding twice is a no-op.
type Favorite struct {
	ID            int64     `json:"id"`
	UserSessionID string    `json:"user_session_id"`
	PropertyID    int64     `json:"property_id"`
	CreatedAt     time.Time `json:"created_at"`
}
