package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema statements are idempotent; EnsureSchema runs at every startup.
// Optional property columns were introduced after the first release, so
// they are also applied as ADD COLUMN IF NOT EXISTS for older tables.

const createPropertiesSQL = `
CREATE TABLE IF NOT EXISTS properties (
  id SERIAL PRIMARY KEY,
  project_name VARCHAR(255) NOT NULL,
  builder_name VARCHAR(255) NOT NULL,
  location VARCHAR(500) NOT NULL,
  price DECIMAL(12,2) NOT NULL,
  description TEXT,
  main_image VARCHAR(500),
  bedrooms INTEGER,
  bathrooms INTEGER,
  area INTEGER,
  property_type VARCHAR(50),
  year_built INTEGER,
  parking INTEGER,
  floors INTEGER,
  created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
  updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`

const alterPropertiesSQL = `
ALTER TABLE properties
  ADD COLUMN IF NOT EXISTS bedrooms INTEGER,
  ADD COLUMN IF NOT EXISTS bathrooms INTEGER,
  ADD COLUMN IF NOT EXISTS area INTEGER,
  ADD COLUMN IF NOT EXISTS property_type VARCHAR(50),
  ADD COLUMN IF NOT EXISTS year_built INTEGER,
  ADD COLUMN IF NOT EXISTS parking INTEGER,
  ADD COLUMN IF NOT EXISTS floors INTEGER`

const createPropertyImagesSQL = `
CREATE TABLE IF NOT EXISTS property_images (
  id SERIAL PRIMARY KEY,
  property_id INTEGER REFERENCES properties(id) ON DELETE CASCADE,
  image_url VARCHAR(500) NOT NULL,
  created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`

const createContactInquiriesSQL = `
CREATE TABLE IF NOT EXISTS contact_inquiries (
  id SERIAL PRIMARY KEY,
  property_id INTEGER REFERENCES properties(id) ON DELETE SET NULL,
  name VARCHAR(255) NOT NULL,
  email VARCHAR(255) NOT NULL,
  phone VARCHAR(50),
  message TEXT,
  status VARCHAR(50) DEFAULT 'new',
  created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`

const createFavoritesSQL = `
CREATE TABLE IF NOT EXISTS favorites (
  id SERIAL PRIMARY KEY,
  user_session_id VARCHAR(255) NOT NULL,
  property_id INTEGER REFERENCES properties(id) ON DELETE CASCADE,
  created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(user_session_id, property_id)
)`

var indexSQL = []string{
	`CREATE INDEX IF NOT EXISTS idx_properties_location ON properties(location)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_price ON properties(price)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_property_type ON properties(property_type)`,
	`CREATE INDEX IF NOT EXISTS idx_property_images_property_id ON property_images(property_id)`,
	`CREATE INDEX IF NOT EXISTS idx_contact_inquiries_property_id ON contact_inquiries(property_id)`,
	`CREATE INDEX IF NOT EXISTS idx_contact_inquiries_status ON contact_inquiries(status)`,
	`CREATE INDEX IF NOT EXISTS idx_favorites_user_session ON favorites(user_session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_favorites_property_id ON favorites(property_id)`,
}

// EnsureSchema creates the four tables and their indexes if absent.
// Callers treat a failure here as fatal: the process cannot serve traffic
// without the store.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		createPropertiesSQL,
		alterPropertiesSQL,
		createPropertyImagesSQL,
		createContactInquiriesSQL,
		createFavoritesSQL,
	}
	stmts = append(stmts, indexSQL...)
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
