package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jatinm79/Real-Estate-App/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

// propertySelect aggregates gallery URLs in insertion order; COALESCE keeps
// the column a JSON array ('[]') for properties without gallery rows.
const propertySelect = `
SELECT
  p.id,
  p.project_name,
  p.builder_name,
  p.location,
  p.price,
  p.description,
  p.main_image,
  p.bedrooms,
  p.bathrooms,
  p.area,
  p.property_type,
  p.year_built,
  p.parking,
  p.floors,
  p.created_at,
  p.updated_at,
  COALESCE(
    json_agg(pi.image_url ORDER BY pi.id) FILTER (WHERE pi.image_url IS NOT NULL),
    '[]'
  ) AS gallery_images
FROM properties p
LEFT JOIN property_images pi ON pi.property_id = p.id
`

const propertyGroupBy = ` GROUP BY p.id`

const insertPropertySQL = `
INSERT INTO properties
  (project_name, builder_name, location, price, description, main_image,
   bedrooms, bathrooms, area, property_type, year_built, parking, floors)
VALUES
  ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id`

const insertImageSQL = `INSERT INTO property_images (property_id, image_url) VALUES ($1, $2)`

const deleteImagesSQL = `DELETE FROM property_images WHERE property_id = $1`

type PropertyRepo struct{ db *sql.DB }

func NewPropertyRepo(db *sql.DB) *PropertyRepo { return &PropertyRepo{db: db} }

type rowScanner interface{ Scan(dest ...any) error }

func scanProperty(row rowScanner) (domain.Property, error) {
	var (
		p                             domain.Property
		desc, mainImage, propertyType sql.NullString
		bedrooms, bathrooms, area     sql.NullInt64
		yearBuilt, parking, floors    sql.NullInt64
		galleryJSON                   []byte
	)
	if err := row.Scan(
		&p.ID,
		&p.ProjectName,
		&p.BuilderName,
		&p.Location,
		&p.Price,
		&desc,
		&mainImage,
		&bedrooms,
		&bathrooms,
		&area,
		&propertyType,
		&yearBuilt,
		&parking,
		&floors,
		&p.CreatedAt,
		&p.UpdatedAt,
		&galleryJSON,
	); err != nil {
		return domain.Property{}, err
	}

	if desc.Valid {
		s := desc.String
		p.Description = &s
	}
	if mainImage.Valid {
		s := mainImage.String
		p.MainImage = &s
	}
	if propertyType.Valid {
		s := propertyType.String
		p.PropertyType = &s
	}
	p.Bedrooms = intPtr(bedrooms)
	p.Bathrooms = intPtr(bathrooms)
	p.Area = intPtr(area)
	p.YearBuilt = intPtr(yearBuilt)
	p.Parking = intPtr(parking)
	p.Floors = intPtr(floors)

	p.GalleryImages = []string{}
	if len(galleryJSON) > 0 {
		if err := json.Unmarshal(galleryJSON, &p.GalleryImages); err != nil {
			return domain.Property{}, fmt.Errorf("decode gallery: %w", err)
		}
	}
	return p, nil
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func (r *PropertyRepo) FindAll(ctx context.Context, f domain.PropertyFilters) ([]domain.Property, error) {
	qb := applyPropertyFilters(f)
	query := propertySelect + qb.where() + propertyGroupBy + ` ORDER BY p.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, qb.args...)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	out := []domain.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("list properties: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return out, nil
}

func (r *PropertyRepo) FindByID(ctx context.Context, id int64) (domain.Property, error) {
	query := propertySelect + ` WHERE p.id = $1` + propertyGroupBy
	p, err := scanProperty(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return domain.Property{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Property{}, fmt.Errorf("get property %d: %w", id, err)
	}
	return p, nil
}

// Create inserts the property row and its gallery rows in one transaction,
// then re-reads the committed state so the caller sees the aggregated view.
func (r *PropertyRepo) Create(ctx context.Context, np domain.NewProperty) (domain.Property, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Property{}, fmt.Errorf("create property: %w", err)
	}
	defer tx.Rollback() // no-op once committed

	var id int64
	err = tx.QueryRowContext(ctx, insertPropertySQL,
		np.ProjectName,
		np.BuilderName,
		np.Location,
		np.Price,
		valStr(np.Description),
		valStr(np.MainImage),
		valInt(np.Bedrooms),
		valInt(np.Bathrooms),
		valInt(np.Area),
		valStr(np.PropertyType),
		valInt(np.YearBuilt),
		valInt(np.Parking),
		valInt(np.Floors),
	).Scan(&id)
	if err != nil {
		return domain.Property{}, fmt.Errorf("create property: %w", classify(err))
	}

	for _, u := range np.GalleryImages {
		if _, err := tx.ExecContext(ctx, insertImageSQL, id, u); err != nil {
			return domain.Property{}, fmt.Errorf("create property %d gallery: %w", id, classify(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.Property{}, fmt.Errorf("create property: %w", err)
	}
	return r.FindByID(ctx, id)
}

// Update writes only the fields present in the patch and always bumps
// updated_at. A patch carrying a gallery set (even empty) replaces all
// existing gallery rows; this is a full replace, never a merge.
func (r *PropertyRepo) Update(ctx context.Context, id int64, patch domain.PropertyPatch) (domain.Property, error) {
	if patch.Empty() {
		return domain.Property{}, domain.ErrNoFields
	}

	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.ProjectName != nil {
		set("project_name", *patch.ProjectName)
	}
	if patch.BuilderName != nil {
		set("builder_name", *patch.BuilderName)
	}
	if patch.Location != nil {
		set("location", *patch.Location)
	}
	if patch.Price != nil {
		set("price", *patch.Price)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.MainImage != nil {
		set("main_image", *patch.MainImage)
	}
	if patch.Bedrooms != nil {
		set("bedrooms", *patch.Bedrooms)
	}
	if patch.Bathrooms != nil {
		set("bathrooms", *patch.Bathrooms)
	}
	if patch.Area != nil {
		set("area", *patch.Area)
	}
	if patch.PropertyType != nil {
		set("property_type", *patch.PropertyType)
	}
	if patch.YearBuilt != nil {
		set("year_built", *patch.YearBuilt)
	}
	if patch.Parking != nil {
		set("parking", *patch.Parking)
	}
	if patch.Floors != nil {
		set("floors", *patch.Floors)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")

	args = append(args, id)
	query := fmt.Sprintf("UPDATE properties SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Property{}, fmt.Errorf("update property %d: %w", id, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.Property{}, fmt.Errorf("update property %d: %w", id, classify(err))
	}
	if n, err := res.RowsAffected(); err != nil {
		return domain.Property{}, fmt.Errorf("update property %d: %w", id, err)
	} else if n == 0 {
		return domain.Property{}, domain.ErrNotFound
	}

	if patch.GalleryImages != nil {
		if _, err := tx.ExecContext(ctx, deleteImagesSQL, id); err != nil {
			return domain.Property{}, fmt.Errorf("update property %d gallery: %w", id, err)
		}
		for _, u := range *patch.GalleryImages {
			if _, err := tx.ExecContext(ctx, insertImageSQL, id, u); err != nil {
				return domain.Property{}, fmt.Errorf("update property %d gallery: %w", id, classify(err))
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.Property{}, fmt.Errorf("update property %d: %w", id, err)
	}
	return r.FindByID(ctx, id)
}

// Delete removes the property row. Gallery rows and favorites go with it
// via ON DELETE CASCADE; inquiries keep their row with property_id nulled.
func (r *PropertyRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete property %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete property %d: %w", id, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
