package domain

import "time"

// Property is a listed unit together with its aggregated gallery.
// GalleryImages is always non-nil in read results (empty slice when the
// property has no gallery rows).
type Property struct {
	ID            int64     `json:"id"`
	ProjectName   string    `json:"project_name"`
	BuilderName   string    `json:"builder_name"`
	Location      string    `json:"location"`
	Price         float64   `json:"price"`
	Description   *string   `json:"description"`
	MainImage     *string   `json:"main_image"`
	Bedrooms      *int      `json:"bedrooms"`
	Bathrooms     *int      `json:"bathrooms"`
	Area          *int      `json:"area"`
	PropertyType  *string   `json:"property_type"`
	YearBuilt     *int      `json:"year_built"`
	Parking       *int      `json:"parking"`
	Floors        *int      `json:"floors"`
	GalleryImages []string  `json:"gallery_images"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewProperty carries the fields of a create request. Nil optionals are
// stored as NULL.
type NewProperty struct {
	ProjectName   string
	BuilderName   string
	Location      string
	Price         float64
	Description   *string
	MainImage     *string
	Bedrooms      *int
	Bathrooms     *int
	Area          *int
	PropertyType  *string
	YearBuilt     *int
	Parking       *int
	Floors        *int
	GalleryImages []string
}

// PropertyPatch is a partial update. A nil pointer means "field not
// supplied"; a non-nil pointer overwrites, even with a zero value.
// GalleryImages non-nil (including an empty slice) replaces the whole
// gallery set.
type PropertyPatch struct {
	ProjectName   *string
	BuilderName   *string
	Location      *string
	Price         *float64
	Description   *string
	MainImage     *string
	Bedrooms      *int
	Bathrooms     *int
	Area          *int
	PropertyType  *string
	YearBuilt     *int
	Parking       *int
	Floors        *int
	GalleryImages *[]string
}

// Empty reports whether the patch carries nothing to write.
func (p PropertyPatch) Empty() bool {
	return p.ProjectName == nil && p.BuilderName == nil && p.Location == nil &&
		p.Price == nil && p.Description == nil && p.MainImage == nil &&
		p.Bedrooms == nil && p.Bathrooms == nil && p.Area == nil &&
		p.PropertyType == nil && p.YearBuilt == nil && p.Parking == nil &&
		p.Floors == nil && p.GalleryImages == nil
}

// PropertyFilters are optional, AND-combined list predicates.
type PropertyFilters struct {
	Location     *string  // case-insensitive substring
	MinPrice     *float64 // inclusive
	MaxPrice     *float64 // inclusive
	ProjectName  *string  // case-insensitive substring
	PropertyType *string  // exact
	Bedrooms     *int     // >=
	Bathrooms    *int     // >=
}
