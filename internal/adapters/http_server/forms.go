package httpserver

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jatinm79/Real-Estate-App/internal/domain"
)

// Upload policy for admin image uploads.
const (
	maxFileSize     = 10 << 20 // 10MB per file
	maxGalleryFiles = 10
	maxFormMemory   = 32 << 20
)

var allowedImageExts = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".webp": true, ".gif": true,
}

var allowedImageMIMEs = map[string]bool{
	"image/jpeg": true, "image/jpg": true, "image/png": true,
	"image/webp": true, "image/gif": true,
}

// propertyPayload is the wire shape shared by create and update. Every
// field is a pointer so "not supplied" and "supplied as zero" stay
// distinguishable for partial updates.
type propertyPayload struct {
	ProjectName   *string   `json:"project_name"`
	BuilderName   *string   `json:"builder_name"`
	Location      *string   `json:"location"`
	Price         *float64  `json:"price"`
	Description   *string   `json:"description"`
	MainImage     *string   `json:"main_image"`
	Bedrooms      *int      `json:"bedrooms"`
	Bathrooms     *int      `json:"bathrooms"`
	Area          *int      `json:"area"`
	PropertyType  *string   `json:"property_type"`
	YearBuilt     *int      `json:"year_built"`
	Parking       *int      `json:"parking"`
	Floors        *int      `json:"floors"`
	GalleryImages *[]string `json:"gallery_images"`
}

// parsePropertyRequest accepts the admin form as multipart (files +
// textual fields) or as plain JSON. Returned field errors are coercion
// and upload-policy violations; validation proper happens afterwards.
func parsePropertyRequest(r *http.Request) (propertyPayload, []byte, [][]byte, []fieldError) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		return parseMultipartProperty(r)
	}

	var p propertyPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		return p, nil, nil, []fieldError{{Field: "body", Message: "invalid JSON body"}}
	}
	trimPayload(&p)
	return p, nil, nil, nil
}

func parseMultipartProperty(r *http.Request) (propertyPayload, []byte, [][]byte, []fieldError) {
	var p propertyPayload
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return p, nil, nil, []fieldError{{Field: "body", Message: "invalid multipart form"}}
	}

	var errs []fieldError
	form := r.MultipartForm

	strField := func(name string) *string {
		vs, ok := form.Value[name]
		if !ok || len(vs) == 0 {
			return nil
		}
		v := strings.TrimSpace(vs[0])
		return &v
	}
	intField := func(name string) *int {
		vs, ok := form.Value[name]
		if !ok || len(vs) == 0 || strings.TrimSpace(vs[0]) == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(vs[0]))
		if err != nil {
			errs = append(errs, fieldError{Field: name, Message: name + " must be an integer"})
			return nil
		}
		return &n
	}

	p.ProjectName = strField("project_name")
	p.BuilderName = strField("builder_name")
	p.Location = strField("location")
	p.Description = strField("description")
	p.PropertyType = strField("property_type")
	if v := strField("price"); v != nil {
		f, err := strconv.ParseFloat(*v, 64)
		if err != nil {
			errs = append(errs, fieldError{Field: "price", Message: "Price must be a valid positive number"})
		} else {
			p.Price = &f
		}
	}
	p.Bedrooms = intField("bedrooms")
	p.Bathrooms = intField("bathrooms")
	p.Area = intField("area")
	p.YearBuilt = intField("year_built")
	p.Parking = intField("parking")
	p.Floors = intField("floors")

	var mainImage []byte
	if fhs := form.File["main_image"]; len(fhs) > 0 {
		data, fe := readUpload(fhs[0], "main_image")
		if fe != nil {
			errs = append(errs, *fe)
		} else {
			mainImage = data
		}
	}

	var gallery [][]byte
	if fhs := form.File["gallery_images"]; len(fhs) > 0 {
		if len(fhs) > maxGalleryFiles {
			errs = append(errs, fieldError{Field: "gallery_images",
				Message: fmt.Sprintf("Too many files. Maximum is %d images", maxGalleryFiles)})
		} else {
			for _, fh := range fhs {
				data, fe := readUpload(fh, "gallery_images")
				if fe != nil {
					errs = append(errs, *fe)
					continue
				}
				gallery = append(gallery, data)
			}
		}
	}

	return p, mainImage, gallery, errs
}

func readUpload(fh *multipart.FileHeader, field string) ([]byte, *fieldError) {
	if fh.Size > maxFileSize {
		return nil, &fieldError{Field: field, Message: "File too large. Maximum size is 10MB"}
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	mime := strings.ToLower(fh.Header.Get("Content-Type"))
	if !allowedImageExts[ext] || !allowedImageMIMEs[mime] {
		return nil, &fieldError{Field: field,
			Message: "Only image files are allowed (JPEG, JPG, PNG, WebP, GIF)"}
	}

	f, err := fh.Open()
	if err != nil {
		return nil, &fieldError{Field: field, Message: "could not read uploaded file"}
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxFileSize+1))
	if err != nil {
		return nil, &fieldError{Field: field, Message: "could not read uploaded file"}
	}
	if len(data) > maxFileSize {
		return nil, &fieldError{Field: field, Message: "File too large. Maximum size is 10MB"}
	}
	return data, nil
}

func trimPayload(p *propertyPayload) {
	trim := func(s **string) {
		if *s != nil {
			v := strings.TrimSpace(**s)
			*s = &v
		}
	}
	trim(&p.ProjectName)
	trim(&p.BuilderName)
	trim(&p.Location)
	trim(&p.Description)
	trim(&p.PropertyType)
}

// validateProperty checks the supplied fields; when create is set, the
// required fields must also be present.
func validateProperty(p propertyPayload, create bool) []fieldError {
	var errs []fieldError
	checkLen := func(field string, v *string, min, max int, requiredMsg string) {
		if v == nil {
			if create {
				errs = append(errs, fieldError{Field: field, Message: requiredMsg})
			}
			return
		}
		if len(*v) < min || len(*v) > max {
			errs = append(errs, fieldError{Field: field,
				Message: fmt.Sprintf("%s must be between %d and %d characters", field, min, max)})
		}
	}

	checkLen("project_name", p.ProjectName, 2, 255, "Project name is required")
	checkLen("builder_name", p.BuilderName, 2, 255, "Builder name is required")
	checkLen("location", p.Location, 5, 500, "Location is required")

	if p.Price == nil {
		if create {
			errs = append(errs, fieldError{Field: "price", Message: "Price is required"})
		}
	} else if *p.Price < 0 {
		errs = append(errs, fieldError{Field: "price", Message: "Price must be a valid positive number"})
	}

	if p.Description != nil && len(*p.Description) > 2000 {
		errs = append(errs, fieldError{Field: "description", Message: "Description must not exceed 2000 characters"})
	}
	return errs
}

func (p propertyPayload) toNewProperty() domain.NewProperty {
	np := domain.NewProperty{
		ProjectName:  *p.ProjectName,
		BuilderName:  *p.BuilderName,
		Location:     *p.Location,
		Price:        *p.Price,
		Description:  p.Description,
		MainImage:    p.MainImage,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Area:         p.Area,
		PropertyType: p.PropertyType,
		YearBuilt:    p.YearBuilt,
		Parking:      p.Parking,
		Floors:       p.Floors,
	}
	if p.GalleryImages != nil {
		np.GalleryImages = *p.GalleryImages
	}
	return np
}

func (p propertyPayload) toPatch() domain.PropertyPatch {
	return domain.PropertyPatch{
		ProjectName:   p.ProjectName,
		BuilderName:   p.BuilderName,
		Location:      p.Location,
		Price:         p.Price,
		Description:   p.Description,
		MainImage:     p.MainImage,
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		Area:          p.Area,
		PropertyType:  p.PropertyType,
		YearBuilt:     p.YearBuilt,
		Parking:       p.Parking,
		Floors:        p.Floors,
		GalleryImages: p.GalleryImages,
	}
}

// parseFilters coerces list query parameters into typed filters.
func parseFilters(r *http.Request) (domain.PropertyFilters, []fieldError) {
	q := r.URL.Query()
	var (
		f    domain.PropertyFilters
		errs []fieldError
	)
	strParam := func(name string) *string {
		if v := strings.TrimSpace(q.Get(name)); v != "" {
			return &v
		}
		return nil
	}
	floatParam := func(name string) *float64 {
		v := strings.TrimSpace(q.Get(name))
		if v == "" {
			return nil
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || n < 0 {
			errs = append(errs, fieldError{Field: name, Message: name + " must be a valid number"})
			return nil
		}
		return &n
	}
	intParam := func(name string) *int {
		v := strings.TrimSpace(q.Get(name))
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fieldError{Field: name, Message: name + " must be an integer"})
			return nil
		}
		return &n
	}

	f.Location = strParam("location")
	f.MinPrice = floatParam("minPrice")
	f.MaxPrice = floatParam("maxPrice")
	f.ProjectName = strParam("projectName")
	f.PropertyType = strParam("propertyType")
	f.Bedrooms = intParam("bedrooms")
	f.Bathrooms = intParam("bathrooms")
	return f, errs
}
