package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/jatinm79/Real-Estate-App/internal/app"
	"github.com/jatinm79/Real-Estate-App/internal/domain"
)

type Handlers struct {
	Props     *app.PropertyService
	Favorites domain.FavoritesLedger
	Inquiries domain.InquiryLog

	env string
	dev bool
}

func NewHandlers(props *app.PropertyService, favs domain.FavoritesLedger, inq domain.InquiryLog, appEnv string) *Handlers {
	return &Handlers{
		Props:     props,
		Favorites: favs,
		Inquiries: inq,
		env:       appEnv,
		dev:       appEnv == "dev" || appEnv == "development",
	}
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Route("/api", func(api chi.Router) {
		api.Get("/health", h.health)

		api.Route("/properties", func(r chi.Router) {
			r.Get("/", h.listProperties)
			r.Post("/", h.createProperty)
			r.Get("/{id}", h.getProperty)
			r.Put("/{id}", h.updateProperty)
			r.Delete("/{id}", h.deleteProperty)
		})

		api.Route("/favorites", func(r chi.Router) {
			r.Get("/", h.listFavorites)
			r.Post("/", h.addFavorite)
			r.Delete("/{propertyId}", h.removeFavorite)
			r.Get("/check/{propertyId}", h.checkFavorite)
		})

		// One submission per ~12s per IP, small burst for legitimate retries.
		api.With(RateLimit(rate.Every(12*time.Second), 5)).Post("/contact", h.submitInquiry)
	})

	s.mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Route "+r.URL.Path+" not found", nil, "")
	})
}

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"message":     "Backend server is running!",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.env,
	})
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	filters, errs := parseFilters(r)
	if len(errs) > 0 {
		writeError(w, http.StatusBadRequest, "Invalid filter parameters", errs, "")
		return
	}
	properties, err := h.Props.List(r.Context(), filters)
	if err != nil {
		h.writeDomainError(w, err, "Properties not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"results": len(properties),
		"data":    map[string]any{"properties": properties},
	})
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Property ID must be a positive number", nil, "")
		return
	}
	property, err := h.Props.Get(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err, "Property not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"property": property},
	})
}

func (h *Handlers) createProperty(w http.ResponseWriter, r *http.Request) {
	payload, mainImage, gallery, parseErrs := parsePropertyRequest(r)
	if len(parseErrs) > 0 {
		writeError(w, http.StatusBadRequest, parseErrs[0].Message, parseErrs, "")
		return
	}
	if errs := validateProperty(payload, true); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, "Validation failed", errs, "")
		return
	}

	property, err := h.Props.Create(r.Context(), payload.toNewProperty(), mainImage, gallery)
	if err != nil {
		h.writeDomainError(w, err, "Property not found")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"status":  "success",
		"message": "Property created successfully",
		"data":    map[string]any{"property": property},
	})
}

func (h *Handlers) updateProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Property ID must be a positive number", nil, "")
		return
	}
	payload, mainImage, gallery, parseErrs := parsePropertyRequest(r)
	if len(parseErrs) > 0 {
		writeError(w, http.StatusBadRequest, parseErrs[0].Message, parseErrs, "")
		return
	}
	if errs := validateProperty(payload, false); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, "Validation failed", errs, "")
		return
	}

	property, err := h.Props.Update(r.Context(), id, payload.toPatch(), mainImage, gallery)
	if err != nil {
		h.writeDomainError(w, err, "Property not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Property updated successfully",
		"data":    map[string]any{"property": property},
	})
}

func (h *Handlers) deleteProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Property ID must be a positive number", nil, "")
		return
	}
	if err := h.Props.Delete(r.Context(), id); err != nil {
		h.writeDomainError(w, err, "Property not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Property deleted successfully",
	})
}
