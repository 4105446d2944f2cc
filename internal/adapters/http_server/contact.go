package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jatinm79/Real-Estate-App/internal/domain"
)

type inquiryRequest struct {
	PropertyID *int64  `json:"property_id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone"`
	Message    string  `json:"message"`
}

func (h *Handlers) submitInquiry(w http.ResponseWriter, r *http.Request) {
	var body inquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil, "")
		return
	}

	body.Name = strings.TrimSpace(body.Name)
	body.Email = strings.TrimSpace(body.Email)
	body.Message = strings.TrimSpace(body.Message)
	if body.Phone != nil {
		p := strings.TrimSpace(*body.Phone)
		body.Phone = &p
	}

	var errs []fieldError
	if body.Name == "" {
		errs = append(errs, fieldError{Field: "name", Message: "Name is required"})
	}
	if body.Email == "" {
		errs = append(errs, fieldError{Field: "email", Message: "Email is required"})
	}
	if body.Message == "" {
		errs = append(errs, fieldError{Field: "message", Message: "Message is required"})
	}
	if body.PropertyID != nil && *body.PropertyID <= 0 {
		errs = append(errs, fieldError{Field: "property_id", Message: "Property ID must be a positive number"})
	}
	if len(errs) > 0 {
		writeError(w, http.StatusBadRequest, "Validation failed", errs, "")
		return
	}

	inquiry, err := h.Inquiries.Submit(r.Context(), domain.NewInquiry{
		PropertyID: body.PropertyID,
		Name:       body.Name,
		Email:      body.Email,
		Phone:      body.Phone,
		Message:    body.Message,
	})
	if err != nil {
		h.writeDomainError(w, err, "Property not found")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Inquiry submitted successfully",
		"data":    map[string]any{"inquiry": inquiry},
	})
}
