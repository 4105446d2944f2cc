package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
)

type favoriteRequest struct {
	PropertyID    *int64 `json:"property_id"`
	UserSessionID string `json:"user_session_id"`
}

// sessionID accepts the client session id from the query string or, for
// bodied requests, from the JSON payload.
func sessionID(r *http.Request, body *favoriteRequest) string {
	if s := strings.TrimSpace(r.URL.Query().Get("user_session_id")); s != "" {
		return s
	}
	if body != nil {
		return strings.TrimSpace(body.UserSessionID)
	}
	return ""
}

func (h *Handlers) listFavorites(w http.ResponseWriter, r *http.Request) {
	session := sessionID(r, nil)
	if session == "" {
		writeError(w, http.StatusBadRequest, "User session ID is required", nil, "")
		return
	}
	properties, err := h.Favorites.ListForSession(r.Context(), session)
	if err != nil {
		h.writeDomainError(w, err, "Favorites not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"results": len(properties),
		"data":    map[string]any{"properties": properties},
	})
}

func (h *Handlers) addFavorite(w http.ResponseWriter, r *http.Request) {
	var body favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil, "")
		return
	}
	session := sessionID(r, &body)
	if session == "" || body.PropertyID == nil || *body.PropertyID <= 0 {
		writeError(w, http.StatusBadRequest, "Property ID and user session ID are required", nil, "")
		return
	}

	if err := h.Favorites.Add(r.Context(), session, *body.PropertyID); err != nil {
		h.writeDomainError(w, err, "Property not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Added to favorites",
		"data":    map[string]any{"is_favorited": true},
	})
}

func (h *Handlers) removeFavorite(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := pathID(r, "propertyId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Property ID must be a positive number", nil, "")
		return
	}

	var body favoriteRequest
	if r.Body != nil && r.ContentLength != 0 {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}
	session := sessionID(r, &body)
	if session == "" {
		writeError(w, http.StatusBadRequest, "User session ID is required", nil, "")
		return
	}

	if err := h.Favorites.Remove(r.Context(), session, propertyID); err != nil {
		h.writeDomainError(w, err, "Favorite not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Removed from favorites",
		"data":    map[string]any{"is_favorited": false},
	})
}

func (h *Handlers) checkFavorite(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := pathID(r, "propertyId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Property ID must be a positive number", nil, "")
		return
	}
	session := sessionID(r, nil)
	if session == "" {
		writeError(w, http.StatusBadRequest, "User session ID is required", nil, "")
		return
	}

	favorited, err := h.Favorites.IsFavorited(r.Context(), session, propertyID)
	if err != nil {
		h.writeDomainError(w, err, "Property not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]any{"is_favorited": favorited},
	})
}
