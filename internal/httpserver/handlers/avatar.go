package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chromawave/lookvault/internal/httpserver/deps"
	"github.com/chromawave/lookvault/internal/logger"
)

type generateAvatarRequest struct {
	ImageData string `json:"image_data"`
}

type generateAvatarResponse struct {
	Success     bool   `json:"success"`
	AvatarID    string `json:"avatar_id"`
	AvatarImage string `json:"avatar_image"`
}

type tryOnRequest struct {
	Category    string `json:"category"`
	AccessoryID string `json:"accessory_id"`
}

type tryOnResponse struct {
	Success     bool   `json:"success"`
	AvatarID    string `json:"avatar_id"`
	Category    string `json:"category"`
	AccessoryID string `json:"accessory_id"`
	ResultImage string `json:"result_image"`
}

type renderResponse struct {
	Success     bool              `json:"success"`
	AvatarID    string            `json:"avatar_id"`
	ResultImage string            `json:"result_image"`
	Accessories map[string]string `json:"accessories"`
}

type clearResponse struct {
	Success     bool   `json:"success"`
	AvatarID    string `json:"avatar_id"`
	ResultImage string `json:"result_image"`
}

// GenerateAvatar opens a try-on session around an uploaded image. The demo
// pipeline performs no actual generation: the input image is the avatar.
func GenerateAvatar(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateAvatarRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImageData == "" {
			writeError(w, http.StatusBadRequest, "No image provided")
			return
		}

		session := d.Sessions.Create(req.ImageData)
		d.Logger.Info("avatar session created",
			logger.String("avatar_id", session.ID),
			logger.Int("sessions", d.Sessions.Count()))

		writeJSON(w, http.StatusOK, generateAvatarResponse{
			Success:     true,
			AvatarID:    session.ID,
			AvatarImage: session.Image,
		})
	}
}

// TryOnAccessory records an accessory selection on a session. Each category
// holds at most one accessory; a new selection replaces the previous one.
func TryOnAccessory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		avatarID := chi.URLParam(r, "id")

		var req tryOnRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Category == "" || req.AccessoryID == "" {
			writeError(w, http.StatusBadRequest, "Category and accessory_id are required")
			return
		}

		if _, ok := d.Catalog.Get(req.Category, req.AccessoryID); !ok {
			writeError(w, http.StatusNotFound,
				"Accessory "+req.AccessoryID+" not found in category "+req.Category)
			return
		}

		session, ok := d.Sessions.TryOn(avatarID, req.Category, req.AccessoryID)
		if !ok {
			writeError(w, http.StatusNotFound, "Avatar not found")
			return
		}

		writeJSON(w, http.StatusOK, tryOnResponse{
			Success:     true,
			AvatarID:    session.ID,
			Category:    req.Category,
			AccessoryID: req.AccessoryID,
			ResultImage: session.Image,
		})
	}
}

// RenderAvatar returns the current look of a session: the avatar image plus
// the accessory selection.
func RenderAvatar(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := d.Sessions.Get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "Avatar not found")
			return
		}

		writeJSON(w, http.StatusOK, renderResponse{
			Success:     true,
			AvatarID:    session.ID,
			ResultImage: session.Image,
			Accessories: session.Accessories,
		})
	}
}

// ClearAccessories drops every selection from a session.
func ClearAccessories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := d.Sessions.Clear(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "Avatar not found")
			return
		}

		writeJSON(w, http.StatusOK, clearResponse{
			Success:     true,
			AvatarID:    session.ID,
			ResultImage: session.Image,
		})
	}
}
