package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/chromawave/lookvault/internal/httpserver/deps"
	"github.com/chromawave/lookvault/internal/kv"
	"github.com/chromawave/lookvault/internal/logger"
	"github.com/chromawave/lookvault/internal/look"
	"github.com/chromawave/lookvault/internal/store"
)

type looksResponse struct {
	Success bool           `json:"success"`
	Count   int            `json:"count"`
	Looks   []*look.Record `json:"looks"`
}

type lookResponse struct {
	Success bool         `json:"success"`
	Look    *look.Record `json:"look"`
	Synced  bool         `json:"synced"`
}

type deleteResponse struct {
	Success bool `json:"success"`
	Deleted bool `json:"deleted"`
	Synced  bool `json:"synced"`
}

type importResponse struct {
	Success  bool `json:"success"`
	Imported int  `json:"imported"`
	Synced   bool `json:"synced"`
}

type createLookRequest struct {
	Name        string            `json:"name"`
	Notes       string            `json:"notes"`
	Image       string            `json:"image"`
	Accessories map[string]string `json:"accessories"`

	// AvatarID sources Image and Accessories from a live try-on session
	// when they are not given explicitly.
	AvatarID string `json:"avatar_id"`
}

// ListLooks serves the collection. A search query filters by name/notes and
// keeps insertion order; otherwise the sort key orders the full collection.
func ListLooks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
			results := d.Store.Search(q)
			writeJSON(w, http.StatusOK, looksResponse{Success: true, Count: len(results), Looks: results})
			return
		}

		sortKey, err := look.ParseSortKey(r.URL.Query().Get("sort"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		results := d.Store.List(sortKey)
		writeJSON(w, http.StatusOK, looksResponse{Success: true, Count: len(results), Looks: results})
	}
}

// CreateLook saves a new look. A persistence failure does not undo the save:
// the response still carries the record, with synced=false flagging that the
// durable copy is behind.
func CreateLook(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createLookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if req.AvatarID != "" {
			session, ok := d.Sessions.Get(req.AvatarID)
			if !ok {
				writeError(w, http.StatusNotFound, "Avatar not found")
				return
			}
			if req.Image == "" {
				req.Image = session.Image
			}
			if req.Accessories == nil {
				req.Accessories = session.Accessories
			}
		}

		rec, err := d.Store.Save(r.Context(), req.Name, req.Notes, req.Image, req.Accessories)

		var verr *look.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		if err != nil && !isPersistenceError(err) {
			d.Logger.Error("failed to save look", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save look")
			return
		}

		writeJSON(w, http.StatusCreated, lookResponse{Success: true, Look: rec, Synced: err == nil})
	}
}

// GetLook returns a single look by id.
func GetLook(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := d.Store.Get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "Look not found")
			return
		}
		writeJSON(w, http.StatusOK, lookResponse{Success: true, Look: rec, Synced: d.Store.Synced()})
	}
}

// DeleteLook removes a look. Deletion is idempotent: an absent id yields
// deleted=false, not an error.
func DeleteLook(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deleted, err := d.Store.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil && !isPersistenceError(err) {
			d.Logger.Error("failed to delete look", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to delete look")
			return
		}
		writeJSON(w, http.StatusOK, deleteResponse{Success: true, Deleted: deleted, Synced: err == nil})
	}
}

// ExportLooks streams the collection as a downloadable JSON array.
func ExportLooks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blob, err := d.Store.ExportAll()
		if err != nil {
			d.Logger.Error("failed to export looks", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to export looks")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="my-looks.json"`)
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, blob)
	}
}

// ImportLooks merges an uploaded collection. The merge is all-or-nothing: any
// invalid record rejects the whole payload with 400 and changes nothing.
func ImportLooks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, d.MaxImportBytes))
		if err != nil {
			writeError(w, http.StatusRequestEntityTooLarge, "import payload too large")
			return
		}

		count, err := d.Store.ImportMerge(r.Context(), string(body))

		var ierr *store.ImportError
		if errors.As(err, &ierr) {
			writeError(w, http.StatusBadRequest, ierr.Error())
			return
		}
		if err != nil && !isPersistenceError(err) {
			d.Logger.Error("failed to import looks", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to import looks")
			return
		}

		writeJSON(w, http.StatusOK, importResponse{Success: true, Imported: count, Synced: err == nil})
	}
}

func isPersistenceError(err error) bool {
	var perr *kv.PersistenceError
	return errors.As(err, &perr)
}
