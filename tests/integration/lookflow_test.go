package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chromawave/lookvault/internal/avatar"
	"github.com/chromawave/lookvault/internal/catalog"
	"github.com/chromawave/lookvault/internal/httpserver/deps"
	"github.com/chromawave/lookvault/internal/httpserver/routes"
	"github.com/chromawave/lookvault/internal/kv"
	"github.com/chromawave/lookvault/internal/logger"
	"github.com/chromawave/lookvault/internal/store"
)

// newAPI wires the full route registry onto a fresh in-memory stack, the same
// assembly the real server performs minus the global middlewares.
func newAPI(adapter kv.Adapter) (http.Handler, deps.Deps) {
	d := deps.Deps{
		Logger:         logger.NewNop(),
		StartTime:      time.Now(),
		TimeNow:        time.Now,
		Store:          store.New(context.Background(), adapter, "it:looks", logger.NewNop()),
		Catalog:        catalog.Default(),
		Sessions:       avatar.NewRegistry(),
		ImportBurst:    100,
		ImportPerIPMin: 100,
		MaxImportBytes: 1 << 20,
	}
	r := chi.NewRouter()
	routes.RegisterAll(r, d)
	return r, d
}

func call(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "10.1.1.1:1000"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var decoded map[string]any
	if len(rr.Body.Bytes()) > 0 && strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(rr.Body.Bytes(), &decoded)
	}
	return rr, decoded
}

// TestTryOnAndSaveFlow walks the full demo flow: generate an avatar, try on
// accessories, save the result as a look and read it back.
func TestTryOnAndSaveFlow(t *testing.T) {
	h, d := newAPI(kv.NewMemory())

	rr, body := call(t, h, http.MethodPost, "/api/avatar/generate", `{"image_data":"data:image/png;base64,me"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("generate: got %d: %s", rr.Code, rr.Body.String())
	}
	avatarID, _ := body["avatar_id"].(string)
	if avatarID == "" {
		t.Fatal("generate: no avatar_id in response")
	}

	rr, _ = call(t, h, http.MethodPost, "/api/avatar/"+avatarID+"/try-on",
		`{"category":"clothing","accessory_id":"hoodie"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("try-on: got %d: %s", rr.Code, rr.Body.String())
	}

	rr, body = call(t, h, http.MethodPost, "/api/looks/",
		`{"name":"Cozy Day","notes":"weekend","avatar_id":"`+avatarID+`"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("save: got %d: %s", rr.Code, rr.Body.String())
	}
	saved, _ := body["look"].(map[string]any)
	if saved == nil {
		t.Fatal("save: no look in response")
	}
	lookID, _ := saved["id"].(string)

	rr, body = call(t, h, http.MethodGet, "/api/looks/"+lookID, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("get: got %d", rr.Code)
	}
	got := body["look"].(map[string]any)
	if got["image"] != "data:image/png;base64,me" {
		t.Errorf("saved look should carry the avatar image, got %v", got["image"])
	}
	acc, _ := got["accessories"].(map[string]any)
	if acc["clothing"] != "hoodie" {
		t.Errorf("saved look should carry the try-on selection, got %v", acc)
	}

	if d.Store.Len() != 1 {
		t.Errorf("expected 1 stored look, got %d", d.Store.Len())
	}
}

// TestExportImportAcrossInstances exports from one instance and imports into
// another, the user-facing backup/restore path.
func TestExportImportAcrossInstances(t *testing.T) {
	src, _ := newAPI(kv.NewMemory())

	for _, name := range []string{"First", "Second", "Third"} {
		rr, _ := call(t, src, http.MethodPost, "/api/looks/", `{"name":"`+name+`"}`)
		if rr.Code != http.StatusCreated {
			t.Fatalf("seed %s: got %d", name, rr.Code)
		}
	}

	rr, _ := call(t, src, http.MethodGet, "/api/looks/export", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("export: got %d", rr.Code)
	}
	exported := rr.Body.String()

	dst, dstDeps := newAPI(kv.NewMemory())
	rr, body := call(t, dst, http.MethodPost, "/api/looks/import", exported)
	if rr.Code != http.StatusOK {
		t.Fatalf("import: got %d: %s", rr.Code, rr.Body.String())
	}
	if imported, _ := body["imported"].(float64); imported != 3 {
		t.Errorf("import: expected 3 records, got %v", body["imported"])
	}
	if dstDeps.Store.Len() != 3 {
		t.Errorf("expected 3 stored looks, got %d", dstDeps.Store.Len())
	}

	// Importing the same payload again overwrites by id, adding nothing.
	rr, _ = call(t, dst, http.MethodPost, "/api/looks/import", exported)
	if rr.Code != http.StatusOK {
		t.Fatalf("re-import: got %d", rr.Code)
	}
	if dstDeps.Store.Len() != 3 {
		t.Errorf("re-import must not duplicate, got %d looks", dstDeps.Store.Len())
	}
}

// TestCollectionSurvivesRestart persists through one store instance and reads
// through a second one sharing the adapter, simulating a process restart.
func TestCollectionSurvivesRestart(t *testing.T) {
	adapter := kv.NewMemory()

	first, _ := newAPI(adapter)
	rr, body := call(t, first, http.MethodPost, "/api/looks/", `{"name":"Durable"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("save: got %d", rr.Code)
	}
	lookID := body["look"].(map[string]any)["id"].(string)

	second, _ := newAPI(adapter)
	rr, body = call(t, second, http.MethodGet, "/api/looks/"+lookID, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("get after restart: got %d", rr.Code)
	}
	if body["look"].(map[string]any)["name"] != "Durable" {
		t.Error("look should survive a restart")
	}

	rr, _ = call(t, second, http.MethodDelete, "/api/looks/"+lookID, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("delete: got %d", rr.Code)
	}

	_, thirdDeps := newAPI(adapter)
	if thirdDeps.Store.Len() != 0 {
		t.Errorf("deletion should survive a restart, got %d looks", thirdDeps.Store.Len())
	}
}
