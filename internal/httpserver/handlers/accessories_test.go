package handlers

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chromawave/lookvault/internal/httpserver/deps"
)

func newAccessoriesRouter(d deps.Deps) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/accessories", ListCategories(d))
	r.Get("/api/accessories/{category}", ListAccessories(d))
	return r
}

func TestListCategories(t *testing.T) {
	d := newTestDeps(t, nil)
	h := newAccessoriesRouter(d)

	rr := doJSON(t, h, http.MethodGet, "/api/accessories", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp categoriesResponse
	decodeBody(t, rr, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"clothing", "jewelry", "shoes", "watches"}, resp.Categories)
}

func TestListAccessoriesByCategory(t *testing.T) {
	d := newTestDeps(t, nil)
	h := newAccessoriesRouter(d)

	rr := doJSON(t, h, http.MethodGet, "/api/accessories/shoes", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp accessoriesResponse
	decodeBody(t, rr, &resp)
	assert.Equal(t, "shoes", resp.Category)
	require.NotEmpty(t, resp.Accessories)
	assert.NotEmpty(t, resp.Accessories[0].ID)
	assert.NotEmpty(t, resp.Accessories[0].Name)
}

func TestListAccessoriesUnknownCategory(t *testing.T) {
	d := newTestDeps(t, nil)
	h := newAccessoriesRouter(d)

	rr := doJSON(t, h, http.MethodGet, "/api/accessories/hats", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp accessoriesResponse
	decodeBody(t, rr, &resp)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Accessories)
}
