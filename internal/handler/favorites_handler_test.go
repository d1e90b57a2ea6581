package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/catalog"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestFavoritesHandler(t *testing.T) {
	handler := NewFavoritesHandler(catalog.NewFavorites(), zerolog.Nop())

	toggle := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/favorites/"+id, nil)
		req = mux.SetURLVars(req, map[string]string{"id": id})
		w := httptest.NewRecorder()
		handler.Toggle(w, req)
		return w
	}

	w := toggle("3")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"product_id":"3","favorite":true}`, w.Body.String())

	toggle("1")

	req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
	w = httptest.NewRecorder()
	handler.List(w, req)
	assert.JSONEq(t, `["1","3"]`, w.Body.String())

	w = toggle("3")
	assert.JSONEq(t, `{"product_id":"3","favorite":false}`, w.Body.String())
}
