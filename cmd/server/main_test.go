package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/handlers"
	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/storage"
)

func TestRouterWiring(t *testing.T) {
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err, "failed to create database")
	defer db.Close()

	h := handlers.NewHandlers(db, []byte("test-secret"), false)
	router := handlers.NewRouter(h, "*")

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{
			name:       "expenses require auth",
			method:     "GET",
			path:       "/api/expenses",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "register rejects empty body",
			method:     "POST",
			path:       "/api/auth/register",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "login rejects empty body",
			method:     "POST",
			path:       "/api/auth/login",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown path is JSON 404",
			method:     "GET",
			path:       "/nope",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code,
				"%s %s returned unexpected status", tt.method, tt.path)
		})
	}
}

func TestRouterWiringAuthDisabled(t *testing.T) {
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err, "failed to create database")
	defer db.Close()

	h := handlers.NewHandlers(db, nil, true)
	router := handlers.NewRouter(h, "*")

	// Expenses are public in the open variant.
	req := httptest.NewRequest("GET", "/api/expenses", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Auth endpoints are not mounted.
	req = httptest.NewRequest("POST", "/api/auth/login", http.NoBody)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
