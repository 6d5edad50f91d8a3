// Package handlers implements the JSON HTTP surface of the expense
// tracker: the expense record CRUD and the optional auth endpoints.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/apperr"
	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/storage"
)

// Context key type to avoid collisions.
type contextKey string

// identityContextKey is the context key for the authenticated identity.
const identityContextKey contextKey = "identity"

// maxBodyBytes caps request body size; payloads are a handful of short
// fields, so anything near this is garbage.
const maxBodyBytes = 1 << 20

// Identity is the decoded caller identity attached to the request context
// by the auth middleware.
type Identity struct {
	UserID   int64
	Username string
}

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	db           *storage.DB
	jwtSecret    []byte
	authDisabled bool
}

// NewHandlers creates a new Handlers instance. With authDisabled set the
// expense operations run unscoped and the auth endpoints are not mounted.
func NewHandlers(db *storage.DB, jwtSecret []byte, authDisabled bool) *Handlers {
	return &Handlers{db: db, jwtSecret: jwtSecret, authDisabled: authDisabled}
}

// identityFromRequest retrieves the authenticated identity, if any.
func identityFromRequest(r *http.Request) *Identity {
	if id, ok := r.Context().Value(identityContextKey).(*Identity); ok {
		return id
	}
	return nil
}

// ownerScope returns the ownership scope for store operations: the
// caller's user id, or nil in the unauthenticated variant.
func (h *Handlers) ownerScope(r *http.Request) *int64 {
	if id := identityFromRequest(r); id != nil {
		return &id.UserID
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

// errorJSON writes an error response using the shared taxonomy. Internal
// errors are logged with detail but reported generically.
func errorJSON(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.Internal {
		log.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, kind.Status(), map[string]string{"error": apperr.Message(err)})
}

func decodeJSON(r *http.Request, v any) error {
	body := io.LimitReader(r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid JSON body", err)
	}
	return nil
}

// isNotFound reports whether the error is the NotFound kind without
// collapsing other kinds.
func isNotFound(err error) bool {
	var e *apperr.Error
	return errors.As(err, &e) && e.Kind == apperr.NotFound
}
