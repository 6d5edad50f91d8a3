package handlers

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/apperr"
	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/auth"
	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/models"
	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/validation"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse is the body returned on successful registration.
type RegisterResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// LoginResponse is the body returned on successful login.
type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

// Register creates a new user account.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, err)
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if err := validation.Credentials(req.Username, req.Password, true); err != nil {
		errorJSON(w, err)
		return
	}

	if _, err := h.db.GetUserByUsername(req.Username); err == nil {
		errorJSON(w, apperr.New(apperr.Conflict, "username already exists"))
		return
	} else if !isNotFound(err) {
		errorJSON(w, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		errorJSON(w, err)
		return
	}

	user, err := h.db.CreateUser(req.Username, hash)
	if err != nil {
		errorJSON(w, err)
		return
	}

	log.Info().Str("username", user.Username).Int64("user_id", user.ID).Msg("user registered")
	writeJSON(w, http.StatusCreated, RegisterResponse{
		Message: "User registered successfully!",
		User:    user,
	})
}

// Login verifies credentials and issues a bearer token. An unknown
// username and a wrong password produce identical failures so usernames
// cannot be enumerated.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, err)
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if err := validation.Credentials(req.Username, req.Password, false); err != nil {
		errorJSON(w, err)
		return
	}

	user, err := h.db.GetUserByUsername(req.Username)
	if err != nil && !isNotFound(err) {
		errorJSON(w, err)
		return
	}
	if err != nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		errorJSON(w, apperr.New(apperr.Unauthenticated, "invalid username or password"))
		return
	}

	token, err := auth.SignToken(h.jwtSecret, user)
	if err != nil {
		errorJSON(w, err)
		return
	}

	log.Info().Str("username", user.Username).Int64("user_id", user.ID).Msg("user logged in")
	writeJSON(w, http.StatusOK, LoginResponse{
		Message: "Login successful!",
		Token:   token,
		User:    user,
	})
}
