package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vetlife/vetlife-be/internal/activity"
	"github.com/vetlife/vetlife-be/internal/auth"
	"github.com/vetlife/vetlife-be/internal/models"
	"github.com/vetlife/vetlife-be/internal/store"
)

// AuthHandler handles login, registration and session endpoints.
type AuthHandler struct {
	store    *store.Store
	activity *activity.Log
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(st *store.Store, act *activity.Log) *AuthHandler {
	return &AuthHandler{store: st, activity: act}
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates against the store, marks the store session and issues
// a JWT cookie for subsequent requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.store.Authenticate(r.Context(), payload.Username, payload.Password)
	if err != nil {
		log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
		writeError(w, err)
		return
	}

	token, err := auth.GenerateJWT(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate JWT")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	isProd := os.Getenv("APP_ENV") == "production"
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		Secure:   isProd,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	h.activity.Record("auth.login", "info", user.Username+" inició sesión", user.Username)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user.Sanitized(),
	})
}

// Register creates a new client account. The caller logs in separately.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload models.Registration
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Username == "" || payload.Password == "" {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.store.Register(r.Context(), payload)
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		writeError(w, err)
		return
	}

	h.activity.Record("user.register", "info", "Nuevo cliente registrado: "+user.Username, user.Username)

	writeJSON(w, http.StatusCreated, user.Sanitized())
}

// Logout clears the store session and expires the JWT cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.store.EndSession(r.Context())

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Path:     "/",
	})

	w.WriteHeader(http.StatusNoContent)
}

// Session returns the store's current user, hydrated from storage when the
// process restarted since login, or null when nobody is logged in.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	user := h.store.CurrentUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, user.Sanitized())
}

// UpdateMe lets the authenticated user edit their own profile.
func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	var patch models.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.store.UpdateUser(r.Context(), claims.UserID, patch); err != nil {
		log.Warn().Err(err).Str("user_id", claims.UserID).Msg("Failed to update profile")
		writeError(w, err)
		return
	}

	user, err := h.store.UserByID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user.Sanitized())
}

// Me resolves the authenticated user from the token claims.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	user, err := h.store.UserByID(r.Context(), claims.UserID)
	if err != nil {
		log.Warn().Str("user_id", claims.UserID).Msg("User from token no longer exists")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user.Sanitized())
}
