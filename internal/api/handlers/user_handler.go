package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/vetlife/vetlife-be/internal/activity"
	"github.com/vetlife/vetlife-be/internal/models"
	"github.com/vetlife/vetlife-be/internal/store"
	ws "github.com/vetlife/vetlife-be/internal/websocket"
)

// UserHandler handles the admin's client-management endpoints.
type UserHandler struct {
	store    *store.Store
	hub      *ws.Hub
	activity *activity.Log
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(st *store.Store, hub *ws.Hub, act *activity.Log) *UserHandler {
	return &UserHandler{store: st, hub: hub, activity: act}
}

// List returns every client account. Admin accounts are excluded.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	clients := h.store.ListClients(r.Context())

	out := make([]models.User, 0, len(clients))
	for _, c := range clients {
		out = append(out, c.Sanitized())
	}
	writeJSON(w, http.StatusOK, out)
}

// Get returns one user by id.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := h.store.UserByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user.Sanitized())
}

// Update merges a partial update into a user record.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch models.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.store.UpdateUser(r.Context(), id, patch); err != nil {
		log.Warn().Err(err).Str("user_id", id).Msg("Failed to update user")
		writeError(w, err)
		return
	}

	h.hub.BroadcastTo(ws.TopicUsers, ws.NewChangeMessage(ws.TopicUsers, "updated", map[string]string{"id": id}))
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a user account and cascades to their pets.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteUser(r.Context(), id); err != nil {
		log.Warn().Err(err).Str("user_id", id).Msg("Failed to delete user")
		writeError(w, err)
		return
	}

	h.activity.Record("user.delete", "warn", "Cliente eliminado junto con sus mascotas", "admin")
	h.hub.BroadcastTo(ws.TopicUsers, ws.NewChangeMessage(ws.TopicUsers, "deleted", map[string]string{"id": id}))
	h.hub.BroadcastTo(ws.TopicPets, ws.NewChangeMessage(ws.TopicPets, "deleted", map[string]string{"ownerId": id}))
	w.WriteHeader(http.StatusNoContent)
}

// ListPets returns the pets owned by the given user.
func (h *UserHandler) ListPets(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	writeJSON(w, http.StatusOK, h.store.PetsByOwner(r.Context(), id))
}
