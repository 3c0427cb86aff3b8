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

// VeterinarianHandler handles the staff directory. Listing is public (the
// landing page shows it); mutations are admin-only, enforced by the router.
type VeterinarianHandler struct {
	store    *store.Store
	hub      *ws.Hub
	activity *activity.Log
}

// NewVeterinarianHandler creates a new VeterinarianHandler.
func NewVeterinarianHandler(st *store.Store, hub *ws.Hub, act *activity.Log) *VeterinarianHandler {
	return &VeterinarianHandler{store: st, hub: hub, activity: act}
}

// List returns the full staff directory.
func (h *VeterinarianHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Veterinarians(r.Context()))
}

// Get returns one veterinarian by id.
func (h *VeterinarianHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	vet, err := h.store.VeterinarianByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vet)
}

// Create adds a staff profile.
func (h *VeterinarianHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload models.Veterinarian
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Name == "" || payload.Email == "" {
		http.Error(w, "Name and email are required", http.StatusBadRequest)
		return
	}

	vet, err := h.store.CreateVeterinarian(r.Context(), payload)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed to create veterinarian")
		writeError(w, err)
		return
	}

	h.activity.Record("veterinarian.create", "info", "Veterinario agregado: "+vet.Name, "admin")
	h.hub.BroadcastTo(ws.TopicVeterinarians, ws.NewChangeMessage(ws.TopicVeterinarians, "created", vet))
	writeJSON(w, http.StatusCreated, vet)
}

// Update merges a partial update into a staff profile.
func (h *VeterinarianHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch models.VeterinarianPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.store.UpdateVeterinarian(r.Context(), id, patch); err != nil {
		log.Warn().Err(err).Str("veterinarian_id", id).Msg("Failed to update veterinarian")
		writeError(w, err)
		return
	}

	h.hub.BroadcastTo(ws.TopicVeterinarians, ws.NewChangeMessage(ws.TopicVeterinarians, "updated", map[string]string{"id": id}))
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a staff profile.
func (h *VeterinarianHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteVeterinarian(r.Context(), id); err != nil {
		log.Warn().Err(err).Str("veterinarian_id", id).Msg("Failed to delete veterinarian")
		writeError(w, err)
		return
	}

	h.activity.Record("veterinarian.delete", "info", "Veterinario eliminado", "admin")
	h.hub.BroadcastTo(ws.TopicVeterinarians, ws.NewChangeMessage(ws.TopicVeterinarians, "deleted", map[string]string{"id": id}))
	w.WriteHeader(http.StatusNoContent)
}
