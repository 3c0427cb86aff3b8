package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/vetlife/vetlife-be/internal/activity"
	"github.com/vetlife/vetlife-be/internal/auth"
	"github.com/vetlife/vetlife-be/internal/models"
	"github.com/vetlife/vetlife-be/internal/store"
	ws "github.com/vetlife/vetlife-be/internal/websocket"
)

// PetHandler handles a client's own-pet endpoints. Pets are created, edited
// and deleted exclusively by their owner; admins may read any pet.
type PetHandler struct {
	store    *store.Store
	hub      *ws.Hub
	activity *activity.Log
}

// NewPetHandler creates a new PetHandler.
func NewPetHandler(st *store.Store, hub *ws.Hub, act *activity.Log) *PetHandler {
	return &PetHandler{store: st, hub: hub, activity: act}
}

// ListMine returns the pets owned by the authenticated user.
func (h *PetHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, h.store.PetsByOwner(r.Context(), claims.UserID))
}

// Create registers a new pet owned by the authenticated user. The owner is
// taken from the token, never from the body, so a pet always references an
// existing user.
func (h *PetHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	var payload models.Pet
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Name == "" {
		http.Error(w, "Pet name is required", http.StatusBadRequest)
		return
	}
	payload.OwnerID = claims.UserID

	pet, err := h.store.CreatePet(r.Context(), payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create pet")
		writeError(w, err)
		return
	}

	h.activity.Record("pet.create", "info", "Mascota registrada: "+pet.Name, claims.Username)
	h.hub.BroadcastTo(ws.TopicPets, ws.NewChangeMessage(ws.TopicPets, "created", pet))
	writeJSON(w, http.StatusCreated, pet)
}

// Update merges a partial update into one of the caller's pets.
func (h *PetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	claims, ok := h.authorizePetAccess(w, r, id)
	if !ok {
		return
	}

	var patch models.PetPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.store.UpdatePet(r.Context(), id, patch); err != nil {
		log.Warn().Err(err).Str("pet_id", id).Msg("Failed to update pet")
		writeError(w, err)
		return
	}

	h.activity.Record("pet.update", "info", "Mascota actualizada", claims.Username)
	h.hub.BroadcastTo(ws.TopicPets, ws.NewChangeMessage(ws.TopicPets, "updated", map[string]string{"id": id}))
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes one of the caller's pets.
func (h *PetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	claims, ok := h.authorizePetAccess(w, r, id)
	if !ok {
		return
	}

	if err := h.store.DeletePet(r.Context(), id); err != nil {
		log.Warn().Err(err).Str("pet_id", id).Msg("Failed to delete pet")
		writeError(w, err)
		return
	}

	h.activity.Record("pet.delete", "info", "Mascota eliminada", claims.Username)
	h.hub.BroadcastTo(ws.TopicPets, ws.NewChangeMessage(ws.TopicPets, "deleted", map[string]string{"id": id}))
	w.WriteHeader(http.StatusNoContent)
}

// authorizePetAccess checks that the pet exists and belongs to the caller.
// Admins bypass the ownership check. On failure it writes the response and
// returns ok=false.
func (h *PetHandler) authorizePetAccess(w http.ResponseWriter, r *http.Request, petID string) (*auth.Claims, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return nil, false
	}

	pet, err := h.store.PetByID(r.Context(), petID)
	if err != nil {
		writeError(w, err)
		return nil, false
	}

	if claims.Role != string(models.RoleAdmin) && pet.OwnerID != claims.UserID {
		http.Error(w, "Pet belongs to another user", http.StatusForbidden)
		return nil, false
	}
	return claims, true
}
