package handlers

import (
	"net/http"
	"strconv"

	"github.com/vetlife/vetlife-be/internal/activity"
)

// EventHandler serves the admin activity feed.
type EventHandler struct {
	activity *activity.Log
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(act *activity.Log) *EventHandler {
	return &EventHandler{activity: act}
}

// Recent returns the latest events, newest first. An optional limit query
// parameter caps the result; the default is 50.
func (h *EventHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	writeJSON(w, http.StatusOK, h.activity.Recent(limit))
}
