package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/vetlife/vetlife-be/internal/monitoring"
)

// SystemHandler exposes operational endpoints for the admin dashboard.
type SystemHandler struct {
	backups *monitoring.BackupScheduler
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(backups *monitoring.BackupScheduler) *SystemHandler {
	return &SystemHandler{backups: backups}
}

// Backup triggers an immediate export of the store's collections.
func (h *SystemHandler) Backup(w http.ResponseWriter, r *http.Request) {
	path, err := h.backups.RunNow()
	if err != nil {
		log.Error().Err(err).Msg("Manual backup failed")
		http.Error(w, "Backup failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"file": filepath.Base(path)})
}
