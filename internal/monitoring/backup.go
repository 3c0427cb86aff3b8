package monitoring

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/vetlife/vetlife-be/internal/activity"
	"github.com/vetlife/vetlife-be/internal/store"
)

// BackupScheduler writes timestamped JSON exports of the store's collections
// on a cron schedule. Backups are an operational convenience on top of the
// snapshot database, not a second source of truth.
type BackupScheduler struct {
	store      *store.Store
	activity   *activity.Log
	backupPath string
	cron       *cron.Cron
}

// NewBackupScheduler creates a scheduler writing into backupPath.
func NewBackupScheduler(st *store.Store, act *activity.Log, backupPath string) *BackupScheduler {
	return &BackupScheduler{
		store:      st,
		activity:   act,
		backupPath: backupPath,
		cron:       cron.New(),
	}
}

// Start registers the cron job and begins scheduling. The spec uses the
// standard five-field cron format.
func (b *BackupScheduler) Start(spec string) error {
	if _, err := b.cron.AddFunc(spec, func() {
		if _, err := b.RunNow(); err != nil {
			log.Error().Err(err).Msg("Scheduled backup failed")
			b.activity.Record("backup.fail", "error", fmt.Sprintf("Scheduled backup failed: %v", err), "system")
		}
	}); err != nil {
		return fmt.Errorf("invalid backup cron expression %q: %w", spec, err)
	}
	b.cron.Start()
	log.Info().Str("cron", spec).Str("path", b.backupPath).Msg("Backup scheduler started")
	return nil
}

// Stop halts scheduling. Already-running jobs finish.
func (b *BackupScheduler) Stop() {
	b.cron.Stop()
}

// RunNow writes one backup file and returns its path. Also used by the
// manual trigger endpoint.
func (b *BackupScheduler) RunNow() (string, error) {
	if err := os.MkdirAll(b.backupPath, 0755); err != nil {
		return "", err
	}

	snap := b.store.TakeSnapshot()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("vetlife-%s.json", time.Now().Format("20060102-150405"))
	path := filepath.Join(b.backupPath, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}

	log.Info().Str("path", path).Msg("Backup written")
	b.activity.Record("backup.create", "info", "Backup written to "+name, "system")
	return path, nil
}
