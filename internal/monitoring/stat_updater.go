package monitoring

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/vetlife/vetlife-be/internal/store"
	ws "github.com/vetlife/vetlife-be/internal/websocket"
)

// Stats is the payload broadcast to dashboards subscribed to the stats topic.
type Stats struct {
	CPUPercent    float64 `json:"cpuPercent"`
	MemoryPercent float64 `json:"memoryPercent"`
	Users         int     `json:"users"`
	Pets          int     `json:"pets"`
	Veterinarians int     `json:"veterinarians"`
}

// StatUpdater periodically samples host usage and collection sizes and pushes
// them to the admin dashboard over the hub.
type StatUpdater struct {
	store  *store.Store
	hub    *ws.Hub
	ticker *time.Ticker
	done   chan bool
}

// NewStatUpdater creates a new StatUpdater.
func NewStatUpdater(store *store.Store, hub *ws.Hub) *StatUpdater {
	return &StatUpdater{
		store: store,
		hub:   hub,
		done:  make(chan bool),
	}
}

// Run starts the periodic updates.
func (su *StatUpdater) Run() {
	log.Info().Msg("Starting background stat updater...")
	su.ticker = time.NewTicker(15 * time.Second)
	defer su.ticker.Stop()

	// Run once immediately on start
	su.broadcastStats()

	for {
		select {
		case <-su.done:
			log.Info().Msg("Stopping background stat updater.")
			return
		case <-su.ticker.C:
			su.broadcastStats()
		}
	}
}

// Stop halts the periodic updates.
func (su *StatUpdater) Stop() {
	su.done <- true
}

func (su *StatUpdater) broadcastStats() {
	stats := Stats{}
	stats.Users, stats.Pets, stats.Veterinarians = su.store.Counts()

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	} else if err != nil {
		log.Warn().Err(err).Msg("StatUpdater: Could not sample CPU usage")
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = vm.UsedPercent
	} else {
		log.Warn().Err(err).Msg("StatUpdater: Could not sample memory usage")
	}

	data, err := json.Marshal(ws.Message{Action: "stats.update", Payload: stats})
	if err != nil {
		log.Error().Err(err).Msg("StatUpdater: Failed to encode stats payload")
		return
	}
	su.hub.BroadcastTo(ws.TopicStats, data)
}
