// Package store is the single authority over the clinic's collections: users,
// pets and veterinarians, plus the current session. Every read and write to
// persistent storage flows through it; the API layer never touches the
// backend directly.
package store

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vetlife/vetlife-be/internal/models"
	"github.com/vetlife/vetlife-be/internal/storage"
)

// Storage keys. Each holds a full JSON snapshot of one collection.
const (
	keyUsers         = "users"
	keyPets          = "pets"
	keyVeterinarians = "veterinarians"
	keySession       = "session"
)

// Store owns the in-memory collections and writes them through to the
// backend after every mutation. Construct it once in main and inject it into
// every consumer.
type Store struct {
	mu      sync.RWMutex
	backend storage.Backend

	users []models.User
	pets  []models.Pet
	vets  []models.Veterinarian

	session       *models.User
	sessionLoaded bool

	lastID int64
}

// New creates a store over the given backend. Call Init before use.
func New(backend storage.Backend) *Store {
	return &Store{backend: backend}
}

// Init hydrates each collection from the backend. A collection whose key has
// never been saved is seeded with the built-in default dataset; the seed is
// not written back until the first mutation.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := loadCollection(ctx, s.backend, keyUsers, &s.users, defaultUsers); err != nil {
		return err
	}
	if err := loadCollection(ctx, s.backend, keyPets, &s.pets, defaultPets); err != nil {
		return err
	}
	if err := loadCollection(ctx, s.backend, keyVeterinarians, &s.vets, defaultVeterinarians); err != nil {
		return err
	}
	return nil
}

// Flush rewrites every collection and the session to the backend. Called on
// shutdown so a seeded-but-never-mutated dataset still lands on disk.
func (s *Store) Flush(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.persist(ctx, keyUsers, s.users)
	s.persist(ctx, keyPets, s.pets)
	s.persist(ctx, keyVeterinarians, s.vets)
	if s.session != nil {
		s.persist(ctx, keySession, s.session)
	}
}

// Snapshot is a point-in-time copy of every collection, used by the backup
// exporter and safe for the caller to retain.
type Snapshot struct {
	Users         []models.User         `json:"users"`
	Pets          []models.Pet          `json:"pets"`
	Veterinarians []models.Veterinarian `json:"veterinarians"`
}

// TakeSnapshot returns a deep copy of the current collections.
func (s *Store) TakeSnapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Users:         append([]models.User(nil), s.users...),
		Pets:          append([]models.Pet(nil), s.pets...),
		Veterinarians: append([]models.Veterinarian(nil), s.vets...),
	}
}

// Counts reports the size of each collection for the monitoring broadcast.
func (s *Store) Counts() (users, pets, vets int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), len(s.pets), len(s.vets)
}

func loadCollection[T any](ctx context.Context, backend storage.Backend, key string, dst *[]T, seed func() []T) error {
	data, ok, err := backend.Load(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		*dst = seed()
		return nil
	}
	return json.Unmarshal(data, dst)
}

// persist rewrites one snapshot. A backend failure is logged and swallowed:
// the store keeps serving from memory for the rest of the session rather
// than surfacing storage trouble to the caller.
func (s *Store) persist(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to encode snapshot")
		return
	}
	if err := s.backend.Save(ctx, key, data); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to persist snapshot, continuing in memory")
	}
}

// nextID derives an id from the current time in milliseconds, bumping past
// the previous one when two mutations land within the same millisecond.
// Callers must hold the write lock.
func (s *Store) nextID() string {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}
