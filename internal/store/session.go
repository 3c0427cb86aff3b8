package store

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/vetlife/vetlife-be/internal/models"
)

// CurrentUser returns the authenticated user for this session, hydrating it
// lazily from the backend so a session survives a process restart. It returns
// nil when nobody is logged in.
func (s *Store) CurrentUser(ctx context.Context) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		u := *s.session
		return &u
	}
	if s.sessionLoaded {
		return nil
	}
	s.sessionLoaded = true

	data, ok, err := s.backend.Load(ctx, keySession)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load persisted session")
		return nil
	}
	if !ok {
		return nil
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		log.Warn().Err(err).Msg("Discarding unreadable persisted session")
		return nil
	}
	s.session = &user

	u := user
	return &u
}

// EndSession clears the current session and its persisted copy. Logging out
// when nobody is logged in is not an error.
func (s *Store) EndSession(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	s.sessionLoaded = true
	if err := s.backend.Delete(ctx, keySession); err != nil {
		log.Warn().Err(err).Msg("Failed to clear persisted session")
	}
}
