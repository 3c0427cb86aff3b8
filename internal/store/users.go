package store

import (
	"context"

	"github.com/vetlife/vetlife-be/internal/models"
)

// Authenticate checks the credentials against the user collection. The match
// is exact and case-sensitive. On success the user becomes the current
// session and the session is persisted.
func (s *Store) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username && u.Password == password {
			session := u
			s.session = &session
			s.sessionLoaded = true
			s.persist(ctx, keySession, session)
			return u, nil
		}
	}
	return models.User{}, ErrInvalidCredentials
}

// Register creates a new client account. The role is always client and the id
// is generated; the caller must authenticate separately afterwards.
func (s *Store) Register(ctx context.Context, reg models.Registration) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == reg.Username {
			return models.User{}, ErrDuplicateUsername
		}
	}
	if reg.Email != "" {
		for _, u := range s.users {
			if u.Email == reg.Email {
				return models.User{}, ErrDuplicateEmail
			}
		}
	}

	user := models.User{
		ID:        s.nextID(),
		Username:  reg.Username,
		Password:  reg.Password,
		Role:      models.RoleClient,
		Name:      reg.Name,
		Email:     reg.Email,
		Phone:     reg.Phone,
		BirthDate: reg.BirthDate,
	}
	s.users = append(s.users, user)
	s.persist(ctx, keyUsers, s.users)

	return user, nil
}

// ListClients returns every user with the client role. Admin accounts are
// never listed on the dashboard.
func (s *Store) ListClients(ctx context.Context) []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	clients := make([]models.User, 0)
	for _, u := range s.users {
		if u.Role == models.RoleClient {
			clients = append(clients, u)
		}
	}
	return clients
}

// UserByID returns the user with the given id or ErrNotFound.
func (s *Store) UserByID(ctx context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

// UpdateUser merges the non-nil patch fields into the stored user.
func (s *Store) UpdateUser(ctx context.Context, id string, patch models.UserPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			patch.Apply(&s.users[i])
			s.persist(ctx, keyUsers, s.users)
			return nil
		}
	}
	return ErrNotFound
}

// DeleteUser removes the user and cascades to every pet they own. Both
// snapshots are rewritten while the lock is held, so no reader observes the
// intermediate state.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.users {
		if s.users[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNotFound
	}

	s.users = append(s.users[:idx], s.users[idx+1:]...)

	kept := s.pets[:0]
	for _, p := range s.pets {
		if p.OwnerID != id {
			kept = append(kept, p)
		}
	}
	s.pets = kept

	s.persist(ctx, keyPets, s.pets)
	s.persist(ctx, keyUsers, s.users)
	return nil
}
