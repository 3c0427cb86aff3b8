package store

import (
	"context"

	"github.com/vetlife/vetlife-be/internal/models"
)

// Veterinarians returns a copy of the full staff list; mutating the returned
// slice does not affect the store.
func (s *Store) Veterinarians(ctx context.Context) []models.Veterinarian {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Veterinarian(nil), s.vets...)
}

// VeterinarianByID returns the veterinarian with the given id or ErrNotFound.
func (s *Store) VeterinarianByID(ctx context.Context, id string) (models.Veterinarian, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.vets {
		if v.ID == id {
			return v, nil
		}
	}
	return models.Veterinarian{}, ErrNotFound
}

// CreateVeterinarian appends a new staff profile. Emails are unique across
// veterinarians.
func (s *Store) CreateVeterinarian(ctx context.Context, vet models.Veterinarian) (models.Veterinarian, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range s.vets {
		if v.Email == vet.Email {
			return models.Veterinarian{}, ErrDuplicateEmail
		}
	}

	vet.ID = s.nextID()
	s.vets = append(s.vets, vet)
	s.persist(ctx, keyVeterinarians, s.vets)
	return vet, nil
}

// UpdateVeterinarian merges the non-nil patch fields into the stored profile.
// A patched email must not collide with a different veterinarian's email.
func (s *Store) UpdateVeterinarian(ctx context.Context, id string, patch models.VeterinarianPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.vets {
		if s.vets[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNotFound
	}

	if patch.Email != nil {
		for i, v := range s.vets {
			if i != idx && v.Email == *patch.Email {
				return ErrDuplicateEmail
			}
		}
	}

	patch.Apply(&s.vets[idx])
	s.persist(ctx, keyVeterinarians, s.vets)
	return nil
}

// DeleteVeterinarian removes the profile with the given id.
func (s *Store) DeleteVeterinarian(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.vets {
		if s.vets[i].ID == id {
			s.vets = append(s.vets[:i], s.vets[i+1:]...)
			s.persist(ctx, keyVeterinarians, s.vets)
			return nil
		}
	}
	return ErrNotFound
}
