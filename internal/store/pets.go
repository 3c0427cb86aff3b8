package store

import (
	"context"

	"github.com/vetlife/vetlife-be/internal/models"
)

// PetsByOwner returns the pets owned by the given user, in insertion order.
func (s *Store) PetsByOwner(ctx context.Context, ownerID string) []models.Pet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pets := make([]models.Pet, 0)
	for _, p := range s.pets {
		if p.OwnerID == ownerID {
			pets = append(pets, p)
		}
	}
	return pets
}

// PetByID returns the pet with the given id or ErrNotFound.
func (s *Store) PetByID(ctx context.Context, id string) (models.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.pets {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Pet{}, ErrNotFound
}

// CreatePet appends a new pet. There is no uniqueness constraint on pets;
// the id is generated and any caller-supplied id is ignored.
func (s *Store) CreatePet(ctx context.Context, pet models.Pet) (models.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pet.ID = s.nextID()
	s.pets = append(s.pets, pet)
	s.persist(ctx, keyPets, s.pets)
	return pet, nil
}

// UpdatePet merges the non-nil patch fields into the stored pet.
func (s *Store) UpdatePet(ctx context.Context, id string, patch models.PetPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.pets {
		if s.pets[i].ID == id {
			patch.Apply(&s.pets[i])
			s.persist(ctx, keyPets, s.pets)
			return nil
		}
	}
	return ErrNotFound
}

// DeletePet removes the pet with the given id.
func (s *Store) DeletePet(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.pets {
		if s.pets[i].ID == id {
			s.pets = append(s.pets[:i], s.pets[i+1:]...)
			s.persist(ctx, keyPets, s.pets)
			return nil
		}
	}
	return ErrNotFound
}
