package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetlife/vetlife-be/internal/models"
	"github.com/vetlife/vetlife-be/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(storage.NewMemory())
	require.NoError(t, s.Init(context.Background()))
	return s
}

func strptr(v string) *string { return &v }

func TestInit_SeedsWhenStorageEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	users, pets, vets := s.Counts()
	assert.Equal(t, 2, users)
	assert.Equal(t, 1, pets)
	assert.Equal(t, 3, vets)

	clients := s.ListClients(ctx)
	require.Len(t, clients, 1)
	assert.Equal(t, "cliente1", clients[0].Username)
}

func TestInit_HydratesFromBackend(t *testing.T) {
	backend := storage.NewMemory()
	ctx := context.Background()

	s := New(backend)
	require.NoError(t, s.Init(ctx))

	created, err := s.Register(ctx, models.Registration{
		Username: "nuevo",
		Password: "secreto",
		Email:    "nuevo@email.com",
	})
	require.NoError(t, err)

	// a second store over the same backend sees the registered user
	s2 := New(backend)
	require.NoError(t, s2.Init(ctx))

	got, err := s2.UserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestSession_PersistsAcrossStores(t *testing.T) {
	backend := storage.NewMemory()
	ctx := context.Background()

	s := New(backend)
	require.NoError(t, s.Init(ctx))

	admin, err := s.Authenticate(ctx, "admin", "admin123")
	require.NoError(t, err)

	// simulates a page reload: fresh store, same backend
	s2 := New(backend)
	require.NoError(t, s2.Init(ctx))

	current := s2.CurrentUser(ctx)
	require.NotNil(t, current)
	assert.Equal(t, admin, *current)
}

func TestEndSession_ClearsMemoryAndBackend(t *testing.T) {
	backend := storage.NewMemory()
	ctx := context.Background()

	s := New(backend)
	require.NoError(t, s.Init(ctx))

	_, err := s.Authenticate(ctx, "cliente1", "123456")
	require.NoError(t, err)
	require.NotNil(t, s.CurrentUser(ctx))

	s.EndSession(ctx)
	assert.Nil(t, s.CurrentUser(ctx))

	s2 := New(backend)
	require.NoError(t, s2.Init(ctx))
	assert.Nil(t, s2.CurrentUser(ctx))
}

func TestCurrentUser_NilWithoutLogin(t *testing.T) {
	s := newTestStore(t)
	assert.Nil(t, s.CurrentUser(context.Background()))
}

func TestTakeSnapshot_IsDetached(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	snap := s.TakeSnapshot()
	require.Len(t, snap.Veterinarians, 3)
	snap.Veterinarians[0].Name = "tampered"

	vets := s.Veterinarians(ctx)
	assert.Equal(t, "Dr. Carlos Rodríguez", vets[0].Name)
}

func TestNextID_Unique(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		pet, err := s.CreatePet(ctx, models.Pet{OwnerID: "1", Name: "p"})
		require.NoError(t, err)
		require.False(t, seen[pet.ID], "duplicate id %s", pet.ID)
		seen[pet.ID] = true
	}
}
