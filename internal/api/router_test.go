package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetlife/vetlife-be/internal/activity"
	"github.com/vetlife/vetlife-be/internal/models"
	"github.com/vetlife/vetlife-be/internal/monitoring"
	"github.com/vetlife/vetlife-be/internal/storage"
	"github.com/vetlife/vetlife-be/internal/store"
	"github.com/vetlife/vetlife-be/internal/websocket"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st := store.New(storage.NewMemory())
	require.NoError(t, st.Init(context.Background()))

	hub := websocket.NewHub()
	go hub.Run()

	act := activity.NewLog(50, hub)
	backups := monitoring.NewBackupScheduler(st, act, t.TempDir())

	srv := httptest.NewServer(NewRouter(st, hub, act, backups))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func login(t *testing.T, srv *httptest.Server, username, password string) (string, models.User) {
	t.Helper()

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	return out.Token, out.User
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t)

	t.Run("wrong password", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/login", "", map[string]string{
			"username": "cliente1",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("admin login sets session", func(t *testing.T) {
		_, user := login(t, srv, "admin", "admin123")
		assert.Equal(t, models.RoleAdmin, user.Role)
		assert.Empty(t, user.Password)

		resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/auth/session", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var session models.User
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))
		assert.Equal(t, user.ID, session.ID)
	})
}

func TestRegister(t *testing.T) {
	srv := newTestServer(t)

	t.Run("success", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/register", "", models.Registration{
			Username: "laura",
			Password: "clave123",
			Email:    "laura@email.com",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var user models.User
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
		assert.Equal(t, models.RoleClient, user.Role)
		assert.NotEmpty(t, user.ID)
	})

	t.Run("duplicate username", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/register", "", models.Registration{
			Username: "cliente1",
			Password: "x",
		})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("missing credentials", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/register", "", models.Registration{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateOwnProfile(t *testing.T) {
	srv := newTestServer(t)
	token, _ := login(t, srv, "cliente1", "123456")

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/auth/me", token, map[string]string{
		"phone": "3119998877",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	assert.Equal(t, "3119998877", user.Phone)
	// untouched fields survive the patch
	assert.Equal(t, "Juan Pérez", user.Name)
}

func TestVeterinarianRoutes(t *testing.T) {
	srv := newTestServer(t)

	t.Run("listing is public", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/veterinarians", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var vets []models.Veterinarian
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&vets))
		assert.Len(t, vets, 3)
	})

	t.Run("mutation requires admin", func(t *testing.T) {
		clientToken, _ := login(t, srv, "cliente1", "123456")
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/veterinarians", clientToken, models.Veterinarian{
			Name:  "Dr. Nuevo",
			Email: "nuevo@vetlife.com",
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("duplicate seed email", func(t *testing.T) {
		adminToken, _ := login(t, srv, "admin", "admin123")
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/veterinarians", adminToken, models.Veterinarian{
			Name:  "Dr. Impostor",
			Email: "carlos@vetlife.com",
		})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestPetRoutes_OwnerScoped(t *testing.T) {
	srv := newTestServer(t)
	clientToken, client := login(t, srv, "cliente1", "123456")

	t.Run("list own pets", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/pets", clientToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var pets []models.Pet
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&pets))
		require.Len(t, pets, 1)
		assert.Equal(t, "Max", pets[0].Name)
		assert.Equal(t, client.ID, pets[0].OwnerID)
	})

	t.Run("create assigns owner from token", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/pets", clientToken, models.Pet{
			Name:    "Luna",
			Species: "Gato",
			OwnerID: "999", // must be ignored
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var pet models.Pet
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&pet))
		assert.Equal(t, client.ID, pet.OwnerID)
		assert.NotEmpty(t, pet.ID)
	})

	t.Run("cannot touch another user's pet", func(t *testing.T) {
		// register a second client and try to delete cliente1's pet
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/register", "", models.Registration{
			Username: "otro",
			Password: "clave",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		otherToken, _ := login(t, srv, "otro", "clave")
		resp = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/pets/1", otherToken, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("unauthenticated is rejected", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/pets", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestUserRoutes_AdminScoped(t *testing.T) {
	srv := newTestServer(t)
	adminToken, _ := login(t, srv, "admin", "admin123")
	clientToken, client := login(t, srv, "cliente1", "123456")

	t.Run("client cannot list users", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/users", clientToken, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin lists only clients", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/users", adminToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var users []models.User
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
		require.Len(t, users, 1)
		assert.Equal(t, "cliente1", users[0].Username)
		assert.Empty(t, users[0].Password)
	})

	t.Run("delete cascades to pets", func(t *testing.T) {
		resp := doJSON(t, http.MethodDelete, srv.URL+"/api/v1/users/"+client.ID, adminToken, nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/users/"+client.ID+"/pets", adminToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var pets []models.Pet
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&pets))
		assert.Empty(t, pets)
	})
}

func TestAdminEndpoints(t *testing.T) {
	srv := newTestServer(t)
	adminToken, _ := login(t, srv, "admin", "admin123")

	t.Run("events feed records the login", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/events", adminToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var events []activity.Event
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&events))
		require.NotEmpty(t, events)
		assert.Equal(t, "auth.login", events[0].Type)
	})

	t.Run("manual backup", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/system/backup", adminToken, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var out map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Contains(t, out["file"], "vetlife-")
	})
}
