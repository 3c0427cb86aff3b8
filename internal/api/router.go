package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vetlife/vetlife-be/internal/activity"
	"github.com/vetlife/vetlife-be/internal/api/handlers"
	"github.com/vetlife/vetlife-be/internal/auth"
	"github.com/vetlife/vetlife-be/internal/monitoring"
	"github.com/vetlife/vetlife-be/internal/store"
	"github.com/vetlife/vetlife-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(st *store.Store, hub *websocket.Hub, act *activity.Log, backups *monitoring.BackupScheduler) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for the dashboard frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(st, act)
	userHandler := handlers.NewUserHandler(st, hub, act)
	petHandler := handlers.NewPetHandler(st, hub, act)
	vetHandler := handlers.NewVeterinarianHandler(st, hub, act)
	eventHandler := handlers.NewEventHandler(act)
	systemHandler := handlers.NewSystemHandler(backups)
	wsHandler := handlers.NewWebSocketHandler(hub)

	r.Route("/api/v1", func(r chi.Router) {
		// WebSocket connection endpoint for live dashboard updates
		r.Get("/ws", wsHandler.Serve)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
			r.Post("/logout", authHandler.Logout)
			r.Get("/session", authHandler.Session)
			r.With(auth.JWTMiddleware()).Get("/me", authHandler.Me)
			r.With(auth.JWTMiddleware()).Put("/me", authHandler.UpdateMe)
		})

		// The staff directory is public: the landing page renders it.
		r.Get("/veterinarians", vetHandler.List)
		r.Get("/veterinarians/{id}", vetHandler.Get)

		// Client management is for admins only.
		r.Route("/users", func(r chi.Router) {
			r.Use(auth.JWTMiddleware())
			r.Use(auth.RequireAdmin)
			r.Get("/", userHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", userHandler.Get)
				r.Put("/", userHandler.Update)
				r.Delete("/", userHandler.Delete)
				r.Get("/pets", userHandler.ListPets)
			})
		})

		// Clients manage their own pets.
		r.Route("/pets", func(r chi.Router) {
			r.Use(auth.JWTMiddleware())
			r.Get("/", petHandler.ListMine)
			r.Post("/", petHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", petHandler.Update)
				r.Delete("/", petHandler.Delete)
			})
		})

		// Staff directory mutations are for admins only.
		r.Group(func(r chi.Router) {
			r.Use(auth.JWTMiddleware())
			r.Use(auth.RequireAdmin)
			r.Post("/veterinarians", vetHandler.Create)
			r.Put("/veterinarians/{id}", vetHandler.Update)
			r.Delete("/veterinarians/{id}", vetHandler.Delete)
			r.Get("/events", eventHandler.Recent)
			r.Post("/system/backup", systemHandler.Backup)
		})
	})

	return r
}
