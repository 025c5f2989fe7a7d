// Package devserver is an in-memory stand-in for the tournament backend.
// It implements every endpoint the client core calls, close enough in
// semantics for offline development and end-to-end tests. It is not the
// product backend and persists nothing.
package devserver

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/crypto/bcrypt"

	"github.com/phaetex/efootball-client/models"
)

type Config struct {
	JWTSecret        string
	TournamentName   string
	TournamentStatus models.TournamentStatus
	EntryFee         int
	SeedAdminUser    string
	SeedAdminPass    string
	Logger           *slog.Logger
}

type Server struct {
	store      *store
	secret     []byte
	log        *slog.Logger
	tournament models.TournamentConfig
	entryFee   int
}

// New builds a server with a seeded super-admin account so the
// verification and provisioning flows are usable immediately.
func New(cfg Config) (*Server, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	s := &Server{
		store:  newStore(),
		secret: []byte(cfg.JWTSecret),
		log:    log,
		tournament: models.TournamentConfig{
			Status: cfg.TournamentStatus,
			Name:   cfg.TournamentName,
		},
		entryFee: cfg.EntryFee,
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedAdminPass), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed admin password: %w", err)
	}
	if _, err := s.store.createUser("Tournament Owner", cfg.SeedAdminUser, string(hash), "", models.RoleSuperAdmin); err != nil {
		return nil, fmt.Errorf("seed super admin: %w", err)
	}
	return s, nil
}

// Router mounts the API under /api, mirroring the deployment prefix the
// client defaults to.
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api", func(r chi.Router) {
		r.Get("/tournament/config", s.handleTournamentConfig)
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get("/users/me", s.handleMe)
			r.Patch("/users/me", s.handleUpdateMe)

			r.Group(func(r chi.Router) {
				r.Use(s.requireRole(models.RoleSuperAdmin))
				r.Get("/payments/pending", s.handlePendingPayments)
				r.Post("/payments/{id}/verify", s.handleVerifyPayment)
				r.Post("/users/admins", s.handleCreateAdmin)
				r.Get("/users/list", s.handleListUsers)
			})
		})
	})
	return router
}
