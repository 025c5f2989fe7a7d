package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phaetex/efootball-client/api"
	"github.com/phaetex/efootball-client/models"
	"github.com/phaetex/efootball-client/storage"
)

// SessionService owns the process-wide session: the bearer token, the
// resolved user, and the verification flag. One instance exists per
// client process; every other component receives it by reference.
//
// The token and resolved user form a single critical section. Load,
// Adopt and Logout each bump a generation counter under the mutex, and
// a resolution only lands if no newer mutation happened while its
// network call was in flight. A stale resolution can therefore never
// overwrite a logout or a fresh login.
type SessionService struct {
	api    api.SessionAPI
	tokens storage.TokenStore
	log    *slog.Logger

	mu      sync.Mutex
	gen     uint64
	token   string
	session models.Session
}

func NewSessionService(sessionAPI api.SessionAPI, tokens storage.TokenStore, log *slog.Logger) *SessionService {
	return &SessionService{
		api:    sessionAPI,
		tokens: tokens,
		log:    log,
		// Undecided until the first Load completes; guards report
		// pending rather than redirecting.
		session: models.Session{Loading: true},
	}
}

// Current returns a snapshot of the session.
func (s *SessionService) Current() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Token implements api.TokenSource.
func (s *SessionService) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Load resolves the stored token against the backend. No token resolves
// immediately to an empty session. Any resolution failure purges the
// token and resets the session; the failure itself is handled here (the
// caller simply sees a guest session), matching the central-handling
// rule for authentication errors.
func (s *SessionService) Load(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen

	token, err := s.tokens.Load(ctx)
	if err != nil {
		s.resetLocked()
		s.mu.Unlock()
		return fmt.Errorf("load stored token: %w", err)
	}
	if token == "" {
		s.resetLocked()
		s.mu.Unlock()
		return nil
	}
	s.token = token
	s.session.Loading = true
	s.mu.Unlock()

	if exp, ok := api.TokenExpiry(token); ok {
		s.log.Debug("resolving stored session", slog.Time("token_expiry", exp))
	}

	me, resolveErr := s.api.Me(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		// A newer Adopt/Logout/Load won the race; drop this result.
		return nil
	}

	if resolveErr != nil {
		if clearErr := s.tokens.Clear(ctx); clearErr != nil {
			s.log.Error("failed to clear token after resolution failure", slog.Any("error", clearErr))
		}
		s.resetLocked()
		if errors.Is(resolveErr, api.ErrUnauthenticated) {
			s.log.Info("stored token rejected, session purged")
		} else {
			s.log.Warn("session resolution failed, session purged", slog.Any("error", resolveErr))
		}
		return nil
	}

	s.session = models.Session{User: me.User, Verified: me.Verified}
	return nil
}

// Adopt installs a freshly issued token after a successful login or
// registration. No network call is made; user may be nil when the
// backend omitted it, in which case the caller should Refresh.
func (s *SessionService) Adopt(ctx context.Context, token string, user *models.User, verified bool) error {
	if token == "" {
		return ErrEmptyToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.tokens.Save(ctx, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	s.gen++
	s.token = token
	s.session = models.Session{User: user, Verified: verified}
	return nil
}

// Logout purges the token and resets the session. Local-only: the
// backend is not told.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	s.gen++
	s.resetLocked()
	return nil
}

// Refresh re-runs Load to reconcile after a mutation, e.g. once a
// pending payment was approved.
func (s *SessionService) Refresh(ctx context.Context) error {
	return s.Load(ctx)
}

// UpdateProfile applies a partial profile update and re-resolves the
// session, per the refetch-after-mutation rule.
func (s *SessionService) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	user, err := s.api.UpdateMe(ctx, update)
	if err != nil {
		return nil, err
	}
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *SessionService) resetLocked() {
	s.token = ""
	s.session = models.Session{}
}
