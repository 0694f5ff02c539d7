package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/infocast/infocast/internal/core/domain"
	"github.com/infocast/infocast/internal/core/ports"
)

// Session owns the credential and the current principal. It is the only
// writer of the credential store and the gateway token: construct one at
// process start, call Restore once, then hand it to every consumer.
//
// Invariant: a non-nil principal always pairs with a token applied to the
// gateway; both change together under the mutex.
type Session struct {
	gw     ports.Gateway
	store  ports.CredentialStore
	notify ports.Notifier
	check  *checker
	log    zerolog.Logger

	mu        sync.RWMutex
	principal *domain.User
	loading   bool
}

func NewSession(gw ports.Gateway, store ports.CredentialStore, notify ports.Notifier, log zerolog.Logger) *Session {
	return &Session{
		gw:      gw,
		store:   store,
		notify:  notify,
		check:   newChecker(),
		log:     log,
		loading: true,
	}
}

// Restore attempts to resume a previous session from the persisted
// credential. Any failure (missing token, network, rejection) leaves the
// client cleanly unauthenticated: credential removed, token detached,
// principal nil. Silent on purpose — an expired token is expected decay,
// not a user action, so no notification fires. Idempotent; Loading()
// reports false once it returns, so dependent views never render against
// an undecided session.
func (s *Session) Restore(ctx context.Context) {
	defer s.setLoading(false)

	token, err := s.store.Load()
	if err != nil {
		s.log.Warn().Err(err).Msg("credential store unreadable")
		return
	}
	if token == "" {
		return
	}

	s.gw.SetToken(token)
	user, err := s.gw.Me(ctx)
	if err != nil {
		s.log.Debug().Err(err).Msg("session restore rejected, clearing credential")
		s.invalidate()
		return
	}

	s.setPrincipal(user)
}

// Login authenticates against the identity endpoint. On success the
// returned token is persisted and applied to the transport, the principal
// is replaced, and one success notification fires. On failure no state
// changes and one error notification fires with the server's message when
// it provided one.
func (s *Session) Login(ctx context.Context, creds ports.Credentials) error {
	if err := s.check.Check(creds); err != nil {
		s.notify.Error(err.Error())
		return err
	}

	token, user, err := s.gw.Login(ctx, creds)
	if err != nil {
		s.notify.Error(domain.MessageOf(err, "Login failed"))
		return err
	}

	s.establish(token, user)
	s.notify.Success("Login successful!")
	return nil
}

// Register creates an account and starts a session with the returned
// credential, with the same success/failure behaviour as Login.
func (s *Session) Register(ctx context.Context, reg ports.Registration) error {
	if err := s.check.Check(reg); err != nil {
		s.notify.Error(err.Error())
		return err
	}

	token, user, err := s.gw.Register(ctx, reg)
	if err != nil {
		s.notify.Error(domain.MessageOf(err, "Registration failed"))
		return err
	}

	s.establish(token, user)
	s.notify.Success("Registration successful!")
	return nil
}

// Logout tears the session down unconditionally: persisted credential
// removed, transport token detached, principal cleared. No network call,
// never fails.
func (s *Session) Logout() {
	s.invalidate()
	s.notify.Success("Logged out successfully")
}

// UpdateProfile submits partial profile changes for the current
// principal. Success replaces the principal with the server's
// representation; failure leaves it untouched.
func (s *Session) UpdateProfile(ctx context.Context, updates ports.ProfileUpdate) error {
	if !s.IsAuthenticated() {
		s.notify.Error("Please login first")
		return domain.ErrUnauthenticated
	}
	if err := s.check.Check(updates); err != nil {
		s.notify.Error(err.Error())
		return err
	}

	user, err := s.gw.UpdateProfile(ctx, updates)
	if err != nil {
		s.notify.Error(domain.MessageOf(err, "Update failed"))
		return err
	}

	s.setPrincipal(user)
	s.notify.Success("Profile updated successfully")
	return nil
}

// Principal returns the current authenticated user, nil when logged out.
func (s *Session) Principal() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal
}

// IsAuthenticated reports whether a principal is present. Exactly
// Principal() != nil, by invariant also "a valid credential is applied".
func (s *Session) IsAuthenticated() bool {
	return s.Principal() != nil
}

// Loading reports whether the startup Restore is still pending.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// establish persists and applies a fresh credential and sets the
// principal, as one transition.
func (s *Session) establish(token string, user *domain.User) {
	if err := s.store.Save(token); err != nil {
		// The session still works for this run; it just won't survive
		// a restart.
		s.log.Error().Err(err).Msg("persisting credential failed")
	}
	s.gw.SetToken(token)
	s.setPrincipal(user)
}

// invalidate removes the credential everywhere and clears the principal,
// as one transition.
func (s *Session) invalidate() {
	if err := s.store.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("clearing credential store failed")
	}
	s.gw.ClearToken()
	s.setPrincipal(nil)
}

func (s *Session) setPrincipal(u *domain.User) {
	s.mu.Lock()
	s.principal = u
	s.mu.Unlock()
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
