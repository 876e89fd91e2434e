// Package session owns the client-side authentication lifecycle: acquiring
// the bearer token, resolving it to an identity, persisting it across runs,
// and tearing everything down on logout.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kgarud95/learningx-cli/internal/client/api"
	"github.com/kgarud95/learningx-cli/internal/client/models"
	"github.com/kgarud95/learningx-cli/internal/client/repositories/metadata"
	"github.com/kgarud95/learningx-cli/internal/common"
	"github.com/kgarud95/learningx-cli/internal/logging"
)

// Subscriber is invoked on every identity transition: with the new identity
// after a successful login/register/resolve, and with nil after a logout.
type Subscriber func(*models.Identity)

// Store is the single source of truth for the current session. It is
// constructed once at startup and handed by reference to every consumer;
// there is no ambient global instance.
//
// Invariants:
//   - a present token implies an identity resolution has been attempted;
//   - an absent token implies the identity is absent;
//   - an invalid or expired token is never left installed: any failed
//     resolution forces a logout.
type Store struct {
	client api.Client
	meta   metadata.Repository
	log    logging.Logger

	mu        sync.Mutex
	token     string
	identity  *models.Identity
	resolving bool
	// epoch is bumped on every login/logout so that a resolution whose
	// result arrives after the session changed underneath it is discarded.
	epoch uint64
	subs  []Subscriber
}

func New(client api.Client, meta metadata.Repository, log logging.Logger) *Store {
	return &Store{client: client, meta: meta, log: log}
}

// Restore loads the persisted token, if any, and resolves it to an identity.
// It runs to completion before returning: after Restore, Resolving reports
// false and the store is either signed in or fully signed out. A persisted
// token that is already past its JWT expiry is discarded without a network
// call.
func (s *Store) Restore(ctx context.Context) {
	raw, err := s.meta.Get(ctx, common.SessionTokenKey)
	if err != nil {
		s.log.Warn(ctx, "failed to read persisted token", "error", err)
		return
	}
	if len(raw) == 0 {
		return
	}
	token := string(raw)

	if exp, ok := tokenExpiry(token); ok && time.Now().After(exp) {
		s.log.Info(ctx, "persisted token expired, signing out", "expired_at", exp)
		s.Logout(ctx)
		return
	}

	s.mu.Lock()
	s.token = token
	s.resolving = true
	s.mu.Unlock()

	s.client.SetToken(token)
	s.ResolveIdentity(ctx)
}

// ResolveIdentity fetches the profile for the current token. On success the
// identity is installed and subscribers are notified; on any failure the
// corrective action is a full logout. The resolving flag is always cleared
// on completion, so consumers are never left waiting for an identity that
// will not arrive.
func (s *Store) ResolveIdentity(ctx context.Context) {
	s.mu.Lock()
	epoch := s.epoch
	token := s.token
	s.mu.Unlock()

	if token == "" {
		s.setResolving(false)
		return
	}

	identity, err := s.client.Me(ctx)

	s.mu.Lock()
	if s.epoch != epoch {
		// Session changed while the fetch was in flight; the result is
		// stale and must not be applied.
		s.resolving = false
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Warn(ctx, "identity resolution failed, signing out", "error", err)
		s.Logout(ctx)
		return
	}

	s.mu.Lock()
	s.identity = identity
	s.resolving = false
	subs := s.snapshotSubs()
	s.mu.Unlock()

	notify(subs, identity)
}

// Login exchanges credentials for a session. On success the token and
// identity are installed atomically, the token is persisted, and the bearer
// header is set for all future requests. On failure the returned error
// carries the server's detail message (or a generic fallback) and the store
// is left unchanged.
func (s *Store) Login(ctx context.Context, email string, password string) error {
	token, identity, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	s.install(ctx, token, identity)
	return nil
}

// Register mirrors Login against the register endpoint; the API returns the
// same token+profile shape for both. Password length and confirmation are
// form-level checks performed by the caller before any network call.
func (s *Store) Register(ctx context.Context, email string, password string, name string) error {
	token, identity, err := s.client.Register(ctx, email, password, name)
	if err != nil {
		return err
	}
	s.install(ctx, token, identity)
	return nil
}

// LoginWithSession completes the delegated-auth flow: the session id handed
// back by the external provider is exchanged for a regular bearer session.
// Success behaves exactly like Login success.
func (s *Store) LoginWithSession(ctx context.Context, sessionID string) error {
	token, identity, err := s.client.ExchangeSession(ctx, sessionID)
	if err != nil {
		return err
	}
	s.install(ctx, token, identity)
	return nil
}

// Logout unconditionally clears the token and identity, removes the
// persisted entry, and drops the bearer header. It is idempotent; calling
// it while already signed out is a no-op that notifies nobody.
func (s *Store) Logout(ctx context.Context) {
	if err := s.meta.Delete(ctx, common.SessionTokenKey); err != nil {
		s.log.Warn(ctx, "failed to remove persisted token", "error", err)
	}
	s.client.ClearToken()

	s.mu.Lock()
	hadSession := s.token != "" || s.identity != nil
	s.token = ""
	s.identity = nil
	s.resolving = false
	s.epoch++
	subs := s.snapshotSubs()
	s.mu.Unlock()

	if hadSession {
		notify(subs, nil)
	}
}

// Subscribe registers fn to be called on identity transitions. Subscriptions
// cannot be removed; they live as long as the store.
func (s *Store) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Identity returns a copy of the current identity, or nil when signed out.
// The store retains exclusive ownership of its own state.
func (s *Store) Identity() *models.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}

func (s *Store) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity != nil
}

func (s *Store) Resolving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolving
}

// TokenExpiry reports when the current token expires, when that can be
// determined from its claims.
func (s *Store) TokenExpiry() (time.Time, bool) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()
	if token == "" {
		return time.Time{}, false
	}
	return tokenExpiry(token)
}

func (s *Store) install(ctx context.Context, token string, identity *models.Identity) {
	if err := s.meta.Set(ctx, common.SessionTokenKey, []byte(token)); err != nil {
		// The session still works for this run; only the restart path
		// degrades.
		s.log.Warn(ctx, "failed to persist token", "error", err)
	}
	s.client.SetToken(token)

	s.mu.Lock()
	s.token = token
	s.identity = identity
	s.resolving = false
	s.epoch++
	subs := s.snapshotSubs()
	s.mu.Unlock()

	notify(subs, identity)
}

func (s *Store) setResolving(v bool) {
	s.mu.Lock()
	s.resolving = v
	s.mu.Unlock()
}

func (s *Store) snapshotSubs() []Subscriber {
	subs := make([]Subscriber, len(s.subs))
	copy(subs, s.subs)
	return subs
}

func notify(subs []Subscriber, identity *models.Identity) {
	for _, fn := range subs {
		fn(identity)
	}
}

// tokenExpiry extracts the exp claim from a JWT without verifying the
// signature; verification is the server's job. Returns ok=false for tokens
// that are not JWTs or carry no expiry.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
