package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"menucup/internal/logging"
	"menucup/internal/model"
	"menucup/internal/repository"
)

// Session is the authenticated caller of a request.
type Session struct {
	UserID    string     `json:"user_id"`
	Email     string     `json:"email,omitempty"`
	Role      model.Role `json:"role"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// IsAdmin reports whether the session may see and edit every restaurant.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == model.RoleAdmin
}

// CanEdit reports whether the session may mutate restaurant r.
func (s *Session) CanEdit(r *model.Restaurant) bool {
	if s == nil || r == nil {
		return false
	}
	return s.IsAdmin() || r.OwnerID == s.UserID
}

type cachedRole struct {
	role      model.Role
	expiresAt time.Time
}

// sweepInterval bounds how often Authenticate scans the role cache for ended sessions.
const sweepInterval = time.Minute

// Manager turns session tokens into Sessions. It looks up a user's role once and
// caches it until the newest token seen for the user expires or the user signs out.
type Manager struct {
	verifier *Verifier
	profiles repository.ProfileRepository
	log      *logging.Logger
	now      func() time.Time

	mu        sync.Mutex
	roles     map[string]cachedRole
	onSignOut []func(userID string)
	lastSweep time.Time
}

func NewManager(v *Verifier, profiles repository.ProfileRepository, log *logging.Logger) *Manager {
	if log == nil {
		log = logging.Discard()
	}
	return &Manager{
		verifier: v,
		profiles: profiles,
		log:      log.With("auth"),
		now:      time.Now,
		roles:    make(map[string]cachedRole),
	}
}

// OnSignOut registers fn to run after a user signs out, or once the user's
// cached session has expired without a newer token being presented.
func (m *Manager) OnSignOut(fn func(userID string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onSignOut = append(m.onSignOut, fn)
}

// Authenticate verifies raw and resolves the caller's role. A user without a profile is an owner.
func (m *Manager) Authenticate(ctx context.Context, raw string) (*Session, error) {
	claims, err := m.verifier.Verify(raw)
	if err != nil {
		return nil, err
	}
	var exp time.Time
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}

	m.sweep(claims.Subject)
	role, err := m.role(ctx, claims.Subject, exp)
	if err != nil {
		return nil, err
	}
	return &Session{UserID: claims.Subject, Email: claims.Email, Role: role, ExpiresAt: exp}, nil
}

func (m *Manager) role(ctx context.Context, userID string, exp time.Time) (model.Role, error) {
	now := m.now()

	m.mu.Lock()
	c, ok := m.roles[userID]
	if ok && now.Before(c.expiresAt) {
		if exp.After(c.expiresAt) {
			c.expiresAt = exp
			m.roles[userID] = c
		}
		m.mu.Unlock()
		return c.role, nil
	}
	m.mu.Unlock()

	role := model.RoleOwner
	p, err := m.profiles.FindByID(ctx, userID)
	switch {
	case err == nil && p.Role.Valid():
		role = p.Role
	case err == nil, repository.IsNoRows(err):
	default:
		m.log.Error("profile lookup failed", err, logging.Fields{"user_id": userID})
		return "", fmt.Errorf("resolve role: %w", err)
	}

	m.mu.Lock()
	m.roles[userID] = cachedRole{role: role, expiresAt: exp}
	m.mu.Unlock()
	return role, nil
}

// SignOut forgets the cached role of userID and runs the sign-out hooks.
func (m *Manager) SignOut(userID string) {
	m.mu.Lock()
	delete(m.roles, userID)
	hooks := append([]func(string){}, m.onSignOut...)
	m.mu.Unlock()

	for _, fn := range hooks {
		fn(userID)
	}
	m.log.Info("signed out", logging.Fields{"user_id": userID})
}

// sweep ends the cached sessions whose tokens have expired, at most once per
// sweepInterval. The caller's own entry is left to role, which refreshes it.
func (m *Manager) sweep(current string) {
	now := m.now()

	m.mu.Lock()
	if now.Sub(m.lastSweep) < sweepInterval {
		m.mu.Unlock()
		return
	}
	m.lastSweep = now
	var ended []string
	for id, c := range m.roles {
		if id != current && !now.Before(c.expiresAt) {
			delete(m.roles, id)
			ended = append(ended, id)
		}
	}
	hooks := append([]func(string){}, m.onSignOut...)
	m.mu.Unlock()

	for _, id := range ended {
		for _, fn := range hooks {
			fn(id)
		}
		m.log.Info("session expired", logging.Fields{"user_id": id})
	}
}
