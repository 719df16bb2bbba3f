package menubuilder

import (
	"sync"

	"menucup/internal/auth"
	"menucup/internal/logging"
)

// Registry keeps one Builder per signed-in user.
type Registry struct {
	restaurants Restaurants
	menu        Menu
	mode        PersistMode
	log         *logging.Logger

	mu       sync.Mutex
	builders map[string]*Builder
}

func NewRegistry(restaurants Restaurants, menu Menu, mode PersistMode, log *logging.Logger) *Registry {
	return &Registry{
		restaurants: restaurants,
		menu:        menu,
		mode:        mode,
		log:         log,
		builders:    make(map[string]*Builder),
	}
}

// For returns the builder of s.UserID, creating it on first use. The builder
// always acts with the latest session so a changed role takes effect.
func (r *Registry) For(s *auth.Session) *Builder {
	r.mu.Lock()
	b, ok := r.builders[s.UserID]
	if !ok {
		b = New(s, r.restaurants, r.menu, r.mode, r.log)
		r.builders[s.UserID] = b
	}
	r.mu.Unlock()

	if ok {
		b.setSession(s)
	}
	return b
}

// Drop forgets the builder of userID. It is registered as a sign-out hook.
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.builders, userID)
}

// Len reports how many sessions hold a builder.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.builders)
}
