// Package auth holds the admin gate: a single authenticated flag compared
// against one configured password and persisted to a kv.Storage.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"

	"github.com/webark/webark/kv"
)

// Key is the storage key holding the authenticated flag.
const Key = "admin_auth"

// ErrNoPassword is returned by NewGuard when no credential is configured.
var ErrNoPassword = errors.New("auth: admin password is not configured")

// Guard is either anonymous or authenticated. It carries no expiry and no
// token; whoever holds the backing storage holds the flag.
type Guard struct {
	mu       sync.RWMutex
	storage  kv.Storage
	password []byte
	authed   bool
}

// NewGuard returns a guard rehydrated from storage.
func NewGuard(storage kv.Storage, password string) (*Guard, error) {
	if password == "" {
		return nil, ErrNoPassword
	}
	g := &Guard{storage: storage, password: []byte(password)}
	v, found, err := storage.Get(Key)
	if err != nil {
		return nil, fmt.Errorf("auth: load flag: %w", err)
	}
	g.authed = found && v == "true"
	return g, nil
}

// Login authenticates when password matches the configured credential. A
// wrong password leaves the current state untouched.
func (g *Guard) Login(password string) (bool, error) {
	if subtle.ConstantTimeCompare([]byte(password), g.password) != 1 {
		return false, nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.storage.Set(Key, "true"); err != nil {
		return false, fmt.Errorf("auth: persist flag: %w", err)
	}
	g.authed = true
	return true, nil
}

// Logout clears the flag in memory and in storage.
func (g *Guard) Logout() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.authed = false
	if err := g.storage.Remove(Key); err != nil {
		return fmt.Errorf("auth: clear flag: %w", err)
	}
	return nil
}

// IsAuthenticated reports the current state.
func (g *Guard) IsAuthenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.authed
}
