package session

import (
	"errors"
	"log"
	"strings"

	"monkeyclicker/internal/ledger"
	"monkeyclicker/internal/storage"
)

// ErrInvalidEmail is the user-visible validation message. Invalid input
// is rejected here and never reaches the ledger.
var ErrInvalidEmail = errors.New("please enter a valid email address")

// Manager owns the single current identity, persisted so a session
// survives restarts until explicit logout.
type Manager struct {
	kv     storage.KV
	ledger *ledger.Ledger
}

func New(kv storage.KV, l *ledger.Ledger) *Manager {
	return &Manager{kv: kv, ledger: l}
}

// Normalize lower-cases and trims a raw email into an identity.
func Normalize(rawEmail string) string {
	return strings.ToLower(strings.TrimSpace(rawEmail))
}

// Current returns the logged-in identity, if any.
func (m *Manager) Current() (string, bool) {
	id, ok := m.kv.Get(storage.KeySessionEmail)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Login validates and normalizes rawEmail, persists it as the current
// identity, and returns the identity with its existing click count so
// the caller can hydrate UI state. No ledger entry is created; that
// happens lazily on first click.
func (m *Manager) Login(rawEmail string) (identity string, clicks int, err error) {
	identity = Normalize(rawEmail)
	if identity == "" || !strings.Contains(identity, "@") {
		return "", 0, ErrInvalidEmail
	}
	if err := m.kv.Set(storage.KeySessionEmail, identity); err != nil {
		log.Printf("[Session] Persist login error: %v\n", err)
	}
	return identity, m.ledger.GetUserClicks(identity), nil
}

// Logout clears the session only. The identity's ledger entry is kept:
// scores survive logouts.
func (m *Manager) Logout() {
	if err := m.kv.Remove(storage.KeySessionEmail); err != nil {
		log.Printf("[Session] Clear session error: %v\n", err)
	}
}
