package storage

import (
	"errors"
	"fmt"
	"regexp"
)

// GuestNamespace is the reserved namespace for callers without an identity.
const GuestNamespace = "guest"

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrInvalidKey     = errors.New("invalid storage key")

	userIDPattern     = regexp.MustCompile(`^[A-Za-z0-9._@:-]{1,128}$`)
	logicalKeyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
)

const maxLogicalKeyLen = 128

// Session scopes every storage operation to one namespace.
// The zero value is the guest session.
type Session struct {
	userID string
}

// NewSession returns the session for userID. An empty id yields the guest session.
func NewSession(userID string) (Session, error) {
	if userID == "" {
		return GuestSession(), nil
	}
	if userID == GuestNamespace {
		return Session{}, fmt.Errorf("%w: %q is reserved", ErrInvalidSession, userID)
	}
	if !userIDPattern.MatchString(userID) {
		return Session{}, fmt.Errorf("%w: malformed user id", ErrInvalidSession)
	}
	return Session{userID: userID}, nil
}

func GuestSession() Session { return Session{} }

func (s Session) IsGuest() bool { return s.userID == "" }

// Namespace is the user id, or GuestNamespace for the guest session.
func (s Session) Namespace() string {
	if s.IsGuest() {
		return GuestNamespace
	}
	return s.userID
}

func (s Session) String() string { return s.Namespace() }

// IdentityProvider supplies the active user's stable identifier, if any.
type IdentityProvider interface {
	CurrentUserID() (string, bool)
}

// SessionFor derives a session from the provider. No identity means guest.
func SessionFor(p IdentityProvider) (Session, error) {
	if p == nil {
		return GuestSession(), nil
	}
	id, ok := p.CurrentUserID()
	if !ok {
		return GuestSession(), nil
	}
	return NewSession(id)
}

// StaticIdentity is an IdentityProvider with a fixed answer. The empty value has no identity.
type StaticIdentity string

func (s StaticIdentity) CurrentUserID() (string, bool) {
	return string(s), s != ""
}

func validateLogicalKey(key string) error {
	if len(key) > maxLogicalKeyLen || !logicalKeyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
