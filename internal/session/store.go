package session

import (
	"os"
	"path/filepath"

	"github.com/golang-jwt/jwt/v4"
)

// Role is the user role encoded in the credential token
type Role string

const (
	RoleCleaner      Role = "cleaner"
	RoleManager      Role = "manager"
	RoleDean         Role = "dean"
	RoleCommissioner Role = "bmc_commissioner"
)

// Roles lists the roles accepted at registration, in display order
func Roles() []Role {
	return []Role{RoleCleaner, RoleManager, RoleDean, RoleCommissioner}
}

// Label returns the human-readable name of the role
func (r Role) Label() string {
	switch r {
	case RoleCleaner:
		return "Cleaner"
	case RoleManager:
		return "Floor Manager"
	case RoleDean:
		return "Dean"
	case RoleCommissioner:
		return "BMC Commissioner"
	default:
		return string(r)
	}
}

// Session is the identity view decoded from the credential token.
// It is a projection of the token, recomputed on every read.
type Session struct {
	UserID   string
	Role     Role
	FullName string
	Token    string
}

// claims mirrors the payload the housekeeping API puts in its tokens
type claims struct {
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
	jwt.RegisteredClaims
}

// Store owns the persisted credential token
type Store struct {
	path string
}

// NewStore creates a store backed by the given credential file path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Current reads the persisted credential and derives the session from it.
// Returns nil when no credential is stored. A credential that cannot be
// decoded is treated as corruption: the file is cleared and nil is returned.
func (s *Store) Current() *Session {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	token := string(data)
	sess, err := Decode(token)
	if err != nil {
		// Corrupted credential. Recover locally by clearing it.
		_ = s.Clear()
		return nil
	}
	return sess
}

// Establish persists a newly issued credential, replacing any prior value
func (s *Store) Establish(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0600)
}

// Clear removes the persisted credential. Callers re-route as needed.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Decode derives a session from a credential token without verifying its
// signature. The client holds no signing secret; the server authenticates
// every call that matters. Only the payload structure is checked here.
func Decode(token string) (*Session, error) {
	var c claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &c); err != nil {
		return nil, err
	}
	if c.UserID == "" || c.Role == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return &Session{
		UserID:   c.UserID,
		Role:     Role(c.Role),
		FullName: c.FullName,
		Token:    token,
	}, nil
}
