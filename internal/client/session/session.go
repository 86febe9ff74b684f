// Package session manages the client's authentication state. A successful
// login issues a signed JWT that is persisted in the local store, so a
// restarted client resumes the same session until the token expires or is
// cleared by logout.
package session

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"archivedb/internal/client/localstore"
	"archivedb/internal/client/models"
	"archivedb/internal/common"
	"archivedb/internal/cryptox"
	"archivedb/internal/logging"
)

// Admin credentials are embedded in the client. The password is kept only
// as an argon2-derived verifier; login recomputes the verifier from the
// entered password and compares in constant time.
const (
	adminUsername = "admin"
	adminSalt     = "archivedb-admin-salt"
)

var adminVerifier []byte

func init() {
	key := cryptox.DeriveKey([]byte("admin123"), []byte(adminSalt))
	adminVerifier = cryptox.MakeVerifier(key)
}

const tokenTTL = 12 * time.Hour

type claims struct {
	jwt.RegisteredClaims
	Role models.Role `json:"role"`
}

// Manager authenticates users and tracks the current session.
type Manager struct {
	store      *localstore.Store
	signingKey []byte
	logger     logging.Logger
}

func NewManager(store *localstore.Store, signingKey []byte, logger logging.Logger) *Manager {
	return &Manager{store: store, signingKey: signingKey, logger: logger}
}

// Login verifies the entered credentials against the embedded admin account
// and, on success, persists a fresh admin session token. Wrong credentials
// fail with common.ErrAccessDenied and leave any existing session intact.
func (m *Manager) Login(ctx context.Context, username string, password []byte) (*models.Session, error) {
	defer common.WipeByteArray(password)

	verifier := cryptox.MakeVerifier(cryptox.DeriveKey(password, []byte(adminSalt)))

	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(adminUsername)) == 1
	passwordOK := subtle.ConstantTimeCompare(verifier, adminVerifier) == 1
	if !usernameOK || !passwordOK {
		m.logger.Info("login rejected", "username", username)
		return nil, fmt.Errorf("invalid credentials: %w", common.ErrAccessDenied)
	}

	return m.start(ctx, adminUsername, models.RoleAdmin)
}

// LoginGuest starts a read-only guest session without credentials.
func (m *Manager) LoginGuest(ctx context.Context) (*models.Session, error) {
	return m.start(ctx, "guest", models.RoleGuest)
}

func (m *Manager) start(ctx context.Context, username string, role models.Role) (*models.Session, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		Role: role,
	})

	signed, err := token.SignedString(m.signingKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	if err := m.store.Write(ctx, localstore.KeyAuth, []byte(signed)); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	m.logger.Info("session started", "username", username, "role", role)

	return &models.Session{Username: username, Role: role, LoginTime: now}, nil
}

// Logout drops the persisted session token.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Delete(ctx, localstore.KeyAuth); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	m.logger.Info("session ended")
	return nil
}

// Current returns the active session, or nil when no valid token is stored.
// An expired or tampered token counts as no session.
func (m *Manager) Current(ctx context.Context) (*models.Session, error) {
	raw, err := m.store.Read(ctx, localstore.KeyAuth)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var c claims
	token, err := jwt.ParseWithClaims(string(raw), &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v: %w", t.Header["alg"], common.ErrInvalidToken)
		}
		return m.signingKey, nil
	})
	if err != nil || !token.Valid {
		m.logger.Debug("stored session token rejected", "error", err)
		return nil, nil
	}

	s := &models.Session{Username: c.Subject, Role: c.Role}
	if c.IssuedAt != nil {
		s.LoginTime = c.IssuedAt.Time
	}
	return s, nil
}

// IsAdmin reports whether the current session carries admin rights.
func (m *Manager) IsAdmin(ctx context.Context) bool {
	s, err := m.Current(ctx)
	return err == nil && s.IsAdmin()
}

// IsAuthenticated reports whether any session (admin or guest) is active.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	s, err := m.Current(ctx)
	return err == nil && s != nil
}
