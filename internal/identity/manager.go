package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jamizoram/storefront/internal/domain"
	"github.com/jamizoram/storefront/internal/repository"
	apperrors "github.com/jamizoram/storefront/pkg/errors"
)

// Subscriber is notified on sign-in and sign-out with the session token and
// the identity involved. Used to wire dependent state (e.g. dropping a
// session's cart on sign-out) through an explicit contract instead of an
// implicit reactive runtime.
type Subscriber func(token string, user *domain.User)

// Manager bridges authentication into the application's identity model. It
// issues opaque session tokens, resolves them back to users, and hard-codes
// the shopper role at the creation boundary: a client-sent role field is
// never trusted.
type Manager struct {
	users     repository.UserRepository
	sessions  SessionStore
	ttl       time.Duration
	logger    *zap.Logger
	onSignIn  []Subscriber
	onSignOut []Subscriber
}

// NewManager creates an identity manager
func NewManager(users repository.UserRepository, sessions SessionStore, ttl time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		users:    users,
		sessions: sessions,
		ttl:      ttl,
		logger:   logger,
	}
}

// OnSignIn registers a subscriber invoked after every successful sign-in or
// sign-up. Register before serving traffic; registration is not synchronized.
func (m *Manager) OnSignIn(fn Subscriber) {
	m.onSignIn = append(m.onSignIn, fn)
}

// OnSignOut registers a subscriber invoked after every sign-out
func (m *Manager) OnSignOut(fn Subscriber) {
	m.onSignOut = append(m.onSignOut, fn)
}

// SignUp registers a new shopper. The role is always USER here; admin
// identities are provisioned out of band (cmd/create-admin).
func (m *Manager) SignUp(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, "", &apperrors.ErrValidation{Message: "email and password are required"}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "User"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Name:  name,
		Email: email,
		Role:  domain.RoleUser,
	}
	if err := m.users.Create(ctx, user, string(hash)); err != nil {
		return nil, "", err
	}

	token, err := m.openSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	m.logger.Info("User signed up", zap.String("user_id", user.ID.String()))
	return user, token, nil
}

// SignIn verifies credentials and opens a session. Unknown email and wrong
// password collapse into the same unauthorized error.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	hash, err := m.users.PasswordHash(ctx, email)
	if err != nil {
		if _, ok := err.(*apperrors.ErrNotFound); ok {
			return nil, "", &apperrors.ErrUnauthorized{Message: "invalid email or password"}
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, "", &apperrors.ErrUnauthorized{Message: "invalid email or password"}
	}

	user, err := m.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	token, err := m.openSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	m.logger.Info("User signed in", zap.String("user_id", user.ID.String()))
	return user, token, nil
}

// UpdateProfile changes the shopper's own name and contact details. Nil
// fields are left untouched; role and email never change through this path.
// Returns the refreshed user record.
func (m *Manager) UpdateProfile(ctx context.Context, userID uuid.UUID, name, phone, address *string) (*domain.User, error) {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, &apperrors.ErrValidation{Message: "name cannot be empty"}
		}
		name = &trimmed
	}

	if err := m.users.UpdateProfile(ctx, userID, name, phone, address); err != nil {
		return nil, err
	}
	user, err := m.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	m.logger.Info("User profile updated", zap.String("user_id", userID.String()))
	return user, nil
}

// SignOut clears the session and notifies subscribers. Clearing an unknown
// token is not an error.
func (m *Manager) SignOut(ctx context.Context, token string) error {
	user, _ := m.Current(ctx, token)
	if err := m.sessions.Delete(ctx, token); err != nil {
		return err
	}
	for _, fn := range m.onSignOut {
		fn(token, user)
	}
	return nil
}

// Current resolves a bearer token to its identity. The user record is
// re-read on every call, so role or profile changes take effect on the next
// request rather than at sign-in time only.
func (m *Manager) Current(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, &apperrors.ErrUnauthorized{}
	}
	userID, err := m.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	user, err := m.users.GetByID(ctx, userID)
	if err != nil {
		if _, ok := err.(*apperrors.ErrNotFound); ok {
			return nil, &apperrors.ErrUnauthorized{Message: "user no longer exists"}
		}
		return nil, err
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	return user, nil
}

func (m *Manager) openSession(ctx context.Context, user *domain.User) (string, error) {
	token := uuid.NewString()
	if err := m.sessions.Create(ctx, token, user.ID, m.ttl); err != nil {
		return "", err
	}
	for _, fn := range m.onSignIn {
		fn(token, user)
	}
	return token, nil
}
