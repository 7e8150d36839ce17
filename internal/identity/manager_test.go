package identity

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamizoram/storefront/internal/domain"
	"github.com/jamizoram/storefront/pkg/errors"
)

// fakeUserRepo is an in-memory UserRepository
type fakeUserRepo struct {
	users  map[string]*domain.User // by email
	hashes map[string]string       // by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[string]*domain.User),
		hashes: make(map[string]string),
	}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "user", ID: id.String()}
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := f.users[strings.ToLower(email)]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "user", ID: email}
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User, passwordHash string) error {
	email := strings.ToLower(user.Email)
	if _, exists := f.users[email]; exists {
		return &errors.ErrConflict{Message: "email already registered"}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	cp := *user
	f.users[email] = &cp
	f.hashes[email] = passwordHash
	return nil
}

func (f *fakeUserRepo) PasswordHash(ctx context.Context, email string) (string, error) {
	hash, ok := f.hashes[strings.ToLower(email)]
	if !ok {
		return "", &errors.ErrNotFound{Resource: "user", ID: email}
	}
	return hash, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, name, phone, address *string) error {
	for _, u := range f.users {
		if u.ID == id {
			if name != nil {
				u.Name = *name
			}
			if phone != nil {
				u.Phone = phone
			}
			if address != nil {
				u.Address = address
			}
			return nil
		}
	}
	return &errors.ErrNotFound{Resource: "user", ID: id.String()}
}

func newTestManager() (*Manager, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewManager(repo, NewMemorySessionStore(), time.Hour, nil), repo
}

func TestSignUpHardCodesShopperRole(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	user, token, err := m.SignUp(ctx, "Lal", "lal@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Role comes from the boundary, never the client
	assert.Equal(t, domain.RoleUser, user.Role)
}

func TestSignUpNormalizesEmailAndName(t *testing.T) {
	ctx := context.Background()
	m, repo := newTestManager()

	user, _, err := m.SignUp(ctx, "  ", "  LAL@Example.COM ", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "lal@example.com", user.Email)
	assert.Equal(t, "User", user.Name)
	assert.Contains(t, repo.users, "lal@example.com")
}

func TestSignUpDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	_, _, err := m.SignUp(ctx, "Lal", "lal@example.com", "secret123")
	require.NoError(t, err)

	_, _, err = m.SignUp(ctx, "Other", "lal@example.com", "different")
	var conflict *errors.ErrConflict
	require.ErrorAs(t, err, &conflict)
}

func TestSignInAndCurrent(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()
	_, _, err := m.SignUp(ctx, "Lal", "lal@example.com", "secret123")
	require.NoError(t, err)

	user, token, err := m.SignIn(ctx, "lal@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := m.Current(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestSignInCollapsesFailureModes(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()
	_, _, err := m.SignUp(ctx, "Lal", "lal@example.com", "secret123")
	require.NoError(t, err)

	// Wrong password and unknown email yield the same error shape, so a
	// caller can't probe which emails are registered
	_, _, badPassword := m.SignIn(ctx, "lal@example.com", "wrong")
	_, _, unknownEmail := m.SignIn(ctx, "nobody@example.com", "whatever")

	var unauthorized *errors.ErrUnauthorized
	require.ErrorAs(t, badPassword, &unauthorized)
	require.ErrorAs(t, unknownEmail, &unauthorized)
	assert.Equal(t, badPassword.Error(), unknownEmail.Error())
}

func TestSignOutInvalidatesSession(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()
	_, token, err := m.SignUp(ctx, "Lal", "lal@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, m.SignOut(ctx, token))

	_, err = m.Current(ctx, token)
	var unauthorized *errors.ErrUnauthorized
	require.ErrorAs(t, err, &unauthorized)
}

func TestSignOutNotifiesSubscribers(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	var droppedToken string
	m.OnSignOut(func(token string, _ *domain.User) {
		droppedToken = token
	})

	_, token, err := m.SignUp(ctx, "Lal", "lal@example.com", "secret123")
	require.NoError(t, err)
	require.NoError(t, m.SignOut(ctx, token))

	// The cart-drop wiring hangs off this exact token
	assert.Equal(t, token, droppedToken)
}

func TestUpdateProfilePartialFields(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()
	user, _, err := m.SignUp(ctx, "Lal", "lal@example.com", "secret123")
	require.NoError(t, err)

	phone := "+91 90000 00000"
	updated, err := m.UpdateProfile(ctx, user.ID, nil, &phone, nil)
	require.NoError(t, err)

	// Omitted fields stay untouched
	assert.Equal(t, "Lal", updated.Name)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, phone, *updated.Phone)
	assert.Nil(t, updated.Address)

	name := "  Lalram  "
	updated, err = m.UpdateProfile(ctx, user.ID, &name, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Lalram", updated.Name)
}

func TestUpdateProfileRejectsBlankName(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()
	user, _, err := m.SignUp(ctx, "Lal", "lal@example.com", "secret123")
	require.NoError(t, err)

	blank := "   "
	_, err = m.UpdateProfile(ctx, user.ID, &blank, nil, nil)
	var validation *errors.ErrValidation
	require.ErrorAs(t, err, &validation)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	m, _ := newTestManager()
	_, err := m.UpdateProfile(context.Background(), uuid.New(), nil, nil, nil)
	var notFound *errors.ErrNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestCurrentEmptyToken(t *testing.T) {
	m, _ := newTestManager()
	_, err := m.Current(context.Background(), "")
	var unauthorized *errors.ErrUnauthorized
	require.ErrorAs(t, err, &unauthorized)
}

func TestSignUpRequiresCredentials(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	_, _, err := m.SignUp(ctx, "Lal", "", "secret123")
	var validation *errors.ErrValidation
	require.ErrorAs(t, err, &validation)

	_, _, err = m.SignUp(ctx, "Lal", "lal@example.com", "")
	require.ErrorAs(t, err, &validation)
}
