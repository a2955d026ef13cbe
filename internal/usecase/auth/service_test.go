package auth

import (
	"context"
	"errors"
	"testing"

	"applytrack/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memUsers struct {
	byID      map[uuid.UUID]user.User
	createErr error
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[uuid.UUID]user.User{}}
}

func (m *memUsers) CreateUser(_ context.Context, u user.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetUserByUsername(_ context.Context, username string) (user.User, error) {
	for _, u := range m.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := m.GetUserByUsername(ctx, username)
	return err == nil, nil
}

func (m *memUsers) DeleteUser(_ context.Context, id uuid.UUID) error {
	delete(m.byID, id)
	return nil
}

func TestService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemUsers()).WithCost(bcrypt.MinCost)

	u, err := svc.Register(ctx, RegisterInput{Username: "  Alice ", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Empty(t, u.PasswordHash)

	_, err = svc.Register(ctx, RegisterInput{Username: "ALICE", Password: "another pass"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	got, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Empty(t, got.PasswordHash)

	_, err = svc.Login(ctx, LoginInput{Username: "alice", Password: "wrong horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginInput{Username: "bob", Password: "correct horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_RegisterValidation(t *testing.T) {
	svc := NewService(newMemUsers()).WithCost(bcrypt.MinCost)

	cases := []RegisterInput{
		{Username: "", Password: "long enough"},
		{Username: "   ", Password: "long enough"},
		{Username: "alice", Password: "short"},
		{Username: "alice", Password: "        "},
	}
	for _, in := range cases {
		_, err := svc.Register(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidInput, "%+v", in)
	}
}

func TestService_RegisterStoreFailure(t *testing.T) {
	users := newMemUsers()
	users.createErr = errors.New("disk full")
	svc := NewService(users).WithCost(bcrypt.MinCost)

	_, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Password: "long enough"})
	assert.ErrorIs(t, err, ErrInternal)
}
