package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/govbudget/budget-portal/internal/models"
)

// mockUserStore backs the auth service with in-memory users
type mockUserStore struct {
	byEmail map[string]*models.UserProfile
	byID    map[string]*models.UserProfile
}

func (m *mockUserStore) GetByEmail(_ context.Context, email string) (*models.UserProfile, error) {
	return m.byEmail[email], nil
}

func (m *mockUserStore) GetByID(_ context.Context, id string) (*models.UserProfile, error) {
	return m.byID[id], nil
}

func newTestService(t *testing.T, users ...*models.UserProfile) *Service {
	t.Helper()
	store := &mockUserStore{
		byEmail: make(map[string]*models.UserProfile),
		byID:    make(map[string]*models.UserProfile),
	}
	for _, u := range users {
		store.byEmail[u.Email] = u
		store.byID[u.ID] = u
	}
	tokens := NewTokenManager("test-secret", time.Hour)
	return NewService(store, tokens, zap.NewNop())
}

func testUser(t *testing.T, password string) *models.UserProfile {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	return &models.UserProfile{
		ID:           "u1",
		Email:        "secretary@moe.gov.in",
		FullName:     "A Secretary",
		Role:         models.RoleMinistrySecretary,
		IsActive:     true,
		PasswordHash: hash,
	}
}

func TestLoginAndAuthenticate(t *testing.T) {
	user := testUser(t, "s3cret")
	svc := newTestService(t, user)
	ctx := context.Background()

	result, err := svc.Login(ctx, user.Email, "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.True(t, result.ExpiresAt.After(time.Now()))
	assert.Equal(t, "u1", result.User.ID)

	resolved, err := svc.Authenticate(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", resolved.ID)
	assert.Equal(t, models.RoleMinistrySecretary, resolved.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	user := testUser(t, "s3cret")
	svc := newTestService(t, user)

	_, err := svc.Login(context.Background(), user.Email, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), "nobody@example.gov", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	user := testUser(t, "s3cret")
	user.IsActive = false
	svc := newTestService(t, user)

	_, err := svc.Login(context.Background(), user.Email, "s3cret")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestAuthenticateRejectsTamperedToken(t *testing.T) {
	user := testUser(t, "s3cret")
	svc := newTestService(t, user)
	ctx := context.Background()

	result, err := svc.Login(ctx, user.Email, "s3cret")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, result.Token+"x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticateRejectsForeignSignature(t *testing.T) {
	user := testUser(t, "s3cret")
	svc := newTestService(t, user)

	other := NewTokenManager("other-secret", time.Hour)
	token, _, err := other.Issue(user)
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpiry(t *testing.T) {
	user := testUser(t, "s3cret")
	tokens := NewTokenManager("test-secret", -time.Minute)

	token, _, err := tokens.Issue(user)
	require.NoError(t, err)

	_, err = tokens.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
