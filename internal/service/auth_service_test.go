package service

import (
	"context"
	"testing"
	"time"

	"bugwise/internal/model"
	"bugwise/internal/testutil"
	"bugwise/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_LoginAndAuthenticate(t *testing.T) {
	store := testutil.NewMemoryStore()
	alice := testutil.SeedUser(t, store, "alice", "password123", model.RoleDeveloper)
	jwtUtil := utils.NewJWTUtil("secret", time.Hour)
	svc := NewAuthService(store, jwtUtil)

	token, err := svc.Login(context.Background(), "alice", "password123")
	require.NoError(t, err)

	claims, err := jwtUtil.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, model.RoleDeveloper, claims.Role)

	user, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, user.ID)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	store := testutil.NewMemoryStore()
	testutil.SeedUser(t, store, "alice", "password123", model.RoleViewer)
	svc := NewAuthService(store, utils.NewJWTUtil("secret", time.Hour))

	_, err := svc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_TokenCreationFails(t *testing.T) {
	store := testutil.NewMemoryStore()
	testutil.SeedUser(t, store, "alice", "password123", model.RoleViewer)
	svc := NewAuthService(store, utils.NewJWTUtil("", time.Hour))

	_, err := svc.Login(context.Background(), "alice", "password123")
	assert.ErrorIs(t, err, utils.ErrTokenCreation)
}

func TestAuthService_Authenticate_Failures(t *testing.T) {
	store := testutil.NewMemoryStore()
	testutil.SeedUser(t, store, "alice", "password123", model.RoleViewer)
	jwtUtil := utils.NewJWTUtil("secret", time.Hour)
	svc := NewAuthService(store, jwtUtil)

	ghostToken, err := jwtUtil.GenerateToken("ghost", model.RoleAdmin)
	require.NoError(t, err)
	noSubject, err := jwtUtil.GenerateToken("", model.RoleAdmin)
	require.NoError(t, err)
	foreign, err := utils.NewJWTUtil("other", time.Hour).GenerateToken("alice", model.RoleViewer)
	require.NoError(t, err)
	expired, err := jwtUtil.GenerateTokenWithTTL("alice", model.RoleViewer, -time.Minute)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":       "not-a-token",
		"unknown user":  ghostToken,
		"no subject":    noSubject,
		"wrong secret":  foreign,
		"expired token": expired,
	} {
		t.Run(name, func(t *testing.T) {
			user, err := svc.Authenticate(context.Background(), token)
			assert.ErrorIs(t, err, ErrUnauthorized)
			assert.Nil(t, user)
		})
	}
}

func TestRequireRole(t *testing.T) {
	admin := &model.User{ID: 1, Role: model.RoleAdmin}
	dev := &model.User{ID: 2, Role: model.RoleDeveloper}
	viewer := &model.User{ID: 3, Role: model.RoleViewer}

	got, err := RequireRole(admin, model.PolicyAdminOnly)
	assert.NoError(t, err)
	assert.Same(t, admin, got)

	_, err = RequireRole(dev, model.PolicyAdminOnly)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err = RequireRole(dev, model.PolicyDeveloperOrAdmin)
	assert.NoError(t, err)
	assert.Same(t, dev, got)

	_, err = RequireRole(viewer, model.PolicyDeveloperOrAdmin)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = RequireRole(nil, model.PolicyDeveloperOrAdmin)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
