package service

import (
	"context"
	"testing"
	"time"

	"github.com/lshigami/Compass/config"
	"github.com/lshigami/Compass/internal/auth"
	"github.com/lshigami/Compass/internal/dto"
	"github.com/lshigami/Compass/internal/model"
	"github.com/lshigami/Compass/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (AuthService, *auth.TokenIssuer) {
	t.Helper()
	db := setupDB(t)
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	cfg := &config.Config{Auth: config.Auth{AdminEmails: []string{"boss@example.com"}}}
	return NewAuthService(repository.NewUserRepository(db), issuer, cfg), issuer
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	svc, issuer := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, dto.RegisterRequest{FullName: " Ana Silva ", Email: "Ana@Example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", registered.User.Email)
	assert.Equal(t, "Ana Silva", registered.User.FullName)
	assert.Equal(t, model.RoleUser, registered.User.Role)
	assert.Equal(t, "Bearer", registered.TokenType)

	claims, err := issuer.Parse(registered.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)

	loggedIn, err := svc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	user, err := svc.GetUser(ctx, registered.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
}

func TestAuth_Rejections(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, dto.RegisterRequest{FullName: "Ana", Email: "ana@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, dto.RegisterRequest{FullName: "Ana", Email: "ANA@example.com", Password: "another-pass"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrAuthenticationRequired)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrAuthenticationRequired)
}

func TestAuth_AdminEmailsGetAdminRole(t *testing.T) {
	svc, issuer := newAuthService(t)
	resp, err := svc.Register(context.Background(), dto.RegisterRequest{FullName: "Boss", Email: "boss@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, resp.User.Role)

	claims, err := issuer.Parse(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}
