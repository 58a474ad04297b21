package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/UFAZ-L2-CS1/DADLY/internal/testdb"
	"github.com/UFAZ-L2-CS1/DADLY/repository"
	"github.com/UFAZ-L2-CS1/DADLY/utils"
)

func init() {
	utils.UseMinPasswordCost()
}

type authFixture struct {
	db      *gorm.DB
	store   *repository.Store
	auth    *AuthService
	users   *UserService
	revoked *MemoryRevocationStore
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	db := testdb.Open(t)
	store := repository.New(db)
	tokens, err := utils.NewTokenManager("test-secret", "HS256", 30*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	revoked := NewMemoryRevocationStore()
	auth := NewAuthService(store, tokens, revoked)
	return &authFixture{db: db, store: store, auth: auth, users: NewUserService(store, auth), revoked: revoked}
}

func (f *authFixture) register(t *testing.T, email, password string) {
	t.Helper()
	_, err := f.auth.Register(context.Background(), RegisterInput{Email: email, Name: "Cook", Password: password})
	require.NoError(t, err)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	u, err := f.auth.Register(ctx, RegisterInput{Email: "Cook@Example.com", Name: " Cook ", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "cook@example.com", u.Email)
	assert.Equal(t, "Cook", u.Name)
	assert.Equal(t, "none", u.DietaryType)
	assert.NotEqual(t, "password1", u.HashedPassword)

	_, err = f.auth.Register(ctx, RegisterInput{Email: "cook@example.com", Name: "Other", Password: "password2"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginAndAuthenticate(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.register(t, "cook@example.com", "password1")

	_, err := f.auth.Login(ctx, "cook@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, "nobody@example.com", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	pair, err := f.auth.Login(ctx, "COOK@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, "bearer", pair.TokenType)

	sess, err := f.auth.Authenticate(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "cook@example.com", sess.User.Email)

	_, err = f.auth.Authenticate(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, utils.ErrInvalidToken, "refresh tokens do not authenticate requests")
}

func TestRefresh(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.register(t, "cook@example.com", "password1")
	pair, err := f.auth.Login(ctx, "cook@example.com", "password1")
	require.NoError(t, err)

	fresh, err := f.auth.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Empty(t, fresh.RefreshToken)
	_, err = f.auth.Authenticate(ctx, fresh.AccessToken)
	require.NoError(t, err)

	_, err = f.auth.Refresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)

	require.NoError(t, f.revoked.Revoke(ctx, pair.RefreshToken, time.Hour))
	_, err = f.auth.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.register(t, "cook@example.com", "password1")
	pair, err := f.auth.Login(ctx, "cook@example.com", "password1")
	require.NoError(t, err)

	sess, err := f.auth.Authenticate(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.NoError(t, f.auth.Logout(ctx, sess))

	_, err = f.auth.Authenticate(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	again, err := f.auth.Login(ctx, "cook@example.com", "password1")
	require.NoError(t, err)
	_, err = f.auth.Authenticate(ctx, again.AccessToken)
	assert.NoError(t, err, "a new login is unaffected")
}
