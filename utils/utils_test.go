package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) *TokenManager {
	t.Helper()
	m, err := NewTokenManager("test-secret", "HS256", 30*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	return m
}

func TestTokenRoundTrip(t *testing.T) {
	m := newManager(t)

	raw, err := m.Issue(42, "cook@example.com", TokenTypeAccess)
	require.NoError(t, err)

	claims, err := m.Parse(raw, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "cook@example.com", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.InDelta(t, (30 * time.Minute).Seconds(), claims.Remaining(time.Now()).Seconds(), 5)
}

func TestParseRejectsWrongType(t *testing.T) {
	m := newManager(t)
	refresh, err := m.Issue(1, "a@example.com", TokenTypeRefresh)
	require.NoError(t, err)

	_, err = m.Parse(refresh, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err := m.Parse(refresh, TokenTypeRefresh)
	require.NoError(t, err)
	assert.InDelta(t, (7 * 24 * time.Hour).Seconds(), claims.Remaining(time.Now()).Seconds(), 5)
}

func TestParseRejectsExpiredAndForeignTokens(t *testing.T) {
	m := newManager(t)
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, err := m.Issue(1, "a@example.com", TokenTypeAccess)
	require.NoError(t, err)
	m.now = time.Now

	_, err = m.Parse(expired, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, err := NewTokenManager("other-secret", "HS256", time.Minute, time.Minute)
	require.NoError(t, err)
	foreign, err := other.Issue(1, "a@example.com", TokenTypeAccess)
	require.NoError(t, err)
	_, err = m.Parse(foreign, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("not.a.jwt", TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenManagerValidation(t *testing.T) {
	_, err := NewTokenManager("", "HS256", time.Minute, time.Minute)
	assert.Error(t, err)
	_, err = NewTokenManager("s", "RS256", time.Minute, time.Minute)
	assert.Error(t, err)
	_, err = NewTokenManager("s", "HS512", time.Minute, time.Minute)
	assert.NoError(t, err)
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("Bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", tok)

	tok, ok = BearerToken("bearer xyz")
	assert.True(t, ok)
	assert.Equal(t, "xyz", tok)

	for _, h := range []string{"", "Bearer ", "Basic abc", "Token"} {
		_, ok := BearerToken(h)
		assert.False(t, ok, h)
	}
}

func TestPasswordHashing(t *testing.T) {
	UseMinPasswordCost()
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2"))
	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestNewTokenIDIsUnique(t *testing.T) {
	assert.NotEqual(t, NewTokenID(), NewTokenID())
	assert.Len(t, NewTokenID(), 36)
}
