package session_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoaKun34/Billed-app-FR-Front/internal/session"
)

func openStore(t *testing.T) *session.Store {
	t.Helper()

	s, err := session.Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func signToken(t *testing.T, exp time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "a@a",
		"exp":   exp.Unix(),
	})

	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return signed
}

func TestStore_UserRoundTrip(t *testing.T) {
	s := openStore(t)

	user, err := s.User()
	require.NoError(t, err)
	assert.Nil(t, user)

	require.NoError(t, s.SetUser(&session.User{Type: session.TypeEmployee, Email: "e@e"}))

	user, err = s.User()
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, session.TypeEmployee, user.Type)
	assert.Equal(t, "e@e", user.Email)
	assert.True(t, user.IsEmployee())
}

func TestUser_IsEmployee(t *testing.T) {
	assert.False(t, (*session.User)(nil).IsEmployee())
	assert.False(t, (&session.User{Type: session.TypeAdmin}).IsEmployee())
	assert.True(t, (&session.User{Type: session.TypeEmployee}).IsEmployee())
}

func TestStore_Valid(t *testing.T) {
	t.Run("NoUser", func(t *testing.T) {
		s := openStore(t)
		assert.False(t, s.Valid())
	})

	t.Run("UserWithoutToken", func(t *testing.T) {
		s := openStore(t)
		require.NoError(t, s.SetUser(&session.User{Type: session.TypeEmployee, Email: "e@e"}))
		assert.True(t, s.Valid())
	})

	t.Run("UserWithLiveToken", func(t *testing.T) {
		s := openStore(t)
		require.NoError(t, s.SetUser(&session.User{Type: session.TypeEmployee, Email: "e@e"}))
		require.NoError(t, s.SetToken(signToken(t, time.Now().Add(time.Hour))))
		assert.True(t, s.Valid())
	})

	t.Run("UserWithExpiredToken", func(t *testing.T) {
		s := openStore(t)
		require.NoError(t, s.SetUser(&session.User{Type: session.TypeEmployee, Email: "e@e"}))
		require.NoError(t, s.SetToken(signToken(t, time.Now().Add(-time.Hour))))
		assert.False(t, s.Valid())
	})

	t.Run("UserWithGarbageToken", func(t *testing.T) {
		s := openStore(t)
		require.NoError(t, s.SetUser(&session.User{Type: session.TypeEmployee, Email: "e@e"}))
		require.NoError(t, s.SetToken("not-a-jwt"))
		assert.False(t, s.Valid())
	})
}

func TestStore_LastHash(t *testing.T) {
	s := openStore(t)

	assert.Empty(t, s.LastHash())
	require.NoError(t, s.SetLastHash("#employee/bills"))
	assert.Equal(t, "#employee/bills", s.LastHash())
}
