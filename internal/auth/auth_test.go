package auth

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"menucup/internal/logging"
	"menucup/internal/model"
	"menucup/internal/repository/mocks"
)

const secret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, sub, aud string, exp time.Time) string {
	t.Helper()
	claims := Claims{
		Email: sub + "@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	if aud != "" {
		claims.Audience = jwt.ClaimStrings{aud}
	}
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestVerifier_Verify(t *testing.T) {
	v, err := NewVerifier(secret, "authenticated")
	require.NoError(t, err)
	future := time.Now().Add(time.Hour)

	t.Run("valid", func(t *testing.T) {
		c, err := v.Verify(sign(t, jwt.SigningMethodHS256, []byte(secret), "u1", "authenticated", future))
		require.NoError(t, err)
		assert.Equal(t, "u1", c.Subject)
		assert.Equal(t, "u1@example.com", c.Email)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := v.Verify("")
		assert.ErrorIs(t, err, ErrNoToken)
	})

	t.Run("expired", func(t *testing.T) {
		_, err := v.Verify(sign(t, jwt.SigningMethodHS256, []byte(secret), "u1", "authenticated", time.Now().Add(-time.Minute)))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := v.Verify(sign(t, jwt.SigningMethodHS256, []byte("other"), "u1", "authenticated", future))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong audience", func(t *testing.T) {
		_, err := v.Verify(sign(t, jwt.SigningMethodHS256, []byte(secret), "u1", "anon", future))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other algorithm", func(t *testing.T) {
		_, err := v.Verify(sign(t, jwt.SigningMethodHS512, []byte(secret), "u1", "authenticated", future))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		_, err := v.Verify(sign(t, jwt.SigningMethodHS256, []byte(secret), "", "authenticated", future))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewVerifier_RequiresSecret(t *testing.T) {
	_, err := NewVerifier("", "")
	assert.Error(t, err)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer  abc "))
	assert.Equal(t, "", BearerToken("Basic abc"))
	assert.Equal(t, "", BearerToken(""))
}

func newManager(t *testing.T) (*Manager, *mocks.MockProfileRepository) {
	t.Helper()
	v, err := NewVerifier(secret, "")
	require.NoError(t, err)
	profiles := new(mocks.MockProfileRepository)
	return NewManager(v, profiles, logging.Discard()), profiles
}

func TestManager_Authenticate(t *testing.T) {
	ctx := context.Background()
	future := time.Now().Add(time.Hour)

	t.Run("admin profile", func(t *testing.T) {
		m, profiles := newManager(t)
		profiles.On("FindByID", mock.Anything, "u1").Return(&model.Profile{ID: "u1", Role: model.RoleAdmin}, nil).Once()

		s, err := m.Authenticate(ctx, sign(t, jwt.SigningMethodHS256, []byte(secret), "u1", "", future))

		require.NoError(t, err)
		assert.True(t, s.IsAdmin())
		assert.WithinDuration(t, future, s.ExpiresAt, time.Second)
		profiles.AssertExpectations(t)
	})

	t.Run("missing profile defaults to owner", func(t *testing.T) {
		m, profiles := newManager(t)
		profiles.On("FindByID", mock.Anything, "u2").Return(nil, sql.ErrNoRows).Once()

		s, err := m.Authenticate(ctx, sign(t, jwt.SigningMethodHS256, []byte(secret), "u2", "", future))

		require.NoError(t, err)
		assert.Equal(t, model.RoleOwner, s.Role)
	})

	t.Run("role is cached until sign out", func(t *testing.T) {
		m, profiles := newManager(t)
		profiles.On("FindByID", mock.Anything, "u3").Return(&model.Profile{ID: "u3", Role: model.RoleAdmin}, nil).Twice()
		tok := sign(t, jwt.SigningMethodHS256, []byte(secret), "u3", "", future)

		var signedOut []string
		m.OnSignOut(func(id string) { signedOut = append(signedOut, id) })

		_, err := m.Authenticate(ctx, tok)
		require.NoError(t, err)
		_, err = m.Authenticate(ctx, tok)
		require.NoError(t, err)
		profiles.AssertNumberOfCalls(t, "FindByID", 1)

		m.SignOut("u3")
		assert.Equal(t, []string{"u3"}, signedOut)

		_, err = m.Authenticate(ctx, tok)
		require.NoError(t, err)
		profiles.AssertNumberOfCalls(t, "FindByID", 2)
	})

	t.Run("cache expires with the token", func(t *testing.T) {
		m, profiles := newManager(t)
		profiles.On("FindByID", mock.Anything, "u4").Return(&model.Profile{ID: "u4", Role: model.RoleOwner}, nil)
		tok := sign(t, jwt.SigningMethodHS256, []byte(secret), "u4", "", future)

		_, err := m.Authenticate(ctx, tok)
		require.NoError(t, err)

		m.now = func() time.Time { return future.Add(time.Minute) }
		_, err = m.role(ctx, "u4", future)
		require.NoError(t, err)
		profiles.AssertNumberOfCalls(t, "FindByID", 2)
	})

	t.Run("newer token extends the cached session", func(t *testing.T) {
		m, profiles := newManager(t)
		profiles.On("FindByID", mock.Anything, "u6").Return(&model.Profile{ID: "u6", Role: model.RoleOwner}, nil).Once()
		later := future.Add(time.Hour)

		_, err := m.Authenticate(ctx, sign(t, jwt.SigningMethodHS256, []byte(secret), "u6", "", future))
		require.NoError(t, err)
		_, err = m.Authenticate(ctx, sign(t, jwt.SigningMethodHS256, []byte(secret), "u6", "", later))
		require.NoError(t, err)

		m.now = func() time.Time { return future.Add(time.Minute) }
		_, err = m.role(ctx, "u6", later)
		require.NoError(t, err)
		profiles.AssertNumberOfCalls(t, "FindByID", 1)
	})

	t.Run("expired sessions end when another user authenticates", func(t *testing.T) {
		m, profiles := newManager(t)
		profiles.On("FindByID", mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows)

		var ended []string
		m.OnSignOut(func(id string) { ended = append(ended, id) })

		_, err := m.Authenticate(ctx, sign(t, jwt.SigningMethodHS256, []byte(secret), "u7", "", future))
		require.NoError(t, err)
		_, err = m.Authenticate(ctx, sign(t, jwt.SigningMethodHS256, []byte(secret), "u8", "", future.Add(2*time.Hour)))
		require.NoError(t, err)
		assert.Empty(t, ended)

		m.now = func() time.Time { return future.Add(2 * sweepInterval) }
		_, err = m.Authenticate(ctx, sign(t, jwt.SigningMethodHS256, []byte(secret), "u9", "", future.Add(3*time.Hour)))
		require.NoError(t, err)

		assert.Equal(t, []string{"u7"}, ended)
		m.mu.Lock()
		_, kept := m.roles["u8"]
		_, dropped := m.roles["u7"]
		m.mu.Unlock()
		assert.True(t, kept)
		assert.False(t, dropped)
	})

	t.Run("lookup failure", func(t *testing.T) {
		m, profiles := newManager(t)
		profiles.On("FindByID", mock.Anything, "u5").Return(nil, errors.New("db down"))

		s, err := m.Authenticate(ctx, sign(t, jwt.SigningMethodHS256, []byte(secret), "u5", "", future))

		assert.Nil(t, s)
		assert.ErrorContains(t, err, "resolve role")
	})

	t.Run("invalid token skips lookup", func(t *testing.T) {
		m, profiles := newManager(t)

		_, err := m.Authenticate(ctx, "garbage")

		assert.ErrorIs(t, err, ErrInvalidToken)
		profiles.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestSession_CanEdit(t *testing.T) {
	r := &model.Restaurant{ID: "r1", OwnerID: "u1"}

	assert.True(t, (&Session{UserID: "u1", Role: model.RoleOwner}).CanEdit(r))
	assert.False(t, (&Session{UserID: "u2", Role: model.RoleOwner}).CanEdit(r))
	assert.True(t, (&Session{UserID: "u2", Role: model.RoleAdmin}).CanEdit(r))
	assert.False(t, (*Session)(nil).CanEdit(r))
}
