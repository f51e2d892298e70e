package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passvault/internal/core/auth"
	"passvault/internal/domain"
)

func newAuthService() (*AuthService, *fakeUserRepo) {
	users := &fakeUserRepo{}
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "passvault", TTL: time.Hour}
	return NewAuthService(users, jwter), users
}

func TestRegisterFirstUserIsAdmin(t *testing.T) {
	s, _ := newAuthService()

	first, err := s.Register("a@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, first.Role)

	second, err := s.Register("b@x.com", "pw2")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, second.Role)

	third, err := s.Register("c@x.com", "pw3")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, third.Role)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	s, _ := newAuthService()

	u, err := s.Register("  A@X.Com ", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)

	_, err = s.Register("a@x.com", "pw2")
	assert.ErrorIs(t, err, domain.ErrDuplicateUser)
	_, err = s.Register("A@X.COM", "pw2")
	assert.ErrorIs(t, err, domain.ErrDuplicateUser)
}

func TestRegisterValidation(t *testing.T) {
	s, _ := newAuthService()

	_, err := s.Register("", "pw")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = s.Register("a@x.com", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = s.Register("not-an-email", "pw")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRegisterNeverStoresPlaintext(t *testing.T) {
	s, users := newAuthService()

	_, err := s.Register("a@x.com", "pw1")
	require.NoError(t, err)

	stored, err := users.FindByEmail("a@x.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotContains(t, stored.PasswordHash, "pw1")
}

func TestLoginIssuesTokenWithClaims(t *testing.T) {
	s, _ := newAuthService()
	registered, err := s.Register("b@x.com", "pw2")
	require.NoError(t, err)

	token, u, err := s.Login("b@x.com", "pw2")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)

	claims, err := s.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UID)
	assert.Equal(t, "b@x.com", claims.Email)
	assert.Equal(t, domain.RoleUser, claims.Role)
}

func TestLoginFailureIsUndifferentiated(t *testing.T) {
	s, _ := newAuthService()
	_, err := s.Register("a@x.com", "pw1")
	require.NoError(t, err)

	_, _, wrongPw := s.Login("a@x.com", "wrong")
	_, _, noUser := s.Login("ghost@x.com", "pw1")

	// Same sentinel for both: no account enumeration.
	assert.ErrorIs(t, wrongPw, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, noUser, domain.ErrInvalidCredentials)
	assert.Equal(t, wrongPw.Error(), noUser.Error())
}

func TestVerifyTokenRejectsBadTokens(t *testing.T) {
	s, _ := newAuthService()
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := s.VerifyToken(tok)
		assert.ErrorIs(t, err, domain.ErrInvalidToken, "token %q", tok)
	}
}
