package service

import (
	"context"
	"crypto/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passvault/internal/core/auth"
	"passvault/internal/core/crypto"
	"passvault/internal/domain"
)

func newVaultService(t *testing.T) (*VaultService, *fakeCredRepo, *crypto.Engine) {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	engine, err := crypto.New(key)
	require.NoError(t, err)

	creds := &fakeCredRepo{}
	return NewVaultService(creds, engine, nil, nil), creds, engine
}

func asUser(uid string) *auth.Claims  { return &auth.Claims{UID: uid, Role: domain.RoleUser} }
func asAdmin(uid string) *auth.Claims { return &auth.Claims{UID: uid, Role: domain.RoleAdmin} }

func TestAddEncryptsAtRest(t *testing.T) {
	s, creds, engine := newVaultService(t)

	out, err := s.Add(context.Background(), "u1", "https://site.com", "bob", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "secret1", out.Password, "plaintext echoed to the caller")

	stored, err := creds.FindByID(out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret1", stored.Secret)
	assert.NotContains(t, stored.Secret, "secret1")

	plain, err := engine.Decrypt(stored.Secret)
	require.NoError(t, err)
	assert.Equal(t, "secret1", plain)
}

func TestAddValidatesWebsite(t *testing.T) {
	s, _, _ := newVaultService(t)
	ctx := context.Background()

	_, err := s.Add(ctx, "u1", "example.com", "bob", "secret1")
	assert.ErrorIs(t, err, domain.ErrValidation, "bare domain rejected")

	_, err = s.Add(ctx, "u1", "ftp://example.com", "bob", "secret1")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = s.Add(ctx, "u1", "https://example.com", "bob", "secret1")
	assert.NoError(t, err)
	_, err = s.Add(ctx, "u1", "http://example.com", "bob", "secret1")
	assert.NoError(t, err)
}

func TestAddRequiresAllFields(t *testing.T) {
	s, _, _ := newVaultService(t)
	ctx := context.Background()
	for _, tc := range [][3]string{
		{"", "bob", "secret1"},
		{"https://site.com", "", "secret1"},
		{"https://site.com", "bob", ""},
	} {
		_, err := s.Add(ctx, "u1", tc[0], tc[1], tc[2])
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestListIsScopedByRole(t *testing.T) {
	s, _, _ := newVaultService(t)
	ctx := context.Background()

	_, err := s.Add(ctx, "u1", "https://one.com", "alice", "s1")
	require.NoError(t, err)
	_, err = s.Add(ctx, "u2", "https://two.com", "bob", "s2")
	require.NoError(t, err)

	own, err := s.List(ctx, asUser("u1"))
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "u1", own[0].OwnerID)
	assert.Equal(t, "s1", own[0].Password)

	all, err := s.List(ctx, asAdmin("a1"))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListSkipsCorruptedRecords(t *testing.T) {
	s, creds, _ := newVaultService(t)
	ctx := context.Background()

	_, err := s.Add(ctx, "u1", "https://good.com", "alice", "s1")
	require.NoError(t, err)
	require.NoError(t, creds.Create(&domain.Credential{
		ID: "corrupt", OwnerID: "u1", Website: "https://bad.com", Username: "x", Secret: "not-an-envelope",
	}))

	out, err := s.List(ctx, asUser("u1"))
	require.NoError(t, err, "one bad record must not fail the view")
	require.Len(t, out, 1)
	assert.Equal(t, "https://good.com", out[0].Website)
}

func TestUpdatePartialFields(t *testing.T) {
	s, creds, engine := newVaultService(t)
	ctx := context.Background()

	added, err := s.Add(ctx, "u1", "https://site.com", "bob", "old-secret")
	require.NoError(t, err)

	out, err := s.Update(ctx, asUser("u1"), added.ID, UpdateFields{Username: "robert"})
	require.NoError(t, err)
	assert.Equal(t, "robert", out.Username)
	assert.Equal(t, "https://site.com", out.Website)
	assert.Equal(t, "old-secret", out.Password, "untouched secret still decrypts")

	out, err = s.Update(ctx, asUser("u1"), added.ID, UpdateFields{Password: "new-secret"})
	require.NoError(t, err)
	assert.Equal(t, "new-secret", out.Password)

	stored, err := creds.FindByID(added.ID)
	require.NoError(t, err)
	plain, err := engine.Decrypt(stored.Secret)
	require.NoError(t, err)
	assert.Equal(t, "new-secret", plain, "supplied password re-encrypted")

	_, err = s.Update(ctx, asUser("u1"), added.ID, UpdateFields{Website: "no-scheme.com"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateOwnershipScope(t *testing.T) {
	s, _, _ := newVaultService(t)
	ctx := context.Background()

	added, err := s.Add(ctx, "u1", "https://site.com", "bob", "s1")
	require.NoError(t, err)

	// Not-owned and nonexistent are the same error: not-found, not forbidden.
	_, errForeign := s.Update(ctx, asUser("u2"), added.ID, UpdateFields{Username: "eve"})
	_, errMissing := s.Update(ctx, asUser("u2"), "no-such-id", UpdateFields{Username: "eve"})
	assert.ErrorIs(t, errForeign, domain.ErrNotFound)
	assert.ErrorIs(t, errMissing, domain.ErrNotFound)
	assert.NotErrorIs(t, errForeign, domain.ErrForbidden)

	out, err := s.Update(ctx, asAdmin("a1"), added.ID, UpdateFields{Username: "eve"})
	require.NoError(t, err, "admin updates any record")
	assert.Equal(t, "eve", out.Username)
}

func TestDeleteOwnershipScope(t *testing.T) {
	s, creds, _ := newVaultService(t)
	ctx := context.Background()

	added, err := s.Add(ctx, "u1", "https://site.com", "bob", "s1")
	require.NoError(t, err)

	assert.ErrorIs(t, s.Delete(ctx, asUser("u2"), added.ID), domain.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, asUser("u1"), "no-such-id"), domain.ErrNotFound)

	require.NoError(t, s.Delete(ctx, asUser("u1"), added.ID))
	stored, err := creds.FindByID(added.ID)
	require.NoError(t, err)
	assert.Nil(t, stored, "hard delete, no soft-delete")
}

func TestGeneratePassword(t *testing.T) {
	s, _, _ := newVaultService(t)

	pw, err := s.GeneratePassword(0)
	require.NoError(t, err)
	assert.Len(t, pw, 16, "default length")

	pw, err = s.GeneratePassword(32)
	require.NoError(t, err)
	assert.Len(t, pw, 32)
	for _, r := range pw {
		assert.True(t, strings.ContainsRune(genCharset, r), "char %q outside charset", r)
	}

	pw, err = s.GeneratePassword(10_000)
	require.NoError(t, err)
	assert.Len(t, pw, genMaxLength, "length clamped")

	a, err := s.GeneratePassword(24)
	require.NoError(t, err)
	b, err := s.GeneratePassword(24)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCheckStrengthBands(t *testing.T) {
	ctxCases := []struct {
		score    int
		strength string
		defaults string
	}{
		{0, "Weak", "Use uppercase, lowercase, numbers, symbols."},
		{2, "Weak", "Use uppercase, lowercase, numbers, symbols."},
		{3, "Medium", "Consider adding symbols."},
		{4, "Strong", "Strong password!"},
	}
	for _, tc := range ctxCases {
		s, _, _ := newVaultService(t)
		s.estimator = fakeEstimator{est: StrengthEstimate{Score: tc.score}}

		out, err := s.CheckStrength("whatever")
		require.NoError(t, err)
		assert.Equal(t, tc.score, out.Score)
		assert.Equal(t, tc.strength, out.Strength)
		require.NotEmpty(t, out.Feedback, "feedback is never empty")
		assert.Equal(t, tc.defaults, out.Feedback[0])
	}
}

func TestCheckStrengthKeepsEstimatorFeedback(t *testing.T) {
	s, _, _ := newVaultService(t)
	s.estimator = fakeEstimator{est: StrengthEstimate{Score: 1, Suggestions: []string{"Add another word or two."}}}

	out, err := s.CheckStrength("abc")
	require.NoError(t, err)
	assert.Equal(t, []string{"Add another word or two."}, out.Feedback)
}

func TestCheckStrengthEmptyPassword(t *testing.T) {
	s, _, _ := newVaultService(t)
	_, err := s.CheckStrength("")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
