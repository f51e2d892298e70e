package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"go.uber.org/zap"

	"passvault/internal/core/auth"
	"passvault/internal/core/cache"
	"passvault/internal/core/crypto"
	"passvault/internal/domain"
	"passvault/internal/policy"
	"passvault/pkg/utils"
)

// Full URL with scheme; bare domains are rejected.
var websiteRx = regexp.MustCompile(`^https?://.+`)

const genCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*()_+[]{}<>?"

const (
	genDefaultLength = 16
	genMaxLength     = 128
)

// PlainCredential is a stored credential with its secret decrypted for the
// authorized caller. It exists only in responses, never at rest.
type PlainCredential struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Website   string    `json:"website"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateFields carries a partial update; empty fields stay unchanged.
type UpdateFields struct {
	Website  string
	Username string
	Password string
}

type VaultService struct {
	creds     domain.CredentialRepository
	engine    *crypto.Engine
	estimator StrengthEstimator
	cache     cache.Store // optional; caches encrypted rows only
	cacheTTL  time.Duration
	log       *zap.Logger
}

func NewVaultService(creds domain.CredentialRepository, engine *crypto.Engine, estimator StrengthEstimator, log *zap.Logger) *VaultService {
	if estimator == nil {
		estimator = ZxcvbnEstimator{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &VaultService{creds: creds, engine: engine, estimator: estimator, log: log}
}

// WithCache enables the redis read-through cache for listings. Only the
// encrypted storage form is cached; plaintext never reaches redis.
func (s *VaultService) WithCache(c cache.Store, ttl time.Duration) *VaultService {
	s.cache = c
	s.cacheTTL = ttl
	return s
}

// Add validates, encrypts and persists a credential for ownerID. The
// plaintext is echoed back to the immediate caller only.
func (s *VaultService) Add(ctx context.Context, ownerID, website, username, password string) (*PlainCredential, error) {
	if website == "" || username == "" || password == "" {
		return nil, fmt.Errorf("%w: all fields are required", domain.ErrValidation)
	}
	if !websiteRx.MatchString(website) {
		return nil, fmt.Errorf("%w: full URL required (https://example.com)", domain.ErrValidation)
	}

	secret, err := s.engine.Encrypt(password)
	if err != nil {
		return nil, err
	}
	c := &domain.Credential{
		ID:       utils.NewID(),
		OwnerID:  ownerID,
		Website:  website,
		Username: username,
		Secret:   secret,
	}
	if err := s.creds.Create(c); err != nil {
		return nil, err
	}
	s.invalidate(ctx, ownerID)

	return s.toPlain(c, password), nil
}

// List returns the caller's credentials, or every credential when the caller
// is admin. Records that fail decryption are dropped from the result rather
// than failing the whole view; each drop is logged for operators.
func (s *VaultService) List(ctx context.Context, claims *auth.Claims) ([]PlainCredential, error) {
	rows, err := s.fetch(ctx, claims)
	if err != nil {
		return nil, err
	}

	out := make([]PlainCredential, 0, len(rows))
	for i := range rows {
		c := &rows[i]
		password, err := s.engine.Decrypt(c.Secret)
		if err != nil {
			s.log.Warn("skipping undecryptable credential",
				zap.String("credential_id", c.ID),
				zap.String("owner_id", c.OwnerID),
			)
			continue
		}
		out = append(out, *s.toPlain(c, password))
	}
	return out, nil
}

// Update changes only the supplied fields; a supplied password is
// re-encrypted. The target is resolved under the caller's scope: a record
// that exists but is not theirs reports not-found, never forbidden.
func (s *VaultService) Update(ctx context.Context, claims *auth.Claims, id string, fields UpdateFields) (*PlainCredential, error) {
	c, err := s.resolve(claims, id)
	if err != nil {
		return nil, err
	}

	if fields.Website != "" {
		if !websiteRx.MatchString(fields.Website) {
			return nil, fmt.Errorf("%w: full URL required (https://example.com)", domain.ErrValidation)
		}
		c.Website = fields.Website
	}
	if fields.Username != "" {
		c.Username = fields.Username
	}
	if fields.Password != "" {
		secret, err := s.engine.Encrypt(fields.Password)
		if err != nil {
			return nil, err
		}
		c.Secret = secret
	}
	c.UpdatedAt = time.Now()

	if err := s.creds.Update(c); err != nil {
		return nil, err
	}
	s.invalidate(ctx, c.OwnerID)

	password := fields.Password
	if password == "" {
		if password, err = s.engine.Decrypt(c.Secret); err != nil {
			return nil, err
		}
	}
	return s.toPlain(c, password), nil
}

// Delete removes a credential permanently, under the same scoped resolution
// as Update.
func (s *VaultService) Delete(ctx context.Context, claims *auth.Claims, id string) error {
	c, err := s.resolve(claims, id)
	if err != nil {
		return err
	}
	ok, err := s.creds.Delete(c.ID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	s.invalidate(ctx, c.OwnerID)
	return nil
}

// GeneratePassword draws length characters uniformly from a fixed charset
// using crypto/rand. Independent of the vault's key material.
func (s *VaultService) GeneratePassword(length int) (string, error) {
	if length <= 0 {
		length = genDefaultLength
	}
	if length > genMaxLength {
		length = genMaxLength
	}
	out := make([]byte, length)
	maxIdx := big.NewInt(int64(len(genCharset)))
	for i := range out {
		n, err := rand.Int(rand.Reader, maxIdx)
		if err != nil {
			return "", err
		}
		out[i] = genCharset[n.Int64()]
	}
	return string(out), nil
}

// CheckStrength asks the estimator for a score and maps it to a band.
func (s *VaultService) CheckStrength(password string) (*StrengthResult, error) {
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	result := bandStrength(s.estimator.Estimate(password))
	return &result, nil
}

// resolve fetches by id and applies the access policy in one step, so
// missing and not-owned are indistinguishable to the caller.
func (s *VaultService) resolve(claims *auth.Claims, id string) (*domain.Credential, error) {
	c, err := s.creds.FindByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil || !policy.CanAccess(claims, c.OwnerID) {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (s *VaultService) fetch(ctx context.Context, claims *auth.Claims) ([]domain.Credential, error) {
	all := policy.CanAccessAll(claims)
	load := func(context.Context) ([]domain.Credential, error) {
		if all {
			return s.creds.ListAll()
		}
		return s.creds.ListByOwner(claims.UID)
	}
	if s.cache == nil {
		return load(ctx)
	}
	key := listKeyOwner(claims.UID)
	if all {
		key = listKeyAll
	}
	rows, err := cache.GetOrLoadJSON[cachedCredential](s.cache, ctx, key, s.cacheTTL,
		func(ctx context.Context) ([]cachedCredential, error) {
			cs, e := load(ctx)
			if e != nil {
				return nil, e
			}
			out := make([]cachedCredential, len(cs))
			for i := range cs {
				out[i] = toCached(&cs[i])
			}
			return out, nil
		})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Credential, len(rows))
	for i := range rows {
		out[i] = rows[i].credential()
	}
	return out, nil
}

// cachedCredential is the cache storage form of a credential. Credential's
// json tags shape HTTP responses and hide the envelope there; the cache needs
// the envelope, so it gets its own serialization.
type cachedCredential struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Website   string    `json:"website"`
	Username  string    `json:"username"`
	Secret    string    `json:"secret"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCached(c *domain.Credential) cachedCredential {
	return cachedCredential{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		Website:   c.Website,
		Username:  c.Username,
		Secret:    c.Secret,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (c cachedCredential) credential() domain.Credential {
	return domain.Credential{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		Website:   c.Website,
		Username:  c.Username,
		Secret:    c.Secret,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

const listKeyAll = "vault:list:all"

func listKeyOwner(ownerID string) string { return "vault:list:owner:" + ownerID }

// invalidate drops every cached scope a write could have touched.
func (s *VaultService) invalidate(ctx context.Context, ownerID string) {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(ctx, listKeyOwner(ownerID), listKeyAll)
}

func (s *VaultService) toPlain(c *domain.Credential, password string) *PlainCredential {
	return &PlainCredential{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		Website:   c.Website,
		Username:  c.Username,
		Password:  password,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
