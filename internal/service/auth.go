// Package service contains the vault's business logic: registration and
// login, credential CRUD over the envelope-encryption engine, and role
// administration. Services speak in domain sentinel errors; transport maps
// them to response codes.
package service

import (
	"fmt"
	"regexp"
	"strings"

	"passvault/internal/core/auth"
	"passvault/internal/domain"
	"passvault/pkg/utils"
)

var emailRx = regexp.MustCompile(`.+@.+\..+`)

// NormalizeEmail is applied before every storage lookup and write; exactly
// one user may exist per normalized email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type AuthService struct {
	users domain.UserRepository
	jwter *auth.JWTer
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer) *AuthService {
	return &AuthService{users: users, jwter: jwter}
}

// Register creates a user with a bcrypt hash of the master password. The
// very first user ever registered becomes admin; everyone after is a user.
func (s *AuthService) Register(email, masterPassword string) (*domain.User, error) {
	email = NormalizeEmail(email)
	if email == "" || masterPassword == "" {
		return nil, fmt.Errorf("%w: email and master password are required", domain.ErrValidation)
	}
	if !emailRx.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}

	existing, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateUser
	}

	count, err := s.users.Count()
	if err != nil {
		return nil, err
	}
	role := domain.RoleUser
	if count == 0 {
		role = domain.RoleAdmin
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		PasswordHash: utils.HashPassword(masterPassword),
		Role:         role,
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and issues a signed token. Unknown email and
// wrong password return the same error so accounts cannot be enumerated.
func (s *AuthService) Login(email, masterPassword string) (string, *domain.User, error) {
	email = NormalizeEmail(email)
	if email == "" || masterPassword == "" {
		return "", nil, fmt.Errorf("%w: email and master password are required", domain.ErrValidation)
	}

	u, err := s.users.FindByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !utils.CheckPassword(masterPassword, u.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.jwter.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// VerifyToken parses and validates a bearer token.
func (s *AuthService) VerifyToken(token string) (*auth.Claims, error) {
	claims, err := s.jwter.Parse(token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
