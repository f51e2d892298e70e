package service

import (
	"fmt"

	"passvault/internal/core/auth"
	"passvault/internal/domain"
	"passvault/internal/policy"
)

type AdminService struct {
	users domain.UserRepository
}

func NewAdminService(users domain.UserRepository) *AdminService {
	return &AdminService{users: users}
}

// Promote grants admin to the user behind targetEmail.
func (s *AdminService) Promote(claims *auth.Claims, targetEmail string) (*domain.User, error) {
	return s.setRole(claims, targetEmail, domain.RoleAdmin)
}

// Demote returns the user behind targetEmail to the user role. Demoting a
// plain user is a visible no-op.
func (s *AdminService) Demote(claims *auth.Claims, targetEmail string) (*domain.User, error) {
	return s.setRole(claims, targetEmail, domain.RoleUser)
}

func (s *AdminService) setRole(claims *auth.Claims, targetEmail, role string) (*domain.User, error) {
	email := NormalizeEmail(targetEmail)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	target, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrNotFound
	}
	if err := policy.CanChangeRole(claims, target.ID); err != nil {
		return nil, err
	}

	if target.Role != role {
		target.Role = role
		if err := s.users.Update(target); err != nil {
			return nil, err
		}
	}
	return target, nil
}

// ListUsers backs the ops surface's user listing.
func (s *AdminService) ListUsers(offset, limit int, q string) ([]domain.User, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(offset, limit, q)
}
