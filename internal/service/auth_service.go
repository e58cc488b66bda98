package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/matchday-travel/lead-service/internal/auth"
	"github.com/matchday-travel/lead-service/internal/domain"
	"github.com/matchday-travel/lead-service/internal/repository"
	apperrors "github.com/matchday-travel/lead-service/pkg/util"
)

// LoginResult holds the issued session token.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Staff     *domain.StaffMember
}

// AuthService authenticates staff members.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type authService struct {
	staff  repository.StaffRepository
	tokens *auth.TokenManager
}

// NewAuthService wires the auth service.
func NewAuthService(staff repository.StaffRepository, tokens *auth.TokenManager) AuthService {
	return &authService{staff: staff, tokens: tokens}
}

// Login verifies credentials and issues a JWT. Unknown emails and wrong
// passwords report the same error so the response does not reveal which
// accounts exist.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	staff, err := s.staff.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(staff.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if !staff.Active {
		return nil, apperrors.NewForbidden("staff account disabled")
	}

	token, expiresAt, err := s.tokens.GenerateToken(staff.ID, staff.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Staff: staff}, nil
}
