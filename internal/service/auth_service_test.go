package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/matchday-travel/lead-service/internal/auth"
	"github.com/matchday-travel/lead-service/internal/domain"
	apperrors "github.com/matchday-travel/lead-service/pkg/util"
)

func staffWithPassword(t *testing.T, password string, active bool) *domain.StaffMember {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	require.NoError(t, err)
	return &domain.StaffMember{
		ID:           "staff-1",
		Name:         "Grace",
		Email:        "grace@example.com",
		PasswordHash: hash,
		Role:         domain.StaffRoleAgent,
		Active:       active,
	}
}

func TestLoginIssuesToken(t *testing.T) {
	staff := new(mockStaffRepo)
	staff.On("GetByEmail", mock.Anything, "grace@example.com").
		Return(staffWithPassword(t, "sup3r-secret", true), nil)

	svc := NewAuthService(staff, auth.NewTokenManager("test-secret", 30))
	result, err := svc.Login(context.Background(), "grace@example.com", "sup3r-secret")

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "staff-1", result.Staff.ID)

	claims, err := auth.NewTokenManager("test-secret", 30).ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "staff-1", claims.StaffID)
	assert.Equal(t, domain.StaffRoleAgent, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	staff := new(mockStaffRepo)
	staff.On("GetByEmail", mock.Anything, "grace@example.com").
		Return(staffWithPassword(t, "sup3r-secret", true), nil)

	svc := NewAuthService(staff, auth.NewTokenManager("test-secret", 30))
	_, err := svc.Login(context.Background(), "grace@example.com", "wrong-password")

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	staff := new(mockStaffRepo)
	staff.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, pgx.ErrNoRows)

	svc := NewAuthService(staff, auth.NewTokenManager("test-secret", 30))
	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever-pass")

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
}

func TestLoginDisabledAccount(t *testing.T) {
	staff := new(mockStaffRepo)
	staff.On("GetByEmail", mock.Anything, "grace@example.com").
		Return(staffWithPassword(t, "sup3r-secret", false), nil)

	svc := NewAuthService(staff, auth.NewTokenManager("test-secret", 30))
	_, err := svc.Login(context.Background(), "grace@example.com", "sup3r-secret")

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}
