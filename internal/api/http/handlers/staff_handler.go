package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/matchday-travel/lead-service/internal/api/dto"
	"github.com/matchday-travel/lead-service/internal/service"
)

// StaffHandler manages staff authentication endpoints.
type StaffHandler struct {
	service service.AuthService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(authService service.AuthService) *StaffHandler {
	return &StaffHandler{service: authService}
}

// Login POST /auth/staff/login.
func (h *StaffHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	result, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Staff: dto.StaffResponse{
			ID:    result.Staff.ID,
			Name:  result.Staff.Name,
			Email: result.Staff.Email,
			Role:  result.Staff.Role,
		},
	})
}
