package handlers

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchday-travel/lead-service/internal/domain"
	"github.com/matchday-travel/lead-service/internal/service"
	apperrors "github.com/matchday-travel/lead-service/pkg/util"
)

type stubLeadService struct {
	lastList *service.LeadListInput
}

func (s *stubLeadService) CreateLead(context.Context, service.CreateLeadInput) (*domain.Lead, error) {
	return &domain.Lead{}, nil
}

func (s *stubLeadService) ListLeads(_ context.Context, input service.LeadListInput) (*service.LeadPage, error) {
	s.lastList = &input
	return &service.LeadPage{Page: input.Page, PageSize: input.PageSize}, nil
}

func (s *stubLeadService) TransitionStatus(context.Context, string, domain.LeadStatus) (*domain.Lead, error) {
	return &domain.Lead{}, nil
}

func newLeadsTestApp(stub *stubLeadService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"success": false,
				"error":   fiber.Map{"code": domainErr.Code},
			})
		},
	})
	handler := NewLeadsHandler(stub)
	app.Get("/api/leads", handler.ListLeads)
	return app
}

func TestListLeadsRejectsOversizedPageSize(t *testing.T) {
	stub := &stubLeadService{}
	app := newLeadsTestApp(stub)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/leads?page_size=5000", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Nil(t, stub.lastList)
}

func TestListLeadsRejectsNonPositivePageSize(t *testing.T) {
	stub := &stubLeadService{}
	app := newLeadsTestApp(stub)

	for _, raw := range []string{"0", "-5", "abc"} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/leads?page_size="+raw, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "page_size=%s", raw)
	}
	assert.Nil(t, stub.lastList)
}

func TestListLeadsAcceptsBoundaryPageSize(t *testing.T) {
	stub := &stubLeadService{}
	app := newLeadsTestApp(stub)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet,
		fmt.Sprintf("/api/leads?page_size=%d", service.MaxPageSize), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, stub.lastList)
	assert.Equal(t, service.MaxPageSize, stub.lastList.PageSize)
}

func TestListLeadsDefaultsPageSize(t *testing.T) {
	stub := &stubLeadService{}
	app := newLeadsTestApp(stub)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/leads", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, stub.lastList)
	assert.Equal(t, 10, stub.lastList.PageSize)
}
