package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/matchday-travel/lead-service/internal/api/dto"
	"github.com/matchday-travel/lead-service/internal/domain"
	"github.com/matchday-travel/lead-service/internal/service"
)

// EventsHandler serves the public event catalogue.
type EventsHandler struct {
	service service.EventService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(eventService service.EventService) *EventsHandler {
	return &EventsHandler{service: eventService}
}

// ListEvents GET /api/events.
func (h *EventsHandler) ListEvents(c *fiber.Ctx) error {
	events, err := h.service.ListEvents(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		items = append(items, eventResponse(&events[i]))
	}
	return respond(c, http.StatusOK, items)
}

// GetEvent GET /api/events/:id.
func (h *EventsHandler) GetEvent(c *fiber.Ctx) error {
	event, err := h.service.GetEvent(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, eventResponse(event))
}

// ListEventPackages GET /api/events/:id/packages.
func (h *EventsHandler) ListEventPackages(c *fiber.Ctx) error {
	packages, err := h.service.ListEventPackages(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.PackageResponse, 0, len(packages))
	for _, pkg := range packages {
		items = append(items, dto.PackageResponse{
			ID:        pkg.ID,
			EventID:   pkg.EventID,
			Title:     pkg.Title,
			BasePrice: pkg.BasePrice,
			CreatedAt: pkg.CreatedAt,
		})
	}
	return respond(c, http.StatusOK, items)
}

func eventResponse(event *domain.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:           event.ID,
		Name:         event.Name,
		StartDate:    event.StartDate,
		EndDate:      event.EndDate,
		PackageCount: event.PackageCount,
	}
}
