package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/matchday-travel/lead-service/internal/config"
	"github.com/matchday-travel/lead-service/internal/events"
)

// NotificationService turns domain events into outbound notifications.
// Delivery is stubbed: each notification is logged with the endpoint it
// would go to.
type NotificationService struct {
	cfg    config.NotificationConfig
	logger *zap.Logger
}

// NewNotificationService builds the service.
func NewNotificationService(cfg config.NotificationConfig, logger *zap.Logger) *NotificationService {
	return &NotificationService{cfg: cfg, logger: logger}
}

// Notify routes one event to its notification. Unknown or malformed
// payloads are skipped.
func (s *NotificationService) Notify(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.EventLeadCreated:
		if payload, ok := event.Payload.(events.LeadCreatedPayload); ok {
			s.sendEmail(payload.Email, "lead_created",
				zap.String("lead_id", event.LeadID),
				zap.String("event_id", payload.EventID))
		}
	case events.EventLeadStatusChanged:
		if payload, ok := event.Payload.(events.LeadStatusChangedPayload); ok {
			s.sendWebhook("lead_status_changed",
				zap.String("lead_id", event.LeadID),
				zap.String("old_status", string(payload.OldStatus)),
				zap.String("new_status", string(payload.NewStatus)))
		}
	case events.EventQuoteGenerated:
		if payload, ok := event.Payload.(events.QuoteGeneratedPayload); ok {
			s.sendWebhook("quote_generated",
				zap.String("lead_id", event.LeadID),
				zap.String("quote_id", payload.QuoteID),
				zap.Float64("final_price", payload.FinalPrice))
		}
	}
	return nil
}

func (s *NotificationService) sendEmail(to, kind string, fields ...zap.Field) {
	fields = append(fields,
		zap.String("kind", kind),
		zap.String("from", s.cfg.EmailFrom),
		zap.String("to", to))
	s.logger.Info("email notification (stub)", fields...)
}

func (s *NotificationService) sendWebhook(kind string, fields ...zap.Field) {
	if s.cfg.WebhookURL == "" {
		return
	}
	fields = append(fields,
		zap.String("kind", kind),
		zap.String("webhook_url", s.cfg.WebhookURL))
	s.logger.Info("webhook notification (stub)", fields...)
}
