package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/blog-gateway/internal/config"
	"github.com/spec-kit/blog-gateway/internal/events"
)

const webhookTimeout = 5 * time.Second

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventPostCreated, n.handlePostCreated)
}

func (n *NotificationService) handlePostCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("PostCreated", zap.String("slug", event.Slug), zap.Any("payload", event.Payload))
	return n.deliverWebhook(ctx, event)
}

// deliverWebhook posts the event as JSON to NOTIFY_WEBHOOK_URL. A blank URL disables delivery.
func (n *NotificationService) deliverWebhook(ctx context.Context, event events.Event) error {
	url := strings.TrimSpace(n.cfg.WebhookURL)
	if url == "" {
		return nil
	}

	timeout := webhookTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return fmt.Errorf("webhook %s: %w", event.Type, context.DeadlineExceeded)
	}

	status, _, errs := fiber.Post(url).
		JSON(event).
		Timeout(timeout).
		Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("webhook %s: %w", event.Type, errs[0])
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("webhook %s: unexpected status %d", event.Type, status)
	}

	n.logger.Debug("webhook delivered",
		zap.String("slug", event.Slug),
		zap.String("event_type", string(event.Type)),
		zap.Int("status", status))
	return nil
}
