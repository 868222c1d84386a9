package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-checkout/pkg/sendgrid"
	"github.com/google/uuid"
)

// NotificationDispatcher delivers customer notifications raised by the cart lifecycle.
type NotificationDispatcher interface {
	SendExpiryWarning(ctx context.Context, warning *models.ExpiryWarning) error
}

var errNoRecipient = errors.New("cart has no contact email")

type emailDispatcher struct {
	repo         repository.NotificationRepository
	emailService sendgrid.EmailService
}

func NewNotificationDispatcher(repo repository.NotificationRepository, emailService sendgrid.EmailService) NotificationDispatcher {
	return &emailDispatcher{repo: repo, emailService: emailService}
}

// SendExpiryWarning records the notification, then sends it once. Delivery
// failures are recorded on the notification and returned.
func (n *emailDispatcher) SendExpiryWarning(ctx context.Context, warning *models.ExpiryWarning) error {

	logger := middleware.LoggerFromContext(ctx)

	if warning.Recipient == "" {
		return errNoRecipient
	}

	msg := expiryWarningMessage(warning)
	cartID := warning.CartID

	notification := &models.Notification{
		ID:        uuid.New(),
		Type:      models.NotificationTypeEmail,
		Kind:      models.NotificationKindExpiryWarning,
		CartID:    &cartID,
		Recipient: warning.Recipient,
		Subject:   msg.Subject,
		Content:   msg.Content,
		Status:    models.StatusPending,
	}

	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification record: %w", err)
	}

	if err := n.emailService.Send(ctx, msg); err != nil {

		if updateErr := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusFailed, err.Error()); updateErr != nil {
			logger.Error("Failed to record notification failure", slog.String("notification_id", notification.ID.String()), slog.Any("error", updateErr))
		}

		return fmt.Errorf("failed to send email: %w", err)
	}

	if err := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusSent, ""); err != nil {
		return fmt.Errorf("notification sent successfully but failed to update notification status: %w", err)
	}

	logger.Info("Cart expiry warning sent", slog.String("cart_id", warning.CartID.String()), slog.String("notification_id", notification.ID.String()))

	return nil
}

func expiryWarningMessage(warning *models.ExpiryWarning) *models.EmailMessage {
	expiresAt := warning.ExpiresAt.UTC().Format(time.RFC1123)

	text := fmt.Sprintf("Your cart still holds %d item(s) and will expire at %s. Complete your checkout before then to keep them.",
		warning.ItemCount, expiresAt)

	return &models.EmailMessage{
		To:          warning.Recipient,
		Subject:     "Your cart is about to expire",
		Content:     text,
		HTMLContent: "<p>" + html.EscapeString(text) + "</p>",
	}
}
