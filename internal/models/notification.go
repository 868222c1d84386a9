package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeEmail NotificationType = "email"
)

type NotificationKind string

const (
	NotificationKindExpiryWarning NotificationKind = "cart_expiry_warning"
	NotificationKindReminder      NotificationKind = "cart_reminder"
)

type NotificationStatus string

const (
	StatusPending NotificationStatus = "pending"
	StatusSent    NotificationStatus = "sent"
	StatusFailed  NotificationStatus = "failed"
)

type Notification struct {
	ID        uuid.UUID          `json:"id"`
	Type      NotificationType   `json:"type"`
	Kind      NotificationKind   `json:"kind"`
	CartID    *uuid.UUID         `json:"cart_id,omitempty"`
	Recipient string             `json:"recipient"`
	Subject   string             `json:"subject,omitempty"`
	Content   string             `json:"content"`
	Status    NotificationStatus `json:"status"`
	Error     string             `json:"error,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	SentAt    *time.Time         `json:"sent_at,omitempty"`
}

// EmailMessage is what the mail transport sends.
type EmailMessage struct {
	To          string
	ToName      string
	Subject     string
	Content     string
	HTMLContent string
}

// ExpiryWarning carries everything the dispatcher needs to warn a customer.
type ExpiryWarning struct {
	CartID    uuid.UUID
	OwnerID   uuid.UUID
	Recipient string
	ItemCount int
	ExpiresAt time.Time
}
