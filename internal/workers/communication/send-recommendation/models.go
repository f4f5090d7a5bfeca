package sendrecommendation

import (
	"context"

	"dogmatch-workers/internal/scoring"
)

type Input struct {
	RecipientID    string                        `json:"recipientId"`
	Recommendation *scoring.RecommendationResult `json:"recommendation"`
	// Priority "high" also sends an SMS.
	Priority string `json:"priority,omitempty"`
}

type Output struct {
	NotificationID string            `json:"notificationId"`
	Status         string            `json:"status"` // "sent", "failed", "disabled"
	Channels       []string          `json:"channels"`
	FailedChannels []string          `json:"failedChannels,omitempty"`
	MessageIDs     map[string]string `json:"messageIds,omitempty"`
	SentAt         string            `json:"sentAt"` // ISO 8601
}

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

// Channels
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

const PriorityHigh = "high"

type Recipient struct {
	ID    string
	Name  string
	Email string
	Phone string
}

type RecipientStore interface {
	Recipient(ctx context.Context, id string) (*Recipient, error)
}

// Sender is satisfied by *aws.Notifier.
type Sender interface {
	SendEmail(ctx context.Context, to, subject, textBody, htmlBody string) (string, error)
	SendSMS(ctx context.Context, phone, message string) (string, error)
}
