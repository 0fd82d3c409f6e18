package notifier

//go:generate go run go.uber.org/mock/mockgen -source=./notifier.go -destination=./mocks/notifier_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/ComfortN/restaurent-cms/config"
	"github.com/ComfortN/restaurent-cms/infras/kafka"

	"github.com/rs/zerolog/log"
)

// EmailPayload is the event body published for outbound emails. A
// downstream consumer renders the named template with the data map.
type EmailPayload struct {
	To       string         `json:"to"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}

// PushPayload is the event body published for push notifications.
type PushPayload struct {
	UserID string `json:"user_id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Notifier delivers reservation notifications to guests and staff.
// Delivery is asynchronous; callers treat failures as non-fatal.
type Notifier interface {
	SendEmail(ctx context.Context, to, template string, data map[string]any) error
	SendPush(ctx context.Context, userID, title, body string) error
}

type notifierImpl struct {
	config *config.Config
	client kafka.Client
}

func New(config *config.Config, client kafka.Client) Notifier {
	return &notifierImpl{
		config: config,
		client: client,
	}
}

func (n *notifierImpl) SendEmail(ctx context.Context, to, template string, data map[string]any) error {
	message := kafka.Message{
		Key: to,
		Value: EmailPayload{
			To:       to,
			Template: template,
			Data:     data,
		},
	}

	err := n.client.SendMessages(ctx, n.config.Kafka.Topics.EmailNotifications, message)
	if err != nil {
		log.Error().Err(err).Str("to", to).Str("template", template).Msg("Failed to publish email notification.")

		return fmt.Errorf("failed to publish email notification: %w", err)
	}

	return nil
}

func (n *notifierImpl) SendPush(ctx context.Context, userID, title, body string) error {
	message := kafka.Message{
		Key: userID,
		Value: PushPayload{
			UserID: userID,
			Title:  title,
			Body:   body,
		},
	}

	err := n.client.SendMessages(ctx, n.config.Kafka.Topics.PushNotifications, message)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("Failed to publish push notification.")

		return fmt.Errorf("failed to publish push notification: %w", err)
	}

	return nil
}
