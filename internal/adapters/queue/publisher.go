package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"governanceevents/internal/domain"
)

// MessagePublisher is the publishing half of Client.
type MessagePublisher interface {
	Publish(ctx context.Context, body []byte) error
}

type publisher struct {
	pub MessagePublisher
}

// NewEmailPublisher returns an EmailService that enqueues confirmations instead of sending them.
// A Worker on the same queue performs the send.
func NewEmailPublisher(pub MessagePublisher) domain.EmailService {
	return &publisher{pub: pub}
}

func (p *publisher) SendRegistrationConfirmation(ctx context.Context, data *domain.ConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("confirmation email data is nil")
	}
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode confirmation message: %w", err)
	}
	if err := p.pub.Publish(ctx, body); err != nil {
		return fmt.Errorf("enqueue confirmation email: %w", err)
	}
	return nil
}
