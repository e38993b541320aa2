package services

import (
	"context"
	"fmt"
	"log/slog"

	"governanceevents/internal/domain"
)

// TemplateRegistrationConfirmation names the confirmation email templates.
const TemplateRegistrationConfirmation = "registration_confirmation"

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	if logger == nil {
		logger = slog.Default()
	}
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendRegistrationConfirmation renders the "registration_confirmation" template and sends it to data.To.
func (s *emailService) SendRegistrationConfirmation(ctx context.Context, data *domain.ConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("confirmation email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render(TemplateRegistrationConfirmation, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", TemplateRegistrationConfirmation, err)
	}
	if err := s.mailer.Send(ctx, data.To, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	s.logger.InfoContext(ctx, "registration confirmation sent", "to", data.To, "reference", data.ConfirmationRef)
	return nil
}
