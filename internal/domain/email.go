package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// ConfirmationEmailData holds data for the registration confirmation email.
type ConfirmationEmailData struct {
	To              string `json:"to"`
	UserName        string `json:"user_name"`
	EventTitle      string `json:"event_title"`
	EventDate       string `json:"event_date"`
	EventType       string `json:"event_type"`
	MeetingDetails  string `json:"meeting_details"`
	ConfirmationRef string `json:"confirmation_ref"`
}

// NewConfirmationEmailData fills confirmation data for reg at ev with the given type label
// ("Free" or "Paid (KES 5000)").
func NewConfirmationEmailData(reg *Registration, ev *Event, typeLabel string) *ConfirmationEmailData {
	return &ConfirmationEmailData{
		To:              reg.Email,
		UserName:        reg.FullName,
		EventTitle:      ev.Title,
		EventDate:       ev.FormattedDate(),
		EventType:       typeLabel,
		MeetingDetails:  ev.MeetingDetails(),
		ConfirmationRef: reg.ConfirmationRef,
	}
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendRegistrationConfirmation(ctx context.Context, data *ConfirmationEmailData) error
}
