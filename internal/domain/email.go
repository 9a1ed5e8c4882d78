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

// AssignmentEmailData holds data for the assignment notification email.
type AssignmentEmailData struct {
	GiverName    string
	GiverEmail   string
	ReceiverName string
	GroupName    string
	Locale       string
	ViewURL      string // empty when no view token is available
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendAssignment(ctx context.Context, data *AssignmentEmailData) error
}
