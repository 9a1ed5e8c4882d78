package services

import (
	"context"
	"fmt"
	"log/slog"

	"secretsanta/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendAssignment tells a giver who they draw, using the "assignment_<locale>" template.
func (s *emailService) SendAssignment(ctx context.Context, data *domain.AssignmentEmailData) error {
	if data == nil {
		return fmt.Errorf("assignment email data is nil")
	}
	name := "assignment_" + data.Locale
	subject, htmlBody, textBody, err := s.renderer.Render(name, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", name, err)
	}
	if err := s.mailer.Send(ctx, data.GiverEmail, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send assignment email: %w", err)
	}
	s.logger.InfoContext(ctx, "assignment email sent", "to", data.GiverEmail, "locale", data.Locale)
	return nil
}
