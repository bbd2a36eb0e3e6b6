package notifications

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Apurer/pet-adoption-api/internal/clients/smtp"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
)

var (
	_ ports.Mailer = (*SMTPMailer)(nil)
	_ ports.Mailer = (*LogMailer)(nil)
)

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, message smtp.Message) error
}

// SMTPMailer renders invitations and sends them through an SMTP relay.
type SMTPMailer struct {
	sender    Sender
	portalURL string
}

// NewSMTPMailer wires the relay client and the documents portal base URL.
func NewSMTPMailer(sender Sender, portalURL string) *SMTPMailer {
	return &SMTPMailer{sender: sender, portalURL: portalURL}
}

// SendDocumentsInvitation renders and sends the invitation.
func (m *SMTPMailer) SendDocumentsInvitation(ctx context.Context, invitation ports.Invitation) error {
	if m == nil || m.sender == nil {
		return errors.New("smtp mailer not configured")
	}
	htmlBody, textBody, err := RenderInvitation(m.portalURL, invitation)
	if err != nil {
		return err
	}
	return m.sender.Send(ctx, smtp.Message{
		ToName:    invitation.Name,
		ToAddress: invitation.Email,
		Subject:   InvitationSubject,
		HTMLBody:  htmlBody,
		TextBody:  textBody,
	})
}

// LogMailer only logs invitations. Used when no SMTP relay is configured.
type LogMailer struct {
	logger    *slog.Logger
	portalURL string
}

// NewLogMailer builds a mailer that writes to logger.
func NewLogMailer(logger *slog.Logger, portalURL string) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger, portalURL: portalURL}
}

// SendDocumentsInvitation logs the invitation link.
func (m *LogMailer) SendDocumentsInvitation(ctx context.Context, invitation ports.Invitation) error {
	m.logger.LogAttrs(ctx, slog.LevelInfo, "documents invitation (smtp disabled)",
		slog.String("to", invitation.Email),
		slog.Int64("client.id", invitation.ClientID),
		slog.String("link", DocumentsLink(m.portalURL, invitation.SolicitationID)))
	return nil
}
