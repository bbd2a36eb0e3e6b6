package notifications

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/pet-adoption-api/internal/clients/smtp"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
)

type captureSender struct {
	messages []smtp.Message
}

func (c *captureSender) Send(_ context.Context, m smtp.Message) error {
	c.messages = append(c.messages, m)
	return nil
}

var invitation = ports.Invitation{Name: "Maria <b>", Email: "maria@x.com", ClientID: 4, SolicitationID: "0b1c"}

func TestRenderInvitation_EscapesAndLinks(t *testing.T) {
	htmlBody, textBody, err := RenderInvitation("http://localhost:5174/adocoes/documentos/", invitation)

	require.NoError(t, err)
	assert.Contains(t, htmlBody, `href="http://localhost:5174/adocoes/documentos/0b1c"`)
	assert.Contains(t, htmlBody, "Caro(a) Maria &lt;b&gt;,")
	assert.Contains(t, textBody, "http://localhost:5174/adocoes/documentos/0b1c")
}

func TestSMTPMailer_SendsInvitation(t *testing.T) {
	sender := &captureSender{}

	err := NewSMTPMailer(sender, "https://adote.dev/documentos").SendDocumentsInvitation(context.Background(), invitation)

	require.NoError(t, err)
	require.Len(t, sender.messages, 1)
	msg := sender.messages[0]
	assert.Equal(t, "maria@x.com", msg.ToAddress)
	assert.Equal(t, InvitationSubject, msg.Subject)
	assert.Contains(t, msg.HTMLBody, "https://adote.dev/documentos/0b1c")
}

func TestLogMailer_LogsLink(t *testing.T) {
	var buf bytes.Buffer
	mailer := NewLogMailer(slog.New(slog.NewJSONHandler(&buf, nil)), "https://adote.dev/documentos")

	require.NoError(t, mailer.SendDocumentsInvitation(context.Background(), invitation))
	assert.Contains(t, buf.String(), "https://adote.dev/documentos/0b1c")
}
