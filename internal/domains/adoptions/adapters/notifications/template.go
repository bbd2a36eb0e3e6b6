package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
)

// InvitationSubject is the subject of the documents invitation.
const InvitationSubject = "Convite para Envio de Documentos"

var invitationTemplate = template.Must(template.New("invitation").Parse(`<!DOCTYPE html>
<html lang="pt-br">
<head>
    <meta charset="UTF-8">
    <title>{{ .Subject }}</title>
</head>
<body style="font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #e8e8e8;">
    <div style="max-width: 580px; margin: 30px auto; background: #ffffff; padding: 25px; border-radius: 8px;">
        <h1>{{ .Subject }}</h1>
        <p>Caro(a) {{ .Name }},</p>
        <p>Esperamos que esteja bem.</p>
        <p>Gostaríamos de lembrar sobre a necessidade de enviar os documentos para completar sua solicitação.</p>
        <p>Acesse o link abaixo para enviar os documentos: <a href="{{ .Link }}">Enviar Documentos</a></p>
        <p>Documentos necessários:</p>
        <ul>
            <li>Identidade (RG)</li>
            <li>Cadastro de Pessoa Física (CPF)</li>
            <li>Comprovante de Endereço</li>
            <li>Contrato de Adoção Assinado</li>
        </ul>
        <p>Por favor, faça o upload dos documentos requisitados o quanto antes.</p>
        <p>Cordialmente,</p>
    </div>
</body>
</html>
`))

type invitationView struct {
	Subject string
	Name    string
	Link    string
}

// RenderInvitation renders the HTML body and the plain text alternative.
func RenderInvitation(portalURL string, invitation ports.Invitation) (htmlBody, textBody string, err error) {
	link := DocumentsLink(portalURL, invitation.SolicitationID)
	var buf bytes.Buffer
	if err := invitationTemplate.Execute(&buf, invitationView{Subject: InvitationSubject, Name: invitation.Name, Link: link}); err != nil {
		return "", "", fmt.Errorf("render invitation: %w", err)
	}
	text := fmt.Sprintf("Caro(a) %s,\n\nEnvie os documentos da sua adoção (RG, CPF, comprovante de endereço e contrato assinado) em: %s\n",
		invitation.Name, link)
	return buf.String(), text, nil
}

// DocumentsLink points at the portal page of a solicitation.
func DocumentsLink(portalURL, solicitationID string) string {
	return strings.TrimRight(portalURL, "/") + "/" + url.PathEscape(solicitationID)
}
