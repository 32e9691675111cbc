package services

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"strings"
	texttemplate "text/template"

	"custodia360/config"

	"github.com/resend/resend-go/v2"
)

//go:embed emailtmpl/*.html emailtmpl/*.txt
var emailFS embed.FS

// Email represents an email message
type Email struct {
	To          []string
	Subject     string
	HTMLBody    string
	TextBody    string
	Attachments []EmailAttachment
}

// EmailAttachment is a file attached to an email as a raw byte buffer
type EmailAttachment struct {
	Filename    string
	Content     []byte
	ContentType string
}

// loadTemplate renders the .html and .txt variants of an embedded email
// template with the given data.
func loadTemplate(templateName string, data interface{}) (html string, text string, err error) {
	htmlContent, err := emailFS.ReadFile("emailtmpl/" + templateName + ".html")
	if err != nil {
		return "", "", fmt.Errorf("failed to read template %s.html: %w", templateName, err)
	}

	htmlTmpl, err := template.New(templateName).Parse(string(htmlContent))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s.html: %w", templateName, err)
	}

	var htmlBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s.html: %w", templateName, err)
	}

	textContent, err := emailFS.ReadFile("emailtmpl/" + templateName + ".txt")
	if err != nil {
		return "", "", fmt.Errorf("failed to read template %s.txt: %w", templateName, err)
	}

	textTmpl, err := texttemplate.New(templateName).Parse(string(textContent))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s.txt: %w", templateName, err)
	}

	var textBuf bytes.Buffer
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s.txt: %w", templateName, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// buildEmail renders a template into an Email. Subject is set by the caller.
func buildEmail(templateName string, data interface{}, toEmail string) *Email {
	htmlBody, textBody, err := loadTemplate(templateName, data)
	if err != nil {
		log.Printf("Error loading %s email template: %v", templateName, err)
	}

	return &Email{
		To:       []string{toEmail},
		HTMLBody: htmlBody,
		TextBody: textBody,
	}
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	// Validate configuration
	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	fromAddress := fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom)

	params := &resend.SendEmailRequest{
		From:    fromAddress,
		To:      email.To,
		Subject: email.Subject,
	}

	// Set body (prefer HTML if available)
	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}

	// Validate we have at least one body
	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	// Attachments are passed through as raw byte buffers
	for _, att := range email.Attachments {
		params.Attachments = append(params.Attachments, &resend.Attachment{
			Filename:    att.Filename,
			Content:     att.Content,
			ContentType: att.ContentType,
		})
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// SendEmailAsync sends an email asynchronously using a goroutine.
// This is the recommended method for sending emails in handlers to avoid
// blocking HTTP responses.
func SendEmailAsync(cfg *config.Config, email *Email) {
	// Copy the email to avoid race conditions with the caller
	emailCopy := &Email{
		To:          append([]string{}, email.To...),
		Subject:     email.Subject,
		HTMLBody:    email.HTMLBody,
		TextBody:    email.TextBody,
		Attachments: append([]EmailAttachment{}, email.Attachments...),
	}

	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}(cfg, emailCopy)
}

// logEmailToConsole logs email details to console in development mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (test mode - not actually sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	for _, att := range email.Attachments {
		log.Printf("Attachment: %s (%d bytes, %s)", att.Filename, len(att.Content), att.ContentType)
	}
	log.Printf("%s\n", separator)
}

// BienvenidaEmailData contains data for the entity welcome email
type BienvenidaEmailData struct {
	NombreContacto string
	NombreEntidad  string
	Plan           string
	LoginURL       string
}

// BuildBienvenidaEmail creates the welcome email sent when an entity contracts the service
func BuildBienvenidaEmail(toEmail string, data BienvenidaEmailData) *Email {
	email := buildEmail("bienvenida", data, toEmail)
	email.Subject = fmt.Sprintf("Bienvenido a Custodia360 - %s", data.NombreEntidad)
	return email
}

// CredencialesEmailData contains data for the delegate credentials email
type CredencialesEmailData struct {
	NombreDelegado string
	NombreEntidad  string
	Email          string
	Password       string
	LoginURL       string
}

// BuildCredencialesEmail creates the credentials email for a new delegate account
func BuildCredencialesEmail(toEmail string, data CredencialesEmailData) *Email {
	email := buildEmail("credenciales", data, toEmail)
	email.Subject = "Tus credenciales de acceso a Custodia360"
	return email
}

// CertificacionEmailData contains data for the certification issued email
type CertificacionEmailData struct {
	NombreDelegado string
	NombreEntidad  string
	Numero         string
	Emitida        string
	Caduca         string
}

// BuildCertificacionEmail creates the certification email, with the
// certificate PDF attached when available
func BuildCertificacionEmail(toEmail string, data CertificacionEmailData, certificadoPDF []byte) *Email {
	email := buildEmail("certificacion", data, toEmail)
	email.Subject = fmt.Sprintf("Certificación de Delegado de Protección - %s", data.Numero)
	if len(certificadoPDF) > 0 {
		email.Attachments = append(email.Attachments, EmailAttachment{
			Filename:    fmt.Sprintf("certificado_%s.pdf", data.Numero),
			Content:     certificadoPDF,
			ContentType: "application/pdf",
		})
	}
	return email
}

// FacturaEmailData contains data for the invoice email
type FacturaEmailData struct {
	NombreContacto string
	NombreEntidad  string
	NumeroFactura  string
	Importe        string
	Fecha          string
}

// BuildFacturaEmail creates the invoice email with the PDF attached
func BuildFacturaEmail(toEmail string, data FacturaEmailData, facturaPDF []byte) *Email {
	email := buildEmail("factura", data, toEmail)
	email.Subject = fmt.Sprintf("Factura %s - Custodia360", data.NumeroFactura)
	if len(facturaPDF) > 0 {
		email.Attachments = append(email.Attachments, EmailAttachment{
			Filename:    fmt.Sprintf("factura_%s.pdf", data.NumeroFactura),
			Content:     facturaPDF,
			ContentType: "application/pdf",
		})
	}
	return email
}

// RecordatorioRenovacionEmailData contains data for the renewal reminder email
type RecordatorioRenovacionEmailData struct {
	NombreDelegado string
	NombreEntidad  string
	Numero         string
	Caduca         string
	RenovarURL     string
}

// BuildRecordatorioRenovacionEmail creates the certification renewal reminder email
func BuildRecordatorioRenovacionEmail(toEmail string, data RecordatorioRenovacionEmailData) *Email {
	email := buildEmail("recordatorio_renovacion", data, toEmail)
	email.Subject = fmt.Sprintf("Tu certificación %s caduca el %s", data.Numero, data.Caduca)
	return email
}

// NuevaIncidenciaEmailData contains data for the incident notification email
type NuevaIncidenciaEmailData struct {
	NombreDelegado string
	NombreEntidad  string
	CodigoCaso     string
	Titulo         string
	Gravedad       string
	FechaReporte   string
}

// BuildNuevaIncidenciaEmail notifies the assigned delegate of a new case
func BuildNuevaIncidenciaEmail(toEmail string, data NuevaIncidenciaEmailData) *Email {
	email := buildEmail("nueva_incidencia", data, toEmail)
	email.Subject = fmt.Sprintf("Nueva incidencia %s - %s", data.CodigoCaso, data.NombreEntidad)
	return email
}

// DocumentosGeneradosEmailData contains data for the bulk generation confirmation email
type DocumentosGeneradosEmailData struct {
	NombreEntidad string
	Documentos    []string
	Fecha         string
}

// BuildDocumentosGeneradosEmail confirms a bulk document-generation job to staff
func BuildDocumentosGeneradosEmail(toEmail string, data DocumentosGeneradosEmailData) *Email {
	email := buildEmail("documentos_generados", data, toEmail)
	email.Subject = fmt.Sprintf("Documentación LOPIVI generada - %s", data.NombreEntidad)
	return email
}
