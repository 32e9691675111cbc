package services

import (
	"testing"

	"custodia360/config"

	"github.com/stretchr/testify/assert"
)

func TestSendEmailTestMode(t *testing.T) {
	cfg := &config.Config{EmailTestMode: true}

	err := SendEmail(cfg, &Email{
		To:       []string{"delegado@example.com"},
		Subject:  "Prueba",
		TextBody: "Cuerpo de prueba",
	})
	assert.NoError(t, err)
}

func TestSendEmailRequiresAPIKey(t *testing.T) {
	cfg := &config.Config{EmailTestMode: false, ResendAPIKey: ""}

	err := SendEmail(cfg, &Email{
		To:       []string{"delegado@example.com"},
		Subject:  "Prueba",
		TextBody: "Cuerpo",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY")
}

func TestBuildBienvenidaEmail(t *testing.T) {
	email := BuildBienvenidaEmail("club@example.com", BienvenidaEmailData{
		NombreContacto: "Maria Garcia",
		NombreEntidad:  "Club Deportivo",
		Plan:           "plan_100",
		LoginURL:       "https://app.custodia360.es/login",
	})

	assert.Equal(t, []string{"club@example.com"}, email.To)
	assert.Contains(t, email.Subject, "Club Deportivo")
	assert.Contains(t, email.HTMLBody, "Maria Garcia")
	assert.Contains(t, email.TextBody, "Maria Garcia")
	assert.Contains(t, email.HTMLBody, "https://app.custodia360.es/login")
	assert.Empty(t, email.Attachments)
}

func TestBuildCredencialesEmail(t *testing.T) {
	email := BuildCredencialesEmail("maria@example.com", CredencialesEmailData{
		NombreDelegado: "Maria Garcia",
		NombreEntidad:  "Club Deportivo",
		Email:          "maria@example.com",
		Password:       "secreto123",
		LoginURL:       "https://app.custodia360.es/login",
	})

	assert.Contains(t, email.TextBody, "maria@example.com")
	assert.Contains(t, email.TextBody, "secreto123")
}

func TestBuildCertificacionEmailAttachment(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake")

	email := BuildCertificacionEmail("maria@example.com", CertificacionEmailData{
		NombreDelegado: "Maria Garcia",
		NombreEntidad:  "Club Deportivo",
		Numero:         "CERT-2026-00001",
		Emitida:        "01/02/2026",
		Caduca:         "31/01/2028",
	}, pdf)

	assert.Contains(t, email.Subject, "CERT-2026-00001")
	assert.Len(t, email.Attachments, 1)
	assert.Equal(t, "certificado_CERT-2026-00001.pdf", email.Attachments[0].Filename)
	assert.Equal(t, "application/pdf", email.Attachments[0].ContentType)
	assert.Equal(t, pdf, email.Attachments[0].Content)

	// Without a PDF there is no attachment
	email = BuildCertificacionEmail("maria@example.com", CertificacionEmailData{Numero: "CERT-2026-00002"}, nil)
	assert.Empty(t, email.Attachments)
}

func TestBuildNuevaIncidenciaEmail(t *testing.T) {
	email := BuildNuevaIncidenciaEmail("delegado@example.com", NuevaIncidenciaEmailData{
		NombreDelegado: "Maria Garcia",
		NombreEntidad:  "Club Deportivo",
		CodigoCaso:     "CASO-0042",
		Titulo:         "Incidente en vestuario",
		Gravedad:       "alta",
		FechaReporte:   "15/06/2026",
	})

	assert.Contains(t, email.Subject, "CASO-0042")
	assert.Contains(t, email.HTMLBody, "Incidente en vestuario")
	assert.Contains(t, email.TextBody, "CASO-0042")
}

func TestBuildDocumentosGeneradosEmail(t *testing.T) {
	email := BuildDocumentosGeneradosEmail("club@example.com", DocumentosGeneradosEmailData{
		NombreEntidad: "Club Deportivo",
		Documentos:    []string{"Plan de Protección Infantil", "Código de Conducta"},
		Fecha:         "15/06/2026",
	})

	assert.Contains(t, email.Subject, "Club Deportivo")
	assert.Contains(t, email.TextBody, "Plan de Protección Infantil")
	assert.Contains(t, email.TextBody, "Código de Conducta")
}
