package services

import (
	"testing"
	"time"

	"custodia360/models"

	"github.com/stretchr/testify/assert"
)

func TestPlanImporte(t *testing.T) {
	assert.Equal(t, "390,00 €", PlanImporte("plan_250"))
	assert.Equal(t, "990,00 €", PlanImporte("plan_500_plus"))

	t.Run("unknown plan falls back to base price", func(t *testing.T) {
		assert.Equal(t, "190,00 €", PlanImporte("plan_inexistente"))
	})
}

func TestGenerateNumeroFactura(t *testing.T) {
	entidad := &models.Entidad{ID: "a1b2c3d4-0000-0000-0000-000000000000"}
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	numero := GenerateNumeroFactura(entidad, now)
	assert.Equal(t, "FAC-2026-A1B2C3D4", numero)
}

func TestBuildFacturaConfig(t *testing.T) {
	entidad := &models.Entidad{
		ID:     "a1b2c3d4-0000-0000-0000-000000000000",
		Nombre: "Club Deportivo Ejemplo",
		CIF:    "G12345678",
		Ciudad: "Madrid",
		Plan:   "plan_250",
	}
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	doc := BuildFacturaConfig(entidad, "FAC-2026-A1B2C3D4", now)

	assert.Equal(t, "Factura", doc.Titulo)
	assert.Equal(t, "FAC-2026-A1B2C3D4", doc.Version)
	assert.Equal(t, "15/03/2026", doc.Fecha)
	assert.Len(t, doc.Secciones, 2)
	assert.Contains(t, doc.Secciones[0].Contenido[0], "Club Deportivo Ejemplo")
	assert.Contains(t, doc.Secciones[0].Contenido[0], "G12345678")
	assert.Contains(t, doc.Secciones[1].Contenido[1], "390,00 €")
}

func TestBuildFacturaEmail(t *testing.T) {
	data := FacturaEmailData{
		NombreContacto: "Maria Garcia",
		NombreEntidad:  "Club Deportivo Ejemplo",
		NumeroFactura:  "FAC-2026-A1B2C3D4",
		Importe:        "390,00 €",
		Fecha:          "15/03/2026",
	}

	email := BuildFacturaEmail("club@example.com", data, []byte("%PDF-1.4"))
	assert.Equal(t, []string{"club@example.com"}, email.To)
	assert.Contains(t, email.Subject, "FAC-2026-A1B2C3D4")
	assert.Contains(t, email.TextBody, "390,00 €")
	assert.Contains(t, email.TextBody, "Maria Garcia")
	assert.Len(t, email.Attachments, 1)
	assert.Equal(t, "factura_FAC-2026-A1B2C3D4.pdf", email.Attachments[0].Filename)

	t.Run("no attachment without PDF", func(t *testing.T) {
		email := BuildFacturaEmail("club@example.com", data, nil)
		assert.Empty(t, email.Attachments)
	})
}
