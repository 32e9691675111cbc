package services

import (
	"fmt"
	"strings"
	"time"

	"custodia360/models"
)

// Annual plan prices, VAT included.
var planImportes = map[string]string{
	"plan_100":      "190,00 €",
	"plan_250":      "390,00 €",
	"plan_500":      "690,00 €",
	"plan_500_plus": "990,00 €",
}

// PlanImporte returns the formatted annual price for a plan
func PlanImporte(plan string) string {
	if importe, ok := planImportes[plan]; ok {
		return importe
	}
	return planImportes["plan_100"]
}

// GenerateNumeroFactura derives the invoice number for an entity's
// contracting invoice. One invoice per contracting, so the entity id keeps
// it unique.
func GenerateNumeroFactura(entidad *models.Entidad, now time.Time) string {
	return fmt.Sprintf("FAC-%d-%s", now.Year(), strings.ToUpper(entidad.ID[:8]))
}

// BuildFacturaConfig assembles the invoice document for PDF rendering
func BuildFacturaConfig(entidad *models.Entidad, numero string, now time.Time) DocumentConfig {
	return DocumentConfig{
		Titulo:    "Factura",
		Subtitulo: "Custodia360",
		Version:   numero,
		Fecha:     now.Format("02/01/2006"),
		Secciones: []Seccion{
			{
				Titulo: "Datos del cliente",
				Contenido: []string{
					fmt.Sprintf("%s (CIF %s)", entidad.Nombre, entidad.CIF),
					strings.TrimSpace(fmt.Sprintf("%s %s", entidad.Direccion, entidad.Ciudad)),
				},
			},
			{
				Titulo: "Concepto",
				Contenido: []string{
					fmt.Sprintf("Servicio Custodia360 de cumplimiento LOPIVI, plan %s, periodo anual.", entidad.Plan),
					fmt.Sprintf("Importe total: %s (IVA incluido).", PlanImporte(entidad.Plan)),
				},
			},
		},
	}
}
