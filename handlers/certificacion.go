package handlers

import (
	"log"
	"net/http"

	"custodia360/config"
	"custodia360/db"
	"custodia360/middleware"
	"custodia360/models"
	"custodia360/services"

	"github.com/labstack/echo/v4"
)

// GetCertificacionesHandler lists the entity's certifications
func GetCertificacionesHandler(c echo.Context) error {
	var certs []models.Certificacion
	err := middleware.GetEntidadScopedQuery(c, db.DB).
		Preload("Delegado").
		Order("emitida DESC").
		Find(&certs).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch certifications")
	}
	return c.JSON(http.StatusOK, certs)
}

// CompleteFormacionHandler marks the current delegate's training as
// completed, issues the certification, and emails the certificate PDF
func CompleteFormacionHandler(c echo.Context) error {
	delegado := middleware.GetCurrentDelegado(c)
	entidad := middleware.GetCurrentEntidad(c)
	if delegado == nil || entidad == nil {
		return echo.NewHTTPError(http.StatusForbidden, "No entity assigned")
	}

	if delegado.FormacionCompletada {
		return echo.NewHTTPError(http.StatusConflict, "Training already completed")
	}

	cert, err := services.IssueCertificacion(db.DB, delegado)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to issue certification")
	}

	// Certificate PDF and email are best effort; the certification record
	// is already persisted
	if cfg, ok := c.Get("config").(*config.Config); ok {
		doc := services.BuildCertificadoConfig(cert, delegado, entidad)
		pdf, err := services.GenerateDocumentPDF(doc, services.DefaultPDFOptions())
		if err != nil {
			log.Printf("Failed to generate certificate PDF for %s: %v", cert.Numero, err)
			pdf = nil
		}

		email := services.BuildCertificacionEmail(delegado.Email, services.CertificacionEmailData{
			NombreDelegado: delegado.Nombre,
			NombreEntidad:  entidad.Nombre,
			Numero:         cert.Numero,
			Emitida:        cert.Emitida.Format("02/01/2006"),
			Caduca:         cert.Caduca.Format("02/01/2006"),
		}, pdf)
		services.SendEmailAsync(cfg, email)
	}

	return c.JSON(http.StatusCreated, cert)
}
