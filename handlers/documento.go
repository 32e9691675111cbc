package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"custodia360/config"
	"custodia360/db"
	"custodia360/middleware"
	"custodia360/models"
	"custodia360/services"

	"github.com/labstack/echo/v4"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// GetPlantillasHandler lists the active document templates
func GetPlantillasHandler(c echo.Context) error {
	var plantillas []models.PlantillaDocumento
	if err := db.DB.Where("is_active = ?", true).Order("titulo ASC").Find(&plantillas).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch templates")
	}
	return c.JSON(http.StatusOK, plantillas)
}

// GenerateDocumentoHandler generates a single document for the entity in the
// requested format (pdf or docx) and streams it back
func GenerateDocumentoHandler(c echo.Context) error {
	entidad := middleware.GetCurrentEntidad(c)
	if entidad == nil {
		return echo.NewHTTPError(http.StatusForbidden, "No entity assigned")
	}

	var plantilla models.PlantillaDocumento
	if err := db.DB.Where("clave = ? AND is_active = ?", c.Param("clave"), true).First(&plantilla).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Template not found")
	}

	doc := services.BuildDocumentConfig(&plantilla, entidad)

	formato := c.QueryParam("formato")
	if formato == "" {
		formato = "pdf"
	}

	switch formato {
	case "pdf":
		pdf, err := services.GenerateDocumentPDF(doc, services.DefaultPDFOptions())
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate PDF")
		}
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf("attachment; filename=%q", plantilla.Clave+".pdf"))
		return c.Blob(http.StatusOK, "application/pdf", pdf)
	case "docx":
		docx, err := services.GenerateDocumentDOCX(doc)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate DOCX")
		}
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf("attachment; filename=%q", plantilla.Clave+".docx"))
		return c.Blob(http.StatusOK, docxContentType, docx)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "formato must be pdf or docx")
	}
}

// GenerateAllDocumentosHandler generates every active template for the
// entity, stores the PDFs, and sends a confirmation email. Email delivery is
// best effort: a send failure is logged and the response is still 200.
func GenerateAllDocumentosHandler(c echo.Context) error {
	entidad := middleware.GetCurrentEntidad(c)
	if entidad == nil {
		return echo.NewHTTPError(http.StatusForbidden, "No entity assigned")
	}

	var plantillas []models.PlantillaDocumento
	if err := db.DB.Where("is_active = ?", true).Order("titulo ASC").Find(&plantillas).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch templates")
	}

	generated := []string{}
	for _, plantilla := range plantillas {
		doc := services.BuildDocumentConfig(&plantilla, entidad)
		pdf, err := services.GenerateDocumentPDF(doc, services.DefaultPDFOptions())
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError,
				fmt.Sprintf("Failed to generate %s", plantilla.Clave))
		}

		key := fmt.Sprintf("entidades/%s/documentos/%s.pdf", entidad.ID, plantilla.Clave)
		if err := services.Storage.Store(c.Request().Context(), key, "application/pdf", pdf); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError,
				fmt.Sprintf("Failed to store %s", plantilla.Clave))
		}

		generated = append(generated, plantilla.Titulo)
	}

	if cfg, ok := c.Get("config").(*config.Config); ok {
		email := services.BuildDocumentosGeneradosEmail(entidad.EmailContacto, services.DocumentosGeneradosEmailData{
			NombreEntidad: entidad.Nombre,
			Documentos:    generated,
			Fecha:         time.Now().Format("02/01/2006"),
		})
		if err := services.SendEmail(cfg, email); err != nil {
			// Non-fatal: the documents are already generated and stored
			log.Printf("Failed to send generation confirmation email: %v", err)
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"generados": generated,
		"total":     len(generated),
	})
}

// DownloadDocumentoHandler streams a previously generated document from storage
func DownloadDocumentoHandler(c echo.Context) error {
	entidad := middleware.GetCurrentEntidad(c)
	if entidad == nil {
		return echo.NewHTTPError(http.StatusForbidden, "No entity assigned")
	}

	clave := c.Param("clave")
	key := fmt.Sprintf("entidades/%s/documentos/%s.pdf", entidad.ID, clave)

	reader, contentType, err := services.Storage.Get(c.Request().Context(), key)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Document not found")
	}
	defer reader.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", clave+".pdf"))
	return c.Stream(http.StatusOK, contentType, reader)
}
