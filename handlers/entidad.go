package handlers

import (
	"log"
	"net/http"
	"time"

	"custodia360/config"
	"custodia360/db"
	"custodia360/middleware"
	"custodia360/models"
	"custodia360/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ContratarRequest is the payload for contracting the service: the entity
// plus its principal delegate in one step.
type ContratarRequest struct {
	Nombre        string `json:"nombre"`
	CIF           string `json:"cif"`
	Sector        string `json:"sector"`
	Direccion     string `json:"direccion"`
	Ciudad        string `json:"ciudad"`
	Telefono      string `json:"telefono"`
	EmailContacto string `json:"email_contacto"`
	NumeroMenores int    `json:"numero_menores"`
	Plan          string `json:"plan"`

	DelegadoNombre   string `json:"delegado_nombre"`
	DelegadoEmail    string `json:"delegado_email"`
	DelegadoPassword string `json:"delegado_password"`
}

// ContratarHandler registers a new entity with its principal delegate and
// sends the welcome and credentials emails
func ContratarHandler(c echo.Context) error {
	var req ContratarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if req.Nombre == "" || req.CIF == "" || req.EmailContacto == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "nombre, cif and email_contacto are required")
	}
	if req.DelegadoNombre == "" || req.DelegadoEmail == "" || req.DelegadoPassword == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "delegado_nombre, delegado_email and delegado_password are required")
	}

	hashed, err := services.HashPassword(req.DelegadoPassword)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to process password")
	}

	entidad := &models.Entidad{
		Nombre:        req.Nombre,
		CIF:           req.CIF,
		Sector:        req.Sector,
		Direccion:     req.Direccion,
		Ciudad:        req.Ciudad,
		Telefono:      req.Telefono,
		EmailContacto: req.EmailContacto,
		NumeroMenores: req.NumeroMenores,
	}
	if req.Plan != "" {
		entidad.Plan = req.Plan
	}

	var delegado *models.Delegado
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entidad).Error; err != nil {
			return err
		}
		delegado = &models.Delegado{
			Nombre:    req.DelegadoNombre,
			Email:     req.DelegadoEmail,
			Password:  hashed,
			EntidadID: &entidad.ID,
			Rol:       models.RolDelegadoPrincipal,
			IsActive:  true,
		}
		return tx.Create(delegado).Error
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, "Failed to register entity")
	}

	if cfg, ok := c.Get("config").(*config.Config); ok {
		loginURL := cfg.AppURL + "/login"
		services.SendEmailAsync(cfg, services.BuildBienvenidaEmail(entidad.EmailContacto, services.BienvenidaEmailData{
			NombreContacto: req.DelegadoNombre,
			NombreEntidad:  entidad.Nombre,
			Plan:           entidad.Plan,
			LoginURL:       loginURL,
		}))
		services.SendEmailAsync(cfg, services.BuildCredencialesEmail(delegado.Email, services.CredencialesEmailData{
			NombreDelegado: delegado.Nombre,
			NombreEntidad:  entidad.Nombre,
			Email:          delegado.Email,
			Password:       req.DelegadoPassword,
			LoginURL:       loginURL,
		}))

		// Invoice PDF is best effort; the contracting already succeeded
		now := time.Now()
		numero := services.GenerateNumeroFactura(entidad, now)
		facturaPDF, err := services.GenerateDocumentPDF(services.BuildFacturaConfig(entidad, numero, now), services.DefaultPDFOptions())
		if err != nil {
			log.Printf("Failed to generate invoice PDF %s: %v", numero, err)
			facturaPDF = nil
		}
		services.SendEmailAsync(cfg, services.BuildFacturaEmail(entidad.EmailContacto, services.FacturaEmailData{
			NombreContacto: req.DelegadoNombre,
			NombreEntidad:  entidad.Nombre,
			NumeroFactura:  numero,
			Importe:        services.PlanImporte(entidad.Plan),
			Fecha:          now.Format("02/01/2006"),
		}, facturaPDF))
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"entidad":  entidad,
		"delegado": delegado,
	})
}

// GetEntidadHandler returns the current delegate's entity
func GetEntidadHandler(c echo.Context) error {
	entidad := middleware.GetCurrentEntidad(c)
	if entidad == nil {
		return echo.NewHTTPError(http.StatusForbidden, "No entity assigned")
	}
	return c.JSON(http.StatusOK, entidad)
}

// UpdateEntidadHandler updates the current entity's contact details
func UpdateEntidadHandler(c echo.Context) error {
	entidad := middleware.GetCurrentEntidad(c)
	if entidad == nil {
		return echo.NewHTTPError(http.StatusForbidden, "No entity assigned")
	}

	var fields map[string]interface{}
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	delete(fields, "id")
	delete(fields, "cif")
	delete(fields, "created_at")

	if err := db.DB.Model(&models.Entidad{}).Where("id = ?", entidad.ID).Updates(fields).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update entity")
	}

	var updated models.Entidad
	if err := db.DB.First(&updated, "id = ?", entidad.ID).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch entity")
	}
	return c.JSON(http.StatusOK, updated)
}
