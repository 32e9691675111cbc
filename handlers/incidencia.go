package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"custodia360/config"
	"custodia360/db"
	"custodia360/middleware"
	"custodia360/models"
	"custodia360/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// GetIncidenciasHandler returns the entity's cases, newest report first,
// optionally filtered by estado, categoria and gravedad query params.
func GetIncidenciasHandler(c echo.Context) error {
	entidadID := requireEntidadID(c)
	if entidadID == "" {
		return echo.NewHTTPError(http.StatusForbidden, "No entity assigned")
	}

	incidencias, err := services.ListIncidencias(db.DB, entidadID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch incidencias")
	}

	filtros := services.Filtros{
		Estado:    c.QueryParam("estado"),
		Categoria: c.QueryParam("categoria"),
		Gravedad:  c.QueryParam("gravedad"),
	}
	filtered := services.ApplyFilters(incidencias, filtros)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":  filtered,
		"total": len(filtered),
	})
}

// GetEstadisticasHandler returns summary statistics over the entity's cases
func GetEstadisticasHandler(c echo.Context) error {
	entidadID := requireEntidadID(c)
	if entidadID == "" {
		return echo.NewHTTPError(http.StatusForbidden, "No entity assigned")
	}

	incidencias, err := services.ListIncidencias(db.DB, entidadID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch incidencias")
	}

	return c.JSON(http.StatusOK, services.ComputeStatistics(incidencias))
}

// GetTimelineHandler returns the most recent cases with their actions in
// chronological order
func GetTimelineHandler(c echo.Context) error {
	entidadID := requireEntidadID(c)
	if entidadID == "" {
		return echo.NewHTTPError(http.StatusForbidden, "No entity assigned")
	}

	limit := services.DefaultTimelineLimit
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	incidencias, err := services.ListIncidencias(db.DB, entidadID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch incidencias")
	}

	return c.JSON(http.StatusOK, services.BuildTimeline(incidencias, limit))
}

// GetIncidenciaHandler returns a single case with its actions
func GetIncidenciaHandler(c echo.Context) error {
	entidadID := requireEntidadID(c)
	if entidadID == "" {
		return echo.NewHTTPError(http.StatusForbidden, "No entity assigned")
	}

	incidencia, err := services.GetIncidencia(db.DB, c.Param("id"), entidadID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Incidencia not found")
	}

	return c.JSON(http.StatusOK, incidencia)
}

// CreateIncidenciaHandler creates a new case and notifies the assigned
// delegate by email (best effort, async)
func CreateIncidenciaHandler(c echo.Context) error {
	entidadID := requireEntidadID(c)
	if entidadID == "" {
		return echo.NewHTTPError(http.StatusForbidden, "No entity assigned")
	}

	var input services.IncidenciaInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if err := validateIncidenciaInput(input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	incidencia, err := services.CreateIncidencia(db.DB, entidadID, input)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create incidencia")
	}

	notifyDelegadoAsignado(c, incidencia)

	return c.JSON(http.StatusCreated, incidencia)
}

// UpdateIncidenciaHandler applies a partial update to a case. Estado changes
// are validated against the known set but any transition is allowed.
func UpdateIncidenciaHandler(c echo.Context) error {
	entidadID := requireEntidadID(c)
	if entidadID == "" {
		return echo.NewHTTPError(http.StatusForbidden, "No entity assigned")
	}

	var fields map[string]interface{}
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	// Identity and ownership fields are not updatable
	delete(fields, "id")
	delete(fields, "entidad_id")
	delete(fields, "codigo_caso")
	delete(fields, "created_at")
	delete(fields, "acciones_tomadas")

	if estado, ok := fields["estado"].(string); ok && !models.IsValidEstado(estado) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid estado")
	}
	if categoria, ok := fields["categoria"].(string); ok && !models.IsValidCategoria(categoria) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid categoria")
	}
	if gravedad, ok := fields["gravedad"].(string); ok && !models.IsValidGravedad(gravedad) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid gravedad")
	}

	if err := services.UpdateIncidencia(db.DB, c.Param("id"), entidadID, fields); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Incidencia not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update incidencia")
	}

	incidencia, err := services.GetIncidencia(db.DB, c.Param("id"), entidadID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch incidencia")
	}
	return c.JSON(http.StatusOK, incidencia)
}

// CreateAccionHandler appends an action to a case
func CreateAccionHandler(c echo.Context) error {
	entidadID := requireEntidadID(c)
	if entidadID == "" {
		return echo.NewHTTPError(http.StatusForbidden, "No entity assigned")
	}

	// Verify the case belongs to the entity before attaching actions
	incidencia, err := services.GetIncidencia(db.DB, c.Param("id"), entidadID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Incidencia not found")
	}

	var input services.AccionInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if input.TipoAccion == "" || input.Titulo == "" || input.Descripcion == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "tipo_accion, titulo and descripcion are required")
	}
	if !models.IsValidTipoAccion(input.TipoAccion) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid tipo_accion")
	}

	accion, err := services.CreateAccion(db.DB, incidencia.ID, input)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create accion")
	}

	return c.JSON(http.StatusCreated, accion)
}

// ExportRegistroHandler downloads the entity's incident register as XLSX
func ExportRegistroHandler(c echo.Context) error {
	entidad := middleware.GetCurrentEntidad(c)
	if entidad == nil {
		return echo.NewHTTPError(http.StatusForbidden, "No entity assigned")
	}

	incidencias, err := services.ListIncidencias(db.DB, entidad.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch incidencias")
	}

	buf, err := services.GenerateRegistroExcel(entidad, incidencias)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate register")
	}

	filename := fmt.Sprintf("registro_incidencias_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

func validateIncidenciaInput(input services.IncidenciaInput) error {
	if input.Titulo == "" || input.Descripcion == "" {
		return fmt.Errorf("titulo and descripcion are required")
	}
	if input.FechaIncidencia.IsZero() {
		return fmt.Errorf("fecha_incidencia is required")
	}
	if !models.IsValidCategoria(input.Categoria) {
		return fmt.Errorf("invalid categoria")
	}
	if !models.IsValidGravedad(input.Gravedad) {
		return fmt.Errorf("invalid gravedad")
	}
	if input.Prioridad != "" && !models.IsValidPrioridad(input.Prioridad) {
		return fmt.Errorf("invalid prioridad")
	}
	return nil
}

// notifyDelegadoAsignado emails the assigned delegate about a new case.
// Failures are logged only; the case is already persisted.
func notifyDelegadoAsignado(c echo.Context, incidencia *models.Incidencia) {
	cfg, ok := c.Get("config").(*config.Config)
	if !ok || incidencia.DelegadoAsignado == "" {
		return
	}

	entidad := middleware.GetCurrentEntidad(c)
	if entidad == nil {
		return
	}

	var delegado models.Delegado
	err := db.DB.Where("nombre = ? AND entidad_id = ?", incidencia.DelegadoAsignado, incidencia.EntidadID).
		First(&delegado).Error
	if err != nil {
		log.Printf("Assigned delegate %q not found for notification: %v", incidencia.DelegadoAsignado, err)
		return
	}

	email := services.BuildNuevaIncidenciaEmail(delegado.Email, services.NuevaIncidenciaEmailData{
		NombreDelegado: delegado.Nombre,
		NombreEntidad:  entidad.Nombre,
		CodigoCaso:     incidencia.CodigoCaso,
		Titulo:         incidencia.Titulo,
		Gravedad:       incidencia.Gravedad,
		FechaReporte:   incidencia.FechaReporte.Format("02/01/2006 15:04"),
	})
	services.SendEmailAsync(cfg, email)
}

func requireEntidadID(c echo.Context) string {
	delegado := middleware.GetCurrentDelegado(c)
	if delegado == nil || delegado.EntidadID == nil {
		return ""
	}
	return *delegado.EntidadID
}
