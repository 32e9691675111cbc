package services

import (
	"fmt"
	"log"
	"time"

	"custodia360/models"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// descripcionPolicy strips markup from free-text fields before they are
// persisted. Case descriptions come straight from form input.
var descripcionPolicy = bluemonday.StrictPolicy()

// IncidenciaInput contains the fields accepted when creating a case.
type IncidenciaInput struct {
	Categoria              string     `json:"categoria"`
	Subcategoria           *string    `json:"subcategoria,omitempty"`
	Gravedad               string     `json:"gravedad"`
	Prioridad              string     `json:"prioridad"`
	Titulo                 string     `json:"titulo"`
	Descripcion            string     `json:"descripcion"`
	Ubicacion              string     `json:"ubicacion"`
	ReportadoPor           string     `json:"reportado_por"`
	Afectados              []string   `json:"afectados"`
	Testigos               []string   `json:"testigos"`
	AutoridadesContactadas []string   `json:"autoridades_contactadas"`
	DelegadoAsignado       string     `json:"delegado_asignado"`
	Confidencial           bool       `json:"confidencial"`
	RequiereSeguimiento    bool       `json:"requiere_seguimiento"`
	FechaIncidencia        time.Time  `json:"fecha_incidencia"`
}

// AccionInput contains the fields accepted when logging an action.
type AccionInput struct {
	TipoAccion         string     `json:"tipo_accion"`
	Titulo             string     `json:"titulo"`
	Descripcion        string     `json:"descripcion"`
	Responsable        string     `json:"responsable"`
	Participantes      []string   `json:"participantes"`
	Resultado          string     `json:"resultado"`
	DocumentosAdjuntos []string   `json:"documentos_adjuntos"`
	ProximosPasos      string     `json:"proximos_pasos"`
	FechaSeguimiento   *time.Time `json:"fecha_seguimiento,omitempty"`
	Completada         bool       `json:"completada"`
	Observaciones      string     `json:"observaciones"`
	FechaAccion        time.Time  `json:"fecha_accion"`
}

// ListIncidencias returns every case for the entity ordered by fecha_reporte
// descending, each with its actions preloaded in chronological order.
func ListIncidencias(db *gorm.DB, entidadID string) ([]models.Incidencia, error) {
	var incidencias []models.Incidencia
	err := db.Where("entidad_id = ?", entidadID).
		Preload("AccionesTomadas", func(db *gorm.DB) *gorm.DB {
			return db.Order("fecha_accion ASC")
		}).
		Order("fecha_reporte DESC").
		Find(&incidencias).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch incidencias: %w", err)
	}
	return incidencias, nil
}

// GetIncidencia returns a single case scoped to the entity, with its actions.
func GetIncidencia(db *gorm.DB, id, entidadID string) (*models.Incidencia, error) {
	var incidencia models.Incidencia
	err := db.Where("id = ? AND entidad_id = ?", id, entidadID).
		Preload("AccionesTomadas", func(db *gorm.DB) *gorm.DB {
			return db.Order("fecha_accion ASC")
		}).
		First(&incidencia).Error
	if err != nil {
		return nil, err
	}
	return &incidencia, nil
}

// CreateIncidencia creates a new case for the entity. The case code comes
// from the sequential generator; if generation fails, a timestamp-derived
// fallback code is used instead and the error is only logged.
func CreateIncidencia(db *gorm.DB, entidadID string, input IncidenciaInput) (*models.Incidencia, error) {
	codigo, err := GenerateCaseCode(db, entidadID)
	if err != nil {
		codigo = FallbackCaseCode(time.Now())
		log.Printf("Case code generation failed, using fallback %s: %v", codigo, err)
	}

	prioridad := input.Prioridad
	if prioridad == "" {
		prioridad = models.PrioridadMedia
	}

	incidencia := &models.Incidencia{
		EntidadID:              entidadID,
		CodigoCaso:             codigo,
		Categoria:              input.Categoria,
		Subcategoria:           input.Subcategoria,
		Gravedad:               input.Gravedad,
		Prioridad:              prioridad,
		Estado:                 models.EstadoAbierto,
		Titulo:                 input.Titulo,
		Descripcion:            descripcionPolicy.Sanitize(input.Descripcion),
		Ubicacion:              input.Ubicacion,
		ReportadoPor:           input.ReportadoPor,
		Afectados:              input.Afectados,
		Testigos:               input.Testigos,
		AutoridadesContactadas: input.AutoridadesContactadas,
		DelegadoAsignado:       input.DelegadoAsignado,
		Confidencial:           input.Confidencial,
		RequiereSeguimiento:    input.RequiereSeguimiento,
		FechaIncidencia:        input.FechaIncidencia,
	}

	if err := db.Create(incidencia).Error; err != nil {
		return nil, fmt.Errorf("failed to create incidencia: %w", err)
	}

	return incidencia, nil
}

// UpdateIncidencia applies a partial update to a case. updated_at is always
// stamped server-side. Last write wins; there is no conflict detection.
func UpdateIncidencia(db *gorm.DB, id, entidadID string, fields map[string]interface{}) error {
	if descripcion, ok := fields["descripcion"].(string); ok {
		fields["descripcion"] = descripcionPolicy.Sanitize(descripcion)
	}
	fields["updated_at"] = time.Now()

	result := db.Model(&models.Incidencia{}).
		Where("id = ? AND entidad_id = ?", id, entidadID).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update incidencia: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateAccion appends an action to a case. The parent case record is left
// untouched.
func CreateAccion(db *gorm.DB, incidenciaID string, input AccionInput) (*models.AccionTomada, error) {
	accion := &models.AccionTomada{
		IncidenciaID:       incidenciaID,
		TipoAccion:         input.TipoAccion,
		Titulo:             input.Titulo,
		Descripcion:        descripcionPolicy.Sanitize(input.Descripcion),
		Responsable:        input.Responsable,
		Participantes:      input.Participantes,
		Resultado:          input.Resultado,
		DocumentosAdjuntos: input.DocumentosAdjuntos,
		ProximosPasos:      input.ProximosPasos,
		FechaSeguimiento:   input.FechaSeguimiento,
		Completada:         input.Completada,
		Observaciones:      input.Observaciones,
		FechaAccion:        input.FechaAccion,
	}

	if err := db.Create(accion).Error; err != nil {
		return nil, fmt.Errorf("failed to create accion: %w", err)
	}

	return accion, nil
}
