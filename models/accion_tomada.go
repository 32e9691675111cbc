package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TipoAccion constants
const (
	AccionInvestigacion           = "investigacion"
	AccionEntrevista              = "entrevista"
	AccionMedidaCautelar          = "medida_cautelar"
	AccionComunicacionAutoridades = "comunicacion_autoridades"
	AccionComunicacionFamilias    = "comunicacion_familias"
	AccionSeguimiento             = "seguimiento"
	AccionDocumentacion           = "documentacion"
	AccionFormacion               = "formacion"
	AccionOtros                   = "otros"
)

// AccionTomada represents a step taken in response to an incidencia.
// Actions are append-only: created, never edited or deleted. Archiving a
// case does not cascade to its actions; they remain as historical record.
type AccionTomada struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	IncidenciaID string `gorm:"type:uuid;not null;index" json:"incidencia_id"`

	TipoAccion         string     `gorm:"not null" json:"tipo_accion"`
	Titulo             string     `gorm:"not null" json:"titulo"`
	Descripcion        string     `gorm:"type:text;not null" json:"descripcion"`
	Responsable        string     `json:"responsable"`
	Participantes      []string   `gorm:"serializer:json;type:text" json:"participantes"`
	Resultado          string     `gorm:"type:text" json:"resultado"`
	DocumentosAdjuntos []string   `gorm:"serializer:json;type:text" json:"documentos_adjuntos"`
	ProximosPasos      string     `gorm:"type:text" json:"proximos_pasos"`
	FechaSeguimiento   *time.Time `json:"fecha_seguimiento,omitempty"`
	Completada         bool       `gorm:"not null;default:false" json:"completada"`
	Observaciones      string     `gorm:"type:text" json:"observaciones"`

	FechaAccion time.Time `gorm:"not null;index" json:"fecha_accion"`
}

// BeforeCreate hook to generate UUID and set FechaAccion
func (a *AccionTomada) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.FechaAccion.IsZero() {
		a.FechaAccion = time.Now()
	}
	return nil
}

// TableName specifies the table name for AccionTomada model
func (AccionTomada) TableName() string {
	return "acciones_tomadas"
}

// IsValidTipoAccion checks if the tipo_accion is valid
func IsValidTipoAccion(tipo string) bool {
	switch tipo {
	case AccionInvestigacion, AccionEntrevista, AccionMedidaCautelar,
		AccionComunicacionAutoridades, AccionComunicacionFamilias,
		AccionSeguimiento, AccionDocumentacion, AccionFormacion, AccionOtros:
		return true
	}
	return false
}
