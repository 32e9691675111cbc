package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Incidencia estado constants. Any estado may follow any other via a direct
// update; there is no enforced transition graph (intentional leniency).
const (
	EstadoAbierto         = "abierto"
	EstadoEnInvestigacion = "en_investigacion"
	EstadoEnProceso       = "en_proceso"
	EstadoResuelto        = "resuelto"
	EstadoCerrado         = "cerrado"
	EstadoArchivado       = "archivado"
)

// Categoria constants
const (
	CategoriaMaltratoFisico      = "maltrato_fisico"
	CategoriaMaltratoPsicologico = "maltrato_psicologico"
	CategoriaAbusoSexual         = "abuso_sexual"
	CategoriaNegligencia         = "negligencia"
	CategoriaAcoso               = "acoso"
	CategoriaAccidente           = "accidente"
	CategoriaConductaInapropiada = "conducta_inapropiada"
	CategoriaOtros               = "otros"
)

// Gravedad constants
const (
	GravedadBaja    = "baja"
	GravedadMedia   = "media"
	GravedadAlta    = "alta"
	GravedadCritica = "critica"
)

// Prioridad constants
const (
	PrioridadBaja    = "baja"
	PrioridadMedia   = "media"
	PrioridadAlta    = "alta"
	PrioridadUrgente = "urgente"
)

// Incidencia represents a logged child-protection case. Cases are never
// physically deleted; they are archived via estado instead.
type Incidencia struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Entity relationship (tenant)
	EntidadID string   `gorm:"type:uuid;not null;index:idx_incidencia_entidad_reporte" json:"entidad_id"`
	Entidad   *Entidad `gorm:"foreignKey:EntidadID" json:"entidad,omitempty"`

	// Case identification: human-readable sequential code scoped to the entity
	CodigoCaso string `gorm:"not null;index" json:"codigo_caso"`

	// Classification
	Categoria    string  `gorm:"not null" json:"categoria"`
	Subcategoria *string `json:"subcategoria,omitempty"`
	Gravedad     string  `gorm:"not null" json:"gravedad"`
	Prioridad    string  `gorm:"not null;default:media" json:"prioridad"`

	// Lifecycle
	Estado string `gorm:"not null;default:abierto;index" json:"estado"`

	// Content
	Titulo                 string   `gorm:"not null" json:"titulo"`
	Descripcion            string   `gorm:"type:text;not null" json:"descripcion"`
	Ubicacion              string   `json:"ubicacion"`
	ReportadoPor           string   `json:"reportado_por"`
	Afectados              []string `gorm:"serializer:json;type:text" json:"afectados"`
	Testigos               []string `gorm:"serializer:json;type:text" json:"testigos"`
	AutoridadesContactadas []string `gorm:"serializer:json;type:text" json:"autoridades_contactadas"`
	DelegadoAsignado       string   `json:"delegado_asignado"`

	// Flags
	Confidencial        bool `gorm:"not null;default:false" json:"confidencial"`
	RequiereSeguimiento bool `gorm:"not null;default:false" json:"requiere_seguimiento"`

	// Timestamps
	FechaIncidencia time.Time `gorm:"not null" json:"fecha_incidencia"`
	FechaReporte    time.Time `gorm:"not null;index:idx_incidencia_entidad_reporte" json:"fecha_reporte"`

	// Relationships
	AccionesTomadas []AccionTomada `gorm:"foreignKey:IncidenciaID" json:"acciones_tomadas"`
}

// BeforeCreate hook to generate UUID and set FechaReporte
func (i *Incidencia) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	if i.FechaReporte.IsZero() {
		i.FechaReporte = time.Now()
	}
	return nil
}

// TableName specifies the table name for Incidencia model
func (Incidencia) TableName() string {
	return "incidencias"
}

// IsResueltaOCerrada reports whether the case counts toward resolution-time
// statistics.
func (i *Incidencia) IsResueltaOCerrada() bool {
	return i.Estado == EstadoResuelto || i.Estado == EstadoCerrado
}

// IsValidEstado checks if the estado is valid
func IsValidEstado(estado string) bool {
	switch estado {
	case EstadoAbierto, EstadoEnInvestigacion, EstadoEnProceso,
		EstadoResuelto, EstadoCerrado, EstadoArchivado:
		return true
	}
	return false
}

// IsValidCategoria checks if the categoria is valid
func IsValidCategoria(categoria string) bool {
	switch categoria {
	case CategoriaMaltratoFisico, CategoriaMaltratoPsicologico, CategoriaAbusoSexual,
		CategoriaNegligencia, CategoriaAcoso, CategoriaAccidente,
		CategoriaConductaInapropiada, CategoriaOtros:
		return true
	}
	return false
}

// IsValidGravedad checks if the gravedad is valid
func IsValidGravedad(gravedad string) bool {
	switch gravedad {
	case GravedadBaja, GravedadMedia, GravedadAlta, GravedadCritica:
		return true
	}
	return false
}

// IsValidPrioridad checks if the prioridad is valid
func IsValidPrioridad(prioridad string) bool {
	switch prioridad {
	case PrioridadBaja, PrioridadMedia, PrioridadAlta, PrioridadUrgente:
		return true
	}
	return false
}
