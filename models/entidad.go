package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entidad represents a tenant organization (sports club, school, academy...)
// subject to LOPIVI compliance.
type Entidad struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Nombre        string `gorm:"not null" json:"nombre"`
	CIF           string `gorm:"uniqueIndex;not null" json:"cif"`
	Sector        string `gorm:"not null" json:"sector"` // deportivo, educativo, ocio, religioso, otro
	Direccion     string `json:"direccion"`
	Ciudad        string `json:"ciudad"`
	Telefono      string `json:"telefono"`
	EmailContacto string `gorm:"not null" json:"email_contacto"`
	NumeroMenores int    `gorm:"not null;default:0" json:"numero_menores"`
	Plan          string `gorm:"not null;default:plan_100" json:"plan"` // plan_100, plan_250, plan_500, plan_500_plus

	// Relationships
	Delegados []Delegado `gorm:"foreignKey:EntidadID" json:"-"`
}

// BeforeCreate hook to generate UUID
func (e *Entidad) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Entidad model
func (Entidad) TableName() string {
	return "entidades"
}
