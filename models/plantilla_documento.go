package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeccionPlantilla is one section of a document template: a heading plus its
// paragraphs.
type SeccionPlantilla struct {
	Titulo    string   `json:"titulo"`
	Contenido []string `json:"contenido"`
}

// PlantillaDocumento holds a LOPIVI document template (plan de protección,
// código de conducta, protocolo de actuación...). Section bodies are static
// data rendered through the PDF/DOCX generators.
type PlantillaDocumento struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Clave     string             `gorm:"uniqueIndex;not null" json:"clave"` // plan_proteccion, codigo_conducta, ...
	Titulo    string             `gorm:"not null" json:"titulo"`
	Subtitulo string             `json:"subtitulo"`
	Version   string             `gorm:"not null;default:1.0" json:"version"`
	Secciones []SeccionPlantilla `gorm:"serializer:json;type:text" json:"secciones"`
	IsActive  bool               `gorm:"not null;default:true" json:"is_active"`
}

// BeforeCreate hook to generate UUID
func (p *PlantillaDocumento) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for PlantillaDocumento model
func (PlantillaDocumento) TableName() string {
	return "plantillas_documento"
}
