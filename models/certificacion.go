package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Certificacion tipo constants
const (
	CertificacionPrincipal = "delegado_principal"
	CertificacionSuplente  = "delegado_suplente"
)

// CertificacionValidez is how long a delegate certification remains valid.
const CertificacionValidez = 2 * 365 * 24 * time.Hour

// Certificacion records a delegate's LOPIVI training certification.
type Certificacion struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	EntidadID  string `gorm:"type:uuid;not null;index" json:"entidad_id"`
	DelegadoID string `gorm:"type:uuid;not null;index" json:"delegado_id"`

	Tipo   string `gorm:"not null" json:"tipo"`
	Numero string `gorm:"uniqueIndex;not null" json:"numero"` // CERT-{YEAR}-{SEQ}

	Emitida time.Time `gorm:"not null" json:"emitida"`
	Caduca  time.Time `gorm:"not null;index" json:"caduca"`

	// Renewal reminder tracking
	RecordatorioEnviadoAt *time.Time `json:"recordatorio_enviado_at,omitempty"`

	// Relationships
	Entidad  *Entidad  `gorm:"foreignKey:EntidadID" json:"entidad,omitempty"`
	Delegado *Delegado `gorm:"foreignKey:DelegadoID" json:"delegado,omitempty"`
}

// BeforeCreate hook to generate UUID and default validity window
func (c *Certificacion) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Emitida.IsZero() {
		c.Emitida = time.Now()
	}
	if c.Caduca.IsZero() {
		c.Caduca = c.Emitida.Add(CertificacionValidez)
	}
	return nil
}

// TableName specifies the table name for Certificacion model
func (Certificacion) TableName() string {
	return "certificaciones"
}

// IsVigente reports whether the certification is currently valid
func (c *Certificacion) IsVigente() bool {
	return time.Now().Before(c.Caduca)
}
