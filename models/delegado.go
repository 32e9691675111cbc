package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Delegado role constants
const (
	RolAdmin             = "admin"
	RolDelegadoPrincipal = "principal"
	RolDelegadoSuplente  = "suplente"
)

// Delegado represents a staff account: the protection delegate (principal or
// suplente) of an entity, or a platform admin.
type Delegado struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Nombre      string     `gorm:"not null" json:"nombre"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	Telefono    string     `json:"telefono"`
	EntidadID   *string    `gorm:"type:uuid;index" json:"entidad_id"` // Nullable for platform admins
	Rol         string     `gorm:"not null;default:principal" json:"rol"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`

	// Training progress (wizard state lives server-side, not in the browser)
	FormacionCompletada bool       `gorm:"not null;default:false" json:"formacion_completada"`
	FormacionFecha      *time.Time `json:"formacion_fecha,omitempty"`

	// Relationships
	Entidad *Entidad `gorm:"foreignKey:EntidadID" json:"entidad,omitempty"`
}

// BeforeCreate hook to generate UUID
func (d *Delegado) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

// HasEntidad checks if the delegate belongs to an entity
func (d *Delegado) HasEntidad() bool {
	return d.EntidadID != nil && *d.EntidadID != ""
}

// TableName specifies the table name for Delegado model
func (Delegado) TableName() string {
	return "delegados"
}

// IsValidRol checks if the role is valid
func IsValidRol(rol string) bool {
	return rol == RolAdmin || rol == RolDelegadoPrincipal || rol == RolDelegadoSuplente
}
