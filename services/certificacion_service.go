package services

import (
	"fmt"
	"time"

	"custodia360/models"

	"gorm.io/gorm"
)

// GenerateCertNumber generates a unique certification number.
// Format: CERT-{YEAR}-{SEQUENCE}
// Example: CERT-2026-00042
func GenerateCertNumber(db *gorm.DB) (string, error) {
	currentYear := time.Now().Year()
	prefix := fmt.Sprintf("CERT-%d-", currentYear)

	var maxCert models.Certificacion
	err := db.Where("numero LIKE ?", prefix+"%").
		Order("numero DESC").
		First(&maxCert).Error

	sequence := 1
	if err == nil {
		var parsedSeq int
		_, scanErr := fmt.Sscanf(maxCert.Numero, prefix+"%d", &parsedSeq)
		if scanErr == nil {
			sequence = parsedSeq + 1
		}
	} else if err != gorm.ErrRecordNotFound {
		return "", fmt.Errorf("failed to query max cert number: %w", err)
	}

	return fmt.Sprintf("%s%05d", prefix, sequence), nil
}

// IssueCertificacion marks the delegate's training as completed and creates
// the certification record with its two-year validity window.
func IssueCertificacion(db *gorm.DB, delegado *models.Delegado) (*models.Certificacion, error) {
	if !delegado.HasEntidad() {
		return nil, fmt.Errorf("delegate %s has no entity", delegado.ID)
	}

	numero, err := GenerateCertNumber(db)
	if err != nil {
		return nil, err
	}

	tipo := models.CertificacionPrincipal
	if delegado.Rol == models.RolDelegadoSuplente {
		tipo = models.CertificacionSuplente
	}

	cert := &models.Certificacion{
		EntidadID:  *delegado.EntidadID,
		DelegadoID: delegado.ID,
		Tipo:       tipo,
		Numero:     numero,
	}

	now := time.Now()
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cert).Error; err != nil {
			return fmt.Errorf("failed to create certificacion: %w", err)
		}
		return tx.Model(delegado).Updates(map[string]interface{}{
			"formacion_completada": true,
			"formacion_fecha":      now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return cert, nil
}

// BuildCertificadoConfig assembles the certificate document for PDF rendering
func BuildCertificadoConfig(cert *models.Certificacion, delegado *models.Delegado, entidad *models.Entidad) DocumentConfig {
	tipoLabel := "Delegado/a de Protección Principal"
	if cert.Tipo == models.CertificacionSuplente {
		tipoLabel = "Delegado/a de Protección Suplente"
	}

	return DocumentConfig{
		Titulo:    "Certificación de Delegado de Protección",
		Subtitulo: entidad.Nombre,
		Version:   cert.Numero,
		Fecha:     cert.Emitida.Format("02/01/2006"),
		Secciones: []Seccion{
			{
				Titulo: "Certificación",
				Contenido: []string{
					fmt.Sprintf("Custodia360 certifica que %s ha completado la formación especializada en protección integral a la infancia y la adolescencia frente a la violencia (LOPIVI).", delegado.Nombre),
					fmt.Sprintf("En consecuencia, queda acreditado/a para ejercer como %s de la entidad %s.", tipoLabel, entidad.Nombre),
				},
			},
			{
				Titulo: "Vigencia",
				Contenido: []string{
					fmt.Sprintf("Certificación número %s, emitida el %s y válida hasta el %s.",
						cert.Numero,
						cert.Emitida.Format("02/01/2006"),
						cert.Caduca.Format("02/01/2006")),
				},
			},
		},
	}
}
