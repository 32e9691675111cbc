package services

import (
	"fmt"
	"time"

	"custodia360/models"

	"gorm.io/gorm"
)

// CasoCodigoPrefix is the prefix for every case code.
const CasoCodigoPrefix = "CASO-"

// GenerateCaseCode generates the next sequential case code for an entity.
// Format: CASO-{SEQUENCE} with a zero-padded 4-digit sequence.
// Example: CASO-0042
func GenerateCaseCode(db *gorm.DB, entidadID string) (string, error) {
	// Find the highest sequence number for this entity
	var maxCase models.Incidencia
	err := db.Where("entidad_id = ? AND codigo_caso LIKE ?", entidadID, CasoCodigoPrefix+"%").
		Order("codigo_caso DESC").
		First(&maxCase).Error

	sequence := 1
	if err == nil {
		// Parse sequence from existing case code
		var parsedSeq int
		_, scanErr := fmt.Sscanf(maxCase.CodigoCaso, CasoCodigoPrefix+"%d", &parsedSeq)
		if scanErr == nil {
			sequence = parsedSeq + 1
		}
	} else if err != gorm.ErrRecordNotFound {
		return "", fmt.Errorf("failed to query max case code: %w", err)
	}

	return fmt.Sprintf("%s%04d", CasoCodigoPrefix, sequence), nil
}

// FallbackCaseCode derives a case code from the current timestamp. It is used
// when sequential generation fails: progress is preferred over strict
// uniqueness, so a colliding-but-valid code beats a blocked report.
func FallbackCaseCode(now time.Time) string {
	suffix := now.Unix() % 10000
	return fmt.Sprintf("%s%04d", CasoCodigoPrefix, suffix)
}
