package jobs

import (
	"log"
	"time"

	"custodia360/config"
	"custodia360/models"
	"custodia360/services"

	"gorm.io/gorm"
)

// RenewalReminderWindow is how far ahead of expiry the reminder goes out.
const RenewalReminderWindow = 30 * 24 * time.Hour

// SendRenewalReminders emails delegates whose certification expires within
// the reminder window and has not been reminded yet.
func SendRenewalReminders(database *gorm.DB, cfg *config.Config) {
	log.Println("Starting certification renewal reminder job...")

	now := time.Now()
	windowEnd := now.Add(RenewalReminderWindow)

	var certs []models.Certificacion
	err := database.Preload("Delegado").Preload("Entidad").
		Where("caduca > ? AND caduca <= ?", now, windowEnd).
		Where("recordatorio_enviado_at IS NULL").
		Find(&certs).Error
	if err != nil {
		log.Printf("Error fetching certifications for reminders: %v", err)
		return
	}

	log.Printf("Found %d certifications close to expiry", len(certs))

	for _, cert := range certs {
		if cert.Delegado == nil || cert.Entidad == nil {
			log.Printf("Skipping certification %s: missing delegate or entity", cert.ID)
			continue
		}

		email := services.BuildRecordatorioRenovacionEmail(cert.Delegado.Email, services.RecordatorioRenovacionEmailData{
			NombreDelegado: cert.Delegado.Nombre,
			NombreEntidad:  cert.Entidad.Nombre,
			Numero:         cert.Numero,
			Caduca:         cert.Caduca.Format("02/01/2006"),
			RenovarURL:     cfg.AppURL + "/renovacion",
		})

		if err := services.SendEmail(cfg, email); err != nil {
			log.Printf("Failed to send renewal reminder for certification %s: %v", cert.ID, err)
			continue
		}

		sentAt := time.Now()
		database.Model(&cert).Update("recordatorio_enviado_at", sentAt)
		log.Printf("Sent renewal reminder for certification %s", cert.Numero)
	}

	log.Println("Certification renewal reminder job completed")
}
