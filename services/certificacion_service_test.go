package services

import (
	"fmt"
	"testing"
	"time"

	"custodia360/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCertificacionTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.Entidad{}, &models.Delegado{}, &models.Certificacion{})
	return db
}

func TestGenerateCertNumber(t *testing.T) {
	db := setupCertificacionTestDB()
	year := time.Now().Year()

	t.Run("First Number Starts At One", func(t *testing.T) {
		numero, err := GenerateCertNumber(db)
		assert.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("CERT-%d-00001", year), numero)
	})

	t.Run("Sequence Increments Within The Year", func(t *testing.T) {
		db.Create(&models.Certificacion{
			EntidadID:  "entidad-1",
			DelegadoID: "delegado-1",
			Tipo:       models.CertificacionPrincipal,
			Numero:     fmt.Sprintf("CERT-%d-00003", year),
		})

		numero, err := GenerateCertNumber(db)
		assert.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("CERT-%d-00004", year), numero)
	})

	t.Run("Other Years Do Not Affect The Sequence", func(t *testing.T) {
		db.Create(&models.Certificacion{
			EntidadID:  "entidad-1",
			DelegadoID: "delegado-2",
			Tipo:       models.CertificacionPrincipal,
			Numero:     fmt.Sprintf("CERT-%d-09999", year-1),
		})

		numero, err := GenerateCertNumber(db)
		assert.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("CERT-%d-00004", year), numero)
	})
}

func TestIssueCertificacion(t *testing.T) {
	db := setupCertificacionTestDB()

	entidad := &models.Entidad{Nombre: "Club Deportivo", CIF: "B12345678", Sector: "deportivo", EmailContacto: "club@example.com"}
	db.Create(entidad)

	t.Run("Issues Certification And Marks Training Done", func(t *testing.T) {
		delegado := &models.Delegado{
			Nombre: "Maria Garcia", Email: "maria@example.com", Password: "hash",
			EntidadID: &entidad.ID, Rol: models.RolDelegadoPrincipal, IsActive: true,
		}
		db.Create(delegado)

		cert, err := IssueCertificacion(db, delegado)
		assert.NoError(t, err)
		assert.Equal(t, models.CertificacionPrincipal, cert.Tipo)
		assert.Equal(t, entidad.ID, cert.EntidadID)
		assert.NotEmpty(t, cert.Numero)
		assert.False(t, cert.Emitida.IsZero())
		assert.WithinDuration(t, cert.Emitida.Add(models.CertificacionValidez), cert.Caduca, time.Second)
		assert.True(t, cert.IsVigente())

		var refreshed models.Delegado
		db.First(&refreshed, "id = ?", delegado.ID)
		assert.True(t, refreshed.FormacionCompletada)
		assert.NotNil(t, refreshed.FormacionFecha)
	})

	t.Run("Suplente Gets Suplente Certification", func(t *testing.T) {
		delegado := &models.Delegado{
			Nombre: "Juan Perez", Email: "juan@example.com", Password: "hash",
			EntidadID: &entidad.ID, Rol: models.RolDelegadoSuplente, IsActive: true,
		}
		db.Create(delegado)

		cert, err := IssueCertificacion(db, delegado)
		assert.NoError(t, err)
		assert.Equal(t, models.CertificacionSuplente, cert.Tipo)
	})

	t.Run("Fails Without Entity", func(t *testing.T) {
		delegado := &models.Delegado{
			Nombre: "Admin", Email: "admin@example.com", Password: "hash",
			Rol: models.RolAdmin, IsActive: true,
		}
		db.Create(delegado)

		_, err := IssueCertificacion(db, delegado)
		assert.Error(t, err)
	})
}

func TestBuildCertificadoConfig(t *testing.T) {
	entidad := &models.Entidad{Nombre: "Club Deportivo"}
	delegado := &models.Delegado{Nombre: "Maria Garcia"}
	cert := &models.Certificacion{
		Tipo:    models.CertificacionPrincipal,
		Numero:  "CERT-2026-00001",
		Emitida: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Caduca:  time.Date(2028, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	doc := BuildCertificadoConfig(cert, delegado, entidad)
	assert.Equal(t, "Certificación de Delegado de Protección", doc.Titulo)
	assert.Equal(t, "Club Deportivo", doc.Subtitulo)
	assert.Equal(t, "CERT-2026-00001", doc.Version)
	assert.Equal(t, "01/02/2026", doc.Fecha)
	assert.Len(t, doc.Secciones, 2)
	assert.Contains(t, doc.Secciones[0].Contenido[0], "Maria Garcia")
	assert.Contains(t, doc.Secciones[1].Contenido[0], "31/01/2028")
}
