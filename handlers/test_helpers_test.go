package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"custodia360/config"
	"custodia360/db"
	"custodia360/models"
	"custodia360/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests while allowing shared cache for async tasks
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	// Initialize Storage for tests if not already set
	if services.Storage == nil {
		services.Storage = services.NewLocalStorage("tmp/test_uploads")
	}

	err = testDB.AutoMigrate(
		&models.Entidad{},
		&models.Delegado{},
		&models.Session{},
		&models.Incidencia{},
		&models.AccionTomada{},
		&models.Certificacion{},
		&models.PlantillaDocumento{},
	)
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", &config.Config{
		Environment:   "test",
		EmailTestMode: true,
		AppURL:        "http://localhost:8080",
	})

	return e, c, rec
}

func createTestEntidad(t *testing.T, database *gorm.DB) (*models.Entidad, *models.Delegado) {
	entidad := &models.Entidad{
		Nombre:        "Club Deportivo " + uuid.New().String()[:8],
		CIF:           "B" + uuid.New().String()[:8],
		Sector:        "deportivo",
		EmailContacto: "club@example.com",
	}
	assert.NoError(t, database.Create(entidad).Error)

	delegado := &models.Delegado{
		Nombre:    "Maria Garcia",
		Email:     uuid.New().String()[:8] + "@example.com",
		Password:  "hash",
		EntidadID: &entidad.ID,
		Rol:       models.RolDelegadoPrincipal,
		IsActive:  true,
	}
	assert.NoError(t, database.Create(delegado).Error)

	return entidad, delegado
}

func asDelegado(c echo.Context, delegado *models.Delegado, entidad *models.Entidad) {
	c.Set("delegado", delegado)
	c.Set("entidad", entidad)
}
