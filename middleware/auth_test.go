package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

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
	testDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	err = testDB.AutoMigrate(&models.Entidad{}, &models.Delegado{}, &models.Session{}, &models.Incidencia{})
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	// Set the global DB variable used by middleware
	db.DB = testDB
	return testDB
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "success")
}

func TestRequireAuth(t *testing.T) {
	testDB := setupTestDB(t)
	e := echo.New()

	entidad := models.Entidad{Nombre: "Club Deportivo", CIF: "B12345678", Sector: "deportivo", EmailContacto: "club@example.com"}
	testDB.Create(&entidad)

	delegado := models.Delegado{
		ID:        uuid.New().String(),
		Nombre:    "Maria Garcia",
		Email:     "maria@example.com",
		Password:  "hash",
		EntidadID: &entidad.ID,
		Rol:       models.RolDelegadoPrincipal,
		IsActive:  true,
	}
	testDB.Create(&delegado)

	session, _ := services.CreateSession(testDB, delegado.ID, entidad.ID, "127.0.0.1", "test-agent")

	t.Run("ValidSession", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.Token})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := RequireAuth()(okHandler)(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, delegado.ID, GetCurrentDelegado(c).ID)
		assert.Equal(t, entidad.ID, GetCurrentEntidad(c).ID)
	})

	t.Run("NoCookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/incidencias", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := RequireAuth()(okHandler)(c)
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, err.(*echo.HTTPError).Code)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/incidencias", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "invalid-token"})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := RequireAuth()(okHandler)(c)
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, err.(*echo.HTTPError).Code)
	})

	t.Run("InactiveDelegado", func(t *testing.T) {
		inactive := models.Delegado{
			ID:       uuid.New().String(),
			Nombre:   "Inactiva",
			Email:    "inactiva@example.com",
			Password: "hash",
			Rol:      models.RolDelegadoPrincipal,
		}
		testDB.Create(&inactive)
		// Force IsActive to false because the column default is true
		testDB.Model(&inactive).Update("is_active", false)

		inactiveSession, _ := services.CreateSession(testDB, inactive.ID, "", "127.0.0.1", "test-agent")

		req := httptest.NewRequest(http.MethodGet, "/api/incidencias", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: inactiveSession.Token})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := RequireAuth()(okHandler)(c)
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, err.(*echo.HTTPError).Code)
	})
}

func TestRequireRol(t *testing.T) {
	e := echo.New()

	newContext := func(delegado *models.Delegado) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if delegado != nil {
			c.Set(ContextKeyDelegado, delegado)
		}
		return c
	}

	t.Run("AllowedRole", func(t *testing.T) {
		c := newContext(&models.Delegado{Rol: models.RolDelegadoPrincipal})

		err := RequireRol(models.RolDelegadoPrincipal, models.RolDelegadoSuplente)(okHandler)(c)
		assert.NoError(t, err)
	})

	t.Run("ForbiddenRole", func(t *testing.T) {
		c := newContext(&models.Delegado{Rol: models.RolDelegadoSuplente})

		err := RequireRol(models.RolAdmin)(okHandler)(c)
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, err.(*echo.HTTPError).Code)
	})

	t.Run("NotAuthenticated", func(t *testing.T) {
		c := newContext(nil)

		err := RequireRol(models.RolAdmin)(okHandler)(c)
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, err.(*echo.HTTPError).Code)
	})
}

func TestRequireEntidad(t *testing.T) {
	e := echo.New()

	newContext := func(delegado *models.Delegado) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if delegado != nil {
			c.Set(ContextKeyDelegado, delegado)
		}
		return c
	}

	t.Run("WithEntity", func(t *testing.T) {
		entidadID := "entidad-1"
		c := newContext(&models.Delegado{EntidadID: &entidadID})

		err := RequireEntidad()(okHandler)(c)
		assert.NoError(t, err)
	})

	t.Run("WithoutEntity", func(t *testing.T) {
		c := newContext(&models.Delegado{})

		err := RequireEntidad()(okHandler)(c)
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, err.(*echo.HTTPError).Code)
	})
}

func TestGetEntidadScopedQuery(t *testing.T) {
	testDB := setupTestDB(t)
	e := echo.New()

	entidadID := "entidad-1"
	testDB.Create(&models.Incidencia{
		EntidadID: entidadID, CodigoCaso: "CASO-0001",
		Categoria: models.CategoriaOtros, Gravedad: models.GravedadBaja,
		Estado: models.EstadoAbierto, Titulo: "propio", Descripcion: "d",
	})
	testDB.Create(&models.Incidencia{
		EntidadID: "entidad-2", CodigoCaso: "CASO-0001",
		Categoria: models.CategoriaOtros, Gravedad: models.GravedadBaja,
		Estado: models.EstadoAbierto, Titulo: "ajeno", Descripcion: "d",
	})

	newContext := func(delegado *models.Delegado) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if delegado != nil {
			c.Set(ContextKeyDelegado, delegado)
		}
		return c
	}

	t.Run("ScopesToDelegateEntity", func(t *testing.T) {
		c := newContext(&models.Delegado{EntidadID: &entidadID})

		var incidencias []models.Incidencia
		err := GetEntidadScopedQuery(c, testDB).Find(&incidencias).Error
		assert.NoError(t, err)
		assert.Len(t, incidencias, 1)
		assert.Equal(t, "propio", incidencias[0].Titulo)
	})

	t.Run("MatchesNothingWithoutEntity", func(t *testing.T) {
		c := newContext(&models.Delegado{})

		var incidencias []models.Incidencia
		err := GetEntidadScopedQuery(c, testDB).Find(&incidencias).Error
		assert.NoError(t, err)
		assert.Empty(t, incidencias)
	})
}
