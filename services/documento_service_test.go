package services

import (
	"testing"
	"time"

	"custodia360/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildDocumentConfig(t *testing.T) {
	entidad := &models.Entidad{Nombre: "Club Deportivo"}
	plantilla := &models.PlantillaDocumento{
		Clave:   "plan_proteccion",
		Titulo:  "Plan de Protección Infantil",
		Version: "2.1",
		Secciones: []models.SeccionPlantilla{
			{Titulo: "Objeto", Contenido: []string{"Primer párrafo.", "Segundo párrafo."}},
			{Titulo: "Ámbito", Contenido: []string{"Tercer párrafo."}},
		},
	}

	t.Run("Stamps Entity Name And Date", func(t *testing.T) {
		doc := BuildDocumentConfig(plantilla, entidad)

		assert.Equal(t, "Plan de Protección Infantil", doc.Titulo)
		assert.Equal(t, "Club Deportivo", doc.Subtitulo)
		assert.Equal(t, "2.1", doc.Version)
		assert.Equal(t, time.Now().Format("02/01/2006"), doc.Fecha)
		assert.Len(t, doc.Secciones, 2)
		assert.Equal(t, []string{"Primer párrafo.", "Segundo párrafo."}, doc.Secciones[0].Contenido)
	})

	t.Run("Keeps Template Subtitle When Present", func(t *testing.T) {
		conSubtitulo := *plantilla
		conSubtitulo.Subtitulo = "Documento interno"

		doc := BuildDocumentConfig(&conSubtitulo, entidad)
		assert.Equal(t, "Documento interno - Club Deportivo", doc.Subtitulo)
	})

	t.Run("Copies Sections Instead Of Aliasing", func(t *testing.T) {
		doc := BuildDocumentConfig(plantilla, entidad)
		doc.Secciones[0].Contenido[0] = "modificado"

		assert.Equal(t, "Primer párrafo.", plantilla.Secciones[0].Contenido[0])
	})
}

func TestRenderDocumentHTML(t *testing.T) {
	doc := DocumentConfig{
		Titulo:    "Plan de Protección Infantil",
		Subtitulo: "Club Deportivo",
		Version:   "2.1",
		Fecha:     "15/06/2026",
		Secciones: []Seccion{
			{Titulo: "Objeto", Contenido: []string{"Primer párrafo."}},
			{Titulo: "Ámbito", Contenido: []string{"Segundo párrafo.", "Tercer párrafo."}},
		},
	}

	html := RenderDocumentHTML(doc)

	assert.Contains(t, html, "<h1>Plan de Protección Infantil</h1>")
	assert.Contains(t, html, "Club Deportivo")
	assert.Contains(t, html, "Versión 2.1")
	assert.Contains(t, html, "<h2>1. Objeto</h2>")
	assert.Contains(t, html, "<h2>2. Ámbito</h2>")
	assert.Contains(t, html, "<p>Tercer párrafo.</p>")

	t.Run("Escapes Markup In Content", func(t *testing.T) {
		doc := DocumentConfig{
			Titulo:    "Titulo <b>negrita</b>",
			Secciones: []Seccion{{Titulo: "S", Contenido: []string{"a < b"}}},
		}

		html := RenderDocumentHTML(doc)
		assert.NotContains(t, html, "<b>negrita</b>")
		assert.Contains(t, html, "&lt;b&gt;negrita&lt;/b&gt;")
		assert.Contains(t, html, "a &lt; b")
	})

	t.Run("Omits Subtitle When Empty", func(t *testing.T) {
		doc := DocumentConfig{Titulo: "Solo título"}
		html := RenderDocumentHTML(doc)
		assert.NotContains(t, html, `class="subtitle"`)
	})
}
