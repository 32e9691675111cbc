package services

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateDocumentDOCX(t *testing.T) {
	doc := DocumentConfig{
		Titulo:    "Plan de Protección Infantil",
		Subtitulo: "Club Deportivo",
		Version:   "2.1",
		Fecha:     "15/06/2026",
		Secciones: []Seccion{
			{Titulo: "Objeto", Contenido: []string{"Primer párrafo.", "Segundo párrafo."}},
		},
	}

	data, err := GenerateDocumentDOCX(doc)
	assert.NoError(t, err)
	assert.NotEmpty(t, data)

	// A DOCX file is a zip archive with a word/document.xml entry
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	assert.NoError(t, err)

	var names []string
	for _, f := range reader.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "word/document.xml")
}
