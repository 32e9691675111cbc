package services

import (
	"bytes"
	"fmt"

	"github.com/fumiama/go-docx"
)

// GenerateDocumentDOCX renders a document configuration to a DOCX file.
// It mirrors the structure GenerateDocumentPDF produces: title, subtitle,
// version line, then numbered sections with their paragraphs.
func GenerateDocumentDOCX(doc DocumentConfig) ([]byte, error) {
	w := docx.New().WithDefaultTheme()

	title := w.AddParagraph().Justification("center")
	title.AddText(doc.Titulo).Size("36").Bold()

	if doc.Subtitulo != "" {
		subtitle := w.AddParagraph().Justification("center")
		subtitle.AddText(doc.Subtitulo).Size("26")
	}

	meta := w.AddParagraph().Justification("center")
	meta.AddText(fmt.Sprintf("Versión %s · %s", doc.Version, doc.Fecha)).Size("20")

	w.AddParagraph()

	for i, seccion := range doc.Secciones {
		heading := w.AddParagraph()
		heading.AddText(fmt.Sprintf("%d. %s", i+1, seccion.Titulo)).Size("28").Bold()

		for _, parrafo := range seccion.Contenido {
			w.AddParagraph().AddText(parrafo).Size("24")
		}
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate DOCX: %w", err)
	}
	return buf.Bytes(), nil
}
