package services

import (
	"fmt"
	"html"
	"strings"
	"time"

	"custodia360/models"
)

// Seccion is one section of a generated document
type Seccion struct {
	Titulo    string
	Contenido []string
}

// DocumentConfig is the shared configuration accepted by the PDF and DOCX
// generators.
type DocumentConfig struct {
	Titulo    string
	Subtitulo string
	Version   string
	Fecha     string
	Secciones []Seccion
}

// BuildDocumentConfig assembles a document configuration from a stored
// template, stamping the entity name into the subtitle and today's date.
func BuildDocumentConfig(plantilla *models.PlantillaDocumento, entidad *models.Entidad) DocumentConfig {
	secciones := make([]Seccion, 0, len(plantilla.Secciones))
	for _, s := range plantilla.Secciones {
		secciones = append(secciones, Seccion{
			Titulo:    s.Titulo,
			Contenido: append([]string{}, s.Contenido...),
		})
	}

	subtitulo := plantilla.Subtitulo
	if subtitulo == "" {
		subtitulo = entidad.Nombre
	} else {
		subtitulo = fmt.Sprintf("%s - %s", subtitulo, entidad.Nombre)
	}

	return DocumentConfig{
		Titulo:    plantilla.Titulo,
		Subtitulo: subtitulo,
		Version:   plantilla.Version,
		Fecha:     time.Now().Format("02/01/2006"),
		Secciones: secciones,
	}
}

// RenderDocumentHTML renders a document configuration as a standalone HTML
// page with compliance document styles, ready for PDF printing.
func RenderDocumentHTML(doc DocumentConfig) string {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        @page {
            margin: 1in;
        }
        body {
            font-family: "Times New Roman", Times, serif;
            font-size: 12pt;
            line-height: 1.5;
            color: #000;
            text-align: justify;
        }
        h1 {
            font-size: 18pt;
            font-weight: bold;
            text-align: center;
            margin-bottom: 6pt;
        }
        .subtitle {
            font-size: 13pt;
            text-align: center;
            margin-bottom: 24pt;
        }
        .meta {
            font-size: 10pt;
            text-align: center;
            color: #444;
            margin-bottom: 36pt;
        }
        h2 {
            font-size: 14pt;
            font-weight: bold;
            margin-top: 18pt;
            margin-bottom: 12pt;
        }
        p {
            margin-bottom: 12pt;
        }
    </style>
</head>
<body>
`)

	b.WriteString("    <h1>" + html.EscapeString(doc.Titulo) + "</h1>\n")
	if doc.Subtitulo != "" {
		b.WriteString(`    <div class="subtitle">` + html.EscapeString(doc.Subtitulo) + "</div>\n")
	}
	b.WriteString(fmt.Sprintf(`    <div class="meta">Versión %s &middot; %s</div>`+"\n",
		html.EscapeString(doc.Version), html.EscapeString(doc.Fecha)))

	for i, seccion := range doc.Secciones {
		b.WriteString(fmt.Sprintf("    <h2>%d. %s</h2>\n", i+1, html.EscapeString(seccion.Titulo)))
		for _, parrafo := range seccion.Contenido {
			b.WriteString("    <p>" + html.EscapeString(parrafo) + "</p>\n")
		}
	}

	b.WriteString("</body>\n</html>")
	return b.String()
}
