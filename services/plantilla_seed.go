package services

import (
	"fmt"
	"log"

	"custodia360/models"

	"gorm.io/gorm"
)

// SeedPlantillas creates the default LOPIVI document templates. Existing
// templates (matched by clave) are left untouched so local edits survive
// restarts.
func SeedPlantillas(db *gorm.DB) error {
	plantillas := []models.PlantillaDocumento{
		{
			Clave:     "plan_proteccion",
			Titulo:    "Plan de Protección Infantil",
			Subtitulo: "Documento marco LOPIVI",
			Version:   "2.1",
			Secciones: []models.SeccionPlantilla{
				{
					Titulo: "Objeto y ámbito de aplicación",
					Contenido: []string{
						"El presente Plan de Protección establece las medidas organizativas y de prevención frente a cualquier forma de violencia sobre la infancia y la adolescencia, en cumplimiento de la Ley Orgánica 8/2021 (LOPIVI).",
						"Su ámbito de aplicación alcanza a todo el personal, voluntariado y colaboradores de la entidad que mantengan contacto habitual con menores de edad.",
					},
				},
				{
					Titulo: "Delegado de Protección",
					Contenido: []string{
						"La entidad designa un Delegado de Protección principal y, en su caso, un suplente, como figura de referencia para la prevención, detección y notificación de situaciones de riesgo.",
						"El Delegado de Protección recibe formación especializada y mantiene su certificación vigente durante todo el periodo de ejercicio.",
					},
				},
				{
					Titulo: "Protocolos de actuación",
					Contenido: []string{
						"Toda sospecha o revelación de una situación de violencia se registra como incidencia, se clasifica por categoría y gravedad, y se documentan las acciones tomadas hasta su resolución.",
						"Cuando la gravedad lo requiera, el Delegado de Protección comunica los hechos a las autoridades competentes y a las familias conforme al protocolo establecido.",
					},
				},
			},
			IsActive: true,
		},
		{
			Clave:     "codigo_conducta",
			Titulo:    "Código de Conducta",
			Subtitulo: "Normas de relación con menores",
			Version:   "1.4",
			Secciones: []models.SeccionPlantilla{
				{
					Titulo: "Principios generales",
					Contenido: []string{
						"Todas las personas adultas de la entidad se relacionan con los menores desde el respeto, el buen trato y el interés superior del menor.",
						"Queda prohibida cualquier conducta que suponga violencia física o psicológica, trato degradante, o contacto inapropiado.",
					},
				},
				{
					Titulo: "Conductas de obligado cumplimiento",
					Contenido: []string{
						"Evitar quedarse a solas con un menor en espacios cerrados sin visibilidad; cuando sea imprescindible, informar previamente al Delegado de Protección.",
						"No mantener comunicaciones privadas con menores por canales personales al margen de los canales oficiales de la entidad.",
					},
				},
				{
					Titulo: "Régimen disciplinario",
					Contenido: []string{
						"El incumplimiento de este código se comunica al Delegado de Protección y puede dar lugar a medidas disciplinarias internas, sin perjuicio de las responsabilidades legales que correspondan.",
					},
				},
			},
			IsActive: true,
		},
		{
			Clave:     "protocolo_actuacion",
			Titulo:    "Protocolo de Actuación ante Situaciones de Violencia",
			Subtitulo: "Procedimiento de respuesta",
			Version:   "1.2",
			Secciones: []models.SeccionPlantilla{
				{
					Titulo: "Detección y comunicación",
					Contenido: []string{
						"Cualquier miembro de la entidad que detecte indicios de violencia sobre un menor lo comunica de inmediato al Delegado de Protección.",
						"El Delegado de Protección registra la incidencia con su categoría, gravedad y prioridad, y asume la coordinación del caso.",
					},
				},
				{
					Titulo: "Valoración y medidas",
					Contenido: []string{
						"El Delegado de Protección valora la situación, adopta las medidas cautelares necesarias para la protección inmediata del menor y documenta cada acción tomada.",
						"En situaciones de gravedad alta o crítica se contacta con los servicios sociales, fuerzas de seguridad o fiscalía de menores según corresponda.",
					},
				},
				{
					Titulo: "Seguimiento y cierre",
					Contenido: []string{
						"El caso permanece abierto hasta que las acciones acordadas se hayan completado y su resultado quede documentado; entonces se marca como resuelto y posteriormente cerrado.",
						"Los casos cerrados se archivan y se conservan como registro histórico a disposición de las autoridades.",
					},
				},
			},
			IsActive: true,
		},
	}

	for _, plantilla := range plantillas {
		var existing models.PlantillaDocumento
		err := db.Where("clave = ?", plantilla.Clave).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("failed to check plantilla %s: %w", plantilla.Clave, err)
		}
		if err := db.Create(&plantilla).Error; err != nil {
			return fmt.Errorf("failed to seed plantilla %s: %w", plantilla.Clave, err)
		}
		log.Printf("Seeded document template: %s", plantilla.Clave)
	}

	return nil
}
