package services

import (
	"math"
	"sort"

	"custodia360/models"
)

// FiltroTodos is the sentinel value meaning "do not filter on this field".
const FiltroTodos = "todos"

// DefaultTimelineLimit is how many cases the timeline view shows.
const DefaultTimelineLimit = 10

// Filtros holds the three independent case filters. Each defaults to the
// FiltroTodos sentinel; an empty string is treated the same way.
type Filtros struct {
	Estado    string
	Categoria string
	Gravedad  string
}

// Estadisticas is the summary view computed over a case list. Grouped maps
// only contain keys for values actually present in the input.
type Estadisticas struct {
	Total                  int            `json:"total"`
	PorEstado              map[string]int `json:"por_estado"`
	PorCategoria           map[string]int `json:"por_categoria"`
	PorGravedad            map[string]int `json:"por_gravedad"`
	DiasPromedioResolucion int            `json:"dias_promedio_resolucion"`
}

func filtroActivo(valor string) bool {
	return valor != "" && valor != FiltroTodos
}

// ApplyFilters returns the cases whose estado, categoria and gravedad each
// equal the corresponding active filter (logical AND, exact equality). The
// input slice is not mutated.
func ApplyFilters(incidencias []models.Incidencia, filtros Filtros) []models.Incidencia {
	filtered := make([]models.Incidencia, 0, len(incidencias))
	for _, inc := range incidencias {
		if filtroActivo(filtros.Estado) && inc.Estado != filtros.Estado {
			continue
		}
		if filtroActivo(filtros.Categoria) && inc.Categoria != filtros.Categoria {
			continue
		}
		if filtroActivo(filtros.Gravedad) && inc.Gravedad != filtros.Gravedad {
			continue
		}
		filtered = append(filtered, inc)
	}
	return filtered
}

// ComputeStatistics derives the summary counts and the average resolution
// time from a case list. The average covers cases in estado resuelto or
// cerrado, measured as updated_at minus fecha_incidencia in whole days; the
// denominator keeps a max(1, n) floor so the empty subset yields 0 rather
// than a division by zero.
func ComputeStatistics(incidencias []models.Incidencia) Estadisticas {
	stats := Estadisticas{
		Total:        len(incidencias),
		PorEstado:    make(map[string]int),
		PorCategoria: make(map[string]int),
		PorGravedad:  make(map[string]int),
	}

	var totalDias float64
	resueltas := 0
	for _, inc := range incidencias {
		stats.PorEstado[inc.Estado]++
		stats.PorCategoria[inc.Categoria]++
		stats.PorGravedad[inc.Gravedad]++

		if inc.IsResueltaOCerrada() {
			totalDias += inc.UpdatedAt.Sub(inc.FechaIncidencia).Hours() / 24
			resueltas++
		}
	}

	denominador := resueltas
	if denominador < 1 {
		denominador = 1
	}
	stats.DiasPromedioResolucion = int(math.Round(totalDias / float64(denominador)))

	return stats
}

// TimelineEntry is one case on the timeline with its actions in
// chronological order.
type TimelineEntry struct {
	Incidencia models.Incidencia     `json:"incidencia"`
	Acciones   []models.AccionTomada `json:"acciones"`
}

// BuildTimeline takes the most recent limit cases (list order, newest first)
// and exposes each case's actions ordered by fecha_accion ascending. Cases
// appear newest-first while actions within a case run oldest-first.
func BuildTimeline(incidencias []models.Incidencia, limit int) []TimelineEntry {
	if limit <= 0 {
		limit = DefaultTimelineLimit
	}
	if limit > len(incidencias) {
		limit = len(incidencias)
	}

	timeline := make([]TimelineEntry, 0, limit)
	for _, inc := range incidencias[:limit] {
		acciones := make([]models.AccionTomada, len(inc.AccionesTomadas))
		copy(acciones, inc.AccionesTomadas)
		sort.SliceStable(acciones, func(a, b int) bool {
			return acciones[a].FechaAccion.Before(acciones[b].FechaAccion)
		})
		timeline = append(timeline, TimelineEntry{Incidencia: inc, Acciones: acciones})
	}
	return timeline
}
