package services

import (
	"bytes"
	"fmt"
	"strings"

	"custodia360/models"

	"github.com/xuri/excelize/v2"
)

// GenerateRegistroExcel exports the entity's incident register as an XLSX
// workbook: one row per case plus a count of logged actions.
func GenerateRegistroExcel(entidad *models.Entidad, incidencias []models.Incidencia) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Registro de incidencias"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Código", "Título", "Categoría", "Gravedad", "Prioridad", "Estado",
		"Fecha incidencia", "Fecha reporte", "Delegado asignado",
		"Confidencial", "Acciones registradas",
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		f.SetCellValue(sheet, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		f.SetCellStyle(sheet, "A1", last, headerStyle)
	}

	for i, inc := range incidencias {
		row := i + 2
		confidencial := "No"
		if inc.Confidencial {
			confidencial = "Sí"
		}

		values := []interface{}{
			inc.CodigoCaso,
			inc.Titulo,
			inc.Categoria,
			inc.Gravedad,
			inc.Prioridad,
			inc.Estado,
			inc.FechaIncidencia.Format("02/01/2006"),
			inc.FechaReporte.Format("02/01/2006"),
			inc.DelegadoAsignado,
			confidencial,
			len(inc.AccionesTomadas),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell: %w", err)
			}
			f.SetCellValue(sheet, cell, value)
		}
	}

	// Summary block below the register
	stats := ComputeStatistics(incidencias)
	summaryRow := len(incidencias) + 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("Entidad: %s (CIF %s)", entidad.Nombre, entidad.CIF))
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow+1), fmt.Sprintf("Total de casos: %d", stats.Total))
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow+2), fmt.Sprintf("Días promedio de resolución: %d", stats.DiasPromedioResolucion))

	var porEstado []string
	for estado, count := range stats.PorEstado {
		porEstado = append(porEstado, fmt.Sprintf("%s: %d", estado, count))
	}
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow+3), "Por estado: "+strings.Join(porEstado, ", "))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}
