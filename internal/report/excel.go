package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	reportSheet  = "Calculadora"
	mixtureSheet = "Mezcla"
)

// Excel renders rep as an XLSX workbook with a "Calculadora" sheet and, for
// coextrusion, a "Mezcla" sheet listing the ingredients.
func Excel(rep Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), reportSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	widths := map[string]float64{"A": 18, "B": 34, "C": 18, "D": 10}
	for col, w := range widths {
		if err := f.SetColWidth(reportSheet, col, col, w); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	numberStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, fmt.Errorf("create number style: %w", err)
	}

	if err := f.MergeCell(reportSheet, "A1", "D1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(reportSheet, "A1", sanitizeCell(rep.Title))
	f.SetCellStyle(reportSheet, "A1", "D1", titleStyle)
	f.SetCellValue(reportSheet, "A2", "Tema: "+sanitizeCell(rep.ThemeKey))
	f.SetCellValue(reportSheet, "C2", "Fecha: "+rep.CreatedDate)

	row := 4
	writeTable := func(heading string, rows []Row) {
		f.SetCellValue(reportSheet, fmt.Sprintf("A%d", row), heading)
		f.SetCellStyle(reportSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row), headerStyle)
		row++
		for _, r := range rows {
			f.SetCellValue(reportSheet, fmt.Sprintf("A%d", row), sanitizeCell(r.Group))
			f.SetCellValue(reportSheet, fmt.Sprintf("B%d", row), sanitizeCell(r.Label))
			f.SetCellValue(reportSheet, fmt.Sprintf("C%d", row), r.Value)
			f.SetCellStyle(reportSheet, fmt.Sprintf("C%d", row), fmt.Sprintf("C%d", row), numberStyle)
			f.SetCellValue(reportSheet, fmt.Sprintf("D%d", row), r.Unit)
			row++
		}
		row++
	}
	writeTable("Parámetros", rep.Parameters)
	writeTable("Resultados", rep.Results)

	if len(rep.Ingredients) > 0 {
		if _, err := f.NewSheet(mixtureSheet); err != nil {
			return nil, fmt.Errorf("create mixture sheet: %w", err)
		}
		for i, h := range []string{"Ingrediente", "%", "Costo/kg"} {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(mixtureSheet, cell, h)
		}
		f.SetCellStyle(mixtureSheet, "A1", "C1", headerStyle)
		for i, ing := range rep.Ingredients {
			r := i + 2
			f.SetCellValue(mixtureSheet, fmt.Sprintf("A%d", r), sanitizeCell(ing.Name))
			f.SetCellValue(mixtureSheet, fmt.Sprintf("B%d", r), ing.Percent)
			f.SetCellValue(mixtureSheet, fmt.Sprintf("C%d", r), ing.CostPerKg)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeCell prefixes values Excel would read as formulas.
func sanitizeCell(s string) string {
	if s == "" {
		return s
	}
	if strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}
