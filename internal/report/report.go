// Package report renders a calculator document as a spreadsheet or a PDF.
package report

import (
	"fmt"
	"math"
	"time"

	"github.com/Simplici0/microsite/internal/calculator"
)

// Row is one labelled value of the report.
type Row struct {
	Group string
	Label string
	Value float64
	Unit  string
}

// Report is the export-ready view of a calculator document for its active
// mode.
type Report struct {
	Title       string
	ThemeKey    string
	Mode        calculator.Mode
	CreatedDate string
	Parameters  []Row
	Results     []Row
	Ingredients []calculator.Ingredient
}

var modeTitles = map[calculator.Mode]string{
	calculator.ModeTiles:       "Calculadora de producción: tejas",
	calculator.ModeCoextrusion: "Calculadora de producción: coextrusión",
}

// Build collects the parameters and computed results of doc's active mode.
func Build(themeKey string, doc calculator.Document) Report {
	mode := doc.ActiveMode
	variant, err := calculator.Lookup(mode)
	if err != nil {
		mode = calculator.ModeTiles
		variant = calculator.Tiles
	}
	params := doc.Params(mode)

	rep := Report{
		Title:       modeTitles[mode],
		ThemeKey:    themeKey,
		Mode:        mode,
		CreatedDate: time.Now().Format("2006-01-02"),
	}

	for _, d := range variant.Descriptors() {
		rep.Parameters = append(rep.Parameters, Row{
			Group: d.Group,
			Label: d.Label,
			Value: params.Value(d.Key),
			Unit:  d.Unit,
		})
	}

	metrics := variant.Compute(params)
	switch {
	case metrics.Tiles != nil:
		rep.Results = tileRows(metrics.Tiles)
	case metrics.Coextrusion != nil:
		rep.Results = coextrusionRows(metrics.Coextrusion)
		rep.Ingredients = append([]calculator.Ingredient(nil), params.Ingredients...)
	}
	return rep
}

func tileRows(m *calculator.TileMetrics) []Row {
	const prod, profit = "Producción", "Rentabilidad"
	return []Row{
		{prod, "Tejas por hora", m.Production.UnitsPerHour, "und/h"},
		{prod, "Tejas por minuto", m.Production.UnitsPerMinute, "und/min"},
		{prod, "Producción diaria", m.Production.DailyUnits, "und"},
		{prod, "Producción mensual", m.Production.MonthlyUnits, "und"},
		{prod, "Kilos mensuales", m.Production.MonthlyKg, "kg"},
		{prod, "Área por teja", m.Production.TileAreaM2, "m²"},
		{prod, "Área mensual", m.Production.MonthlyAreaM2, "m²"},
		{profit, "Costo materia prima", m.Profitability.MaterialCostTotal, "MXN"},
		{profit, "Costo empaque", m.Profitability.PackagingCostTotal, "MXN"},
		{profit, "Costo operativo", m.Profitability.OperatingCostTotal, "MXN"},
		{profit, "Costo total de producción", m.Profitability.TotalProductionCost, "MXN"},
		{profit, "Ingresos", m.Profitability.TotalRevenue, "MXN"},
		{profit, "Utilidad bruta", m.Profitability.GrossProfit, "MXN"},
		{profit, "Margen bruto", m.Profitability.GrossMarginPct, "%"},
		{profit, "Costo por teja", m.Profitability.CostPerUnit, "MXN"},
	}
}

func coextrusionRows(m *calculator.CoextrusionMetrics) []Row {
	const prod, costs, profit = "Producción", "Costos", "Rentabilidad"
	return []Row{
		{prod, "Producción por hora", m.OutputKgPerHour, "kg/h"},
		{prod, "Producción diaria", m.DailyProdKg, "kg"},
		{prod, "Producción mensual", m.MonthlyProdKg, "kg"},
		{prod, "Energía diaria", m.DailyEnergyKwh, "kWh"},
		{costs, "Costo de mezcla", m.MixtureCostPerKg, "MXN/kg"},
		{costs, "Porcentaje de mezcla", m.MixturePercent, "%"},
		{costs, "Costo energía diario", m.DailyEnergyCost, "MXN"},
		{costs, "Costo energía mensual", m.MonthlyEnergyCost, "MXN"},
		{costs, "Costo operativo mensual", m.MonthlyOpsCost, "MXN"},
		{costs, "Costo material mensual", m.MonthlyMaterial, "MXN"},
		{costs, "Costo total mensual", m.MonthlyTotalCost, "MXN"},
		{costs, "Energía por kg", m.EnergyCostPerKg, "MXN/kg"},
		{costs, "Operación por kg", m.OpsCostPerKg, "MXN/kg"},
		{profit, "Ingresos mensuales", m.MonthlyRevenue, "MXN"},
		{profit, "Utilidad bruta mensual", m.GrossProfitMonthly, "MXN"},
		{profit, "Margen", m.MarginPct, "%"},
	}
}

// formatValue prints whole numbers without decimals and everything else with
// two.
func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
