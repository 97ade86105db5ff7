package calculator

import "math"

// Tile production parameter keys.
const (
	KeyTileWidthMm            = "tileWidthMm"
	KeyTileLengthMm           = "tileLengthMm"
	KeyTileWeightG            = "tileWeightG"
	KeyLineCapacityKgH        = "lineCapacityKgH"
	KeyLineEfficiencyPct      = "lineEfficiencyPct"
	KeyHoursPerShift          = "hoursPerShift"
	KeyTileDaysPerMonth       = "daysPerMonth"
	KeyRawMaterialCostPerUnit = "rawMaterialCostPerUnit"
	KeyPackagingCostPerUnit   = "packagingCostPerUnit"
	KeyOperatingCostPerHour   = "operatingCostPerHour"
	KeySalesPricePerUnit      = "salesPricePerUnit"
)

var tileDescriptors = []Descriptor{
	{Key: KeyTileWidthMm, Label: "Ancho de Teja", Unit: "mm", Group: "produccion", Min: 100, Max: 1200, Step: 10, Default: 900},
	{Key: KeyTileLengthMm, Label: "Largo de Teja", Unit: "mm", Group: "produccion", Min: 200, Max: 2000, Step: 10, Default: 1000},
	{Key: KeyTileWeightG, Label: "Peso por Teja", Unit: "gr", Group: "produccion", Min: 1000, Max: 10000, Step: 100, Default: 4500},
	{Key: KeyLineCapacityKgH, Label: "Capacidad de Producción", Unit: "kg/h", Group: "produccion", Min: 300, Max: 600, Step: 10, Default: 300, Continuous: true},
	{Key: KeyLineEfficiencyPct, Label: "Eficiencia de Línea", Unit: "%", Group: "produccion", Min: 50, Max: 100, Step: 1, Default: 90, Continuous: true},
	{Key: KeyHoursPerShift, Label: "Horas por Turno", Unit: "hrs", Group: "operacion", Min: 1, Max: 24, Step: 1, Default: 8},
	{Key: KeyTileDaysPerMonth, Label: "Días por Mes", Unit: "días", Group: "operacion", Min: 1, Max: 31, Step: 1, Default: 22},
	{Key: KeyRawMaterialCostPerUnit, Label: "Costo Materia Prima / teja", Unit: "MXN", Group: "costos", Min: 1, Max: 100, Step: 1, Default: 15},
	{Key: KeyPackagingCostPerUnit, Label: "Costo Empaque / teja", Unit: "MXN", Group: "costos", Min: 0, Max: 50, Step: 0.5, Default: 0},
	{Key: KeyOperatingCostPerHour, Label: "Costo Operativo / hora", Unit: "MXN", Group: "costos", Min: 50, Max: 1000, Step: 10, Default: 120},
	{Key: KeySalesPricePerUnit, Label: "Precio de Venta / teja", Unit: "MXN", Group: "costos", Min: 10, Max: 500, Step: 1, Default: 300},
}

// legacyTileKeys maps the keys of single-mode configurations saved before the
// multi-variant document existed.
var legacyTileKeys = map[string]string{
	"ancho_teja":           KeyTileWidthMm,
	"largo_teja":           KeyTileLengthMm,
	"peso_teja":            KeyTileWeightG,
	"capacidad_produccion": KeyLineCapacityKgH,
	"eficiencia_linea":     KeyLineEfficiencyPct,
	"horas_operacion":      KeyHoursPerShift,
	"dias_operacion":       KeyTileDaysPerMonth,
	"costo_mp":             KeyRawMaterialCostPerUnit,
	"costo_empaque":        KeyPackagingCostPerUnit,
	"costo_operativo":      KeyOperatingCostPerHour,
	"precio_venta":         KeySalesPricePerUnit,
}

// TileProduction holds the rate metrics, rounded to whole numbers for display.
type TileProduction struct {
	UnitsPerHour   float64 `json:"unitsPerHour"`
	UnitsPerMinute float64 `json:"unitsPerMinute"`
	DailyUnits     float64 `json:"dailyUnits"`
	MonthlyUnits   float64 `json:"monthlyUnits"`
	MonthlyKg      float64 `json:"monthlyKg"`
	TileAreaM2     float64 `json:"tileAreaM2"`
	MonthlyAreaM2  float64 `json:"monthlyAreaM2"`
}

// TileProfitability holds the monthly financial metrics in full precision.
type TileProfitability struct {
	MaterialCostTotal   float64 `json:"materialCostTotal"`
	PackagingCostTotal  float64 `json:"packagingCostTotal"`
	OperatingCostTotal  float64 `json:"operatingCostTotal"`
	TotalProductionCost float64 `json:"totalProductionCost"`
	TotalRevenue        float64 `json:"totalRevenue"`
	GrossProfit         float64 `json:"grossProfit"`
	GrossMarginPct      float64 `json:"grossMarginPct"`
	CostPerUnit         float64 `json:"costPerUnit"`
}

type TileMetrics struct {
	Production    TileProduction    `json:"production"`
	Profitability TileProfitability `json:"profitability"`
}

type tileVariant struct{}

func (tileVariant) Mode() Mode { return ModeTiles }

func (tileVariant) Descriptors() []Descriptor {
	return append([]Descriptor(nil), tileDescriptors...)
}

func (tileVariant) Defaults() ParameterSet {
	return ParameterSet{Values: defaultsFrom(tileDescriptors)}
}

func (tileVariant) Compute(p ParameterSet) Metrics {
	m := computeTiles(p)
	return Metrics{Mode: ModeTiles, Tiles: &m}
}

func computeTiles(p ParameterSet) TileMetrics {
	hours := p.Value(KeyHoursPerShift)
	days := p.Value(KeyTileDaysPerMonth)

	tileWeightKg := p.Value(KeyTileWeightG) / 1000
	effectiveCapacityKgH := p.Value(KeyLineCapacityKgH) * (p.Value(KeyLineEfficiencyPct) / 100)

	unitsPerHour := 0.0
	if tileWeightKg > 0 {
		unitsPerHour = effectiveCapacityKgH / tileWeightKg
	}
	unitsPerMinute := unitsPerHour / 60
	dailyUnits := unitsPerHour * hours
	monthlyUnits := dailyUnits * days
	monthlyKg := monthlyUnits * tileWeightKg

	tileAreaM2 := (p.Value(KeyTileWidthMm) / 1000) * (p.Value(KeyTileLengthMm) / 1000)

	// Cost math uses the unrounded monthly units.
	materialCostTotal := monthlyUnits * p.Value(KeyRawMaterialCostPerUnit)
	packagingCostTotal := monthlyUnits * p.Value(KeyPackagingCostPerUnit)
	operatingCostTotal := p.Value(KeyOperatingCostPerHour) * hours * days
	totalProductionCost := materialCostTotal + packagingCostTotal + operatingCostTotal
	totalRevenue := monthlyUnits * p.Value(KeySalesPricePerUnit)
	grossProfit := totalRevenue - totalProductionCost
	grossMarginPct := 0.0
	if totalRevenue > 0 {
		grossMarginPct = (grossProfit / totalRevenue) * 100
	}

	return TileMetrics{
		Production: TileProduction{
			UnitsPerHour:   math.Round(unitsPerHour),
			UnitsPerMinute: math.Round(unitsPerMinute),
			DailyUnits:     math.Round(dailyUnits),
			MonthlyUnits:   math.Round(monthlyUnits),
			MonthlyKg:      math.Round(monthlyKg),
			TileAreaM2:     tileAreaM2,
			MonthlyAreaM2:  math.Round(monthlyUnits * tileAreaM2),
		},
		Profitability: TileProfitability{
			MaterialCostTotal:   materialCostTotal,
			PackagingCostTotal:  packagingCostTotal,
			OperatingCostTotal:  operatingCostTotal,
			TotalProductionCost: totalProductionCost,
			TotalRevenue:        totalRevenue,
			GrossProfit:         grossProfit,
			GrossMarginPct:      grossMarginPct,
			CostPerUnit:         ratio(totalProductionCost, monthlyUnits),
		},
	}
}
