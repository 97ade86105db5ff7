package calculator

// Coextrusion film parameter keys.
const (
	KeyWidthMm          = "widthMm"
	KeyThicknessMicrons = "thicknessMicrons"
	KeySpeedMPerMin     = "speedMPerMin"
	KeyDensityGCm3      = "densityGCm3"
	KeyPowerKw          = "powerKw"
	KeyCostPerKwh       = "costPerKwh"
	KeyOpsCostPerHour   = "opsCostPerHour"
	KeySalesPricePerKg  = "salesPricePerKg"
	KeyHoursPerDay      = "hoursPerDay"
	KeyFilmDaysPerMonth = "daysPerMonth"
)

var coextrusionDescriptors = []Descriptor{
	{Key: KeyWidthMm, Label: "Ancho de Película", Unit: "mm", Group: "maquina", Min: 200, Max: 3000, Step: 10, Default: 1200},
	{Key: KeyThicknessMicrons, Label: "Espesor", Unit: "µm", Group: "maquina", Min: 5, Max: 200, Step: 1, Default: 20},
	{Key: KeySpeedMPerMin, Label: "Velocidad de Línea", Unit: "m/min", Group: "maquina", Min: 5, Max: 300, Step: 1, Default: 90, Continuous: true},
	{Key: KeyDensityGCm3, Label: "Densidad de la Mezcla", Unit: "g/cm³", Group: "maquina", Min: 0.85, Max: 1.5, Step: 0.01, Default: 0.92},
	{Key: KeyPowerKw, Label: "Potencia Instalada", Unit: "kW", Group: "energia", Min: 10, Max: 1000, Step: 5, Default: 180},
	{Key: KeyCostPerKwh, Label: "Costo por kWh", Unit: "MXN", Group: "energia", Min: 0, Max: 20, Step: 0.1, Default: 2.8},
	{Key: KeyOpsCostPerHour, Label: "Costo Operativo / hora", Unit: "MXN", Group: "costos", Min: 0, Max: 5000, Step: 10, Default: 350},
	{Key: KeySalesPricePerKg, Label: "Precio de Venta / kg", Unit: "MXN", Group: "costos", Min: 0, Max: 500, Step: 0.5, Default: 52},
	{Key: KeyHoursPerDay, Label: "Horas por Día", Unit: "hrs", Group: "operacion", Min: 1, Max: 24, Step: 1, Default: 24},
	{Key: KeyFilmDaysPerMonth, Label: "Días por Mes", Unit: "días", Group: "operacion", Min: 1, Max: 31, Step: 1, Default: 26},
}

var defaultIngredients = []Ingredient{
	{Name: "LDPE", Percent: 60, CostPerKg: 32},
	{Name: "LLDPE", Percent: 30, CostPerKg: 35},
	{Name: "Masterbatch", Percent: 10, CostPerKg: 80},
}

type CoextrusionMetrics struct {
	MixtureCostPerKg   float64 `json:"mixtureCostPerKg"`
	MixturePercent     float64 `json:"mixturePercent"`
	OutputKgPerHour    float64 `json:"outputKgPerHour"`
	DailyProdKg        float64 `json:"dailyProdKg"`
	MonthlyProdKg      float64 `json:"monthlyProdKg"`
	DailyEnergyKwh     float64 `json:"dailyEnergyKwh"`
	DailyEnergyCost    float64 `json:"dailyEnergyCost"`
	MonthlyOpsCost     float64 `json:"monthlyOpsCost"`
	MonthlyMaterial    float64 `json:"monthlyMaterialCost"`
	MonthlyEnergyCost  float64 `json:"monthlyEnergyCost"`
	MonthlyTotalCost   float64 `json:"monthlyTotalCost"`
	MonthlyRevenue     float64 `json:"monthlyRevenue"`
	GrossProfitMonthly float64 `json:"grossProfitMonthly"`
	MarginPct          float64 `json:"marginPct"`
	EnergyCostPerKg    float64 `json:"energyCostPerKg"`
	OpsCostPerKg       float64 `json:"opsCostPerKg"`
}

type coextrusionVariant struct{}

func (coextrusionVariant) Mode() Mode { return ModeCoextrusion }

func (coextrusionVariant) Descriptors() []Descriptor {
	return append([]Descriptor(nil), coextrusionDescriptors...)
}

func (coextrusionVariant) Defaults() ParameterSet {
	return ParameterSet{
		Values:      defaultsFrom(coextrusionDescriptors),
		Ingredients: append([]Ingredient(nil), defaultIngredients...),
	}
}

func (coextrusionVariant) Compute(p ParameterSet) Metrics {
	m := computeCoextrusion(p)
	return Metrics{Mode: ModeCoextrusion, Coextrusion: &m}
}

func computeCoextrusion(p ParameterSet) CoextrusionMetrics {
	// Percentages are deliberately not normalised to 100.
	var mixtureCostPerKg, mixturePercent float64
	for _, row := range p.Ingredients {
		mixtureCostPerKg += row.Percent / 100 * row.CostPerKg
		mixturePercent += row.Percent
	}

	hours := p.Value(KeyHoursPerDay)
	days := p.Value(KeyFilmDaysPerMonth)
	opsCostPerHour := p.Value(KeyOpsCostPerHour)

	widthM := p.Value(KeyWidthMm) / 1000
	thicknessM := p.Value(KeyThicknessMicrons) / 1_000_000
	densityKgM3 := p.Value(KeyDensityGCm3) * 1000
	outputKgPerHour := widthM * thicknessM * p.Value(KeySpeedMPerMin) * 60 * densityKgM3

	dailyProdKg := outputKgPerHour * hours
	monthlyProdKg := dailyProdKg * days

	dailyEnergyKwh := p.Value(KeyPowerKw) * hours
	dailyEnergyCost := dailyEnergyKwh * p.Value(KeyCostPerKwh)

	monthlyOpsCost := opsCostPerHour * hours * days
	monthlyMaterial := monthlyProdKg * mixtureCostPerKg
	monthlyEnergyCost := dailyEnergyCost * days
	monthlyTotalCost := monthlyMaterial + monthlyOpsCost + monthlyEnergyCost
	monthlyRevenue := monthlyProdKg * p.Value(KeySalesPricePerKg)
	grossProfitMonthly := monthlyRevenue - monthlyTotalCost
	marginPct := 0.0
	if monthlyRevenue > 0 {
		marginPct = (grossProfitMonthly / monthlyRevenue) * 100
	}

	return CoextrusionMetrics{
		MixtureCostPerKg:   mixtureCostPerKg,
		MixturePercent:     mixturePercent,
		OutputKgPerHour:    outputKgPerHour,
		DailyProdKg:        dailyProdKg,
		MonthlyProdKg:      monthlyProdKg,
		DailyEnergyKwh:     dailyEnergyKwh,
		DailyEnergyCost:    dailyEnergyCost,
		MonthlyOpsCost:     monthlyOpsCost,
		MonthlyMaterial:    monthlyMaterial,
		MonthlyEnergyCost:  monthlyEnergyCost,
		MonthlyTotalCost:   monthlyTotalCost,
		MonthlyRevenue:     monthlyRevenue,
		GrossProfitMonthly: grossProfitMonthly,
		MarginPct:          marginPct,
		EnergyCostPerKg:    ratio(dailyEnergyCost, dailyProdKg),
		OpsCostPerKg:       ratio(opsCostPerHour, outputKgPerHour),
	}
}
