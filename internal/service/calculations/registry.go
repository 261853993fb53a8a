package calculations

import (
	"math"

	"github.com/mamadbah2/railtools/internal/domain/formulas"
	"github.com/mamadbah2/railtools/internal/domain/models"
)

// Mode is one way of using a calculator: its inputs, cross-field checks and
// the formula it runs.
type Mode struct {
	ID      string  `json:"id"`
	Fields  []Field `json:"fields"`
	check   func(Values) error
	compute func(Values) models.Result
}

// Calculator groups the modes offered for a theme. The first mode is the
// default one.
type Calculator struct {
	Theme models.Theme `json:"theme"`
	Modes []Mode       `json:"modes"`
}

// Mode resolves id, falling back to the default mode when id is empty.
func (c Calculator) Mode(id string) (Mode, bool) {
	if id == "" && len(c.Modes) > 0 {
		return c.Modes[0], true
	}
	for _, m := range c.Modes {
		if m.ID == id {
			return m, true
		}
	}
	return Mode{}, false
}

// Run validates raw and, when valid, evaluates the formula.
func (m Mode) Run(raw models.Input) (models.Result, error) {
	values, err := Validate(m.Fields, raw)
	if err != nil {
		return models.Result{}, err
	}
	if m.check != nil {
		if err := m.check(values); err != nil {
			return models.Result{}, err
		}
	}

	result := m.compute(values)
	for _, metric := range result.Metrics {
		if math.IsNaN(metric.Value) || math.IsInf(metric.Value, 0) {
			return models.Result{}, &ValidationError{
				Field:  values.mostExtreme(m.Fields),
				Reason: "value out of range, the result cannot be computed",
			}
		}
	}
	return result, nil
}

func required(name, label, unit string) Field {
	return Field{Name: name, Label: label, Unit: unit, Required: true, Rule: RulePositive}
}

func defaulted(name, label, unit, def string, rule Rule) Field {
	return Field{Name: name, Label: label, Unit: unit, Default: def, Rule: rule}
}

var railTypeField = Field{
	Name:    "railType",
	Label:   "Tipo de Carril",
	Default: "UIC60",
	Rule:    RuleOption,
	Options: formulas.RailProfileCodes(),
}

var calculators = map[string][]Mode{
	models.ThemeRail: {
		{
			ID:     "basic",
			Fields: []Field{railTypeField, required("length", "Comprimento", "m")},
			compute: func(v Values) models.Result {
				profile, _ := formulas.BasicRailProfile(v.Option("railType"))
				return formulas.RailWeight(profile, v.Float("length"))
			},
		},
		{
			ID: "advanced",
			Fields: []Field{
				railTypeField,
				required("length", "Comprimento Total da Via", "m"),
				defaulted("barLength", "Comprimento da Barra", "m", "108", RulePositive),
				defaulted("loss", "Perda por Barra", "m", "0", RuleNonNegative),
			},
			check: func(v Values) error {
				if v.Float("loss") >= v.Float("barLength") {
					return &ValidationError{Field: "loss", Reason: "must be smaller than the bar length"}
				}
				return nil
			},
			compute: func(v Values) models.Result {
				profile, _ := formulas.AdvancedRailProfile(v.Option("railType"))
				return formulas.RailBars(profile, v.Float("length"), v.Float("barLength"), v.Float("loss"))
			},
		},
	},
	models.ThemeBallast: {
		{
			ID: "volume",
			Fields: []Field{
				required("length", "Comprimento", "m"),
				defaulted("width", "Largura", "m", "3.5", RulePositive),
				defaulted("thickness", "Espessura", "m", "0.3", RulePositive),
			},
			compute: func(v Values) models.Result {
				return formulas.Ballast(v.Float("length"), v.Float("width"), v.Float("thickness"))
			},
		},
	},
	models.ThemeSleepers: {
		{
			ID: "thermal",
			Fields: []Field{
				required("length", "Extensão", "m"),
				{Name: "currentTemp", Label: "Temperatura Atual", Unit: "°C", Required: true, Rule: RuleFinite},
				defaulted("targetTemp", "Temperatura de Regularização", "°C", "30", RuleFinite),
			},
			compute: func(v Values) models.Result {
				return formulas.ThermalElongation(v.Float("length"), v.Float("currentTemp"), v.Float("targetTemp"))
			},
		},
	},
	models.ThemeCurves: {
		{
			ID:     "radius",
			Fields: []Field{defaulted("chord", "Corda", "m", "20", RulePositive), required("radius", "Raio", "m")},
			compute: func(v Values) models.Result {
				return formulas.ArrowFromRadius(v.Float("chord"), v.Float("radius"))
			},
		},
		{
			ID:     "arrow",
			Fields: []Field{defaulted("chord", "Corda", "m", "20", RulePositive), required("arrow", "Flecha", "mm")},
			compute: func(v Values) models.Result {
				return formulas.RadiusFromArrow(v.Float("chord"), v.Float("arrow"))
			},
		},
	},
	models.ThemeSuperelevation: {
		{
			ID:     "cant",
			Fields: []Field{required("speed", "Velocidade", "km/h"), required("radius", "Raio", "m")},
			compute: func(v Values) models.Result {
				return formulas.Superelevation(v.Float("speed"), v.Float("radius"))
			},
		},
	},
	models.ThemeLevelCrossing: {
		{
			ID:     "visibility",
			Fields: []Field{required("speed", "Velocidade TVM", "km/h")},
			compute: func(v Values) models.Result {
				return formulas.VisibilityFromSpeed(v.Float("speed"))
			},
		},
		{
			ID:     "speed",
			Fields: []Field{required("visibility", "Visibilidade", "m")},
			compute: func(v Values) models.Result {
				return formulas.SpeedFromVisibility(v.Float("visibility"))
			},
		},
	},
	models.ThemeFixations: {
		{
			ID:     "count",
			Fields: []Field{required("length", "Comprimento Total", "m"), defaulted("spacing", "Espaçamento entre Fixações", "m", "0.6", RulePositive)},
			compute: func(v Values) models.Result {
				return formulas.Fixations(v.Float("length"), v.Float("spacing"))
			},
		},
	},
	models.ThemeConverter: {
		{
			ID:     "mlc-to-ton",
			Fields: []Field{required("value", "Valor", "MLC")},
			compute: func(v Values) models.Result {
				return formulas.MLCToTon(v.Float("value"))
			},
		},
		{
			ID:     "ton-to-mlc",
			Fields: []Field{required("value", "Valor", "t")},
			compute: func(v Values) models.Result {
				return formulas.TonToMLC(v.Float("value"))
			},
		},
	},
	models.ThemeBLSTotal: {
		{
			ID: "totals",
			Fields: []Field{
				defaulted("railMass", "Massa do Carril", "t", "", RuleNonNegative),
				defaulted("ballastMass", "Massa do Balastro", "t", "", RuleNonNegative),
				defaulted("fixMass", "Massa das Fixações", "t", "", RuleNonNegative),
				required("length", "Comprimento da Via", "m"),
			},
			compute: func(v Values) models.Result {
				return formulas.BLSTotals(v.Float("railMass"), v.Float("ballastMass"), v.Float("fixMass"), v.Float("length"))
			},
		},
	},
	models.ThemeCatenary: {
		{
			ID: "sag",
			Fields: []Field{
				required("span", "Vão", "m"),
				defaulted("tension", "Tensão", "kN", "20", RulePositive),
				defaulted("weight", "Peso do Fio", "kg/m", "1.07", RulePositive),
			},
			compute: func(v Values) models.Result {
				return formulas.Catenary(v.Float("span"), v.Float("tension"), v.Float("weight"))
			},
		},
	},
	models.ThemeSignaling: {
		{
			ID:     "braking",
			Fields: []Field{required("speed", "Velocidade", "km/h"), defaulted("gradient", "Gradiente", "‰", "0", RuleFinite)},
			check: func(v Values) error {
				if formulas.BaseDeceleration-v.Float("gradient")/1000 <= 0 {
					return &ValidationError{Field: "gradient", Reason: "leaves no braking deceleration"}
				}
				return nil
			},
			compute: func(v Values) models.Result {
				return formulas.BrakingDistance(v.Float("speed"), v.Float("gradient"))
			},
		},
		{
			ID:     "spacing",
			Fields: []Field{required("speed", "Velocidade", "km/h")},
			compute: func(v Values) models.Result {
				return formulas.SignalSpacing(v.Float("speed"))
			},
		},
	},
	models.ThemeDrainage: {
		{
			ID: "flow",
			Fields: []Field{
				required("area", "Área", "m²"),
				defaulted("rainfall", "Precipitação", "mm/h", "50", RulePositive),
				defaulted("runoff", "Coeficiente de Escoamento", "", "0.6", RuleUnitInterval),
			},
			compute: func(v Values) models.Result {
				return formulas.Drainage(v.Float("area"), v.Float("rainfall"), v.Float("runoff"))
			},
		},
	},
}

// Lookup returns the calculator registered for a theme id.
func Lookup(themeID string) (Calculator, bool) {
	modes, ok := calculators[themeID]
	if !ok {
		return Calculator{}, false
	}
	theme, ok := models.LookupTheme(themeID)
	if !ok {
		return Calculator{}, false
	}
	return Calculator{Theme: theme, Modes: modes}, true
}
