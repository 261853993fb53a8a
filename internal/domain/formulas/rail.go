package formulas

import (
	"fmt"

	"github.com/mamadbah2/railtools/internal/domain/models"
)

const (
	// StandardRailLength is the commercial bar length used by the quick
	// rail count, in metres.
	StandardRailLength = 18.0
)

// RailProfile is a rail section with its linear mass in kg/m.
type RailProfile struct {
	Code   string
	Name   string
	Weight float64
}

// The quick calculator and the bar-sizing calculator carry different UIC54
// masses (54.43 vs 54.77 kg/m). Both are kept as used in the field.
var (
	basicRailProfiles = []RailProfile{
		{Code: "UIC60", Name: "UIC 60 (60.34 kg/m)", Weight: 60.34},
		{Code: "UIC54", Name: "UIC 54 (54.43 kg/m)", Weight: 54.43},
		{Code: "S49", Name: "S49 (49.43 kg/m)", Weight: 49.43},
		{Code: "UIC45", Name: "UIC 45 (45.00 kg/m)", Weight: 45.00},
	}
	advancedRailProfiles = []RailProfile{
		{Code: "UIC60", Name: "UIC 60", Weight: 60.34},
		{Code: "UIC54", Name: "UIC 54 (54E1)", Weight: 54.77},
		{Code: "S49", Name: "S49", Weight: 49.43},
		{Code: "UIC45", Name: "UIC 45", Weight: 45.00},
	}
)

// BasicRailProfile resolves a profile for the weight/count calculator.
func BasicRailProfile(code string) (RailProfile, bool) {
	return findProfile(basicRailProfiles, code)
}

// AdvancedRailProfile resolves a profile for the bar sizing calculator.
func AdvancedRailProfile(code string) (RailProfile, bool) {
	return findProfile(advancedRailProfiles, code)
}

// RailProfileCodes lists the supported profile codes.
func RailProfileCodes() []string {
	codes := make([]string, 0, len(basicRailProfiles))
	for _, p := range basicRailProfiles {
		codes = append(codes, p.Code)
	}
	return codes
}

func findProfile(profiles []RailProfile, code string) (RailProfile, bool) {
	for _, p := range profiles {
		if p.Code == code {
			return p, true
		}
	}
	return RailProfile{}, false
}

// RailWeight computes the mass of one rail line over length metres and the
// number of standard 18 m rails required.
func RailWeight(profile RailProfile, length float64) models.Result {
	total := profile.Weight * length
	totalBoth := RoundTo(total, 2) * 2
	rails := ceilInt(length / StandardRailLength)

	res := newResult(models.ThemeRail, "Peso e Quantidade de Carril")
	res.Inputs = res.Inputs.
		Add("Tipo", profile.Name).
		Add("Comprimento", Plain(length)+" m")
	res.Metrics = []models.Metric{
		metric("weightPerRail", "Peso (linha simples)", total, 2, "kg"),
		metric("weightBothRails", "Peso (via completa)", totalBoth, 2, "kg"),
		count("numberOfRails", "Carris de 18 m", rails, "carris"),
		metric("totalLength", "Comprimento", length, -1, "m"),
	}
	res.Summary = fmt.Sprintf("%s kg (linha simples), %s kg (via completa), %d carris necessários",
		Fixed(total, 2), Fixed(totalBoth, 2), rails)
	return res
}

// RailBars sizes the number of bars of barLength metres needed to cover
// length metres when each bar loses loss metres at the joints.
func RailBars(profile RailProfile, length, barLength, loss float64) models.Result {
	var bars int
	if loss > 0 {
		bars = ceilInt(length / (barLength - loss))
	} else {
		bars = ceilInt(length / barLength)
	}

	effective := float64(bars) * barLength
	surplus := effective - length
	weightExact := (length * profile.Weight) / 1000
	weightBars := (float64(bars) * barLength * profile.Weight) / 1000
	welds := bars - 1

	res := newResult(models.ThemeRail, "Cálculo Completo de Carril")
	res.Inputs = res.Inputs.
		Add("Tipo", profile.Name).
		Add("Comprimento", Plain(length)+" m").
		Add("Barra", Plain(barLength)+" m").
		Add("Perda", Plain(loss)+" m")
	res.Metrics = []models.Metric{
		count("bars", "Número de Barras", bars, "barras"),
		metric("effectiveLength", "Comprimento Efetivo", effective, 1, "m"),
		metric("surplus", "Sobra Técnica", surplus, 1, "m"),
		metric("weightExact", "Massa Total (exata)", weightExact, 2, "t"),
		metric("weightBars", "Massa Total (barras)", weightBars, 2, "t"),
		count("welds", "Soldaduras", welds, "soldaduras"),
	}
	res.Summary = fmt.Sprintf("%d barras, %s t, %d soldaduras, sobra: %s m",
		bars, Fixed(weightBars, 2), welds, Fixed(surplus, 1))
	return res
}
