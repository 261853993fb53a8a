package formulas

import (
	"fmt"

	"github.com/mamadbah2/railtools/internal/domain/models"
)

// SteelDilationCoefficient is applied per metre and per °C.
const SteelDilationCoefficient = 0.0105

// Thermal elongation directions.
const (
	DirectionExpand   = "expandir"
	DirectionContract = "contrair"
	DirectionNone     = "sem variação"
)

// BLSTotals consolidates the rail, ballast and fastening masses of a long
// welded rail section. Shares are reported as zero when the total is zero.
func BLSTotals(railMass, ballastMass, fixMass, length float64) models.Result {
	total := railMass + ballastMass + fixMass
	avg := total / length

	share := func(part float64) float64 {
		if total == 0 {
			return 0
		}
		return part / total * 100
	}

	res := newResult(models.ThemeBLSTotal, "BLS Consolidado")
	res.Inputs = res.Inputs.
		Add("Carril", Plain(railMass)+" t").
		Add("Balastro", Plain(ballastMass)+" t").
		Add("Fixações", Plain(fixMass)+" t").
		Add("Comprimento", Plain(length)+" m")
	res.Metrics = []models.Metric{
		metric("total", "Massa Total", total, 2, "t"),
		metric("avgPerMeter", "Média por Metro", avg, 3, "t/m"),
		metric("railPercent", "Carril", share(railMass), 1, "%"),
		metric("ballastPercent", "Balastro", share(ballastMass), 1, "%"),
		metric("fixPercent", "Fixações", share(fixMass), 1, "%"),
	}
	res.Summary = fmt.Sprintf("Total: %s t, Média: %s t/m", Fixed(total, 2), Fixed(avg, 3))
	return res
}

// ThermalElongation computes how much a long welded rail of length metres
// moves when brought from currentTemp to targetTemp. A positive result means
// the rail must expand.
func ThermalElongation(length, currentTemp, targetTemp float64) models.Result {
	delta := targetTemp - currentTemp
	meters := length * SteelDilationCoefficient * delta
	mm := meters * 1000

	direction, sign := DirectionNone, 0.0
	switch {
	case delta > 0:
		direction, sign = DirectionExpand, 1
	case delta < 0:
		direction, sign = DirectionContract, -1
	}

	res := newResult(models.ThemeSleepers, "Dilatação Térmica BLS")
	res.Inputs = res.Inputs.
		Add("Extensão", Plain(length)+" m").
		Add("Temp. Atual", Plain(currentTemp)+" °C").
		Add("Temp. Regularização", Plain(targetTemp)+" °C")
	res.Metrics = []models.Metric{
		metric("elongationMM", "Alongamento", mm, 1, "mm"),
		metric("elongationMeters", "Alongamento", meters, 4, "m"),
		metric("deltaTemp", "Variação de Temperatura", delta, 1, "°C"),
		{Key: "direction", Label: "Sentido", Value: sign, Display: direction},
	}
	res.Summary = fmt.Sprintf("Alongamento: %s mm (%s)", Fixed(mm, 1), direction)
	return res
}
