package formulas

import (
	"fmt"

	"github.com/mamadbah2/railtools/internal/domain/models"
)

// Empirical cant constants, speed in km/h and radius in metres giving mm.
const (
	TheoreticalCantFactor = 13.7
	PracticalCantFactor   = 7.0
)

// Superelevation computes the theoretical and practical cant of a curve and
// the cant deficiency between them.
func Superelevation(speed, radius float64) models.Result {
	theoretical := ((speed * speed) / radius) * TheoreticalCantFactor
	practical := ((speed * speed) * PracticalCantFactor) / radius
	insufficiency := theoretical - practical

	res := newResult(models.ThemeSuperelevation, "Superelevação")
	res.Inputs = res.Inputs.
		Add("Velocidade", Plain(speed)+" km/h").
		Add("Raio", Plain(radius)+" m")
	res.Metrics = []models.Metric{
		metric("theoretical", "Escala Teórica", theoretical, 1, "mm"),
		metric("practical", "Escala Prática", practical, 1, "mm"),
		metric("insufficiency", "Insuficiência", insufficiency, 1, "mm"),
		metric("excess", "Excesso", -insufficiency, 1, "mm"),
	}
	res.Summary = fmt.Sprintf("Teórica: %smm, Prática: %smm, Insuf: %smm",
		Fixed(theoretical, 1), Fixed(practical, 1), Fixed(insufficiency, 1))
	return res
}
