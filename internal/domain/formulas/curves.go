package formulas

import (
	"fmt"

	"github.com/mamadbah2/railtools/internal/domain/models"
)

// Intermediate versines along the chord, as fractions of the mid-chord
// versine F4.
var versineFractions = []struct {
	key, label string
	fraction   float64
}{
	{"f1", "F1", 0.4375},
	{"f2", "F2", 0.75},
	{"f3", "F3", 0.9375},
	{"f4", "F4", 1},
	{"f5", "F5", 0.9375},
	{"f6", "F6", 0.75},
}

// ArrowFromRadius returns the versine (flecha) measured on a chord of chord
// metres for a curve of radius metres, plus the intermediate versines
// F1..F6 in millimetres.
func ArrowFromRadius(chord, radius float64) models.Result {
	semiChord := chord / 2
	arrow := (semiChord * semiChord) / (2 * radius)

	res := newResult(models.ThemeCurves, "Cálculo de Flechas")
	res.Inputs = res.Inputs.
		Add("Corda", Plain(chord)+" m").
		Add("Raio", Plain(radius)+" m")
	res.Metrics = []models.Metric{
		metric("arrow", "Flecha", arrow*1000, 2, "mm"),
		metric("semiChord", "Semi-Corda", semiChord, 2, "m"),
	}
	for _, v := range versineFractions {
		res.Metrics = append(res.Metrics, metric(v.key, v.label, v.fraction*arrow*1000, 2, "mm"))
	}
	res.Summary = fmt.Sprintf("Flecha: %s mm (F1:%s, F2:%s, F3:%s)",
		Fixed(arrow*1000, 2),
		Fixed(0.4375*arrow*1000, 2),
		Fixed(0.75*arrow*1000, 2),
		Fixed(0.9375*arrow*1000, 2))
	return res
}

// RadiusFromArrow infers the curve radius in metres from a versine of
// arrowMM millimetres measured on a chord of chord metres.
func RadiusFromArrow(chord, arrowMM float64) models.Result {
	semiChord := chord / 2
	arrow := arrowMM / 1000
	radius := (semiChord * semiChord) / (2 * arrow)

	res := newResult(models.ThemeCurves, "Cálculo de Raio")
	res.Inputs = res.Inputs.
		Add("Corda", Plain(chord)+" m").
		Add("Flecha", Plain(arrowMM)+" mm")
	res.Metrics = []models.Metric{
		metric("radius", "Raio", radius, 2, "m"),
		metric("semiChord", "Semi-Corda", semiChord, 2, "m"),
	}
	res.Summary = fmt.Sprintf("Raio: %s m", Fixed(radius, 2))
	return res
}
