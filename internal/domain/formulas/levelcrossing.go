package formulas

import (
	"fmt"

	"github.com/mamadbah2/railtools/internal/domain/models"
)

// SightlineFactor relates line speed (km/h) to the minimum level crossing
// visibility distance (m).
const SightlineFactor = 3.5

// VisibilityFromSpeed returns the minimum visibility distance for a line
// speed in km/h.
func VisibilityFromSpeed(speed float64) models.Result {
	visibility := SightlineFactor * speed

	res := newResult(models.ThemeLevelCrossing, "Distância de Visibilidade PN")
	res.Inputs = res.Inputs.Add("Velocidade TVM", Plain(speed)+" km/h")
	res.Metrics = []models.Metric{
		metric("visibility", "Visibilidade mínima", visibility, 0, "m"),
		metric("speed", "Velocidade", speed, -1, "km/h"),
	}
	res.Summary = fmt.Sprintf("Visibilidade mínima: %s m", Fixed(visibility, 0))
	return res
}

// SpeedFromVisibility returns the maximum line speed allowed by a measured
// visibility distance in metres.
func SpeedFromVisibility(visibility float64) models.Result {
	speed := visibility / SightlineFactor

	res := newResult(models.ThemeLevelCrossing, "Velocidade Máxima PN")
	res.Inputs = res.Inputs.Add("Visibilidade", Plain(visibility)+" m")
	res.Metrics = []models.Metric{
		metric("speed", "Velocidade máxima", speed, 0, "km/h"),
		metric("visibility", "Visibilidade", visibility, -1, "m"),
	}
	res.Summary = fmt.Sprintf("Velocidade máxima: %s km/h", Fixed(speed, 0))
	return res
}
