package formulas

import (
	"fmt"

	"github.com/mamadbah2/railtools/internal/domain/models"
)

const (
	// BaseDeceleration in m/s² on level track.
	BaseDeceleration = 0.8
	// ReactionTime in seconds.
	ReactionTime = 2.0
	// SignalSpacingSeconds is the running time between two signals.
	SignalSpacingSeconds = 60.0
)

// BrakingDistance computes the stopping distance of a train at speed km/h on
// a gradient expressed in ‰ (positive values reduce deceleration).
func BrakingDistance(speed, gradient float64) models.Result {
	deceleration := BaseDeceleration - gradient/1000
	ms := speed / 3.6
	braking := (ms * ms) / (2 * deceleration)
	reaction := ms * ReactionTime
	total := braking + reaction

	res := newResult(models.ThemeSignaling, "Distância de Travagem")
	res.Inputs = res.Inputs.
		Add("Velocidade", Plain(speed)+" km/h").
		Add("Gradiente", Plain(gradient)+" ‰")
	res.Metrics = []models.Metric{
		metric("brakingDistance", "Travagem", braking, 0, "m"),
		metric("reactionDistance", "Reação", reaction, 0, "m"),
		metric("totalDistance", "Distância total", total, 0, "m"),
		metric("deceleration", "Desaceleração", deceleration, 3, "m/s²"),
	}
	res.Summary = fmt.Sprintf("%s m (%sm travagem + %sm reação)", Fixed(total, 0), Fixed(braking, 0), Fixed(reaction, 0))
	return res
}

// SignalSpacing returns the distance covered in one signal interval at
// speed km/h.
func SignalSpacing(speed float64) models.Result {
	distance := (speed / 3.6) * SignalSpacingSeconds

	res := newResult(models.ThemeSignaling, "Espaçamento de Sinais")
	res.Inputs = res.Inputs.Add("Velocidade", Plain(speed)+" km/h")
	res.Metrics = []models.Metric{metric("signalDistance", "Espaçamento", distance, 0, "m")}
	res.Summary = fmt.Sprintf("%s m entre sinais", Fixed(distance, 0))
	return res
}
