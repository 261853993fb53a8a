package formulas

import (
	"fmt"
	"math"

	"github.com/mamadbah2/railtools/internal/domain/models"
)

const (
	// PipeVelocityFactor sizes the pipe from the flow.
	PipeVelocityFactor = 0.3
	// PipeDiameterStep in millimetres; diameters are rounded up to it.
	PipeDiameterStep = 50.0
)

// Drainage applies the rational method: runoff coefficient × rainfall
// intensity (mm/h) × catchment area (m²) gives the flow in L/s, from which
// the collector diameter is rounded up to the next 50 mm.
func Drainage(area, rainfall, runoff float64) models.Result {
	flow := RoundTo((runoff*rainfall*area)/360, 2)
	diameter := math.Ceil((math.Sqrt(flow/PipeVelocityFactor)*100)/PipeDiameterStep) * PipeDiameterStep

	res := newResult(models.ThemeDrainage, "Capacidade de Drenagem")
	res.Inputs = res.Inputs.
		Add("Área", Plain(area)+" m²").
		Add("Precipitação", Plain(rainfall)+" mm/h").
		Add("Coef. Escoamento", Plain(runoff))
	res.Metrics = []models.Metric{
		metric("flow", "Caudal", flow, 2, "L/s"),
		metric("diameter", "Diâmetro", diameter, 0, "mm"),
	}
	res.Summary = fmt.Sprintf("%s L/s, Ø %s mm", Fixed(flow, 2), Fixed(diameter, 0))
	return res
}
