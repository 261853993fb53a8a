package formulas

import (
	"fmt"

	"github.com/mamadbah2/railtools/internal/domain/models"
)

const (
	// BallastDensity in t/m³.
	BallastDensity = 1.6
	// TruckCapacity in tonnes.
	TruckCapacity = 20.0
)

// Ballast computes the volume, mass and truck loads of a ballast bed.
// Volume and mass are rounded to two decimals before they feed the next
// step, matching the figures printed on site sheets.
func Ballast(length, width, thickness float64) models.Result {
	volume := RoundTo(length*width*thickness, 2)
	weight := RoundTo(volume*BallastDensity, 2)
	trucks := ceilInt(weight / TruckCapacity)

	res := newResult(models.ThemeBallast, "Volume e Peso de Balastro")
	res.Inputs = res.Inputs.
		Add("Comprimento", Plain(length)+" m").
		Add("Largura", Plain(width)+" m").
		Add("Espessura", Plain(thickness)+" m")
	res.Metrics = []models.Metric{
		metric("volume", "Volume", volume, 2, "m³"),
		metric("weight", "Peso", weight, 2, "t"),
		count("truckLoads", "Camiões", trucks, "camiões"),
	}
	res.Summary = fmt.Sprintf("%s m³, %s toneladas, %d camiões", Fixed(volume, 2), Fixed(weight, 2), trucks)
	return res
}
