package formulas

import (
	"fmt"

	"github.com/mamadbah2/railtools/internal/domain/models"
)

// WheeledMLCFactor converts tonnes to MLC for wheeled vehicles.
const WheeledMLCFactor = 0.9

// MLCToTon converts a military load class into tonnes.
func MLCToTon(mlc float64) models.Result {
	ton := mlc / WheeledMLCFactor

	res := newResult(models.ThemeConverter, "MLC → Toneladas")
	res.Inputs = res.Inputs.Add("Valor", Plain(mlc)+" MLC")
	res.Metrics = []models.Metric{metric("value", "Toneladas", ton, 2, "t")}
	res.Summary = fmt.Sprintf("%s t", Fixed(ton, 2))
	return res
}

// TonToMLC converts tonnes into a military load class.
func TonToMLC(ton float64) models.Result {
	mlc := ton * WheeledMLCFactor

	res := newResult(models.ThemeConverter, "Toneladas → MLC")
	res.Inputs = res.Inputs.Add("Valor", Plain(ton)+" t")
	res.Metrics = []models.Metric{metric("value", "MLC", mlc, 2, "MLC")}
	res.Summary = fmt.Sprintf("%s MLC", Fixed(mlc, 2))
	return res
}
