package formulas

import (
	"fmt"

	"github.com/mamadbah2/railtools/internal/domain/models"
)

// MinContactWireHeight above rail level, in metres.
const MinContactWireHeight = 5.5

// Catenary computes the sag of a contact wire over a span of span metres
// under tension kN with a linear weight of weight kg/m.
func Catenary(span, tension, weight float64) models.Result {
	sag := RoundTo((weight*span*span)/(8*tension*1000), 3)
	minHeight := MinContactWireHeight + sag

	res := newResult(models.ThemeCatenary, "Flecha e Altura da Catenária")
	res.Inputs = res.Inputs.
		Add("Vão", Plain(span)+" m").
		Add("Tensão", Plain(tension)+" kN").
		Add("Peso", Plain(weight)+" kg/m")
	res.Metrics = []models.Metric{
		metric("sag", "Flecha", sag, 3, "m"),
		metric("minHeight", "Altura mínima", minHeight, 2, "m"),
	}
	res.Summary = fmt.Sprintf("Flecha: %s m, Altura mín: %s m", Fixed(sag, 3), Fixed(minHeight, 2))
	return res
}
