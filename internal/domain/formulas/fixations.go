package formulas

import (
	"fmt"

	"github.com/mamadbah2/railtools/internal/domain/models"
)

// Fixations counts the fasteners needed over length metres at the given
// spacing.
func Fixations(length, spacing float64) models.Result {
	n := ceilInt(length / spacing)

	res := newResult(models.ThemeFixations, "Quantidade de Fixações")
	res.Inputs = res.Inputs.
		Add("Comprimento", Plain(length)+" m").
		Add("Espaçamento", Plain(spacing)+" m")
	res.Metrics = []models.Metric{count("quantity", "Fixações", n, "fixações")}
	res.Summary = fmt.Sprintf("%d fixações necessárias", n)
	return res
}
