package models

// Theme describes one calculation topic shown to the field engineer.
type Theme struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// Theme identifiers.
const (
	ThemeRail           = "rail"
	ThemeBallast        = "ballast"
	ThemeSleepers       = "sleepers"
	ThemeCurves         = "curves"
	ThemeSuperelevation = "superelevation"
	ThemeLevelCrossing  = "levelcrossing"
	ThemeFixations      = "fixations"
	ThemeConverter      = "converter"
	ThemeBLSTotal       = "bls-total"
	ThemeCatenary       = "catenary"
	ThemeSignaling      = "signaling"
	ThemeDrainage       = "drainage"
)

var themes = []Theme{
	{ID: ThemeRail, Title: "Carril", Icon: "train-outline", Color: "#FF6B6B", Description: "Cálculos de carril e via férrea"},
	{ID: ThemeBallast, Title: "Balastro", Icon: "layers-outline", Color: "#4ECDC4", Description: "Volume e peso de balastro"},
	{ID: ThemeSleepers, Title: "Travessas (BLS)", Icon: "thermometer-outline", Color: "#95E1D3", Description: "Dilatação térmica"},
	{ID: ThemeCurves, Title: "Flechas e Raios", Icon: "git-commit-outline", Color: "#FCBF49", Description: "Cálculo de curvas"},
	{ID: ThemeSuperelevation, Title: "Superelevação", Icon: "trending-up-outline", Color: "#F77F00", Description: "Escalas em curvas"},
	{ID: ThemeLevelCrossing, Title: "Passagens Nível", Icon: "warning-outline", Color: "#D62828", Description: "Visibilidade e segurança"},
	{ID: ThemeFixations, Title: "Fixações", Icon: "construct-outline", Color: "#06A77D", Description: "Quantidade de fixações"},
	{ID: ThemeConverter, Title: "Conversor MLC", Icon: "swap-horizontal-outline", Color: "#845EC2", Description: "MLC ↔ Toneladas"},
	{ID: ThemeBLSTotal, Title: "BLS Consolidado", Icon: "stats-chart-outline", Color: "#FF9671", Description: "Totais e médias"},
	{ID: ThemeCatenary, Title: "Catenária", Icon: "flash-outline", Color: "#64B5F6", Description: "Flecha e altura do fio de contacto"},
	{ID: ThemeSignaling, Title: "Sinalização", Icon: "radio-outline", Color: "#90CAF9", Description: "Travagem e espaçamento de sinais"},
	{ID: ThemeDrainage, Title: "Drenagem", Icon: "water-outline", Color: "#4CAF50", Description: "Caudal e diâmetro de coletores"},
}

// Themes returns the static theme table in display order.
func Themes() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

// LookupTheme finds a theme by id.
func LookupTheme(id string) (Theme, bool) {
	for _, t := range themes {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}
