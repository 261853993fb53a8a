package calculations

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/mamadbah2/railtools/internal/domain/models"
)

// Rule constrains the numeric domain of a field.
type Rule string

const (
	// RulePositive requires a value strictly greater than zero.
	RulePositive Rule = "positive"
	// RuleNonNegative allows zero.
	RuleNonNegative Rule = "non_negative"
	// RuleFinite accepts any finite number, including negatives.
	RuleFinite Rule = "finite"
	// RuleUnitInterval requires 0 < v <= 1.
	RuleUnitInterval Rule = "unit_interval"
	// RuleOption requires one of the field's options.
	RuleOption Rule = "option"
)

// Field describes one input of a calculator mode.
type Field struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Unit     string   `json:"unit,omitempty"`
	Required bool     `json:"required"`
	Default  string   `json:"default,omitempty"`
	Rule     Rule     `json:"rule"`
	Options  []string `json:"options,omitempty"`
}

// ValidationError reports the first offending field of an input set.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Values holds parsed inputs keyed by field name.
type Values struct {
	numbers map[string]float64
	options map[string]string
}

// Float returns the parsed number for name, or zero.
func (v Values) Float(name string) float64 {
	return v.numbers[name]
}

// mostExtreme names the numeric field whose value lies furthest from 1 in
// orders of magnitude. It falls back to the first field.
func (v Values) mostExtreme(fields []Field) string {
	name, score := "", -1.0
	for _, f := range fields {
		n, ok := v.numbers[f.Name]
		if !ok || n == 0 {
			continue
		}
		if s := math.Abs(math.Log10(math.Abs(n))); s > score {
			name, score = f.Name, s
		}
	}
	if name == "" && len(fields) > 0 {
		name = fields[0].Name
	}
	return name
}

// Option returns the selected option for name.
func (v Values) Option(name string) string {
	return v.options[name]
}

// Validate parses raw against fields. Empty optional fields fall back to
// their default, or zero when they have none.
func Validate(fields []Field, raw models.Input) (Values, error) {
	values := Values{
		numbers: make(map[string]float64, len(fields)),
		options: make(map[string]string),
	}

	for _, f := range fields {
		text := strings.TrimSpace(raw[f.Name])
		if text == "" {
			if f.Required {
				return Values{}, &ValidationError{Field: f.Name, Reason: "value is required"}
			}
			text = f.Default
		}

		if f.Rule == RuleOption {
			if !slices.Contains(f.Options, text) {
				return Values{}, &ValidationError{Field: f.Name, Reason: fmt.Sprintf("must be one of %s", strings.Join(f.Options, ", "))}
			}
			values.options[f.Name] = text
			continue
		}

		if text == "" {
			values.numbers[f.Name] = 0
			continue
		}

		n, err := parseNumber(text)
		if err != nil {
			return Values{}, &ValidationError{Field: f.Name, Reason: "must be a number"}
		}

		if reason := checkRule(f.Rule, n); reason != "" {
			return Values{}, &ValidationError{Field: f.Name, Reason: reason}
		}
		values.numbers[f.Name] = n
	}

	return values, nil
}

// parseNumber accepts both "0.6" and "0,6". Hexadecimal literals are refused.
func parseNumber(text string) (float64, error) {
	if digits := strings.ToLower(strings.TrimLeft(text, "+-")); strings.HasPrefix(digits, "0x") {
		return 0, fmt.Errorf("not a decimal number: %s", text)
	}
	n, err := strconv.ParseFloat(strings.Replace(text, ",", ".", 1), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("not finite: %s", text)
	}
	return n, nil
}

func checkRule(rule Rule, n float64) string {
	switch rule {
	case RulePositive:
		if n <= 0 {
			return "must be greater than zero"
		}
	case RuleNonNegative:
		if n < 0 {
			return "must not be negative"
		}
	case RuleUnitInterval:
		if n <= 0 || n > 1 {
			return "must be between 0 (exclusive) and 1"
		}
	}
	return ""
}
