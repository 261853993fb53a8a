package calculations

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/railtools/internal/domain/models"
)

func TestValidate_RejectsBadRequiredFields(t *testing.T) {
	fields := []Field{required("length", "Comprimento", "m")}

	for _, raw := range []string{"", "   ", "abc", "0", "-5", "NaN", "Inf", "0x1p4", "-0X10", "+0x1"} {
		_, err := Validate(fields, models.Input{"length": raw})

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr), "input %q should fail", raw)
		assert.Equal(t, "length", vErr.Field)
	}
}

func TestValidate_AppliesDefaultsAndCommaDecimals(t *testing.T) {
	fields := []Field{
		required("length", "Comprimento", "m"),
		defaulted("spacing", "Espaçamento", "m", "0.6", RulePositive),
		defaulted("mass", "Massa", "t", "", RuleNonNegative),
	}

	values, err := Validate(fields, models.Input{"length": "12,5"})
	require.NoError(t, err)

	assert.Equal(t, 12.5, values.Float("length"))
	assert.Equal(t, 0.6, values.Float("spacing"))
	assert.Equal(t, 0.0, values.Float("mass"))
}

func TestValidate_Rules(t *testing.T) {
	runoff := []Field{defaulted("runoff", "C", "", "0.6", RuleUnitInterval)}
	for _, ok := range []string{"1", "0.01", "0.6"} {
		_, err := Validate(runoff, models.Input{"runoff": ok})
		assert.NoError(t, err, ok)
	}
	for _, bad := range []string{"0", "1.01", "-0.2"} {
		_, err := Validate(runoff, models.Input{"runoff": bad})
		assert.Error(t, err, bad)
	}

	temp := []Field{{Name: "t", Required: true, Rule: RuleFinite}}
	values, err := Validate(temp, models.Input{"t": "-12"})
	require.NoError(t, err)
	assert.Equal(t, -12.0, values.Float("t"))

	mass := []Field{defaulted("mass", "Massa", "t", "", RuleNonNegative)}
	_, err = Validate(mass, models.Input{"mass": "-1"})
	assert.Error(t, err)
}

func TestValidate_Options(t *testing.T) {
	fields := []Field{railTypeField}

	values, err := Validate(fields, models.Input{})
	require.NoError(t, err)
	assert.Equal(t, "UIC60", values.Option("railType"))

	values, err = Validate(fields, models.Input{"railType": "S49"})
	require.NoError(t, err)
	assert.Equal(t, "S49", values.Option("railType"))

	_, err = Validate(fields, models.Input{"railType": "UIC99"})
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "railType", vErr.Field)
}
