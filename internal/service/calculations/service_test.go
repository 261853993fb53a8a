package calculations

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/railtools/internal/domain/models"
)

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Append(ctx context.Context, result models.Result, images ...string) models.HistoryEntry {
	args := m.Called(ctx, result, images)
	return args.Get(0).(models.HistoryEntry)
}

func TestService_EveryThemeHasACalculator(t *testing.T) {
	svc := NewService(nil, nil)

	themes := svc.Themes()
	assert.Len(t, themes, len(models.Themes()))

	for _, theme := range themes {
		calc, err := svc.Calculator(theme.ID)
		require.NoError(t, err, theme.ID)
		assert.NotEmpty(t, calc.Modes, theme.ID)
	}
}

func TestService_Calculate_SavesWhenRequested(t *testing.T) {
	recorder := new(mockRecorder)
	recorder.On("Append", mock.Anything, mock.MatchedBy(func(r models.Result) bool {
		return r.CalculationType == "Peso e Quantidade de Carril"
	}), []string(nil)).Return(models.HistoryEntry{ID: "1"}).Once()

	svc := NewService(recorder, nil)

	resp, err := svc.Calculate(context.Background(), Request{
		Theme:  models.ThemeRail,
		Inputs: models.Input{"railType": "UIC60", "length": "1000"},
		Save:   true,
	})
	require.NoError(t, err)

	m, ok := resp.Result.Metric("weightPerRail")
	require.True(t, ok)
	assert.Equal(t, "60340.00", m.Display)
	require.NotNil(t, resp.Entry)
	assert.Equal(t, "1", resp.Entry.ID)
	recorder.AssertExpectations(t)
}

func TestService_Calculate_InvalidInputDoesNotTouchHistory(t *testing.T) {
	recorder := new(mockRecorder)
	svc := NewService(recorder, nil)

	cases := []Request{
		{Theme: models.ThemeFixations, Inputs: models.Input{"length": ""}},
		{Theme: models.ThemeFixations, Inputs: models.Input{"length": "abc"}},
		{Theme: models.ThemeFixations, Inputs: models.Input{"length": "0"}},
		{Theme: models.ThemeFixations, Inputs: models.Input{"length": "-3"}},
		{Theme: models.ThemeFixations, Inputs: models.Input{"length": "10", "spacing": "0"}},
		{Theme: models.ThemeDrainage, Inputs: models.Input{"area": "100", "runoff": "1.5"}},
		{Theme: models.ThemeRail, Mode: "advanced", Inputs: models.Input{"length": "100", "barLength": "18", "loss": "18"}},
		{Theme: models.ThemeSignaling, Inputs: models.Input{"speed": "80", "gradient": "800"}},
		{Theme: models.ThemeSleepers, Inputs: models.Input{"length": "100"}},
	}

	for _, req := range cases {
		req.Save = true
		_, err := svc.Calculate(context.Background(), req)

		var vErr *ValidationError
		assert.True(t, errors.As(err, &vErr), "request %+v should fail validation", req)
	}

	recorder.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Calculate_Modes(t *testing.T) {
	svc := NewService(nil, nil)

	resp, err := svc.Calculate(context.Background(), Request{
		Theme:  models.ThemeCurves,
		Mode:   "arrow",
		Inputs: models.Input{"arrow": "100"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Raio: 500.00 m", resp.Result.Summary)
	assert.Nil(t, resp.Entry)

	resp, err = svc.Calculate(context.Background(), Request{
		Theme:  models.ThemeRail,
		Mode:   "advanced",
		Inputs: models.Input{"railType": "UIC54", "length": "1000", "barLength": "18"},
	})
	require.NoError(t, err)
	kind, _ := resp.Result.Inputs.Get("Tipo")
	assert.Equal(t, "UIC 54 (54E1)", kind)

	resp, err = svc.Calculate(context.Background(), Request{
		Theme:  models.ThemeBLSTotal,
		Inputs: models.Input{"length": "100"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Total: 0.00 t, Média: 0.000 t/m", resp.Result.Summary)
}

func TestService_Calculate_UnknownThemeOrMode(t *testing.T) {
	svc := NewService(nil, nil)

	_, err := svc.Calculate(context.Background(), Request{Theme: "tunnels"})
	assert.ErrorIs(t, err, ErrUnknownTheme)

	_, err = svc.Calculate(context.Background(), Request{Theme: models.ThemeCurves, Mode: "spiral"})
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = svc.Fields(models.ThemeConverter, "ton-to-mlc")
	assert.NoError(t, err)
}

func TestService_Calculate_RejectsOutOfRangeResults(t *testing.T) {
	recorder := new(mockRecorder)
	svc := NewService(recorder, nil)

	cases := []struct {
		name  string
		theme string
		mode  string
		in    models.Input
		field string
	}{
		{"fixation count beyond int", models.ThemeFixations, "", models.Input{"length": "1e20", "spacing": "1"}, "length"},
		{"ballast volume overflows", models.ThemeBallast, "", models.Input{"length": "1e200", "width": "1e200", "thickness": "1"}, "length"},
		{"curve radius underflows", models.ThemeCurves, "radius", models.Input{"chord": "20", "radius": "1e-320"}, "radius"},
		{"rail bars beyond int", models.ThemeRail, "advanced", models.Input{"length": "1e300", "barLength": "1e-10"}, "length"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := svc.Calculate(context.Background(), Request{Theme: tc.theme, Mode: tc.mode, Inputs: tc.in, Save: true})

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
			assert.Empty(t, resp.Result.Summary)
			assert.Nil(t, resp.Entry)
		})
	}
	recorder.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Calculate_LargeButRepresentableCounts(t *testing.T) {
	svc := NewService(nil, nil)

	resp, err := svc.Calculate(context.Background(), Request{
		Theme:  models.ThemeFixations,
		Inputs: models.Input{"length": "1e9", "spacing": "0.5"},
	})
	require.NoError(t, err)
	assert.Equal(t, "2000000000 fixações necessárias", resp.Result.Summary)
}
