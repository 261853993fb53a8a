package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/railtools/internal/domain/models"
	"github.com/mamadbah2/railtools/pkg/clients/railtools"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) Themes(ctx context.Context) ([]models.Theme, error) {
	args := m.Called(ctx)
	themes, _ := args.Get(0).([]models.Theme)
	return themes, args.Error(1)
}

func (m *mockClient) Calculate(ctx context.Context, theme string, req railtools.CalculateRequest) (*railtools.CalculateResponse, error) {
	args := m.Called(ctx, theme, req)
	resp, _ := args.Get(0).(*railtools.CalculateResponse)
	return resp, args.Error(1)
}

func (m *mockClient) History(ctx context.Context) ([]models.HistoryEntry, error) {
	args := m.Called(ctx)
	entries, _ := args.Get(0).([]models.HistoryEntry)
	return entries, args.Error(1)
}

func (m *mockClient) ClearHistory(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func execute(t *testing.T, client railtools.Client, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd(client)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCalcCmd(t *testing.T) {
	client := new(mockClient)
	client.On("Calculate", mock.Anything, "ballast", railtools.CalculateRequest{
		Mode:   "volume",
		Inputs: map[string]string{"length": "100", "width": "3.5"},
		Save:   true,
	}).Return(&railtools.CalculateResponse{
		Result: models.Result{
			ThemeName:       "Balastro",
			CalculationType: "Volume e Peso de Balastro",
			Metrics:         []models.Metric{{Key: "volume", Label: "Volume", Display: "122.50", Unit: "m³"}},
			Summary:         "122.50 m³, 196.00 toneladas, 10 camiões",
		},
		Entry: &models.HistoryEntry{ID: "1700000000000"},
	}, nil)

	out, err := execute(t, client, "calc", "ballast", "--mode", "volume", "--set", "length=100", "--set", "width=3.5", "--save")

	require.NoError(t, err)
	assert.Contains(t, out, "Balastro: Volume e Peso de Balastro")
	assert.Contains(t, out, "122.50 m³, 196.00 toneladas, 10 camiões")
	assert.Contains(t, out, "saved as 1700000000000")
	client.AssertExpectations(t)
}

func TestCalcCmd_BadAssignment(t *testing.T) {
	client := new(mockClient)

	_, err := execute(t, client, "calc", "ballast", "--set", "length")

	assert.ErrorContains(t, err, "expected name=value")
	client.AssertNotCalled(t, "Calculate", mock.Anything, mock.Anything, mock.Anything)
}

func TestHistoryCmd(t *testing.T) {
	client := new(mockClient)
	client.On("History", mock.Anything).Return([]models.HistoryEntry{
		{ThemeName: "Carris", CalculationType: "Peso de Carris", Result: "60340.00 kg", Timestamp: "2024-03-01T10:00:00.000Z"},
	}, nil)
	client.On("ClearHistory", mock.Anything).Return(nil)

	out, err := execute(t, client, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "60340.00 kg")

	out, err = execute(t, client, "history", "--clear")
	require.NoError(t, err)
	assert.Contains(t, out, "history cleared")
}

func TestThemesCmd(t *testing.T) {
	client := new(mockClient)
	client.On("Themes", mock.Anything).Return(models.Themes(), nil)

	out, err := execute(t, client, "themes")

	require.NoError(t, err)
	assert.Contains(t, out, "bls-total")
}
