package calculations

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/railtools/internal/domain/models"
)

// ErrUnknownTheme indicates no calculator is registered for the theme id.
var ErrUnknownTheme = errors.New("unknown calculation theme")

// ErrUnknownMode indicates the theme does not offer the requested mode.
var ErrUnknownMode = errors.New("unknown calculation mode")

// HistoryRecorder persists successful calculations.
type HistoryRecorder interface {
	Append(ctx context.Context, result models.Result, images ...string) models.HistoryEntry
}

// Request is one calculation as submitted by a caller.
type Request struct {
	Theme  string       `json:"-"`
	Mode   string       `json:"mode"`
	Inputs models.Input `json:"inputs"`
	Save   bool         `json:"save"`
	Images []string     `json:"images,omitempty"`
}

// Response carries the computed result and, when saved, the history entry.
type Response struct {
	Result models.Result        `json:"result"`
	Entry  *models.HistoryEntry `json:"entry,omitempty"`
}

// Service dispatches calculation requests to the theme calculators.
type Service struct {
	history HistoryRecorder
	logger  *zap.Logger
}

// NewService constructs a calculation dispatcher. history may be nil, in
// which case nothing is recorded.
func NewService(history HistoryRecorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{history: history, logger: logger}
}

// Themes lists every theme that has a calculator.
func (s *Service) Themes() []models.Theme {
	var out []models.Theme
	for _, t := range models.Themes() {
		if _, ok := calculators[t.ID]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Calculator returns the calculator of a theme.
func (s *Service) Calculator(themeID string) (Calculator, error) {
	calc, ok := Lookup(themeID)
	if !ok {
		return Calculator{}, fmt.Errorf("%w: %s", ErrUnknownTheme, themeID)
	}
	return calc, nil
}

// Fields lists the inputs expected by a theme mode.
func (s *Service) Fields(themeID, mode string) ([]Field, error) {
	m, err := s.mode(themeID, mode)
	if err != nil {
		return nil, err
	}
	return m.Fields, nil
}

// Calculate validates and evaluates one request. Invalid input never reaches
// the formula nor the history.
func (s *Service) Calculate(ctx context.Context, req Request) (Response, error) {
	m, err := s.mode(req.Theme, req.Mode)
	if err != nil {
		return Response{}, err
	}

	s.logger.Debug("dispatching calculation", zap.String("theme", req.Theme), zap.String("mode", m.ID), zap.Any("inputs", req.Inputs))

	result, err := m.Run(req.Inputs)
	if err != nil {
		s.logger.Debug("calculation rejected", zap.String("theme", req.Theme), zap.Error(err))
		return Response{}, err
	}

	resp := Response{Result: result}
	if req.Save && s.history != nil {
		entry := s.history.Append(ctx, result, req.Images...)
		resp.Entry = &entry
	}

	return resp, nil
}

func (s *Service) mode(themeID, mode string) (Mode, error) {
	calc, err := s.Calculator(themeID)
	if err != nil {
		return Mode{}, err
	}
	m, ok := calc.Mode(mode)
	if !ok {
		return Mode{}, fmt.Errorf("%w: %s/%s", ErrUnknownMode, themeID, mode)
	}
	return m, nil
}
