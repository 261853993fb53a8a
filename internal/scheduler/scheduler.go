package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/railtools/internal/config"
	"github.com/mamadbah2/railtools/internal/domain/models"
)

const exportTimeout = 2 * time.Minute

// Exporter pushes history and stock to an external sheet.
type Exporter interface {
	ExportToSheets(ctx context.Context) (models.ExportResult, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	exporter Exporter
	schedule string
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance running in the configured
// timezone.
func NewScheduler(cfg config.ReportingConfig, exporter Exporter, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour, dom, month, dow).
	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:     c,
		exporter: exporter,
		schedule: cfg.CronSchedule,
		logger:   logger,
	}, nil
}

// Start registers the export job and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.runExport); err != nil {
		return fmt.Errorf("schedule sheets export %q: %w", s.schedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runExport() {
	s.logger.Info("running scheduled sheets export")
	ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
	defer cancel()

	result, err := s.exporter.ExportToSheets(ctx)
	if err != nil {
		s.logger.Error("scheduled sheets export failed", zap.Error(err))
		return
	}

	s.logger.Info("scheduled sheets export finished",
		zap.Int("history_rows", result.HistoryRows),
		zap.Int("inventory_rows", result.InventoryRows))
}
