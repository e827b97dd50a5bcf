package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tagihin/tagihin/internal/config"
	"github.com/tagihin/tagihin/internal/logger"
	"github.com/tagihin/tagihin/internal/service"
	"github.com/tagihin/tagihin/internal/types"
)

// Scheduler runs recurring billing jobs in-process. The same jobs are also
// reachable under /cron for external schedulers; both paths share the
// service-level idempotency guards.
type Scheduler struct {
	cron           *cron.Cron
	cfg            *config.Configuration
	billingService service.BillingService
	logger         *logger.Logger
}

func New(cfg *config.Configuration, billingService service.BillingService, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:           cron.New(),
		cfg:            cfg,
		billingService: billingService,
		logger:         log,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.cfg.Billing.AutoBillSchedule, s.runAutoBilling)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Infow("scheduler started",
		"auto_bill_schedule", s.cfg.Billing.AutoBillSchedule,
	)
	return nil
}

// Stop stops the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Infow("scheduler stopped")
}

func (s *Scheduler) runAutoBilling() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = types.SetUserID(ctx, types.DefaultUserID)

	if _, err := s.billingService.ProcessAutoBilling(ctx, time.Now().UTC()); err != nil {
		s.logger.Errorw("scheduled auto-billing run failed", "error", err)
	}
}
