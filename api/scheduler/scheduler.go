package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/savrhq/order-notifications-api/databases"
	"github.com/savrhq/order-notifications-api/dispatch"
)

// Scheduler handles periodic background jobs for the notification service
type Scheduler struct {
	cron       *cron.Cron
	Client     databases.ClientHelper
	Dispatcher *dispatch.Dispatcher
}

// NewScheduler creates a new scheduler instance
func NewScheduler(client databases.ClientHelper, d *dispatch.Dispatcher) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		Client:     client,
		Dispatcher: d,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// hourly heartbeat: report the running fan-out tally and verify the
	// database is still reachable
	_, err := s.cron.AddFunc("0 * * * *", s.reportDispatchStats)
	if err != nil {
		zap.S().Errorw("failed to register heartbeat job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("notification heartbeat scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("notification heartbeat scheduler stopped")
}

func (s *Scheduler) reportDispatchStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.Client.Ping(ctx); err != nil {
		zap.S().Errorw("database ping failed", "error", err)
	}

	sent, failed := s.Dispatcher.Stats()
	zap.S().Infow("dispatch heartbeat",
		"sent", sent,
		"failed", failed,
	)
}
