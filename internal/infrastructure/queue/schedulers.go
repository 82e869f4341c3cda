package queue

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"gameguide-backend/internal/shared"
	"gameguide-backend/internal/shared/utils"
	"gameguide-backend/pkg/logger"
)

type Scheduler struct {
	scheduler         *asynq.Scheduler
	reconcileSchedule string
}

func NewScheduler(opt asynq.RedisConnOpt, reconcileSchedule string) *Scheduler {
	scheduler := asynq.NewScheduler(
		opt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler:         scheduler,
		reconcileSchedule: reconcileSchedule,
	}
}

func (s *Scheduler) RegisterMaintenanceJobs() error {
	return s.registerReconcileRecentJob()
}

// ================================================
// Reconcile recency index (RECONCILE_SCHEDULE, default every 30 minutes)
// ================================================
func (s *Scheduler) registerReconcileRecentJob() error {
	task, err := utils.MarshalTask(shared.TypeReconcileRecent, shared.ReconcileRecentPayload{})
	if err != nil {
		return err
	}

	entryID, err := s.scheduler.Register(
		s.reconcileSchedule,
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
		// A slow run must not stack up behind the next tick.
		asynq.Unique(time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register ReconcileRecent job", err)
		return fmt.Errorf("register reconcile job: %w", err)
	}

	logger.Info("Registered ReconcileRecent job", map[string]interface{}{
		"schedule": s.reconcileSchedule,
		"entry_id": entryID,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
