package main

import (
	"github.com/hibiken/asynq"

	guideJob "gameguide-backend/internal/domains/guide/job"
	"gameguide-backend/internal/shared"
	"gameguide-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	recordView      *guideJob.RecordViewHandler
	reconcileRecent *guideJob.ReconcileRecentHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		recordView:      c.RecordViewJob,
		reconcileRecent: c.ReconcileRecentJob,
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// View counting (VIEW_RECORDER=queue)
	mux.HandleFunc(shared.TypeRecordView, h.recordView.ProcessTask)

	// Maintenance
	mux.HandleFunc(shared.TypeReconcileRecent, h.reconcileRecent.ProcessTask)
}
