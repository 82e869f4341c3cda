package shared

// Background task types
const (
	TypeRecordView      = "guide:record_view"
	TypeReconcileRecent = "guide:reconcile_recent"
)

// Queues
const (
	QueueViews       = "views"
	QueueMaintenance = "maintenance"
)

// Queues is the weight map handed to the asynq server.
var Queues = map[string]int{
	QueueViews:       10,
	QueueMaintenance: 2,
}

// RecordViewPayload represents a single page view to be counted
type RecordViewPayload struct {
	Slug string `json:"slug"`
}

// ReconcileRecentPayload carries no data; the job always walks the whole index.
type ReconcileRecentPayload struct{}
