package pipeline

import (
	"context"

	"github.com/poiesic/arbor/core"
)

// Stage identifies a pipeline progress milestone.
type Stage string

const (
	// StageBranchStarted fires when a branch is admitted.
	StageBranchStarted Stage = "branch_started"
	// StageBranchCompleted fires when a branch reports back.
	StageBranchCompleted Stage = "branch_completed"
	// StageConsolidated fires after fan-in produced the consolidated record.
	StageConsolidated Stage = "consolidated"
	// StageStored fires after the record was persisted.
	StageStored Stage = "stored"
)

// Event is one progress notification, addressed to the requesting user so
// sinks can route it in multi-user deployments. Percent is 0 for branch
// starts and 100 for branch completions; consolidation-level stages omit
// Modality.
type Event struct {
	UserID   string
	Stage    Stage
	Modality core.Modality
	Percent  int
	Message  string
}

// ProgressSink receives progress events. Sink errors are swallowed by the
// coordinator; progress is advisory and never affects the run.
type ProgressSink interface {
	Publish(ctx context.Context, event Event) error
}

// NopSink discards all events.
type NopSink struct{}

// Publish implements ProgressSink.
func (NopSink) Publish(context.Context, Event) error { return nil }
