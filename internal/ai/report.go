package ai

import (
	"context"
	"sync"

	"github.com/hsuan0717/health/internal/engine"
	"github.com/hsuan0717/health/internal/storage"
)

// ReportState is the lifecycle of one summary generation.
type ReportState string

const (
	ReportIdle       ReportState = "idle"
	ReportGenerating ReportState = "generating"
	ReportSucceeded  ReportState = "succeeded"
	ReportFailed     ReportState = "failed"
)

// ReportSnapshot is an immutable view of the task for render loops.
type ReportSnapshot struct {
	State   ReportState
	Summary string // set when Succeeded
	Message string // set when Failed
}

// FallbackMessage is shown when generation fails; there is no retry.
const FallbackMessage = "Weekly summary is unavailable right now. Your advice list above still applies."

// ReportTask tracks a single in-flight weekly summary. A run moves
// Idle → Generating → Succeeded or Failed, and the terminal state is
// written exactly once per run.
type ReportTask struct {
	client *Client

	mu       sync.Mutex
	snapshot ReportSnapshot
}

func NewReportTask(client *Client) *ReportTask {
	return &ReportTask{
		client:   client,
		snapshot: ReportSnapshot{State: ReportIdle},
	}
}

func (t *ReportTask) Snapshot() ReportSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot
}

// Start begins generation and returns a channel that delivers the
// terminal snapshot. A second Start while a run is in flight returns nil.
func (t *ReportTask) Start(ctx context.Context, diet []storage.DietEntry, exercise []storage.ExerciseEntry, sleep []storage.SleepEntry, advice []engine.AdviceItem) <-chan ReportSnapshot {
	t.mu.Lock()
	if t.snapshot.State == ReportGenerating {
		t.mu.Unlock()
		return nil
	}
	t.snapshot = ReportSnapshot{State: ReportGenerating}
	t.mu.Unlock()

	done := make(chan ReportSnapshot, 1)
	go func() {
		summary, err := t.client.WeeklySummary(ctx, diet, exercise, sleep, advice)

		t.mu.Lock()
		if err != nil {
			t.snapshot = ReportSnapshot{State: ReportFailed, Message: FallbackMessage}
		} else {
			t.snapshot = ReportSnapshot{State: ReportSucceeded, Summary: summary}
		}
		snap := t.snapshot
		t.mu.Unlock()

		done <- snap
	}()
	return done
}
