package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventStageStarted   EventType = "stage_started"
	EventStageSucceeded EventType = "stage_succeeded"
	EventStageFailed    EventType = "stage_failed"
	EventRunFinished    EventType = "run_finished"
)

// Event represents a sync lifecycle event emitted by the orchestrator.
type Event struct {
	Type      EventType   `json:"type"`
	Entity    string      `json:"entity,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// StageResultPayload carries the per-stage outcome.
type StageResultPayload struct {
	Fetched     int     `json:"fetched"`
	Upserted    int     `json:"upserted"`
	InvalidRefs int64   `json:"invalid_refs"`
	Dropped     int     `json:"dropped"`
	DurationSec float64 `json:"duration_sec"`
	Error       string  `json:"error,omitempty"`
}

// RunFinishedPayload summarizes a full run.
type RunFinishedPayload struct {
	Succeeded   int     `json:"succeeded"`
	Failed      int     `json:"failed"`
	Skipped     int     `json:"skipped"`
	DurationSec float64 `json:"duration_sec"`
}
