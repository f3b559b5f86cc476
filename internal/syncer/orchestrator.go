package syncer

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/asset-sync/internal/events"
	"github.com/spec-kit/asset-sync/internal/observability"
)

// StageState tracks a stage through its lifecycle.
type StageState string

const (
	StagePending   StageState = "pending"
	StageRunning   StageState = "running"
	StageSucceeded StageState = "succeeded"
	StageFailed    StageState = "failed"
	StageSkipped   StageState = "skipped"
)

// StageStatus is the externally visible state of one stage.
type StageStatus struct {
	Entity      string     `json:"entity"`
	State       StageState `json:"state"`
	Fetched     int        `json:"fetched"`
	Upserted    int        `json:"upserted"`
	Dropped     int        `json:"dropped"`
	InvalidRefs int64      `json:"invalid_refs"`
	DurationSec float64    `json:"duration_sec"`
	Error       string     `json:"error,omitempty"`
}

type stage struct {
	entity string
	run    func(ctx context.Context) (stageStats, error)
}

// Orchestrator runs the stages in dependency order: locations and employees
// before addresses, addresses before the asset-side entities, offboards
// last. A stage failure halts the run; downstream stages are skipped so a
// broken parent table never feeds reference reconciliation garbage.
type Orchestrator struct {
	runner     *Runner
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger

	stages []stage

	mu     gosync.Mutex
	status map[string]*StageStatus
}

// NewOrchestrator wires the full stage pipeline.
func NewOrchestrator(runner *Runner, dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) *Orchestrator {
	o := &Orchestrator{
		runner:     runner,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
		status:     make(map[string]*StageStatus),
	}
	o.stages = []stage{
		{entity: "warehouses", run: runner.syncWarehouses},
		{entity: "offices", run: runner.syncOffices},
		{entity: "employees", run: runner.syncEmployees},
		{entity: "addresses", run: runner.syncAddresses},
		{entity: "assets", run: runner.syncAssets},
		{entity: "orders", run: runner.syncOrders},
		{entity: "products", run: runner.syncProducts},
		{entity: "offboards", run: runner.syncOffboards},
	}
	for _, s := range o.stages {
		o.status[s.entity] = &StageStatus{Entity: s.entity, State: StagePending}
	}
	return o
}

// Entities returns the stage names in execution order.
func (o *Orchestrator) Entities() []string {
	out := make([]string, len(o.stages))
	for i, s := range o.stages {
		out[i] = s.entity
	}
	return out
}

// Run executes every stage in order. The first failure stops the run,
// leaves the remaining stages skipped, and is returned to the caller.
func (o *Orchestrator) Run(ctx context.Context) error {
	started := time.Now()
	var runErr error
	succeeded, failed, skipped := 0, 0, 0

	for _, s := range o.stages {
		if runErr != nil {
			o.setState(s.entity, StageSkipped)
			skipped++
			continue
		}
		if err := o.runStage(ctx, s); err != nil {
			runErr = err
			failed++
			continue
		}
		succeeded++
	}

	duration := time.Since(started)
	o.publish(events.Event{
		Type:      events.EventRunFinished,
		Timestamp: time.Now(),
		Payload: events.RunFinishedPayload{
			Succeeded:   succeeded,
			Failed:      failed,
			Skipped:     skipped,
			DurationSec: duration.Seconds(),
		},
	})
	o.logger.Info("sync run finished",
		zap.Int("succeeded", succeeded),
		zap.Int("failed", failed),
		zap.Int("skipped", skipped),
		zap.Duration("duration", duration))
	return runErr
}

// RunEntity executes a single named stage off the normal pipeline. Parent
// tables are taken as-is, so references to rows a skipped stage would have
// produced reconcile to null or are dropped.
func (o *Orchestrator) RunEntity(ctx context.Context, entity string) error {
	for _, s := range o.stages {
		if s.entity == entity {
			return o.runStage(ctx, s)
		}
	}
	return fmt.Errorf("unknown entity %q", entity)
}

func (o *Orchestrator) runStage(ctx context.Context, s stage) error {
	o.setState(s.entity, StageRunning)
	o.publish(events.Event{
		Type:      events.EventStageStarted,
		Entity:    s.entity,
		Timestamp: time.Now(),
	})
	o.logger.Info("stage started", zap.String("entity", s.entity))

	started := time.Now()
	stats, err := s.run(ctx)
	duration := time.Since(started)
	invalidRefs := o.metrics.InvalidRefs(s.entity)

	payload := events.StageResultPayload{
		Fetched:     stats.Fetched,
		Upserted:    stats.Upserted,
		InvalidRefs: invalidRefs,
		Dropped:     stats.Dropped,
		DurationSec: duration.Seconds(),
	}
	if err != nil {
		payload.Error = err.Error()
		o.record(s.entity, StageFailed, stats, invalidRefs, duration, err)
		o.publish(events.Event{
			Type:      events.EventStageFailed,
			Entity:    s.entity,
			Timestamp: time.Now(),
			Payload:   payload,
		})
		o.logger.Error("stage failed",
			zap.String("entity", s.entity),
			zap.Duration("duration", duration),
			zap.Error(err))
		return err
	}

	o.record(s.entity, StageSucceeded, stats, invalidRefs, duration, nil)
	o.publish(events.Event{
		Type:      events.EventStageSucceeded,
		Entity:    s.entity,
		Timestamp: time.Now(),
		Payload:   payload,
	})
	o.logger.Info("stage succeeded",
		zap.String("entity", s.entity),
		zap.Int("fetched", stats.Fetched),
		zap.Int("upserted", stats.Upserted),
		zap.Int("dropped", stats.Dropped),
		zap.Int64("invalid_refs", invalidRefs),
		zap.Duration("duration", duration))
	return nil
}

// Snapshot returns the status of every stage in execution order.
func (o *Orchestrator) Snapshot() []StageStatus {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]StageStatus, 0, len(o.stages))
	for _, s := range o.stages {
		out = append(out, *o.status[s.entity])
	}
	return out
}

func (o *Orchestrator) setState(entity string, state StageState) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.status[entity].State = state
}

func (o *Orchestrator) record(entity string, state StageState, stats stageStats, invalidRefs int64, duration time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	st := o.status[entity]
	st.State = state
	st.Fetched = stats.Fetched
	st.Upserted = stats.Upserted
	st.Dropped = stats.Dropped
	st.InvalidRefs = invalidRefs
	st.DurationSec = duration.Seconds()
	if err != nil {
		st.Error = err.Error()
	}
}

func (o *Orchestrator) publish(event events.Event) {
	if o.dispatcher == nil {
		return
	}
	if err := o.dispatcher.Publish(context.Background(), event); err != nil {
		o.logger.Warn("event publish failed", zap.Error(err))
	}
}
