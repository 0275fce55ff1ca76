package sim

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/udisondev/lanewars/internal/ai"
)

// Runner steps an engine on a fixed ticker. The engine must not be touched by other
// goroutines while Start is running.
type Runner struct {
	engine   *Engine
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once

	summaryEvery uint64 // ticks between summary logs, 0 disables
	maxTicks     uint64 // 0 means unbounded
}

// NewRunner creates runner ticking tickRate times per second.
func NewRunner(engine *Engine, tickRate int) *Runner {
	if tickRate <= 0 {
		tickRate = 1
	}
	return &Runner{
		engine:   engine,
		interval: time.Second / time.Duration(tickRate),
		stopCh:   make(chan struct{}),
	}
}

// SetSummaryEvery makes the runner log a summary every n ticks.
func (r *Runner) SetSummaryEvery(n uint64) {
	r.summaryEvery = n
}

// SetMaxTicks stops the runner after n ticks.
func (r *Runner) SetMaxTicks(n uint64) {
	r.maxTicks = n
}

// Interval returns the tick interval.
func (r *Runner) Interval() time.Duration {
	return r.interval
}

// Start runs the tick loop (blocks until context is canceled, Stop is called, the tick
// limit is reached or a step fails).
func (r *Runner) Start(ctx context.Context) error {
	if err := r.engine.Start(); err != nil {
		return err
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	dt := r.interval.Seconds()
	slog.Info("simulation started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("simulation stopping", "tick", r.engine.Tick())
			return ctx.Err()

		case <-r.stopCh:
			slog.Info("simulation stopped", "tick", r.engine.Tick())
			return nil

		case <-ticker.C:
			if err := r.engine.Step(dt); err != nil {
				return fmt.Errorf("simulation step: %w", err)
			}

			tick := r.engine.Tick()
			if r.summaryEvery > 0 && tick%r.summaryEvery == 0 {
				slog.Info("simulation summary", r.engine.Summary().LogArgs()...)
			} else if ai.IsDebugEnabled() {
				slog.Debug("tick completed", "tick", tick, "creeps", r.engine.World().CreepCount())
			}

			if r.maxTicks > 0 && tick >= r.maxTicks {
				slog.Info("simulation tick limit reached", "tick", tick)
				return nil
			}
		}
	}
}

// Stop stops the tick loop. Safe to call more than once.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// RunTicks steps the engine n times with a fixed dt, without a ticker.
func RunTicks(e *Engine, n int, dt float64) error {
	if err := e.Start(); err != nil {
		return err
	}
	for range n {
		if err := e.Step(dt); err != nil {
			return err
		}
	}
	return nil
}
