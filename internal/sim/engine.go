// Package sim drives the creep engine: one Step is one tick of ordered passes.
package sim

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/lanewars/internal/ai"
	"github.com/udisondev/lanewars/internal/model"
	"github.com/udisondev/lanewars/internal/path"
	"github.com/udisondev/lanewars/internal/spawn"
	"github.com/udisondev/lanewars/internal/steering"
	"github.com/udisondev/lanewars/internal/world"
)

// Options configures an Engine.
type Options struct {
	Machine  ai.Params
	Steering steering.Params

	SpawnInterval     float64 // seconds between batches
	SpawnInitialDelay float64 // seconds before the first timed batch
	SpawnOnStart      bool    // spawn one batch in Start
}

// DefaultOptions returns the lane defaults.
func DefaultOptions() Options {
	return Options{
		Machine:           ai.DefaultParams(),
		Steering:          steering.DefaultParams(),
		SpawnInterval:     5,
		SpawnInitialDelay: 5,
	}
}

// BaseDestroyedFunc is called after a destroyed base is removed from the world.
type BaseDestroyedFunc func(b *model.Base)

// Engine owns a world and runs its passes. Not safe for concurrent use.
type Engine struct {
	world   *world.World
	machine *ai.Machine
	spawner *spawn.Spawner
	timer   *spawn.Timer
	opts    Options

	journal         Journal
	onBaseDestroyed BaseDestroyedFunc

	tick uint64
}

// NewEngine creates an engine over w moving creeps through move.
func NewEngine(w *world.World, move steering.MoveFunc, opts Options) *Engine {
	machine := ai.NewMachine(opts.Machine, w.Graph(), steering.NewDriver(opts.Steering, move))

	e := &Engine{
		world:   w,
		machine: machine,
		spawner: spawn.NewSpawner(w, machine),
		timer:   spawn.NewTimer(opts.SpawnInitialDelay, opts.SpawnInterval),
		opts:    opts,
		journal: NopJournal{},
	}

	machine.SetStateChangeFunc(e.recordStateChange)
	machine.SetWaypointFunc(e.recordWaypoint)
	e.spawner.SetSpawnFunc(e.recordSpawn)

	return e
}

// SetJournal sets the event sink. nil restores the no-op journal.
func (e *Engine) SetJournal(j Journal) {
	if j == nil {
		j = NopJournal{}
	}
	e.journal = j
}

// SetBaseDestroyedFunc sets the base destruction callback.
func (e *Engine) SetBaseDestroyedFunc(fn BaseDestroyedFunc) {
	e.onBaseDestroyed = fn
}

// World returns the simulated world.
func (e *Engine) World() *world.World { return e.world }

// Machine returns the creep state machine.
func (e *Engine) Machine() *ai.Machine { return e.machine }

// Timer returns the spawn countdown.
func (e *Engine) Timer() *spawn.Timer { return e.timer }

// Tick returns the number of completed steps.
func (e *Engine) Tick() uint64 { return e.tick }

// Start performs the startup spawn batch when configured.
func (e *Engine) Start() error {
	if !e.opts.SpawnOnStart {
		return nil
	}
	if _, err := e.spawner.SpawnAll(); err != nil {
		return fmt.Errorf("startup spawn: %w", err)
	}
	return nil
}

// Step advances the simulation by one tick of dt seconds.
//
// Pass order: spawn, transition request, transition apply, MOVE, PURSUIT, ATTACK, base
// destruction. Apply must sit between every request and every behavior pass.
func (e *Engine) Step(dt float64) error {
	e.tick++

	if _, err := e.spawner.Update(e.timer, dt); err != nil {
		return fmt.Errorf("tick %d spawn pass: %w", e.tick, err)
	}

	creeps := e.world.Creeps()
	if err := e.machine.RequestTransitions(creeps, e.world.Snapshot()); err != nil {
		return fmt.Errorf("tick %d request pass: %w", e.tick, err)
	}
	if err := e.machine.ApplyTransitions(creeps); err != nil {
		return fmt.Errorf("tick %d apply pass: %w", e.tick, err)
	}

	if err := e.machine.MovePass(creeps, dt); err != nil {
		return fmt.Errorf("tick %d move pass: %w", e.tick, err)
	}
	if err := e.machine.PursuitPass(creeps, e.world.Snapshot(), dt); err != nil {
		return fmt.Errorf("tick %d pursuit pass: %w", e.tick, err)
	}
	if err := e.machine.AttackPass(creeps, e.world.Snapshot()); err != nil {
		return fmt.Errorf("tick %d attack pass: %w", e.tick, err)
	}

	e.destroyBases()
	return nil
}

// destroyBases removes bases with no health left.
func (e *Engine) destroyBases() {
	for _, b := range slices.Clone(e.world.Bases()) {
		if !b.Destroyed() {
			continue
		}
		e.world.RemoveBase(b.ID)

		slog.Info("base destroyed", "objectID", b.ID, "team", b.Team, "tick", e.tick)
		e.journal.Record(Event{
			Tick:     e.tick,
			Kind:     EventBaseDestroyed,
			ObjectID: b.ID,
			Team:     b.Team,
			Position: b.Position,
		})
		if e.onBaseDestroyed != nil {
			e.onBaseDestroyed(b)
		}
	}
}

func (e *Engine) recordSpawn(c *model.Creep, sp world.SpawnPoint) {
	wp, _ := c.Waypoint()
	e.journal.Record(Event{
		Tick:     e.tick,
		Kind:     EventCreepSpawned,
		ObjectID: c.ID(),
		Team:     c.Team(),
		To:       c.State(),
		Waypoint: wp,
		Position: sp.Position,
	})
}

func (e *Engine) recordStateChange(c *model.Creep, from, to model.State) {
	// IDLE -> MOVE is part of spawning and journaled as creep_spawned.
	if from == model.StateIdle {
		return
	}
	target, _ := c.EngagementTarget()
	e.journal.Record(Event{
		Tick:     e.tick,
		Kind:     EventStateChanged,
		ObjectID: c.ID(),
		Team:     c.Team(),
		From:     from,
		To:       to,
		Target:   target,
		Position: c.Position(),
	})
}

func (e *Engine) recordWaypoint(c *model.Creep, reached, _ path.WaypointID) {
	e.journal.Record(Event{
		Tick:     e.tick,
		Kind:     EventWaypointReached,
		ObjectID: c.ID(),
		Team:     c.Team(),
		Waypoint: reached,
		Position: c.Position(),
	})
}
