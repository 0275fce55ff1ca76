// Package spawn creates lane creeps on a shared countdown.
package spawn

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/lanewars/internal/ai"
	"github.com/udisondev/lanewars/internal/model"
	"github.com/udisondev/lanewars/internal/steering"
	"github.com/udisondev/lanewars/internal/vec"
	"github.com/udisondev/lanewars/internal/world"
)

// SpawnFunc is called for every creep created by the spawner.
type SpawnFunc func(c *model.Creep, sp world.SpawnPoint)

// Spawner creates one creep per registered spawn point each time the timer fires.
type Spawner struct {
	world   *world.World
	machine *ai.Machine
	onSpawn SpawnFunc
}

// NewSpawner creates new spawner
func NewSpawner(w *world.World, machine *ai.Machine) *Spawner {
	return &Spawner{world: w, machine: machine}
}

// SetSpawnFunc sets the spawn callback.
func (s *Spawner) SetSpawnFunc(fn SpawnFunc) {
	s.onSpawn = fn
}

// Update advances timer by dt and spawns a batch when it fires.
func (s *Spawner) Update(timer *Timer, dt float64) ([]*model.Creep, error) {
	if !timer.Advance(dt) {
		return nil, nil
	}
	return s.SpawnAll()
}

// SpawnAll spawns one creep at every spawn point, in registration order.
func (s *Spawner) SpawnAll() ([]*model.Creep, error) {
	points := s.world.SpawnPoints()
	spawned := make([]*model.Creep, 0, len(points))

	for _, sp := range points {
		c, err := s.spawnAt(sp)
		if err != nil {
			return spawned, err
		}
		spawned = append(spawned, c)
	}

	if len(spawned) > 0 {
		slog.Debug("creep batch spawned", "count", len(spawned), "total", s.world.CreepCount())
	}
	return spawned, nil
}

// spawnAt creates a creep at sp heading for the waypoint after the lane origin and commits
// IDLE -> MOVE right away.
func (s *Spawner) spawnAt(sp world.SpawnPoint) (*model.Creep, error) {
	first, ok := s.world.Graph().Successor(sp.Waypoint)
	if !ok {
		return nil, fmt.Errorf("spawn point on unknown waypoint %d", sp.Waypoint)
	}

	heading := vec.FromRotationZ(-steering.ModelAlignment)
	c := s.world.NewCreep(sp.Team, sp.Position, heading, first)

	if err := s.machine.Commit(c, model.Transition{To: model.StateMove}); err != nil {
		s.world.RemoveCreep(c.ID())
		return nil, fmt.Errorf("entering lane for creep %d: %w", c.ID(), err)
	}

	if ai.IsDebugEnabled() {
		slog.Debug("creep spawned",
			"objectID", c.ID(),
			"team", sp.Team,
			"waypoint", first,
			"location", sp.Position)
	}
	if s.onSpawn != nil {
		s.onSpawn(c, sp)
	}
	return c, nil
}
