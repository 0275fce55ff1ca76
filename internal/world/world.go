// Package world holds every entity the creep engine reads or drives.
//
// World is owned by a single simulation goroutine and is not safe for concurrent use.
// Enumeration order is always creation order, which keeps target selection deterministic.
package world

import (
	"fmt"
	"slices"

	"github.com/udisondev/lanewars/internal/model"
	"github.com/udisondev/lanewars/internal/path"
	"github.com/udisondev/lanewars/internal/vec"
)

// SpawnPoint is a lane origin owned by a team.
type SpawnPoint struct {
	Team     model.Team
	Waypoint path.WaypointID
	Position vec.Vec3
}

// World represents the battlefield
type World struct {
	graph *path.Graph
	ids   *ObjectIDGenerator

	creeps      []*model.Creep
	heroes      []*model.Hero
	bases       []*model.Base
	spawnPoints []SpawnPoint
}

// New creates a world over an immutable lane graph.
func New(graph *path.Graph) *World {
	return &World{
		graph: graph,
		ids:   NewObjectIDGenerator(),
	}
}

// Graph returns the lane graph.
func (w *World) Graph() *path.Graph {
	return w.graph
}

// AddSpawnPoint registers the lane starting at waypoint as a spawn point for team.
func (w *World) AddSpawnPoint(team model.Team, waypoint path.WaypointID) (SpawnPoint, error) {
	pos, ok := w.graph.Position(waypoint)
	if !ok {
		return SpawnPoint{}, fmt.Errorf("spawn point on unknown waypoint %d", waypoint)
	}
	sp := SpawnPoint{Team: team, Waypoint: waypoint, Position: pos}
	w.spawnPoints = append(w.spawnPoints, sp)
	return sp, nil
}

// SpawnPoints returns spawn points in registration order.
func (w *World) SpawnPoints() []SpawnPoint {
	return slices.Clone(w.spawnPoints)
}

// NewCreep creates an IDLE creep with a fresh visual model and adds it to the world.
func (w *World) NewCreep(team model.Team, position vec.Vec3, heading vec.Quat, first path.WaypointID) *model.Creep {
	c := model.NewCreep(w.ids.NextCreepID(), w.ids.NextModelID(), team, position, heading, first)
	w.creeps = append(w.creeps, c)
	return c
}

// Creeps returns all creeps in creation order. The slice is shared; callers must not
// append to it or reorder it.
func (w *World) Creeps() []*model.Creep {
	return w.creeps
}

// Creep returns creep by ID.
func (w *World) Creep(id model.ObjectID) (*model.Creep, bool) {
	for _, c := range w.creeps {
		if c.ID() == id {
			return c, true
		}
	}
	return nil, false
}

// RemoveCreep removes creep from world. Returns false if it was not present.
func (w *World) RemoveCreep(id model.ObjectID) bool {
	i := slices.IndexFunc(w.creeps, func(c *model.Creep) bool { return c.ID() == id })
	if i < 0 {
		return false
	}
	w.creeps = slices.Delete(w.creeps, i, i+1)
	return true
}

// CreepCount returns number of creeps.
func (w *World) CreepCount() int {
	return len(w.creeps)
}

// AddHero adds a hero.
func (w *World) AddHero(name string, team model.Team, position vec.Vec3) *model.Hero {
	h := &model.Hero{ID: w.ids.NextHeroID(), Name: name, Team: team, Position: position}
	w.heroes = append(w.heroes, h)
	return h
}

// Heroes returns heroes in creation order.
func (w *World) Heroes() []*model.Hero {
	return w.heroes
}

// SetHeroPosition moves a hero. Called by the external hero controller between ticks.
func (w *World) SetHeroPosition(id model.ObjectID, position vec.Vec3) error {
	for _, h := range w.heroes {
		if h.ID == id {
			h.Position = position
			return nil
		}
	}
	return fmt.Errorf("hero %d not found", id)
}

// RemoveHero removes hero from world.
func (w *World) RemoveHero(id model.ObjectID) bool {
	i := slices.IndexFunc(w.heroes, func(h *model.Hero) bool { return h.ID == id })
	if i < 0 {
		return false
	}
	w.heroes = slices.Delete(w.heroes, i, i+1)
	return true
}

// AddBase adds a base.
func (w *World) AddBase(team model.Team, position vec.Vec3, radius float64, health int32) *model.Base {
	b := &model.Base{ID: w.ids.NextBaseID(), Team: team, Position: position, Radius: radius, Health: health}
	w.bases = append(w.bases, b)
	return b
}

// Bases returns bases in creation order.
func (w *World) Bases() []*model.Base {
	return w.bases
}

// SetBaseHealth sets base health. Called by the external damage system.
func (w *World) SetBaseHealth(id model.ObjectID, health int32) error {
	for _, b := range w.bases {
		if b.ID == id {
			b.Health = health
			return nil
		}
	}
	return fmt.Errorf("base %d not found", id)
}

// RemoveBase removes base from world.
func (w *World) RemoveBase(id model.ObjectID) bool {
	i := slices.IndexFunc(w.bases, func(b *model.Base) bool { return b.ID == id })
	if i < 0 {
		return false
	}
	w.bases = slices.Delete(w.bases, i, i+1)
	return true
}
