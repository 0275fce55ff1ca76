// Package physics provides the movement primitive used by the standalone simulation: a flat
// square arena with circular static obstacles.
package physics

import (
	"math"
	"slices"

	"github.com/udisondev/lanewars/internal/model"
	"github.com/udisondev/lanewars/internal/vec"
)

// Obstacle is a static circular collider.
type Obstacle struct {
	ID     model.ObjectID
	Center vec.Vec2
	Radius float64
}

// GroundMover moves agents on a ground plane. Lateral moves that leave the arena or push
// deeper into an obstacle are rejected and reported as side collisions.
type GroundMover struct {
	halfExtent  float64
	groundZ     float64
	agentRadius float64
	obstacles   []Obstacle
}

// NewGroundMover creates a mover for a square arena of ±halfExtent. groundZ is the resting
// height of an agent's origin, agentRadius its collision radius.
func NewGroundMover(halfExtent, groundZ, agentRadius float64) *GroundMover {
	return &GroundMover{
		halfExtent:  halfExtent,
		groundZ:     groundZ,
		agentRadius: agentRadius,
	}
}

// AddObstacle registers a static collider.
func (m *GroundMover) AddObstacle(o Obstacle) {
	m.obstacles = append(m.obstacles, o)
}

// RemoveObstacle removes the collider registered under id.
func (m *GroundMover) RemoveObstacle(id model.ObjectID) bool {
	i := slices.IndexFunc(m.obstacles, func(o Obstacle) bool { return o.ID == id })
	if i < 0 {
		return false
	}
	m.obstacles = slices.Delete(m.obstacles, i, i+1)
	return true
}

// Obstacles returns registered colliders.
func (m *GroundMover) Obstacles() []Obstacle {
	return slices.Clone(m.obstacles)
}

// CanMoveTo reports whether an agent may step from `from` to `to`.
func (m *GroundMover) CanMoveTo(from, to vec.Vec2, skinWidth float64) bool {
	limit := m.halfExtent - m.agentRadius + skinWidth
	if math.Abs(to.X) > limit || math.Abs(to.Y) > limit {
		return false
	}

	for _, o := range m.obstacles {
		reach := o.Radius + m.agentRadius - skinWidth
		dTo := to.DistanceTo(o.Center)
		// Stepping out of an overlap is always allowed.
		if dTo < reach && dTo < from.DistanceTo(o.Center) {
			return false
		}
	}
	return true
}

// Move displaces c by d. It matches steering.MoveFunc.
func (m *GroundMover) Move(c *model.Creep, d vec.Vec3, skinWidth, _ float64) model.CollisionReport {
	var report model.CollisionReport

	pos := c.Position()
	planar := pos.XY()
	if d.X != 0 || d.Y != 0 {
		next := planar.Add(vec.Vec2{X: d.X, Y: d.Y})
		if m.CanMoveTo(planar, next, skinWidth) {
			planar = next
		} else {
			report.Side = true
		}
	}

	z := pos.Z + d.Z
	if z <= m.groundZ {
		z = m.groundZ
		report.Down = true
	}

	c.SetPosition(vec.Vec3{X: planar.X, Y: planar.Y, Z: z})
	return report
}
