package model

import (
	"errors"
	"fmt"

	"github.com/udisondev/lanewars/internal/path"
	"github.com/udisondev/lanewars/internal/vec"
)

// ErrInvariant marks a violated creep state invariant. It is a programming error, callers
// abort the tick instead of recovering.
var ErrInvariant = errors.New("creep invariant violated")

// Creep is a lane-walking combat unit.
//
// Exactly one state-defining reference is present at a time: the waypoint in MOVE, the
// pursuit target in PURSUIT, the attack target in ATTACK. IDLE carries none.
type Creep struct {
	id      ObjectID
	modelID ObjectID
	team    Team

	position vec.Vec3
	heading  vec.Quat

	state   State
	pending Transition
	hasNext bool

	waypoint   path.WaypointID
	resume     path.WaypointID // lane cursor, survives engagements
	moveTarget vec.Vec2

	pursuitTarget Target
	hasPursuit    bool
	attackTarget  Target
	hasAttack     bool

	anim AnimTag
}

// NewCreep creates an IDLE creep. first is the waypoint it heads to once it enters MOVE.
func NewCreep(id, modelID ObjectID, team Team, position vec.Vec3, heading vec.Quat, first path.WaypointID) *Creep {
	return &Creep{
		id:       id,
		modelID:  modelID,
		team:     team,
		position: position,
		heading:  heading,
		state:    StateIdle,
		waypoint: path.NoWaypoint,
		resume:   first,
		anim:     AnimIdle,
	}
}

// ID returns creep object ID
func (c *Creep) ID() ObjectID { return c.id }

// ModelID returns the id of the linked visual model entity
func (c *Creep) ModelID() ObjectID { return c.modelID }

// Team returns creep team
func (c *Creep) Team() Team { return c.team }

// Position returns current position
func (c *Creep) Position() vec.Vec3 { return c.position }

// SetPosition sets current position. Used by the movement primitive.
func (c *Creep) SetPosition(p vec.Vec3) { c.position = p }

// Heading returns current orientation
func (c *Creep) Heading() vec.Quat { return c.heading }

// SetHeading sets current orientation
func (c *Creep) SetHeading(q vec.Quat) { c.heading = q }

// State returns committed state
func (c *Creep) State() State { return c.state }

// SetState commits a new state. Only the transition apply pass calls it.
func (c *Creep) SetState(s State) { c.state = s }

// Anim returns the animation tag of the visual model
func (c *Creep) Anim() AnimTag { return c.anim }

// SetAnim sets the animation tag of the visual model
func (c *Creep) SetAnim(a AnimTag) { c.anim = a }

// Request buffers a transition for the apply pass. A later request in the same tick
// replaces the earlier one.
func (c *Creep) Request(tr Transition) {
	c.pending = tr
	c.hasNext = true
}

// Pending returns the buffered transition.
func (c *Creep) Pending() (Transition, bool) {
	return c.pending, c.hasNext
}

// ClearPending drops the buffered transition.
func (c *Creep) ClearPending() {
	c.pending = Transition{}
	c.hasNext = false
}

// Waypoint returns the current waypoint (MOVE only).
func (c *Creep) Waypoint() (path.WaypointID, bool) {
	return c.waypoint, c.waypoint != path.NoWaypoint
}

// SetWaypoint sets the current waypoint and the lane cursor.
func (c *Creep) SetWaypoint(id path.WaypointID) {
	c.waypoint = id
	c.resume = id
}

// ClearWaypoint removes the waypoint reference and its movement target. The lane cursor
// is kept so MOVE can resume where it stopped.
func (c *Creep) ClearWaypoint() {
	c.waypoint = path.NoWaypoint
	c.moveTarget = vec.Vec2{}
}

// Resume returns the lane cursor.
func (c *Creep) Resume() path.WaypointID { return c.resume }

// MoveTarget returns the planar position of the current waypoint.
func (c *Creep) MoveTarget() vec.Vec2 { return c.moveTarget }

// SetMoveTarget sets the planar movement target.
func (c *Creep) SetMoveTarget(p vec.Vec2) { c.moveTarget = p }

// PursuitTarget returns the pursuit target (PURSUIT only).
func (c *Creep) PursuitTarget() (Target, bool) {
	return c.pursuitTarget, c.hasPursuit
}

// SetPursuitTarget sets the pursuit target.
func (c *Creep) SetPursuitTarget(t Target) {
	c.pursuitTarget = t
	c.hasPursuit = true
}

// ClearPursuitTarget removes the pursuit target.
func (c *Creep) ClearPursuitTarget() {
	c.pursuitTarget = Target{}
	c.hasPursuit = false
}

// AttackTarget returns the attack target (ATTACK only).
func (c *Creep) AttackTarget() (Target, bool) {
	return c.attackTarget, c.hasAttack
}

// SetAttackTarget sets the attack target.
func (c *Creep) SetAttackTarget(t Target) {
	c.attackTarget = t
	c.hasAttack = true
}

// ClearAttackTarget removes the attack target.
func (c *Creep) ClearAttackTarget() {
	c.attackTarget = Target{}
	c.hasAttack = false
}

// EngagementTarget returns whichever target field is present.
func (c *Creep) EngagementTarget() (Target, bool) {
	if c.hasPursuit {
		return c.pursuitTarget, true
	}
	if c.hasAttack {
		return c.attackTarget, true
	}
	return Target{}, false
}

// CheckInvariant verifies that the present state fields match the committed state.
func (c *Creep) CheckInvariant() error {
	_, hasWaypoint := c.Waypoint()

	var want [3]bool
	switch c.state {
	case StateIdle:
	case StateMove:
		want[0] = true
	case StatePursuit:
		want[1] = true
	case StateAttack:
		want[2] = true
	default:
		return fmt.Errorf("%w: creep %d has unknown state %d", ErrInvariant, c.id, c.state)
	}

	got := [3]bool{hasWaypoint, c.hasPursuit, c.hasAttack}
	if got != want {
		return fmt.Errorf("%w: creep %d in %s has waypoint=%t pursuit=%t attack=%t",
			ErrInvariant, c.id, c.state, got[0], got[1], got[2])
	}
	return nil
}
