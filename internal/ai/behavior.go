package ai

import (
	"github.com/udisondev/lanewars/internal/model"
	"github.com/udisondev/lanewars/internal/world"
)

// MovePass walks every MOVE creep toward its waypoint.
func (m *Machine) MovePass(creeps []*model.Creep, dt float64) error {
	for _, c := range creeps {
		if c.State() != model.StateMove || c.Anim() == model.AnimAttack {
			continue
		}
		if err := m.tickMove(c, dt); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) tickMove(c *model.Creep, dt float64) error {
	wp, ok := c.Waypoint()
	if !ok {
		return invariantf("creep %d in MOVE without waypoint", c.ID())
	}

	offset := c.MoveTarget().Sub(c.Position().XY())
	if offset.Length() < m.params.ArrivalThreshold {
		m.driver.Ground(c, dt)

		next, ok := m.graph.Successor(wp)
		if !ok {
			return invariantf("creep %d on unknown waypoint %d", c.ID(), wp)
		}
		// A collision may have forced the tag idle just before arrival; the creep still
		// has to advance or it would stall on an intermediate waypoint.
		if c.Anim() != model.AnimIdle || next != wp {
			pos, _ := m.graph.Position(next)
			c.SetWaypoint(next)
			c.SetMoveTarget(pos.XY())
			c.SetAnim(model.AnimIdle)

			debugCreep("creep reached waypoint", c, "waypoint", wp, "next", next)
			if m.onWaypoint != nil {
				m.onWaypoint(c, wp, next)
			}
		}
		return nil
	}

	if c.Anim() != model.AnimWalk {
		c.SetAnim(model.AnimWalk)
	}
	// The movement target is kept on collision: resetting it loses lane progress.
	if report := m.driver.Drive(c, c.MoveTarget(), dt); report.Side {
		c.SetAnim(model.AnimIdle)
	}
	return nil
}

// PursuitPass steers every PURSUIT creep toward the live position of its target.
func (m *Machine) PursuitPass(creeps []*model.Creep, snap *world.Snapshot, dt float64) error {
	for _, c := range creeps {
		if c.State() != model.StatePursuit || c.Anim() == model.AnimAttack {
			continue
		}

		target, ok := c.PursuitTarget()
		if !ok {
			return invariantf("creep %d in PURSUIT without pursuit target", c.ID())
		}
		pos, ok := snap.Position(target)
		if !ok {
			// Target left the world; the next request pass sends the creep back to its lane.
			continue
		}

		if c.Anim() != model.AnimPursuit {
			c.SetAnim(model.AnimPursuit)
		}
		if report := m.driver.Drive(c, pos.XY(), dt); report.Side {
			c.SetAnim(model.AnimIdle)
		}
	}
	return nil
}

// AttackPass locks every ATTACK creep facing its target. Combat itself is not resolved here.
func (m *Machine) AttackPass(creeps []*model.Creep, snap *world.Snapshot) error {
	for _, c := range creeps {
		if c.State() != model.StateAttack {
			continue
		}

		target, ok := c.AttackTarget()
		if !ok {
			return invariantf("creep %d in ATTACK without attack target", c.ID())
		}
		if c.Anim() == model.AnimAttack {
			continue
		}

		if pos, ok := snap.Position(target); ok {
			m.driver.Face(c, pos.XY())
		}
		c.SetAnim(model.AnimAttack)
		debugCreep("creep attacking", c, "targetRole", target.Role, "targetID", target.ID)
	}
	return nil
}
