package ai

import (
	"github.com/udisondev/lanewars/internal/model"
	"github.com/udisondev/lanewars/internal/world"
)

// EvaluateTransition decides the transition c wants this tick. It reads only c and snap.
//
//	MOVE    -> PURSUIT  selector found a hostile (target carried in the transition)
//	PURSUIT -> ATTACK   distance < AttackRadius
//	PURSUIT -> MOVE     distance > PursuitRadius, or the target is gone
//	ATTACK              no exit
func (m *Machine) EvaluateTransition(c *model.Creep, snap *world.Snapshot) (model.Transition, bool, error) {
	switch c.State() {
	case model.StateMove:
		target, ok := m.selector.SelectTarget(c, snap)
		if !ok {
			return model.Transition{}, false, nil
		}
		return model.Transition{To: model.StatePursuit, Target: target}, true, nil

	case model.StatePursuit:
		target, ok := c.PursuitTarget()
		if !ok {
			return model.Transition{}, false, invariantf("creep %d in PURSUIT without pursuit target", c.ID())
		}
		pos, ok := snap.Position(target)
		if !ok {
			return model.Transition{To: model.StateMove}, true, nil
		}
		d := c.Position().PlanarDistance(pos)
		if d < m.params.AttackRadius {
			return model.Transition{To: model.StateAttack, Target: target}, true, nil
		}
		if d > m.params.PursuitRadius {
			return model.Transition{To: model.StateMove}, true, nil
		}
		return model.Transition{}, false, nil

	default:
		return model.Transition{}, false, nil
	}
}

// RequestTransitions evaluates every creep against snap and buffers the requests.
func (m *Machine) RequestTransitions(creeps []*model.Creep, snap *world.Snapshot) error {
	for _, c := range creeps {
		tr, ok, err := m.EvaluateTransition(c, snap)
		if err != nil {
			return err
		}
		if ok {
			c.Request(tr)
		}
	}
	return nil
}

// ApplyTransitions commits every buffered request whose target state differs from the
// current one. Pending buffers are cleared either way.
func (m *Machine) ApplyTransitions(creeps []*model.Creep) error {
	for _, c := range creeps {
		tr, ok := c.Pending()
		c.ClearPending()
		if !ok || tr.To == c.State() {
			continue
		}
		if err := m.Commit(c, tr); err != nil {
			return err
		}
	}
	return nil
}

// Commit runs exit(current), enter(next) and stores the new state.
func (m *Machine) Commit(c *model.Creep, tr model.Transition) error {
	from := c.State()

	m.exit(c, from)
	if err := m.enter(c, tr); err != nil {
		return err
	}
	c.SetState(tr.To)

	if err := c.CheckInvariant(); err != nil {
		return err
	}

	debugCreep("creep state changed", c, "from", from, "to", tr.To)
	if m.onStateChange != nil {
		m.onStateChange(c, from, tr.To)
	}
	return nil
}

func (m *Machine) exit(c *model.Creep, s model.State) {
	switch s {
	case model.StateMove:
		c.ClearWaypoint()
	case model.StatePursuit:
		c.ClearPursuitTarget()
	case model.StateAttack:
		c.ClearAttackTarget()
	}
}

func (m *Machine) enter(c *model.Creep, tr model.Transition) error {
	switch tr.To {
	case model.StateIdle:
		return nil
	case model.StateMove:
		wp := c.Resume()
		pos, ok := m.graph.Position(wp)
		if !ok {
			return invariantf("creep %d resumes on unknown waypoint %d", c.ID(), wp)
		}
		c.SetWaypoint(wp)
		c.SetMoveTarget(pos.XY())
		return nil
	case model.StatePursuit:
		c.SetPursuitTarget(tr.Target)
		return nil
	case model.StateAttack:
		c.SetAttackTarget(tr.Target)
		return nil
	default:
		return invariantf("creep %d requested unknown state %d", c.ID(), tr.To)
	}
}
