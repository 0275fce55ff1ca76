// Package ai implements the creep state machine.
//
// A tick runs three kinds of passes in a fixed order:
//
//  1. RequestTransitions: every MOVE and PURSUIT creep evaluates its transition against a
//     snapshot and buffers the request on itself. Nothing else is mutated.
//  2. ApplyTransitions: exit effect of the old state, enter effect of the new one, commit.
//  3. MovePass, PursuitPass, AttackPass: steering and animation for creeps now in that state.
//
// Keeping evaluation and application apart means no pass reads another creep while state
// fields are half-swapped.
package ai

import (
	"fmt"

	"github.com/udisondev/lanewars/internal/model"
	"github.com/udisondev/lanewars/internal/path"
	"github.com/udisondev/lanewars/internal/steering"
)

// Params holds state machine radii.
type Params struct {
	SearchRadius     float64 // selector radius, inclusive
	AttackRadius     float64 // PURSUIT -> ATTACK below this distance
	PursuitRadius    float64 // PURSUIT -> MOVE above this distance
	ArrivalThreshold float64 // waypoint reached below this distance

	// UnboundedBaseSearch lets the base tier ignore SearchRadius.
	UnboundedBaseSearch bool
}

// DefaultParams returns the lane creep radii.
func DefaultParams() Params {
	return Params{
		SearchRadius:     10,
		AttackRadius:     5,
		PursuitRadius:    10,
		ArrivalThreshold: 1.0,
	}
}

// StateChangeFunc is called after a transition is committed.
type StateChangeFunc func(c *model.Creep, from, to model.State)

// WaypointFunc is called when a MOVE creep reaches a waypoint and retargets.
type WaypointFunc func(c *model.Creep, reached, next path.WaypointID)

// Machine runs creep transitions and per-state behavior.
type Machine struct {
	params   Params
	graph    *path.Graph
	selector *Selector
	driver   *steering.Driver

	onStateChange StateChangeFunc
	onWaypoint    WaypointFunc
}

// NewMachine creates a state machine over graph, steering through driver.
func NewMachine(params Params, graph *path.Graph, driver *steering.Driver) *Machine {
	return &Machine{
		params:   params,
		graph:    graph,
		selector: NewSelector(params.SearchRadius, params.UnboundedBaseSearch),
		driver:   driver,
	}
}

// SetStateChangeFunc sets the committed-transition callback.
func (m *Machine) SetStateChangeFunc(fn StateChangeFunc) {
	m.onStateChange = fn
}

// SetWaypointFunc sets the waypoint-reached callback.
func (m *Machine) SetWaypointFunc(fn WaypointFunc) {
	m.onWaypoint = fn
}

// Params returns machine parameters.
func (m *Machine) Params() Params {
	return m.params
}

// Selector returns the target selector.
func (m *Machine) Selector() *Selector {
	return m.selector
}

func invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{model.ErrInvariant}, args...)...)
}
