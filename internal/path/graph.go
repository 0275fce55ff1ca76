// Package path holds the lane waypoint graph.
//
// Waypoints live in an arena and reference their successor by index. The graph is built once
// during map setup and never mutated afterwards.
package path

import (
	"errors"
	"fmt"

	"github.com/udisondev/lanewars/internal/vec"
)

// WaypointID is an index into the graph arena.
type WaypointID int32

// NoWaypoint marks an absent waypoint reference.
const NoWaypoint WaypointID = -1

// ErrEmptyLane is returned when a lane has no points.
var ErrEmptyLane = errors.New("lane has no waypoints")

// Waypoint is a single node of a lane.
type Waypoint struct {
	ID       WaypointID
	Position vec.Vec3
	Next     WaypointID // NoWaypoint at the end of a lane
}

// HasNext reports whether the waypoint has a successor.
func (w Waypoint) HasNext() bool {
	return w.Next != NoWaypoint
}

// Builder accumulates lanes before the graph is frozen.
type Builder struct {
	points []Waypoint
	lanes  []WaypointID
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddLane appends a chain of waypoints linked in the given order and returns the first one.
func (b *Builder) AddLane(points ...vec.Vec3) (WaypointID, error) {
	if len(points) == 0 {
		return NoWaypoint, ErrEmptyLane
	}

	first := WaypointID(len(b.points))
	for i, p := range points {
		id := WaypointID(len(b.points))
		next := NoWaypoint
		if i < len(points)-1 {
			next = id + 1
		}
		b.points = append(b.points, Waypoint{ID: id, Position: p, Next: next})
	}
	b.lanes = append(b.lanes, first)

	return first, nil
}

// Build freezes the builder into an immutable graph.
func (b *Builder) Build() *Graph {
	points := make([]Waypoint, len(b.points))
	copy(points, b.points)
	lanes := make([]WaypointID, len(b.lanes))
	copy(lanes, b.lanes)
	return &Graph{points: points, lanes: lanes}
}

// Graph is the immutable waypoint arena.
type Graph struct {
	points []Waypoint
	lanes  []WaypointID
}

// Len returns the number of waypoints.
func (g *Graph) Len() int {
	return len(g.points)
}

// Lanes returns the first waypoint of every lane in insertion order.
func (g *Graph) Lanes() []WaypointID {
	out := make([]WaypointID, len(g.lanes))
	copy(out, g.lanes)
	return out
}

// Waypoint returns the waypoint with the given id.
func (g *Graph) Waypoint(id WaypointID) (Waypoint, bool) {
	if id < 0 || int(id) >= len(g.points) {
		return Waypoint{}, false
	}
	return g.points[id], true
}

// Position returns the position of a waypoint.
func (g *Graph) Position(id WaypointID) (vec.Vec3, bool) {
	wp, ok := g.Waypoint(id)
	return wp.Position, ok
}

// Successor returns the next waypoint of the lane, or id itself at the end of the lane.
func (g *Graph) Successor(id WaypointID) (WaypointID, bool) {
	wp, ok := g.Waypoint(id)
	if !ok {
		return NoWaypoint, false
	}
	if !wp.HasNext() {
		return id, true
	}
	return wp.Next, true
}

// Lane returns the ordered waypoint ids of the lane starting at first.
func (g *Graph) Lane(first WaypointID) ([]WaypointID, error) {
	if _, ok := g.Waypoint(first); !ok {
		return nil, fmt.Errorf("unknown waypoint %d", first)
	}

	ids := make([]WaypointID, 0, 4)
	for id := first; ; {
		ids = append(ids, id)
		next, _ := g.Successor(id)
		if next == id {
			return ids, nil
		}
		id = next
	}
}
