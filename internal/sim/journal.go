package sim

import (
	"sync"

	"github.com/udisondev/lanewars/internal/model"
	"github.com/udisondev/lanewars/internal/path"
	"github.com/udisondev/lanewars/internal/vec"
)

// EventKind names a journal event.
type EventKind string

const (
	EventCreepSpawned    EventKind = "creep_spawned"
	EventStateChanged    EventKind = "state_changed"
	EventWaypointReached EventKind = "waypoint_reached"
	EventBaseDestroyed   EventKind = "base_destroyed"
)

// Event is one journal record. Fields that do not apply to a kind are zero.
type Event struct {
	Tick     uint64
	Kind     EventKind
	ObjectID model.ObjectID
	Team     model.Team
	From     model.State
	To       model.State
	Target   model.Target
	Waypoint path.WaypointID
	Position vec.Vec3
}

// Journal receives simulation events. Record is called from the simulation goroutine and
// must not block.
type Journal interface {
	Record(ev Event)
}

// NopJournal discards events.
type NopJournal struct{}

// Record implements Journal.
func (NopJournal) Record(Event) {}

// MemoryJournal keeps events in memory.
type MemoryJournal struct {
	mu     sync.Mutex
	events []Event
}

// Record implements Journal.
func (j *MemoryJournal) Record(ev Event) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, ev)
}

// Events returns a copy of recorded events.
func (j *MemoryJournal) Events() []Event {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Event, len(j.events))
	copy(out, j.events)
	return out
}

// Count returns how many events of kind were recorded.
func (j *MemoryJournal) Count(kind EventKind) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	n := 0
	for _, ev := range j.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}
