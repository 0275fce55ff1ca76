package testutil

import (
	"testing"

	"github.com/udisondev/lanewars/internal/model"
	"github.com/udisondev/lanewars/internal/path"
	"github.com/udisondev/lanewars/internal/vec"
	"github.com/udisondev/lanewars/internal/world"
)

// Diagonal lane endpoints used across tests.
var (
	LaneStart = vec.Vec3{X: 13, Y: 13, Z: 1}
	LaneEnd   = vec.Vec3{X: -13, Y: -13, Z: 1}
)

// NewLaneWorld builds a world with a single lane through points (LaneStart to LaneEnd when
// empty) and registers its origin as a spawn point for team.
func NewLaneWorld(t testing.TB, team model.Team, points ...vec.Vec3) (*world.World, path.WaypointID) {
	t.Helper()

	if len(points) == 0 {
		points = []vec.Vec3{LaneStart, LaneEnd}
	}
	b := path.NewBuilder()
	first, err := b.AddLane(points...)
	if err != nil {
		t.Fatalf("adding lane: %v", err)
	}

	w := world.New(b.Build())
	if _, err := w.AddSpawnPoint(team, first); err != nil {
		t.Fatalf("adding spawn point: %v", err)
	}
	return w, first
}

// AssertInvariants fails the test if any creep breaks the one-state-field rule.
func AssertInvariants(t testing.TB, creeps []*model.Creep) {
	t.Helper()

	for _, c := range creeps {
		if err := c.CheckInvariant(); err != nil {
			t.Errorf("creep %d: %v", c.ID(), err)
		}
	}
}
