package spawn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/lanewars/internal/ai"
	"github.com/udisondev/lanewars/internal/model"
	"github.com/udisondev/lanewars/internal/path"
	"github.com/udisondev/lanewars/internal/steering"
	"github.com/udisondev/lanewars/internal/vec"
	"github.com/udisondev/lanewars/internal/world"
)

func noMove(*model.Creep, vec.Vec3, float64, float64) model.CollisionReport {
	return model.CollisionReport{}
}

func newTestSpawner(t *testing.T) (*Spawner, *world.World) {
	t.Helper()
	b := path.NewBuilder()
	mars, err := b.AddLane(vec.Vec3{X: 13, Y: 13, Z: 1}, vec.Vec3{X: -13, Y: -13, Z: 1})
	require.NoError(t, err)
	jupyter, err := b.AddLane(vec.Vec3{X: -13, Y: -13, Z: 1}, vec.Vec3{X: 13, Y: 13, Z: 1})
	require.NoError(t, err)
	g := b.Build()

	w := world.New(g)
	_, err = w.AddSpawnPoint(model.TeamMars, mars)
	require.NoError(t, err)
	_, err = w.AddSpawnPoint(model.TeamJupyter, jupyter)
	require.NoError(t, err)

	m := ai.NewMachine(ai.DefaultParams(), g, steering.NewDriver(steering.DefaultParams(), noMove))
	return NewSpawner(w, m), w
}

func TestTimer_FiresEveryInterval(t *testing.T) {
	timer := NewTimer(5, 5)

	var fired []int
	for tick := 1; tick <= 20; tick++ {
		if timer.Advance(1.0) {
			fired = append(fired, tick)
			assert.Equal(t, 5.0, timer.Remaining, "timer must reset to the full interval")
		}
	}

	assert.Equal(t, []int{5, 10, 15, 20}, fired)
}

func TestTimer_OvershootDiscarded(t *testing.T) {
	timer := NewTimer(1, 5)

	require.True(t, timer.Advance(3))
	assert.Equal(t, 5.0, timer.Remaining)
}

func TestSpawner_UpdateSpawnsBatchOnFire(t *testing.T) {
	s, w := newTestSpawner(t)
	timer := NewTimer(5, 5)

	for tick := 1; tick <= 4; tick++ {
		spawned, err := s.Update(timer, 1.0)
		require.NoError(t, err)
		assert.Empty(t, spawned, "tick %d", tick)
	}

	spawned, err := s.Update(timer, 1.0)
	require.NoError(t, err)
	require.Len(t, spawned, 2)
	assert.Equal(t, 2, w.CreepCount())

	mars, jupyter := spawned[0], spawned[1]
	assert.Equal(t, model.TeamMars, mars.Team())
	assert.Equal(t, model.TeamJupyter, jupyter.Team())
	assert.Equal(t, vec.Vec3{X: 13, Y: 13, Z: 1}, mars.Position())
}

func TestSpawner_CreepEntersLane(t *testing.T) {
	s, _ := newTestSpawner(t)

	var seen []model.Team
	s.SetSpawnFunc(func(c *model.Creep, sp world.SpawnPoint) {
		seen = append(seen, sp.Team)
	})

	spawned, err := s.SpawnAll()
	require.NoError(t, err)
	require.Len(t, spawned, 2)

	c := spawned[0]
	assert.Equal(t, model.StateMove, c.State())
	wp, ok := c.Waypoint()
	require.True(t, ok)
	assert.Equal(t, path.WaypointID(1), wp, "first waypoint is the one after the lane origin")
	assert.Equal(t, vec.Vec2{X: -13, Y: -13}, c.MoveTarget())
	assert.Equal(t, model.AnimIdle, c.Anim())
	require.NoError(t, c.CheckInvariant())

	assert.Equal(t, []model.Team{model.TeamMars, model.TeamJupyter}, seen)
}

func TestSpawner_SingleWaypointLaneHoldsPosition(t *testing.T) {
	b := path.NewBuilder()
	lane, err := b.AddLane(vec.Vec3{X: 1, Y: 1, Z: 1})
	require.NoError(t, err)
	g := b.Build()
	w := world.New(g)
	_, err = w.AddSpawnPoint(model.TeamMars, lane)
	require.NoError(t, err)

	s := NewSpawner(w, ai.NewMachine(ai.DefaultParams(), g, steering.NewDriver(steering.DefaultParams(), noMove)))
	spawned, err := s.SpawnAll()
	require.NoError(t, err)

	wp, _ := spawned[0].Waypoint()
	assert.Equal(t, lane, wp)
}
