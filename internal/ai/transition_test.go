package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/lanewars/internal/model"
	"github.com/udisondev/lanewars/internal/path"
	"github.com/udisondev/lanewars/internal/vec"
)

func TestMachine_MoveToPursuitTwoPhase(t *testing.T) {
	f := newFixture(t, flatMover)
	c := f.spawn(t, model.TeamMars, vec.Vec3{X: 13, Y: 13, Z: 1})
	hero := f.w.AddHero("Zeus", model.TeamJupyter, vec.Vec3{X: 13, Y: 10, Z: 1})

	creeps := f.w.Creeps()
	require.NoError(t, f.m.RequestTransitions(creeps, f.w.Snapshot()))

	tr, ok := c.Pending()
	require.True(t, ok, "request pass must buffer a transition")
	assert.Equal(t, model.StatePursuit, tr.To)
	assert.Equal(t, heroTarget(hero), tr.Target)
	assert.Equal(t, model.StateMove, c.State(), "request pass must not commit")
	_, hasWaypoint := c.Waypoint()
	assert.True(t, hasWaypoint, "request pass must not touch state fields")

	require.NoError(t, f.m.ApplyTransitions(creeps))

	assert.Equal(t, model.StatePursuit, c.State())
	_, hasWaypoint = c.Waypoint()
	assert.False(t, hasWaypoint, "apply pass must clear the waypoint")
	target, ok := c.PursuitTarget()
	require.True(t, ok)
	assert.Equal(t, heroTarget(hero), target)
	_, pending := c.Pending()
	assert.False(t, pending)
	require.NoError(t, c.CheckInvariant())
}

func TestMachine_PursuitAttackBoundary(t *testing.T) {
	tests := []struct {
		name   string
		dist   float64
		wantOK bool
	}{
		{"exactly attack radius", 5.0, false},
		{"just inside attack radius", 4.999, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, flatMover)
			c := f.spawn(t, model.TeamMars, vec.Vec3{Z: 1})
			hero := f.w.AddHero("Zeus", model.TeamJupyter, vec.Vec3{X: tt.dist, Z: 1})
			f.pursue(t, c, heroTarget(hero))

			tr, ok, err := f.m.EvaluateTransition(c, f.w.Snapshot())
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, model.StateAttack, tr.To)
				assert.Equal(t, heroTarget(hero), tr.Target)
			}
		})
	}
}

func TestMachine_PursuitFallbackBoundary(t *testing.T) {
	tests := []struct {
		name   string
		dist   float64
		wantOK bool
	}{
		{"exactly pursuit radius", 10.0, false},
		{"just outside pursuit radius", 10.001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, flatMover)
			c := f.spawn(t, model.TeamMars, vec.Vec3{Z: 1})
			hero := f.w.AddHero("Zeus", model.TeamJupyter, vec.Vec3{X: tt.dist, Z: 1})
			f.pursue(t, c, heroTarget(hero))

			tr, ok, err := f.m.EvaluateTransition(c, f.w.Snapshot())
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, model.StateMove, tr.To)
			}
		})
	}
}

func TestMachine_PursuitToAttackSwapsTargetField(t *testing.T) {
	f := newFixture(t, flatMover)
	c := f.spawn(t, model.TeamMars, vec.Vec3{Z: 1})
	hero := f.w.AddHero("Zeus", model.TeamJupyter, vec.Vec3{X: 2, Z: 1})
	f.pursue(t, c, heroTarget(hero))

	creeps := f.w.Creeps()
	require.NoError(t, f.m.RequestTransitions(creeps, f.w.Snapshot()))
	require.NoError(t, f.m.ApplyTransitions(creeps))

	assert.Equal(t, model.StateAttack, c.State())
	_, hasPursuit := c.PursuitTarget()
	assert.False(t, hasPursuit)
	target, ok := c.AttackTarget()
	require.True(t, ok)
	assert.Equal(t, heroTarget(hero), target)
	require.NoError(t, c.CheckInvariant())
}

func TestMachine_PursuitToMoveResumesLane(t *testing.T) {
	f := newFixture(t, flatMover,
		vec.Vec3{X: 13, Y: 13, Z: 1},
		vec.Vec3{X: -14, Y: 13, Z: 1},
		vec.Vec3{X: -14, Y: -11, Z: 1},
	)
	c := f.spawn(t, model.TeamMars, vec.Vec3{X: 13, Y: 13, Z: 1})
	wp, _ := c.Waypoint()
	hero := f.w.AddHero("Zeus", model.TeamJupyter, vec.Vec3{X: 13, Y: 10, Z: 1})
	f.pursue(t, c, heroTarget(hero))

	// Hero retreats beyond the pursuit radius.
	require.NoError(t, f.w.SetHeroPosition(hero.ID, vec.Vec3{X: 13, Y: -5, Z: 1}))

	creeps := f.w.Creeps()
	require.NoError(t, f.m.RequestTransitions(creeps, f.w.Snapshot()))
	require.NoError(t, f.m.ApplyTransitions(creeps))

	assert.Equal(t, model.StateMove, c.State())
	got, ok := c.Waypoint()
	require.True(t, ok)
	assert.Equal(t, wp, got, "must resume the waypoint held before pursuit")
	assert.Equal(t, vec.Vec2{X: -14, Y: 13}, c.MoveTarget())
	_, hasPursuit := c.PursuitTarget()
	assert.False(t, hasPursuit)
}

func TestMachine_PursuitTargetGone(t *testing.T) {
	f := newFixture(t, flatMover)
	c := f.spawn(t, model.TeamMars, vec.Vec3{Z: 1})
	enemy := f.spawn(t, model.TeamJupyter, vec.Vec3{X: 7, Z: 1})
	f.pursue(t, c, creepTarget(enemy))

	require.True(t, f.w.RemoveCreep(enemy.ID()))

	tr, ok, err := f.m.EvaluateTransition(c, f.w.Snapshot())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.StateMove, tr.To)
}

func TestMachine_AttackHasNoExit(t *testing.T) {
	f := newFixture(t, flatMover)
	c := f.spawn(t, model.TeamMars, vec.Vec3{Z: 1})
	hero := f.w.AddHero("Zeus", model.TeamJupyter, vec.Vec3{X: 1, Z: 1})
	require.NoError(t, f.m.Commit(c, model.Transition{To: model.StateAttack, Target: heroTarget(hero)}))

	require.NoError(t, f.w.SetHeroPosition(hero.ID, vec.Vec3{X: 50, Z: 1}))

	_, ok, err := f.m.EvaluateTransition(c, f.w.Snapshot())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMachine_ApplySameStateIsNoop(t *testing.T) {
	f := newFixture(t, flatMover)
	c := f.spawn(t, model.TeamMars, vec.Vec3{Z: 1})
	wp, _ := c.Waypoint()

	var calls int
	f.m.SetStateChangeFunc(func(*model.Creep, model.State, model.State) { calls++ })

	c.Request(model.Transition{To: model.StateMove})
	require.NoError(t, f.m.ApplyTransitions(f.w.Creeps()))

	got, _ := c.Waypoint()
	assert.Equal(t, wp, got)
	assert.Zero(t, calls, "no exit/enter for an unchanged state")
	_, pending := c.Pending()
	assert.False(t, pending)
}

func TestMachine_StateChangeCallback(t *testing.T) {
	f := newFixture(t, flatMover)

	type change struct{ from, to model.State }
	var got []change
	f.m.SetStateChangeFunc(func(_ *model.Creep, from, to model.State) {
		got = append(got, change{from, to})
	})

	c := f.spawn(t, model.TeamMars, vec.Vec3{Z: 1})
	hero := f.w.AddHero("Zeus", model.TeamJupyter, vec.Vec3{X: 3, Z: 1})
	f.pursue(t, c, heroTarget(hero))

	assert.Equal(t, []change{
		{model.StateIdle, model.StateMove},
		{model.StateMove, model.StatePursuit},
	}, got)
}

func TestMachine_PursuitWithoutTargetIsInvariantError(t *testing.T) {
	f := newFixture(t, flatMover)
	c := f.w.NewCreep(model.TeamMars, vec.Vec3{}, vec.Identity, path.WaypointID(1))
	c.SetState(model.StatePursuit)

	_, _, err := f.m.EvaluateTransition(c, f.w.Snapshot())
	if !errors.Is(err, model.ErrInvariant) {
		t.Errorf("EvaluateTransition() error = %v, want ErrInvariant", err)
	}
}

func TestMachine_EnterMoveOnUnknownWaypoint(t *testing.T) {
	f := newFixture(t, flatMover)
	c := f.w.NewCreep(model.TeamMars, vec.Vec3{}, vec.Identity, path.WaypointID(99))

	err := f.m.Commit(c, model.Transition{To: model.StateMove})
	if !errors.Is(err, model.ErrInvariant) {
		t.Errorf("Commit() error = %v, want ErrInvariant", err)
	}
}

func TestMachine_ExactlyOneStateFieldAcrossTicks(t *testing.T) {
	f := newFixture(t, flatMover,
		vec.Vec3{X: 13, Y: 13, Z: 1},
		vec.Vec3{X: -13, Y: -13, Z: 1},
	)

	// Two opposing columns walking into each other on the same diagonal.
	for i := range 3 {
		f.spawn(t, model.TeamMars, vec.Vec3{X: 13 - float64(i), Y: 13, Z: 1})
		f.spawn(t, model.TeamJupyter, vec.Vec3{X: -13 + float64(i), Y: -13, Z: 1})
	}
	f.w.AddHero("Zeus", model.TeamJupyter, vec.Vec3{X: 0, Y: 2, Z: 1})

	seen := map[model.State]bool{}
	for range 600 {
		f.tick(t, 1.0/60)
		for _, c := range f.w.Creeps() {
			require.NoError(t, c.CheckInvariant())
			seen[c.State()] = true
		}
	}

	assert.True(t, seen[model.StatePursuit], "creeps should have engaged")
	assert.True(t, seen[model.StateAttack], "creeps should have closed to attack range")
}
