package ai

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/lanewars/internal/model"
	"github.com/udisondev/lanewars/internal/path"
	"github.com/udisondev/lanewars/internal/steering"
	"github.com/udisondev/lanewars/internal/vec"
	"github.com/udisondev/lanewars/internal/world"
)

const groundZ = 1.0

// flatMover applies the planar displacement and rests on z = groundZ.
func flatMover(c *model.Creep, d vec.Vec3, _, _ float64) model.CollisionReport {
	p := c.Position().Add(d)
	p.Z = math.Max(p.Z, groundZ)
	c.SetPosition(p)
	return model.CollisionReport{Down: p.Z == groundZ}
}

// wallMover blocks every lateral move.
func wallMover(c *model.Creep, d vec.Vec3, _, _ float64) model.CollisionReport {
	return model.CollisionReport{Side: d.X != 0 || d.Y != 0, Down: true}
}

type fixture struct {
	w    *world.World
	m    *Machine
	lane path.WaypointID
}

func newFixture(t *testing.T, move steering.MoveFunc, points ...vec.Vec3) *fixture {
	t.Helper()
	if len(points) == 0 {
		points = []vec.Vec3{{X: 13, Y: 13, Z: 1}, {X: -13, Y: -13, Z: 1}}
	}
	b := path.NewBuilder()
	lane, err := b.AddLane(points...)
	require.NoError(t, err)
	g := b.Build()

	return &fixture{
		w:    world.New(g),
		m:    NewMachine(DefaultParams(), g, steering.NewDriver(steering.DefaultParams(), move)),
		lane: lane,
	}
}

// spawn creates a MOVE creep at pos heading to the waypoint after the lane origin.
func (f *fixture) spawn(t *testing.T, team model.Team, pos vec.Vec3) *model.Creep {
	t.Helper()
	first, ok := f.w.Graph().Successor(f.lane)
	require.True(t, ok)
	c := f.w.NewCreep(team, pos, vec.Identity, first)
	require.NoError(t, f.m.Commit(c, model.Transition{To: model.StateMove}))
	return c
}

// pursue puts c into PURSUIT of target.
func (f *fixture) pursue(t *testing.T, c *model.Creep, target model.Target) {
	t.Helper()
	require.NoError(t, f.m.Commit(c, model.Transition{To: model.StatePursuit, Target: target}))
}

// tick runs one full ordered pass sequence.
func (f *fixture) tick(t *testing.T, dt float64) {
	t.Helper()
	creeps := f.w.Creeps()
	require.NoError(t, f.m.RequestTransitions(creeps, f.w.Snapshot()))
	require.NoError(t, f.m.ApplyTransitions(creeps))

	snap := f.w.Snapshot()
	require.NoError(t, f.m.MovePass(creeps, dt))
	require.NoError(t, f.m.PursuitPass(creeps, snap, dt))
	require.NoError(t, f.m.AttackPass(creeps, snap))
}

func heroTarget(h *model.Hero) model.Target {
	return model.Target{Role: model.RoleHero, ID: h.ID}
}

func creepTarget(c *model.Creep) model.Target {
	return model.Target{Role: model.RoleCreep, ID: c.ID()}
}
