package sim

import (
	"fmt"

	"github.com/udisondev/lanewars/internal/ai"
	"github.com/udisondev/lanewars/internal/config"
	"github.com/udisondev/lanewars/internal/model"
	"github.com/udisondev/lanewars/internal/path"
	"github.com/udisondev/lanewars/internal/physics"
	"github.com/udisondev/lanewars/internal/steering"
	"github.com/udisondev/lanewars/internal/vec"
	"github.com/udisondev/lanewars/internal/world"
)

// OptionsFromConfig maps simulation config onto engine options.
func OptionsFromConfig(cfg config.Simulation) Options {
	return Options{
		Machine: ai.Params{
			SearchRadius:        cfg.Creep.SearchRadius,
			AttackRadius:        cfg.Creep.AttackRadius,
			PursuitRadius:       cfg.Creep.PursuitRadius,
			ArrivalThreshold:    cfg.Creep.ArrivalThreshold,
			UnboundedBaseSearch: cfg.Creep.UnboundedBaseSearch,
		},
		Steering: steering.Params{
			Speed:      cfg.Creep.Speed,
			GroundBias: cfg.Creep.GroundBias,
			SkinWidth:  cfg.Creep.SkinWidth,
			Alignment:  steering.ModelAlignment,
		},
		SpawnInterval:     cfg.Spawn.Interval.Seconds(),
		SpawnInitialDelay: cfg.Spawn.InitialDelay.Seconds(),
		SpawnOnStart:      cfg.Spawn.OnStart,
	}
}

// NewFromConfig builds the arena described by cfg: lane graph, spawn points, bases (also
// registered as obstacles) and heroes. Destroyed bases are removed from the mover.
func NewFromConfig(cfg config.Simulation) (*Engine, *physics.GroundMover, error) {
	builder := path.NewBuilder()
	type laneOrigin struct {
		team  model.Team
		first path.WaypointID
	}
	origins := make([]laneOrigin, 0, len(cfg.Map.Lanes))

	for i, l := range cfg.Map.Lanes {
		team, err := model.ParseTeam(l.Team)
		if err != nil {
			return nil, nil, fmt.Errorf("lane %d: %w", i, err)
		}
		points := make([]vec.Vec3, len(l.Points))
		for j, p := range l.Points {
			points[j] = toVec(p)
		}
		first, err := builder.AddLane(points...)
		if err != nil {
			return nil, nil, fmt.Errorf("lane %d: %w", i, err)
		}
		origins = append(origins, laneOrigin{team: team, first: first})
	}

	w := world.New(builder.Build())
	for _, o := range origins {
		if _, err := w.AddSpawnPoint(o.team, o.first); err != nil {
			return nil, nil, err
		}
	}

	mover := physics.NewGroundMover(cfg.Map.HalfExtent, cfg.Map.GroundZ, cfg.Map.AgentRadius)

	for i, b := range cfg.Map.Bases {
		team, err := model.ParseTeam(b.Team)
		if err != nil {
			return nil, nil, fmt.Errorf("base %d: %w", i, err)
		}
		base := w.AddBase(team, toVec(b.Position), b.Radius, b.Health)
		mover.AddObstacle(physics.Obstacle{
			ID:     base.ID,
			Center: base.Position.XY(),
			Radius: base.Radius,
		})
	}

	for i, h := range cfg.Map.Heroes {
		team, err := model.ParseTeam(h.Team)
		if err != nil {
			return nil, nil, fmt.Errorf("hero %d: %w", i, err)
		}
		w.AddHero(h.Name, team, toVec(h.Position))
	}

	engine := NewEngine(w, mover.Move, OptionsFromConfig(cfg))
	engine.SetBaseDestroyedFunc(func(b *model.Base) {
		mover.RemoveObstacle(b.ID)
	})

	return engine, mover, nil
}

func toVec(p config.Point) vec.Vec3 {
	return vec.Vec3{X: p[0], Y: p[1], Z: p[2]}
}
