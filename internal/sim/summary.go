package sim

import "github.com/udisondev/lanewars/internal/model"

// Summary is a point-in-time count of the battlefield.
type Summary struct {
	Tick    uint64
	Creeps  int
	ByTeam  map[model.Team]int
	ByState map[model.State]int
	Bases   int
	Heroes  int
}

// Summary counts creeps by team and state.
func (e *Engine) Summary() Summary {
	s := Summary{
		Tick:    e.tick,
		Creeps:  e.world.CreepCount(),
		ByTeam:  make(map[model.Team]int, 2),
		ByState: make(map[model.State]int, 4),
		Bases:   len(e.world.Bases()),
		Heroes:  len(e.world.Heroes()),
	}
	for _, c := range e.world.Creeps() {
		s.ByTeam[c.Team()]++
		s.ByState[c.State()]++
	}
	return s
}

// LogArgs returns the summary as slog key/value pairs.
func (s Summary) LogArgs() []any {
	return []any{
		"tick", s.Tick,
		"creeps", s.Creeps,
		"mars", s.ByTeam[model.TeamMars],
		"jupyter", s.ByTeam[model.TeamJupyter],
		"moving", s.ByState[model.StateMove],
		"pursuing", s.ByState[model.StatePursuit],
		"attacking", s.ByState[model.StateAttack],
		"bases", s.Bases,
	}
}
