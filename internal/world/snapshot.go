package world

import (
	"github.com/udisondev/lanewars/internal/model"
	"github.com/udisondev/lanewars/internal/vec"
)

// Candidate is a read-only view of an entity the target selector can pick.
type Candidate struct {
	Target   model.Target
	Team     model.Team
	Position vec.Vec3
}

// Snapshot is a frozen copy of every candidate position, taken once at the start of a pass.
// Passes read other agents only through a snapshot.
type Snapshot struct {
	Heroes []Candidate
	Creeps []Candidate
	Bases  []Candidate

	positions map[model.Target]vec.Vec3
}

// Snapshot captures the current positions of all heroes, creeps and bases.
func (w *World) Snapshot() *Snapshot {
	s := &Snapshot{
		Heroes:    make([]Candidate, 0, len(w.heroes)),
		Creeps:    make([]Candidate, 0, len(w.creeps)),
		Bases:     make([]Candidate, 0, len(w.bases)),
		positions: make(map[model.Target]vec.Vec3, len(w.heroes)+len(w.creeps)+len(w.bases)),
	}

	for _, h := range w.heroes {
		s.add(&s.Heroes, Candidate{Target: model.Target{Role: model.RoleHero, ID: h.ID}, Team: h.Team, Position: h.Position})
	}
	for _, c := range w.creeps {
		s.add(&s.Creeps, Candidate{Target: model.Target{Role: model.RoleCreep, ID: c.ID()}, Team: c.Team(), Position: c.Position()})
	}
	for _, b := range w.bases {
		s.add(&s.Bases, Candidate{Target: model.Target{Role: model.RoleBase, ID: b.ID}, Team: b.Team, Position: b.Position})
	}

	return s
}

func (s *Snapshot) add(tier *[]Candidate, c Candidate) {
	*tier = append(*tier, c)
	s.positions[c.Target] = c.Position
}

// Position returns the captured position of target.
func (s *Snapshot) Position(target model.Target) (vec.Vec3, bool) {
	p, ok := s.positions[target]
	return p, ok
}

// Tier returns the candidates of a role in creation order.
func (s *Snapshot) Tier(role model.Role) []Candidate {
	switch role {
	case model.RoleHero:
		return s.Heroes
	case model.RoleCreep:
		return s.Creeps
	case model.RoleBase:
		return s.Bases
	default:
		return nil
	}
}
