package ai

import (
	"math"

	"github.com/udisondev/lanewars/internal/model"
	"github.com/udisondev/lanewars/internal/vec"
	"github.com/udisondev/lanewars/internal/world"
)

// Selector picks the nearest hostile within the search radius.
//
// Tiers are scanned in priority order: heroes, creeps, bases. A hit in a tier pre-empts all
// lower tiers regardless of distance. Within a tier the strictly nearest candidate wins, so on
// equal distance the first one in creation order is kept.
type Selector struct {
	radius         float64
	unboundedBases bool
}

// NewSelector creates a selector. With unboundedBases the base tier ignores the radius.
func NewSelector(radius float64, unboundedBases bool) *Selector {
	return &Selector{radius: radius, unboundedBases: unboundedBases}
}

// SelectTarget returns the engagement target for c, or false when nothing hostile is near.
func (s *Selector) SelectTarget(c *model.Creep, snap *world.Snapshot) (model.Target, bool) {
	self := model.Target{Role: model.RoleCreep, ID: c.ID()}
	pos := c.Position()

	if t, ok := nearest(snap.Heroes, self, c.Team(), pos, s.radius); ok {
		return t, true
	}
	if t, ok := nearest(snap.Creeps, self, c.Team(), pos, s.radius); ok {
		return t, true
	}

	baseRadius := s.radius
	if s.unboundedBases {
		baseRadius = math.Inf(1)
	}
	return nearest(snap.Bases, self, c.Team(), pos, baseRadius)
}

func nearest(candidates []world.Candidate, self model.Target, team model.Team, pos vec.Vec3, radius float64) (model.Target, bool) {
	var (
		best     model.Target
		bestDist float64
		found    bool
	)

	for _, cand := range candidates {
		if cand.Target == self || !team.Hostile(cand.Team) {
			continue
		}
		d := pos.PlanarDistance(cand.Position)
		if d > radius {
			continue
		}
		if !found || d < bestDist {
			best, bestDist, found = cand.Target, d, true
		}
	}

	return best, found
}
