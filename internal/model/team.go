package model

import (
	"fmt"
	"strings"
)

// ObjectID identifies any world entity. 0 is invalid.
type ObjectID uint32

// Team is one of the two sides. Values outside the declared constants are never produced:
// ParseTeam rejects them.
type Team uint8

const (
	// TeamMars owns the north-east base.
	TeamMars Team = 0
	// TeamJupyter owns the south-west base.
	TeamJupyter Team = 1
)

// Parity returns team % 2. Hostility is decided by parity.
func (t Team) Parity() uint8 {
	return uint8(t) % 2
}

// Hostile reports whether other is an enemy of t.
func (t Team) Hostile(other Team) bool {
	return t.Parity() != other.Parity()
}

// String returns human-readable team name
func (t Team) String() string {
	switch t {
	case TeamMars:
		return "MARS"
	case TeamJupyter:
		return "JUPYTER"
	default:
		return "UNKNOWN"
	}
}

// ParseTeam parses a team name (case-insensitive).
func ParseTeam(s string) (Team, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mars":
		return TeamMars, nil
	case "jupyter":
		return TeamJupyter, nil
	default:
		return 0, fmt.Errorf("unknown team %q", s)
	}
}

// Role tells the target selector which tier a candidate belongs to.
type Role uint8

const (
	RoleHero Role = iota
	RoleCreep
	RoleBase
)

// String returns human-readable role name
func (r Role) String() string {
	switch r {
	case RoleHero:
		return "HERO"
	case RoleCreep:
		return "CREEP"
	case RoleBase:
		return "BASE"
	default:
		return "UNKNOWN"
	}
}
