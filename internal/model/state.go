package model

import "fmt"

// State represents creep AI state
type State int32

const (
	// StateIdle - creep was just created and has not entered its lane yet
	StateIdle State = iota
	// StateMove - creep walks its lane toward the current waypoint
	StateMove
	// StatePursuit - creep chases its engagement target
	StatePursuit
	// StateAttack - creep is in attack range of its engagement target
	StateAttack
)

// String returns human-readable state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateMove:
		return "MOVE"
	case StatePursuit:
		return "PURSUIT"
	case StateAttack:
		return "ATTACK"
	default:
		return "UNKNOWN"
	}
}

// ParseState parses a state name as produced by String.
func ParseState(s string) (State, error) {
	switch s {
	case "IDLE":
		return StateIdle, nil
	case "MOVE":
		return StateMove, nil
	case "PURSUIT":
		return StatePursuit, nil
	case "ATTACK":
		return StateAttack, nil
	default:
		return 0, fmt.Errorf("unknown state %q", s)
	}
}

// AnimTag is the animation discriminant carried by the creep's visual model.
type AnimTag int32

const (
	AnimIdle AnimTag = iota
	AnimWalk
	AnimPursuit
	AnimAttack
)

// String returns human-readable animation tag
func (a AnimTag) String() string {
	switch a {
	case AnimIdle:
		return "idle"
	case AnimWalk:
		return "walk"
	case AnimPursuit:
		return "pursuit"
	case AnimAttack:
		return "attack"
	default:
		return "unknown"
	}
}

// Target references an engagement target by role and id.
type Target struct {
	Role Role
	ID   ObjectID
}

// Transition is a requested state change produced by the evaluation pass.
// Target is meaningful for Pursuit and Attack.
type Transition struct {
	To     State
	Target Target
}

// CollisionReport is returned by the movement primitive.
type CollisionReport struct {
	// Side is set when lateral movement was blocked.
	Side bool
	// Down is set when the agent rests on the ground.
	Down bool
}
