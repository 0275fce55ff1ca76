package model

import "github.com/udisondev/lanewars/internal/vec"

// Hero is a player-controlled unit. Heroes are moved by an external controller; the creep
// engine only reads them.
type Hero struct {
	ID       ObjectID
	Name     string
	Team     Team
	Position vec.Vec3
}

// Base is a team's static structure. Health is written by an external damage system.
type Base struct {
	ID       ObjectID
	Team     Team
	Position vec.Vec3
	Radius   float64
	Health   int32
}

// Destroyed reports whether the base has no health left.
func (b *Base) Destroyed() bool {
	return b.Health <= 0
}
