// Package steering turns a target-relative offset into a heading and a bounded-speed
// displacement, and hands the displacement to the movement primitive.
package steering

import (
	"math"

	"github.com/udisondev/lanewars/internal/model"
	"github.com/udisondev/lanewars/internal/vec"
)

// Defaults used by the lane creeps.
const (
	DefaultSpeed      = 0.05 // units per tick
	DefaultGroundBias = -0.1 // Z component keeping the controller on the ground
	DefaultSkinWidth  = 0.01
	ModelAlignment    = math.Pi / 2 // model forward axis is +Y, the formula's zero is +X
)

// reference is the zero-angle direction of the heading formula.
var reference = vec.Vec2{X: 1, Y: 0}

// MoveFunc is the collider-aware movement primitive. It moves c by displacement and
// reports whether the move was blocked.
type MoveFunc func(c *model.Creep, displacement vec.Vec3, skinWidth, dt float64) model.CollisionReport

// Heading returns the orientation facing along offset.
func Heading(offset vec.Vec2, alignment float64) vec.Quat {
	angle := math.Atan2(reference.Cross(offset), reference.Dot(offset))
	return vec.FromRotationZ(angle - alignment)
}

// Displacement returns offset normalized to speed with the ground bias as Z.
func Displacement(offset vec.Vec2, speed, groundBias float64) vec.Vec3 {
	d := offset.NormalizeOrZero().Mul(speed)
	return vec.Vec3{X: d.X, Y: d.Y, Z: groundBias}
}

// Params configures a Driver.
type Params struct {
	Speed      float64
	GroundBias float64
	SkinWidth  float64
	Alignment  float64
}

// DefaultParams returns the lane creep parameters.
func DefaultParams() Params {
	return Params{
		Speed:      DefaultSpeed,
		GroundBias: DefaultGroundBias,
		SkinWidth:  DefaultSkinWidth,
		Alignment:  ModelAlignment,
	}
}

// Driver steers creeps through an injected MoveFunc. It never computes collision itself.
type Driver struct {
	params Params
	move   MoveFunc
}

// NewDriver creates a driver.
func NewDriver(params Params, move MoveFunc) *Driver {
	return &Driver{params: params, move: move}
}

// Params returns driver parameters.
func (d *Driver) Params() Params {
	return d.params
}

// Drive orients c toward target and moves it one step.
func (d *Driver) Drive(c *model.Creep, target vec.Vec2, dt float64) model.CollisionReport {
	offset := target.Sub(c.Position().XY())
	c.SetHeading(Heading(offset, d.params.Alignment))
	return d.move(c, Displacement(offset, d.params.Speed, d.params.GroundBias), d.params.SkinWidth, dt)
}

// Ground applies only the downward bias.
func (d *Driver) Ground(c *model.Creep, dt float64) model.CollisionReport {
	return d.move(c, vec.Vec3{Z: d.params.GroundBias}, d.params.SkinWidth, dt)
}

// Face orients c toward target without moving it.
func (d *Driver) Face(c *model.Creep, target vec.Vec2) {
	offset := target.Sub(c.Position().XY())
	if offset == (vec.Vec2{}) {
		return
	}
	c.SetHeading(Heading(offset, d.params.Alignment))
}
