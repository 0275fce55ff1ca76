package world

import (
	"sync/atomic"

	"github.com/udisondev/lanewars/internal/model"
)

// ObjectIDGenerator generates unique object IDs for all world entities.
//
// ID ranges (convention):
//
//	0x00000000 - 0x0FFFFFFF: Reserved (0 = invalid)
//	0x10000000 - 0x1FFFFFFF: Heroes
//	0x20000000 - 0x2FFFFFFF: Creeps
//	0x30000000 - 0x3FFFFFFF: Creep visual models
//	0x40000000 - 0x4FFFFFFF: Bases
type ObjectIDGenerator struct {
	nextHeroID  atomic.Uint32
	nextCreepID atomic.Uint32
	nextModelID atomic.Uint32
	nextBaseID  atomic.Uint32
}

// NewObjectIDGenerator creates a new ID generator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextHeroID.Store(0x10000000)
	gen.nextCreepID.Store(0x20000000)
	gen.nextModelID.Store(0x30000000)
	gen.nextBaseID.Store(0x40000000)
	return gen
}

// NextHeroID generates next unique hero object ID.
func (g *ObjectIDGenerator) NextHeroID() model.ObjectID {
	return model.ObjectID(g.nextHeroID.Add(1))
}

// NextCreepID generates next unique creep object ID.
// IDs grow monotonically, so ID order is creation order.
func (g *ObjectIDGenerator) NextCreepID() model.ObjectID {
	return model.ObjectID(g.nextCreepID.Add(1))
}

// NextModelID generates next unique visual model ID.
func (g *ObjectIDGenerator) NextModelID() model.ObjectID {
	return model.ObjectID(g.nextModelID.Add(1))
}

// NextBaseID generates next unique base object ID.
func (g *ObjectIDGenerator) NextBaseID() model.ObjectID {
	return model.ObjectID(g.nextBaseID.Add(1))
}
