// pkg/entity/ship.go
package entity

import (
	"github.com/EngoEngine/ecs"
)

// Ship holds the flight tunables and hit points of the player's craft
type Ship struct {
	// RotationSpeed is the torque impulse applied per tick while turning.
	RotationSpeed float32
	// Thrust is the force magnitude applied per tick while accelerating.
	Thrust float32
	Life   uint32
}

// TakeDamage removes up to n hit points. Life never goes below zero.
func (s *Ship) TakeDamage(n uint32) {
	if n >= s.Life {
		s.Life = 0
		return
	}
	s.Life -= n
}

// Destroyed reports whether the ship has no hit points left
func (s *Ship) Destroyed() bool {
	return s.Life == 0
}

// ShipEntity is the player's craft
type ShipEntity struct {
	ecs.BasicEntity
	Ship
	BodyComponent
	SpriteComponent
	LifecycleComponent
}

// Laser is a projectile that expires after a fixed time
type Laser struct {
	// Remaining is the time left before the laser disappears, in seconds.
	Remaining float64
}

// LaserEntity is a projectile fired by the ship
type LaserEntity struct {
	ecs.BasicEntity
	Laser
	BodyComponent
	SpriteComponent
	LifecycleComponent
}
