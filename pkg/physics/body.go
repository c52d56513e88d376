package physics

import "math"

// Ball is a circular collision shape centred on the body origin.
type Ball struct {
	Radius float64
}

// Area returns the surface of the ball.
func (b Ball) Area() float64 {
	return math.Pi * b.Radius * b.Radius
}

// Isometry is a translation plus a rotation angle in radians.
type Isometry struct {
	Translation Vector2D
	Rotation    float64
}

// TransformVector rotates v from body space into world space.
func (i Isometry) TransformVector(v Vector2D) Vector2D {
	return v.Rotate(i.Rotation)
}

// RigidBody is a dynamic body integrated by the Pipeline. Bodies live in a
// BodySet; everything else refers to them through a Handle.
type RigidBody struct {
	Position Isometry
	LinVel   Vector2D
	AngVel   float64
	Mass     float64
	Inertia  float64
	Collider Ball

	// Owner is the id of the entity the body is attached to.
	Owner uint64

	force     Vector2D
	torque    float64
	sleeping  bool
	quietTime float64
}

// NewDynamicBody creates an awake body at the origin whose mass and angular
// inertia are derived from the collider and density.
func NewDynamicBody(collider Ball, density float64) *RigidBody {
	mass := collider.Area() * density
	return &RigidBody{
		Mass:     mass,
		Inertia:  mass * collider.Radius * collider.Radius / 2,
		Collider: collider,
	}
}

// WakeUp clears the sleep state so the next step integrates the body again.
func (b *RigidBody) WakeUp() {
	b.sleeping = false
	b.quietTime = 0
}

// IsSleeping reports whether the body is at rest and skipped by the pipeline.
func (b *RigidBody) IsSleeping() bool {
	return b.sleeping
}

// ApplyTorqueImpulse changes the angular velocity immediately.
func (b *RigidBody) ApplyTorqueImpulse(impulse float64) {
	if b.Inertia <= 0 {
		return
	}
	b.AngVel += impulse / b.Inertia
}

// ApplyImpulse changes the linear velocity immediately.
func (b *RigidBody) ApplyImpulse(impulse Vector2D) {
	if b.Mass <= 0 {
		return
	}
	b.LinVel = b.LinVel.Add(impulse.Scale(1 / b.Mass))
}

// ApplyForce accumulates a force until the next pipeline step.
func (b *RigidBody) ApplyForce(force Vector2D) {
	b.force = b.force.Add(force)
}

// ApplyTorque accumulates a torque until the next pipeline step.
func (b *RigidBody) ApplyTorque(torque float64) {
	b.torque += torque
}

// Force returns the force accumulated since the last step.
func (b *RigidBody) Force() Vector2D {
	return b.force
}

// Torque returns the torque accumulated since the last step.
func (b *RigidBody) Torque() float64 {
	return b.torque
}

// Forward returns the unit vector the body is facing in world space.
func (b *RigidBody) Forward() Vector2D {
	return b.Position.TransformVector(Up)
}

func (b *RigidBody) resetForces() {
	b.force = Vector2D{}
	b.torque = 0
}
