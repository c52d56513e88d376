package physics

import (
	"math"

	"github.com/EngoEngine/ecs"
)

// ActiveFlag switches physics stepping on and off independently of the game
// state. The input system clears it when the game is paused.
type ActiveFlag struct {
	enabled bool
}

// NewActiveFlag creates a flag with the given initial value.
func NewActiveFlag(enabled bool) *ActiveFlag {
	return &ActiveFlag{enabled: enabled}
}

// Set updates the flag.
func (f *ActiveFlag) Set(enabled bool) {
	f.enabled = enabled
}

// Enabled reports whether physics should step.
func (f *ActiveFlag) Enabled() bool {
	return f.enabled
}

// Pipeline integrates every awake body in a BodySet.
type Pipeline struct {
	Gravity Vector2D

	// A body whose speeds stay below these thresholds for TimeToSleep
	// seconds is put to sleep.
	SleepLinearThreshold  float64
	SleepAngularThreshold float64
	TimeToSleep           float64
}

// DefaultPipeline returns a zero-gravity pipeline with rest detection.
func DefaultPipeline() *Pipeline {
	return &Pipeline{
		SleepLinearThreshold:  0.01,
		SleepAngularThreshold: 0.01,
		TimeToSleep:           2.0,
	}
}

// Step advances every awake body by dt seconds using semi-implicit Euler
// and clears accumulated forces.
func (p *Pipeline) Step(dt float64, bodies *BodySet) {
	if dt <= 0 {
		return
	}
	bodies.Each(func(_ Handle, b *RigidBody) {
		if b.sleeping {
			b.resetForces()
			return
		}

		if b.Mass > 0 {
			accel := b.force.Scale(1 / b.Mass).Add(p.Gravity)
			b.LinVel = b.LinVel.Add(accel.Scale(dt))
		}
		if b.Inertia > 0 {
			b.AngVel += b.torque / b.Inertia * dt
		}
		b.Position.Translation = b.Position.Translation.Add(b.LinVel.Scale(dt))
		b.Position.Rotation = normalizeAngle(b.Position.Rotation + b.AngVel*dt)
		b.resetForces()

		p.updateSleep(b, dt)
	})
}

func (p *Pipeline) updateSleep(b *RigidBody, dt float64) {
	if p.TimeToSleep <= 0 {
		return
	}
	if b.LinVel.Length() > p.SleepLinearThreshold || math.Abs(b.AngVel) > p.SleepAngularThreshold {
		b.quietTime = 0
		return
	}
	b.quietTime += dt
	if b.quietTime >= p.TimeToSleep {
		b.sleeping = true
		b.LinVel = Vector2D{}
		b.AngVel = 0
	}
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// StepPriority orders the physics step after input and damping.
const StepPriority = 50

// StepSystem runs the pipeline once per world update while the flag is set.
type StepSystem struct {
	pipeline *Pipeline
	bodies   *BodySet
	active   *ActiveFlag
}

// NewStepSystem creates the ECS system that drives the pipeline.
func NewStepSystem(pipeline *Pipeline, bodies *BodySet, active *ActiveFlag) *StepSystem {
	return &StepSystem{pipeline: pipeline, bodies: bodies, active: active}
}

// Priority satisfies ecs.Prioritizer.
func (s *StepSystem) Priority() int {
	return StepPriority
}

// Update steps the simulation unless physics is paused.
func (s *StepSystem) Update(dt float32) {
	if !s.active.Enabled() {
		return
	}
	s.pipeline.Step(float64(dt), s.bodies)
}

// Remove satisfies ecs.System. Bodies are released by their owners.
func (s *StepSystem) Remove(ecs.BasicEntity) {}
