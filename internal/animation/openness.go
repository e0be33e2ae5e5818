// Package animation advances the openness of a product over time and derives
// the secondary sway motion from its velocity.
package animation

import "math"

const (
	// SmoothingBase is the fraction of the remaining distance left after one
	// second of the raw exponential filter.
	SmoothingBase = 0.001

	// ReferenceStep is the nominal frame at which Gain and Cap are
	// evaluated. Any frame time is converted to a (fractional) number of
	// reference steps, so the trajectory does not depend on the tick rate.
	ReferenceStep = 1.0 / 60

	OpennessGain = 4.0
	OpennessCap  = 0.15

	// SnapEpsilon is the distance below which current jumps to target.
	SnapEpsilon = 0.001
)

// Filter is an exponential follower with a per-step gain and cap.
type Filter struct {
	Gain float64
	Cap  float64
}

// OpennessFilter drives the primary openness state.
var OpennessFilter = Filter{Gain: OpennessGain, Cap: OpennessCap}

// Step is the fraction of the remaining distance covered in one reference
// step.
func (f Filter) Step() float64 {
	lerpFactor := 1 - math.Pow(SmoothingBase, ReferenceStep)
	return math.Min(lerpFactor*f.Gain, f.Cap)
}

// Retention is the fraction of the remaining distance left after dt seconds.
func (f Filter) Retention(dt float64) float64 {
	return math.Pow(1-f.Step(), dt/ReferenceStep)
}

// Openness is the animated open amount of one instance: 0 closed, 1 open.
type Openness struct {
	target   float64
	current  float64
	velocity float64
}

// NewOpenness returns a state at rest at v.
func NewOpenness(v float64) Openness {
	v = Clamp01(v)
	return Openness{target: v, current: v}
}

func (o Openness) Target() float64   { return o.target }
func (o Openness) Current() float64  { return o.current }
func (o Openness) Velocity() float64 { return o.velocity }

// SetTarget clamps v to [0,1]; NaN leaves the target unchanged.
func (o *Openness) SetTarget(v float64) {
	if math.IsNaN(v) {
		return
	}
	o.target = Clamp01(v)
}

// Snap jumps to the target and stops.
func (o *Openness) Snap() {
	o.current = o.target
	o.velocity = 0
}

// Step advances current towards target by dt seconds. Non-positive or
// non-finite dt is ignored.
func (o *Openness) Step(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return
	}
	prev := o.current
	o.current = o.target + (o.current-o.target)*OpennessFilter.Retention(dt)
	if math.Abs(o.target-o.current) < SnapEpsilon {
		o.current = o.target
	}
	o.velocity = (o.current - prev) / dt
}

// Settled reports whether current has reached target.
func (o Openness) Settled() bool {
	return o.current == o.target
}

// Clamp01 clamps v to [0,1]; NaN becomes 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
