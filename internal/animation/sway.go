package animation

import "math"

const (
	SwayGain  = 0.05
	SwayLimit = 0.25
)

// SwayFilter is slower than OpennessFilter so the sway trails the motion.
var SwayFilter = Filter{Gain: 1.2, Cap: 0.05}

// Sway is the secondary motion of panels and slats. It only reads the
// openness velocity.
type Sway struct {
	value float64
}

func (s *Sway) Value() float64 { return s.value }

func (s *Sway) Reset() { s.value = 0 }

// Step moves the sway towards -velocity·SwayGain over dt seconds.
func (s *Sway) Step(velocity, dt float64) {
	if !(dt > 0) || math.IsInf(dt, 0) || math.IsNaN(velocity) {
		return
	}
	target := clampAbs(-velocity*SwayGain, SwayLimit)
	s.value = target + (s.value-target)*SwayFilter.Retention(dt)
	s.value = clampAbs(s.value, SwayLimit)
}

func clampAbs(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}
