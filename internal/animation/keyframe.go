package animation

import "sort"

// Keyframe pins a value at a point on a timeline.
type Keyframe struct {
	Time  float64
	Value float64
}

// Track is a timeline of keyframes sorted by time.
type Track []Keyframe

// NewTrack sorts keys by time.
func NewTrack(keys ...Keyframe) Track {
	t := append(Track(nil), keys...)
	sort.SliceStable(t, func(i, j int) bool { return t[i].Time < t[j].Time })
	return t
}

// At evaluates the track with eased segments. Before the first key and
// after the last the end values hold. An empty track yields fallback.
func (t Track) At(now, fallback float64) float64 {
	if len(t) == 0 {
		return fallback
	}
	if now <= t[0].Time {
		return t[0].Value
	}
	last := t[len(t)-1]
	if now >= last.Time {
		return last.Value
	}

	var prev, next Keyframe
	for i := 0; i < len(t)-1; i++ {
		if now >= t[i].Time && now < t[i+1].Time {
			prev, next = t[i], t[i+1]
			break
		}
	}

	span := next.Time - prev.Time
	if span == 0 {
		return next.Value
	}
	k := EaseInOutCubic((now - prev.Time) / span)
	return Lerp(prev.Value, next.Value, k)
}

// EaseInOutCubic eases t in [0,1].
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}
