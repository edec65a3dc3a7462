package sprite

import (
	"fmt"
	"math"
)

// Animation sequences a list of items over time. Playback either advances
// uniformly (speed frames per unit of dt) or, when durations are given,
// spends durations[i] milliseconds on item i at 60 ticks per second.
//
// Speed is signed: negative values play backward. A looped animation wraps
// around in either direction; a non-looped one clamps at its ends and
// stops.
//
// The zero value is not usable; create animations with NewAnimation or
// TryNewAnimation.
type Animation[T any] struct {
	items     []T
	durations []float32

	looped  bool
	speed   float32
	playing bool
	time    float32
}

// NewAnimation creates a stopped, looped animation at speed 1. durations
// must be empty or have one positive entry per item; otherwise
// NewAnimation panics with ErrDurationMismatch or ErrInvalidDuration.
func NewAnimation[T any](items []T, durations []float32) *Animation[T] {
	a, err := TryNewAnimation(items, durations)
	if err != nil {
		panic(err)
	}
	return a
}

// TryNewAnimation is NewAnimation returning an error instead of panicking.
func TryNewAnimation[T any](items []T, durations []float32) (*Animation[T], error) {
	if len(durations) != 0 && len(durations) != len(items) {
		return nil, fmt.Errorf("%w: %d items, %d durations", ErrDurationMismatch, len(items), len(durations))
	}
	for i, d := range durations {
		if !(d > 0) {
			return nil, fmt.Errorf("%w: frame %d has %v", ErrInvalidDuration, i, d)
		}
	}
	return &Animation[T]{
		items:     items,
		durations: durations,
		looped:    true,
		speed:     1,
	}, nil
}

// Len returns the number of frames.
func (a *Animation[T]) Len() int { return len(a.items) }

// IsEmpty reports whether the animation has no frames.
func (a *Animation[T]) IsEmpty() bool { return len(a.items) == 0 }

// Items returns the frames. The slice is shared with the animation.
func (a *Animation[T]) Items() []T { return a.items }

// Speed returns the playback speed.
func (a *Animation[T]) Speed() float32 { return a.speed }

// SetSpeed sets the playback speed. Higher is faster; negative plays
// backward.
func (a *Animation[T]) SetSpeed(speed float32) { a.speed = speed }

// Looped reports whether the animation repeats.
func (a *Animation[T]) Looped() bool { return a.looped }

// SetLooped sets whether the animation repeats.
func (a *Animation[T]) SetLooped(looped bool) { a.looped = looped }

// IsPlaying reports whether Update advances the animation.
func (a *Animation[T]) IsPlaying() bool { return a.playing }

// Play resumes playback.
func (a *Animation[T]) Play() { a.playing = true }

// Stop pauses playback.
func (a *Animation[T]) Stop() { a.playing = false }

// GotoAndPlay jumps to frame and starts playing.
func (a *Animation[T]) GotoAndPlay(frame int) {
	a.time = float32(frame)
	a.Play()
}

// GotoAndStop stops and jumps to frame.
func (a *Animation[T]) GotoAndStop(frame int) {
	a.Stop()
	a.time = float32(frame)
}

// CurrentTime returns the playback position in frames, including the
// fractional part.
func (a *Animation[T]) CurrentTime() float32 { return a.time }

// CurrentFrame returns the index of the current frame. The position may be
// negative or past the end while looping; the index is always in range.
func (a *Animation[T]) CurrentFrame() int {
	n := len(a.items)
	if n == 0 {
		return 0
	}
	f := int(math.Floor(float64(a.time))) % n
	if f < 0 {
		f += n
	}
	return f
}

// CurrentItem returns the item for the current frame. It panics on an
// empty animation.
func (a *Animation[T]) CurrentItem() T {
	return a.items[a.CurrentFrame()]
}

// Update advances playback by dt. A NaN or infinite step is ignored.
//
// ok is true when the frame changed or a non-looped animation reached an
// end. wrapped then reports a loop boundary crossing, or true when the
// animation clamped and stopped. Update does nothing and returns ok=false
// while the animation is stopped or empty.
func (a *Animation[T]) Update(dt float32) (frame int, wrapped, ok bool) {
	if !a.playing || len(a.items) == 0 {
		return 0, false, false
	}

	elapsed := a.speed * dt
	prev := a.CurrentFrame()
	if math.IsNaN(float64(elapsed)) || math.IsInf(float64(elapsed), 0) {
		return prev, false, false
	}

	if len(a.durations) != 0 {
		a.advanceWeighted(elapsed)
	} else {
		a.time += elapsed
	}

	frame = a.CurrentFrame()
	switch {
	case a.time < 0 && !a.looped:
		a.playing = false
		a.time = 0
		return 0, true, true
	case a.time >= float32(len(a.items)) && !a.looped:
		last := len(a.items) - 1
		a.playing = false
		a.time = float32(last)
		return last, true, true
	case frame != prev:
		forward := a.speed > 0 && frame < prev
		backward := a.speed < 0 && frame > prev
		return frame, a.looped && (forward || backward), true
	default:
		return frame, false, false
	}
}

// advanceWeighted consumes elapsed (in 60 Hz ticks) as milliseconds of
// lag against the per-frame durations, leaving the remainder as the
// fractional position inside the current frame.
func (a *Animation[T]) advanceWeighted(elapsed float32) {
	frac := float32(math.Mod(float64(a.time), 1))
	lag64 := float64(frac*a.durations[a.CurrentFrame()]) + float64(elapsed)/60*1000

	// Drop whole cycles so the loops below visit each frame at most once.
	if total := float64(a.totalDuration()); math.Abs(lag64) >= total {
		if !a.looped {
			cycles := math.Trunc(lag64 / total)
			a.time += float32(cycles) * float32(len(a.durations))
		}
		lag64 = math.Mod(lag64, total)
	}
	lag := float32(lag64)

	for lag < 0 {
		a.time--
		lag += a.durations[a.CurrentFrame()]
	}

	a.time = floor32(a.time)

	var sign float32 = 1
	if math.Signbit(float64(elapsed)) {
		sign = -1
	}
	for lag >= a.durations[a.CurrentFrame()] {
		lag -= a.durations[a.CurrentFrame()] * sign
		a.time += sign
	}

	a.time += lag / a.durations[a.CurrentFrame()]
}

func (a *Animation[T]) totalDuration() float32 {
	var total float32
	for _, d := range a.durations {
		total += d
	}
	return total
}
