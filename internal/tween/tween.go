// Package tween interpolates values over wall-clock time.
package tween

import "time"

type Ease func(t float64) float64

func Linear(t float64) float64 { return t }

// CubicInOut is the default easing of d3 transitions.
func CubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}

// Tween yields a value between from and to for any instant.
type Tween[T any] struct {
	from     T
	to       T
	start    time.Time
	duration time.Duration
	lerp     func(a, b T, t float64) T
	ease     Ease
}

func New[T any](from, to T, start time.Time, d time.Duration, lerp func(a, b T, t float64) T, ease Ease) *Tween[T] {
	if ease == nil {
		ease = CubicInOut
	}
	return &Tween[T]{from: from, to: to, start: start, duration: d, lerp: lerp, ease: ease}
}

// Progress is the un-eased fraction of the duration elapsed at now, in [0, 1].
func (tw *Tween[T]) Progress(now time.Time) float64 {
	if tw.duration <= 0 {
		return 1
	}
	p := float64(now.Sub(tw.start)) / float64(tw.duration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// At returns the interpolated value. The end value is returned exactly once
// the duration has elapsed.
func (tw *Tween[T]) At(now time.Time) T {
	p := tw.Progress(now)
	if p >= 1 {
		return tw.to
	}
	return tw.lerp(tw.from, tw.to, tw.ease(p))
}

func (tw *Tween[T]) Done(now time.Time) bool { return tw.Progress(now) >= 1 }

func (tw *Tween[T]) Target() T { return tw.to }

// Clock abstracts time.Now so animations can run on a virtual clock.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to.
type ManualClock struct {
	T time.Time
}

func (c *ManualClock) Now() time.Time { return c.T }

func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.T = c.T.Add(d)
	return c.T
}
