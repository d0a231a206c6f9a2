// Package easing provides the curve functions used to shape tween progress.
//
// Every function maps a progress value t in [0, 1] to an eased value. Curves
// start at 0 and finish at 1; Back overshoots in between.
package easing

import "math"

// Func maps linear progress to eased progress.
type Func func(t float64) float64

// Linear returns t unchanged.
func Linear(t float64) float64 {
	return t
}

// PowerOut decelerates to one: f(t) = 1 - |(t-1)^p|. The power is rounded
// to an integer.
func PowerOut(power float64) Func {
	p := math.Round(power)
	return func(t float64) float64 {
		return 1 - math.Abs(math.Pow(t-1, p))
	}
}

// SineOut follows the rising quarter of a sine wave.
func SineOut() Func {
	return func(t float64) float64 {
		return math.Sin(math.Pi / 2 * t)
	}
}

// DefaultBackOvershoot is the overshoot used when BackOut gets zero.
const DefaultBackOvershoot = 1.70158

// BackOut overshoots past one and settles back. An overshoot of 0 selects
// DefaultBackOvershoot.
func BackOut(overshoot float64) Func {
	s := overshoot
	if s == 0 {
		s = DefaultBackOvershoot
	}
	return func(t float64) float64 {
		t--
		return t*t*((s+1)*t+s) + 1
	}
}
