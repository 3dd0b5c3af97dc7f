package model

import "math"

// MaxAmount is the largest magnitude any amount or derived figure may take.
// Larger finite values are clamped to it so arithmetic on them stays finite.
const MaxAmount = 1e15

// Finite returns v, or 0 when v is NaN or infinite.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// NonNegative clamps v to [0, MaxAmount]. NaN and infinities become 0.
func NonNegative(v float64) float64 {
	v = Finite(v)
	if v < 0 {
		return 0
	}
	return math.Min(v, MaxAmount)
}

// Bounded clamps v to [-MaxAmount, MaxAmount]. NaN becomes 0 and infinities
// saturate.
func Bounded(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-MaxAmount, math.Min(MaxAmount, v))
}

// Quotient returns num/den bounded by MaxAmount, or 0 when den is zero.
func Quotient(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return Bounded(num / den)
}

// Clamp restricts v to [lo, hi]. NaN and infinities become lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
