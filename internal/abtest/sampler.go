package abtest

import "math/rand/v2"

// Sampler draws a uniform number in [0, 1).
type Sampler interface {
	Float64() float64
}

// SamplerFunc adapts a plain function to Sampler.
type SamplerFunc func() float64

// Float64 calls f.
func (f SamplerFunc) Float64() float64 {
	return f()
}

// DefaultSampler uses the math/rand/v2 top-level generator, which is safe
// for concurrent use.
func DefaultSampler() Sampler {
	return SamplerFunc(rand.Float64)
}

// FixedSampler always returns v. Useful for forcing a group in tests and scripts.
func FixedSampler(v float64) Sampler {
	return SamplerFunc(func() float64 { return v })
}
