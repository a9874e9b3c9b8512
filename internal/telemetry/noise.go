package telemetry

import (
	"math/rand/v2"
	"sync"
)

// Draw ranges for the noise source.
const (
	noiseMin          = 0.95
	noiseMax          = 1.05
	faultMagnitudeMin = 10.0
	faultMagnitudeMax = 30.0
)

// NoiseSource supplies the stochastic inputs of Estimate.
type NoiseSource interface {
	// Multiplicative returns an output noise factor in [0.95,1.05].
	Multiplicative() float64
	// Uniform returns a draw in [0,1) compared against the fault chance.
	Uniform() float64
	// FaultMagnitude returns the efficiency penalty of an injected fault, in [10,30].
	FaultMagnitude() float64
}

// RandomNoise draws from the process-wide generator. Safe for concurrent use.
type RandomNoise struct{}

func (RandomNoise) Multiplicative() float64 { return between(rand.Float64(), noiseMin, noiseMax) }
func (RandomNoise) Uniform() float64        { return rand.Float64() }
func (RandomNoise) FaultMagnitude() float64 {
	return between(rand.Float64(), faultMagnitudeMin, faultMagnitudeMax)
}

// SeededNoise is a reproducible NoiseSource. Safe for concurrent use.
type SeededNoise struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededNoise returns a generator that yields the same sequence for the same seed.
func NewSeededNoise(seed uint64) *SeededNoise {
	return &SeededNoise{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *SeededNoise) float() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *SeededNoise) Multiplicative() float64 { return between(s.float(), noiseMin, noiseMax) }
func (s *SeededNoise) Uniform() float64        { return s.float() }
func (s *SeededNoise) FaultMagnitude() float64 {
	return between(s.float(), faultMagnitudeMin, faultMagnitudeMax)
}

// FixedNoise returns the same draws every time.
type FixedNoise struct {
	Factor    float64 // Multiplicative
	Draw      float64 // Uniform
	Magnitude float64 // FaultMagnitude
}

// NoFault is a FixedNoise with unit noise whose draw never triggers a fault.
var NoFault = FixedNoise{Factor: 1, Draw: 1, Magnitude: faultMagnitudeMin}

func (f FixedNoise) Multiplicative() float64 { return f.Factor }
func (f FixedNoise) Uniform() float64        { return f.Draw }
func (f FixedNoise) FaultMagnitude() float64 { return f.Magnitude }

// between maps u in [0,1) linearly onto [lo,hi).
func between(u, lo, hi float64) float64 {
	return lo + u*(hi-lo)
}
