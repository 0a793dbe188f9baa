package sac

import (
	"math/rand"
)

// Sampler draws uniform random integers in [0, n).
type Sampler interface {
	Sample(n int) int
}

type randomSampler struct{}

func (randomSampler) Sample(n int) int {
	return rand.Intn(n)
}

// NewRandomSampler returns a Sampler backed by the shared math/rand source.
func NewRandomSampler() Sampler {
	return randomSampler{}
}

type seededSampler struct {
	r *rand.Rand
}

func (s *seededSampler) Sample(n int) int {
	return s.r.Intn(n)
}

// NewSeededRandomSampler returns a Sampler with its own seeded source for
// reproducible runs.
func NewSeededRandomSampler(seed int64) Sampler {
	return &seededSampler{r: rand.New(rand.NewSource(seed))}
}
