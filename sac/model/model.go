// Package model provides geometric models implementing the sac.Model
// contract: plane, perpendicular plane, normal plane and sphere.
package model

import (
	"math"

	"github.com/seqsense/pcgol/pc"

	"github.com/sq-robotics/pcseg/sac"
)

const (
	epsilon = 1e-6

	// maxSampleAttempts bounds the rejection loop drawing distinct
	// sample indices.
	maxSampleAttempts = 100
)

func nearZeroSq(a float32) bool {
	return a < epsilon*epsilon
}

func abs32(a float32) float32 {
	if a < 0 {
		return -a
	}
	return a
}

func acos32(c float32) float32 {
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return float32(math.Acos(float64(c)))
}

type base struct {
	ra      pc.Vec3RandomAccessor
	indices []int
	sampler sac.Sampler
}

func newBase(ra pc.Vec3RandomAccessor, indices []int, s sac.Sampler) base {
	if indices == nil {
		indices = make([]int, ra.Len())
		for i := range indices {
			indices[i] = i
		}
	}
	if s == nil {
		s = sac.NewRandomSampler()
	}
	return base{ra: ra, indices: indices, sampler: s}
}

// Indices returns the quality-ranked sample index set owned by the model.
func (b *base) Indices() []int {
	return b.indices
}

// samples draws m distinct indices uniformly from pool.
func (b *base) samples(m int, pool []int) []int {
	if len(pool) < m {
		return nil
	}
	out := make([]int, 0, m)
	for attempt := 0; attempt < maxSampleAttempts && len(out) < m; attempt++ {
		id := pool[b.sampler.Sample(len(pool))]
		dup := false
		for _, o := range out {
			if o == id {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, id)
		}
	}
	if len(out) < m {
		return nil
	}
	return out
}
