package model

import (
	"math"

	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
	gmat "gonum.org/v1/gonum/mat"

	"github.com/sq-robotics/pcseg/sac"
)

// Sphere fits a sphere. Coefficients are {cx, cy, cz, r}.
type Sphere struct {
	base
	radiusMin, radiusMax float32
}

func NewSphere(ra pc.Vec3RandomAccessor, indices []int, s sac.Sampler) *Sphere {
	return &Sphere{
		base:      newBase(ra, indices, s),
		radiusMin: float32(math.Inf(-1)),
		radiusMax: float32(math.Inf(1)),
	}
}

// SetRadiusLimits rejects candidate spheres with a radius outside
// [min, max] at estimation time.
func (s *Sphere) SetRadiusLimits(min, max float32) {
	s.radiusMin, s.radiusMax = min, max
}

func (*Sphere) SampleSize() int {
	return 4
}

func (s *Sphere) Samples(iter int, pool []int) []int {
	return s.samples(4, pool)
}

func (s *Sphere) Estimate(samples []int) (sac.Coefficients, bool) {
	if len(samples) != 4 {
		return nil, false
	}
	coeff, ok := solveSphere(s.ra, samples)
	if !ok {
		return nil, false
	}
	if coeff[3] < s.radiusMin || coeff[3] > s.radiusMax {
		return nil, false
	}
	return coeff, true
}

func (s *Sphere) SelectInliers(coeff sac.Coefficients, threshold float32) []int {
	if len(coeff) != 4 {
		return nil
	}
	center := mat.Vec3{coeff[0], coeff[1], coeff[2]}
	out := make([]int, 0, len(s.indices))
	for _, id := range s.indices {
		d := s.ra.Vec3At(id).Sub(center).Norm() - coeff[3]
		if -threshold <= d && d <= threshold {
			out = append(out, id)
		}
	}
	return out
}

func (s *Sphere) Refine(coeff sac.Coefficients, inliers []int) (sac.Coefficients, bool) {
	if len(coeff) != 4 || len(inliers) < 4 {
		return nil, false
	}
	refined, ok := solveSphere(s.ra, inliers)
	if !ok {
		return nil, false
	}
	if refined[3] < s.radiusMin || refined[3] > s.radiusMax {
		return nil, false
	}
	return refined, true
}

// solveSphere fits the algebraic sphere |p|^2 + a*x + b*y + c*z + e = 0 to
// the given points. Four points give an exact solve; more give the linear
// least-squares fit.
func solveSphere(ra pc.Vec3RandomAccessor, ids []int) (sac.Coefficients, bool) {
	a := gmat.NewDense(len(ids), 4, nil)
	b := gmat.NewVecDense(len(ids), nil)
	for i, id := range ids {
		v := ra.Vec3At(id)
		x, y, z := float64(v[0]), float64(v[1]), float64(v[2])
		a.SetRow(i, []float64{x, y, z, 1})
		b.SetVec(i, -(x*x + y*y + z*z))
	}

	var sol gmat.VecDense
	if err := sol.SolveVec(a, b); err != nil {
		return nil, false
	}

	cx := -sol.AtVec(0) / 2
	cy := -sol.AtVec(1) / 2
	cz := -sol.AtVec(2) / 2
	rsq := cx*cx + cy*cy + cz*cz - sol.AtVec(3)
	if rsq <= 0 || math.IsNaN(rsq) || math.IsInf(rsq, 0) {
		return nil, false
	}

	return sac.Coefficients{
		float32(cx), float32(cy), float32(cz),
		float32(math.Sqrt(rsq)),
	}, true
}
