package model

import (
	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"

	"github.com/sq-robotics/pcseg/sac"
)

// PerpendicularPlane fits a plane perpendicular to a given axis: candidate
// planes whose normal deviates from the axis by more than epsAngle radians
// are rejected at estimation time. A zero axis or zero epsAngle disables
// the constraint.
type PerpendicularPlane struct {
	Plane
	axis     mat.Vec3
	epsAngle float32
}

func NewPerpendicularPlane(ra pc.Vec3RandomAccessor, indices []int, s sac.Sampler, axis mat.Vec3, epsAngle float32) *PerpendicularPlane {
	return &PerpendicularPlane{
		Plane:    Plane{base: newBase(ra, indices, s)},
		axis:     axis,
		epsAngle: epsAngle,
	}
}

func (p *PerpendicularPlane) Estimate(samples []int) (sac.Coefficients, bool) {
	coeff, ok := p.Plane.Estimate(samples)
	if !ok {
		return nil, false
	}
	if p.epsAngle > 0 && !nearZeroSq(p.axis.NormSq()) {
		norm := mat.Vec3{coeff[0], coeff[1], coeff[2]}
		angle := acos32(abs32(norm.Dot(p.axis.Normalized())))
		if angle > p.epsAngle {
			return nil, false
		}
	}
	return coeff, true
}
