package model

import (
	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"

	"github.com/sq-robotics/pcseg/sac"
)

// NormalPlane fits a plane using surface normals: the inlier distance is a
// weighted sum of the point-to-plane distance and the angle between the
// point normal and the plane normal. normals must be index-aligned with the
// point accessor.
type NormalPlane struct {
	Plane
	normals pc.Vec3RandomAccessor
	weight  float32

	distFromOrigin float32
	epsDist        float32
	hasDistance    bool
}

// NewNormalPlane returns a normal plane model. weight is the relative
// weight in [0, 1] given to the angular distance.
func NewNormalPlane(ra, normals pc.Vec3RandomAccessor, indices []int, s sac.Sampler, weight float32) *NormalPlane {
	if weight < 0 {
		weight = 0
	} else if weight > 1 {
		weight = 1
	}
	return &NormalPlane{
		Plane:   Plane{base: newBase(ra, indices, s)},
		normals: normals,
		weight:  weight,
	}
}

// SetDistanceFromOrigin constrains the plane-to-origin distance: candidate
// planes whose offset deviates from d by more than eps are rejected at
// estimation time.
func (p *NormalPlane) SetDistanceFromOrigin(d, eps float32) {
	p.distFromOrigin = d
	p.epsDist = eps
	p.hasDistance = true
}

func (p *NormalPlane) Estimate(samples []int) (sac.Coefficients, bool) {
	coeff, ok := p.Plane.Estimate(samples)
	if !ok {
		return nil, false
	}
	if p.hasDistance && abs32(abs32(coeff[3])-p.distFromOrigin) > p.epsDist {
		return nil, false
	}
	return coeff, true
}

func (p *NormalPlane) SelectInliers(coeff sac.Coefficients, threshold float32) []int {
	if len(coeff) != 4 || p.normals == nil {
		return nil
	}
	norm := mat.Vec3{coeff[0], coeff[1], coeff[2]}
	out := make([]int, 0, len(p.indices))
	for _, id := range p.indices {
		dEuclid := abs32(norm.Dot(p.ra.Vec3At(id)) + coeff[3])

		pn := p.normals.Vec3At(id)
		var dNormal float32
		if !nearZeroSq(pn.NormSq()) {
			// Angle mapped to [0, pi/2]; the normal orientation does not
			// matter for a plane.
			dNormal = acos32(abs32(norm.Dot(pn) / pn.Norm()))
		}

		d := p.weight*dNormal + (1-p.weight)*dEuclid
		if d <= threshold {
			out = append(out, id)
		}
	}
	return out
}
