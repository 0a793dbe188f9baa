package model

import (
	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
	gmat "gonum.org/v1/gonum/mat"

	"github.com/sq-robotics/pcseg/sac"
)

// Plane fits an infinite plane. Coefficients are {nx, ny, nz, d} with unit
// normal and nx*x + ny*y + nz*z + d = 0.
type Plane struct {
	base
}

// NewPlane returns a plane model over ra. indices selects and ranks the
// participating points, best quality first; nil means all points in order.
// A nil sampler falls back to the shared math/rand source.
func NewPlane(ra pc.Vec3RandomAccessor, indices []int, s sac.Sampler) *Plane {
	return &Plane{base: newBase(ra, indices, s)}
}

func (*Plane) SampleSize() int {
	return 3
}

func (p *Plane) Samples(iter int, pool []int) []int {
	return p.samples(3, pool)
}

func (p *Plane) Estimate(samples []int) (sac.Coefficients, bool) {
	if len(samples) != 3 {
		return nil, false
	}
	p0 := p.ra.Vec3At(samples[0])
	v1 := p.ra.Vec3At(samples[1]).Sub(p0)
	v2 := p.ra.Vec3At(samples[2]).Sub(p0)

	norm := v1.Cross(v2)
	if nearZeroSq(norm.NormSq()) {
		// Collinear or coincident samples.
		return nil, false
	}
	norm = norm.Normalized()

	return sac.Coefficients{norm[0], norm[1], norm[2], -norm.Dot(p0)}, true
}

func (p *Plane) SelectInliers(coeff sac.Coefficients, threshold float32) []int {
	return planeInliers(p.ra, p.indices, coeff, threshold)
}

func (p *Plane) Refine(coeff sac.Coefficients, inliers []int) (sac.Coefficients, bool) {
	return refinePlane(p.ra, coeff, inliers)
}

func planeInliers(ra pc.Vec3RandomAccessor, indices []int, coeff sac.Coefficients, threshold float32) []int {
	if len(coeff) != 4 {
		return nil
	}
	norm := mat.Vec3{coeff[0], coeff[1], coeff[2]}
	out := make([]int, 0, len(indices))
	for _, id := range indices {
		d := norm.Dot(ra.Vec3At(id)) + coeff[3]
		if -threshold <= d && d <= threshold {
			out = append(out, id)
		}
	}
	return out
}

// refinePlane least-squares fits the plane to the inliers. The refined
// normal is the eigenvector of the smallest eigenvalue of the centered
// covariance of the inlier points.
func refinePlane(ra pc.Vec3RandomAccessor, coeff sac.Coefficients, inliers []int) (sac.Coefficients, bool) {
	if len(coeff) != 4 || len(inliers) < 3 {
		return nil, false
	}

	var cx, cy, cz float64
	for _, id := range inliers {
		v := ra.Vec3At(id)
		cx += float64(v[0])
		cy += float64(v[1])
		cz += float64(v[2])
	}
	n := float64(len(inliers))
	cx /= n
	cy /= n
	cz /= n

	var xx, xy, xz, yy, yz, zz float64
	for _, id := range inliers {
		v := ra.Vec3At(id)
		dx, dy, dz := float64(v[0])-cx, float64(v[1])-cy, float64(v[2])-cz
		xx += dx * dx
		xy += dx * dy
		xz += dx * dz
		yy += dy * dy
		yz += dy * dz
		zz += dz * dz
	}

	cov := gmat.NewSymDense(3, []float64{
		xx, xy, xz,
		xy, yy, yz,
		xz, yz, zz,
	})
	var eig gmat.EigenSym
	if !eig.Factorize(cov, true) {
		return nil, false
	}
	var vecs gmat.Dense
	eig.VectorsTo(&vecs)

	// Eigenvalues are sorted ascending; the first eigenvector is the
	// refined normal.
	nx, ny, nz := vecs.At(0, 0), vecs.At(1, 0), vecs.At(2, 0)
	if float64(coeff[0])*nx+float64(coeff[1])*ny+float64(coeff[2])*nz < 0 {
		// Keep the refined normal on the same side as the input one.
		nx, ny, nz = -nx, -ny, -nz
	}
	d := -(nx*cx + ny*cy + nz*cz)

	return sac.Coefficients{float32(nx), float32(ny), float32(nz), float32(d)}, true
}
