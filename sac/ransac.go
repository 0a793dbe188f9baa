package sac

import (
	"math"
)

// RANSAC is a plain random sample consensus engine. Samples are drawn
// uniformly from the full index set and the number of trials adapts to the
// observed inlier ratio.
type RANSAC struct {
	model Model

	threshold     float32
	maxIterations int
	probability   float32

	iterations int
	selection  []int
	inliers    []int
	coeff      Coefficients
}

// NewRANSAC returns a RANSAC engine bound to the given model. The distance
// threshold must be set before Compute.
func NewRANSAC(m Model) *RANSAC {
	return &RANSAC{
		model:         m,
		threshold:     float32(math.Inf(1)),
		maxIterations: 1000,
		probability:   0.99,
	}
}

func (r *RANSAC) SetDistanceThreshold(threshold float32) { r.threshold = threshold }

func (r *RANSAC) SetMaxIterations(n int) { r.maxIterations = n }

// SetProbability sets the desired probability of drawing at least one
// outlier-free sample.
func (r *RANSAC) SetProbability(p float32) { r.probability = p }

func (r *RANSAC) Iterations() int { return r.iterations }

func (r *RANSAC) Selection() []int { return r.selection }

func (r *RANSAC) Inliers() []int { return r.inliers }

func (r *RANSAC) Coefficients() Coefficients { return r.coeff }

func (r *RANSAC) Compute() (bool, error) {
	if math.IsInf(float64(r.threshold), 1) {
		return false, ErrThresholdNotSet
	}

	indices := r.model.Indices()
	n := len(indices)
	m := r.model.SampleSize()

	r.iterations = 0
	r.selection, r.inliers, r.coeff = nil, nil, nil
	if n < m {
		return false, nil
	}

	k := float64(r.maxIterations)
	logProb := math.Log(1 - float64(r.probability))
	var bestCount int

	for float64(r.iterations) < k && r.iterations < r.maxIterations {
		selection := r.model.Samples(r.iterations, indices)
		if len(selection) == 0 {
			r.iterations++
			continue
		}

		coeff, ok := r.model.Estimate(selection)
		if !ok {
			r.iterations++
			continue
		}

		inliers := r.model.SelectInliers(coeff, r.threshold)
		if len(inliers) > bestCount {
			bestCount = len(inliers)
			r.selection = selection
			r.inliers = inliers
			r.coeff = coeff

			// Adapt the number of trials to the inlier ratio found so far.
			w := float64(bestCount) / float64(n)
			pNoOutliers := 1 - math.Pow(w, float64(m))
			pNoOutliers = math.Max(1e-12, math.Min(1-1e-12, pNoOutliers))
			k = logProb / math.Log(pNoOutliers)
		}
		r.iterations++
	}

	return r.coeff != nil, nil
}
