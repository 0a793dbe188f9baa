package sac

import (
	"math"
	"sort"
)

// tN is the worst-case trial cap from the PROSAC paper (T_N).
const tN = 200000

// PROSAC is a progressive sample consensus engine (Chum and Matas, 2005).
// It draws samples from a growing pool of the best-ranked indices, so
// hypotheses built from high-quality points are tried long before a uniform
// sampler would be likely to combine them. The trial budget adapts online
// from order statistics of the inliers found so far.
type PROSAC struct {
	model Model

	threshold     float32
	maxIterations int
	probability   float32

	iterations int
	selection  []int
	inliers    []int
	coeff      Coefficients
}

// NewPROSAC returns a PROSAC engine bound to the given model. The model's
// index set must be ranked best-to-worst; the distance threshold must be
// set before Compute.
func NewPROSAC(m Model) *PROSAC {
	return &PROSAC{
		model:         m,
		threshold:     float32(math.Inf(1)),
		maxIterations: 1000,
		probability:   0.99,
	}
}

func (p *PROSAC) SetDistanceThreshold(threshold float32) { p.threshold = threshold }

func (p *PROSAC) SetMaxIterations(n int) { p.maxIterations = n }

// SetProbability is kept for Method compatibility. The PROSAC stopping
// criterion uses the paper's fixed non-randomness level instead.
func (p *PROSAC) SetProbability(prob float32) { p.probability = prob }

func (p *PROSAC) Iterations() int { return p.iterations }

func (p *PROSAC) Selection() []int { return p.selection }

func (p *PROSAC) Inliers() []int { return p.inliers }

func (p *PROSAC) Coefficients() Coefficients { return p.coeff }

func (p *PROSAC) Compute() (bool, error) {
	if math.IsInf(float64(p.threshold), 1) {
		return false, ErrThresholdNotSet
	}

	indices := p.model.Indices()
	nTotal := len(indices)
	m := p.model.SampleSize()

	p.iterations = 0
	p.selection, p.inliers, p.coeff = nil, nil, nil
	if nTotal < m {
		return false, nil
	}

	// T_n: expected number of trials drawing an all-inlier sample from the
	// minimal pool (n = m).
	tn := float32(tN)
	for i := 0; i < m; i++ {
		tn *= float32(m-i) / float32(nTotal-i)
	}
	tPrimeN := float32(1)

	pool := newIndexPool(indices, m)

	nStar := nTotal
	epsNStar := float32(0)
	kNStar := tN

	var bestCount int

	for p.iterations < kNStar && p.iterations < p.maxIterations {
		// Grow the pool once the trial counter crosses T'_n (Eq. 5).
		// Threshold crossing instead of exact equality: T'_n accumulates
		// ceil increments in float32 and a missed equality tick would
		// stall the pool forever.
		if float32(p.iterations) >= tPrimeN && pool.Len() < nStar {
			if pool.Len()+1 >= nTotal {
				// No more samples to add.
				break
			}
			pool.Promote()
			tnPrev := tn
			n := pool.Len()
			tn *= float32(n+1) / float32(n+1-m)
			tPrimeN += float32(math.Ceil(float64(tn - tnPrev)))
		}

		selection := p.model.Samples(p.iterations, pool.View())
		if len(selection) == 0 {
			p.iterations++
			continue
		}
		if tPrimeN < float32(p.iterations) {
			// The trial counter has passed T'_n; make sure the newest
			// promoted index takes part in the sample.
			selection[len(selection)-1] = pool.Last()
		}

		coeff, ok := p.model.Estimate(selection)
		if !ok {
			p.iterations++
			continue
		}

		// Inliers are selected over the full index range, not just the
		// current pool.
		inliers := p.model.SelectInliers(coeff, p.threshold)

		if len(inliers) > bestCount {
			bestCount = len(inliers)
			p.selection = selection
			p.inliers = inliers
			p.coeff = coeff

			nStar, epsNStar, kNStar = updateStopping(inliers, nTotal, m, nStar, epsNStar, kNStar)
		}

		p.iterations++
	}

	if p.coeff == nil {
		p.inliers = nil
		return false, nil
	}
	return true, nil
}

// updateStopping re-derives n_star, epsilon_n_star and the adaptive trial
// budget k_n_star after a new best model was found (Eqs. 7-9 of the paper).
func updateStopping(inliers []int, nTotal, m, nStar int, epsNStar float32, kNStar int) (int, float32, int) {
	sorted := append([]int{}, inliers...)
	sort.Ints(sorted)

	iN := len(inliers)
	possibleBest := nTotal
	epsPossibleBest := float32(iN) / float32(nTotal)

	// Only pool sizes one past an inlier rank can improve epsilon, so scan
	// the sorted inliers from the highest rank downward.
	iPossible := iN
	for i := len(sorted) - 1; i >= 0; i, iPossible = i-1, iPossible-1 {
		possible := sorted[i] + 1
		if possible <= m {
			break
		}

		epsPossible := float32(iPossible) / float32(possible)
		if epsPossible > epsNStar && epsPossible > epsPossibleBest {
			// Non-randomness bound (Eq. 8): minimum inlier support at this
			// pool size, from the upper 95 % quantile of Binomial(n, 0.1).
			iMin := m + int(math.Ceil(binomialUpperQuantile(possible, 0.1, 0.95)))
			if iPossible < iMin {
				// Eq. 9 failed; smaller pools are not considered.
				break
			}
			possibleBest = possible
			epsPossibleBest = epsPossible
		}
	}

	if epsPossibleBest > epsNStar {
		nStar = possibleBest
		epsNStar = epsPossibleBest

		bottomLog := 1 - float32(math.Pow(float64(epsNStar), float64(m)))
		switch {
		case bottomLog == 0:
			kNStar = 1
		case bottomLog == 1:
			kNStar = tN
		default:
			k := math.Ceil(math.Log(0.05) / math.Log(float64(bottomLog)))
			if k > tN {
				k = tN
			}
			kNStar = int(k)
		}
		// Never fewer than twice the minimum sample size.
		if kNStar < 2*m {
			kNStar = 2 * m
		}
	}

	return nStar, epsNStar, kNStar
}
