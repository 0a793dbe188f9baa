package sac

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// binomialUpperQuantile returns the smallest k with CDF(k) >= q for a
// binomial distribution with n trials and success probability p.
func binomialUpperQuantile(n int, p, q float64) float64 {
	b := distuv.Binomial{N: float64(n), P: p}
	for k := 0.0; k < b.N; k++ {
		if b.CDF(k) >= q {
			return k
		}
	}
	return b.N
}
