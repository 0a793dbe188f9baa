package sac

import (
	"testing"
)

func TestBinomialUpperQuantile(t *testing.T) {
	for name, tt := range map[string]struct {
		n        int
		p, q     float64
		expected float64
	}{
		// CDF(2) = 0.930, CDF(3) = 0.987 for Binomial(10, 0.1)
		"Binomial10": {n: 10, p: 0.1, q: 0.95, expected: 3},
		// CDF(9) = 0.927, CDF(10) = 0.966 for Binomial(60, 0.1)
		"Binomial60": {n: 60, p: 0.1, q: 0.95, expected: 10},
		"FullMass":   {n: 5, p: 1.0, q: 0.95, expected: 5},
	} {
		tt := tt
		t.Run(name, func(t *testing.T) {
			k := binomialUpperQuantile(tt.n, tt.p, tt.q)
			if k != tt.expected {
				t.Errorf("Expected quantile %f, got: %f", tt.expected, k)
			}
		})
	}
}
