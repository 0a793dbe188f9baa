// Package sac provides sample consensus methods for robust model fitting
// over point clouds with a large fraction of outliers.
package sac

import (
	"errors"
)

// Coefficients parameterizes a fitted geometric model,
// e.g. {nx, ny, nz, d} for a plane.
type Coefficients []float32

// Model is the capability contract required from a parametric geometric
// model. The model owns its sample index set for the duration of a run.
type Model interface {
	// SampleSize returns the minimum number of points needed to
	// instantiate one candidate model.
	SampleSize() int

	// Indices returns the sample index set, ranked best-to-worst by the
	// caller's quality measure.
	Indices() []int

	// Samples draws SampleSize() indices from pool for the given trial.
	// A nil result means no sample could be selected.
	Samples(iter int, pool []int) []int

	// Estimate computes model coefficients from the drawn samples.
	// ok is false for degenerate sample configurations.
	Estimate(samples []int) (coeff Coefficients, ok bool)

	// SelectInliers returns the indices within threshold of the model,
	// evaluated over the full index set.
	SelectInliers(coeff Coefficients, threshold float32) []int

	// Refine least-squares fits the coefficients to the given inliers.
	// ok is false when refinement is not possible.
	Refine(coeff Coefficients, inliers []int) (refined Coefficients, ok bool)
}

// Method is a sample consensus engine bound to a Model.
type Method interface {
	SetDistanceThreshold(threshold float32)
	SetMaxIterations(n int)
	SetProbability(p float32)

	// Compute runs the trial loop. found is false when no trial ever
	// produced a model; that is a legitimate outcome, not an error.
	Compute() (found bool, err error)

	Iterations() int
	Selection() []int
	Inliers() []int
	Coefficients() Coefficients
}

// ErrThresholdNotSet is returned by Compute when no distance threshold was
// set. There is no default threshold.
var ErrThresholdNotSet = errors.New("distance threshold not set")
