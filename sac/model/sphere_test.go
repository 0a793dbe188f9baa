package model

import (
	"math"
	"reflect"
	"testing"

	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"

	"github.com/sq-robotics/pcseg/sac"
)

func sphereCloud(center mat.Vec3, r float32) pc.Vec3Slice {
	var out pc.Vec3Slice
	for i := 0; i < 6; i++ {
		for j := 1; j < 6; j++ {
			theta := float64(i) * 2 * math.Pi / 6
			phi := float64(j) * math.Pi / 6
			out = append(out, center.Add(mat.Vec3{
				r * float32(math.Sin(phi)*math.Cos(theta)),
				r * float32(math.Sin(phi)*math.Sin(theta)),
				r * float32(math.Cos(phi)),
			}))
		}
	}
	return out
}

func checkSphere(t *testing.T, coeff sac.Coefficients, center mat.Vec3, r, tol float32) {
	t.Helper()
	if len(coeff) != 4 {
		t.Fatalf("Expected 4 sphere coefficients, got: %v", coeff)
	}
	c := mat.Vec3{coeff[0], coeff[1], coeff[2]}
	if c.Sub(center).Norm() > tol {
		t.Errorf("Expected center %v, got: %v", center, c)
	}
	if abs32(coeff[3]-r) > tol {
		t.Errorf("Expected radius %f, got: %f", r, coeff[3])
	}
}

func TestSphere_Estimate(t *testing.T) {
	center := mat.Vec3{1, 2, 3}
	cloud := pc.Vec3Slice{
		center.Add(mat.Vec3{1, 0, 0}),
		center.Add(mat.Vec3{-1, 0, 0}),
		center.Add(mat.Vec3{0, 1, 0}),
		center.Add(mat.Vec3{0, 0, 1}),
		center.Add(mat.Vec3{0.5, 0, 0}), // coplanar spoiler for the degenerate case
	}
	s := NewSphere(cloud, nil, sac.NewSeededRandomSampler(1))

	coeff, ok := s.Estimate([]int{0, 1, 2, 3})
	if !ok {
		t.Fatal("Estimate should succeed")
	}
	checkSphere(t, coeff, center, 1, 1e-4)

	// All four samples in the z = 3 plane are degenerate.
	if _, ok := s.Estimate([]int{0, 1, 2, 4}); ok {
		t.Error("Estimate should fail on coplanar samples")
	}
}

func TestSphere_RadiusLimits(t *testing.T) {
	center := mat.Vec3{0, 0, 0}
	cloud := pc.Vec3Slice{
		center.Add(mat.Vec3{1, 0, 0}),
		center.Add(mat.Vec3{-1, 0, 0}),
		center.Add(mat.Vec3{0, 1, 0}),
		center.Add(mat.Vec3{0, 0, 1}),
	}
	s := NewSphere(cloud, nil, sac.NewSeededRandomSampler(1))
	s.SetRadiusLimits(2, 3)

	if _, ok := s.Estimate([]int{0, 1, 2, 3}); ok {
		t.Error("Estimate should reject a radius outside the limits")
	}

	s.SetRadiusLimits(0.5, 1.5)
	if _, ok := s.Estimate([]int{0, 1, 2, 3}); !ok {
		t.Error("Estimate should accept a radius within the limits")
	}
}

func TestSphere_SelectInliers(t *testing.T) {
	center := mat.Vec3{1, 2, 3}
	cloud := sphereCloud(center, 1)
	outliers := pc.Vec3Slice{
		mat.Vec3{1, 2, 3},
		mat.Vec3{5, 5, 5},
	}
	cloud = append(cloud, outliers...)

	s := NewSphere(cloud, nil, sac.NewSeededRandomSampler(1))
	inliers := s.SelectInliers(sac.Coefficients{1, 2, 3, 1}, 0.01)

	expected := make([]int, len(cloud)-len(outliers))
	for i := range expected {
		expected[i] = i
	}
	if !reflect.DeepEqual(expected, inliers) {
		t.Errorf("Expected inliers %v, got: %v", expected, inliers)
	}
}

func TestSphere_Refine(t *testing.T) {
	center := mat.Vec3{1, 2, 3}
	cloud := sphereCloud(center, 1)
	s := NewSphere(cloud, nil, sac.NewSeededRandomSampler(1))

	inliers := make([]int, len(cloud))
	for i := range inliers {
		inliers[i] = i
	}
	coeff, ok := s.Refine(sac.Coefficients{0.9, 1.9, 2.9, 1.1}, inliers)
	if !ok {
		t.Fatal("Refine should succeed")
	}
	checkSphere(t, coeff, center, 1, 1e-3)
}
