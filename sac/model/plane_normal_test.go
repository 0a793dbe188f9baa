package model

import (
	"math"
	"reflect"
	"testing"

	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"

	"github.com/sq-robotics/pcseg/sac"
)

func TestNormalPlane_SelectInliers(t *testing.T) {
	cloud := pc.Vec3Slice{
		mat.Vec3{0, 0, 0},
		mat.Vec3{1, 0, 0},
		mat.Vec3{0, 1, 0},
		mat.Vec3{1, 1, 0}, // on plane, but its normal is along x
		mat.Vec3{0, 0, 1}, // off plane
	}
	normals := pc.Vec3Slice{
		mat.Vec3{0, 0, 1},
		mat.Vec3{0, 0, -1}, // orientation must not matter
		mat.Vec3{0, 0, 1},
		mat.Vec3{1, 0, 0},
		mat.Vec3{0, 0, 1},
	}
	p := NewNormalPlane(cloud, normals, nil, sac.NewSeededRandomSampler(1), 0.5)

	inliers := p.SelectInliers(sac.Coefficients{0, 0, 1, 0}, 0.1)
	if expected := []int{0, 1, 2}; !reflect.DeepEqual(expected, inliers) {
		t.Errorf("Expected inliers %v, got: %v", expected, inliers)
	}

	// With zero weight only the euclidean distance counts.
	p0 := NewNormalPlane(cloud, normals, nil, sac.NewSeededRandomSampler(1), 0)
	inliers = p0.SelectInliers(sac.Coefficients{0, 0, 1, 0}, 0.1)
	if expected := []int{0, 1, 2, 3}; !reflect.DeepEqual(expected, inliers) {
		t.Errorf("Expected inliers %v, got: %v", expected, inliers)
	}
}

func TestNormalPlane_DistanceFromOrigin(t *testing.T) {
	cloud := pc.Vec3Slice{
		mat.Vec3{0, 0, 0.5},
		mat.Vec3{1, 0, 0.5},
		mat.Vec3{0, 1, 0.5},
	}
	normals := pc.Vec3Slice{
		mat.Vec3{0, 0, 1},
		mat.Vec3{0, 0, 1},
		mat.Vec3{0, 0, 1},
	}
	p := NewNormalPlane(cloud, normals, nil, sac.NewSeededRandomSampler(1), 0.1)

	p.SetDistanceFromOrigin(0.5, 0.01)
	if _, ok := p.Estimate([]int{0, 1, 2}); !ok {
		t.Error("Estimate should accept a plane at the expected distance")
	}

	p.SetDistanceFromOrigin(2, 0.01)
	if _, ok := p.Estimate([]int{0, 1, 2}); ok {
		t.Error("Estimate should reject a plane off the expected distance")
	}
}

func TestNormalPlane_AngularDistance(t *testing.T) {
	cloud := pc.Vec3Slice{mat.Vec3{0, 0, 0}}
	tilt := float32(math.Sqrt(0.5))
	normals := pc.Vec3Slice{mat.Vec3{tilt, 0, tilt}} // 45 degrees off
	p := NewNormalPlane(cloud, normals, nil, sac.NewSeededRandomSampler(1), 1)

	// Pure angular distance: pi/4 off the plane normal.
	if in := p.SelectInliers(sac.Coefficients{0, 0, 1, 0}, math.Pi/4+0.01); len(in) != 1 {
		t.Errorf("Expected the tilted point within pi/4, got: %v", in)
	}
	if in := p.SelectInliers(sac.Coefficients{0, 0, 1, 0}, math.Pi/4-0.01); len(in) != 0 {
		t.Errorf("Expected the tilted point outside pi/4-0.01, got: %v", in)
	}
}
