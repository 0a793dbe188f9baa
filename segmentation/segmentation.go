// Package segmentation runs sample consensus based segmentation of a point
// cloud: it translates a user configuration into a (model, method) pair,
// runs the consensus engine and returns the supporting inliers with the
// fitted model coefficients.
package segmentation

import (
	"errors"
	"fmt"
	"math"

	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"

	"github.com/sq-robotics/pcseg/sac"
	"github.com/sq-robotics/pcseg/sac/model"
)

// ModelType selects the geometric model to fit.
type ModelType int

const (
	ModelPlane ModelType = iota
	ModelPerpendicularPlane
	ModelNormalPlane
	ModelSphere
)

// MethodType selects the consensus method.
type MethodType int

const (
	MethodRANSAC MethodType = iota
	MethodPROSAC
)

var (
	ErrInvalidInput      = errors.New("missing or empty input")
	ErrUnsupportedModel  = errors.New("unsupported model type")
	ErrUnsupportedMethod = errors.New("unsupported method type")
)

// Segmentation holds the segmentation configuration. Invalid combinations
// are not validated by the setters; they surface when Segment constructs
// the model and method.
type Segmentation struct {
	cloud   pc.Vec3RandomAccessor
	normals pc.Vec3RandomAccessor
	indices []int
	sampler sac.Sampler

	modelType  ModelType
	methodType MethodType

	threshold    float32
	thresholdSet bool

	maxIterations int
	probability   float32
	optimize      bool

	radiusMin, radiusMax float32
	axis                 mat.Vec3
	epsAngle             float32
	normalWeight         float32
	distFromOrigin       float32
}

func New() *Segmentation {
	return &Segmentation{
		maxIterations: 50,
		probability:   0.99,
		optimize:      true,
		radiusMin:     float32(math.Inf(-1)),
		radiusMax:     float32(math.Inf(1)),
		normalWeight:  0.1,
	}
}

// SetInputCloud binds the input point collection.
func (s *Segmentation) SetInputCloud(ra pc.Vec3RandomAccessor) { s.cloud = ra }

// SetInputNormals binds the surface normals, index-aligned with the input
// cloud. Required by normal based models only.
func (s *Segmentation) SetInputNormals(ra pc.Vec3RandomAccessor) { s.normals = ra }

func (s *Segmentation) InputNormals() pc.Vec3RandomAccessor { return s.normals }

// SetIndices selects and ranks the participating points, best quality
// first. For PROSAC the ranking drives the sampling schedule. nil means
// all points in stored order.
func (s *Segmentation) SetIndices(indices []int) { s.indices = indices }

// SetSampler overrides the random sampler used to draw trial samples,
// e.g. a seeded one for reproducible runs. nil restores the default.
func (s *Segmentation) SetSampler(sampler sac.Sampler) { s.sampler = sampler }

func (s *Segmentation) SetModelType(t ModelType) { s.modelType = t }

func (s *Segmentation) ModelType() ModelType { return s.modelType }

func (s *Segmentation) SetMethodType(t MethodType) { s.methodType = t }

func (s *Segmentation) MethodType() MethodType { return s.methodType }

// SetDistanceThreshold sets the inlier distance threshold. There is no
// default; Segment fails without one.
func (s *Segmentation) SetDistanceThreshold(threshold float32) {
	s.threshold = threshold
	s.thresholdSet = true
}

func (s *Segmentation) DistanceThreshold() float32 { return s.threshold }

func (s *Segmentation) SetMaxIterations(n int) { s.maxIterations = n }

func (s *Segmentation) MaxIterations() int { return s.maxIterations }

func (s *Segmentation) SetProbability(p float32) { s.probability = p }

func (s *Segmentation) Probability() float32 { return s.probability }

func (s *Segmentation) SetOptimizeCoefficients(optimize bool) { s.optimize = optimize }

func (s *Segmentation) OptimizeCoefficients() bool { return s.optimize }

// SetRadiusLimits bounds the model radius, for models that estimate one.
func (s *Segmentation) SetRadiusLimits(min, max float32) {
	s.radiusMin, s.radiusMax = min, max
}

func (s *Segmentation) RadiusLimits() (min, max float32) {
	return s.radiusMin, s.radiusMax
}

// SetAxis sets the axis to search for a model perpendicular to.
func (s *Segmentation) SetAxis(axis mat.Vec3) { s.axis = axis }

func (s *Segmentation) Axis() mat.Vec3 { return s.axis }

// SetEpsAngle sets the maximum allowed deviation from the axis in radians.
func (s *Segmentation) SetEpsAngle(ea float32) { s.epsAngle = ea }

func (s *Segmentation) EpsAngle() float32 { return s.epsAngle }

// SetNormalDistanceWeight sets the relative weight in [0, 1] given to the
// angular distance between point normals and the plane normal.
func (s *Segmentation) SetNormalDistanceWeight(w float32) { s.normalWeight = w }

func (s *Segmentation) NormalDistanceWeight() float32 { return s.normalWeight }

// SetDistanceFromOrigin sets the expected plane-to-origin distance, for
// models that constrain it.
func (s *Segmentation) SetDistanceFromOrigin(d float32) { s.distFromOrigin = d }

func (s *Segmentation) DistanceFromOrigin() float32 { return s.distFromOrigin }

// Segment fits the configured model to the bound input cloud. A run where
// no model was found returns empty inliers and coefficients with a nil
// error. Failed coefficient refinement silently keeps the unrefined
// coefficients.
func (s *Segmentation) Segment() ([]int, sac.Coefficients, error) {
	if s.cloud == nil || s.cloud.Len() == 0 {
		return nil, nil, fmt.Errorf("%w: input cloud", ErrInvalidInput)
	}
	if s.indices != nil && len(s.indices) == 0 {
		return nil, nil, fmt.Errorf("%w: indices", ErrInvalidInput)
	}

	m, err := s.initModel()
	if err != nil {
		return nil, nil, err
	}
	method, err := s.initMethod(m)
	if err != nil {
		return nil, nil, err
	}

	found, err := method.Compute()
	if err != nil {
		return nil, nil, err
	}
	if !found {
		return []int{}, sac.Coefficients{}, nil
	}

	inliers := method.Inliers()
	coeff := method.Coefficients()
	if s.optimize {
		if refined, ok := m.Refine(coeff, inliers); ok {
			coeff = refined
		}
	}
	return inliers, coeff, nil
}

func (s *Segmentation) initModel() (sac.Model, error) {
	switch s.modelType {
	case ModelPlane:
		return model.NewPlane(s.cloud, s.indices, s.sampler), nil
	case ModelPerpendicularPlane:
		return model.NewPerpendicularPlane(s.cloud, s.indices, s.sampler, s.axis, s.epsAngle), nil
	case ModelNormalPlane:
		if s.normals == nil || s.normals.Len() != s.cloud.Len() {
			return nil, fmt.Errorf("%w: input normals", ErrInvalidInput)
		}
		np := model.NewNormalPlane(s.cloud, s.normals, s.indices, s.sampler, s.normalWeight)
		if s.distFromOrigin != 0 {
			np.SetDistanceFromOrigin(s.distFromOrigin, s.threshold)
		}
		return np, nil
	case ModelSphere:
		sp := model.NewSphere(s.cloud, s.indices, s.sampler)
		sp.SetRadiusLimits(s.radiusMin, s.radiusMax)
		return sp, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnsupportedModel, int(s.modelType))
}

func (s *Segmentation) initMethod(m sac.Model) (sac.Method, error) {
	var method sac.Method
	switch s.methodType {
	case MethodRANSAC:
		method = sac.NewRANSAC(m)
	case MethodPROSAC:
		method = sac.NewPROSAC(m)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMethod, int(s.methodType))
	}
	if s.thresholdSet {
		method.SetDistanceThreshold(s.threshold)
	}
	method.SetMaxIterations(s.maxIterations)
	method.SetProbability(s.probability)
	return method, nil
}
