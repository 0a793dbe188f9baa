package segmentation

import (
	"fmt"
	"io"

	"github.com/seqsense/pcgol/mat"
	"gopkg.in/yaml.v3"
)

// Params is the YAML representation of the segmentation configuration.
// Absent fields leave the corresponding setting untouched.
type Params struct {
	Model  string `yaml:"model"`
	Method string `yaml:"method"`

	DistanceThreshold    *float32  `yaml:"distance_threshold"`
	MaxIterations        *int      `yaml:"max_iterations"`
	Probability          *float32  `yaml:"probability"`
	OptimizeCoefficients *bool     `yaml:"optimize_coefficients"`
	RadiusMin            *float32  `yaml:"radius_min"`
	RadiusMax            *float32  `yaml:"radius_max"`
	Axis                 []float32 `yaml:"axis"`
	EpsAngle             *float32  `yaml:"eps_angle"`
	NormalDistanceWeight *float32  `yaml:"normal_distance_weight"`
	DistanceFromOrigin   *float32  `yaml:"distance_from_origin"`
}

var modelTypeNames = map[string]ModelType{
	"plane":               ModelPlane,
	"perpendicular_plane": ModelPerpendicularPlane,
	"normal_plane":        ModelNormalPlane,
	"sphere":              ModelSphere,
}

var methodTypeNames = map[string]MethodType{
	"ransac": MethodRANSAC,
	"prosac": MethodPROSAC,
}

// DecodeParams reads YAML segmentation parameters.
func DecodeParams(r io.Reader) (*Params, error) {
	var p Params
	if err := yaml.NewDecoder(r).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ApplyParams applies the given parameters to the configuration.
func (s *Segmentation) ApplyParams(p *Params) error {
	if p.Model != "" {
		mt, ok := modelTypeNames[p.Model]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnsupportedModel, p.Model)
		}
		s.SetModelType(mt)
	}
	if p.Method != "" {
		mt, ok := methodTypeNames[p.Method]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnsupportedMethod, p.Method)
		}
		s.SetMethodType(mt)
	}
	if p.DistanceThreshold != nil {
		s.SetDistanceThreshold(*p.DistanceThreshold)
	}
	if p.MaxIterations != nil {
		s.SetMaxIterations(*p.MaxIterations)
	}
	if p.Probability != nil {
		s.SetProbability(*p.Probability)
	}
	if p.OptimizeCoefficients != nil {
		s.SetOptimizeCoefficients(*p.OptimizeCoefficients)
	}
	if p.RadiusMin != nil || p.RadiusMax != nil {
		min, max := s.RadiusLimits()
		if p.RadiusMin != nil {
			min = *p.RadiusMin
		}
		if p.RadiusMax != nil {
			max = *p.RadiusMax
		}
		s.SetRadiusLimits(min, max)
	}
	if p.Axis != nil {
		if len(p.Axis) != 3 {
			return fmt.Errorf("%w: axis must have 3 elements", ErrInvalidInput)
		}
		s.SetAxis(mat.Vec3{p.Axis[0], p.Axis[1], p.Axis[2]})
	}
	if p.EpsAngle != nil {
		s.SetEpsAngle(*p.EpsAngle)
	}
	if p.NormalDistanceWeight != nil {
		s.SetNormalDistanceWeight(*p.NormalDistanceWeight)
	}
	if p.DistanceFromOrigin != nil {
		s.SetDistanceFromOrigin(*p.DistanceFromOrigin)
	}
	return nil
}
