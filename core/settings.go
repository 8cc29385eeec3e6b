// File: settings.go
// Role: Numeric knobs shared by every level of a hierarchy, with functional
//       options and a YAML loader.
// AI-HINT (file):
//   - Option constructors panic on meaningless input; LoadSettings returns
//     ErrBadSettings for the same values read from a file.
//   - Missing YAML keys keep their defaults; unknown keys are rejected.

package core

import (
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Default knob values.
const (
	DefaultAttraction    = 5e-5
	DefaultRepulsion     = 3e-5
	DefaultEpsilon       = 2e-3
	DefaultInnerDistance = 0.1
	DefaultFriction      = 0.35
	DefaultGravity       = 10.0
	DefaultDampening     = 0.25
	DefaultTheta         = 0.20
	DefaultMaxSpeed      = 10.0
)

// Settings is the flat set of layout knobs.
type Settings struct {
	// Attraction is the spring stiffness of every edge.
	Attraction float64 `yaml:"attraction"`
	// Repulsion is the pairwise charge coefficient.
	Repulsion float64 `yaml:"repulsion"`
	// Epsilon softens the repulsion law and bounds the singular region.
	Epsilon float64 `yaml:"epsilon"`
	// InnerDistance is the octree clustering radius.
	InnerDistance float64 `yaml:"inner_distance"`
	// Friction is the linear drag coefficient, applied as acc −= vel·friction.
	Friction float64 `yaml:"friction"`
	// Gravity is the vertical pull of directed edges; 0 disables it.
	Gravity float64 `yaml:"gravity"`
	// Dampening is the decay rate of the two-level accumulators, in [0,1].
	Dampening float64 `yaml:"dampening"`
	// Theta weights the two-level correction, in [0,1].
	Theta float64 `yaml:"theta"`
	// MaxSpeed caps the per-tick displacement of a vertex. Must be positive.
	// Stiff springs or near-coincident vertices saturate at this speed
	// instead of diverging.
	MaxSpeed float64 `yaml:"max_speed"`
}

// SettingsOption mutates Settings during NewSettings.
type SettingsOption func(*Settings)

// DefaultSettings returns the stock knob values.
func DefaultSettings() Settings {
	return Settings{
		Attraction:    DefaultAttraction,
		Repulsion:     DefaultRepulsion,
		Epsilon:       DefaultEpsilon,
		InnerDistance: DefaultInnerDistance,
		Friction:      DefaultFriction,
		Gravity:       DefaultGravity,
		Dampening:     DefaultDampening,
		Theta:         DefaultTheta,
		MaxSpeed:      DefaultMaxSpeed,
	}
}

// NewSettings returns DefaultSettings with opts applied in order.
func NewSettings(opts ...SettingsOption) Settings {
	s := DefaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func mustNonNegative(name string, x float64) {
	if x < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		panic("core: " + name + " must be finite and non-negative")
	}
}

func mustUnit(name string, x float64) {
	if !(x >= 0 && x <= 1) {
		panic("core: " + name + " must be in [0,1]")
	}
}

// WithAttraction sets the spring stiffness.
func WithAttraction(x float64) SettingsOption {
	mustNonNegative("attraction", x)
	return func(s *Settings) { s.Attraction = x }
}

// WithRepulsion sets the charge coefficient.
func WithRepulsion(x float64) SettingsOption {
	mustNonNegative("repulsion", x)
	return func(s *Settings) { s.Repulsion = x }
}

// WithEpsilon sets the softening length. Panics unless x > 0.
func WithEpsilon(x float64) SettingsOption {
	mustNonNegative("epsilon", x)
	if x == 0 {
		panic("core: epsilon must be positive")
	}
	return func(s *Settings) { s.Epsilon = x }
}

// WithInnerDistance sets the octree clustering radius.
func WithInnerDistance(x float64) SettingsOption {
	mustNonNegative("inner_distance", x)
	return func(s *Settings) { s.InnerDistance = x }
}

// WithFriction sets the drag coefficient.
func WithFriction(x float64) SettingsOption {
	mustNonNegative("friction", x)
	return func(s *Settings) { s.Friction = x }
}

// WithGravity sets the directed-edge vertical pull.
func WithGravity(x float64) SettingsOption {
	mustNonNegative("gravity", x)
	return func(s *Settings) { s.Gravity = x }
}

// WithDampening sets the accumulator decay rate.
func WithDampening(x float64) SettingsOption {
	mustUnit("dampening", x)
	return func(s *Settings) { s.Dampening = x }
}

// WithMaxSpeed sets the speed cap. Panics unless x > 0.
func WithMaxSpeed(x float64) SettingsOption {
	mustNonNegative("max_speed", x)
	if x == 0 {
		panic("core: max_speed must be positive")
	}
	return func(s *Settings) { s.MaxSpeed = x }
}

// WithTheta sets the two-level correction weight.
func WithTheta(x float64) SettingsOption {
	mustUnit("theta", x)
	return func(s *Settings) { s.Theta = x }
}

// Validate reports the first knob outside its domain, wrapped in ErrBadSettings.
func (s Settings) Validate() error {
	nonNeg := []struct {
		name string
		v    float64
	}{
		{"attraction", s.Attraction},
		{"repulsion", s.Repulsion},
		{"epsilon", s.Epsilon},
		{"inner_distance", s.InnerDistance},
		{"friction", s.Friction},
		{"gravity", s.Gravity},
		{"max_speed", s.MaxSpeed},
	}
	for _, k := range nonNeg {
		if k.v < 0 || math.IsNaN(k.v) || math.IsInf(k.v, 0) {
			return errors.Wrapf(ErrBadSettings, "%s=%v", k.name, k.v)
		}
	}
	if s.Epsilon == 0 {
		return errors.Wrap(ErrBadSettings, "epsilon must be positive")
	}
	if s.MaxSpeed == 0 {
		return errors.Wrap(ErrBadSettings, "max_speed must be positive")
	}
	if !(s.Dampening >= 0 && s.Dampening <= 1) {
		return errors.Wrapf(ErrBadSettings, "dampening=%v", s.Dampening)
	}
	if !(s.Theta >= 0 && s.Theta <= 1) {
		return errors.Wrapf(ErrBadSettings, "theta=%v", s.Theta)
	}

	return nil
}

// LoadSettings decodes YAML from r on top of DefaultSettings and validates
// the result. An empty document yields the defaults.
func LoadSettings(r io.Reader) (Settings, error) {
	s := DefaultSettings()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return Settings{}, errors.Wrap(err, "decode settings")
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// LoadSettingsFile opens path and calls LoadSettings.
func LoadSettingsFile(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, errors.Wrapf(err, "open settings %q", path)
	}
	defer f.Close()

	s, err := LoadSettings(f)
	if err != nil {
		return Settings{}, errors.Wrapf(err, "load settings %q", path)
	}
	return s, nil
}
