// Package decibel converts between decibel and linear power ratios and builds
// the linearly spaced SNR sweeps that feed the radar curve evaluators.
package decibel

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Default sample counts used when a caller does not specify one
const (
	DefaultRangeSamples     = 2000
	DefaultDetectionSamples = 200
)

// ErrInvalidSweep is returned when a sweep cannot produce any samples
var ErrInvalidSweep = errors.New("invalid sweep")

// ToLinear converts a power ratio in dB to a linear ratio
func ToLinear(db float64) float64 {
	return math.Pow(10.0, db/10.0)
}

// ToDB converts a linear power ratio to dB
func ToDB(linear float64) float64 {
	return 10.0 * math.Log10(linear)
}

// ToLinearSlice converts every element of db to a linear ratio
func ToLinearSlice(db []float64) []float64 {
	out := make([]float64, len(db))
	for i, v := range db {
		out[i] = ToLinear(v)
	}
	return out
}

// ToDBSlice converts every element of linear to dB
func ToDBSlice(linear []float64) []float64 {
	out := make([]float64, len(linear))
	for i, v := range linear {
		out[i] = ToDB(v)
	}
	return out
}

// Sweep describes a linearly spaced range of SNR values in dB.
// Sweeps are values; Values and Linear allocate a fresh slice on every call.
type Sweep struct {
	StartDB float64 `json:"snr_start" yaml:"snr_start"`
	EndDB   float64 `json:"snr_end" yaml:"snr_end"`
	Samples int     `json:"samples" yaml:"samples"`
}

// NewSweep builds and validates a sweep
func NewSweep(startDB, endDB float64, samples int) (Sweep, error) {
	s := Sweep{StartDB: startDB, EndDB: endDB, Samples: samples}
	if err := s.Validate(); err != nil {
		return Sweep{}, err
	}
	return s, nil
}

// Validate checks that the sweep endpoints are finite and the sample count is usable
func (s Sweep) Validate() error {
	if math.IsNaN(s.StartDB) || math.IsInf(s.StartDB, 0) {
		return fmt.Errorf("%w: start %v is not finite", ErrInvalidSweep, s.StartDB)
	}
	if math.IsNaN(s.EndDB) || math.IsInf(s.EndDB, 0) {
		return fmt.Errorf("%w: end %v is not finite", ErrInvalidSweep, s.EndDB)
	}
	if s.Samples < 1 {
		return fmt.Errorf("%w: sample count must be positive, got %d", ErrInvalidSweep, s.Samples)
	}
	if s.Samples == 1 && s.StartDB != s.EndDB {
		return fmt.Errorf("%w: a single-sample sweep needs start == end", ErrInvalidSweep)
	}
	return nil
}

// Values returns the sweep points in dB, endpoints included
func (s Sweep) Values() []float64 {
	if s.Samples < 1 {
		return []float64{}
	}
	out := make([]float64, s.Samples)
	if s.Samples == 1 {
		out[0] = s.StartDB
		return out
	}
	floats.Span(out, s.StartDB, s.EndDB)
	out[len(out)-1] = s.EndDB
	return out
}

// Linear returns the sweep points as linear power ratios
func (s Sweep) Linear() []float64 {
	return ToLinearSlice(s.Values())
}

// WithDefaults fills in a zero sample count
func (s Sweep) WithDefaults(samples int) Sweep {
	if s.Samples == 0 {
		s.Samples = samples
	}
	return s
}
