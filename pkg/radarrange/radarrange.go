// Package radarrange implements the radar range equation: the maximum range at
// which a target of a given radar cross section produces a required
// signal-to-noise ratio, and its inverse.
//
// Range goes as SNR^(-1/4): a higher required SNR is only met closer in, so a
// range curve over an increasing SNR sweep is strictly decreasing.
package radarrange

import (
	"errors"
	"fmt"
	"math"

	"github.com/chrissnell/radarcurve/pkg/decibel"
)

const (
	// Boltzmann is Boltzmann's constant (J/K)
	Boltzmann = 1.38064852e-23

	// SpeedOfLight in m/s
	SpeedOfLight = 299792458.0
)

// ErrInvalidParameter is returned for link parameters that have no physical meaning
var ErrInvalidParameter = errors.New("invalid radar parameter")

// LinkParameters are the radar and target parameters of the range equation.
// Fields suffixed DB/DBsm are logarithmic and converted by Linear.
type LinkParameters struct {
	SystemTemperatureK float64 `json:"system_temperature" yaml:"system_temperature"`
	BandwidthHz        float64 `json:"bandwidth" yaml:"bandwidth"`
	NoiseFigureDB      float64 `json:"noise_figure" yaml:"noise_figure"`
	LossesDB           float64 `json:"losses" yaml:"losses"`
	PeakPowerW         float64 `json:"peak_power" yaml:"peak_power"`
	AntennaGainDB      float64 `json:"antenna_gain" yaml:"antenna_gain"`
	FrequencyHz        float64 `json:"frequency" yaml:"frequency"`
	TargetRCSDBsm      float64 `json:"target_rcs" yaml:"target_rcs"`
}

// LinearLink holds LinkParameters with every ratio on the linear scale
type LinearLink struct {
	SystemTemperatureK float64
	BandwidthHz        float64
	NoiseFactor        float64
	Losses             float64
	PeakPowerW         float64
	AntennaGain        float64
	FrequencyHz        float64
	TargetRCS          float64 // m²
}

// DefaultLinkParameters returns the X-band example link used by the textbook demo
func DefaultLinkParameters() LinkParameters {
	return LinkParameters{
		SystemTemperatureK: 290,
		BandwidthHz:        10e6,
		NoiseFigureDB:      6,
		LossesDB:           4,
		PeakPowerW:         100e3,
		AntennaGainDB:      30,
		FrequencyHz:        10e9,
		TargetRCSDBsm:      -5,
	}
}

// Validate rejects non-finite fields and non-positive linear quantities
func (p LinkParameters) Validate() error {
	fields := []struct {
		name     string
		value    float64
		positive bool
	}{
		{"system_temperature", p.SystemTemperatureK, true},
		{"bandwidth", p.BandwidthHz, true},
		{"noise_figure", p.NoiseFigureDB, false},
		{"losses", p.LossesDB, false},
		{"peak_power", p.PeakPowerW, true},
		{"antenna_gain", p.AntennaGainDB, false},
		{"frequency", p.FrequencyHz, true},
		{"target_rcs", p.TargetRCSDBsm, false},
	}

	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidParameter, f.name, f.value)
		}
		if f.positive && f.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidParameter, f.name, f.value)
		}
	}
	return nil
}

// Linear converts the logarithmic fields to linear units
func (p LinkParameters) Linear() LinearLink {
	return LinearLink{
		SystemTemperatureK: p.SystemTemperatureK,
		BandwidthHz:        p.BandwidthHz,
		NoiseFactor:        decibel.ToLinear(p.NoiseFigureDB),
		Losses:             decibel.ToLinear(p.LossesDB),
		PeakPowerW:         p.PeakPowerW,
		AntennaGain:        decibel.ToLinear(p.AntennaGainDB),
		FrequencyHz:        p.FrequencyHz,
		TargetRCS:          decibel.ToLinear(p.TargetRCSDBsm),
	}
}

// Wavelength returns the free-space wavelength in meters
func Wavelength(frequencyHz float64) float64 {
	return SpeedOfLight / frequencyHz
}

// received returns Pt·G²·λ²·σ / ((4π)³·k·T·B·F·L), the range⁴·SNR product of the link
func (l LinearLink) received() float64 {
	lambda := Wavelength(l.FrequencyHz)
	num := l.PeakPowerW * l.AntennaGain * l.AntennaGain * lambda * lambda * l.TargetRCS
	den := math.Pow(4.0*math.Pi, 3) * Boltzmann * l.SystemTemperatureK * l.BandwidthHz * l.NoiseFactor * l.Losses
	return num / den
}

// MaximumRange returns the range in meters at which the link yields snr (linear)
func MaximumRange(snr float64, l LinearLink) float64 {
	return math.Pow(l.received()/snr, 0.25)
}

// SignalToNoise returns the linear SNR the link delivers at rangeM meters
func SignalToNoise(rangeM float64, l LinearLink) float64 {
	return l.received() / math.Pow(rangeM, 4)
}

// Evaluate computes the maximum detection range in meters for every required
// SNR in sweepDB. The output is index-aligned with sweepDB. An SNR so low that
// its linear value underflows to zero has no finite range and is rejected.
func Evaluate(sweepDB []float64, p LinkParameters) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	l := p.Linear()
	ranges := make([]float64, len(sweepDB))
	for i, db := range sweepDB {
		if math.IsNaN(db) {
			return nil, fmt.Errorf("%w: SNR at index %d is NaN", ErrInvalidParameter, i)
		}
		r := MaximumRange(decibel.ToLinear(db), l)
		if math.IsInf(r, 0) || math.IsNaN(r) {
			return nil, fmt.Errorf("%w: SNR %g dB at index %d gives no finite range", ErrInvalidParameter, db, i)
		}
		ranges[i] = r
	}
	return ranges, nil
}
