package radarrange

import (
	"errors"
	"math"
	"testing"

	"github.com/chrissnell/radarcurve/pkg/decibel"
)

// exampleLink is the 290 K / 1 MHz / 100 kW X-band link with a 1 m² target
func exampleLink() LinkParameters {
	return LinkParameters{
		SystemTemperatureK: 290,
		BandwidthHz:        1e6,
		NoiseFigureDB:      3,
		LossesDB:           2,
		PeakPowerW:         100e3,
		AntennaGainDB:      30,
		FrequencyHz:        10e9,
		TargetRCSDBsm:      0,
	}
}

func TestMaximumRangeHandComputed(t *testing.T) {
	p := exampleLink()
	l := p.Linear()

	lambda := SpeedOfLight / 10e9
	num := 100e3 * 1000.0 * 1000.0 * lambda * lambda * 1.0
	den := math.Pow(4*math.Pi, 3) * Boltzmann * 290 * 1e6 * math.Pow(10, 0.3) * math.Pow(10, 0.2) * 10
	expected := math.Pow(num/den, 0.25)

	got := MaximumRange(10, l)
	if math.Abs(got-expected)/expected > 1e-12 {
		t.Errorf("MaximumRange = %v, expected %v", got, expected)
	}

	// Sanity: an X-band 100 kW radar sees a 1 m² target at 13 dB in the tens of km
	if got < 10e3 || got > 200e3 {
		t.Errorf("MaximumRange = %.0f m, outside plausible range", got)
	}
}

func TestSignalToNoiseInverse(t *testing.T) {
	l := exampleLink().Linear()
	for _, snr := range []float64{0.5, 1, 10, 100, 1e4} {
		r := MaximumRange(snr, l)
		back := SignalToNoise(r, l)
		if math.Abs(back-snr)/snr > 1e-9 {
			t.Errorf("SignalToNoise(MaximumRange(%v)) = %v", snr, back)
		}
	}
}

func TestEvaluateLengthAndMonotonic(t *testing.T) {
	sweep := decibel.Sweep{StartDB: 0, EndDB: 20, Samples: 2000}
	ranges, err := Evaluate(sweep.Values(), exampleLink())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(ranges) != sweep.Samples {
		t.Fatalf("len = %d, expected %d", len(ranges), sweep.Samples)
	}

	// A higher required SNR can only be met closer in: R ∝ SNR^-1/4
	for i := 1; i < len(ranges); i++ {
		if !(ranges[i] < ranges[i-1]) {
			t.Fatalf("range not strictly decreasing at %d: %v >= %v", i, ranges[i], ranges[i-1])
		}
	}

	// 20 dB more SNR shrinks range by 10^(20/40)
	ratio := ranges[0] / ranges[len(ranges)-1]
	if math.Abs(ratio-math.Sqrt(10)) > 1e-9 {
		t.Errorf("range ratio = %v, expected %v", ratio, math.Sqrt(10))
	}
}

func TestEvaluateEmptySweep(t *testing.T) {
	ranges, err := Evaluate(nil, exampleLink())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(ranges) != 0 {
		t.Errorf("len = %d, expected 0", len(ranges))
	}
}

func TestEvaluateRejectsInvalidLink(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LinkParameters)
	}{
		{"zero bandwidth", func(p *LinkParameters) { p.BandwidthHz = 0 }},
		{"negative bandwidth", func(p *LinkParameters) { p.BandwidthHz = -1e6 }},
		{"zero temperature", func(p *LinkParameters) { p.SystemTemperatureK = 0 }},
		{"negative power", func(p *LinkParameters) { p.PeakPowerW = -5 }},
		{"zero frequency", func(p *LinkParameters) { p.FrequencyHz = 0 }},
		{"nan gain", func(p *LinkParameters) { p.AntennaGainDB = math.NaN() }},
		{"inf rcs", func(p *LinkParameters) { p.TargetRCSDBsm = math.Inf(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := exampleLink()
			tt.mutate(&p)
			_, err := Evaluate([]float64{0, 10}, p)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("error = %v, expected ErrInvalidParameter", err)
			}
		})
	}
}

func TestEvaluateRejectsNaNSNR(t *testing.T) {
	_, err := Evaluate([]float64{0, math.NaN()}, exampleLink())
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("error = %v, expected ErrInvalidParameter", err)
	}
}

func TestEvaluateRejectsUnboundedRange(t *testing.T) {
	for _, db := range []float64{-4000, math.Inf(-1)} {
		ranges, err := Evaluate([]float64{0, db}, exampleLink())
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("Evaluate(%v): error = %v, expected ErrInvalidParameter", db, err)
		}
		if ranges != nil {
			t.Errorf("Evaluate(%v) = %v, expected nil", db, ranges)
		}
	}
}

func TestNegativeDecibelFieldsAllowed(t *testing.T) {
	p := exampleLink()
	p.TargetRCSDBsm = -20
	p.LossesDB = 0
	if err := p.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if err := DefaultLinkParameters().Validate(); err != nil {
		t.Errorf("default link invalid: %v", err)
	}
}
