// Package detection computes probability of detection for a square-law
// detector after coherent integration of N pulses, for the Swerling family of
// target fluctuation models.
//
// Coherent integration adds the pulse returns in phase, so N pulses at a
// per-pulse SNR S behave like a single pulse at N·S. The threshold is set from
// the false-alarm probability as VT = -ln(Pfa).
package detection

import (
	"errors"
	"fmt"
	"math"

	"github.com/chrissnell/radarcurve/pkg/decibel"
	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInvalidParameter is returned for out-of-domain detection inputs
var ErrInvalidParameter = errors.New("invalid detection parameter")

// ErrUnreachable is returned by RequiredSNR when no SNR in the search window gives the requested Pd
var ErrUnreachable = errors.New("probability of detection unreachable")

// Method selects how the non-fluctuating (Swerling 0) case is evaluated
type Method int

const (
	// MethodNorth uses North's erfc approximation
	MethodNorth Method = iota
	// MethodExact evaluates Marcum's Q function as a Poisson mixture of incomplete gamma functions
	MethodExact
)

func (m Method) String() string {
	switch m {
	case MethodNorth:
		return "north"
	case MethodExact:
		return "exact"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod parses "north" or "exact"; an empty string selects MethodNorth
func ParseMethod(s string) (Method, error) {
	switch s {
	case "", "north", "approx", "approximate":
		return MethodNorth, nil
	case "exact", "marcum":
		return MethodExact, nil
	}
	return 0, fmt.Errorf("%w: unknown method %q", ErrInvalidParameter, s)
}

// Params are the detection inputs shared by every point of a curve
type Params struct {
	Pulses int
	Pfa    float64
	Target TargetType
	Method Method
}

// DefaultParams matches the textbook coherent integration example
func DefaultParams() Params {
	return Params{Pulses: 10, Pfa: 1e-6, Target: Swerling0, Method: MethodNorth}
}

// Validate checks the false alarm probability, pulse count and target model
func (p Params) Validate() error {
	if math.IsNaN(p.Pfa) || p.Pfa <= 0 || p.Pfa >= 1 {
		return fmt.Errorf("%w: probability of false alarm must be in (0,1), got %v", ErrInvalidParameter, p.Pfa)
	}
	if p.Pulses < 1 {
		return fmt.Errorf("%w: number of pulses must be at least 1, got %d", ErrInvalidParameter, p.Pulses)
	}
	if !p.Target.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownTargetType, p.Target)
	}
	if p.Method != MethodNorth && p.Method != MethodExact {
		return fmt.Errorf("%w: unknown method %v", ErrInvalidParameter, p.Method)
	}
	return nil
}

// ProbabilityOfDetection returns Pd for a per-pulse linear SNR
func ProbabilityOfDetection(snr float64, p Params) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if math.IsNaN(snr) || snr < 0 {
		return 0, fmt.Errorf("%w: signal to noise ratio must be non-negative, got %v", ErrInvalidParameter, snr)
	}
	return pd(snr, p), nil
}

// Evaluate returns Pd for every SNR in sweepDB, index-aligned with the input
func Evaluate(sweepDB []float64, p Params) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	out := make([]float64, len(sweepDB))
	for i, db := range sweepDB {
		if math.IsNaN(db) {
			return nil, fmt.Errorf("%w: SNR at index %d is NaN", ErrInvalidParameter, i)
		}
		out[i] = pd(decibel.ToLinear(db), p)
	}
	return out, nil
}

// pd assumes p has been validated
func pd(snr float64, p Params) float64 {
	s := float64(p.Pulses) * snr
	if math.IsInf(s, 1) {
		return 1
	}
	vt := -math.Log(p.Pfa)

	var v float64
	switch p.Target {
	case Swerling0:
		if p.Method == MethodExact {
			v = marcum(s, vt)
		} else {
			v = 0.5 * math.Erfc(math.Sqrt(vt)-math.Sqrt(s+0.5))
		}
	case Swerling1, Swerling2:
		v = math.Exp(-vt / (1.0 + s))
	case Swerling3, Swerling4:
		v = math.Exp(-2.0*vt/(2.0+s)) * (1.0 + 2.0*s*vt/((2.0+s)*(2.0+s)))
	}
	return clamp(v)
}

// marcum evaluates Q1(√(2s), √(2vt)) as 1 - Σ Poisson(k; s)·P(k+1, vt), where
// P is the regularized lower incomplete gamma function. P falls monotonically
// in k, so the sum stops once it no longer contributes.
func marcum(s, vt float64) float64 {
	if s <= 0 {
		return math.Exp(-vt)
	}

	poisson := distuv.Poisson{Lambda: s}
	miss := 0.0
	for k := 0; k < 100000; k++ {
		g := mathext.GammaIncReg(float64(k+1), vt)
		if g < 1e-17 {
			break
		}
		miss += poisson.Prob(float64(k)) * g
	}
	return 1.0 - miss
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// RequiredSNR returns the per-pulse SNR in dB at which p yields the requested
// probability of detection. The search covers -100 dB to +100 dB.
func RequiredSNR(pdTarget float64, p Params) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if math.IsNaN(pdTarget) || pdTarget <= 0 || pdTarget >= 1 {
		return 0, fmt.Errorf("%w: probability of detection must be in (0,1), got %v", ErrInvalidParameter, pdTarget)
	}

	lo, hi := -100.0, 100.0
	if pd(decibel.ToLinear(lo), p) >= pdTarget || pd(decibel.ToLinear(hi), p) < pdTarget {
		return 0, fmt.Errorf("%w: Pd %v with Pfa %v", ErrUnreachable, pdTarget, p.Pfa)
	}

	for i := 0; i < 200 && hi-lo > 1e-10; i++ {
		mid := 0.5 * (lo + hi)
		if pd(decibel.ToLinear(mid), p) < pdTarget {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi), nil
}
