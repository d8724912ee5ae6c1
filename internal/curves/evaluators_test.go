package curves

import (
	"errors"
	"math"
	"testing"

	"github.com/chrissnell/radarcurve/pkg/decibel"
	"github.com/chrissnell/radarcurve/pkg/detection"
	"github.com/chrissnell/radarcurve/pkg/radarrange"
	"go.uber.org/zap"
)

func TestRangeCurve(t *testing.T) {
	e := NewRangeCurveEvaluator(zap.NewNop().Sugar())
	req := RangeRequest{
		Sweep: decibel.Sweep{StartDB: 0, EndDB: 20, Samples: 2000},
		Link: radarrange.LinkParameters{
			SystemTemperatureK: 290,
			BandwidthHz:        1e6,
			NoiseFigureDB:      3,
			LossesDB:           2,
			PeakPowerW:         100e3,
			AntennaGainDB:      30,
			FrequencyHz:        10e9,
			TargetRCSDBsm:      0,
		},
	}

	c, err := e.Evaluate(req)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if c.Len() != 2000 || len(c.Y) != 2000 {
		t.Fatalf("len = %d/%d, expected 2000", len(c.X), len(c.Y))
	}

	meters, _ := radarrange.Evaluate(req.Sweep.Values(), req.Link)
	for i := range meters {
		if math.Abs(c.Y[i]-meters[i]/1000) > 1e-9 {
			t.Fatalf("index %d: %v km, expected %v", i, c.Y[i], meters[i]/1000)
		}
		if c.X[i] != req.Sweep.Values()[i] {
			t.Fatalf("x mismatch at %d", i)
		}
	}
	if c.YLabel != "Maximum Detection Range (km)" {
		t.Errorf("YLabel = %q", c.YLabel)
	}
}

func TestRangeCurveErrors(t *testing.T) {
	e := NewRangeCurveEvaluator(nil)

	_, err := e.Evaluate(RangeRequest{Sweep: decibel.Sweep{StartDB: 0, EndDB: 1, Samples: 0}, Link: radarrange.DefaultLinkParameters()})
	if !errors.Is(err, decibel.ErrInvalidSweep) {
		t.Errorf("error = %v, expected ErrInvalidSweep", err)
	}

	link := radarrange.DefaultLinkParameters()
	link.BandwidthHz = 0
	_, err = e.Evaluate(RangeRequest{Sweep: decibel.Sweep{StartDB: 0, EndDB: 1, Samples: 10}, Link: link})
	if !errors.Is(err, radarrange.ErrInvalidParameter) {
		t.Errorf("error = %v, expected ErrInvalidParameter", err)
	}
}

func TestDetectionCurve(t *testing.T) {
	e := NewDetectionCurveEvaluator(nil)
	c, err := e.Evaluate(DetectionRequest{
		Sweep:     decibel.Sweep{StartDB: -10, EndDB: 20, Samples: decibel.DefaultDetectionSamples},
		Detection: detection.Params{Pulses: 10, Pfa: 1e-6, Target: detection.Swerling2},
	})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if c.Len() != decibel.DefaultDetectionSamples {
		t.Fatalf("len = %d", c.Len())
	}
	for i, y := range c.Y {
		if y < 0 || y > 1 {
			t.Fatalf("Pd[%d] = %v", i, y)
		}
	}
	if c.Title != "Coherent Integration" {
		t.Errorf("Title = %q", c.Title)
	}
}

func TestDetectionCurveUnknownTarget(t *testing.T) {
	e := NewDetectionCurveEvaluator(nil)
	_, err := e.Evaluate(DetectionRequest{
		Sweep:     decibel.Sweep{StartDB: 0, EndDB: 10, Samples: 5},
		Detection: detection.Params{Pulses: 1, Pfa: 1e-6, Target: detection.TargetType(12)},
	})
	if !errors.Is(err, detection.ErrUnknownTargetType) {
		t.Errorf("error = %v, expected ErrUnknownTargetType", err)
	}
}

func TestNewCurveMismatch(t *testing.T) {
	if _, err := NewCurve("t", "x", "y", []float64{1, 2}, []float64{1}); err == nil {
		t.Error("expected error for mismatched lengths")
	}
}

func TestPointsAndRows(t *testing.T) {
	c, err := NewCurve("t", "snr", "pd", []float64{0, 1.5}, []float64{0.25, 1})
	if err != nil {
		t.Fatal(err)
	}

	pts := c.Points()
	if len(pts) != 2 || pts[1] != (Point{X: 1.5, Y: 1}) {
		t.Errorf("Points() = %v", pts)
	}

	rows := c.Rows()
	if len(rows) != 3 {
		t.Fatalf("Rows() has %d rows", len(rows))
	}
	if rows[0][0] != "snr" || rows[1][1] != "0.25" || rows[2][0] != "1.5" {
		t.Errorf("Rows() = %v", rows)
	}
}
