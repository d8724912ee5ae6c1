package decibel

import (
	"errors"
	"math"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	for _, db := range []float64{-120, -30.5, -3, 0, 0.1, 3, 10, 27.3, 60, 150} {
		got := ToDB(ToLinear(db))
		if math.Abs(got-db) > 1e-9 {
			t.Errorf("ToDB(ToLinear(%v)) = %v", db, got)
		}
	}
}

func TestKnownValues(t *testing.T) {
	tests := []struct {
		db     float64
		linear float64
	}{
		{0, 1},
		{10, 10},
		{20, 100},
		{-10, 0.1},
		{30, 1000},
	}

	for _, tt := range tests {
		if got := ToLinear(tt.db); math.Abs(got-tt.linear) > 1e-12*tt.linear {
			t.Errorf("ToLinear(%v) = %v, expected %v", tt.db, got, tt.linear)
		}
	}
}

func TestSliceConversions(t *testing.T) {
	in := []float64{-5, 0, 5, 12}
	lin := ToLinearSlice(in)
	if len(lin) != len(in) {
		t.Fatalf("len = %d, expected %d", len(lin), len(in))
	}
	back := ToDBSlice(lin)
	for i := range in {
		if math.Abs(back[i]-in[i]) > 1e-9 {
			t.Errorf("index %d: got %v, expected %v", i, back[i], in[i])
		}
	}
}

func TestSweepValues(t *testing.T) {
	s, err := NewSweep(0, 20, 2000)
	if err != nil {
		t.Fatalf("NewSweep: %v", err)
	}

	v := s.Values()
	if len(v) != 2000 {
		t.Fatalf("len = %d, expected 2000", len(v))
	}
	if v[0] != 0 || math.Abs(v[len(v)-1]-20) > 1e-12 {
		t.Errorf("endpoints = %v, %v", v[0], v[len(v)-1])
	}

	step := 20.0 / 1999.0
	for i := 1; i < len(v); i++ {
		if math.Abs(v[i]-v[i-1]-step) > 1e-9 {
			t.Fatalf("uneven spacing at %d: %v", i, v[i]-v[i-1])
		}
	}

	lin := s.Linear()
	if math.Abs(lin[len(lin)-1]-100) > 1e-9 {
		t.Errorf("linear end = %v, expected 100", lin[len(lin)-1])
	}
}

func TestSweepDescending(t *testing.T) {
	s := Sweep{StartDB: 10, EndDB: -10, Samples: 5}
	expected := []float64{10, 5, 0, -5, -10}
	for i, v := range s.Values() {
		if math.Abs(v-expected[i]) > 1e-12 {
			t.Errorf("index %d: got %v, expected %v", i, v, expected[i])
		}
	}
}

func TestSweepValidate(t *testing.T) {
	tests := []struct {
		name    string
		sweep   Sweep
		wantErr bool
	}{
		{"normal", Sweep{0, 20, 200}, false},
		{"single point", Sweep{5, 5, 1}, false},
		{"single point mismatched", Sweep{0, 5, 1}, true},
		{"zero samples", Sweep{0, 20, 0}, true},
		{"negative samples", Sweep{0, 20, -4}, true},
		{"nan start", Sweep{math.NaN(), 20, 10}, true},
		{"inf end", Sweep{0, math.Inf(1), 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sweep.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSweep) {
				t.Errorf("error %v does not wrap ErrInvalidSweep", err)
			}
		})
	}
}

func TestSweepSinglePoint(t *testing.T) {
	v := Sweep{StartDB: 7, EndDB: 7, Samples: 1}.Values()
	if len(v) != 1 || v[0] != 7 {
		t.Errorf("Values() = %v, expected [7]", v)
	}
}

func TestWithDefaults(t *testing.T) {
	s := Sweep{StartDB: 0, EndDB: 10}.WithDefaults(DefaultDetectionSamples)
	if s.Samples != DefaultDetectionSamples {
		t.Errorf("Samples = %d, expected %d", s.Samples, DefaultDetectionSamples)
	}
	s = Sweep{StartDB: 0, EndDB: 10, Samples: 7}.WithDefaults(DefaultDetectionSamples)
	if s.Samples != 7 {
		t.Errorf("Samples = %d, expected 7", s.Samples)
	}
}
