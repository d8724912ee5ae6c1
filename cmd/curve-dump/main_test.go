package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chrissnell/radarcurve/internal/curves"
	"go.uber.org/zap"
)

func TestRunRangeCSV(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-kind", "range", "-samples", "5", "-bandwidth", "1e6"}, &out, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	records, err := csv.NewReader(&out).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 6 {
		t.Fatalf("got %d records", len(records))
	}
	if records[0][1] != "Maximum Detection Range (km)" {
		t.Errorf("header = %v", records[0])
	}
}

func TestRunDetectionJSON(t *testing.T) {
	var out bytes.Buffer
	args := []string{"-kind", "detection", "-format", "json", "-target-type", "Swerling IV", "-pulses", "8", "-snr-start", "-10"}
	if err := run(args, &out, zap.NewNop().Sugar()); err != nil {
		t.Fatalf("run: %v", err)
	}

	var c curves.Curve
	if err := json.Unmarshal(out.Bytes(), &c); err != nil {
		t.Fatal(err)
	}
	if len(c.X) != 200 || c.X[0] != -10 {
		t.Errorf("curve has %d samples starting at %v", len(c.X), c.X[0])
	}
}

func TestRunScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "scenarios:\n  - name: sw0\n    kind: detection\n    snr-start: 0\n    snr-end: 10\n    samples: 11\n    detection: {pulses: 2, pfa: 1e-4, target-type: non-fluctuating, method: exact}\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := run([]string{"-config", path, "-scenario", "sw0", "-format", "json"}, &out, zap.NewNop().Sugar()); err != nil {
		t.Fatalf("run: %v", err)
	}
	var c curves.Curve
	if err := json.Unmarshal(out.Bytes(), &c); err != nil {
		t.Fatal(err)
	}
	if len(c.Y) != 11 {
		t.Errorf("len = %d", len(c.Y))
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown kind", []string{"-kind", "doppler"}, "unknown kind"},
		{"unknown target", []string{"-kind", "detection", "-target-type", "Swerling 7"}, "unknown target model"},
		{"bad format", []string{"-format", "xml", "-samples", "2"}, "unknown format"},
		{"scenario without config", []string{"-scenario", "x"}, "requires -config"},
		{"bad bandwidth", []string{"-bandwidth", "-1"}, "bandwidth must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(tt.args, &out, zap.NewNop().Sugar())
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, expected it to contain %q", err, tt.want)
			}
		})
	}
}
