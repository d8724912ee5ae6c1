package restserver

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/chrissnell/radarcurve/pkg/decibel"
	"github.com/chrissnell/radarcurve/pkg/detection"
	"github.com/chrissnell/radarcurve/pkg/radarrange"
)

// parseError marks malformed query input, reported as 400
type parseError struct {
	field string
	err   error
}

func (e *parseError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.field, e.err)
}

func (e *parseError) Unwrap() error {
	return e.err
}

func floatParam(q url.Values, name string, def float64) (float64, error) {
	s := strings.TrimSpace(q.Get(name))
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &parseError{field: name, err: err}
	}
	return v, nil
}

func intParam(q url.Values, name string, def int) (int, error) {
	s := strings.TrimSpace(q.Get(name))
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &parseError{field: name, err: err}
	}
	return v, nil
}

// parseSweep reads snr_start, snr_end and samples. The detection form also
// accepts snr=start,end.
func parseSweep(q url.Values, def decibel.Sweep) (decibel.Sweep, error) {
	s := def
	var err error

	if pair := q.Get("snr"); pair != "" {
		parts := strings.Split(pair, ",")
		if len(parts) != 2 {
			return s, &parseError{field: "snr", err: fmt.Errorf("expected start,end but got %q", pair)}
		}
		if s.StartDB, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
			return s, &parseError{field: "snr", err: err}
		}
		if s.EndDB, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
			return s, &parseError{field: "snr", err: err}
		}
	}

	if s.StartDB, err = floatParam(q, "snr_start", s.StartDB); err != nil {
		return s, err
	}
	if s.EndDB, err = floatParam(q, "snr_end", s.EndDB); err != nil {
		return s, err
	}
	if s.Samples, err = intParam(q, "samples", s.Samples); err != nil {
		return s, err
	}
	return s, nil
}

func parseLink(q url.Values) (radarrange.LinkParameters, error) {
	p := radarrange.DefaultLinkParameters()
	fields := []struct {
		name string
		dst  *float64
	}{
		{"system_temperature", &p.SystemTemperatureK},
		{"bandwidth", &p.BandwidthHz},
		{"noise_figure", &p.NoiseFigureDB},
		{"losses", &p.LossesDB},
		{"peak_power", &p.PeakPowerW},
		{"antenna_gain", &p.AntennaGainDB},
		{"frequency", &p.FrequencyHz},
		{"target_rcs", &p.TargetRCSDBsm},
	}

	for _, f := range fields {
		v, err := floatParam(q, f.name, *f.dst)
		if err != nil {
			return p, err
		}
		*f.dst = v
	}
	return p, nil
}

func parseDetection(q url.Values) (detection.Params, error) {
	p := detection.DefaultParams()
	var err error

	if p.Pfa, err = floatParam(q, "pfa", p.Pfa); err != nil {
		return p, err
	}
	if p.Pulses, err = intParam(q, "pulses", p.Pulses); err != nil {
		return p, err
	}
	if t := q.Get("target_type"); t != "" {
		if p.Target, err = detection.ParseTargetType(t); err != nil {
			return p, err
		}
	}
	if p.Method, err = detection.ParseMethod(q.Get("method")); err != nil {
		return p, err
	}
	return p, nil
}
