// curve-dump evaluates a single radar curve and writes it to stdout.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chrissnell/radarcurve/internal/curves"
	"github.com/chrissnell/radarcurve/internal/log"
	"github.com/chrissnell/radarcurve/pkg/config"
	"github.com/chrissnell/radarcurve/pkg/decibel"
	"github.com/chrissnell/radarcurve/pkg/detection"
	"github.com/chrissnell/radarcurve/pkg/radarrange"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

func main() {
	if err := log.Init(false); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(os.Args[1:], os.Stdout, log.GetSugaredLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer, logger *zap.SugaredLogger) error {
	fs := flag.NewFlagSet("curve-dump", flag.ContinueOnError)

	kind := fs.String("kind", config.KindRange, "Curve to compute: 'range' or 'detection'")
	format := fs.String("format", "csv", "Output format: csv, json or msgpack")
	cfgFile := fs.String("config", "", "YAML configuration file holding scenarios")
	scenario := fs.String("scenario", "", "Name of a scenario from -config to evaluate")

	snrStart := fs.Float64("snr-start", 0, "First SNR of the sweep (dB)")
	snrEnd := fs.Float64("snr-end", 20, "Last SNR of the sweep (dB)")
	samples := fs.Int("samples", 0, "Number of sweep samples (default 2000 for range, 200 for detection)")

	link := radarrange.DefaultLinkParameters()
	fs.Float64Var(&link.SystemTemperatureK, "system-temperature", link.SystemTemperatureK, "System temperature (K)")
	fs.Float64Var(&link.BandwidthHz, "bandwidth", link.BandwidthHz, "Receiver bandwidth (Hz)")
	fs.Float64Var(&link.NoiseFigureDB, "noise-figure", link.NoiseFigureDB, "Noise figure (dB)")
	fs.Float64Var(&link.LossesDB, "losses", link.LossesDB, "System losses (dB)")
	fs.Float64Var(&link.PeakPowerW, "peak-power", link.PeakPowerW, "Peak transmit power (W)")
	fs.Float64Var(&link.AntennaGainDB, "antenna-gain", link.AntennaGainDB, "Antenna gain (dB)")
	fs.Float64Var(&link.FrequencyHz, "frequency", link.FrequencyHz, "Operating frequency (Hz)")
	fs.Float64Var(&link.TargetRCSDBsm, "target-rcs", link.TargetRCSDBsm, "Target radar cross section (dBsm)")

	det := detection.DefaultParams()
	fs.IntVar(&det.Pulses, "pulses", det.Pulses, "Number of coherently integrated pulses")
	fs.Float64Var(&det.Pfa, "pfa", det.Pfa, "Probability of false alarm")
	targetType := fs.String("target-type", det.Target.String(), "Target model: Swerling 0-4")
	method := fs.String("method", "north", "Swerling 0 evaluation: north or exact")

	if err := fs.Parse(args); err != nil {
		return err
	}

	var curve *curves.Curve
	var err error

	if *scenario != "" {
		curve, err = evaluateScenario(*cfgFile, *scenario, logger)
	} else {
		sweep := decibel.Sweep{StartDB: *snrStart, EndDB: *snrEnd, Samples: *samples}

		switch *kind {
		case config.KindRange:
			sweep = sweep.WithDefaults(decibel.DefaultRangeSamples)
			curve, err = curves.NewRangeCurveEvaluator(logger).Evaluate(curves.RangeRequest{Sweep: sweep, Link: link})
		case config.KindDetection:
			sweep = sweep.WithDefaults(decibel.DefaultDetectionSamples)
			if det.Target, err = detection.ParseTargetType(*targetType); err != nil {
				return err
			}
			if det.Method, err = detection.ParseMethod(*method); err != nil {
				return err
			}
			curve, err = curves.NewDetectionCurveEvaluator(logger).Evaluate(curves.DetectionRequest{Sweep: sweep, Detection: det})
		default:
			return fmt.Errorf("unknown kind %q: use 'range' or 'detection'", *kind)
		}
	}
	if err != nil {
		return err
	}

	return write(out, curve, *format)
}

func evaluateScenario(cfgFile, name string, logger *zap.SugaredLogger) (*curves.Curve, error) {
	if cfgFile == "" {
		return nil, fmt.Errorf("-scenario requires -config")
	}

	cfg, err := config.NewYAMLProvider(cfgFile).LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", cfgFile, err)
	}

	sc, ok := cfg.FindScenario(name)
	if !ok {
		return nil, fmt.Errorf("scenario not found: %s", name)
	}
	logger.Debugw("evaluating scenario", "name", sc.Name, "kind", sc.Kind)

	if sc.Kind == config.KindRange {
		return curves.NewRangeCurveEvaluator(logger).Evaluate(curves.RangeRequest{Sweep: sc.Sweep, Link: *sc.Link})
	}

	params, err := sc.Detection.Params()
	if err != nil {
		return nil, err
	}
	return curves.NewDetectionCurveEvaluator(logger).Evaluate(curves.DetectionRequest{Sweep: sc.Sweep, Detection: params})
}

func write(out io.Writer, curve *curves.Curve, format string) error {
	switch format {
	case "csv":
		w := csv.NewWriter(out)
		if err := w.WriteAll(curve.Rows()); err != nil {
			return err
		}
		return w.Error()
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(curve)
	case "msgpack":
		enc := msgpack.NewEncoder(out)
		enc.SetCustomStructTag("json")
		return enc.Encode(curve)
	}
	return fmt.Errorf("unknown format %q", format)
}
