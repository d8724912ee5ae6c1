package restserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/chrissnell/radarcurve/internal/curves"
	"github.com/chrissnell/radarcurve/pkg/config"
	"github.com/chrissnell/radarcurve/pkg/decibel"
	"github.com/chrissnell/radarcurve/pkg/detection"
	"github.com/chrissnell/radarcurve/pkg/radarrange"
	"github.com/chrissnell/radarcurve/pkg/responseformat"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Default sweeps used when a request omits the SNR range
var (
	defaultRangeSweep     = decibel.Sweep{StartDB: 0, EndDB: 20, Samples: decibel.DefaultRangeSamples}
	defaultDetectionSweep = decibel.Sweep{StartDB: 0, EndDB: 20, Samples: decibel.DefaultDetectionSamples}
)

// maxSamples bounds a single request
const maxSamples = 100000

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	formatter  *responseformat.Formatter
	rangeEval  *curves.RangeCurveEvaluator
	detectEval *curves.DetectionCurveEvaluator
	scenarios  []config.ScenarioData
	byName     map[string]config.ScenarioData
	logger     *zap.SugaredLogger
}

// NewHandlers creates a new handlers instance
func NewHandlers(scenarios []config.ScenarioData, logger *zap.SugaredLogger) *Handlers {
	byName := make(map[string]config.ScenarioData, len(scenarios))
	for _, s := range scenarios {
		byName[s.Name] = s
	}

	return &Handlers{
		formatter:  responseformat.NewFormatter(),
		rangeEval:  curves.NewRangeCurveEvaluator(logger),
		detectEval: curves.NewDetectionCurveEvaluator(logger),
		scenarios:  scenarios,
		byName:     byName,
		logger:     logger,
	}
}

// RequiredSNRResponse is returned by /api/v1/required-snr
type RequiredSNRResponse struct {
	ProbabilityOfDetection  float64 `json:"pd"`
	ProbabilityOfFalseAlarm float64 `json:"pfa"`
	Pulses                  int     `json:"pulses"`
	TargetType              string  `json:"target_type"`
	Method                  string  `json:"method"`
	SignalToNoiseDB         float64 `json:"snr_db"`
}

// Health reports liveness
func (h *Handlers) Health(w http.ResponseWriter, req *http.Request) {
	h.respond(w, req, map[string]string{"status": "ok"})
}

// GetRangeCurve serves maximum detection range against required SNR
func (h *Handlers) GetRangeCurve(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()

	sweep, err := parseSweep(q, defaultRangeSweep)
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	link, err := parseLink(q)
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	h.evaluateRange(w, req, curves.RangeRequest{Sweep: sweep, Link: link})
}

// GetDetectionCurve serves probability of detection against SNR
func (h *Handlers) GetDetectionCurve(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()

	sweep, err := parseSweep(q, defaultDetectionSweep)
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	params, err := parseDetection(q)
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	h.evaluateDetection(w, req, curves.DetectionRequest{Sweep: sweep, Detection: params})
}

// GetRequiredSNR serves the per-pulse SNR needed for a probability of detection
func (h *Handlers) GetRequiredSNR(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()

	params, err := parseDetection(q)
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	pd, err := floatParam(q, "pd", 0.9)
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	snr, err := detection.RequiredSNR(pd, params)
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	h.respond(w, req, RequiredSNRResponse{
		ProbabilityOfDetection:  pd,
		ProbabilityOfFalseAlarm: params.Pfa,
		Pulses:                  params.Pulses,
		TargetType:              params.Target.String(),
		Method:                  params.Method.String(),
		SignalToNoiseDB:         snr,
	})
}

// GetTargetTypes lists the supported target fluctuation models
func (h *Handlers) GetTargetTypes(w http.ResponseWriter, req *http.Request) {
	names := make([]string, 0, len(detection.TargetTypes()))
	for _, t := range detection.TargetTypes() {
		names = append(names, t.String())
	}
	h.respond(w, req, names)
}

// GetScenarios lists the configured scenarios
func (h *Handlers) GetScenarios(w http.ResponseWriter, req *http.Request) {
	scenarios := h.scenarios
	if scenarios == nil {
		scenarios = []config.ScenarioData{}
	}
	h.respond(w, req, scenarios)
}

// GetScenarioCurve evaluates a configured scenario
func (h *Handlers) GetScenarioCurve(w http.ResponseWriter, req *http.Request) {
	name := mux.Vars(req)["name"]
	sc, ok := h.byName[name]
	if !ok {
		h.formatter.WriteError(w, req, http.StatusNotFound, fmt.Errorf("scenario not found: %s", name))
		return
	}

	switch sc.Kind {
	case config.KindRange:
		h.evaluateRange(w, req, curves.RangeRequest{Sweep: sc.Sweep, Link: *sc.Link})
	case config.KindDetection:
		params, err := sc.Detection.Params()
		if err != nil {
			h.writeError(w, req, err)
			return
		}
		h.evaluateDetection(w, req, curves.DetectionRequest{Sweep: sc.Sweep, Detection: params})
	default:
		h.formatter.WriteError(w, req, http.StatusInternalServerError, fmt.Errorf("scenario %s has unknown kind %q", name, sc.Kind))
	}
}

func (h *Handlers) evaluateRange(w http.ResponseWriter, req *http.Request, r curves.RangeRequest) {
	if r.Sweep.Samples > maxSamples {
		h.writeError(w, req, fmt.Errorf("%w: at most %d samples per request", decibel.ErrInvalidSweep, maxSamples))
		return
	}
	curve, err := h.rangeEval.Evaluate(r)
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.respond(w, req, curve)
}

func (h *Handlers) evaluateDetection(w http.ResponseWriter, req *http.Request, r curves.DetectionRequest) {
	if r.Sweep.Samples > maxSamples {
		h.writeError(w, req, fmt.Errorf("%w: at most %d samples per request", decibel.ErrInvalidSweep, maxSamples))
		return
	}
	curve, err := h.detectEval.Evaluate(r)
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.respond(w, req, curve)
}

// respond writes data, falling back to a 500 when it cannot be encoded
func (h *Handlers) respond(w http.ResponseWriter, req *http.Request, data any) {
	err := h.formatter.WriteResponse(w, req, data, nil)
	switch {
	case err == nil:
	case errors.Is(err, responseformat.ErrEncode):
		h.logger.Errorw("response encoding failed", "path", req.URL.Path, "error", err)
		h.formatter.WriteError(w, req, http.StatusInternalServerError, err)
	default:
		h.logger.Warnw("response write failed", "path", req.URL.Path, "error", err)
	}
}

// writeError maps input errors to 400 and everything else to 500
func (h *Handlers) writeError(w http.ResponseWriter, req *http.Request, err error) {
	var pe *parseError
	status := http.StatusInternalServerError

	switch {
	case errors.As(err, &pe),
		errors.Is(err, decibel.ErrInvalidSweep),
		errors.Is(err, radarrange.ErrInvalidParameter),
		errors.Is(err, detection.ErrInvalidParameter),
		errors.Is(err, detection.ErrUnknownTargetType),
		errors.Is(err, detection.ErrUnreachable):
		status = http.StatusBadRequest
	default:
		h.logger.Errorw("request failed", "path", req.URL.Path, "error", err)
	}

	h.formatter.WriteError(w, req, status, err)
}
