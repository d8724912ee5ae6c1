package config

import (
	"fmt"

	"github.com/chrissnell/radarcurve/pkg/decibel"
	"github.com/chrissnell/radarcurve/pkg/detection"
	"github.com/chrissnell/radarcurve/pkg/radarrange"
)

// Scenario kinds
const (
	KindRange     = "range"
	KindDetection = "detection"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetServer() (*ServerData, error)
	GetScenarios() ([]ScenarioData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Server    ServerData     `json:"server"`
	Scenarios []ScenarioData `json:"scenarios,omitempty"`
}

// ServerData holds the REST server settings
type ServerData struct {
	ListenAddr  string `json:"listen_addr,omitempty"`
	Port        int    `json:"port,omitempty"`
	TLSCertPath string `json:"tls_cert,omitempty"`
	TLSKeyPath  string `json:"tls_key,omitempty"`
}

// ScenarioData is a named, preconfigured curve. Exactly one of Link and
// Detection is set, matching Kind.
type ScenarioData struct {
	Name        string                     `json:"name"`
	Description string                     `json:"description,omitempty"`
	Kind        string                     `json:"kind"`
	Sweep       decibel.Sweep              `json:"sweep"`
	Link        *radarrange.LinkParameters `json:"link,omitempty"`
	Detection   *DetectionData             `json:"detection,omitempty"`
}

// DetectionData holds detection parameters in their configuration form
type DetectionData struct {
	Pulses     int     `json:"pulses"`
	Pfa        float64 `json:"pfa"`
	TargetType string  `json:"target_type"`
	Method     string  `json:"method,omitempty"`
}

// Params parses the target type and method into detection.Params
func (d DetectionData) Params() (detection.Params, error) {
	target, err := detection.ParseTargetType(d.TargetType)
	if err != nil {
		return detection.Params{}, err
	}
	method, err := detection.ParseMethod(d.Method)
	if err != nil {
		return detection.Params{}, err
	}
	return detection.Params{
		Pulses: d.Pulses,
		Pfa:    d.Pfa,
		Target: target,
		Method: method,
	}, nil
}

// Validate checks a scenario can be evaluated
func (s ScenarioData) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if err := s.Sweep.Validate(); err != nil {
		return fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	switch s.Kind {
	case KindRange:
		if s.Link == nil {
			return fmt.Errorf("scenario %s: range scenarios need a link section", s.Name)
		}
		if err := s.Link.Validate(); err != nil {
			return fmt.Errorf("scenario %s: %w", s.Name, err)
		}
	case KindDetection:
		if s.Detection == nil {
			return fmt.Errorf("scenario %s: detection scenarios need a detection section", s.Name)
		}
		p, err := s.Detection.Params()
		if err != nil {
			return fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("scenario %s: %w", s.Name, err)
		}
	default:
		return fmt.Errorf("scenario %s: unknown kind %q", s.Name, s.Kind)
	}
	return nil
}

// Validate checks every scenario and that scenario names are unique
func (c *ConfigData) Validate() error {
	seen := make(map[string]bool, len(c.Scenarios))
	for _, s := range c.Scenarios {
		if err := s.Validate(); err != nil {
			return err
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate scenario name: %s", s.Name)
		}
		seen[s.Name] = true
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

// FindScenario returns the scenario with the given name
func (c *ConfigData) FindScenario(name string) (*ScenarioData, bool) {
	for i := range c.Scenarios {
		if c.Scenarios[i].Name == name {
			return &c.Scenarios[i], true
		}
	}
	return nil, false
}

// applyDefaults fills in sample counts the source left empty
func (c *ConfigData) applyDefaults() {
	for i := range c.Scenarios {
		s := &c.Scenarios[i]
		switch s.Kind {
		case KindRange:
			s.Sweep = s.Sweep.WithDefaults(decibel.DefaultRangeSamples)
		case KindDetection:
			s.Sweep = s.Sweep.WithDefaults(decibel.DefaultDetectionSamples)
		}
	}
}
