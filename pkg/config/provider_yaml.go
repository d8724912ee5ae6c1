package config

import (
	"os"

	"github.com/chrissnell/radarcurve/pkg/decibel"
	"github.com/chrissnell/radarcurve/pkg/radarrange"
	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	config, err := ParseYAML(cfgFile)
	if err != nil {
		return nil, err
	}

	y.config = config
	return config, nil
}

// ParseYAML converts a YAML document into ConfigData and validates it
func ParseYAML(data []byte) (*ConfigData, error) {
	// Load into temporary struct with YAML tags
	var yamlConfig struct {
		Server    ServerYAML     `yaml:"server,omitempty"`
		Scenarios []ScenarioYAML `yaml:"scenarios,omitempty"`
	}

	if err := yaml.UnmarshalStrict(data, &yamlConfig); err != nil {
		return nil, err
	}

	// Convert to our internal format
	config := &ConfigData{
		Server: ServerData{
			ListenAddr:  yamlConfig.Server.ListenAddr,
			Port:        yamlConfig.Server.Port,
			TLSCertPath: yamlConfig.Server.Cert,
			TLSKeyPath:  yamlConfig.Server.Key,
		},
		Scenarios: make([]ScenarioData, len(yamlConfig.Scenarios)),
	}

	for i, s := range yamlConfig.Scenarios {
		config.Scenarios[i] = ScenarioData{
			Name:        s.Name,
			Description: s.Description,
			Kind:        s.Kind,
			Sweep: decibel.Sweep{
				StartDB: s.SNRStart,
				EndDB:   s.SNREnd,
				Samples: s.Samples,
			},
		}

		if s.Link != nil {
			config.Scenarios[i].Link = &radarrange.LinkParameters{
				SystemTemperatureK: s.Link.SystemTemperature,
				BandwidthHz:        s.Link.Bandwidth,
				NoiseFigureDB:      s.Link.NoiseFigure,
				LossesDB:           s.Link.Losses,
				PeakPowerW:         s.Link.PeakPower,
				AntennaGainDB:      s.Link.AntennaGain,
				FrequencyHz:        s.Link.Frequency,
				TargetRCSDBsm:      s.Link.TargetRCS,
			}
		}

		if s.Detection != nil {
			config.Scenarios[i].Detection = &DetectionData{
				Pulses:     s.Detection.Pulses,
				Pfa:        s.Detection.Pfa,
				TargetType: s.Detection.TargetType,
				Method:     s.Detection.Method,
			}
		}
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// GetServer returns the REST server configuration
func (y *YAMLProvider) GetServer() (*ServerData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return &y.config.Server, nil
}

// GetScenarios returns the configured scenarios
func (y *YAMLProvider) GetScenarios() ([]ScenarioData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return y.config.Scenarios, nil
}

// IsReadOnly returns true since YAML files are read-only through this interface
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}

// YAML-specific structs
type ServerYAML struct {
	ListenAddr string `yaml:"listen-addr,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	Cert       string `yaml:"cert,omitempty"`
	Key        string `yaml:"key,omitempty"`
}

type ScenarioYAML struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Kind        string         `yaml:"kind"`
	SNRStart    float64        `yaml:"snr-start"`
	SNREnd      float64        `yaml:"snr-end"`
	Samples     int            `yaml:"samples,omitempty"`
	Link        *LinkYAML      `yaml:"link,omitempty"`
	Detection   *DetectionYAML `yaml:"detection,omitempty"`
}

type LinkYAML struct {
	SystemTemperature float64 `yaml:"system-temperature"`
	Bandwidth         float64 `yaml:"bandwidth"`
	NoiseFigure       float64 `yaml:"noise-figure"`
	Losses            float64 `yaml:"losses"`
	PeakPower         float64 `yaml:"peak-power"`
	AntennaGain       float64 `yaml:"antenna-gain"`
	Frequency         float64 `yaml:"frequency"`
	TargetRCS         float64 `yaml:"target-rcs"`
}

type DetectionYAML struct {
	Pulses     int     `yaml:"pulses"`
	Pfa        float64 `yaml:"pfa"`
	TargetType string  `yaml:"target-type"`
	Method     string  `yaml:"method,omitempty"`
}
