package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Session SessionConfig `yaml:"session"`
	Paths   PathsConfig   `yaml:"paths"`
	Source  SourceConfig  `yaml:"source"`
	Gemini  GeminiConfig  `yaml:"gemini"`
	Logging LoggingConfig `yaml:"logging"`
}

type SessionConfig struct {
	WindowSeconds           int `yaml:"window_seconds"`
	PollIntervalSeconds     int `yaml:"poll_interval_seconds"`
	SummarizeTimeoutSeconds int `yaml:"summarize_timeout_seconds"`
	EnrichTimeoutSeconds    int `yaml:"enrich_timeout_seconds"`
	MonitorStopGraceSeconds int `yaml:"monitor_stop_grace_seconds"`
}

type PathsConfig struct {
	Transcript  string `yaml:"transcript"`
	Summary     string `yaml:"summary"`
	Suggestions string `yaml:"suggestions"`
	Report      string `yaml:"report"`
	Catalog     string `yaml:"catalog"`
}

type SourceConfig struct {
	Mode       string `yaml:"mode"` // replay, watch or gateway
	ReplayFile string `yaml:"replay_file"`
	WatchDir   string `yaml:"watch_dir"`
	GatewayURL string `yaml:"gateway_url"`
	Realtime   bool   `yaml:"realtime"`
}

type GeminiConfig struct {
	APIKeys []string `yaml:"api_keys"`
	Model   string   `yaml:"model"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and validates a YAML configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Paths.Summary == "" {
		return fmt.Errorf("paths.summary is required")
	}
	if c.Paths.Suggestions == "" {
		return fmt.Errorf("paths.suggestions is required")
	}
	if len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("gemini.api_keys is required")
	}

	switch c.Source.Mode {
	case "replay":
		if c.Source.ReplayFile == "" {
			return fmt.Errorf("source.replay_file is required for replay mode")
		}
	case "watch":
		if c.Source.WatchDir == "" {
			return fmt.Errorf("source.watch_dir is required for watch mode")
		}
	case "gateway":
		if c.Source.GatewayURL == "" {
			return fmt.Errorf("source.gateway_url is required for gateway mode")
		}
	case "":
		return fmt.Errorf("source.mode is required")
	default:
		return fmt.Errorf("source.mode must be replay, watch or gateway, got %q", c.Source.Mode)
	}

	if c.Paths.Transcript == "" {
		c.Paths.Transcript = "output/transcript.json"
	}
	if c.Paths.Report == "" {
		c.Paths.Report = "output/report.docx"
	}
	if c.Session.WindowSeconds == 0 {
		c.Session.WindowSeconds = 300
	}
	if c.Session.PollIntervalSeconds == 0 {
		c.Session.PollIntervalSeconds = 10
	}
	if c.Session.SummarizeTimeoutSeconds == 0 {
		c.Session.SummarizeTimeoutSeconds = 30
	}
	if c.Session.EnrichTimeoutSeconds == 0 {
		c.Session.EnrichTimeoutSeconds = 30
	}
	if c.Session.MonitorStopGraceSeconds == 0 {
		c.Session.MonitorStopGraceSeconds = 15
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}

	return nil
}
