package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/ctrldeploy/internal/snapshot"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DeploymentPath string // controller document or directory containing one
	Output         snapshot.Format
	Vars           map[string]string // HCL var.* values

	LogFormat string
	LogLevel  string
	HTTPPort  int
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.DeploymentPath == "" {
		return nil, errors.New("DeploymentPath is a required configuration field and cannot be empty")
	}
	if cfg.Output == "" {
		cfg.Output = snapshot.FormatText
	}
	if _, err := snapshot.ParseFormat(string(cfg.Output)); err != nil {
		return nil, err
	}
	if cfg.HTTPPort < 0 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("HTTPPort %d is out of range", cfg.HTTPPort)
	}

	return &cfg, nil
}
