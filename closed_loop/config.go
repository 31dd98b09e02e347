package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	control "axis-pid-core/closed_loop/axis_control"
)

// SessionConfig describes one controlled axis
type SessionConfig struct {
	Name string `yaml:"name"`
	Axis string `yaml:"axis"` // yaw|pitch|roll|x|y|z|vx|vy|vz|wz

	Control control.Config `yaml:",inline"`

	// Symmetric clip applied to the transmitted command; 0 disables clipping
	OutputLimit float64 `yaml:"output_limit"`

	FeedbackTimeoutMS int    `yaml:"feedback_timeout_ms"`
	CommandFrame      string `yaml:"command_frame"`

	// When set, no command is produced until the session frame enables the controller
	RequireEnable bool `yaml:"require_enable"`

	// Log diagnostics every N transmitted frames; 0 disables
	DiagEvery int `yaml:"diag_every"`
}

// DefaultSessionConfig returns the settings used for keys missing from the file
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Name: "axis",
		Axis: "yaw",
		Control: control.Config{
			SaturationLimit: control.MaxSpeed,
		},
		FeedbackTimeoutMS: 500,
		CommandFrame:      "AXIS_CMD",
		DiagEvery:         100,
	}
}

// LoadConfig loads a session from a YAML file
func LoadConfig(path string) (SessionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SessionConfig{}, fmt.Errorf("read file: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return SessionConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes a YAML session over the defaults and validates it
func ParseConfig(data []byte) (SessionConfig, error) {
	cfg := DefaultSessionConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return SessionConfig{}, fmt.Errorf("unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return SessionConfig{}, err
	}
	return cfg, nil
}

// Validate checks the session for values the runner cannot work with
func (c SessionConfig) Validate() error {
	if _, err := control.ParseAxis(c.Axis); err != nil {
		return err
	}
	if err := c.Control.Gains.Validate(); err != nil {
		return err
	}
	if c.Control.SaturationLimit <= 0 {
		return fmt.Errorf("invalid saturation_limit: %f", c.Control.SaturationLimit)
	}
	if c.OutputLimit < 0 {
		return fmt.Errorf("invalid output_limit: %f", c.OutputLimit)
	}
	if c.FeedbackTimeoutMS <= 0 {
		return fmt.Errorf("invalid feedback_timeout_ms: %d", c.FeedbackTimeoutMS)
	}
	if c.CommandFrame == "" {
		return fmt.Errorf("command_frame is required")
	}
	return nil
}
