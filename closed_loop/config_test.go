package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	control "axis-pid-core/closed_loop/axis_control"
)

func TestLoadConfig_Sample(t *testing.T) {
	cfg, err := LoadConfig("../config/axis_yaw.yaml")
	require.NoError(t, err)

	assert.Equal(t, "heading-hold", cfg.Name)
	assert.Equal(t, "yaw", cfg.Axis)
	assert.Equal(t, control.Gains{Kp: 1.2, Ki: 0.15, Kd: 0.05}, cfg.Control.Gains)
	assert.Equal(t, 2.0, cfg.Control.SaturationLimit)
	assert.Equal(t, 2.0, cfg.OutputLimit)
	assert.True(t, cfg.RequireEnable)
	assert.Equal(t, "AXIS_CMD", cfg.CommandFrame)
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("gains: {kp: 0.5}\n"))
	require.NoError(t, err)

	want := DefaultSessionConfig()
	want.Control.Gains.Kp = 0.5
	assert.Equal(t, want, cfg)

	empty, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultSessionConfig(), empty)
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "gain: {kp: 1}\n"},
		{"bad axis", "axis: heave\n"},
		{"negative gain", "gains: {kp: -1}\n"},
		{"zero saturation", "saturation_limit: 0\n"},
		{"negative output limit", "output_limit: -1\n"},
		{"zero timeout", "feedback_timeout_ms: 0\n"},
		{"no command frame", "command_frame: \"\"\n"},
		{"malformed", "axis: [yaw\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
