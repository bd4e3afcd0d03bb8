package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "labyrinth.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 25, cfg.Maze.Width)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
port: "9000"
log_level: debug
maze:
  width: 15
  height: 11
  difficulty: 2
  wanderers: 3
solver:
  step_delay: 20ms
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 15, cfg.Maze.Width)
	assert.Equal(t, 1, cfg.Maze.Treasures) // не задан - остается по умолчанию

	s := cfg.ToSettings()
	assert.Equal(t, 2, s.Difficulty)
	assert.Equal(t, 3, s.Wanderers)
	assert.Equal(t, 20*time.Millisecond, s.StepDelay)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LAB_PORT", "7001")
	t.Setenv("LAB_SEED", "1234")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "7001", cfg.Port)
	assert.Equal(t, int64(1234), cfg.Maze.Seed)

	t.Setenv("LAB_SEED", "abc")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(writeFile(t, "maze: [not, a, map]"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "maze:\n  width: 1\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "empty port", mutate: func(c *Config) { c.Port = "" }},
		{name: "tiny maze", mutate: func(c *Config) { c.Maze.Height = 1 }},
		{name: "negative difficulty", mutate: func(c *Config) { c.Maze.Difficulty = -1 }},
		{name: "negative wanderers", mutate: func(c *Config) { c.Maze.Wanderers = -2 }},
		{name: "zero delay", mutate: func(c *Config) { c.Solver.StepDelay = 0 }},
	}

	require.NoError(t, Default().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}
