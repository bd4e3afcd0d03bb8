package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"labyrinth-server/internal/engine"
)

// ErrInvalid - значение конфига вне допустимого диапазона.
var ErrInvalid = errors.New("invalid config")

// Config - настройки сервера и лабиринта.
type Config struct {
	// Network
	Port string `yaml:"port"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // text | json

	Maze   MazeConfig   `yaml:"maze"`
	Solver SolverConfig `yaml:"solver"`
}

// MazeConfig - параметры генерации уровней.
type MazeConfig struct {
	Width      int   `yaml:"width"`
	Height     int   `yaml:"height"`
	Difficulty int   `yaml:"difficulty"`
	Wanderers  int   `yaml:"wanderers"`
	Treasures  int   `yaml:"treasures"`
	Seed       int64 `yaml:"seed"` // 0 - случайный
}

// SolverConfig - автопрохождение.
type SolverConfig struct {
	StepDelay time.Duration `yaml:"step_delay"`
}

// Default возвращает конфиг по умолчанию.
func Default() Config {
	s := engine.NewSettings()
	return Config{
		Port:      "8080",
		LogLevel:  "info",
		LogFormat: "text",
		Maze: MazeConfig{
			Width:      s.Width,
			Height:     s.Height,
			Difficulty: s.Difficulty,
			Wanderers:  s.Wanderers,
			Treasures:  s.Treasures,
			Seed:       s.Seed,
		},
		Solver: SolverConfig{StepDelay: s.StepDelay},
	}
}

// Load читает YAML поверх значений по умолчанию и применяет переменные
// окружения. Отсутствующий файл - не ошибка.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if port, ok := os.LookupEnv("LAB_PORT"); ok && port != "" {
		c.Port = port
	}
	if raw, ok := os.LookupEnv("LAB_SEED"); ok && raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("LAB_SEED %q: %w", raw, err)
		}
		c.Maze.Seed = seed
	}
	return nil
}

// Validate проверяет диапазоны.
func (c Config) Validate() error {
	switch {
	case c.Port == "":
		return fmt.Errorf("%w: empty port", ErrInvalid)
	case c.Maze.Width < 2 || c.Maze.Height < 2:
		return fmt.Errorf("%w: maze %dx%d, need at least 2x2", ErrInvalid, c.Maze.Width, c.Maze.Height)
	case c.Maze.Difficulty < 0:
		return fmt.Errorf("%w: difficulty %d", ErrInvalid, c.Maze.Difficulty)
	case c.Maze.Wanderers < 0 || c.Maze.Treasures < 0:
		return fmt.Errorf("%w: negative wanderers or treasures", ErrInvalid)
	case c.Solver.StepDelay <= 0:
		return fmt.Errorf("%w: solver step delay %s", ErrInvalid, c.Solver.StepDelay)
	}
	return nil
}

// Addr - адрес для http.Server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// ToSettings переводит конфиг в настройки движка.
func (c Config) ToSettings() engine.Settings {
	return engine.Settings{
		Width:      c.Maze.Width,
		Height:     c.Maze.Height,
		Difficulty: c.Maze.Difficulty,
		Wanderers:  c.Maze.Wanderers,
		Treasures:  c.Maze.Treasures,
		Seed:       c.Maze.Seed,
		StepDelay:  c.Solver.StepDelay,
	}
}
