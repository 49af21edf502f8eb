package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config captures the tunable parameters of the tactical grid runtime.
type Config struct {
	Logging     LoggingConfig        `yaml:"logging"`
	Grid        GridConfig           `yaml:"grid"`
	Pathfinding PathfindingConfig    `yaml:"pathfinding"`
	Boundaries  []BoundaryDefinition `yaml:"boundaries"`
	Obstacles   []ObstacleDefinition `yaml:"obstacles"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // logrus level name, e.g. "info"
	Format string `yaml:"format"` // "text" or "json"
}

type GridConfig struct {
	CellSize    float64 `yaml:"cell_size"`
	LevelHeight float64 `yaml:"level_height"`
	Origin      Point   `yaml:"origin"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type PathfindingConfig struct {
	MaxSearchNodes  int `yaml:"max_search_nodes"` // 0 disables the limit
	DefaultMobility int `yaml:"default_mobility"`
}

// BoundaryDefinition describes an authorable boundary kind.
type BoundaryDefinition struct {
	ID           string `yaml:"id"`
	Category     string `yaml:"category"`
	Cover        string `yaml:"cover"`
	Durability   int    `yaml:"durability"` // <= 0 means indestructible
	BasePassable bool   `yaml:"base_passable"`
}

// ObstacleDefinition describes an authorable point obstacle.
type ObstacleDefinition struct {
	ID         string `yaml:"id"`
	Cover      string `yaml:"cover"`
	Durability int    `yaml:"durability"`
}

// Load reads configuration from a YAML file if provided. An empty path returns
// defaults. Sections missing from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Default returns a configuration that works without any file on disk.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Grid: GridConfig{
			CellSize:    1,
			LevelHeight: 3,
		},
		Pathfinding: PathfindingConfig{
			MaxSearchNodes:  0,
			DefaultMobility: 6,
		},
		Boundaries: DefaultBoundaries(),
		Obstacles:  DefaultObstacles(),
	}
}

// WriteDefault writes the default configuration to the provided path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level invalid: %w", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return errors.New("logging.format must be either 'text' or 'json'")
	}
	if c.Grid.CellSize <= 0 {
		return errors.New("grid.cell_size must be positive")
	}
	if c.Grid.LevelHeight <= 0 {
		return errors.New("grid.level_height must be positive")
	}
	if c.Pathfinding.MaxSearchNodes < 0 {
		return errors.New("pathfinding.max_search_nodes cannot be negative")
	}
	if c.Pathfinding.DefaultMobility < 0 {
		return errors.New("pathfinding.default_mobility cannot be negative")
	}
	if err := validateBoundaries(c.Boundaries); err != nil {
		return err
	}
	return validateObstacles(c.Obstacles)
}

func validateBoundaries(defs []BoundaryDefinition) error {
	seen := make(map[string]struct{}, len(defs))
	for i, def := range defs {
		if def.ID == "" {
			return fmt.Errorf("boundaries[%d].id must be set", i)
		}
		if _, dup := seen[def.ID]; dup {
			return fmt.Errorf("boundaries[%d].id %q is duplicated", i, def.ID)
		}
		seen[def.ID] = struct{}{}
		if _, err := parseCategory(def.Category); err != nil {
			return fmt.Errorf("boundaries[%d].category: %w", i, err)
		}
		if _, err := ParseCover(def.Cover); err != nil {
			return fmt.Errorf("boundaries[%d].cover: %w", i, err)
		}
	}
	return nil
}

func validateObstacles(defs []ObstacleDefinition) error {
	seen := make(map[string]struct{}, len(defs))
	for i, def := range defs {
		if def.ID == "" {
			return fmt.Errorf("obstacles[%d].id must be set", i)
		}
		if _, dup := seen[def.ID]; dup {
			return fmt.Errorf("obstacles[%d].id %q is duplicated", i, def.ID)
		}
		seen[def.ID] = struct{}{}
		if _, err := ParseCover(def.Cover); err != nil {
			return fmt.Errorf("obstacles[%d].cover: %w", i, err)
		}
	}
	return nil
}
