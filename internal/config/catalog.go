package config

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/terry419/fakecom-sub000/internal/world"
)

// DefaultBoundaries returns the stock boundary kinds available to layouts.
func DefaultBoundaries() []BoundaryDefinition {
	return []BoundaryDefinition{
		{ID: "open", Category: "open", Cover: "none"},
		{ID: "wall", Category: "wall", Cover: "full", Durability: 100},
		{ID: "wall_reinforced", Category: "wall", Cover: "full"},
		{ID: "window", Category: "window", Cover: "half", Durability: 30},
		{ID: "door", Category: "door", Cover: "full", Durability: 40, BasePassable: true},
		{ID: "door_locked", Category: "door", Cover: "full", Durability: 60},
		{ID: "fence", Category: "fence", Cover: "half", Durability: 15},
		{ID: "low_fence", Category: "fence", Cover: "half", Durability: 15, BasePassable: true},
	}
}

// DefaultObstacles returns the stock point obstacles available to layouts.
func DefaultObstacles() []ObstacleDefinition {
	return []ObstacleDefinition{
		{ID: "pillar", Cover: "full", Durability: 120},
		{ID: "crate", Cover: "half", Durability: 50},
		{ID: "barrier", Cover: "half"},
		{ID: "vehicle_wreck", Cover: "full", Durability: 300},
	}
}

func parseCategory(value string) (world.BoundaryCategory, error) {
	category := world.BoundaryCategory(strings.ToLower(value))
	if value == "" {
		category = world.BoundaryOpen
	}
	if !category.Valid() {
		return "", fmt.Errorf("unknown boundary category %q", value)
	}
	return category, nil
}

// ParseCover maps a textual cover rating onto world.Cover.
func ParseCover(value string) (world.Cover, error) {
	switch strings.ToLower(value) {
	case "", "none":
		return world.CoverNone, nil
	case "half":
		return world.CoverHalf, nil
	case "full":
		return world.CoverFull, nil
	default:
		return world.CoverNone, fmt.Errorf("unknown cover rating %q", value)
	}
}

// Catalog resolves authoring IDs into runtime terrain objects.
type Catalog struct {
	boundaries map[string]world.Boundary
	obstacles  map[string]ObstacleDefinition
}

// Catalog builds lookup tables from the validated definitions.
func (c *Config) Catalog() *Catalog {
	cat := &Catalog{
		boundaries: make(map[string]world.Boundary, len(c.Boundaries)),
		obstacles:  make(map[string]ObstacleDefinition, len(c.Obstacles)),
	}
	for _, def := range c.Boundaries {
		category, err := parseCategory(def.Category)
		if err != nil {
			continue
		}
		cover, _ := ParseCover(def.Cover)
		durability := def.Durability
		if durability < 0 {
			durability = 0
		}
		cat.boundaries[def.ID] = world.Boundary{
			Category:      category,
			Cover:         cover,
			MaxDurability: durability,
			Durability:    durability,
			BasePassable:  def.BasePassable,
		}
	}
	for _, def := range c.Obstacles {
		cat.obstacles[def.ID] = def
	}
	return cat
}

// DefaultCatalog is the catalog of Default().
func DefaultCatalog() *Catalog {
	return Default().Catalog()
}

// Boundary returns a fresh boundary value for id. An empty id yields an open
// boundary.
func (c *Catalog) Boundary(id string) (world.Boundary, bool) {
	if id == "" {
		return world.Boundary{Category: world.BoundaryOpen}, true
	}
	b, ok := c.boundaries[id]
	return b, ok
}

// HasBoundary reports whether id is defined.
func (c *Catalog) HasBoundary(id string) bool {
	_, ok := c.Boundary(id)
	return ok
}

// Obstacle instantiates a standing obstacle for id.
func (c *Catalog) Obstacle(id string) (*world.PointObstacle, bool) {
	def, ok := c.obstacles[id]
	if !ok {
		return nil, false
	}
	cover, _ := ParseCover(def.Cover)
	return world.NewPointObstacle(def.ID, cover, def.Durability), true
}

// HasObstacle reports whether id is defined.
func (c *Catalog) HasObstacle(id string) bool {
	_, ok := c.obstacles[id]
	return ok
}

// Metrics converts the grid section into world metrics.
func (c *Config) Metrics() world.Metrics {
	return world.Metrics{
		CellSize:    c.Grid.CellSize,
		LevelHeight: c.Grid.LevelHeight,
		Origin:      world.Vec3{X: c.Grid.Origin.X, Y: c.Grid.Origin.Y, Z: c.Grid.Origin.Z},
	}
}

// ApplyLogging configures the standard logrus logger.
func ApplyLogging(cfg LoggingConfig) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
