package layout

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/terry419/fakecom-sub000/internal/config"
	"github.com/terry419/fakecom-sub000/internal/terrain"
	"github.com/terry419/fakecom-sub000/internal/world"
)

// Layout is the YAML authoring format for a battlefield. Every cell inside
// cols x rows x levels exists with the default floor unless a cell entry
// overrides it.
type Layout struct {
	Name   string      `yaml:"name"`
	Cols   int         `yaml:"cols"`
	Rows   int         `yaml:"rows"`
	Levels int         `yaml:"levels"`
	Floor  string      `yaml:"floor"`
	Cells  []CellEntry `yaml:"cells"`
	Units  []UnitEntry `yaml:"units"`
}

type Position struct {
	Col   int `yaml:"col"`
	Row   int `yaml:"row"`
	Level int `yaml:"level"`
}

func (p Position) Coord() world.Coordinate {
	return world.Coordinate{Col: p.Col, Row: p.Row, Level: p.Level}
}

// CellEntry overrides the terrain of a single cell.
type CellEntry struct {
	At        Position `yaml:"at"`
	Floor     string   `yaml:"floor,omitempty"`
	North     string   `yaml:"north,omitempty"`
	East      string   `yaml:"east,omitempty"`
	Obstacles []string `yaml:"obstacles,omitempty"`
}

// UnitEntry places a unit for tooling such as gridview.
type UnitEntry struct {
	Name     string   `yaml:"name"`
	At       Position `yaml:"at"`
	Mobility int      `yaml:"mobility"`
}

// Load reads and parses a layout file.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	return Parse(data)
}

// Parse decodes layout YAML and applies defaults.
func Parse(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if l.Levels == 0 {
		l.Levels = 1
	}
	if l.Floor == "" {
		l.Floor = string(world.FloorGround)
	}
	return &l, nil
}

func (l *Layout) inBounds(p Position) bool {
	return p.Col >= 0 && p.Col < l.Cols &&
		p.Row >= 0 && p.Row < l.Rows &&
		p.Level >= 0 && p.Level < l.Levels
}

// Validate checks dimensions and that every referenced ID exists in cat.
func (l *Layout) Validate(cat *config.Catalog) error {
	if l.Cols <= 0 || l.Rows <= 0 || l.Levels <= 0 {
		return errors.New("layout dimensions must be positive")
	}
	if !world.FloorType(l.Floor).Valid() {
		return fmt.Errorf("floor %q is not a known floor type", l.Floor)
	}
	seen := make(map[Position]struct{}, len(l.Cells))
	for i, entry := range l.Cells {
		if !l.inBounds(entry.At) {
			return fmt.Errorf("cells[%d].at %v outside layout", i, entry.At)
		}
		if _, dup := seen[entry.At]; dup {
			return fmt.Errorf("cells[%d].at %v is duplicated", i, entry.At)
		}
		seen[entry.At] = struct{}{}
		if entry.Floor != "" && !world.FloorType(entry.Floor).Valid() {
			return fmt.Errorf("cells[%d].floor %q is not a known floor type", i, entry.Floor)
		}
		if !cat.HasBoundary(entry.North) {
			return fmt.Errorf("cells[%d].north %q is not a known boundary", i, entry.North)
		}
		if !cat.HasBoundary(entry.East) {
			return fmt.Errorf("cells[%d].east %q is not a known boundary", i, entry.East)
		}
		for j, id := range entry.Obstacles {
			if !cat.HasObstacle(id) {
				return fmt.Errorf("cells[%d].obstacles[%d] %q is not a known obstacle", i, j, id)
			}
		}
	}
	for i, unit := range l.Units {
		if !l.inBounds(unit.At) {
			return fmt.Errorf("units[%d].at %v outside layout", i, unit.At)
		}
		if unit.Mobility < 0 {
			return fmt.Errorf("units[%d].mobility cannot be negative", i)
		}
	}
	return nil
}

// Materialize creates the grid cells and the terrain authoring data. The
// caller runs the terrain builder over the result.
func (l *Layout) Materialize(cat *config.Catalog, metrics world.Metrics) (*world.Grid, terrain.Authoring, error) {
	if err := l.Validate(cat); err != nil {
		return nil, nil, fmt.Errorf("validate layout: %w", err)
	}
	overrides := make(map[world.Coordinate]CellEntry, len(l.Cells))
	for _, entry := range l.Cells {
		overrides[entry.At.Coord()] = entry
	}

	grid := world.NewGrid(metrics)
	authoring := make(terrain.Authoring, len(overrides))
	for level := 0; level < l.Levels; level++ {
		for row := 0; row < l.Rows; row++ {
			for col := 0; col < l.Cols; col++ {
				coord := world.Coordinate{Col: col, Row: row, Level: level}
				floor := world.FloorType(l.Floor)
				if entry, ok := overrides[coord]; ok {
					if entry.Floor != "" {
						floor = world.FloorType(entry.Floor)
					}
					authoring[coord] = terrain.CellAuthoring{
						North:     entry.North,
						East:      entry.East,
						Obstacles: entry.Obstacles,
					}
				}
				grid.AddCell(coord, floor)
			}
		}
	}
	return grid, authoring, nil
}

// Build materializes the layout and runs the terrain builder over it.
func (l *Layout) Build(cfg *config.Config) (*terrain.Builder, terrain.Summary, error) {
	cat := cfg.Catalog()
	grid, authoring, err := l.Materialize(cat, cfg.Metrics())
	if err != nil {
		return nil, terrain.Summary{}, err
	}
	builder := terrain.NewBuilder(grid, cat)
	summary := builder.Build(authoring)
	return builder, summary, nil
}
