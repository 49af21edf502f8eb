package movement

import (
	log "github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/terry419/fakecom-sub000/internal/pathfinding"
	"github.com/terry419/fakecom-sub000/internal/world"
)

// Grid is the world collaborator consulted while validating a route.
type Grid interface {
	pathfinding.Grid
	HasOccupantAt(coord world.Coordinate) bool
	StructuralVersion() uint64
}

// PathFinder is the search surface the planner depends on.
type PathFinder interface {
	FindPath(start, end world.Coordinate) []world.Coordinate
	GetReachableTiles(start world.Coordinate, budget int) mapset.Set[world.Coordinate]
}

// Unit is the mover a plan is computed for.
type Unit interface {
	Position() world.Coordinate
	Mobility() int
	HasMovedThisTurn() bool
}

type pathKey struct {
	position world.Coordinate
	target   world.Coordinate
	mobility int
	moved    bool
	version  uint64
}

type areaKey struct {
	position world.Coordinate
	mobility int
	moved    bool
	version  uint64
}

// Planner caches the last route and reachable area for one planning context.
// It is not safe for concurrent use.
type Planner struct {
	grid   Grid
	finder PathFinder

	pathKey    pathKey
	pathResult *Result

	areaKey    areaKey
	areaResult mapset.Set[world.Coordinate]
	hasArea    bool
}

// NewPlanner returns a planner over grid. A nil finder uses a default
// pathfinding.Pathfinder on the same grid.
func NewPlanner(grid Grid, finder PathFinder) *Planner {
	if finder == nil && grid != nil {
		finder = pathfinding.New(grid)
	}
	return &Planner{grid: grid, finder: finder}
}

// CalculatePath plans a move of unit to target.
func (p *Planner) CalculatePath(unit Unit, target world.Coordinate) *Result {
	if unit == nil || p.grid == nil || p.finder == nil {
		return Empty
	}
	key := pathKey{
		position: unit.Position(),
		target:   target,
		mobility: unit.Mobility(),
		moved:    unit.HasMovedThisTurn(),
		version:  p.grid.StructuralVersion(),
	}
	if p.pathResult != nil && key == p.pathKey {
		log.WithField("target", target.String()).Trace("path cache hit")
		return p.pathResult
	}

	raw := p.finder.FindPath(key.position, target)
	if raw == nil {
		log.WithFields(log.Fields{"from": key.position.String(), "target": target.String()}).Debug("no path to target")
		return Empty
	}
	if len(raw) > 0 && raw[0] == key.position {
		raw = raw[1:]
	}
	if len(raw) == 0 {
		return Empty
	}

	result := p.validate(key.position, raw, key.mobility)
	p.pathKey = key
	p.pathResult = result
	return result
}

// validate splits a raw route into the executable and the visual-only parts.
func (p *Planner) validate(start world.Coordinate, raw []world.Coordinate, mobility int) *Result {
	var valid, invalid []world.Coordinate
	blocked := false
	current := start

	for i, next := range raw {
		if blocked {
			invalid = append(invalid, next)
			continue
		}
		cell, ok := p.grid.GetCell(next)
		if !ok || !cell.IsWalkable() || p.grid.HasOccupantAt(next) {
			blocked = true
			invalid = append(invalid, next)
			continue
		}
		if dir, adjacent := world.DirectionBetween(current, next); adjacent {
			// Only the departure side is consulted.
			if from, ok := p.grid.GetCell(current); ok && from.BlockedToward(dir) {
				blocked = true
				invalid = append(invalid, next)
				continue
			}
		}
		// Every step costs one point, including for units that already moved.
		if i+1 <= mobility {
			valid = append(valid, next)
			current = next
		} else {
			invalid = append(invalid, next)
		}
	}
	return newResult(valid, invalid, blocked)
}

// CalculateReachableArea returns the cells unit can reach this turn.
func (p *Planner) CalculateReachableArea(unit Unit) mapset.Set[world.Coordinate] {
	if unit == nil || p.grid == nil || p.finder == nil {
		return mapset.New[world.Coordinate]()
	}
	key := areaKey{
		position: unit.Position(),
		mobility: unit.Mobility(),
		moved:    unit.HasMovedThisTurn(),
		version:  p.grid.StructuralVersion(),
	}
	if p.hasArea && key == p.areaKey {
		return p.areaResult
	}
	area := p.finder.GetReachableTiles(key.position, key.mobility)
	p.areaKey = key
	p.areaResult = area
	p.hasArea = true
	return area
}

// ReachableArea returns the last computed reachable area, if any.
func (p *Planner) ReachableArea() (mapset.Set[world.Coordinate], bool) {
	return p.areaResult, p.hasArea
}

// InvalidatePathCache drops both cached entries.
func (p *Planner) InvalidatePathCache() {
	p.pathKey = pathKey{}
	p.pathResult = nil
	var none mapset.Set[world.Coordinate]
	p.areaKey = areaKey{}
	p.areaResult = none
	p.hasArea = false
}
