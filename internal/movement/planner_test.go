package movement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"

	"github.com/terry419/fakecom-sub000/internal/config"
	"github.com/terry419/fakecom-sub000/internal/pathfinding"
	"github.com/terry419/fakecom-sub000/internal/terrain"
	"github.com/terry419/fakecom-sub000/internal/world"
)

func at(col, row int) world.Coordinate {
	return world.Coordinate{Col: col, Row: row}
}

// bystander is a unit occupant that leaves its cell walkable.
type bystander struct{}

func (bystander) OccupantKind() world.OccupantKind { return world.OccupantUnit }
func (bystander) BlocksMovement() bool             { return false }

type countingFinder struct {
	inner      *pathfinding.Pathfinder
	paths      int
	reachables int
}

func (f *countingFinder) FindPath(start, end world.Coordinate) []world.Coordinate {
	f.paths++
	return f.inner.FindPath(start, end)
}

func (f *countingFinder) GetReachableTiles(start world.Coordinate, budget int) mapset.Set[world.Coordinate] {
	f.reachables++
	return f.inner.GetReachableTiles(start, budget)
}

type fixture struct {
	grid    *world.Grid
	builder *terrain.Builder
	finder  *countingFinder
	planner *Planner
}

func newFixture(t *testing.T, authoring terrain.Authoring) *fixture {
	t.Helper()
	grid := world.NewRectGrid(5, 5, 1, world.FloorConcrete)
	builder := terrain.NewBuilder(grid, config.DefaultCatalog())
	builder.Build(authoring)
	finder := &countingFinder{inner: pathfinding.New(grid)}
	return &fixture{
		grid:    grid,
		builder: builder,
		finder:  finder,
		planner: NewPlanner(grid, finder),
	}
}

// enclosed walls (1,1) in on all four sides.
var enclosed = terrain.Authoring{
	at(1, 1): {North: "wall", East: "wall"},
	at(1, 0): {North: "wall"},
	at(0, 1): {East: "wall"},
}

func TestCalculatePathWithinBudget(t *testing.T) {
	f := newFixture(t, nil)
	unit := &Trooper{Pos: at(0, 0), AP: 3}

	result := f.planner.CalculatePath(unit, at(2, 0))
	assert.Equal(t, []world.Coordinate{at(1, 0), at(2, 0)}, result.ValidPath())
	assert.Empty(t, result.InvalidPath())
	assert.False(t, result.IsBlocked())
	assert.True(t, result.IsFullyValid())
	assert.Equal(t, 2, result.RequiredAPForValidPath())
}

func TestCalculatePathUnreachableTarget(t *testing.T) {
	f := newFixture(t, enclosed)
	unit := &Trooper{Pos: at(0, 0), AP: 6}

	result := f.planner.CalculatePath(unit, at(1, 1))
	assert.Same(t, Empty, result)
	assert.True(t, result.IsBlocked())
	assert.Empty(t, result.ValidPath())

	f.planner.CalculatePath(unit, at(1, 1))
	assert.Equal(t, 2, f.finder.paths, "no-path results are not cached")
}

func TestCalculatePathOverBudget(t *testing.T) {
	f := newFixture(t, nil)
	unit := &Trooper{Pos: at(0, 0), AP: 1}

	result := f.planner.CalculatePath(unit, at(3, 0))
	assert.Equal(t, []world.Coordinate{at(1, 0)}, result.ValidPath())
	assert.Equal(t, []world.Coordinate{at(2, 0), at(3, 0)}, result.InvalidPath())
	assert.False(t, result.IsBlocked())
	assert.False(t, result.IsFullyValid())
	assert.Equal(t, 1, result.RequiredAPForValidPath())
}

func TestCalculatePathMovedUnitPaysFullCost(t *testing.T) {
	f := newFixture(t, nil)
	unit := &Trooper{Pos: at(0, 0), AP: 2, Moved: true}

	result := f.planner.CalculatePath(unit, at(3, 0))
	assert.Len(t, result.ValidPath(), 2)
	assert.Len(t, result.InvalidPath(), 1)
}

func TestCalculatePathStopsAtOccupiedCell(t *testing.T) {
	f := newFixture(t, nil)
	cell, ok := f.grid.GetCell(at(2, 0))
	require.True(t, ok)
	cell.AddOccupant(bystander{})
	require.True(t, cell.IsWalkable())

	unit := &Trooper{Pos: at(0, 0), AP: 5}
	result := f.planner.CalculatePath(unit, at(3, 0))
	assert.True(t, result.IsBlocked())
	assert.Equal(t, []world.Coordinate{at(1, 0)}, result.ValidPath())
	assert.Equal(t, []world.Coordinate{at(2, 0), at(3, 0)}, result.InvalidPath())
	assert.True(t, result.IsValidButDestinationBlocked())
	assert.Equal(t, 1, result.RequiredAPForValidPath())
}

func TestCalculatePathOccupantOnFirstStep(t *testing.T) {
	f := newFixture(t, nil)
	cell, _ := f.grid.GetCell(at(1, 0))
	cell.AddOccupant(bystander{})

	result := f.planner.CalculatePath(&Trooper{Pos: at(0, 0), AP: 5}, at(2, 0))
	assert.True(t, result.IsBlocked())
	assert.Empty(t, result.ValidPath())
	assert.Equal(t, []world.Coordinate{at(1, 0), at(2, 0)}, result.InvalidPath())
	assert.Zero(t, result.RequiredAPForValidPath())
}

func TestCalculatePathCache(t *testing.T) {
	f := newFixture(t, nil)
	unit := &Trooper{Pos: at(0, 0), AP: 4}

	first := f.planner.CalculatePath(unit, at(2, 2))
	second := f.planner.CalculatePath(unit, at(2, 2))
	assert.Same(t, first, second)
	assert.Equal(t, 1, f.finder.paths)

	f.grid.BumpStructuralVersion()
	third := f.planner.CalculatePath(unit, at(2, 2))
	assert.NotSame(t, first, third)
	assert.Equal(t, first.ValidPath(), third.ValidPath())
	assert.Equal(t, 2, f.finder.paths)

	unit.AP = 2
	fourth := f.planner.CalculatePath(unit, at(2, 2))
	assert.NotSame(t, third, fourth)
	assert.Len(t, fourth.ValidPath(), 2)

	f.planner.CalculatePath(unit, at(3, 3))
	again := f.planner.CalculatePath(unit, at(2, 2))
	assert.NotSame(t, fourth, again, "single slot holds only the latest target")
	assert.Equal(t, 5, f.finder.paths)
}

func TestCalculatePathSameCell(t *testing.T) {
	f := newFixture(t, nil)
	result := f.planner.CalculatePath(&Trooper{Pos: at(2, 2), AP: 3}, at(2, 2))
	assert.Same(t, Empty, result)
}

func TestCalculatePathNilUnit(t *testing.T) {
	f := newFixture(t, nil)
	assert.Same(t, Empty, f.planner.CalculatePath(nil, at(1, 0)))
	assert.Equal(t, 0, f.planner.CalculateReachableArea(nil).Size())
	assert.Zero(t, f.finder.paths)
}

func TestCalculateReachableAreaCache(t *testing.T) {
	f := newFixture(t, nil)
	unit := &Trooper{Pos: at(2, 2), AP: 1}

	_, ok := f.planner.ReachableArea()
	assert.False(t, ok)

	area := f.planner.CalculateReachableArea(unit)
	assert.Equal(t, 5, area.Size())
	f.planner.CalculateReachableArea(unit)
	assert.Equal(t, 1, f.finder.reachables)

	cached, ok := f.planner.ReachableArea()
	require.True(t, ok)
	assert.Equal(t, area.Size(), cached.Size())

	unit.Moved = true
	f.planner.CalculateReachableArea(unit)
	assert.Equal(t, 2, f.finder.reachables)
}

func TestReachableAreaAfterWallDestroyed(t *testing.T) {
	f := newFixture(t, enclosed)
	unit := &Trooper{Pos: at(0, 0), AP: 3}

	before := f.planner.CalculateReachableArea(unit)
	assert.False(t, before.Has(at(1, 1)))

	report := f.builder.DamageBoundaryAt(at(1, 1), world.West, 1000)
	require.True(t, report.Destroyed())

	stale := f.planner.CalculateReachableArea(unit)
	assert.False(t, stale.Has(at(1, 1)), "cache key unchanged until the owner bumps the version")

	f.grid.BumpStructuralVersion()
	after := f.planner.CalculateReachableArea(unit)
	assert.True(t, after.Has(at(1, 1)))
	assert.Equal(t, 2, f.finder.reachables)
}

func TestInvalidatePathCache(t *testing.T) {
	f := newFixture(t, nil)
	unit := &Trooper{Pos: at(0, 0), AP: 3}

	first := f.planner.CalculatePath(unit, at(1, 1))
	f.planner.CalculateReachableArea(unit)
	f.planner.InvalidatePathCache()

	_, ok := f.planner.ReachableArea()
	assert.False(t, ok)
	assert.NotSame(t, first, f.planner.CalculatePath(unit, at(1, 1)))
	f.planner.CalculateReachableArea(unit)
	assert.Equal(t, 2, f.finder.paths)
	assert.Equal(t, 2, f.finder.reachables)
}

func TestNewPlannerDefaultsFinder(t *testing.T) {
	grid := world.NewRectGrid(3, 1, 1, world.FloorGround)
	terrain.NewBuilder(grid, nil).Build(nil)
	planner := NewPlanner(grid, nil)

	result := planner.CalculatePath(&Trooper{Pos: at(0, 0), AP: 2}, at(2, 0))
	assert.True(t, result.IsFullyValid())
}

func TestTrooperExecute(t *testing.T) {
	f := newFixture(t, nil)
	unit := &Trooper{Name: "alpha", Pos: at(0, 0), AP: 3}
	require.True(t, unit.Place(f.grid))
	assert.True(t, f.grid.HasOccupantAt(at(0, 0)))

	result := f.planner.CalculatePath(unit, at(2, 0))
	version := f.grid.StructuralVersion()
	require.True(t, unit.Execute(f.grid, result))

	assert.Equal(t, at(2, 0), unit.Pos)
	assert.Equal(t, 1, unit.AP)
	assert.True(t, unit.Moved)
	assert.Greater(t, f.grid.StructuralVersion(), version)
	assert.False(t, f.grid.HasOccupantAt(at(0, 0)))
	assert.True(t, f.grid.HasOccupantAt(at(2, 0)))

	origin, _ := f.grid.GetCell(at(0, 0))
	assert.True(t, origin.IsWalkable())

	assert.False(t, unit.Execute(f.grid, Empty))
	tooFar := f.planner.CalculatePath(&Trooper{Pos: at(2, 0), AP: 4}, at(2, 4))
	assert.False(t, unit.Execute(f.grid, tooFar), "remaining AP does not cover the route")
}
