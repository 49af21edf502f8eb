package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOccupant struct {
	kind     OccupantKind
	blocking bool
	watchers map[int]func(bool)
	next     int
}

func (s *stubOccupant) OccupantKind() OccupantKind { return s.kind }
func (s *stubOccupant) BlocksMovement() bool       { return s.blocking }

func (s *stubOccupant) WatchBlocking(fn func(bool)) func() {
	if s.watchers == nil {
		s.watchers = make(map[int]func(bool))
	}
	id := s.next
	s.next++
	s.watchers[id] = fn
	return func() { delete(s.watchers, id) }
}

func (s *stubOccupant) setBlocking(v bool) {
	s.blocking = v
	for _, fn := range s.watchers {
		fn(v)
	}
}

type changeRecorder struct {
	events []bool
}

func (r *changeRecorder) listen(_ *Cell, walkable bool) {
	r.events = append(r.events, walkable)
}

func TestCellWalkableFollowsFloor(t *testing.T) {
	g := NewGrid(DefaultMetrics())
	ground := g.AddCell(Coordinate{Col: 0}, FloorConcrete)
	hole := g.AddCell(Coordinate{Col: 1}, FloorNone)
	water := g.AddCell(Coordinate{Col: 2}, FloorDeepWater)

	assert.True(t, ground.IsWalkable())
	assert.False(t, hole.IsWalkable())
	assert.False(t, water.IsWalkable())
}

func TestCellOccupantChurnUpdatesWalkable(t *testing.T) {
	g := NewGrid(DefaultMetrics())
	cell := g.AddCell(Coordinate{}, FloorGround)
	rec := &changeRecorder{}
	cell.OnChange(rec.listen)

	passive := &stubOccupant{kind: OccupantUnit}
	cell.AddOccupant(passive)
	assert.True(t, cell.IsWalkable())
	assert.Empty(t, rec.events, "no flip, no notification")

	blocker := &stubOccupant{kind: OccupantUnit, blocking: true}
	cell.AddOccupant(blocker)
	assert.False(t, cell.IsWalkable())

	cell.AddOccupant(blocker)
	assert.Len(t, cell.Occupants(), 2, "duplicate adds are ignored")

	require.True(t, cell.RemoveOccupant(blocker))
	assert.True(t, cell.IsWalkable())
	assert.False(t, cell.RemoveOccupant(blocker))

	assert.Equal(t, []bool{false, true}, rec.events)
}

func TestCellRecomputesOnOccupantBlockingChange(t *testing.T) {
	g := NewGrid(DefaultMetrics())
	cell := g.AddCell(Coordinate{}, FloorGround)
	rec := &changeRecorder{}
	cell.OnChange(rec.listen)

	occ := &stubOccupant{kind: OccupantObstacle, blocking: true}
	cell.AddOccupant(occ)
	require.False(t, cell.IsWalkable())

	occ.setBlocking(false)
	assert.True(t, cell.IsWalkable())

	cell.RemoveOccupant(occ)
	assert.Empty(t, occ.watchers, "removal unsubscribes")

	occ.setBlocking(true)
	assert.True(t, cell.IsWalkable(), "removed occupant no longer affects the cell")
	assert.Equal(t, []bool{false, true}, rec.events)
}

func TestCellRefreshForcesNotification(t *testing.T) {
	g := NewGrid(DefaultMetrics())
	cell := g.AddCell(Coordinate{}, FloorGround)
	rec := &changeRecorder{}
	cell.OnChange(rec.listen)

	cell.Refresh()
	assert.Equal(t, []bool{true}, rec.events)
}

func TestPointObstacleDestructionFreesCell(t *testing.T) {
	g := NewGrid(DefaultMetrics())
	cell := g.AddCell(Coordinate{}, FloorGround)
	pillar := NewPointObstacle("pillar", CoverFull, 50)

	coverEvents := 0
	pillar.WatchCover(func(provides bool) {
		assert.False(t, provides)
		coverEvents++
	})

	cell.AddOccupant(pillar)
	require.False(t, cell.IsWalkable())
	assert.True(t, pillar.ProvidesCover())

	assert.False(t, pillar.Damage(20))
	assert.Equal(t, 30, pillar.Durability)
	assert.False(t, cell.IsWalkable())

	assert.True(t, pillar.Damage(45))
	assert.Equal(t, 0, pillar.Durability)
	assert.True(t, cell.IsWalkable())
	assert.False(t, pillar.ProvidesCover())
	assert.Equal(t, 1, coverEvents)

	assert.False(t, pillar.Damage(10), "already destroyed")
	assert.Equal(t, 1, coverEvents)
}

func TestIndestructibleObstacleIgnoresDamage(t *testing.T) {
	barrier := NewPointObstacle("barrier", CoverHalf, 0)
	assert.False(t, barrier.Damage(1000))
	assert.True(t, barrier.BlocksMovement())
}

func TestGridHasOccupantAtCountsUnitsOnly(t *testing.T) {
	g := NewRectGrid(2, 1, 1, FloorGround)
	cell, ok := g.GetCell(Coordinate{})
	require.True(t, ok)

	cell.AddOccupant(NewPointObstacle("crate", CoverHalf, 10))
	assert.False(t, g.HasOccupantAt(Coordinate{}))

	cell.AddOccupant(&stubOccupant{kind: OccupantUnit})
	assert.True(t, g.HasOccupantAt(Coordinate{}))
	assert.False(t, g.HasOccupantAt(Coordinate{Col: 1}))
	assert.False(t, g.HasOccupantAt(Coordinate{Col: 9}))
}

func TestGridCoordinatesAndExtent(t *testing.T) {
	g := NewRectGrid(3, 2, 2, FloorGround)
	assert.Equal(t, 12, g.Len())

	coords := g.Coordinates()
	require.Len(t, coords, 12)
	assert.Equal(t, Coordinate{}, coords[0])
	assert.Equal(t, Coordinate{Col: 2, Row: 1, Level: 1}, coords[11])

	min, max, ok := g.Extent()
	require.True(t, ok)
	assert.Equal(t, Coordinate{}, min)
	assert.Equal(t, Coordinate{Col: 2, Row: 1, Level: 1}, max)

	assert.Equal(t, uint64(0), g.StructuralVersion())
	assert.Equal(t, uint64(1), g.BumpStructuralVersion())
}
