package world

// Grid keeps the authoritative cell state of a battlefield. It is the world
// collaborator consumed by pathfinding and movement planning.
type Grid struct {
	metrics Metrics
	arena   *BoundaryArena
	cells   map[Coordinate]*Cell
	version uint64
}

func NewGrid(metrics Metrics) *Grid {
	return &Grid{
		metrics: metrics,
		arena:   NewBoundaryArena(),
		cells:   make(map[Coordinate]*Cell),
	}
}

// NewRectGrid creates a grid with every cell of cols x rows x levels present
// and floored with floor.
func NewRectGrid(cols, rows, levels int, floor FloorType) *Grid {
	g := NewGrid(DefaultMetrics())
	for level := 0; level < levels; level++ {
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				g.AddCell(Coordinate{Col: col, Row: row, Level: level}, floor)
			}
		}
	}
	return g
}

func (g *Grid) Metrics() Metrics { return g.metrics }

// Boundaries exposes the arena holding every wired boundary.
func (g *Grid) Boundaries() *BoundaryArena { return g.arena }

// AddCell creates the cell at coord, or returns the existing one unchanged.
func (g *Grid) AddCell(coord Coordinate, floor FloorType) *Cell {
	if existing, ok := g.cells[coord]; ok {
		return existing
	}
	cell := newCell(coord, floor, g.arena)
	g.cells[coord] = cell
	return cell
}

// GetCell returns the cell at coord when present.
func (g *Grid) GetCell(coord Coordinate) (*Cell, bool) {
	if g == nil {
		return nil, false
	}
	cell, ok := g.cells[coord]
	return cell, ok
}

// Neighbor returns the cell one step from coord in dir.
func (g *Grid) Neighbor(coord Coordinate, dir Direction) (*Cell, bool) {
	return g.GetCell(coord.Neighbor(dir))
}

// HasOccupantAt reports whether a unit stands at coord. Obstacles are covered
// by the walkable flag instead.
func (g *Grid) HasOccupantAt(coord Coordinate) bool {
	cell, ok := g.GetCell(coord)
	if !ok {
		return false
	}
	return cell.HasOccupant(OccupantUnit)
}

// StructuralVersion is bumped by the owner whenever topology changes.
func (g *Grid) StructuralVersion() uint64 {
	if g == nil {
		return 0
	}
	return g.version
}

// BumpStructuralVersion marks a topology change and returns the new version.
func (g *Grid) BumpStructuralVersion() uint64 {
	g.version++
	return g.version
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	if g == nil {
		return 0
	}
	return len(g.cells)
}

// Coordinates returns every cell coordinate in Compare order.
func (g *Grid) Coordinates() []Coordinate {
	if g == nil {
		return nil
	}
	out := make([]Coordinate, 0, len(g.cells))
	for coord := range g.cells {
		out = append(out, coord)
	}
	SortCoordinates(out)
	return out
}

// ForEachCell visits cells in Compare order until fn returns false.
func (g *Grid) ForEachCell(fn func(cell *Cell) bool) {
	for _, coord := range g.Coordinates() {
		if !fn(g.cells[coord]) {
			return
		}
	}
}

// Extent returns the inclusive min and max corners covering every cell.
func (g *Grid) Extent() (min, max Coordinate, ok bool) {
	first := true
	for coord := range g.cells {
		if first {
			min, max = coord, coord
			first = false
			continue
		}
		min.Col = minInt(min.Col, coord.Col)
		min.Row = minInt(min.Row, coord.Row)
		min.Level = minInt(min.Level, coord.Level)
		max.Col = maxInt(max.Col, coord.Col)
		max.Row = maxInt(max.Row, coord.Row)
		max.Level = maxInt(max.Level, coord.Level)
	}
	return min, max, !first
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
