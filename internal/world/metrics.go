package world

// Vec3 is a world-space position. X runs along columns, Z along rows and Y is
// vertical.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Metrics converts between world space and grid coordinates.
type Metrics struct {
	CellSize    float64
	LevelHeight float64
	Origin      Vec3
}

// DefaultMetrics uses unit-sized cells and a three unit storey height.
func DefaultMetrics() Metrics {
	return Metrics{CellSize: 1, LevelHeight: 3}
}

// WorldToGrid returns the cell containing pos.
func (m Metrics) WorldToGrid(pos Vec3) Coordinate {
	return Coordinate{
		Col:   floorDiv(pos.X-m.Origin.X, m.CellSize),
		Row:   floorDiv(pos.Z-m.Origin.Z, m.CellSize),
		Level: floorDiv(pos.Y-m.Origin.Y, m.LevelHeight),
	}
}

// GridToWorld returns the centre of the cell floor at c.
func (m Metrics) GridToWorld(c Coordinate) Vec3 {
	half := m.CellSize / 2
	return Vec3{
		X: m.Origin.X + float64(c.Col)*m.CellSize + half,
		Y: m.Origin.Y + float64(c.Level)*m.LevelHeight,
		Z: m.Origin.Z + float64(c.Row)*m.CellSize + half,
	}
}
