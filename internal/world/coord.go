package world

import (
	"cmp"
	"fmt"
	"slices"
)

// Coordinate addresses one cell of the battlefield grid.
type Coordinate struct {
	Col   int
	Row   int
	Level int
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.Col, c.Row, c.Level)
}

// Compare orders coordinates level-major, then by row, then by column.
func (c Coordinate) Compare(other Coordinate) int {
	if v := cmp.Compare(c.Level, other.Level); v != 0 {
		return v
	}
	if v := cmp.Compare(c.Row, other.Row); v != 0 {
		return v
	}
	return cmp.Compare(c.Col, other.Col)
}

// SortCoordinates sorts coords in place using Compare.
func SortCoordinates(coords []Coordinate) {
	slices.SortFunc(coords, Coordinate.Compare)
}

// Direction enumerates the four planar neighbours of a cell.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists the cardinal directions in slot order.
var Directions = [...]Direction{North, East, South, West}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d >= North && d <= West
}

// Opposite returns the direction pointing back across the same edge.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	default:
		return East
	}
}

// Offset returns the column/row delta for a single step in d.
// North increases the row, East increases the column.
func (d Direction) Offset() (dCol, dRow int) {
	switch d {
	case North:
		return 0, 1
	case East:
		return 1, 0
	case South:
		return 0, -1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// ParseDirection maps a textual label onto a Direction.
func ParseDirection(value string) (Direction, error) {
	switch value {
	case "north", "n":
		return North, nil
	case "east", "e":
		return East, nil
	case "south", "s":
		return South, nil
	case "west", "w":
		return West, nil
	default:
		return North, fmt.Errorf("unknown direction %q", value)
	}
}

// Neighbor returns the coordinate one step away in dir on the same level.
func (c Coordinate) Neighbor(dir Direction) Coordinate {
	dCol, dRow := dir.Offset()
	return Coordinate{Col: c.Col + dCol, Row: c.Row + dRow, Level: c.Level}
}

// Neighbors returns the four same-level neighbours in Directions order.
func (c Coordinate) Neighbors() [4]Coordinate {
	var out [4]Coordinate
	for i, dir := range Directions {
		out[i] = c.Neighbor(dir)
	}
	return out
}

// IsAdjacent reports whether a and b share a level and are one planar step apart.
func IsAdjacent(a, b Coordinate) bool {
	if a.Level != b.Level {
		return false
	}
	return Manhattan(a, b) == 1
}

// DirectionBetween returns the direction of travel from a to an adjacent b.
func DirectionBetween(a, b Coordinate) (Direction, bool) {
	if !IsAdjacent(a, b) {
		return North, false
	}
	for _, dir := range Directions {
		if a.Neighbor(dir) == b {
			return dir, true
		}
	}
	return North, false
}

// Manhattan returns the planar Manhattan distance between a and b. Levels are
// ignored; callers that care compare them separately.
func Manhattan(a, b Coordinate) int {
	return abs(a.Col-b.Col) + abs(a.Row-b.Row)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func floorDiv(value, size float64) int {
	if size <= 0 {
		return 0
	}
	q := value / size
	n := int(q)
	if q < 0 && float64(n) != q {
		n--
	}
	return n
}
