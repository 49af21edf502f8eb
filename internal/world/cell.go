package world

// FloorType identifies the surface of a cell.
type FloorType string

const (
	FloorNone      FloorType = "none" // hole or void, nothing to stand on
	FloorGround    FloorType = "ground"
	FloorConcrete  FloorType = "concrete"
	FloorWood      FloorType = "wood"
	FloorGrate     FloorType = "grate"
	FloorDeepWater FloorType = "deep_water"
)

// Valid reports whether f is a known floor type.
func (f FloorType) Valid() bool {
	switch f {
	case FloorNone, FloorGround, FloorConcrete, FloorWood, FloorGrate, FloorDeepWater:
		return true
	default:
		return false
	}
}

// Passable reports whether a unit can stand on the floor.
func (f FloorType) Passable() bool {
	switch f {
	case "", FloorNone, FloorDeepWater:
		return false
	default:
		return true
	}
}

// OccupantKind distinguishes what stands inside a cell.
type OccupantKind string

const (
	OccupantUnit     OccupantKind = "unit"
	OccupantObstacle OccupantKind = "obstacle"
)

// Occupant is anything placed inside a cell.
type Occupant interface {
	OccupantKind() OccupantKind
	BlocksMovement() bool
}

// BlockingNotifier is implemented by occupants whose blocking state can change
// after placement. The returned stop func removes the watcher.
type BlockingNotifier interface {
	WatchBlocking(fn func(blocking bool)) (stop func())
}

// CellListener is invoked after a cell's walkability is recomputed.
type CellListener func(cell *Cell, walkable bool)

type occupantEntry struct {
	occupant Occupant
	stop     func()
}

// Cell is one addressable location of the grid. Occupants must be changed
// through AddOccupant and RemoveOccupant so the walkable cache stays correct.
type Cell struct {
	coord      Coordinate
	floor      FloorType
	boundaries [4]BoundaryID
	arena      *BoundaryArena

	occupants []occupantEntry
	walkable  bool
	listeners []CellListener
}

func newCell(coord Coordinate, floor FloorType, arena *BoundaryArena) *Cell {
	c := &Cell{
		coord:      coord,
		floor:      floor,
		boundaries: [4]BoundaryID{NoBoundary, NoBoundary, NoBoundary, NoBoundary},
		arena:      arena,
	}
	c.walkable = c.computeWalkable()
	return c
}

func (c *Cell) Coord() Coordinate { return c.coord }

func (c *Cell) Floor() FloorType { return c.floor }

// IsWalkable returns the cached walkability. Boundaries are not considered.
func (c *Cell) IsWalkable() bool { return c.walkable }

// BoundaryID returns the arena ID wired into the dir slot.
func (c *Cell) BoundaryID(dir Direction) BoundaryID {
	if !dir.Valid() {
		return NoBoundary
	}
	return c.boundaries[dir]
}

// Boundary returns the shared boundary on the dir side, or nil when unwired.
func (c *Cell) Boundary(dir Direction) *Boundary {
	return c.arena.Get(c.BoundaryID(dir))
}

// BlockedToward reports whether the boundary on the dir side stops movement.
func (c *Cell) BlockedToward(dir Direction) bool {
	b := c.Boundary(dir)
	return b != nil && b.Blocking()
}

// SetBoundary wires id into the dir slot.
func (c *Cell) SetBoundary(dir Direction, id BoundaryID) {
	if !dir.Valid() {
		return
	}
	c.boundaries[dir] = id
}

// Occupants returns a snapshot of the current occupants.
func (c *Cell) Occupants() []Occupant {
	out := make([]Occupant, len(c.occupants))
	for i, entry := range c.occupants {
		out[i] = entry.occupant
	}
	return out
}

// HasOccupant reports whether any occupant of kind stands in the cell.
func (c *Cell) HasOccupant(kind OccupantKind) bool {
	for _, entry := range c.occupants {
		if entry.occupant.OccupantKind() == kind {
			return true
		}
	}
	return false
}

// AddOccupant places o in the cell and recomputes walkability.
func (c *Cell) AddOccupant(o Occupant) {
	if o == nil {
		return
	}
	for _, entry := range c.occupants {
		if entry.occupant == o {
			return
		}
	}
	entry := occupantEntry{occupant: o}
	if notifier, ok := o.(BlockingNotifier); ok {
		entry.stop = notifier.WatchBlocking(func(bool) {
			c.refresh(false)
		})
	}
	c.occupants = append(c.occupants, entry)
	c.refresh(false)
}

// RemoveOccupant takes o out of the cell and reports whether it was present.
func (c *Cell) RemoveOccupant(o Occupant) bool {
	for i, entry := range c.occupants {
		if entry.occupant != o {
			continue
		}
		if entry.stop != nil {
			entry.stop()
		}
		c.occupants = append(c.occupants[:i], c.occupants[i+1:]...)
		c.refresh(false)
		return true
	}
	return false
}

// OnChange registers fn to run when walkability flips or a refresh is forced.
func (c *Cell) OnChange(fn CellListener) {
	if fn != nil {
		c.listeners = append(c.listeners, fn)
	}
}

// Refresh recomputes walkability and notifies listeners even if nothing
// flipped. The terrain builder calls it after a boundary breaks.
func (c *Cell) Refresh() {
	c.refresh(true)
}

func (c *Cell) refresh(force bool) {
	walkable := c.computeWalkable()
	changed := walkable != c.walkable
	c.walkable = walkable
	if !changed && !force {
		return
	}
	for _, fn := range c.listeners {
		fn(c, walkable)
	}
}

func (c *Cell) computeWalkable() bool {
	if !c.floor.Passable() {
		return false
	}
	for _, entry := range c.occupants {
		if entry.occupant.BlocksMovement() {
			return false
		}
	}
	return true
}
