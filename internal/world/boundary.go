package world

// BoundaryCategory classifies the partition between two cells.
type BoundaryCategory string

const (
	BoundaryOpen   BoundaryCategory = "open"
	BoundaryWall   BoundaryCategory = "wall"
	BoundaryWindow BoundaryCategory = "window"
	BoundaryDoor   BoundaryCategory = "door"
	BoundaryFence  BoundaryCategory = "fence"
)

// Valid reports whether c is a known category.
func (c BoundaryCategory) Valid() bool {
	switch c {
	case BoundaryOpen, BoundaryWall, BoundaryWindow, BoundaryDoor, BoundaryFence:
		return true
	default:
		return false
	}
}

// Cover is the protection rating consumed by combat logic.
type Cover int

const (
	CoverNone Cover = iota
	CoverHalf
	CoverFull
)

func (c Cover) String() string {
	switch c {
	case CoverHalf:
		return "half"
	case CoverFull:
		return "full"
	default:
		return "none"
	}
}

// BoundaryID indexes a Boundary inside a BoundaryArena.
type BoundaryID int32

// NoBoundary marks an unwired direction slot.
const NoBoundary BoundaryID = -1

// Boundary is the wall, window, door, fence or open segment between two
// adjacent cells on the same level. One instance exists per partition and both
// neighbouring cells refer to it by ID.
type Boundary struct {
	Category      BoundaryCategory
	Cover         Cover
	MaxDurability int
	Durability    int
	BasePassable  bool
}

// Broken reports whether a destructible boundary has been worn down to zero.
func (b *Boundary) Broken() bool {
	return b.MaxDurability > 0 && b.Durability <= 0
}

// Blocking reports whether units may not step across the boundary.
func (b *Boundary) Blocking() bool {
	return b.Category != BoundaryOpen && !b.Broken() && !b.BasePassable
}

// Permeable reports whether sight and projectiles pass through.
func (b *Boundary) Permeable() bool {
	return b.Category == BoundaryOpen || b.Broken() || b.Category == BoundaryWindow || b.BasePassable
}

// Indestructible boundaries ignore damage.
func (b *Boundary) Indestructible() bool {
	return b.MaxDurability <= 0
}

// Damage lowers durability by amount, floored at zero, and reports whether
// this call broke the boundary.
func (b *Boundary) Damage(amount int) bool {
	if amount <= 0 || b.Indestructible() || b.Broken() {
		return false
	}
	b.Durability -= amount
	if b.Durability < 0 {
		b.Durability = 0
	}
	return b.Broken()
}

// BoundaryArena owns every Boundary of a grid. Entries are pointers so an
// address handed out stays valid while the arena grows.
type BoundaryArena struct {
	items []*Boundary
}

func NewBoundaryArena() *BoundaryArena {
	return &BoundaryArena{}
}

// Add stores b and returns its ID.
func (a *BoundaryArena) Add(b Boundary) BoundaryID {
	stored := b
	a.items = append(a.items, &stored)
	return BoundaryID(len(a.items) - 1)
}

// Get returns the boundary for id, or nil for NoBoundary and unknown IDs.
func (a *BoundaryArena) Get(id BoundaryID) *Boundary {
	if a == nil || id < 0 || int(id) >= len(a.items) {
		return nil
	}
	return a.items[id]
}

// Len returns the number of stored boundaries.
func (a *BoundaryArena) Len() int {
	if a == nil {
		return 0
	}
	return len(a.items)
}
