package movement

import "github.com/terry419/fakecom-sub000/internal/world"

// Trooper is a minimal unit that can be planned for and placed on a grid.
type Trooper struct {
	Name  string
	Pos   world.Coordinate
	AP    int
	Moved bool
}

func (t *Trooper) Position() world.Coordinate { return t.Pos }
func (t *Trooper) Mobility() int              { return t.AP }
func (t *Trooper) HasMovedThisTurn() bool     { return t.Moved }

func (t *Trooper) OccupantKind() world.OccupantKind { return world.OccupantUnit }
func (t *Trooper) BlocksMovement() bool             { return true }

// Place puts the trooper into the cell at its position.
func (t *Trooper) Place(grid *world.Grid) bool {
	cell, ok := grid.GetCell(t.Pos)
	if !ok {
		return false
	}
	cell.AddOccupant(t)
	return true
}

// Execute moves the trooper along the valid part of result, spending AP and
// bumping the grid's structural version. It reports whether anything moved.
func (t *Trooper) Execute(grid *world.Grid, result *Result) bool {
	dest, ok := result.Destination()
	if !ok || !result.CanAfford(t.AP) {
		return false
	}
	target, ok := grid.GetCell(dest)
	if !ok {
		return false
	}
	if from, ok := grid.GetCell(t.Pos); ok {
		from.RemoveOccupant(t)
	}
	t.Pos = dest
	t.AP -= result.RequiredAPForValidPath()
	t.Moved = true
	target.AddOccupant(t)
	grid.BumpStructuralVersion()
	return true
}
