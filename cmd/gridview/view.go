package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"

	"github.com/terry419/fakecom-sub000/internal/movement"
	"github.com/terry419/fakecom-sub000/internal/pathfinding"
	"github.com/terry419/fakecom-sub000/internal/terrain"
	"github.com/terry419/fakecom-sub000/internal/world"
)

const damageStep = 25

var (
	styleFloor     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleReachable = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleWall      = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleObstacle  = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleUnit      = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleValid     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleInvalid   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleStatus    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// viewer renders one level of a grid and previews moves for a single unit.
type viewer struct {
	grid     *world.Grid
	builder  *terrain.Builder
	finder   *pathfinding.Pathfinder
	planner  *movement.Planner
	unit     *movement.Trooper
	mobility int

	cursor   world.Coordinate
	min, max world.Coordinate
	status   string
}

func newViewer(builder *terrain.Builder, finder *pathfinding.Pathfinder, unit *movement.Trooper) *viewer {
	grid := builder.Grid()
	lo, hi, _ := grid.Extent()
	return &viewer{
		grid:     grid,
		builder:  builder,
		finder:   finder,
		planner:  movement.NewPlanner(grid, finder),
		unit:     unit,
		mobility: unit.AP,
		cursor:   unit.Pos,
		min:      lo,
		max:      hi,
		status:   "arrows/hjkl move, enter moves unit, d/e damage N/E side, x hits obstacle, n new turn, q quits",
	}
}

// handleKey applies a key press and reports whether the viewer should exit.
func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.moveCursor(world.North)
	case tcell.KeyDown:
		v.moveCursor(world.South)
	case tcell.KeyLeft:
		v.moveCursor(world.West)
	case tcell.KeyRight:
		v.moveCursor(world.East)
	case tcell.KeyEnter:
		v.executeMove()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'k':
			v.moveCursor(world.North)
		case 'j':
			v.moveCursor(world.South)
		case 'h':
			v.moveCursor(world.West)
		case 'l':
			v.moveCursor(world.East)
		case '<':
			v.changeLevel(-1)
		case '>':
			v.changeLevel(1)
		case 'd':
			v.damageBoundary(world.North)
		case 'e':
			v.damageBoundary(world.East)
		case 'x':
			v.damageObstacle()
		case 'n':
			v.unit.AP = v.mobility
			v.unit.Moved = false
			v.status = fmt.Sprintf("new turn, %d AP", v.unit.AP)
		case 'i':
			v.planner.InvalidatePathCache()
			v.status = "plan cache cleared"
		}
	}
	return false
}

func (v *viewer) moveCursor(dir world.Direction) {
	next := v.cursor.Neighbor(dir)
	if next.Col < v.min.Col || next.Col > v.max.Col || next.Row < v.min.Row || next.Row > v.max.Row {
		return
	}
	v.cursor = next
}

func (v *viewer) changeLevel(delta int) {
	level := v.cursor.Level + delta
	if level < v.min.Level || level > v.max.Level {
		return
	}
	v.cursor.Level = level
}

func (v *viewer) damageBoundary(dir world.Direction) {
	report := v.builder.DamageBoundaryAt(v.cursor, dir, damageStep)
	if !report.Applied() {
		v.status = fmt.Sprintf("nothing to damage %s of %s", dir, v.cursor)
		return
	}
	v.grid.BumpStructuralVersion()
	if report.Destroyed() {
		v.status = fmt.Sprintf("boundary %s of %s destroyed", dir, v.cursor)
		return
	}
	v.status = fmt.Sprintf("boundary %s of %s at %d", dir, v.cursor, report.Remaining)
}

func (v *viewer) damageObstacle() {
	report := v.builder.DamageObstacleAt(v.cursor, damageStep)
	if !report.Applied() {
		v.status = fmt.Sprintf("no obstacle at %s", v.cursor)
		return
	}
	v.grid.BumpStructuralVersion()
	v.status = fmt.Sprintf("obstacle at %s down to %d", v.cursor, report.Remaining)
}

func (v *viewer) executeMove() {
	result := v.planner.CalculatePath(v.unit, v.cursor)
	from := v.unit.Pos
	if !v.unit.Execute(v.grid, result) {
		v.status = fmt.Sprintf("cannot move to %s", v.cursor)
		return
	}
	log.WithFields(log.Fields{"unit": v.unit.Name, "from": from.String(), "to": v.unit.Pos.String(), "ap": v.unit.AP}).Info("unit moved")
	v.status = fmt.Sprintf("%s moved to %s, %d AP left", v.unit.Name, v.unit.Pos, v.unit.AP)
}

// screenPos maps a coordinate to the terminal cell of its floor glyph. Rows
// grow upward, so North is drawn above.
func (v *viewer) screenPos(c world.Coordinate) (int, int) {
	return 1 + (c.Col-v.min.Col)*2, 1 + (v.max.Row-c.Row)*2
}

func (v *viewer) draw(screen tcell.Screen) {
	screen.Clear()

	area := v.planner.CalculateReachableArea(v.unit)
	result := v.planner.CalculatePath(v.unit, v.cursor)
	valid := make(map[world.Coordinate]struct{})
	for _, c := range result.ValidPath() {
		valid[c] = struct{}{}
	}
	invalid := make(map[world.Coordinate]struct{})
	for _, c := range result.InvalidPath() {
		invalid[c] = struct{}{}
	}

	v.grid.ForEachCell(func(cell *world.Cell) bool {
		coord := cell.Coord()
		if coord.Level != v.cursor.Level {
			return true
		}
		x, y := v.screenPos(coord)

		glyph, style := cellGlyph(cell)
		if area.Has(coord) && cell.IsWalkable() {
			style = styleReachable
		}
		if _, ok := valid[coord]; ok {
			glyph, style = '*', styleValid
		} else if _, ok := invalid[coord]; ok {
			glyph, style = 'x', styleInvalid
		}
		if coord == v.unit.Pos {
			glyph, style = '@', styleUnit
		}
		if coord == v.cursor {
			style = style.Reverse(true)
		}
		screen.SetContent(x, y, glyph, nil, style)

		if b := cell.Boundary(world.North); b != nil && b.Blocking() {
			screen.SetContent(x, y-1, boundaryGlyph(b, true), nil, styleWall)
		}
		if b := cell.Boundary(world.East); b != nil && b.Blocking() {
			screen.SetContent(x+1, y, boundaryGlyph(b, false), nil, styleWall)
		}
		return true
	})

	_, bottom := v.screenPos(world.Coordinate{Row: v.min.Row})
	summary := fmt.Sprintf("%s  level %d  %s AP %d", v.cursor, v.cursor.Level, v.unit.Name, v.unit.AP)
	if cost, ok := v.finder.ReachableCosts(v.unit.Pos, v.unit.AP)[v.cursor]; ok {
		summary += fmt.Sprintf("  %d steps away", cost)
	}
	switch {
	case result == movement.Empty:
		summary += "  no path"
	case result.IsFullyValid():
		summary += fmt.Sprintf("  cost %d", result.RequiredAPForValidPath())
	case result.IsBlocked():
		summary += fmt.Sprintf("  blocked after %d", len(result.ValidPath()))
	default:
		summary += fmt.Sprintf("  reach %d of %d", len(result.ValidPath()), len(result.ValidPath())+len(result.InvalidPath()))
	}
	drawText(screen, 0, bottom+2, summary, styleStatus)
	drawText(screen, 0, bottom+3, v.status, styleStatus)
	screen.Show()
}

func cellGlyph(cell *world.Cell) (rune, tcell.Style) {
	switch {
	case cell.HasOccupant(world.OccupantObstacle) && !cell.IsWalkable():
		return '#', styleObstacle
	case cell.Floor() == world.FloorDeepWater:
		return '~', styleFloor
	case !cell.Floor().Passable():
		return ' ', styleFloor
	default:
		return '.', styleFloor
	}
}

func boundaryGlyph(b *world.Boundary, horizontal bool) rune {
	switch b.Category {
	case world.BoundaryWindow:
		return '='
	case world.BoundaryDoor:
		return '+'
	case world.BoundaryFence:
		if horizontal {
			return '~'
		}
		return ':'
	default:
		if horizontal {
			return '-'
		}
		return '|'
	}
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
