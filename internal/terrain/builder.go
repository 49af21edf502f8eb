package terrain

import (
	log "github.com/sirupsen/logrus"

	"github.com/terry419/fakecom-sub000/internal/config"
	"github.com/terry419/fakecom-sub000/internal/world"
)

// CellAuthoring is the per-cell terrain data produced by map authoring. A cell
// authors only its North and East boundaries; the South and West sides are
// supplied by the neighbours during their own pass.
type CellAuthoring struct {
	North     string   // boundary catalog ID, empty for open
	East      string   // boundary catalog ID, empty for open
	Obstacles []string // obstacle catalog IDs
}

// Authoring maps coordinates to their authored terrain data. Cells without an
// entry get open boundaries and no obstacles.
type Authoring map[world.Coordinate]CellAuthoring

// Summary reports what a Build pass produced.
type Summary struct {
	Cells      int
	Boundaries int
	Blocking   int
	Obstacles  int
	Unknown    []string
}

// Builder wires authoring data into a grid and owns the runtime damage entry
// points for terrain.
type Builder struct {
	grid    *world.Grid
	catalog *config.Catalog
}

func NewBuilder(grid *world.Grid, catalog *config.Catalog) *Builder {
	if catalog == nil {
		catalog = config.DefaultCatalog()
	}
	return &Builder{grid: grid, catalog: catalog}
}

func (b *Builder) Grid() *world.Grid { return b.grid }

// Build runs the boundary wiring pass followed by obstacle placement. Running
// it again over the same grid reuses the boundaries already wired.
func (b *Builder) Build(authoring Authoring) Summary {
	var summary Summary
	if b.grid == nil {
		return summary
	}
	before := b.grid.Boundaries().Len()

	b.grid.ForEachCell(func(cell *world.Cell) bool {
		summary.Cells++
		data := authoring[cell.Coord()]
		b.wire(cell, world.North, data.North, &summary)
		b.wire(cell, world.East, data.East, &summary)
		return true
	})

	b.grid.ForEachCell(func(cell *world.Cell) bool {
		for _, id := range authoring[cell.Coord()].Obstacles {
			obstacle, ok := b.catalog.Obstacle(id)
			if !ok {
				summary.Unknown = append(summary.Unknown, id)
				log.WithFields(log.Fields{"cell": cell.Coord().String(), "obstacle": id}).Warn("unknown obstacle id, skipped")
				continue
			}
			cell.AddOccupant(obstacle)
			summary.Obstacles++
		}
		return true
	})

	arena := b.grid.Boundaries()
	summary.Boundaries = arena.Len() - before
	for i := 0; i < arena.Len(); i++ {
		if arena.Get(world.BoundaryID(i)).Blocking() {
			summary.Blocking++
		}
	}

	log.WithFields(log.Fields{
		"cells":      summary.Cells,
		"boundaries": summary.Boundaries,
		"blocking":   summary.Blocking,
		"obstacles":  summary.Obstacles,
	}).Info("terrain built")
	return summary
}

// wire creates or reuses the boundary on the dir side of cell and attaches the
// same ID to the neighbour's opposite slot.
func (b *Builder) wire(cell *world.Cell, dir world.Direction, boundaryID string, summary *Summary) {
	id := cell.BoundaryID(dir)
	if id == world.NoBoundary {
		boundary, ok := b.catalog.Boundary(boundaryID)
		if !ok {
			summary.Unknown = append(summary.Unknown, boundaryID)
			log.WithFields(log.Fields{"cell": cell.Coord().String(), "dir": dir.String(), "boundary": boundaryID}).Warn("unknown boundary id, using open")
			boundary, _ = b.catalog.Boundary("")
		}
		id = b.grid.Boundaries().Add(boundary)
		cell.SetBoundary(dir, id)
	}
	if neighbor, ok := b.grid.Neighbor(cell.Coord(), dir); ok {
		neighbor.SetBoundary(dir.Opposite(), id)
	}
}
