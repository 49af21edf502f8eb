package terrain

import (
	log "github.com/sirupsen/logrus"

	"github.com/terry419/fakecom-sub000/internal/world"
)

type ChangeReason string

const (
	ReasonNone    ChangeReason = ""
	ReasonDamage  ChangeReason = "damage"
	ReasonDestroy ChangeReason = "destroy"
)

// DamageReport captures the outcome of a terrain damage call.
type DamageReport struct {
	Coord     world.Coordinate
	Reason    ChangeReason
	Before    int
	Remaining int
}

// Applied reports whether any durability was removed.
func (r DamageReport) Applied() bool { return r.Reason != ReasonNone }

// Destroyed reports whether the call broke the target.
func (r DamageReport) Destroyed() bool { return r.Reason == ReasonDestroy }

// DamageBoundaryAt damages the boundary on the dir side of coord. Missing
// cells, unwired slots, open, indestructible and already broken boundaries
// are left untouched. When the boundary breaks both adjacent cells are
// refreshed so their listeners observe the change.
func (b *Builder) DamageBoundaryAt(coord world.Coordinate, dir world.Direction, amount int) DamageReport {
	report := DamageReport{Coord: coord}
	cell, ok := b.grid.GetCell(coord)
	if !ok {
		return report
	}
	boundary := cell.Boundary(dir)
	if boundary == nil || boundary.Category == world.BoundaryOpen {
		return report
	}
	if amount <= 0 || boundary.Indestructible() || boundary.Broken() {
		report.Before, report.Remaining = boundary.Durability, boundary.Durability
		return report
	}

	report.Before = boundary.Durability
	broken := boundary.Damage(amount)
	report.Remaining = boundary.Durability
	report.Reason = ReasonDamage
	if !broken {
		return report
	}

	report.Reason = ReasonDestroy
	cell.Refresh()
	if neighbor, ok := b.grid.Neighbor(coord, dir); ok {
		neighbor.Refresh()
	}
	log.WithFields(log.Fields{
		"cell":     coord.String(),
		"dir":      dir.String(),
		"category": string(boundary.Category),
	}).Debug("boundary broken")
	return report
}

// DamageObstacleAt damages the first standing point obstacle in the cell at
// coord. The obstacle notifies its cell on destruction.
func (b *Builder) DamageObstacleAt(coord world.Coordinate, amount int) DamageReport {
	report := DamageReport{Coord: coord}
	cell, ok := b.grid.GetCell(coord)
	if !ok || amount <= 0 {
		return report
	}
	for _, occupant := range cell.Occupants() {
		obstacle, ok := occupant.(*world.PointObstacle)
		if !ok || !obstacle.Standing() || obstacle.MaxDurability <= 0 {
			continue
		}
		report.Before = obstacle.Durability
		report.Reason = ReasonDamage
		if obstacle.Damage(amount) {
			report.Reason = ReasonDestroy
			log.WithFields(log.Fields{"cell": coord.String(), "obstacle": obstacle.Name}).Debug("obstacle destroyed")
		}
		report.Remaining = obstacle.Durability
		return report
	}
	return report
}
