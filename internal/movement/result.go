package movement

import "github.com/terry419/fakecom-sub000/internal/world"

// Result is the movement-execution contract produced by the planner. The
// valid segment can be executed; the invalid segment is only drawn.
type Result struct {
	valid    []world.Coordinate
	invalid  []world.Coordinate
	blocked  bool
	required int
}

// Empty is the shared "no path" result.
var Empty = &Result{blocked: true}

func newResult(valid, invalid []world.Coordinate, blocked bool) *Result {
	return &Result{
		valid:    valid,
		invalid:  invalid,
		blocked:  blocked,
		required: len(valid),
	}
}

// ValidPath returns a copy of the executable steps.
func (r *Result) ValidPath() []world.Coordinate {
	return append([]world.Coordinate(nil), r.valid...)
}

// InvalidPath returns a copy of the steps beyond budget or past an
// obstruction.
func (r *Result) InvalidPath() []world.Coordinate {
	return append([]world.Coordinate(nil), r.invalid...)
}

func (r *Result) IsBlocked() bool { return r.blocked }

// RequiredAPForValidPath is the action point cost of the valid segment.
func (r *Result) RequiredAPForValidPath() int { return r.required }

// HasAnyPath reports whether there is anything to show.
func (r *Result) HasAnyPath() bool {
	return len(r.valid) > 0 || len(r.invalid) > 0
}

// IsFullyValid reports whether the whole route can be executed.
func (r *Result) IsFullyValid() bool {
	return len(r.valid) > 0 && len(r.invalid) == 0 && !r.blocked
}

// IsValidButDestinationBlocked reports a partial route stopped by an
// obstruction.
func (r *Result) IsValidButDestinationBlocked() bool {
	return len(r.valid) > 0 && r.blocked
}

// CanAfford reports whether budget covers the valid segment.
func (r *Result) CanAfford(budget int) bool {
	return r.required <= budget
}

// Destination returns the last executable step.
func (r *Result) Destination() (world.Coordinate, bool) {
	if len(r.valid) == 0 {
		return world.Coordinate{}, false
	}
	return r.valid[len(r.valid)-1], true
}
