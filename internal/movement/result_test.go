package movement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/terry419/fakecom-sub000/internal/world"
)

func TestEmptyResult(t *testing.T) {
	assert.True(t, Empty.IsBlocked())
	assert.Empty(t, Empty.ValidPath())
	assert.Empty(t, Empty.InvalidPath())
	assert.Zero(t, Empty.RequiredAPForValidPath())
	assert.False(t, Empty.HasAnyPath())
	assert.False(t, Empty.IsFullyValid())
	assert.False(t, Empty.IsValidButDestinationBlocked())
	_, ok := Empty.Destination()
	assert.False(t, ok)
}

func TestResultClassification(t *testing.T) {
	a, b, c := at(1, 0), at(2, 0), at(3, 0)
	tests := []struct {
		name              string
		result            *Result
		fullyValid        bool
		destinationBlocks bool
		required          int
	}{
		{name: "fully valid", result: newResult([]world.Coordinate{a, b}, nil, false), fullyValid: true, required: 2},
		{name: "over budget", result: newResult([]world.Coordinate{a}, []world.Coordinate{b, c}, false), required: 1},
		{name: "stopped by obstruction", result: newResult([]world.Coordinate{a}, []world.Coordinate{b}, true), destinationBlocks: true, required: 1},
		{name: "blocked at first step", result: newResult(nil, []world.Coordinate{a, b}, true)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.result.HasAnyPath())
			assert.Equal(t, tt.fullyValid, tt.result.IsFullyValid())
			assert.Equal(t, tt.destinationBlocks, tt.result.IsValidButDestinationBlocked())
			assert.Equal(t, tt.required, tt.result.RequiredAPForValidPath())
			assert.Equal(t, len(tt.result.ValidPath()), tt.result.RequiredAPForValidPath())
		})
	}
}

func TestResultPathsAreCopies(t *testing.T) {
	r := newResult([]world.Coordinate{at(1, 0)}, []world.Coordinate{at(2, 0)}, false)
	valid := r.ValidPath()
	valid[0] = at(9, 9)
	invalid := r.InvalidPath()
	invalid[0] = at(9, 9)

	assert.Equal(t, []world.Coordinate{at(1, 0)}, r.ValidPath())
	assert.Equal(t, []world.Coordinate{at(2, 0)}, r.InvalidPath())
	dest, ok := r.Destination()
	assert.True(t, ok)
	assert.Equal(t, at(1, 0), dest)
	assert.True(t, r.CanAfford(1))
	assert.False(t, r.CanAfford(0))
}
