package pathfinding

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/terry419/fakecom-sub000/internal/world"
)

// Grid is the world collaborator the searches read cells from.
type Grid interface {
	GetCell(coord world.Coordinate) (*world.Cell, bool)
}

// Option tunes a Pathfinder.
type Option func(*Pathfinder)

// WithMaxSearchNodes bounds the number of A* expansions. Zero disables the
// limit.
func WithMaxSearchNodes(n int) Option {
	return func(p *Pathfinder) {
		if n > 0 {
			p.maxNodes = n
		}
	}
}

// Pathfinder performs breadth-first reachability and A* searches over same
// level cells. It holds no per-search state.
type Pathfinder struct {
	grid     Grid
	maxNodes int
}

func New(grid Grid, opts ...Option) *Pathfinder {
	p := &Pathfinder{grid: grid}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetReachableTiles returns every coordinate reachable from start within
// budget steps, including start itself.
func (p *Pathfinder) GetReachableTiles(start world.Coordinate, budget int) mapset.Set[world.Coordinate] {
	return p.GetReachableTilesContext(context.Background(), start, budget)
}

// GetReachableTilesContext is GetReachableTiles reporting to the profiler
// carried by ctx.
func (p *Pathfinder) GetReachableTilesContext(ctx context.Context, start world.Coordinate, budget int) mapset.Set[world.Coordinate] {
	costs := p.ReachableCostsContext(ctx, start, budget)
	set := mapset.New[world.Coordinate]()
	for coord := range costs {
		set.Put(coord)
	}
	return set
}

// ReachableCosts returns the minimal step cost of every reachable coordinate.
func (p *Pathfinder) ReachableCosts(start world.Coordinate, budget int) map[world.Coordinate]int {
	return p.ReachableCostsContext(context.Background(), start, budget)
}

func (p *Pathfinder) ReachableCostsContext(ctx context.Context, start world.Coordinate, budget int) map[world.Coordinate]int {
	costs := make(map[world.Coordinate]int)
	if p == nil || p.grid == nil {
		return costs
	}
	if _, ok := p.grid.GetCell(start); !ok {
		return costs
	}
	if budget < 0 {
		budget = 0
	}
	profiler := profilerFromContext(ctx)
	if profiler != nil {
		profiler.RecordSearch()
	}

	costs[start] = 0
	queue := []world.Coordinate{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		cost := costs[current]
		if cost >= budget {
			continue
		}
		cell, ok := p.grid.GetCell(current)
		if !ok {
			continue
		}
		if profiler != nil {
			profiler.RecordNodeExpanded()
		}

		generated := 0
		for _, dir := range world.Directions {
			next, ok := p.step(cell, dir)
			if !ok {
				continue
			}
			generated++
			nextCost := cost + 1
			if known, seen := costs[next]; seen && known <= nextCost {
				continue
			}
			costs[next] = nextCost
			queue = append(queue, next)
			if profiler != nil {
				profiler.RecordQueuePush()
			}
		}
		if profiler != nil {
			profiler.RecordNeighborGeneration(generated)
		}
	}
	return costs
}

// FindPath returns the shortest path from start to end, excluding start and
// ending with end. It returns an empty slice when start equals end and nil
// when no path exists.
func (p *Pathfinder) FindPath(start, end world.Coordinate) []world.Coordinate {
	return p.FindPathContext(context.Background(), start, end)
}

// FindPathContext is FindPath honouring cancellation and the profiler carried
// by ctx.
func (p *Pathfinder) FindPathContext(ctx context.Context, start, end world.Coordinate) []world.Coordinate {
	if p == nil || p.grid == nil {
		return nil
	}
	if start.Level != end.Level {
		return nil
	}
	endCell, ok := p.grid.GetCell(end)
	if !ok || !endCell.IsWalkable() {
		return nil
	}
	if start == end {
		return []world.Coordinate{}
	}
	if _, ok := p.grid.GetCell(start); !ok {
		return nil
	}

	profiler := profilerFromContext(ctx)
	if profiler != nil {
		profiler.RecordSearch()
	}

	open := NewPriorityQueue[world.Coordinate]()
	open.Push(start, world.Manhattan(start, end))
	cameFrom := map[world.Coordinate]world.Coordinate{}
	gScore := map[world.Coordinate]int{start: 0}
	closed := map[world.Coordinate]struct{}{}
	expanded := 0

	for open.Len() > 0 {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		current, _, _ := open.Pop()
		if current == end {
			return reconstructPath(cameFrom, start, end)
		}
		if _, done := closed[current]; done {
			continue
		}
		closed[current] = struct{}{}

		expanded++
		if p.maxNodes > 0 && expanded > p.maxNodes {
			log.WithFields(log.Fields{"start": start.String(), "end": end.String(), "limit": p.maxNodes}).Debug("path search node limit reached")
			return nil
		}
		if profiler != nil {
			profiler.RecordNodeExpanded()
		}

		cell, ok := p.grid.GetCell(current)
		if !ok {
			continue
		}
		generated := 0
		for _, dir := range world.Directions {
			next, ok := p.step(cell, dir)
			if !ok {
				continue
			}
			generated++
			tentative := gScore[current] + 1
			if score, seen := gScore[next]; seen && tentative >= score {
				continue
			}
			cameFrom[next] = current
			gScore[next] = tentative
			if profiler != nil {
				profiler.RecordHeuristicEvaluation()
				profiler.RecordQueuePush()
			}
			open.Push(next, tentative+world.Manhattan(next, end))
		}
		if profiler != nil {
			profiler.RecordNeighborGeneration(generated)
		}
	}

	log.WithFields(log.Fields{"start": start.String(), "end": end.String()}).Debug("no path")
	return nil
}

// CanStep reports whether a unit may move from one coordinate to an adjacent
// one under the search rules.
func (p *Pathfinder) CanStep(from, to world.Coordinate) bool {
	if p == nil || p.grid == nil {
		return false
	}
	dir, ok := world.DirectionBetween(from, to)
	if !ok {
		return false
	}
	cell, ok := p.grid.GetCell(from)
	if !ok {
		return false
	}
	_, ok = p.step(cell, dir)
	return ok
}

// step applies the shared legality rule for moving out of from toward dir.
func (p *Pathfinder) step(from *world.Cell, dir world.Direction) (world.Coordinate, bool) {
	target := from.Coord().Neighbor(dir)
	next, ok := p.grid.GetCell(target)
	if !ok || !next.IsWalkable() {
		return target, false
	}
	if from.BlockedToward(dir) {
		return target, false
	}
	// Reverse slot of the same partition; normally the identical boundary.
	if next.BlockedToward(dir.Opposite()) {
		return target, false
	}
	return target, true
}

func reconstructPath(cameFrom map[world.Coordinate]world.Coordinate, start, end world.Coordinate) []world.Coordinate {
	var path []world.Coordinate
	current := end
	for current != start {
		path = append(path, current)
		prev, ok := cameFrom[current]
		if !ok {
			return nil
		}
		current = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
