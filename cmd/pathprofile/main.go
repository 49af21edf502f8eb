package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/terry419/fakecom-sub000/internal/config"
	"github.com/terry419/fakecom-sub000/internal/movement"
	"github.com/terry419/fakecom-sub000/internal/pathfinding"
	"github.com/terry419/fakecom-sub000/internal/terrain"
	"github.com/terry419/fakecom-sub000/internal/world"
)

type pathJob struct {
	start world.Coordinate
	goal  world.Coordinate
}

// generateAuthoring scatters walls, windows and obstacles over a cols x rows
// floor using a coordinate hash so runs are repeatable.
func generateAuthoring(cols, rows, levels int) terrain.Authoring {
	authoring := make(terrain.Authoring)
	for level := 0; level < levels; level++ {
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				seed := hashCoord(col, row, level)
				var data terrain.CellAuthoring
				switch {
				case seed%7 == 0:
					data.North = "wall"
				case seed%13 == 0:
					data.North = "window"
				}
				switch {
				case seed%11 == 0:
					data.East = "wall"
				case seed%19 == 0:
					data.East = "door"
				}
				switch {
				case seed%23 == 0:
					data.Obstacles = []string{"pillar"}
				case seed%29 == 0:
					data.Obstacles = []string{"crate"}
				}
				if data.North != "" || data.East != "" || len(data.Obstacles) > 0 {
					authoring[world.Coordinate{Col: col, Row: row, Level: level}] = data
				}
			}
		}
	}
	return authoring
}

func main() {
	var (
		configPath    = flag.String("config", "", "path to a YAML config file")
		totalRequests = flag.Int("requests", 2000, "number of pathfinding requests to issue")
		concurrency   = flag.Int("concurrency", runtime.NumCPU(), "number of concurrent workers")
		cols          = flag.Int("cols", 64, "grid columns")
		rows          = flag.Int("rows", 64, "grid rows")
		levels        = flag.Int("levels", 1, "grid levels")
		mobility      = flag.Int("mobility", 0, "reachable-area budget; 0 uses the configured default")
		timeout       = flag.Duration("timeout", 250*time.Millisecond, "per-request timeout")
		seed          = flag.Int64("seed", 1337, "random seed for start/goal selection")
	)
	flag.Parse()

	if *totalRequests <= 0 {
		fmt.Fprintln(os.Stderr, "requests must be positive")
		os.Exit(1)
	}
	if *concurrency <= 0 {
		fmt.Fprintln(os.Stderr, "concurrency must be positive")
		os.Exit(1)
	}
	if *cols <= 0 || *rows <= 0 || *levels <= 0 {
		fmt.Fprintln(os.Stderr, "grid dimensions must be positive")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := config.ApplyLogging(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "configure logging: %v\n", err)
		os.Exit(1)
	}
	if *mobility <= 0 {
		*mobility = cfg.Pathfinding.DefaultMobility
	}

	grid := world.NewRectGrid(*cols, *rows, *levels, world.FloorConcrete)
	builder := terrain.NewBuilder(grid, cfg.Catalog())
	summary := builder.Build(generateAuthoring(*cols, *rows, *levels))

	candidates := collectWalkable(grid)
	if len(candidates) < 2 {
		fmt.Fprintln(os.Stderr, "not enough walkable cells to profile")
		os.Exit(1)
	}

	finder := pathfinding.New(grid, pathfinding.WithMaxSearchNodes(cfg.Pathfinding.MaxSearchNodes))
	metrics := &pathfinding.SearchMetrics{}
	ctx := pathfinding.ContextWithProfiler(context.Background(), metrics.Profiler())

	jobs := make(chan pathJob)
	go func() {
		defer close(jobs)
		rng := rand.New(rand.NewSource(*seed))
		for i := 0; i < *totalRequests; i++ {
			start := candidates[rng.Intn(len(candidates))]
			goal := candidates[rng.Intn(len(candidates))]
			for start == goal {
				goal = candidates[rng.Intn(len(candidates))]
			}
			goal.Level = start.Level
			jobs <- pathJob{start: start, goal: goal}
		}
	}()

	var (
		wg                 sync.WaitGroup
		totalSuccessLength int64
		totalReachable     int64
		totalRouteDuration int64
		successes          int64
		failures           int64
		timeouts           int64
	)

	worker := func() {
		defer wg.Done()
		for job := range jobs {
			routeCtx, cancel := context.WithTimeout(ctx, *timeout)
			startTime := time.Now()
			path := finder.FindPathContext(routeCtx, job.start, job.goal)
			area := finder.GetReachableTilesContext(routeCtx, job.start, *mobility)
			duration := time.Since(startTime)
			expired := routeCtx.Err() == context.DeadlineExceeded
			cancel()

			atomic.AddInt64(&totalRouteDuration, int64(duration))
			atomic.AddInt64(&totalReachable, int64(area.Size()))

			if expired {
				atomic.AddInt64(&timeouts, 1)
				continue
			}
			if path == nil {
				atomic.AddInt64(&failures, 1)
				continue
			}
			atomic.AddInt64(&successes, 1)
			atomic.AddInt64(&totalSuccessLength, int64(len(path)))
		}
	}

	wg.Add(*concurrency)
	for i := 0; i < *concurrency; i++ {
		go worker()
	}

	startWall := time.Now()
	wg.Wait()
	wallDuration := time.Since(startWall)

	hits, misses := plannerCacheRun(grid, finder, candidates, *mobility, *seed)

	snap := metrics.Snapshot()
	totalRequests64 := int64(*totalRequests)
	avgDuration := time.Duration(totalRouteDuration / totalRequests64)
	avgPathLength := 0.0
	succ := atomic.LoadInt64(&successes)
	if succ > 0 {
		avgPathLength = float64(atomic.LoadInt64(&totalSuccessLength)) / float64(succ)
	}
	hitRatio := 0.0
	if hits+misses > 0 {
		hitRatio = float64(hits) / float64(hits+misses) * 100
	}

	log.WithFields(log.Fields{
		"requests": *totalRequests,
		"workers":  *concurrency,
		"wall":     wallDuration.String(),
	}).Info("profile finished")

	fmt.Println("== Grid Pathfinding Profile ==")
	fmt.Printf("Grid: %dx%dx%d (%d cells, %d boundaries, %d blocking, %d obstacles)\n",
		*cols, *rows, *levels, summary.Cells, summary.Boundaries, summary.Blocking, summary.Obstacles)
	fmt.Printf("Requests: %d\n", *totalRequests)
	fmt.Printf("Concurrency: %d\n", *concurrency)
	fmt.Printf("Successes: %d, Failures: %d, Timeouts: %d\n", succ, atomic.LoadInt64(&failures), atomic.LoadInt64(&timeouts))
	fmt.Printf("Average path length (steps): %.2f\n", avgPathLength)
	fmt.Printf("Average reachable area (mobility %d): %.2f\n", *mobility, float64(atomic.LoadInt64(&totalReachable))/float64(totalRequests64))
	fmt.Printf("Average per-request duration: %s\n", avgDuration)
	fmt.Printf("Wall clock duration: %s\n", wallDuration)
	fmt.Printf("Searches: %d\n", snap.Searches)
	fmt.Printf("Average nodes expanded: %.2f\n", float64(snap.NodesExpanded)/float64(snap.Searches))
	fmt.Printf("Average heuristic evaluations: %.2f\n", float64(snap.HeuristicEvaluations)/float64(totalRequests64))
	fmt.Printf("Queue pushes: %d\n", snap.QueuePushes)
	fmt.Printf("Planner cache hit ratio: %.2f%% (%d hits, %d misses)\n", hitRatio, hits, misses)
}

// plannerCacheRun replays hover-style queries through a single planner, where
// the cursor lingers on each target for a few frames.
func plannerCacheRun(grid *world.Grid, finder *pathfinding.Pathfinder, candidates []world.Coordinate, mobility int, seed int64) (hits, misses int64) {
	planner := movement.NewPlanner(grid, finder)
	rng := rand.New(rand.NewSource(seed + 1))
	unit := &movement.Trooper{Name: "profiler", Pos: candidates[0], AP: mobility}
	var last *movement.Result
	for i := 0; i < 200; i++ {
		target := candidates[rng.Intn(len(candidates))]
		target.Level = unit.Pos.Level
		for frame := 0; frame < 4; frame++ {
			result := planner.CalculatePath(unit, target)
			if result != movement.Empty && result == last {
				hits++
			} else {
				misses++
			}
			last = result
		}
		if i%25 == 24 {
			grid.BumpStructuralVersion()
		}
	}
	return hits, misses
}

func collectWalkable(grid *world.Grid) []world.Coordinate {
	coords := make([]world.Coordinate, 0, grid.Len())
	for _, coord := range grid.Coordinates() {
		if cell, ok := grid.GetCell(coord); ok && cell.IsWalkable() {
			coords = append(coords, coord)
		}
	}
	return coords
}

func hashCoord(x, y, z int) uint32 {
	h := uint32(x*374761393 + y*668265263 + z*362437)
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}
