package experiments

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/coder/quartz"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/game/tree"
	"multiagent/searcher"
)

var ErrDisagreement = errors.New("alpha-beta disagrees with minimax")

var algorithms = []searcher.Algorithm{searcher.Minimax, searcher.AlphaBeta, searcher.Expectimax}

// Config describes a benchmark over random game trees.
type Config struct {
	Depths    []int
	Trees     int // Per depth
	Agents    int
	Branching int
	Seed      uint64
	Evaluate  game.Evaluate
	Iterative bool
	Parallel  int // Trees searched concurrently, 0 uses the number of CPUs
}

// Run searches every tree with every algorithm and returns one record per search, ordered by
// depth, tree and algorithm. Each search runs on a single goroutine; trees are searched
// concurrently.
func Run(ctx context.Context, cfg Config, clock quartz.Clock) ([]metrics.SearchRecord, error) {
	if cfg.Trees <= 0 || cfg.Agents <= 0 || cfg.Branching <= 0 {
		return nil, fmt.Errorf("trees, agents and branching must be positive")
	}
	for _, depth := range cfg.Depths {
		if depth <= 0 {
			return nil, fmt.Errorf("depth must be positive, got %d", depth)
		}
	}
	parallel := cfg.Parallel
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}

	records := make([]metrics.SearchRecord, len(cfg.Depths)*cfg.Trees*len(algorithms))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for di, depth := range cfg.Depths {
		log.Info().Msgf("searching %d trees at depth %d...", cfg.Trees, depth)

		for i := 0; i < cfg.Trees; i++ {
			slot := (di*cfg.Trees + i) * len(algorithms)
			seed := cfg.Seed + uint64(slot)
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				generator := tree.Generator{
					Agents:    cfg.Agents,
					Plies:     depth * cfg.Agents,
					Branching: cfg.Branching,
				}
				state := generator.Generate(rand.New(rand.NewSource(seed)))
				return searchTree(state, i, depth, cfg, clock, records[slot:slot+len(algorithms)])
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Info().Msgf("completed %d searches", len(records))
	return records, nil
}

// searchTree fills out with one record per algorithm.
func searchTree(state game.State, id, depth int, cfg Config, clock quartz.Clock, out []metrics.SearchRecord) error {
	results := make(map[searcher.Algorithm]searcher.Result, len(algorithms))
	for i, alg := range algorithms {
		options := []searcher.Option{
			searcher.WithDepth(depth),
			searcher.WithEvaluationFn(cfg.Evaluate),
			searcher.WithMetrics(clock),
		}
		if cfg.Iterative {
			options = append(options, searcher.WithIterative())
		}

		result, err := searcher.New(alg, options...).Search(state)
		if err != nil {
			return fmt.Errorf("tree %d at depth %d with %s: %w", id, depth, alg, err)
		}
		results[alg] = result
		out[i] = metrics.SearchRecord{
			Tree:         id,
			Action:       string(result.Action),
			Value:        result.Value,
			SearchMetric: result.Metrics,
		}
	}

	mm, ab := results[searcher.Minimax], results[searcher.AlphaBeta]
	if mm.Action != ab.Action || mm.Value != ab.Value {
		return fmt.Errorf("%w: tree %d at depth %d: minimax %q=%v, alpha-beta %q=%v",
			ErrDisagreement, id, depth, mm.Action, mm.Value, ab.Action, ab.Value)
	}
	return nil
}
