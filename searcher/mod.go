package searcher

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/coder/quartz"
	"github.com/rs/zerolog/log"

	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/meta"
	"multiagent/utils"
)

var (
	ErrNoLegalActions   = errors.New("no legal actions for the protagonist")
	ErrUnknownAlgorithm = errors.New("unknown search algorithm")
)

type Algorithm int

const (
	Minimax Algorithm = iota
	AlphaBeta
	Expectimax
)

var algorithmNames = map[Algorithm]string{
	Minimax:    "minimax",
	AlphaBeta:  "alphabeta",
	Expectimax: "expectimax",
}

func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// ParseAlgorithm accepts the canonical names and a few common spellings.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "minimax":
		return Minimax, nil
	case "alphabeta", "alpha-beta", "ab":
		return AlphaBeta, nil
	case "expectimax":
		return Expectimax, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Result is the outcome of a root decision.
type Result struct {
	Action game.Action
	Value  float64
	// Actions lists the root actions in legal-action order and Scores their values. Alpha-beta
	// reports bounds for siblings whose subtrees were pruned.
	Actions []game.Action
	Scores  []float64
	Metrics metrics.SearchMetric
}

// Searcher picks the protagonist's action by exploring the game tree to a fixed depth.
// Searchers keep scratch space between calls and are not safe for concurrent use.
type Searcher interface {
	Search(state game.State) (Result, error)
	Algorithm() Algorithm
}

type Option func(b *base)

// WithDepth sets the horizon in rounds. It panics on non-positive depths; configuration layers
// validate user input before building searchers.
func WithDepth(depth int) Option {
	if depth <= 0 {
		panic(fmt.Sprintf("search depth must be positive, got %d", depth))
	}
	return func(b *base) {
		b.depth = depth
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(b *base) {
		if evaluate != nil {
			b.evaluate = evaluate
		}
	}
}

// WithMetrics records per-search counters timed by clock.
func WithMetrics(clock quartz.Clock) Option {
	return func(b *base) {
		b.metrics = metrics.NewCollector(clock)
	}
}

// WithIterative replaces call-stack recursion with an explicit stack of frames.
func WithIterative() Option {
	return func(b *base) {
		b.iterative = true
	}
}

// New returns the searcher implementing alg.
func New(alg Algorithm, options ...Option) Searcher {
	switch alg {
	case Minimax:
		return NewMinimax(options...)
	case AlphaBeta:
		return NewAlphaBeta(options...)
	case Expectimax:
		return NewExpectimax(options...)
	}
	panic(fmt.Sprintf("unexpected algorithm %d", alg))
}

// base holds what every searcher shares: the horizon, the evaluation function and the
// traversal scratch space.
type base struct {
	algorithm Algorithm
	depth     int
	evaluate  game.Evaluate
	iterative bool
	metrics   metrics.Collector
	stack     []frame
}

func newBase(alg Algorithm, options []Option) base {
	b := base{ // Default values
		algorithm: alg,
		depth:     meta.DefaultDepth,
		evaluate:  game.EvaluateScore,
		metrics:   metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(&b)
	}
	return b
}

func (b *base) Algorithm() Algorithm {
	return b.algorithm
}

func (b *base) Depth() int {
	return b.depth
}

// expand returns the actions to explore from state, or false when state is a leaf: the
// horizon has been reached or the acting agent cannot move.
func (b *base) expand(state game.State, agent, rounds int) ([]game.Action, bool) {
	if rounds >= b.depth {
		return nil, false
	}
	actions := state.LegalActions(agent)
	return actions, len(actions) > 0
}

func (b *base) leaf(state game.State) float64 {
	b.metrics.AddEvaluation()
	return b.evaluate(state)
}

func (b *base) successor(state game.State, agent int, action game.Action) (game.State, error) {
	next, err := state.Successor(agent, action)
	if err != nil {
		return nil, fmt.Errorf("agent %d playing %q: %w", agent, action, err)
	}
	b.metrics.AddNode()
	return next, nil
}

// decide scores every root action with value and keeps the first action achieving the maximum.
func (b *base) decide(state game.State, value func(next game.State) (float64, error)) (Result, error) {
	b.metrics.Start(b.algorithm.String(), b.depth)

	actions := state.LegalActions(game.Protagonist)
	if len(actions) == 0 {
		return Result{}, ErrNoLegalActions
	}

	scores := make([]float64, len(actions))
	for i, action := range actions {
		next, err := b.successor(state, game.Protagonist, action)
		if err != nil {
			return Result{}, err
		}
		v, err := value(next)
		if err != nil {
			return Result{}, err
		}
		scores[i] = v
	}

	return b.complete(actions, scores, utils.FirstMax(scores)), nil
}

func (b *base) complete(actions []game.Action, scores []float64, best int) Result {
	result := Result{
		Action:  actions[best],
		Value:   scores[best],
		Actions: actions,
		Scores:  scores,
		Metrics: b.metrics.Complete(),
	}
	log.Debug().
		Str("algorithm", b.algorithm.String()).
		Int("depth", b.depth).
		Str("action", string(result.Action)).
		Float64("value", result.Value).
		Int("nodes", result.Metrics.Nodes).
		Msg("search complete")
	return result
}

// extremum returns the neutral starting value of the acting agent.
func extremum(agent int) float64 {
	if agent == game.Protagonist {
		return math.Inf(-1)
	}
	return math.Inf(1)
}
