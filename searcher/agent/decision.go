package agent

import (
	"fmt"

	"multiagent/game"
	"multiagent/searcher"
)

// DecisionAgent runs one game-tree search per protagonist turn.
type DecisionAgent struct {
	config   Config
	searcher searcher.Searcher
}

// Configure returns a minimax agent using the named evaluation function and depth.
func Configure(evaluation string, depth int) (*DecisionAgent, error) {
	cfg := DefaultConfig()
	cfg.Evaluation = evaluation
	cfg.Depth = depth
	return NewDecisionAgent(cfg)
}

// NewDecisionAgent validates cfg and resolves its evaluation function and algorithm. Extra
// searcher options are applied after the ones derived from cfg.
func NewDecisionAgent(cfg Config, options ...searcher.Option) (*DecisionAgent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	evaluate, err := cfg.lookupEvaluation()
	if err != nil {
		return nil, err
	}
	algorithm, err := searcher.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	opts := []searcher.Option{
		searcher.WithDepth(cfg.Depth),
		searcher.WithEvaluationFn(evaluate),
	}
	if cfg.Iterative {
		opts = append(opts, searcher.WithIterative())
	}
	opts = append(opts, options...)

	return &DecisionAgent{
		config:   cfg,
		searcher: searcher.New(algorithm, opts...),
	}, nil
}

func (a *DecisionAgent) Config() Config {
	return a.config
}

func (a *DecisionAgent) Algorithm() searcher.Algorithm {
	return a.searcher.Algorithm()
}

func (a *DecisionAgent) GetAction(state game.State) (game.Action, error) {
	result, err := a.Search(state)
	if err != nil {
		return "", err
	}
	return result.Action, nil
}

// Search returns the full root decision, including the value of every root action.
func (a *DecisionAgent) Search(state game.State) (searcher.Result, error) {
	return a.searcher.Search(state)
}

// String describes the agent in logs.
func (a *DecisionAgent) String() string {
	return fmt.Sprintf("%s(depth=%d, evaluation=%s)", a.searcher.Algorithm(), a.config.Depth, a.config.Evaluation)
}
