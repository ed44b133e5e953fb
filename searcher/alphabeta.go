package searcher

import (
	"math"

	"multiagent/game"
)

// AlphaBetaSearcher returns the same decisions as MinimaxSearcher while skipping subtrees that
// cannot change the root decision.
type AlphaBetaSearcher struct {
	base
}

func NewAlphaBeta(options ...Option) *AlphaBetaSearcher {
	return &AlphaBetaSearcher{base: newBase(AlphaBeta, options)}
}

// Search threads alpha across sibling root actions so later actions are searched with the
// bound established by earlier ones.
func (a *AlphaBetaSearcher) Search(state game.State) (Result, error) {
	a.metrics.Start(a.algorithm.String(), a.depth)

	actions := state.LegalActions(game.Protagonist)
	if len(actions) == 0 {
		return Result{}, ErrNoLegalActions
	}

	next := game.NextAgent(game.Protagonist, state.NumAgents())
	alpha, beta := math.Inf(-1), math.Inf(1)
	scores := make([]float64, len(actions))
	best := -1
	for i, action := range actions {
		child, err := a.successor(state, game.Protagonist, action)
		if err != nil {
			return Result{}, err
		}
		var v float64
		if a.iterative {
			v, err = a.iterate(child, next, 0, alpha, beta)
		} else {
			v, err = a.Value(child, next, 0, alpha, beta)
		}
		if err != nil {
			return Result{}, err
		}
		scores[i] = v
		if best < 0 || v > scores[best] {
			best = i
		}
		alpha = max(alpha, scores[best])
	}

	return a.complete(actions, scores, best), nil
}

// Value returns the alpha-beta value of state. alpha is the value the protagonist can already
// guarantee on the path to the root and beta the value the minimizing agents can guarantee.
func (a *AlphaBetaSearcher) Value(state game.State, agent, rounds int, alpha, beta float64) (float64, error) {
	if agent == game.Protagonist {
		rounds++
	}
	actions, ok := a.expand(state, agent, rounds)
	if !ok {
		return a.leaf(state), nil
	}

	next := game.NextAgent(agent, state.NumAgents())
	value := extremum(agent)
	for _, action := range actions {
		child, err := a.successor(state, agent, action)
		if err != nil {
			return 0, err
		}
		v, err := a.Value(child, next, rounds, alpha, beta)
		if err != nil {
			return 0, err
		}
		if agent == game.Protagonist {
			value = max(value, v)
			if value > beta {
				a.metrics.AddCutoff()
				return value, nil
			}
			alpha = max(alpha, value)
		} else {
			value = min(value, v)
			if value < alpha {
				a.metrics.AddCutoff()
				return value, nil
			}
			beta = min(beta, value)
		}
	}
	return value, nil
}
