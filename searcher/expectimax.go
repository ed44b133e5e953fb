package searcher

import "multiagent/game"

// ExpectimaxSearcher models every agent but the protagonist as picking uniformly at random
// among its legal actions.
type ExpectimaxSearcher struct {
	base
}

func NewExpectimax(options ...Option) *ExpectimaxSearcher {
	return &ExpectimaxSearcher{base: newBase(Expectimax, options)}
}

func (e *ExpectimaxSearcher) Search(state game.State) (Result, error) {
	next := game.NextAgent(game.Protagonist, state.NumAgents())
	return e.decide(state, func(child game.State) (float64, error) {
		if e.iterative {
			return e.iterate(child, next, 0, 0, 0)
		}
		return e.Value(child, next, 0)
	})
}

// Value returns the expectimax value of state with agent to act after rounds completed rounds.
func (e *ExpectimaxSearcher) Value(state game.State, agent, rounds int) (float64, error) {
	if agent == game.Protagonist {
		rounds++
	}
	actions, ok := e.expand(state, agent, rounds)
	if !ok {
		return e.leaf(state), nil
	}

	next := game.NextAgent(agent, state.NumAgents())
	value := extremum(game.Protagonist)
	sum := 0.0
	for _, action := range actions {
		child, err := e.successor(state, agent, action)
		if err != nil {
			return 0, err
		}
		v, err := e.Value(child, next, rounds)
		if err != nil {
			return 0, err
		}
		if agent == game.Protagonist {
			value = max(value, v)
		} else {
			sum += v
		}
	}
	if agent == game.Protagonist {
		return value, nil
	}
	return mean(sum, len(actions)), nil
}

// mean averages sum over n equally likely actions. Leaves are filtered before averaging, so
// n is never zero.
func mean(sum float64, n int) float64 {
	if n == 0 {
		panic("cannot average over an empty action set")
	}
	return sum / float64(n)
}
