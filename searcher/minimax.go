package searcher

import "multiagent/game"

// MinimaxSearcher assumes every agent but the protagonist plays to minimize the evaluation.
type MinimaxSearcher struct {
	base
}

func NewMinimax(options ...Option) *MinimaxSearcher {
	return &MinimaxSearcher{base: newBase(Minimax, options)}
}

func (m *MinimaxSearcher) Search(state game.State) (Result, error) {
	next := game.NextAgent(game.Protagonist, state.NumAgents())
	return m.decide(state, func(child game.State) (float64, error) {
		if m.iterative {
			return m.iterate(child, next, 0, 0, 0)
		}
		return m.Value(child, next, 0)
	})
}

// Value returns the minimax value of state with agent to act after rounds completed rounds.
// A new round starts whenever the protagonist is to act.
func (m *MinimaxSearcher) Value(state game.State, agent, rounds int) (float64, error) {
	if agent == game.Protagonist {
		rounds++
	}
	actions, ok := m.expand(state, agent, rounds)
	if !ok {
		return m.leaf(state), nil
	}

	next := game.NextAgent(agent, state.NumAgents())
	value := extremum(agent)
	for _, action := range actions {
		child, err := m.successor(state, agent, action)
		if err != nil {
			return 0, err
		}
		v, err := m.Value(child, next, rounds)
		if err != nil {
			return 0, err
		}
		if agent == game.Protagonist {
			value = max(value, v)
		} else {
			value = min(value, v)
		}
	}
	return value, nil
}
