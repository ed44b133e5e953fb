package searcher

import (
	"math"

	"multiagent/game"
)

// frame is one interior node of an iterative traversal. Frames live in base.stack, indexed by
// their distance from the node the traversal started at, and are reused across searches.
type frame struct {
	state   game.State
	agent   int
	rounds  int
	actions []game.Action
	next    int     // Index of the next action to explore
	value   float64 // Running max or min, or the running sum for chance agents
	alpha   float64
	beta    float64
}

// iterate computes the same value as the recursive Value of the searcher's algorithm without
// growing the call stack. alpha and beta are only read by alpha-beta.
func (b *base) iterate(state game.State, agent, rounds int, alpha, beta float64) (float64, error) {
	if b.algorithm != AlphaBeta {
		alpha, beta = math.Inf(-1), math.Inf(1)
	}
	b.stack = b.stack[:0]
	defer func() {
		clear(b.stack[:cap(b.stack)])
		b.stack = b.stack[:0]
	}()

	result, isLeaf := b.enter(state, agent, rounds, alpha, beta)
	if isLeaf {
		return result, nil
	}

	pending := false // result holds the value of a child of the top frame
	for len(b.stack) > 0 {
		top := len(b.stack) - 1
		f := &b.stack[top]

		if pending {
			pending = false
			if b.fold(f, result) {
				result = f.value
				b.stack = b.stack[:top]
				pending = true
				continue
			}
		}

		if f.next == len(f.actions) {
			result = b.finish(f)
			b.stack = b.stack[:top]
			pending = true
			continue
		}

		action := f.actions[f.next]
		f.next++
		child, err := b.successor(f.state, f.agent, action)
		if err != nil {
			return 0, err
		}
		// enter may grow the stack, so f must not be used past this call.
		v, isLeaf := b.enter(child, game.NextAgent(f.agent, f.state.NumAgents()), f.rounds, f.alpha, f.beta)
		if isLeaf {
			result = v
			pending = true
		}
	}
	return result, nil
}

// enter pushes a frame for state, or evaluates it when it is a leaf.
func (b *base) enter(state game.State, agent, rounds int, alpha, beta float64) (float64, bool) {
	if agent == game.Protagonist {
		rounds++
	}
	actions, ok := b.expand(state, agent, rounds)
	if !ok {
		return b.leaf(state), true
	}

	value := extremum(agent)
	if b.algorithm == Expectimax && agent != game.Protagonist {
		value = 0
	}
	b.stack = append(b.stack, frame{
		state:   state,
		agent:   agent,
		rounds:  rounds,
		actions: actions,
		value:   value,
		alpha:   alpha,
		beta:    beta,
	})
	return 0, false
}

// fold merges a child's value into f and reports whether the remaining children are cut off.
func (b *base) fold(f *frame, v float64) bool {
	switch {
	case f.agent == game.Protagonist:
		f.value = max(f.value, v)
		if b.algorithm == AlphaBeta {
			if f.value > f.beta {
				b.metrics.AddCutoff()
				return true
			}
			f.alpha = max(f.alpha, f.value)
		}
	case b.algorithm == Expectimax:
		f.value += v
	default:
		f.value = min(f.value, v)
		if b.algorithm == AlphaBeta {
			if f.value < f.alpha {
				b.metrics.AddCutoff()
				return true
			}
			f.beta = min(f.beta, f.value)
		}
	}
	return false
}

func (b *base) finish(f *frame) float64 {
	if b.algorithm == Expectimax && f.agent != game.Protagonist {
		return mean(f.value, len(f.actions))
	}
	return f.value
}
