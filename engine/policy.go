package engine

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"

	"multiagent/game"
)

var ErrUnknownPolicy = errors.New("unknown adversary policy")

// Policy picks actions for the agents the engine drives itself.
type Policy interface {
	Choose(state game.State, agent int) (game.Action, error)
}

// RandomPolicy picks uniformly among the legal actions, matching the model expectimax assumes.
type RandomPolicy struct {
	rng *rand.Rand
}

func NewRandomPolicy(seed uint64) *RandomPolicy {
	return &RandomPolicy{rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomPolicy) Choose(state game.State, agent int) (game.Action, error) {
	actions := state.LegalActions(agent)
	if len(actions) == 0 {
		return "", fmt.Errorf("agent %d has no legal actions", agent)
	}
	return actions[p.rng.Intn(len(actions))], nil
}

// FirstPolicy always plays the first legal action.
type FirstPolicy struct{}

func (FirstPolicy) Choose(state game.State, agent int) (game.Action, error) {
	actions := state.LegalActions(agent)
	if len(actions) == 0 {
		return "", fmt.Errorf("agent %d has no legal actions", agent)
	}
	return actions[0], nil
}

// GreedyPolicy plays the action minimizing the evaluation one ply ahead, the first one on ties.
type GreedyPolicy struct {
	Evaluate game.Evaluate
}

func (p GreedyPolicy) Choose(state game.State, agent int) (game.Action, error) {
	actions := state.LegalActions(agent)
	if len(actions) == 0 {
		return "", fmt.Errorf("agent %d has no legal actions", agent)
	}
	evaluate := p.Evaluate
	if evaluate == nil {
		evaluate = game.EvaluateScore
	}

	best := -1
	bestValue := 0.0
	for i, action := range actions {
		next, err := state.Successor(agent, action)
		if err != nil {
			return "", err
		}
		if v := evaluate(next); best < 0 || v < bestValue {
			best = i
			bestValue = v
		}
	}
	return actions[best], nil
}

// ParsePolicy returns the policy called name. seed only matters to the random policy.
func ParsePolicy(name string, seed uint64) (Policy, error) {
	switch name {
	case "random":
		return NewRandomPolicy(seed), nil
	case "first":
		return FirstPolicy{}, nil
	case "greedy":
		return GreedyPolicy{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}
