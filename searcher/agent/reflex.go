package agent

import (
	"golang.org/x/exp/rand"

	"multiagent/game"
	"multiagent/searcher"
)

// ReflexAgent looks a single protagonist move ahead and breaks ties at random.
type ReflexAgent struct {
	evaluate game.Evaluate
	rng      *rand.Rand
}

func NewReflexAgent(evaluate game.Evaluate, rng *rand.Rand) *ReflexAgent {
	if evaluate == nil {
		evaluate = game.EvaluateScore
	}
	return &ReflexAgent{evaluate: evaluate, rng: rng}
}

func (a *ReflexAgent) GetAction(state game.State) (game.Action, error) {
	actions := state.LegalActions(game.Protagonist)
	if len(actions) == 0 {
		return "", searcher.ErrNoLegalActions
	}

	var best []int
	var bestScore float64
	for i, action := range actions {
		next, err := state.Successor(game.Protagonist, action)
		if err != nil {
			return "", err
		}
		score := a.evaluate(next)
		switch {
		case len(best) == 0 || score > bestScore:
			best = []int{i}
			bestScore = score
		case score == bestScore:
			best = append(best, i)
		}
	}
	return actions[best[a.rng.Intn(len(best))]], nil
}
