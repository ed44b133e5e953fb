package searcher

import (
	"fmt"

	"golang.org/x/exp/rand"

	"multiagent/game"
	"multiagent/game/tree"
)

// divergenceTree is the two-agent tree where minimax and expectimax disagree:
// A leads to [3, 5] and B to [1, 9].
func divergenceTree() *tree.State {
	return tree.New(2, tree.Branch(0,
		tree.On("A", tree.Branch(0, tree.On("a1", tree.Leaf(3)), tree.On("a2", tree.Leaf(5)))),
		tree.On("B", tree.Branch(0, tree.On("b1", tree.Leaf(1)), tree.On("b2", tree.Leaf(9)))),
	))
}

func randomTree(seed uint64, g tree.Generator) *tree.State {
	return g.Generate(rand.New(rand.NewSource(seed)))
}

// refusingState rejects every move, as an engine does for actions outside the legal set.
type refusingState struct {
	game.State
}

func (s refusingState) Successor(agent int, action game.Action) (game.State, error) {
	return nil, fmt.Errorf("%w: engine refused %q", game.ErrInvalidAction, action)
}

func allSearchers(options ...Option) []Searcher {
	return []Searcher{
		New(Minimax, options...),
		New(AlphaBeta, options...),
		New(Expectimax, options...),
	}
}
