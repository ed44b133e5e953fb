package tree

import (
	"fmt"

	"golang.org/x/exp/rand"

	"multiagent/game"
)

// Generator builds random trees. Scores are small integers so that ties are common.
type Generator struct {
	Agents    int
	Plies     int // Height of the tree
	Branching int // Maximum number of moves per node
	// AdversaryBranching caps the moves of non-protagonist agents; 0 uses Branching.
	AdversaryBranching int
	// TerminalChance is the probability that an interior node has no moves.
	TerminalChance float64
}

func (g Generator) Generate(rng *rand.Rand) *State {
	if g.Branching < 1 {
		panic("branching must be positive")
	}
	return New(g.Agents, g.node(rng, 0))
}

func (g Generator) node(rng *rand.Rand, ply int) *Node {
	node := Leaf(float64(rng.Intn(41) - 20))
	if ply == g.Plies || (ply > 0 && rng.Float64() < g.TerminalChance) {
		return node
	}

	limit := g.Branching
	if ply%g.Agents != game.Protagonist && g.AdversaryBranching > 0 {
		limit = g.AdversaryBranching
	}
	n := 1 + rng.Intn(limit)
	for i := 0; i < n; i++ {
		action := game.Action(fmt.Sprintf("p%d-m%d", ply, i))
		node.Moves = append(node.Moves, On(action, g.node(rng, ply+1)))
	}
	return node
}
