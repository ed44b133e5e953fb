// Package tree provides explicit, finite game trees that satisfy the game.State contract.
// The agent moving at ply k is k mod N, so a tree encodes whole rounds as consecutive plies.
package tree

import (
	"fmt"

	"multiagent/game"
	"multiagent/utils"
)

// Node is one position of the tree. A node without moves is terminal.
type Node struct {
	Score    float64
	Features *Features
	Moves    []Move
}

// Move links an action to the node it leads to.
type Move struct {
	Action game.Action
	Next   *Node
}

// Features carries the board geometry exposed to evaluation functions.
type Features struct {
	Position    game.Position
	Resources   []game.Position
	Adversaries []game.Adversary
}

func Leaf(score float64) *Node {
	return &Node{Score: score}
}

func Branch(score float64, moves ...Move) *Node {
	return &Node{Score: score, Moves: moves}
}

func On(action game.Action, next *Node) Move {
	return Move{Action: action, Next: next}
}

// With attaches features to the node and returns it.
func (n *Node) With(f Features) *Node {
	n.Features = &f
	return n
}

// Size returns the number of nodes reachable from n, n included.
func (n *Node) Size() int {
	size := 1
	for _, m := range n.Moves {
		size += m.Next.Size()
	}
	return size
}

// State is a cursor into a tree. States are never mutated once created.
type State struct {
	agents int
	ply    int
	node   *Node
}

// New returns the state at the root of the tree.
func New(agents int, root *Node) *State {
	if agents < 1 {
		panic("tree needs at least one agent")
	}
	if root == nil {
		panic("tree needs a root node")
	}
	return &State{agents: agents, node: root}
}

// Mover returns the agent whose turn it is.
func (s *State) Mover() int {
	return s.ply % s.agents
}

func (s *State) Ply() int {
	return s.ply
}

func (s *State) Node() *Node {
	return s.node
}

func (s *State) LegalActions(agent int) []game.Action {
	if agent != s.Mover() {
		return nil
	}
	return s.actions()
}

func (s *State) actions() []game.Action {
	actions := make([]game.Action, len(s.node.Moves))
	for i, m := range s.node.Moves {
		actions[i] = m.Action
	}
	return actions
}

func (s *State) Successor(agent int, action game.Action) (game.State, error) {
	if agent != s.Mover() {
		return nil, fmt.Errorf("%w: agent %d moved on agent %d's turn", game.ErrInvalidAction, agent, s.Mover())
	}
	i := utils.FindIndex(s.actions(), action)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q is not legal for agent %d", game.ErrInvalidAction, action, agent)
	}
	return &State{agents: s.agents, ply: s.ply + 1, node: s.node.Moves[i].Next}, nil
}

func (s *State) NumAgents() int {
	return s.agents
}

func (s *State) Score() float64 {
	return s.node.Score
}

func (s *State) ProtagonistPosition() game.Position {
	if s.node.Features == nil {
		return game.Position{}
	}
	return s.node.Features.Position
}

func (s *State) Resources() []game.Position {
	if s.node.Features == nil {
		return nil
	}
	return s.node.Features.Resources
}

func (s *State) Adversaries() []game.Adversary {
	if s.node.Features == nil {
		return nil
	}
	return s.node.Features.Adversaries
}
