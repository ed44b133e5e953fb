package game

import "errors"

// Action is an opaque move token reported by a State as legal for one agent.
type Action string

// Protagonist is the index of the maximizing agent. Agents 1..N-1 act after it in fixed rotation.
const Protagonist = 0

var ErrInvalidAction = errors.New("invalid action")

// State should be immutable - operations on State always return a new copy
type State interface {
	// LegalActions returns the actions the agent may play in this state, in a stable order.
	// An empty result means the agent cannot move.
	LegalActions(agent int) []Action
	// Successor returns the state reached after the agent plays the action. It fails with
	// ErrInvalidAction when the action is not currently legal for the agent.
	Successor(agent int, action Action) (State, error)
	NumAgents() int
	Score() float64
}

// Evaluates the game state to a score where higher values are more desirable for the
// protagonist. Must be defined on every reachable state, terminal ones included.
type Evaluate func(State) float64

// NextAgent returns the agent acting after agent in a state with n agents.
func NextAgent(agent, n int) int {
	return (agent + 1) % n
}
