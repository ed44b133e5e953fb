package engine

import (
	"fmt"

	"github.com/coder/quartz"
	"github.com/rs/zerolog/log"

	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/meta"
	"multiagent/searcher"
	"multiagent/searcher/agent"
)

type Engine struct {
	State       game.State
	Protagonist agent.Agent
	Adversaries Policy
	MaxTurns    int
	Clock       quartz.Clock
}

// Turn records one move played by the engine.
type Turn struct {
	Step   int
	Agent  int
	Action game.Action
	Score  float64 // Score of the state after the move
}

type Outcome struct {
	Final   game.State
	Turns   []Turn
	Game    metrics.GameMetric
	Moves   []metrics.MoveMetric // Protagonist searches, when the agent reports them
	Stopped bool                 // MaxTurns was reached while the acting agent could still move
}

// searchReporter is implemented by agents that expose their full search results.
type searchReporter interface {
	Search(state game.State) (searcher.Result, error)
}

func LocalEngine(state game.State, protagonist agent.Agent, adversaries Policy) *Engine {
	if state.NumAgents() > 1 && adversaries == nil {
		panic("adversary policy required for multi-agent games")
	}
	return &Engine{
		State:       state,
		Protagonist: protagonist,
		Adversaries: adversaries,
		MaxTurns:    meta.MAX_TURNS,
		Clock:       quartz.NewReal(),
	}
}

// Run plays from the current state until the acting agent has no legal actions or MaxTurns
// moves have been played.
func (e *Engine) Run() (Outcome, error) {
	var out Outcome
	out.Game.StartTime = e.Clock.Now()

	state := e.State
	agentIndex := game.Protagonist
	log.Info().Msgf("game starting with %d agents", state.NumAgents())

	for step := 1; step <= e.MaxTurns; step++ {
		if len(state.LegalActions(agentIndex)) == 0 {
			log.Info().Msgf("agent %d has no legal actions, game over", agentIndex)
			break
		}

		action, err := e.choose(state, agentIndex, step, &out)
		if err != nil {
			return out, fmt.Errorf("turn %d: %w", step, err)
		}
		next, err := state.Successor(agentIndex, action)
		if err != nil {
			return out, fmt.Errorf("turn %d: %w", step, err)
		}
		state = next

		out.Turns = append(out.Turns, Turn{Step: step, Agent: agentIndex, Action: action, Score: state.Score()})
		log.Debug().Int("step", step).Int("agent", agentIndex).Str("action", string(action)).Float64("score", state.Score()).Msg("move played")

		agentIndex = game.NextAgent(agentIndex, state.NumAgents())
	}
	out.Stopped = len(state.LegalActions(agentIndex)) > 0

	out.Final = state
	out.Game.EndTime = e.Clock.Now()
	out.Game.Duration = out.Game.EndTime.Sub(out.Game.StartTime)
	out.Game.TotalMoves = len(out.Turns)
	out.Game.FinalScore = state.Score()
	log.Info().Msgf("game over after %d moves with score %v", out.Game.TotalMoves, out.Game.FinalScore)

	return out, nil
}

func (e *Engine) choose(state game.State, agentIndex, step int, out *Outcome) (game.Action, error) {
	if agentIndex != game.Protagonist {
		return e.Adversaries.Choose(state, agentIndex)
	}
	reporter, ok := e.Protagonist.(searchReporter)
	if !ok {
		return e.Protagonist.GetAction(state)
	}
	result, err := reporter.Search(state)
	if err != nil {
		return "", err
	}
	out.Moves = append(out.Moves, metrics.MoveMetric{Step: step, Agent: agentIndex, SearchMetric: result.Metrics})
	return result.Action, nil
}
