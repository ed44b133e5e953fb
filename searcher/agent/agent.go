package agent

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"multiagent/game"
	"multiagent/searcher"
)

var ErrConfiguration = errors.New("invalid agent configuration")

// Reflex names the one-ply agent in Config.Algorithm.
const Reflex = "reflex"

type Agent interface {
	// GetAction returns the protagonist's action for the current turn
	GetAction(state game.State) (game.Action, error)
}

// New builds the agent described by cfg. options configure the searcher of a decision agent;
// the reflex agent does not search, so it takes none and reports no search metrics.
func New(cfg Config, options ...searcher.Option) (Agent, error) {
	if cfg.Algorithm == Reflex {
		if len(options) > 0 {
			log.Debug().Msgf("reflex agent ignores %d searcher options", len(options))
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		evaluate, err := cfg.lookupEvaluation()
		if err != nil {
			return nil, err
		}
		return NewReflexAgent(evaluate, rand.New(rand.NewSource(uint64(cfg.Seed)))), nil
	}
	return NewDecisionAgent(cfg, options...)
}

func (c Config) lookupEvaluation() (game.Evaluate, error) {
	registry := c.Registry
	if registry == nil {
		registry = game.DefaultRegistry
	}
	evaluate, err := registry.Lookup(c.Evaluation)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return evaluate, nil
}
