package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/coder/quartz"
	"github.com/logrusorgru/aurora"
	"github.com/rs/zerolog/log"

	"multiagent/engine"
	"multiagent/experiments"
	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/game/tree"
	"multiagent/searcher"
	"multiagent/searcher/agent"
)

// AgentFlags override the values read from an agent configuration file.
type AgentFlags struct {
	Config     string `help:"agent configuration file (HCL)" type:"path"`
	Algorithm  string `help:"minimax, alphabeta, expectimax or reflex"`
	Evaluation string `help:"evaluation function identifier"`
	Depth      *int   `help:"search depth in rounds"`
	Seed       int64  `help:"seed for randomized agents"`
	Iterative  bool   `help:"traverse with an explicit stack instead of recursion"`
}

func (f AgentFlags) agentConfig() (agent.Config, error) {
	cfg := agent.DefaultConfig()
	if f.Config != "" {
		loaded, err := agent.LoadConfig(f.Config)
		if err != nil {
			return agent.Config{}, err
		}
		cfg = loaded
	}
	if f.Algorithm != "" {
		cfg.Algorithm = f.Algorithm
	}
	if f.Evaluation != "" {
		cfg.Evaluation = f.Evaluation
	}
	if f.Depth != nil {
		cfg.Depth = *f.Depth
	}
	if f.Seed != 0 {
		cfg.Seed = f.Seed
	}
	if f.Iterative {
		cfg.Iterative = true
	}
	return cfg, nil
}

type SearchCmd struct {
	Tree string `arg:"" help:"scenario tree file (HCL)" type:"existingfile"`

	AgentFlags `embed:""`
}

func (c *SearchCmd) Run() error {
	state, err := tree.Load(c.Tree)
	if err != nil {
		return err
	}
	cfg, err := c.agentConfig()
	if err != nil {
		return err
	}
	a, err := agent.NewDecisionAgent(cfg, searcher.WithMetrics(quartz.NewReal()))
	if err != nil {
		return err
	}

	result, err := a.Search(state)
	if err != nil {
		return err
	}
	log.Info().Msgf("%s searched %d nodes in %s", a, result.Metrics.Nodes, result.Metrics.Duration)
	printResult(os.Stdout, result, a.Algorithm() == searcher.AlphaBeta)
	return nil
}

// printResult lists the root actions with their values and highlights the chosen one. With
// bounded set, values of the other actions are printed as upper bounds since pruning may have
// stopped their search early.
func printResult(w io.Writer, result searcher.Result, bounded bool) {
	for i, action := range result.Actions {
		value := fmt.Sprintf("%10.3f", result.Scores[i])
		if bounded && action != result.Action {
			value = fmt.Sprintf("<=%8.3f", result.Scores[i])
		}
		line := fmt.Sprintf("%-12s %s", action, value)
		if action == result.Action {
			fmt.Fprintln(w, aurora.Green(line+"  <- chosen"))
			continue
		}
		fmt.Fprintln(w, line)
	}
}

type PlayCmd struct {
	Tree          string `arg:"" help:"scenario tree file (HCL)" type:"existingfile"`
	Adversary     string `help:"policy of the non-protagonist agents" enum:"random,first,greedy" default:"random"`
	AdversarySeed uint64 `help:"seed of the random adversary policy" default:"1"`
	MaxTurns      int    `help:"maximum number of moves" default:"300"`
	Out           string `help:"directory receiving per-move search metrics"`

	AgentFlags `embed:""`
}

func (c *PlayCmd) Run() error {
	state, err := tree.Load(c.Tree)
	if err != nil {
		return err
	}
	cfg, err := c.agentConfig()
	if err != nil {
		return err
	}
	protagonist, err := agent.New(cfg, searcher.WithMetrics(quartz.NewReal()))
	if err != nil {
		return err
	}
	policy, err := engine.ParsePolicy(c.Adversary, c.AdversarySeed)
	if err != nil {
		return err
	}

	e := engine.LocalEngine(state, protagonist, policy)
	e.MaxTurns = c.MaxTurns
	outcome, err := e.Run()
	if err != nil {
		return err
	}

	for _, turn := range outcome.Turns {
		who := aurora.Red(fmt.Sprintf("agent %d", turn.Agent))
		if turn.Agent == game.Protagonist {
			who = aurora.Green("protagonist")
		}
		fmt.Printf("%3d  %-12s %-12s %8.2f\n", turn.Step, who, turn.Action, turn.Score)
	}
	fmt.Printf("final score: %v\n", outcome.Game.FinalScore)

	if c.Out == "" || len(outcome.Moves) == 0 {
		return nil
	}
	writer, err := metrics.NewWriter(c.Out, "play", time.Now())
	if err != nil {
		return err
	}
	if err := writer.WriteMoveRecords(outcome.Moves); err != nil {
		return err
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}

type BenchCmd struct {
	Depths     []int  `help:"search depths in rounds" default:"1,2,3"`
	Trees      int    `help:"random trees per depth" default:"20"`
	Agents     int    `help:"agents per tree" default:"2"`
	Branching  int    `help:"maximum moves per node" default:"3"`
	Seed       uint64 `help:"seed of the tree generator" default:"1"`
	Evaluation string `help:"evaluation function identifier" default:"score"`
	Iterative  bool   `help:"traverse with an explicit stack instead of recursion"`
	Parallel   int    `help:"trees searched concurrently (0 uses every CPU)" default:"0"`
	Out        string `help:"directory receiving records and charts" default:"experiments"`
}

func (c *BenchCmd) Run() error {
	evaluate, err := game.LookupEvaluation(c.Evaluation)
	if err != nil {
		return err
	}

	clock := quartz.NewReal()
	records, err := experiments.Run(context.Background(), experiments.Config{
		Depths:    c.Depths,
		Trees:     c.Trees,
		Agents:    c.Agents,
		Branching: c.Branching,
		Seed:      c.Seed,
		Evaluate:  evaluate,
		Iterative: c.Iterative,
		Parallel:  c.Parallel,
	}, clock)
	if err != nil {
		return err
	}

	writer, err := metrics.NewWriter(c.Out, "bench", clock.Now())
	if err != nil {
		return err
	}
	if err := writer.WriteSearchRecords(records); err != nil {
		return err
	}
	if err := writer.WriteNodesChart(records); err != nil {
		return err
	}

	depths, series := metrics.AverageNodes(records)
	for _, name := range []string{searcher.Minimax.String(), searcher.AlphaBeta.String(), searcher.Expectimax.String()} {
		for i, d := range depths {
			fmt.Printf("%-10s depth %d  %10.1f nodes\n", name, d, series[name][i])
		}
	}
	log.Info().Msgf("stored benchmark in %s", writer.Dir())
	return nil
}

type EvalsCmd struct{}

func (c *EvalsCmd) Run() error {
	for _, name := range game.DefaultRegistry.Names() {
		fmt.Println(name)
	}
	return nil
}
