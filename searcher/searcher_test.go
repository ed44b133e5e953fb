package searcher

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"multiagent/game"
	"multiagent/game/tree"
)

func TestParseAlgorithm(t *testing.T) {
	t.Run("parsing canonical and alternate names", func(t *testing.T) {
		for name, want := range map[string]Algorithm{
			"minimax":    Minimax,
			"AlphaBeta":  AlphaBeta,
			"alpha-beta": AlphaBeta,
			"expectimax": Expectimax,
		} {
			got, err := ParseAlgorithm(name)
			require.NoError(t, err)
			require.Equal(t, want, got, "Should parse %q", name)
		}
	})

	t.Run("rejecting unknown names", func(t *testing.T) {
		_, err := ParseAlgorithm("negamax")
		require.ErrorIs(t, err, ErrUnknownAlgorithm)
	})

	t.Run("round tripping through String", func(t *testing.T) {
		for _, alg := range []Algorithm{Minimax, AlphaBeta, Expectimax} {
			got, err := ParseAlgorithm(alg.String())
			require.NoError(t, err)
			require.Equal(t, alg, got)
		}
	})
}

func TestDivergence(t *testing.T) {
	for _, iterative := range []bool{false, true} {
		options := []Option{WithDepth(1)}
		if iterative {
			options = append(options, WithIterative())
		}

		t.Run("minimax assumes a minimizing adversary", func(t *testing.T) {
			result, err := NewMinimax(options...).Search(divergenceTree())

			require.NoError(t, err)
			require.Equal(t, game.Action("A"), result.Action)
			require.Equal(t, 3.0, result.Value)
			require.Equal(t, []float64{3, 1}, result.Scores)
		})

		t.Run("alpha-beta agrees with minimax", func(t *testing.T) {
			result, err := NewAlphaBeta(options...).Search(divergenceTree())

			require.NoError(t, err)
			require.Equal(t, game.Action("A"), result.Action)
			require.Equal(t, 3.0, result.Value)
		})

		t.Run("expectimax assumes a uniformly random adversary", func(t *testing.T) {
			result, err := NewExpectimax(options...).Search(divergenceTree())

			require.NoError(t, err)
			require.Equal(t, game.Action("B"), result.Action)
			require.Equal(t, 5.0, result.Value)
			require.Equal(t, []float64{4, 5}, result.Scores)
		})
	}
}

func TestTerminalEquivalence(t *testing.T) {
	evaluate := func(s game.State) float64 { return 2*s.Score() + 1 }

	t.Run("evaluating states where the protagonist cannot move", func(t *testing.T) {
		state := tree.New(2, tree.Leaf(7))

		mm, err := NewMinimax(WithDepth(3), WithEvaluationFn(evaluate)).Value(state, game.Protagonist, 0)
		require.NoError(t, err)
		ab, err := NewAlphaBeta(WithDepth(3), WithEvaluationFn(evaluate)).Value(state, game.Protagonist, 0, math.Inf(-1), math.Inf(1))
		require.NoError(t, err)
		em, err := NewExpectimax(WithDepth(3), WithEvaluationFn(evaluate)).Value(state, game.Protagonist, 0)
		require.NoError(t, err)

		require.Equal(t, 15.0, mm)
		require.Equal(t, 15.0, ab)
		require.Equal(t, 15.0, em)
	})

	t.Run("evaluating states at the horizon", func(t *testing.T) {
		state := divergenceTree()
		const depth = 2

		mm, err := NewMinimax(WithDepth(depth), WithEvaluationFn(evaluate)).Value(state, game.Protagonist, depth-1)
		require.NoError(t, err)
		ab, err := NewAlphaBeta(WithDepth(depth), WithEvaluationFn(evaluate)).Value(state, game.Protagonist, depth-1, math.Inf(-1), math.Inf(1))
		require.NoError(t, err)
		em, err := NewExpectimax(WithDepth(depth), WithEvaluationFn(evaluate)).Value(state, game.Protagonist, depth-1)
		require.NoError(t, err)

		require.Equal(t, 1.0, mm, "Should not look past the horizon")
		require.Equal(t, 1.0, ab, "Should not look past the horizon")
		require.Equal(t, 1.0, em, "Should not look past the horizon")
	})

	t.Run("treating adversaries without moves as terminal", func(t *testing.T) {
		state := tree.New(2, tree.Branch(0,
			tree.On("A", tree.Leaf(4)),
			tree.On("B", tree.Branch(0, tree.On("b1", tree.Leaf(2)))),
		))

		for _, s := range allSearchers(WithDepth(5)) {
			result, err := s.Search(state)
			require.NoError(t, err)
			require.Equal(t, game.Action("A"), result.Action, "%s should evaluate A directly", s.Algorithm())
			require.Equal(t, 4.0, result.Value)
		}
	})
}

func TestSearchErrors(t *testing.T) {
	t.Run("refusing terminal roots", func(t *testing.T) {
		for _, s := range allSearchers() {
			_, err := s.Search(tree.New(2, tree.Leaf(1)))
			require.ErrorIs(t, err, ErrNoLegalActions, "%s should refuse a terminal root", s.Algorithm())
		}
	})

	t.Run("propagating invalid actions", func(t *testing.T) {
		for _, iterative := range []bool{false, true} {
			options := []Option{}
			if iterative {
				options = append(options, WithIterative())
			}
			for _, s := range allSearchers(options...) {
				_, err := s.Search(refusingState{divergenceTree()})
				require.ErrorIs(t, err, game.ErrInvalidAction, "%s should not swallow engine errors", s.Algorithm())
			}
		}
	})
}

func TestTieBreak(t *testing.T) {
	state := tree.New(2, tree.Branch(0,
		tree.On("Left", tree.Branch(0, tree.On("x", tree.Leaf(2)), tree.On("y", tree.Leaf(2)))),
		tree.On("Right", tree.Branch(0, tree.On("x", tree.Leaf(2)), tree.On("y", tree.Leaf(2)))),
		tree.On("Down", tree.Branch(0, tree.On("x", tree.Leaf(1)))),
	))

	for _, s := range allSearchers(WithDepth(1)) {
		for run := 0; run < 10; run++ {
			result, err := s.Search(state)
			require.NoError(t, err)
			require.Equal(t, game.Action("Left"), result.Action, "%s should keep the earliest action on ties", s.Algorithm())
		}
	}
}

func TestDepth(t *testing.T) {
	// A round is a protagonist move followed by an adversary move; the second protagonist move
	// only becomes visible at depth 2.
	state := tree.New(2, tree.Branch(0,
		tree.On("A", tree.Branch(0,
			tree.On("a", tree.Branch(1, tree.On("A", tree.Leaf(100)))))),
		tree.On("B", tree.Branch(0,
			tree.On("b", tree.Branch(2, tree.On("B", tree.Leaf(-100)))))),
	))

	t.Run("looking one round ahead", func(t *testing.T) {
		for _, s := range allSearchers(WithDepth(1)) {
			result, err := s.Search(state)
			require.NoError(t, err)
			require.Equal(t, game.Action("B"), result.Action, "%s", s.Algorithm())
			require.Equal(t, 2.0, result.Value)
		}
	})

	t.Run("looking two rounds ahead", func(t *testing.T) {
		for _, s := range allSearchers(WithDepth(2)) {
			result, err := s.Search(state)
			require.NoError(t, err)
			require.Equal(t, game.Action("A"), result.Action, "%s", s.Algorithm())
			require.Equal(t, 100.0, result.Value)
		}
	})

	t.Run("searching a single agent game", func(t *testing.T) {
		solo := tree.New(1, tree.Branch(0,
			tree.On("A", tree.Branch(1, tree.On("A", tree.Leaf(1)), tree.On("B", tree.Leaf(6)))),
			tree.On("B", tree.Branch(5, tree.On("A", tree.Leaf(2)))),
		))

		for _, s := range allSearchers(WithDepth(1)) {
			result, err := s.Search(solo)
			require.NoError(t, err)
			require.Equal(t, game.Action("B"), result.Action, "%s", s.Algorithm())
		}
		for _, s := range allSearchers(WithDepth(2)) {
			result, err := s.Search(solo)
			require.NoError(t, err)
			require.Equal(t, game.Action("A"), result.Action, "%s", s.Algorithm())
			require.Equal(t, 6.0, result.Value)
		}
	})
}

func TestMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("counting nodes and timing evaluations", func(t *testing.T) {
		clock := quartz.NewMock(t)
		evaluate := func(s game.State) float64 {
			clock.Advance(time.Millisecond).MustWait(ctx)
			return s.Score()
		}

		result, err := NewMinimax(WithDepth(1), WithEvaluationFn(evaluate), WithMetrics(clock)).Search(divergenceTree())

		require.NoError(t, err)
		require.Equal(t, "minimax", result.Metrics.Algorithm)
		require.Equal(t, 1, result.Metrics.Depth)
		require.Equal(t, 6, result.Metrics.Nodes, "Should count every generated successor")
		require.Equal(t, 4, result.Metrics.Evaluations)
		require.Equal(t, 0, result.Metrics.Cutoffs)
		require.Equal(t, 4*time.Millisecond, result.Metrics.Duration)
	})

	t.Run("counting alpha-beta cutoffs", func(t *testing.T) {
		clock := quartz.NewMock(t)

		result, err := NewAlphaBeta(WithDepth(1), WithMetrics(clock)).Search(divergenceTree())

		require.NoError(t, err)
		require.Equal(t, 5, result.Metrics.Nodes, "Should skip b2 once b1 falls below alpha")
		require.Equal(t, 3, result.Metrics.Evaluations)
		require.Equal(t, 1, result.Metrics.Cutoffs)
		require.Equal(t, time.Duration(0), result.Metrics.Duration)
	})

	t.Run("resetting counters between searches", func(t *testing.T) {
		s := NewExpectimax(WithDepth(1), WithMetrics(quartz.NewMock(t)))

		first, err := s.Search(divergenceTree())
		require.NoError(t, err)
		second, err := s.Search(divergenceTree())
		require.NoError(t, err)

		require.Equal(t, first.Metrics.Nodes, second.Metrics.Nodes)
	})

	t.Run("leaving metrics empty by default", func(t *testing.T) {
		result, err := NewMinimax(WithDepth(1)).Search(divergenceTree())

		require.NoError(t, err)
		require.Zero(t, result.Metrics.Nodes)
	})
}

func TestOptions(t *testing.T) {
	t.Run("ignoring nil evaluation functions", func(t *testing.T) {
		s := NewMinimax(WithEvaluationFn(nil))

		require.Equal(t, 2, s.Depth())
		require.NotNil(t, s.evaluate)
	})

	t.Run("panicking on non-positive depths", func(t *testing.T) {
		require.Panics(t, func() { New(Minimax, WithDepth(0)) })
		require.Panics(t, func() { New(AlphaBeta, WithDepth(-3)) })
	})

	t.Run("applying positive depths", func(t *testing.T) {
		require.Equal(t, 5, NewExpectimax(WithDepth(5)).Depth())
	})

	t.Run("panicking on unknown algorithms", func(t *testing.T) {
		require.Panics(t, func() {
			New(Algorithm(42))
		})
	})
}

func TestMean(t *testing.T) {
	require.Equal(t, 2.5, mean(10, 4))
	require.Equal(t, 7.0, mean(7, 1), "A single action is its own expectation")
	require.Panics(t, func() { mean(0, 0) }, "Should never divide by an empty action set")
}
