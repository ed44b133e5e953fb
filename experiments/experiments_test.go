package experiments

import (
	"context"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"multiagent/searcher"
)

func TestRun(t *testing.T) {
	t.Run("recording every algorithm on every tree", func(t *testing.T) {
		cfg := Config{Depths: []int{1, 2}, Trees: 4, Agents: 2, Branching: 3, Seed: 1, Parallel: 2}

		records, err := Run(context.Background(), cfg, quartz.NewMock(t))

		require.NoError(t, err)
		require.Len(t, records, 2*4*3)
		for i, r := range records {
			require.Equal(t, algorithms[i%3].String(), r.Algorithm)
			require.Equal(t, cfg.Depths[i/12], r.Depth)
			require.Equal(t, (i/3)%4, r.Tree)
			require.Positive(t, r.Nodes)
		}
	})

	t.Run("pruning never visits more nodes than minimax", func(t *testing.T) {
		cfg := Config{Depths: []int{2, 3}, Trees: 5, Agents: 3, Branching: 3, Seed: 9, Iterative: true}

		records, err := Run(context.Background(), cfg, quartz.NewMock(t))

		require.NoError(t, err)
		for i := 0; i < len(records); i += 3 {
			mm, ab := records[i], records[i+1]
			require.Equal(t, searcher.Minimax.String(), mm.Algorithm)
			require.Equal(t, searcher.AlphaBeta.String(), ab.Algorithm)
			require.LessOrEqual(t, ab.Nodes, mm.Nodes)
			require.Equal(t, mm.Action, ab.Action)
		}
	})

	t.Run("producing identical records from the same seed", func(t *testing.T) {
		cfg := Config{Depths: []int{2}, Trees: 3, Agents: 2, Branching: 2, Seed: 5}

		first, err := Run(context.Background(), cfg, quartz.NewMock(t))
		require.NoError(t, err)
		second, err := Run(context.Background(), cfg, quartz.NewMock(t))
		require.NoError(t, err)

		require.Equal(t, first, second)
	})

	t.Run("rejecting invalid configurations", func(t *testing.T) {
		_, err := Run(context.Background(), Config{Depths: []int{0}, Trees: 1, Agents: 1, Branching: 1}, quartz.NewMock(t))
		require.Error(t, err)

		_, err = Run(context.Background(), Config{Depths: []int{1}, Trees: 0, Agents: 1, Branching: 1}, quartz.NewMock(t))
		require.Error(t, err)
	})

	t.Run("stopping on cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Run(ctx, Config{Depths: []int{1}, Trees: 2, Agents: 2, Branching: 2}, quartz.NewMock(t))
		require.ErrorIs(t, err, context.Canceled)
	})
}
