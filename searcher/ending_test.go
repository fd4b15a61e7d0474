package searcher

import (
	"context"
	"testing"

	"tetress/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func randomBoards(seed uint64, plies int) []game.GameState {
	rng := rand.New(rand.NewSource(seed))
	state := game.NewGameState()
	var states []game.GameState
	for i := 0; i < plies; i++ {
		moves := state.LegalMoves()
		if len(moves) == 0 {
			break
		}
		state = state.Play(moves[rng.Intn(len(moves))])
		states = append(states, state)
	}
	return states
}

func TestEnding(t *testing.T) {
	t.Run("prefers a move leaving no reply", func(t *testing.T) {
		board := blockingBoard()
		require.Equal(t, []game.Action{upperPocket, lowerPocket}, game.LegalMoves(board, game.Red),
			"Should offer the non-blocking move first")

		for _, goroutines := range []int{1, 4} {
			move, err := NewEnding(goroutines).FindMove(context.Background(), board, game.Red)
			require.NoError(t, err)
			require.Equal(t, lowerPocket, move)
		}
	})

	t.Run("minimises the opponent's replies", func(t *testing.T) {
		for _, state := range randomBoards(21, 12)[8:] {
			color := state.Turn
			move, err := NewEnding(1).FindMove(context.Background(), state.Board, color)
			require.NoError(t, err)

			fewest := -1
			for _, a := range game.LegalMoves(state.Board, color) {
				n := len(game.LegalMoves(state.Board.Apply(a, color), color.Other()))
				if fewest < 0 || n < fewest {
					fewest = n
				}
			}
			got := len(game.LegalMoves(state.Board.Apply(move, color), color.Other()))
			require.Equal(t, fewest, got)
		}
	})

	t.Run("parallel counting gives the same answer", func(t *testing.T) {
		for _, state := range randomBoards(8, 10)[6:] {
			sequential, err := NewEnding(1).FindMove(context.Background(), state.Board, state.Turn)
			require.NoError(t, err)
			parallel, err := NewEnding(8).FindMove(context.Background(), state.Board, state.Turn)
			require.NoError(t, err)
			require.Equal(t, sequential, parallel)
		}
	})

	t.Run("metrics count the scanned moves", func(t *testing.T) {
		e := NewEnding(2, WithEndingMetrics())
		_, err := e.FindMove(context.Background(), blockingBoard(), game.Red)
		require.NoError(t, err)
		require.Equal(t, 2, e.Metric().Nodes)
	})

	t.Run("no legal moves", func(t *testing.T) {
		blocked := blockingBoard().Apply(lowerPocket, game.Red)
		_, err := NewEnding(1).FindMove(context.Background(), blocked, game.Blue)
		require.ErrorIs(t, err, ErrNoLegalMoves)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewEnding(4).FindMove(ctx, midgame(), game.Red)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestEvalCache(t *testing.T) {
	t.Run("evaluates each position once", func(t *testing.T) {
		calls := 0
		evaluate := func(b game.Board, c game.Color) float64 {
			calls++
			return game.Heuristic(b, c)
		}
		c := newEvalCache(0)
		board := midgame()

		first := c.value(board, game.Red, evaluate)
		second := c.value(board, game.Red, evaluate)
		require.Equal(t, first, second)
		require.Equal(t, 1, calls)

		c.value(board, game.Blue, evaluate)
		require.Equal(t, 2, calls, "Should key entries by color")
	})

	t.Run("clears when full", func(t *testing.T) {
		c := newEvalCache(0)
		require.Equal(t, minCacheEntries, c.limit)
		for i := 0; i < c.limit+1; i++ {
			b := game.Board{}.Fill(game.Red, game.NewCoord(i/game.BoardN, i%game.BoardN)).
				Fill(game.Blue, game.NewCoord(i/7, i%7+3))
			c.value(b, game.Red, game.Heuristic)
		}
		require.LessOrEqual(t, c.len(), c.limit)
	})
}
