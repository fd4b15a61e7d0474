package searcher

import (
	"context"
	"math"
	"testing"

	"tetress/game"

	"github.com/stretchr/testify/require"
)

func TestMinimax(t *testing.T) {
	t.Run("decided children are scored by the evaluator", func(t *testing.T) {
		board := midgame()
		m := NewMinimax()
		move, err := m.FindMove(context.Background(), board, game.Red)
		require.NoError(t, err)

		// Every child has a cell majority, so the search is one ply deep
		best, bestValue := game.Action{}, math.Inf(-1)
		for _, a := range game.LegalMoves(board, game.Red) {
			if v := game.Heuristic(board.Apply(a, game.Red), game.Red); v > bestValue {
				best, bestValue = a, v
			}
		}
		require.Equal(t, best, move)
	})

	t.Run("plies generate the searching color by default", func(t *testing.T) {
		// Red's first placement evens the count at 4-4, so the search goes on
		board := game.Board{}.Fill(game.Blue, game.NewCoord(0, 0), game.NewCoord(0, 1), game.NewCoord(0, 2), game.NewCoord(0, 3))
		child := board.Apply(game.MustAction(game.NewCoord(5, 4), game.NewCoord(5, 5), game.NewCoord(5, 6), game.NewCoord(4, 5)), game.Red)

		reference := NewMinimax(WithDepth(2))
		value := reference.search(context.Background(), child, game.Red, 2, math.Inf(-1), math.Inf(1), true)
		require.InDelta(t, 8.001/4.001, value, 1e-9, "Should let Red place again")

		adversarial := NewMinimax(WithDepth(2), WithAdversarial())
		value = adversarial.search(context.Background(), child, game.Red, 2, math.Inf(-1), math.Inf(1), false)
		require.InDelta(t, 4.001/8.001, value, 1e-9, "Should let Blue reply")
	})

	t.Run("depth zero evaluates immediately", func(t *testing.T) {
		m := NewMinimax()
		board := midgame()
		require.Equal(t, game.Heuristic(board, game.Red),
			m.search(context.Background(), board, game.Red, 0, math.Inf(-1), math.Inf(1), true))
	})

	t.Run("evaluation cache keeps the answer", func(t *testing.T) {
		board := midgame()
		plain, err := NewMinimax().FindMove(context.Background(), board, game.Red)
		require.NoError(t, err)

		cached := NewMinimax(WithEvalCache(0.001))
		move, err := cached.FindMove(context.Background(), board, game.Red)
		require.NoError(t, err)
		require.Equal(t, plain, move)
		require.Positive(t, cached.cache.len())
	})

	t.Run("metrics count visited positions", func(t *testing.T) {
		board := midgame()
		m := NewMinimax(WithMinimaxMetrics())
		_, err := m.FindMove(context.Background(), board, game.Red)
		require.NoError(t, err)
		require.Equal(t, len(game.LegalMoves(board, game.Red)), m.Metric().Nodes)
	})

	t.Run("no legal moves", func(t *testing.T) {
		blocked := blockingBoard().Apply(lowerPocket, game.Red)
		_, err := NewMinimax().FindMove(context.Background(), blocked, game.Blue)
		require.ErrorIs(t, err, ErrNoLegalMoves)
	})

	t.Run("cancelled before searching", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewMinimax().FindMove(ctx, midgame(), game.Red)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("interrupted subtrees do not replace the best move", func(t *testing.T) {
		board := midgame()
		moves := game.LegalMoves(board, game.Red)
		require.Greater(t, len(moves), 1)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		calls := 0
		evaluate := func(b game.Board, color game.Color) float64 {
			calls++
			if calls == 1 {
				return 1
			}
			// Cancelled while scoring the second placement
			cancel()
			return 1e9
		}

		move, err := NewMinimax(WithMinimaxEvaluationFn(evaluate)).FindMove(ctx, board, game.Red)
		require.NoError(t, err)
		require.Equal(t, moves[0], move)
	})

	t.Run("interrupted during the first placement", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		evaluate := func(b game.Board, color game.Color) float64 {
			cancel()
			return 1
		}

		_, err := NewMinimax(WithMinimaxEvaluationFn(evaluate)).FindMove(ctx, midgame(), game.Red)
		require.ErrorIs(t, err, context.Canceled)
	})
}
