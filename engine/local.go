package engine

import (
	"context"
	"fmt"
	"time"

	"tetress/agent"
	"tetress/experiments/metrics"
	"tetress/game"

	"github.com/rs/zerolog/log"
)

type Option func(e *LocalEngine)

// LocalEngine referees a game between two in-process agents.
type LocalEngine struct {
	state    game.GameState
	agents   map[game.Color]agent.Agent
	maxTurns int
	history  []Update
	observer func(Update)
}

func WithMaxTurns(turns int) Option {
	return func(e *LocalEngine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// WithState starts the game from a given position instead of the empty board.
func WithState(state game.GameState) Option {
	return func(e *LocalEngine) {
		e.state = state
	}
}

// WithObserver is called after every placement.
func WithObserver(observer func(Update)) Option {
	return func(e *LocalEngine) {
		e.observer = observer
	}
}

func NewLocalEngine(red, blue agent.Agent, options ...Option) *LocalEngine {
	e := &LocalEngine{
		state:    game.NewGameState(),
		agents:   map[game.Color]agent.Agent{game.Red: red, game.Blue: blue},
		maxTurns: game.MaxTurns,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *LocalEngine) State() game.GameState {
	return e.state
}

func (e *LocalEngine) History() []Update {
	return e.history
}

// Over reports whether the side to move is blocked or the turn budget is spent.
func (e *LocalEngine) Over() bool {
	return e.state.Ply >= e.maxTurns || e.state.Blocked()
}

// Play validates and applies a placement for the side to move.
func (e *LocalEngine) Play(move game.Action) error {
	if e.Over() {
		return fmt.Errorf("game is over after %d turns", e.state.Ply)
	}
	player := e.state.Turn
	next, err := e.state.TryPlay(move)
	if err != nil {
		return err
	}
	e.state = next

	u := Update{
		Move:   move,
		Player: player,
		State:  next,
		Hash:   next.Hash(),
	}
	e.history = append(e.history, u)
	if e.observer != nil {
		e.observer(u)
	}
	return nil
}

// Run asks the agents for placements until the game is over.
func (e *LocalEngine) Run(ctx context.Context) (Outcome, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.state.Turn.String(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("%v is starting", e.state.Turn)

	for !e.Over() {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}

		player := e.state.Turn
		move, metric, err := e.agents[player].FindMove(ctx, e.state)
		if err != nil {
			return Outcome{}, fmt.Errorf("%v failed to find a move at turn %d: %w", player, e.state.Ply+1, err)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         e.state.Ply + 1,
			Player:       player.String(),
			SearchMetric: metric,
		})

		if err := e.Play(move); err != nil {
			return Outcome{}, fmt.Errorf("%v played an illegal move: %w", player, err)
		}
	}

	winner, decided := e.state.WinnerAt(e.maxTurns)
	red, blue := e.state.Board.Counts()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(e.history)
	gameMetric.RedCells = red
	gameMetric.BlueCells = blue
	if decided {
		gameMetric.Winner = winner.String()
	}

	log.Debug().
		Int("turns", e.state.Ply).
		Int("red", red).
		Int("blue", blue).
		Str("winner", gameMetric.Winner).
		Msg("game over")

	return Outcome{
		Winner:  winner,
		Decided: decided,
		Final:   e.state,
		Game:    gameMetric,
		Moves:   moveMetrics,
	}, nil
}
