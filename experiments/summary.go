package experiments

import (
	"fmt"
	"io"
	"math"

	"tetress/game"

	"github.com/aybabtme/uniplot/histogram"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Confidence of the reported win-rate interval, in percent.
const Confidence = 95.0

// Summary is a match up seen from the challenger's side.
type Summary struct {
	MatchUp
	Games   int
	Wins    int
	Losses  int
	Draws   int
	Lengths []float64 // Placements per game
}

func summarize(m MatchUp, results []gameResult) Summary {
	s := Summary{MatchUp: m, Games: len(results)}
	for _, r := range results {
		o := r.outcome
		s.Lengths = append(s.Lengths, float64(o.Game.TotalMoves))
		if !o.Decided {
			s.Draws++
			continue
		}
		winnerID := r.red
		if o.Winner == game.Blue {
			winnerID = r.blue
		}
		if winnerID == m.Challenger {
			s.Wins++
		} else {
			s.Losses++
		}
	}
	return s
}

// WinRate counts a draw as half a win.
func (s Summary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return (float64(s.Wins) + 0.5*float64(s.Draws)) / float64(s.Games)
}

// Margin is the half-width of the normal-approximation interval around WinRate.
func (s Summary) Margin() float64 {
	if s.Games == 0 {
		return 0
	}
	p := s.WinRate()
	return zValue(Confidence) * math.Sqrt(p*(1-p)/float64(s.Games))
}

// zValue is the two-tailed z-value for a confidence given in percent.
func zValue(confidence float64) float64 {
	dist := distuv.Normal{Mu: 0, Sigma: 1}
	return dist.Quantile((1 + confidence/100) / 2)
}

// Fprint writes a table of the summaries followed by a histogram of game lengths.
func Fprint(w io.Writer, summaries []Summary) error {
	fmt.Fprintf(w, "%-10s %-10s %-6s %-6s %-6s %-6s %-18s %-12s\n",
		"baseline", "challenger", "games", "wins", "losses", "draws", "win rate", "mean length")

	var lengths []float64
	for _, s := range summaries {
		mean, std := stat.MeanStdDev(s.Lengths, nil)
		if len(s.Lengths) < 2 {
			std = 0
		}
		fmt.Fprintf(w, "%-10d %-10d %-6d %-6d %-6d %-6d %-18s %-12s\n",
			s.Baseline, s.Challenger, s.Games, s.Wins, s.Losses, s.Draws,
			fmt.Sprintf("%.3f ± %.3f", s.WinRate(), s.Margin()),
			fmt.Sprintf("%.1f ± %.1f", mean, std))
		lengths = append(lengths, s.Lengths...)
	}

	if len(lengths) == 0 {
		return nil
	}
	fmt.Fprintln(w, "\ngame lengths:")
	return histogram.Fprint(w, histogram.Hist(10, lengths), histogram.Linear(40))
}
