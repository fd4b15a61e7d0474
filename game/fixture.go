package game

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Fixture is a named position in YAML form:
//
//	- name: row clear
//	  turn: red
//	  grid: |
//	    . . . r r r ...
type Fixture struct {
	Name string `yaml:"name"`
	Turn string `yaml:"turn"`
	Ply  int    `yaml:"ply,omitempty"`
	Grid string `yaml:"grid"`
}

func (f Fixture) State() (GameState, error) {
	turn, ok := ParseColor(f.Turn)
	if !ok {
		return GameState{}, fmt.Errorf("fixture %q: unknown turn %q", f.Name, f.Turn)
	}
	b, err := ParseGrid(f.Grid)
	if err != nil {
		return GameState{}, fmt.Errorf("fixture %q: %w", f.Name, err)
	}
	return GameState{Board: b, Turn: turn, Ply: f.Ply}, nil
}

func NewFixture(name string, s GameState) Fixture {
	return Fixture{
		Name: name,
		Turn: s.Turn.String(),
		Ply:  s.Ply,
		Grid: s.Board.String(),
	}
}

// ReadFixtures decodes a YAML list of fixtures.
func ReadFixtures(r io.Reader) ([]Fixture, error) {
	var fixtures []Fixture
	if err := yaml.NewDecoder(r).Decode(&fixtures); err != nil {
		return nil, fmt.Errorf("failed to decode fixtures: %w", err)
	}
	return fixtures, nil
}

func WriteFixtures(w io.Writer, fixtures []Fixture) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	if err := encoder.Encode(fixtures); err != nil {
		return fmt.Errorf("failed to encode fixtures: %w", err)
	}
	return nil
}
