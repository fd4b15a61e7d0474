package game

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// PositionSet is a set of boards known to favour the side that reached them.
// It starts empty and only grows through Add or ReadPositionSet.
type PositionSet struct {
	mu        sync.RWMutex
	positions map[Board]struct{}
}

func NewPositionSet(boards ...Board) *PositionSet {
	s := &PositionSet{positions: make(map[Board]struct{}, len(boards))}
	for _, b := range boards {
		s.positions[b] = struct{}{}
	}
	return s
}

func (s *PositionSet) Add(b Board) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[b] = struct{}{}
}

func (s *PositionSet) Contains(b Board) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.positions[b]
	return ok
}

func (s *PositionSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.positions)
}

// ReadPositionSet reads one fingerprint per line. Blank lines and lines
// starting with '#' are skipped.
func ReadPositionSet(r io.Reader) (*PositionSet, error) {
	s := NewPositionSet()
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		b, err := ParseBoard(text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse position on line %d: %w", line, err)
		}
		s.positions[b] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read positions: %w", err)
	}
	return s, nil
}

// WriteTo writes the fingerprints in sorted order.
func (s *PositionSet) WriteTo(w io.Writer) (int64, error) {
	s.mu.RLock()
	lines := lo.MapToSlice(s.positions, func(b Board, _ struct{}) string {
		return b.Fingerprint()
	})
	s.mu.RUnlock()
	sort.Strings(lines)

	var written int64
	for _, line := range lines {
		n, err := io.WriteString(w, line+"\n")
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("failed to write positions: %w", err)
		}
	}
	return written, nil
}
