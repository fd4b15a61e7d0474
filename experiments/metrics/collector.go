package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Engine       string
	Goroutines   int
	Duration     time.Duration
	Episodes     int
	Cutoff       int
	FullPlayouts int
	Expansions   int
	Nodes        int // Minimax and ending positions visited
}

type MoveMetric struct {
	Step   int
	Player string // Color name
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string // Empty on a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	RedCells       int
	BlueCells      int
}

type Collector interface {
	Start(engine string, goroutines, cutoff int)
	AddFullPlayout()
	AddEpisode()
	AddExpansion()
	AddNodes(n int)
	Complete() SearchMetric
}

type collector struct {
	engine       string
	goroutines   int
	cutoff       int
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	expansions   atomic.Int32
	nodes        atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start(engine string, goroutines, cutoff int) {
	m.startTime = time.Now()
	m.engine = engine
	m.goroutines = goroutines
	m.cutoff = cutoff
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.expansions.Store(0)
	m.nodes.Store(0)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddExpansion() {
	m.expansions.Add(1)
}

func (m *collector) AddNodes(n int) {
	m.nodes.Add(int64(n))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Engine:       m.engine,
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Expansions:   int(m.expansions.Load()),
		Nodes:        int(m.nodes.Load()),
		Cutoff:       m.cutoff,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(engine string, goroutines, cutoff int) {}
func (m *dummyCollector) AddFullPlayout()                             {}
func (m *dummyCollector) AddEpisode()                                 {}
func (m *dummyCollector) AddExpansion()                               {}
func (m *dummyCollector) AddNodes(n int)                              {}
func (m *dummyCollector) Complete() SearchMetric                      { return SearchMetric{} }
