package metrics

import (
	"time"

	"github.com/coder/quartz"
)

type SearchMetric struct {
	Algorithm   string
	Depth       int
	Duration    time.Duration
	Nodes       int // Successor states generated
	Evaluations int // Evaluation function calls at the horizon or on terminal states
	Cutoffs     int
}

type MoveMetric struct {
	Step  int
	Agent int
	SearchMetric
}

type GameMetric struct {
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	FinalScore float64
}

// Collector accumulates the counters of a single search. Searches are sequential, so a
// collector is not safe for concurrent use.
type Collector interface {
	Start(algorithm string, depth int)
	AddNode()
	AddEvaluation()
	AddCutoff()
	Complete() SearchMetric
}

type collector struct {
	clock     quartz.Clock
	algorithm string
	depth     int
	startTime time.Time
	nodes     int
	leaves    int
	cutoffs   int
}

func NewCollector(clock quartz.Clock) Collector {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &collector{clock: clock}
}

func (m *collector) Start(algorithm string, depth int) {
	m.startTime = m.clock.Now()
	m.algorithm = algorithm
	m.depth = depth
	m.nodes = 0
	m.leaves = 0
	m.cutoffs = 0
}

func (m *collector) AddNode() {
	m.nodes++
}

func (m *collector) AddEvaluation() {
	m.leaves++
}

func (m *collector) AddCutoff() {
	m.cutoffs++
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Algorithm:   m.algorithm,
		Depth:       m.depth,
		Duration:    m.clock.Since(m.startTime),
		Nodes:       m.nodes,
		Evaluations: m.leaves,
		Cutoffs:     m.cutoffs,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(algorithm string, depth int) {}
func (m *dummyCollector) AddNode()                          {}
func (m *dummyCollector) AddEvaluation()                    {}
func (m *dummyCollector) AddCutoff()                        {}
func (m *dummyCollector) Complete() SearchMetric            { return SearchMetric{} }
