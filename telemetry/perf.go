package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase is one timed part of a simulation tick.
type Phase uint8

const (
	PhaseSimulate  Phase = iota // sim.Update: agents, scoring, rollover
	PhaseTelemetry              // stats flush, CSV and hall of fame writes
	numPhases
)

func (p Phase) String() string {
	switch p {
	case PhaseSimulate:
		return "simulate"
	case PhaseTelemetry:
		return "telemetry"
	default:
		return "unknown"
	}
}

// tickSample is the timing of one tick.
type tickSample struct {
	total  time.Duration
	phases [numPhases]time.Duration
	agents int // active agents when the tick started
}

// PerfCollector times ticks over a rolling window. It is driven from the
// game loop and is not safe for concurrent use.
type PerfCollector struct {
	now func() time.Time

	window []tickSample
	next   int
	filled int

	current    tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector keeps the last windowSize ticks (60 when windowSize < 1).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		now:    time.Now,
		window: make([]tickSample, windowSize),
	}
}

// StartTick begins a tick with the given number of active agents.
func (p *PerfCollector) StartTick(agents int) {
	p.tickStart = p.now()
	p.current = tickSample{agents: agents}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and opens phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := p.now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase < numPhases {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// EndTick closes the tick and stores it in the window.
func (p *PerfCollector) EndTick() {
	now := p.now()
	p.closePhase(now)
	p.current.total = now.Sub(p.tickStart)

	p.window[p.next] = p.current
	p.next = (p.next + 1) % len(p.window)
	if p.filled < len(p.window) {
		p.filled++
	}
}

// RecordFrame marks the start of a rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the current window.
type PerfStats struct {
	Ticks    int // samples in the window
	MeanTick time.Duration
	P50Tick  time.Duration
	P95Tick  time.Duration
	MaxTick  time.Duration

	// Share of tick time per phase, in percent
	PhasePct [numPhases]float64

	// Simulate time per active agent per tick
	AgentCost time.Duration

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats computes the summary over the samples currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{Ticks: p.filled, FrameDuration: p.frame}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return s
	}

	totals := make([]float64, p.filled)
	var phaseSum [numPhases]float64
	var agentTicks int
	for i, sample := range p.window[:p.filled] {
		totals[i] = float64(sample.total)
		for ph, d := range sample.phases {
			phaseSum[ph] += float64(d)
		}
		agentTicks += sample.agents
	}

	mean := stat.Mean(totals, nil)
	sort.Float64s(totals)
	s.MeanTick = time.Duration(mean)
	s.P50Tick = time.Duration(stat.Quantile(0.5, stat.Empirical, totals, nil))
	s.P95Tick = time.Duration(stat.Quantile(0.95, stat.Empirical, totals, nil))
	s.MaxTick = time.Duration(totals[len(totals)-1])

	if sum := mean * float64(p.filled); sum > 0 {
		for ph := range phaseSum {
			s.PhasePct[ph] = phaseSum[ph] / sum * 100
		}
		s.TicksPerSecond = float64(time.Second) / mean
	}
	if agentTicks > 0 {
		s.AgentCost = time.Duration(phaseSum[PhaseSimulate] / float64(agentTicks))
	}
	return s
}

// LogStats logs the summary at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("mean_tick_us", s.MeanTick.Microseconds()),
		slog.Int64("p95_tick_us", s.P95Tick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Int64("agent_ns", s.AgentCost.Nanoseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for ph := Phase(0); ph < numPhases; ph++ {
		attrs = append(attrs, slog.Float64(ph.String()+"_pct", s.PhasePct[ph]))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	Generation   int     `csv:"generation"`
	MeanTickUS   int64   `csv:"mean_tick_us"`
	P50TickUS    int64   `csv:"p50_tick_us"`
	P95TickUS    int64   `csv:"p95_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	AgentNS      int64   `csv:"agent_ns"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	SimulatePct  float64 `csv:"simulate_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the summary for the given generation.
func (s PerfStats) ToCSV(generation int) PerfStatsCSV {
	return PerfStatsCSV{
		Generation:   generation,
		MeanTickUS:   s.MeanTick.Microseconds(),
		P50TickUS:    s.P50Tick.Microseconds(),
		P95TickUS:    s.P95Tick.Microseconds(),
		MaxTickUS:    s.MaxTick.Microseconds(),
		AgentNS:      s.AgentCost.Nanoseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		SimulatePct:  s.PhasePct[PhaseSimulate],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
