package game

import (
	"log/slog"

	"github.com/pthm-cable/racetrack/telemetry"
)

// flushTelemetry records the generation that just finished, if any.
func (g *Game) flushTelemetry() {
	report, ok := g.sim.LastReport()
	if !g.collector.ShouldFlush(report, ok) {
		return
	}

	stats := g.collector.Flush(report)
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteGeneration(stats); err != nil {
			slog.Error("failed to write generation", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.Generation); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	g.recordBest(stats)
}

// recordBest offers the generation's best brain to the hall of fame and
// writes it out when it set a new record.
func (g *Game) recordBest(stats telemetry.GenerationStats) {
	newRecord := stats.Stagnation == 0 && stats.BestFitness > 0
	if g.hallOfFame == nil && (g.outputManager == nil || !newRecord) {
		return
	}

	data, err := g.sim.SaveBestBrain(g.codec)
	if err != nil {
		slog.Error("failed to encode best brain", "error", err)
		return
	}

	if g.hallOfFame != nil && g.hallOfFame.Consider(stats.Generation, stats.BestFitness, data) {
		if err := g.outputManager.WriteHallOfFame(g.hallOfFame); err != nil {
			slog.Error("failed to write hall of fame", "error", err)
		}
	}

	if newRecord {
		doc := g.brainDocument(data, stats.Generation, stats.BestFitness)
		if err := g.outputManager.WriteBestBrain(doc); err != nil {
			slog.Error("failed to write best brain", "error", err)
		}
	}
}
