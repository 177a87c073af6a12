package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/racetrack/telemetry"
)

// brainDocument wraps an encoded brain with the run it came from.
func (g *Game) brainDocument(data []byte, generation, fitness int) *telemetry.BrainDocument {
	return &telemetry.BrainDocument{
		RNGSeed:    g.rngSeed,
		Generation: generation,
		Fitness:    fitness,
		Brain:      json.RawMessage(data),
	}
}

// SaveBrain writes the best agent's brain to the configured brain file.
func (g *Game) SaveBrain() error {
	return g.SaveBrainTo(g.brainPath)
}

// SaveBrainTo writes the best agent's brain to path.
func (g *Game) SaveBrainTo(path string) error {
	data, err := g.sim.SaveBestBrain(g.codec)
	if err != nil {
		return err
	}

	doc := g.brainDocument(data, g.sim.Generation(), g.sim.BestFitness())
	if err := telemetry.SaveBrainDocument(doc, path); err != nil {
		return err
	}

	slog.Info("brain saved", "path", path, "generation", doc.Generation, "fitness", doc.Fitness)
	return nil
}

// LoadBrain replaces every active brain and the best agent's brain with the
// one in the configured brain file.
func (g *Game) LoadBrain() error {
	return g.LoadBrainFrom(g.brainPath)
}

// LoadBrainFrom replaces every active brain and the best agent's brain with
// the one stored at path. The population is untouched on error.
func (g *Game) LoadBrainFrom(path string) error {
	doc, err := telemetry.LoadBrainDocument(path)
	if err != nil {
		return err
	}
	if err := g.sim.LoadBrain(g.codec, doc.Brain); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	slog.Info("brain loaded", "path", path, "version", doc.Version, "generation", doc.Generation)
	return nil
}

// errEmptyHallOfFame is returned by RecallHallOfFame when there is nothing to
// recall.
var errEmptyHallOfFame = errors.New("hall of fame is empty")

// RecallHallOfFame loads a brain picked from the hall of fame by tournament
// into the population, the same way LoadBrainFrom does.
func (g *Game) RecallHallOfFame() (telemetry.HallEntry, error) {
	if g.hallOfFame == nil {
		return telemetry.HallEntry{}, errEmptyHallOfFame
	}
	entry, ok := g.hallOfFame.Sample()
	if !ok {
		return telemetry.HallEntry{}, errEmptyHallOfFame
	}
	if err := g.sim.LoadBrain(g.codec, entry.Brain); err != nil {
		return telemetry.HallEntry{}, fmt.Errorf("hall of fame entry from generation %d: %w", entry.Generation, err)
	}

	slog.Info("recalled from hall of fame", "generation", entry.Generation, "fitness", entry.Fitness)
	return entry, nil
}
