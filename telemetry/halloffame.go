package telemetry

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sort"
)

// HallEntry is one generation's best brain and the fitness it reached.
type HallEntry struct {
	Generation int             `json:"generation"`
	Fitness    int             `json:"fitness"`
	Brain      json.RawMessage `json:"brain"`
}

// HallOfFame keeps the highest-scoring brains of a run, best first.
type HallOfFame struct {
	entries    []HallEntry
	maxSize    int
	minFitness int
	rng        *rand.Rand
}

// NewHallOfFame creates a hall holding up to maxSize entries with at least
// minFitness.
func NewHallOfFame(maxSize, minFitness int, rng *rand.Rand) *HallOfFame {
	if maxSize < 1 {
		maxSize = 1
	}
	return &HallOfFame{
		entries:    make([]HallEntry, 0, maxSize),
		maxSize:    maxSize,
		minFitness: minFitness,
		rng:        rng,
	}
}

// Consider offers a generation's best brain for entry.
// Returns true if it was added.
func (hof *HallOfFame) Consider(generation, fitness int, brain []byte) bool {
	if fitness < hof.minFitness || len(brain) == 0 {
		return false
	}

	entry := HallEntry{
		Generation: generation,
		Fitness:    fitness,
		Brain:      append(json.RawMessage(nil), brain...),
	}

	var added bool
	hof.entries, added = hof.insertEntry(hof.entries, entry)
	return added
}

// insertEntry adds an entry to the hall, maintaining sorted order by fitness.
// If the hall is full, the lowest-fitness entry is removed. Ties keep the
// older entry first.
func (hof *HallOfFame) insertEntry(hall []HallEntry, entry HallEntry) ([]HallEntry, bool) {
	// Find insertion point (sorted descending by fitness)
	idx := sort.Search(len(hall), func(i int) bool {
		return hall[i].Fitness < entry.Fitness
	})

	// If hall is full and entry would be last (lowest), skip it
	if len(hall) >= hof.maxSize && idx >= hof.maxSize {
		return hall, false
	}

	hall = append(hall, HallEntry{})
	copy(hall[idx+1:], hall[idx:])
	hall[idx] = entry

	if len(hall) > hof.maxSize {
		hall = hall[:hof.maxSize]
	}

	return hall, true
}

// Best returns the top entry.
func (hof *HallOfFame) Best() (HallEntry, bool) {
	if len(hof.entries) == 0 {
		return HallEntry{}, false
	}
	return hof.entries[0], true
}

// Sample selects an entry using tournament selection.
// Returns false if the hall is empty.
func (hof *HallOfFame) Sample() (HallEntry, bool) {
	if len(hof.entries) == 0 {
		return HallEntry{}, false
	}

	// Tournament selection with k=3
	const tournamentSize = 3
	best := -1
	for i := 0; i < tournamentSize && i < len(hof.entries); i++ {
		idx := hof.rng.Intn(len(hof.entries))
		if best < 0 || hof.entries[idx].Fitness > hof.entries[best].Fitness {
			best = idx
		}
	}
	return hof.entries[best], true
}

// Size returns the number of entries.
func (hof *HallOfFame) Size() int {
	return len(hof.entries)
}

// TopFitness returns the highest fitness in the hall, or 0 if it is empty.
func (hof *HallOfFame) TopFitness() int {
	if len(hof.entries) == 0 {
		return 0
	}
	return hof.entries[0].Fitness
}

// MarshalJSON serializes the hall of fame, best first.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(hof.entries, "", "  ")
}

// LoadHallOfFameFromFile reads a hall of fame JSON file. The hall keeps at
// least maxSize entries or as many as the file holds.
func LoadHallOfFameFromFile(path string, maxSize int, rng *rand.Rand) (*HallOfFame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hall of fame: %w", err)
	}

	var entries []HallEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing hall of fame JSON: %w", err)
	}

	if len(entries) > maxSize {
		maxSize = len(entries)
	}
	hof := NewHallOfFame(maxSize, 0, rng)
	for _, e := range entries {
		hof.entries, _ = hof.insertEntry(hof.entries, e)
	}
	return hof, nil
}
