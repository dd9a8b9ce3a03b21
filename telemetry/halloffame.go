package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// HallEntry is one ranked session in the hall of fame.
type HallEntry struct {
	Session  string  `json:"session"`
	Seed     int64   `json:"seed"`
	Score    int     `json:"score"`
	Kills    int     `json:"kills"`
	Accuracy float64 `json:"accuracy"`
	Duration float64 `json:"duration_sec"`
	Fitness  float64 `json:"fitness"`
}

// HallOfFame keeps the best sessions of a batch run, ranked by fitness.
// Used by headless sweeps to surface the seeds worth replaying.
type HallOfFame struct {
	MaxSize int         `json:"max_size"`
	Entries []HallEntry `json:"entries"`
}

// NewHallOfFame creates a hall with the given capacity.
func NewHallOfFame(maxSize int) *HallOfFame {
	if maxSize < 1 {
		maxSize = 10
	}
	return &HallOfFame{MaxSize: maxSize}
}

// Consider inserts the session if it ranks among the best. Returns true
// when the session entered the hall.
func (hof *HallOfFame) Consider(summary SessionSummary) bool {
	entry := HallEntry{
		Session:  summary.Session,
		Seed:     summary.Seed,
		Score:    summary.Score,
		Kills:    summary.Kills,
		Accuracy: summary.Accuracy,
		Duration: summary.DurationSec,
		Fitness:  calculateFitness(summary),
	}

	if len(hof.Entries) >= hof.MaxSize && entry.Fitness <= hof.Entries[len(hof.Entries)-1].Fitness {
		return false
	}

	// Insert sorted, highest fitness first
	idx := sort.Search(len(hof.Entries), func(i int) bool {
		return hof.Entries[i].Fitness < entry.Fitness
	})
	hof.Entries = append(hof.Entries, HallEntry{})
	copy(hof.Entries[idx+1:], hof.Entries[idx:])
	hof.Entries[idx] = entry

	if len(hof.Entries) > hof.MaxSize {
		hof.Entries = hof.Entries[:hof.MaxSize]
	}

	return true
}

// calculateFitness ranks a session. Score dominates; faster and more
// accurate runs break ties.
func calculateFitness(s SessionSummary) float64 {
	fitness := float64(s.Score)
	fitness += s.Accuracy * 10
	if s.Completed && s.DurationSec > 0 {
		fitness += 100 / s.DurationSec
	}
	return fitness
}

// Top returns the best entry, or false when the hall is empty.
func (hof *HallOfFame) Top() (HallEntry, bool) {
	if len(hof.Entries) == 0 {
		return HallEntry{}, false
	}
	return hof.Entries[0], true
}

// Size returns the number of entries.
func (hof *HallOfFame) Size() int {
	return len(hof.Entries)
}

// Save writes the hall of fame as JSON.
func (hof *HallOfFame) Save(path string) error {
	data, err := json.MarshalIndent(hof, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal hall of fame: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write hall of fame: %w", err)
	}
	return nil
}

// LoadHallOfFame reads a hall of fame from disk.
func LoadHallOfFame(path string) (*HallOfFame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hall of fame: %w", err)
	}
	var hof HallOfFame
	if err := json.Unmarshal(data, &hof); err != nil {
		return nil, fmt.Errorf("unmarshal hall of fame: %w", err)
	}
	return &hof, nil
}
