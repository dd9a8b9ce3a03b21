package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the world state at a single frame for debugging and replays.
type Snapshot struct {
	Version int    `json:"version"`
	Session string `json:"session"`
	Seed    int64  `json:"seed"`

	Tick    int64   `json:"tick"`
	TimeSec float64 `json:"time_sec"`
	Score   int     `json:"score"`
	Kills   int     `json:"kills"`

	Actors []ActorState `json:"actors"`
}

// ActorState holds one actor's state at snapshot time.
type ActorState struct {
	ID      uint32 `json:"id"`
	Species string `json:"species"`

	X   float32 `json:"x"`
	Y   float32 `json:"y"`
	Z   float32 `json:"z"`
	Yaw float32 `json:"yaw"`

	DirX  float32 `json:"dir_x"`
	DirZ  float32 `json:"dir_z"`
	Speed float32 `json:"speed"`

	Alive bool `json:"alive"`
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d.json", snapshot.Tick)
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
