package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// ErrSnapshotVersion is returned when loading a snapshot in another format.
var ErrSnapshotVersion = errors.New("unsupported snapshot version")

// Snapshot holds the particle field at one frame.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Frame     int64   `json:"frame"`
	ElapsedMs float64 `json:"elapsed_ms"`
	Mode      string  `json:"mode"`
	Profile   string  `json:"profile"`
	BPM       float64 `json:"bpm"`

	Particles []ParticleState `json:"particles"`

	Reason string `json:"reason,omitempty"`
}

// ParticleState holds one particle's state, in creation order.
type ParticleState struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`

	AnchorX float64 `json:"anchor_x"`
	AnchorY float64 `json:"anchor_y"`
	AnchorZ float64 `json:"anchor_z"`
	Curve   int     `json:"curve"`

	Color   int     `json:"color"`
	Size    float64 `json:"size"`
	Opacity float64 `json:"opacity"`
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Frame)
	if snapshot.Reason != "" {
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Frame, strings.ReplaceAll(snapshot.Reason, " ", "_"))
	}
	path := filepath.Join(dir, name+".json")

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
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: snapshot version %d, want %d", ErrSnapshotVersion, snapshot.Version, SnapshotVersion)
	}
	return &snapshot, nil
}
