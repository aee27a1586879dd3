package telemetry

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:   SnapshotVersion,
		RNGSeed:   42,
		Width:     1280,
		Height:    720,
		Frame:     1000,
		ElapsedMs: 16666.5,
		Mode:      "galaxy",
		Profile:   "racing",
		BPM:       150,
		Particles: []ParticleState{
			{X: 150, Y: 250, Z: -3, AnchorX: 140, AnchorY: 260, AnchorZ: 0, Curve: 17, Color: 2, Size: 2.5, Opacity: 0.8},
			{X: 10, Y: 20, Z: 5, Curve: 300, Color: 5, Size: 1, Opacity: 1},
		},
		Reason: "exit",
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot file not created: %v", err)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if !reflect.DeepEqual(snapshot, loaded) {
		t.Errorf("loaded snapshot differs:\n got %+v\nwant %+v", loaded, snapshot)
	}
}

func TestSnapshotFilename(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		snapshot *Snapshot
		want     string
	}{
		{&Snapshot{Version: SnapshotVersion, Frame: 5000, Reason: "user key"}, "snapshot_5000_user_key.json"},
		{&Snapshot{Version: SnapshotVersion, Frame: 3000}, "snapshot_3000.json"},
	}
	for _, tt := range tests {
		path, err := SaveSnapshot(tt.snapshot, tmpDir)
		if err != nil {
			t.Fatalf("SaveSnapshot failed: %v", err)
		}
		if want := filepath.Join(tmpDir, tt.want); path != want {
			t.Errorf("path = %q, want %q", path, want)
		}
	}
}

func TestLoadSnapshotErrors(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := LoadSnapshot(filepath.Join(tmpDir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(tmpDir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(bad); err == nil {
		t.Error("expected error for invalid JSON")
	}

	path, err := SaveSnapshot(&Snapshot{Version: SnapshotVersion + 1, Frame: 1}, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if _, err := LoadSnapshot(path); !errors.Is(err, ErrSnapshotVersion) {
		t.Errorf("err = %v, want ErrSnapshotVersion", err)
	}
}
