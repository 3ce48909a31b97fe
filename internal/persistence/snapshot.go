package persistence

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/pixil98/go-tollbooth/internal/game"
)

// Capture builds a scene from a consistent snapshot of the world.
func Capture(w *game.World, tick uint64) (*SceneV1, error) {
	s := &SceneV1{Header: Header{Version: SceneVersion, Tick: tick}}

	for _, e := range w.Snapshot() {
		s.Entities = append(s.Entities, EntityV1{
			ID:         e.ID,
			TollBooth:  e.TollBooth,
			Owner:      e.Owner,
			CustomName: e.CustomName,
		})
	}

	return s, nil
}

// Apply restores every entity in the scene into an empty world.
func Apply(s *SceneV1, w *game.World) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("validating scene: %w", err)
	}

	for _, e := range s.Entities {
		if err := w.Restore(e.ID, e.TollBooth, e.Owner, e.CustomName); err != nil {
			return err
		}
	}
	return nil
}

// SaveScene writes s as zstd-compressed JSON, replacing path atomically.
func SaveScene(path string, s *SceneV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating scene directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := writeScene(tmp, s); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil && !os.IsNotExist(removeErr) {
			slog.Warn("failed to remove temp scene", "path", tmp, "error", removeErr)
		}
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming temp scene: %w", err)
	}
	return nil
}

func writeScene(path string, s *SceneV1) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating scene file: %w", err)
	}
	defer func() { _ = f.Close() }()

	bw := bufio.NewWriter(f)
	zw, err := zstd.NewWriter(bw)
	if err != nil {
		return fmt.Errorf("creating zstd writer: %w", err)
	}

	if err := json.NewEncoder(zw).Encode(s); err != nil {
		_ = zw.Close()
		return fmt.Errorf("encoding scene: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing zstd writer: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing scene: %w", err)
	}
	return f.Close()
}

// LoadScene reads a scene written by SaveScene.
func LoadScene(path string) (*SceneV1, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scene: %w", err)
	}

	// Ignoring close error - file is read-only, error is not actionable
	defer func() { _ = f.Close() }()

	zr, err := zstd.NewReader(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decoding scene: creating zstd reader: %w", err)
	}
	defer zr.Close()

	var s SceneV1
	if err := json.NewDecoder(zr).Decode(&s); err != nil {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}
	return &s, nil
}
