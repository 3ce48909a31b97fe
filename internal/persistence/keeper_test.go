package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
	"github.com/pixil98/go-tollbooth/internal/entity"
	"github.com/pixil98/go-tollbooth/internal/game"
	"github.com/pixil98/go-tollbooth/internal/tollbooth"
)

type fixedTicks uint64

func (f fixedTicks) Ticks() uint64 {
	return uint64(f)
}

func TestSceneKeeper_RestoreMissingFile(t *testing.T) {
	w := game.NewWorld()
	k := NewSceneKeeper(filepath.Join(t.TempDir(), "scene.zst"), w, fixedTicks(0))

	err := k.Restore(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "entities", len(w.Entities()), 0)
}

func TestSceneKeeper_SaveAndRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.zst")

	w := game.NewWorld()
	id, err := w.SpawnTollBooth(entity.Null)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Write(id, tollbooth.Record{Name: tollbooth.NewName("Ferry Crossing 12")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := NewSceneKeeper(path, w, fixedTicks(9)).Save(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	restored := game.NewWorld()
	if err := NewSceneKeeper(path, restored, fixedTicks(0)).Restore(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, err := restored.Read(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "name", rec.Name.String(), "Ferry Crossing 12")

	s, err := LoadScene(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "tick", s.Header.Tick, uint64(9))
}

func TestSceneKeeper_SavesOnShutdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.zst")

	w := game.NewWorld()
	if _, err := w.SpawnTollBooth(entity.Null); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	k := NewSceneKeeper(path, w, fixedTicks(3), WithAutosave(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- k.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("keeper did not stop")
	}

	s, err := LoadScene(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "entities", len(s.Entities), 1)
}
