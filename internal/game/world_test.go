package game

import (
	"context"
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
	"github.com/pixil98/go-tollbooth/internal/entity"
	"github.com/pixil98/go-tollbooth/internal/tollbooth"
)

func TestWorld_SpawnAndDestroy(t *testing.T) {
	w := NewWorld()

	highway := w.Spawn()
	booth, err := w.SpawnTollBooth(highway)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "highway live", w.IsLive(highway), true)
	testutil.AssertEqual(t, "booth is toll booth", w.HasTollBooth(booth), true)
	testutil.AssertEqual(t, "highway is toll booth", w.HasTollBooth(highway), false)

	owner, ok := w.OwnerOf(booth)
	testutil.AssertEqual(t, "has owner", ok, true)
	testutil.AssertEqual(t, "owner", owner, highway)

	rec, err := w.Read(booth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "unnamed", rec.Name.IsNamed(), false)
	testutil.AssertEqual(t, "owner link empty", rec.HasOwner(), false)

	if err := w.Destroy(booth); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "booth live", w.IsLive(booth), false)
	_, ok = w.OwnerOf(booth)
	testutil.AssertEqual(t, "owner removed", ok, false)

	err = w.Destroy(booth)
	if !errors.Is(err, ErrEntityNotFound) {
		t.Errorf("expected ErrEntityNotFound, got %v", err)
	}
}

func TestWorld_RecycledSlotGetsNewVersion(t *testing.T) {
	w := NewWorld()

	first, err := w.SpawnTollBooth(entity.Null)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Destroy(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := w.SpawnTollBooth(entity.Null)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "same slot", second.Index, first.Index)
	testutil.AssertEqual(t, "new version", second.Version, first.Version+1)
	testutil.AssertEqual(t, "stale live", w.IsLive(first), false)

	err = w.Write(first, tollbooth.Record{Name: tollbooth.NewName("Harbor Gate")})
	if !errors.Is(err, ErrStaleIdentity) {
		t.Errorf("expected ErrStaleIdentity, got %v", err)
	}

	rec, err := w.Read(second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "recycled unnamed", rec.Name.IsNamed(), false)
}

func TestWorld_SpawnTollBoothBadOwner(t *testing.T) {
	w := NewWorld()
	_, err := w.SpawnTollBooth(entity.Identity{Index: 7, Version: 1})
	if !errors.Is(err, ErrEntityNotFound) {
		t.Errorf("expected ErrEntityNotFound, got %v", err)
	}
}

func TestWorld_Write(t *testing.T) {
	w := NewWorld()
	plain := w.Spawn()
	booth, err := w.SpawnTollBooth(entity.Null)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := map[string]struct {
		id     entity.Identity
		expErr error
	}{
		"toll booth":     {id: booth},
		"not toll booth": {id: plain, expErr: ErrNotTollBooth},
		"null":           {id: entity.Null, expErr: ErrEntityNotFound},
		"unknown slot":   {id: entity.Identity{Index: 50, Version: 1}, expErr: ErrEntityNotFound},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := w.Write(tt.id, tollbooth.Record{Name: tollbooth.NewName("Eagle Pass")})
			if tt.expErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.expErr) {
				t.Errorf("expected %v, got %v", tt.expErr, err)
			}
		})
	}
}

func TestWorld_QueryOrder(t *testing.T) {
	w := NewWorld()
	var ids []entity.Identity
	for i := 0; i < 5; i++ {
		id, err := w.SpawnTollBooth(entity.Null)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ids = append(ids, id)
	}
	w.Spawn()

	got, err := w.Query(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "count", len(got), len(ids))
	for i, c := range got {
		testutil.AssertEqual(t, "order", c.ID, ids[i])
	}
}

func TestWorld_Restore(t *testing.T) {
	w := NewWorld()
	owner := entity.Identity{Index: 2, Version: 4}
	booth := entity.Identity{Index: 5, Version: 3}
	rec := tollbooth.Record{Name: tollbooth.NewName("Summit Pass"), Owner: owner}

	if err := w.Restore(owner, nil, entity.Null, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Restore(booth, &rec, owner, "Summit Pass"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := w.Restore(booth, &rec, owner, "")
	if !errors.Is(err, ErrSlotOccupied) {
		t.Errorf("expected ErrSlotOccupied, got %v", err)
	}

	got, err := w.Read(booth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "name", got.Name.String(), "Summit Pass")
	testutil.AssertEqual(t, "owner link", got.Owner, owner)

	custom, _ := w.CustomName(booth)
	testutil.AssertEqual(t, "custom name", custom, "Summit Pass")

	// New entities fill the gaps left by the restored slots.
	fresh := w.Spawn()
	if fresh.Index == owner.Index || fresh.Index == booth.Index || fresh.Index == 0 {
		t.Errorf("spawned into reserved or occupied slot %s", fresh)
	}
	testutil.AssertEqual(t, "entities", len(w.Entities()), 3)
}

func TestCommandQueue_Tick(t *testing.T) {
	w := NewWorld()
	q := NewCommandQueue(w)

	var spawned entity.Identity
	q.Enqueue(Command{Name: "spawn", Apply: func(w *World) error {
		id, err := w.SpawnTollBooth(entity.Null)
		spawned = id
		return err
	}})
	q.Enqueue(Command{Name: "bad destroy", Apply: func(w *World) error {
		return w.Destroy(entity.Identity{Index: 99, Version: 1})
	}})

	testutil.AssertEqual(t, "not applied yet", len(w.Entities()), 0)

	if err := q.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "spawned live", w.HasTollBooth(spawned), true)

	// Queue drained.
	if err := q.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "entities", len(w.Entities()), 1)
}

func TestWorld_Snapshot(t *testing.T) {
	w := NewWorld()

	highway := w.Spawn()
	booth, err := w.SpawnTollBooth(highway)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Write(booth, tollbooth.Record{Name: tollbooth.NewName("Summit Pass"), Owner: highway}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.SetCustomName(booth, "Summit Pass"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gone, err := w.SpawnTollBooth(entity.Null)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Destroy(gone); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := w.Snapshot()
	testutil.AssertEqual(t, "entities", len(snap), 2)

	testutil.AssertEqual(t, "highway id", snap[0].ID, highway)
	testutil.AssertEqual(t, "highway is toll booth", snap[0].TollBooth != nil, false)

	testutil.AssertEqual(t, "booth id", snap[1].ID, booth)
	if snap[1].TollBooth == nil {
		t.Fatal("expected toll booth record")
	}
	testutil.AssertEqual(t, "name", snap[1].TollBooth.Name.String(), "Summit Pass")
	testutil.AssertEqual(t, "owner", snap[1].Owner, highway)
	testutil.AssertEqual(t, "custom name", snap[1].CustomName, "Summit Pass")

	// The snapshot is a copy.
	if err := w.Write(booth, tollbooth.Record{Name: tollbooth.NewName("Eagle Pass")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "copied name", snap[1].TollBooth.Name.String(), "Summit Pass")
}
