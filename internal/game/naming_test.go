package game_test

import (
	"context"
	"testing"

	"github.com/pixil98/go-testutil"
	"github.com/pixil98/go-tollbooth/internal/entity"
	"github.com/pixil98/go-tollbooth/internal/game"
	"github.com/pixil98/go-tollbooth/internal/naming"
	"github.com/pixil98/go-tollbooth/internal/tollbooth"
)

func newEngine(t *testing.T, w *game.World) *tollbooth.Engine {
	t.Helper()

	g, err := naming.NewGenerator(naming.DefaultCatalog(), naming.WithSeed(99))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tollbooth.NewEngine(w, g, tollbooth.WithHooks(
		tollbooth.NewOwnerLinkHook(w, w),
		tollbooth.NewDisplayNameHook(w),
	))
}

func TestWorld_NamingEndToEnd(t *testing.T) {
	w := game.NewWorld()
	highway := w.Spawn()

	var booths []entity.Identity
	for i := 0; i < 1000; i++ {
		id, err := w.SpawnTollBooth(highway)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		booths = append(booths, id)
	}

	e := newEngine(t, w)
	events := 0
	e.Subscribe("counter", tollbooth.ListenerFunc(func(context.Context, tollbooth.NameAssigned) error {
		events++
		return nil
	}))

	if err := e.ProcessTick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "events", events, 1000)
	testutil.AssertEqual(t, "processed", e.ProcessedCount(), 1000)

	for _, id := range booths[:3] {
		rec, err := w.Read(id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testutil.AssertEqual(t, "named", rec.Name.IsNamed(), true)
		testutil.AssertEqual(t, "owner link", rec.Owner, highway)

		custom, ok := w.CustomName(id)
		testutil.AssertEqual(t, "display name set", ok, true)
		testutil.AssertEqual(t, "display name", custom, rec.Name.String())
	}

	for _, id := range booths[:400] {
		if err := w.Destroy(id); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := e.ProcessTick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "events after destroy", events, 1000)
	testutil.AssertEqual(t, "processed after sweep", e.ProcessedCount(), 600)
	for _, id := range booths[400:] {
		testutil.AssertEqual(t, "live processed", e.Processed(id), true)
	}
}
