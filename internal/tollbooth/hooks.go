package tollbooth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-tollbooth/internal/entity"
)

// Hook runs after the engine has successfully written a new name. Hooks cannot
// undo the assignment; their errors are logged.
type Hook interface {
	Key() string
	AfterAssign(ctx context.Context, id entity.Identity, rec Record) error
}

// OwnerLookup resolves the entity that owns a toll booth in the host world.
type OwnerLookup interface {
	OwnerOf(id entity.Identity) (entity.Identity, bool)
}

// OwnerLinkHook copies the host owner reference into the record once. It does
// not gate naming.
type OwnerLinkHook struct {
	owners OwnerLookup
	store  Store
}

func NewOwnerLinkHook(owners OwnerLookup, store Store) *OwnerLinkHook {
	return &OwnerLinkHook{owners: owners, store: store}
}

func (h *OwnerLinkHook) Key() string {
	return "owner-link"
}

func (h *OwnerLinkHook) AfterAssign(ctx context.Context, id entity.Identity, rec Record) error {
	if rec.HasOwner() {
		return nil
	}

	owner, ok := h.owners.OwnerOf(id)
	if !ok {
		slog.WarnContext(ctx, "toll booth has no owner", "entity", id.String())
		return nil
	}

	rec.Owner = owner
	if err := h.store.Write(id, rec); err != nil {
		return fmt.Errorf("writing owner link: %w", err)
	}

	slog.InfoContext(ctx, "toll booth owner linked", "entity", id.String(), "owner", owner.String())
	return nil
}

// DisplayNamer is the host registry of custom entity names shown outside the
// toll booth panel.
type DisplayNamer interface {
	SetCustomName(id entity.Identity, name string) error
}

// DisplayNameHook mirrors assigned names into the host display name registry.
type DisplayNameHook struct {
	names DisplayNamer
}

func NewDisplayNameHook(names DisplayNamer) *DisplayNameHook {
	return &DisplayNameHook{names: names}
}

func (h *DisplayNameHook) Key() string {
	return "display-name"
}

func (h *DisplayNameHook) AfterAssign(_ context.Context, id entity.Identity, rec Record) error {
	if err := h.names.SetCustomName(id, rec.Name.String()); err != nil {
		return fmt.Errorf("setting display name: %w", err)
	}
	return nil
}
