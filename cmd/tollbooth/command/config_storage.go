package command

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-tollbooth/internal/game"
	"github.com/pixil98/go-tollbooth/internal/ledger"
	"github.com/pixil98/go-tollbooth/internal/naming"
	"github.com/pixil98/go-tollbooth/internal/persistence"
	"github.com/pixil98/go-tollbooth/internal/storage"
)

const defaultCatalogId = "default"

type StorageConfig struct {
	// CatalogPath is either a YAML catalog file or a directory of JSON
	// catalog assets. Empty uses the built-in catalog.
	CatalogPath string `json:"catalog_path"`
	CatalogId   string `json:"catalog_id"`
	ScenePath   string `json:"scene_path"`
	Autosave    string `json:"autosave"`
	LedgerPath  string `json:"ledger_path"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()

	if c.CatalogPath != "" {
		_, err := os.Stat(c.CatalogPath)
		if err != nil {
			el.Add(fmt.Errorf("storage: invalid catalog_path %q: %w", c.CatalogPath, err))
		}
	}

	if c.Autosave != "" {
		if c.ScenePath == "" {
			el.Add(fmt.Errorf("storage: autosave requires scene_path"))
		}
		_, err := time.ParseDuration(c.Autosave)
		if err != nil {
			el.Add(fmt.Errorf("storage: parsing autosave: %w", err))
		}
	}

	return el.Err()
}

func (c *StorageConfig) catalogId() storage.Identifier {
	if c.CatalogId == "" {
		return defaultCatalogId
	}
	return storage.Identifier(c.CatalogId)
}

func (c *StorageConfig) buildCatalog() (*naming.Catalog, error) {
	if c.CatalogPath == "" {
		return naming.DefaultCatalog(), nil
	}

	switch filepath.Ext(c.CatalogPath) {
	case ".yaml", ".yml":
		return naming.LoadCatalog(c.CatalogPath)
	}

	store, err := storage.NewFileStore[*naming.Catalog](c.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("creating catalog store: %w", err)
	}

	return selectCatalog(store, c.catalogId())
}

// selectCatalog returns catalog id from store, seeding the built-in catalog
// into an empty store first.
func selectCatalog(store storage.Storer[*naming.Catalog], id storage.Identifier) (*naming.Catalog, error) {
	if len(store.Ids()) == 0 {
		slog.Info("catalog store empty, seeding built-in catalog", "id", defaultCatalogId)
		if err := store.Save(defaultCatalogId, naming.DefaultCatalog()); err != nil {
			return nil, fmt.Errorf("seeding catalog store: %w", err)
		}
	}

	cat, ok := store.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("catalog %q not found (have %v)", id, store.Ids())
	}
	return cat, nil
}

// buildSceneKeeper returns nil when no scene path is configured.
func (c *StorageConfig) buildSceneKeeper(world *game.World, ticks persistence.TickCounter) (*persistence.SceneKeeper, error) {
	if c.ScenePath == "" {
		return nil, nil
	}

	var opts []persistence.SceneKeeperOpt
	if c.Autosave != "" {
		d, err := time.ParseDuration(c.Autosave)
		if err != nil {
			return nil, fmt.Errorf("parsing autosave: %w", err)
		}
		opts = append(opts, persistence.WithAutosave(d))
	}

	return persistence.NewSceneKeeper(c.ScenePath, world, ticks, opts...), nil
}

// buildLedger returns nil when no ledger path is configured.
func (c *StorageConfig) buildLedger() (*ledger.SQLiteLedger, error) {
	if c.LedgerPath == "" {
		return nil, nil
	}
	return ledger.OpenSQLite(c.LedgerPath)
}
