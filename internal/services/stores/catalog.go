package stores

import (
	"context"
	"fmt"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/salecaption/internal/interfaces"
	"github.com/ternarybob/salecaption/internal/models"
)

// Catalog owns the merged store catalog: built-ins first, then custom sources in order.
// Readers receive snapshots; AddDefinition rebuilds the merge.
type Catalog struct {
	logger   arbor.ILogger
	mu       sync.RWMutex
	customs  []models.Store
	merged   *models.Catalog
	warnings []MergeWarning
}

// NewCatalog loads every source and merges it over the built-in catalog.
// A failing source aborts construction.
func NewCatalog(ctx context.Context, logger arbor.ILogger, sources ...interfaces.CatalogSource) (*Catalog, error) {
	c := &Catalog{logger: logger}
	for i, src := range sources {
		stores, err := src.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog source %d: %w", i+1, err)
		}
		c.customs = append(c.customs, stores...)
	}
	c.rebuild()
	return c, nil
}

func (c *Catalog) rebuild() {
	merged, warnings := Merge(Builtin(), c.customs)
	for _, w := range warnings {
		c.logger.Warn().
			Str("store", w.StoreKey).
			Str("sale_type", w.SaleTypeKey).
			Msg("Custom sale type ignored: built-in template owns this key")
	}
	c.merged = merged
	c.warnings = warnings
	c.logger.Debug().
		Int("stores", len(merged.Stores)).
		Int("custom_stores", len(c.customs)).
		Msg("Store catalog merged")
}

// Snapshot returns an independent copy of the merged catalog.
func (c *Catalog) Snapshot() *models.Catalog {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return &models.Catalog{Stores: cloneStores(c.merged.Stores)}
}

// Store looks up a store by key.
func (c *Catalog) Store(key string) (models.Store, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.merged.Store(key)
	if !ok {
		return models.Store{}, false
	}
	return cloneStore(s), true
}

// Keys returns store keys in catalog order.
func (c *Catalog) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.merged.Keys()
}

// DefaultStoreKey returns the first store key of the merged catalog.
func (c *Catalog) DefaultStoreKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.merged.DefaultStoreKey()
}

// Match finds the store whose name matches a detected store name.
func (c *Catalog) Match(detected string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return MatchStore(c.merged, detected)
}

// Warnings returns the conflicts recorded by the last merge.
func (c *Catalog) Warnings() []MergeWarning {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]MergeWarning(nil), c.warnings...)
}

// AddDefinition validates d, appends it as a custom store and re-merges.
// It returns the store key the definition was filed under.
func (c *Catalog) AddDefinition(d Definition) (string, error) {
	store, err := NewDefinition(d)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.customs = append(c.customs, store)
	c.rebuild()

	c.logger.Info().
		Str("store", store.Key).
		Str("sale_type", store.SaleTypes[0].Key).
		Msg("Custom store definition added")
	return store.Key, nil
}
