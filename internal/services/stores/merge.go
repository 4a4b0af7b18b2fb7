package stores

import (
	"fmt"

	"github.com/ternarybob/salecaption/internal/models"
)

// MergeWarning reports a custom sale type that was ignored because a built-in owns its key.
type MergeWarning struct {
	StoreKey    string
	SaleTypeKey string
}

func (w MergeWarning) String() string {
	return fmt.Sprintf("custom sale type %s/%s conflicts with a built-in and was ignored", w.StoreKey, w.SaleTypeKey)
}

// Merge combines built-in and custom stores. Built-in stores come first in their own
// order; customs extend an existing store with new sale type keys or append new stores.
// A custom sale type never replaces a built-in one; later customs replace earlier customs.
func Merge(builtins, customs []models.Store) (*models.Catalog, []MergeWarning) {
	catalog := &models.Catalog{Stores: cloneStores(builtins)}
	builtinKeys := make(map[string]map[string]bool, len(builtins))
	for _, s := range builtins {
		keys := make(map[string]bool, len(s.SaleTypes))
		for _, t := range s.SaleTypes {
			keys[t.Key] = true
		}
		builtinKeys[s.Key] = keys
	}

	var warnings []MergeWarning
	for _, custom := range customs {
		idx := indexOf(catalog, custom.Key)
		if idx < 0 {
			s := cloneStore(custom)
			s.Custom = true
			catalog.Stores = append(catalog.Stores, s)
			continue
		}
		target := &catalog.Stores[idx]
		for _, t := range custom.SaleTypes {
			if builtinKeys[custom.Key][t.Key] {
				warnings = append(warnings, MergeWarning{StoreKey: custom.Key, SaleTypeKey: t.Key})
				continue
			}
			replaced := false
			for i := range target.SaleTypes {
				if target.SaleTypes[i].Key == t.Key {
					target.SaleTypes[i] = t
					replaced = true
					break
				}
			}
			if !replaced {
				target.SaleTypes = append(target.SaleTypes, t)
			}
			target.Custom = true
		}
	}
	return catalog, warnings
}

func indexOf(c *models.Catalog, key string) int {
	for i, s := range c.Stores {
		if s.Key == key {
			return i
		}
	}
	return -1
}
