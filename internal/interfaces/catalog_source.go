package interfaces

import (
	"context"

	"github.com/ternarybob/salecaption/internal/models"
)

// CatalogSource supplies custom store definitions that extend the built-in catalog.
// Implementations are read-only.
type CatalogSource interface {
	Load(ctx context.Context) ([]models.Store, error)
}
