package stores

import (
	_ "embed"
	"fmt"
	"sync"
	"time"

	"github.com/ternarybob/salecaption/internal/models"
)

//go:embed builtin.yaml
var builtinDocument []byte

var (
	builtinOnce   sync.Once
	builtinStores []models.Store
	builtinErr    error
)

// Builtin returns a fresh copy of the built-in store catalog.
func Builtin() []models.Store {
	builtinOnce.Do(func() {
		builtinStores, builtinErr = Decode(builtinDocument, FormatYAML)
	})
	if builtinErr != nil {
		panic(fmt.Sprintf("built-in catalog is malformed: %v", builtinErr))
	}
	return cloneStores(builtinStores)
}

func cloneStores(in []models.Store) []models.Store {
	out := make([]models.Store, len(in))
	for i, s := range in {
		out[i] = cloneStore(s)
	}
	return out
}

func cloneStore(s models.Store) models.Store {
	c := s
	c.SaleTypes = make([]models.SaleTemplate, len(s.SaleTypes))
	for i, t := range s.SaleTypes {
		ct := t
		if t.Routing != nil {
			ct.Routing = make([]models.RoutingRule, len(t.Routing))
			for j, r := range t.Routing {
				cr := r
				cr.Weekdays = append([]time.Weekday(nil), r.Weekdays...)
				ct.Routing[j] = cr
			}
		}
		c.SaleTypes[i] = ct
	}
	return c
}
