package engine

import (
	"github.com/lixenwraith/wick/core"
)

// AnyStore provides type-erased operations for lifecycle management
// World destroys entities and clears stores through it without knowing T
type AnyStore interface {
	Remove(e core.Entity)
	Has(e core.Entity) bool
	Count() int
	Clear()
}
