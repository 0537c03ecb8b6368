package component

import "github.com/lixenwraith/wick/visual"

// GlyphComponent is the drawable appearance of an entity
type GlyphComponent struct {
	Set visual.VariantSet

	// Variant is the index into Set, refreshed by the owning system
	Variant int
}
