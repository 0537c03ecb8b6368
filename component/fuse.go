package component

import "github.com/lixenwraith/wick/fuse"

// FuseComponent attaches a fuse state machine to an explosive entity
type FuseComponent struct {
	Machine *fuse.Machine

	// Definition names the explosive definition the props came from, used for
	// hot reload and saves
	Definition string
}

// Glyph variants of explosives
const (
	FuseVariantIdle = iota
	FuseVariantLit
	FuseVariantSilent
)

// GraphicVariant reports the variant matching the fuse state
func (f FuseComponent) GraphicVariant() int {
	if f.Machine == nil {
		return FuseVariantIdle
	}
	switch f.Machine.State() {
	case fuse.StateArmedAudible:
		return FuseVariantLit
	case fuse.StateArmedSilent:
		return FuseVariantSilent
	default:
		return FuseVariantIdle
	}
}
