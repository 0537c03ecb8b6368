// Package visual selects glyph variants for entities whose appearance follows
// their state (idle charge, lit wick, silent wick)
package visual

import "log"

// Fallback is drawn for a set with no glyphs at all
const Fallback = '?'

// VariantProvider is implemented by things that choose their own variant
type VariantProvider interface {
	GraphicVariant() int
}

// VariantSet is an ordered list of glyphs, index 0 is the default
type VariantSet struct {
	Name   string `yaml:"name"`
	Glyphs []rune `yaml:"-"`
}

// NewVariantSet builds a set from a string, one glyph per rune
func NewVariantSet(name, glyphs string) VariantSet {
	return VariantSet{Name: name, Glyphs: []rune(glyphs)}
}

// Default returns the first glyph
func (v VariantSet) Default() rune {
	if len(v.Glyphs) == 0 {
		return Fallback
	}
	return v.Glyphs[0]
}

// Len is the number of variants
func (v VariantSet) Len() int { return len(v.Glyphs) }

// Pick returns the glyph at index; an out of range index is a configuration
// error, logged and answered with the default glyph
func (v VariantSet) Pick(index int) rune {
	if index < 0 || index >= len(v.Glyphs) {
		log.Printf("visual: no variant %d in set %q (%d available), using default", index, v.Name, len(v.Glyphs))
		return v.Default()
	}
	return v.Glyphs[index]
}

// PickFor asks a provider for its variant; non-providers get the default
func (v VariantSet) PickFor(thing any) rune {
	p, ok := thing.(VariantProvider)
	if !ok {
		return v.Default()
	}
	return v.Pick(p.GraphicVariant())
}
