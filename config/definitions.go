package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/wick/fuse"
	"github.com/lixenwraith/wick/parameter"
	"github.com/lixenwraith/wick/visual"
)

//go:embed defaults.yaml
var defaultDefinitions []byte

// ErrNoDefinitions is returned for a file defining no explosives
var ErrNoDefinitions = errors.New("config: no explosive definitions")

// ExplosiveDef is a named explosive kind
type ExplosiveDef struct {
	Name         string
	Glyphs       visual.VariantSet
	MaxHitPoints int
	Props        *fuse.Props
}

// AgentDef is a named creature kind
type AgentDef struct {
	Name         string
	Glyph        visual.VariantSet
	Intelligence fuse.Intelligence
	HitPoints    int
}

// Definitions is a loaded definitions file
type Definitions struct {
	explosives     map[string]*ExplosiveDef
	explosiveOrder []string
	agents         map[string]*AgentDef
	agentOrder     []string
}

type explosiveSpec struct {
	Name               string           `yaml:"name"`
	Glyphs             string           `yaml:"glyphs"`
	MaxHitPoints       int              `yaml:"max_hit_points"`
	Radius             *float64         `yaml:"radius"`
	ExpandPerStack     *float64         `yaml:"expand_per_stack"`
	Damage             *fuse.DamageKind `yaml:"damage"`
	WickTicks          *fuse.IntRange   `yaml:"wick_ticks"`
	StartWickHPPercent *float64         `yaml:"start_wick_hp_percent"`
}

type agentSpec struct {
	Name         string            `yaml:"name"`
	Glyph        string            `yaml:"glyph"`
	Intelligence fuse.Intelligence `yaml:"intelligence"`
	HitPoints    int               `yaml:"hit_points"`
}

type definitionsFile struct {
	Explosives []explosiveSpec `yaml:"explosives"`
	Agents     []agentSpec     `yaml:"agents"`
}

// DefaultDefinitions returns the built-in set
func DefaultDefinitions() *Definitions {
	defs, err := ParseDefinitions(defaultDefinitions)
	if err != nil {
		panic(fmt.Sprintf("config: built-in definitions invalid: %v", err))
	}
	return defs
}

// LoadDefinitions reads a definitions file; an empty path loads the built-in set
func LoadDefinitions(path string) (*Definitions, error) {
	if path == "" {
		return DefaultDefinitions(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	defs, err := ParseDefinitions(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return defs, nil
}

// ParseDefinitions decodes and validates a definitions document
func ParseDefinitions(data []byte) (*Definitions, error) {
	var file definitionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if len(file.Explosives) == 0 {
		return nil, ErrNoDefinitions
	}

	defs := &Definitions{
		explosives: make(map[string]*ExplosiveDef, len(file.Explosives)),
		agents:     make(map[string]*AgentDef, len(file.Agents)),
	}
	for i, spec := range file.Explosives {
		def, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("explosive %d (%q): %w", i, spec.Name, err)
		}
		if _, dup := defs.explosives[def.Name]; dup {
			return nil, fmt.Errorf("explosive %q defined twice", def.Name)
		}
		defs.explosives[def.Name] = def
		defs.explosiveOrder = append(defs.explosiveOrder, def.Name)
	}
	for i, spec := range file.Agents {
		def, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("agent %d (%q): %w", i, spec.Name, err)
		}
		if _, dup := defs.agents[def.Name]; dup {
			return nil, fmt.Errorf("agent %q defined twice", def.Name)
		}
		defs.agents[def.Name] = def
		defs.agentOrder = append(defs.agentOrder, def.Name)
	}
	return defs, nil
}

func (s explosiveSpec) build() (*ExplosiveDef, error) {
	if s.Name == "" {
		return nil, errors.New("missing name")
	}
	props := &fuse.Props{
		ExplosiveRadius:           parameter.DefaultExplosiveRadius,
		ExpandPerStackCount:       parameter.DefaultExpandPerStack,
		DamageKind:                fuse.DamageBomb,
		WickTicks:                 fuse.IntRange{Min: parameter.DefaultWickTicksMin, Max: parameter.DefaultWickTicksMax},
		StartWickHitPointsPercent: parameter.DefaultStartWickHPPercent,
	}
	if s.Radius != nil {
		props.ExplosiveRadius = *s.Radius
	}
	if s.ExpandPerStack != nil {
		props.ExpandPerStackCount = *s.ExpandPerStack
	}
	if s.Damage != nil {
		props.DamageKind = *s.Damage
	}
	if s.WickTicks != nil {
		props.WickTicks = *s.WickTicks
	}
	if s.StartWickHPPercent != nil {
		props.StartWickHitPointsPercent = *s.StartWickHPPercent
	}
	if err := props.Validate(); err != nil {
		return nil, err
	}

	hp := s.MaxHitPoints
	if hp == 0 {
		hp = parameter.DefaultExplosiveMaxHitPoint
	}
	if hp < 0 {
		return nil, fmt.Errorf("negative max hit points %d", hp)
	}

	glyphs := s.Glyphs
	if glyphs == "" {
		glyphs = "o"
	}
	return &ExplosiveDef{
		Name:         s.Name,
		Glyphs:       visual.NewVariantSet(s.Name, glyphs),
		MaxHitPoints: hp,
		Props:        props,
	}, nil
}

func (s agentSpec) build() (*AgentDef, error) {
	if s.Name == "" {
		return nil, errors.New("missing name")
	}
	if s.HitPoints <= 0 {
		s.HitPoints = parameter.AgentHitPoints
	}
	glyph := s.Glyph
	if glyph == "" {
		glyph = "a"
	}
	return &AgentDef{
		Name:         s.Name,
		Glyph:        visual.NewVariantSet(s.Name, glyph),
		Intelligence: s.Intelligence,
		HitPoints:    s.HitPoints,
	}, nil
}

// Explosive looks up an explosive kind by name
func (d *Definitions) Explosive(name string) (*ExplosiveDef, bool) {
	def, ok := d.explosives[name]
	return def, ok
}

// ExplosiveNames lists explosive kinds in file order
func (d *Definitions) ExplosiveNames() []string {
	return append([]string(nil), d.explosiveOrder...)
}

// Agent looks up an agent kind by name
func (d *Definitions) Agent(name string) (*AgentDef, bool) {
	def, ok := d.agents[name]
	return def, ok
}

// AgentNames lists agent kinds in file order
func (d *Definitions) AgentNames() []string {
	return append([]string(nil), d.agentOrder...)
}
