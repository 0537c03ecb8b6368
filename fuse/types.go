package fuse

import (
	"fmt"
	"strings"
)

// State is the externally visible fuse state, derived from the machine flags
type State uint8

const (
	StateIdle State = iota
	StateArmedAudible
	StateArmedSilent
	StateDetonated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmedAudible:
		return "armed"
	case StateArmedSilent:
		return "armed-silent"
	case StateDetonated:
		return "detonated"
	default:
		return "unknown"
	}
}

// DamageKind classifies a damage application
type DamageKind uint8

const (
	DamageBlunt DamageKind = iota
	DamageBullet
	DamageBomb
	DamageFlame
	DamageStun
	DamageEMP
	DamageDeterioration
	damageKindCount
)

type damageInfo struct {
	name             string
	externalViolence bool
}

// Default classification per kind; Damage values may override the flag
var damageTable = [damageKindCount]damageInfo{
	DamageBlunt:         {"blunt", true},
	DamageBullet:        {"bullet", true},
	DamageBomb:          {"bomb", true},
	DamageFlame:         {"flame", true},
	DamageStun:          {"stun", true},
	DamageEMP:           {"emp", true},
	DamageDeterioration: {"deterioration", false},
}

func (k DamageKind) String() string {
	if k < damageKindCount {
		return damageTable[k].name
	}
	return fmt.Sprintf("damage(%d)", uint8(k))
}

// ExternalViolence reports the default classification of the kind
func (k DamageKind) ExternalViolence() bool {
	if k < damageKindCount {
		return damageTable[k].externalViolence
	}
	return false
}

// ParseDamageKind resolves a case-insensitive kind name
func ParseDamageKind(s string) (DamageKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k := DamageKind(0); k < damageKindCount; k++ {
		if damageTable[k].name == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("fuse: unknown damage kind %q", s)
}

// MarshalText lets kinds appear by name in YAML and env values
func (k DamageKind) MarshalText() ([]byte, error) {
	if k >= damageKindCount {
		return nil, fmt.Errorf("fuse: invalid damage kind %d", uint8(k))
	}
	return []byte(damageTable[k].name), nil
}

func (k *DamageKind) UnmarshalText(text []byte) error {
	parsed, err := ParseDamageKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Damage is a single damage application as seen by the fuse
type Damage struct {
	Kind             DamageKind
	Amount           int
	ExternalViolence bool
}

// NewDamage builds a damage value using the kind's default classification
func NewDamage(kind DamageKind, amount int) Damage {
	return Damage{Kind: kind, Amount: amount, ExternalViolence: kind.ExternalViolence()}
}

// Intelligence is the classification used to decide who understands a hissing fuse
type Intelligence uint8

const (
	IntelligenceAnimal Intelligence = iota
	IntelligenceToolUser
	IntelligenceHumanlike
)

func (i Intelligence) String() string {
	switch i {
	case IntelligenceAnimal:
		return "animal"
	case IntelligenceToolUser:
		return "tooluser"
	case IntelligenceHumanlike:
		return "humanlike"
	default:
		return "unknown"
	}
}

// ParseIntelligence resolves a name as printed by String
func ParseIntelligence(s string) (Intelligence, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i := IntelligenceAnimal; i <= IntelligenceHumanlike; i++ {
		if i.String() == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("fuse: unknown intelligence %q", s)
}

func (i Intelligence) MarshalText() ([]byte, error) {
	if i > IntelligenceHumanlike {
		return nil, fmt.Errorf("fuse: invalid intelligence %d", uint8(i))
	}
	return []byte(i.String()), nil
}

func (i *Intelligence) UnmarshalText(text []byte) error {
	parsed, err := ParseIntelligence(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// RoomID identifies a connected region of passable cells; NoRoom marks walls
type RoomID int32

const NoRoom RoomID = -1

// Cue names an audio feedback sound
type Cue uint8

const (
	// CueWickStart is the one-shot clank played when an audible wick lights
	CueWickStart Cue = iota
	// CueWickLoop is the hiss sustained while an audible wick burns
	CueWickLoop
	// CueDetonation is the blast rumble
	CueDetonation
)

func (c Cue) String() string {
	switch c {
	case CueWickStart:
		return "wick-start"
	case CueWickLoop:
		return "wick-loop"
	case CueDetonation:
		return "detonation"
	default:
		return "cue"
	}
}

// IntRange is an inclusive integer range
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Props is the static explosive definition shared by every machine of a kind
type Props struct {
	// ExplosiveRadius is the blast radius of a single unit, in cells
	ExplosiveRadius float64 `yaml:"radius"`
	// ExpandPerStackCount grows the radius sub-linearly with stack size, <= 0 disables
	ExpandPerStackCount float64 `yaml:"expand_per_stack"`
	// DamageKind is applied by the resulting area effect
	DamageKind DamageKind `yaml:"damage"`
	// WickTicks is the fuse duration range rolled at each start
	WickTicks IntRange `yaml:"wick_ticks"`
	// StartWickHitPointsPercent arms the fuse once hit points fall to this
	// fraction of max; a threshold that rounds to zero disables damage arming
	StartWickHitPointsPercent float64 `yaml:"start_wick_hp_percent"`
}

// Validate rejects definitions the machine cannot honor
func (p Props) Validate() error {
	if p.ExplosiveRadius < 0 {
		return fmt.Errorf("fuse: negative explosive radius %v", p.ExplosiveRadius)
	}
	if p.WickTicks.Min < 0 || p.WickTicks.Max < p.WickTicks.Min {
		return fmt.Errorf("fuse: invalid wick range [%d, %d]", p.WickTicks.Min, p.WickTicks.Max)
	}
	if p.StartWickHitPointsPercent < 0 || p.StartWickHitPointsPercent > 1 {
		return fmt.Errorf("fuse: start threshold %v outside [0, 1]", p.StartWickHitPointsPercent)
	}
	if p.DamageKind >= damageKindCount {
		return fmt.Errorf("fuse: invalid damage kind %d", uint8(p.DamageKind))
	}
	return nil
}
