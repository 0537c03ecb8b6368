// Package persist reads and writes sandbox saves as YAML documents
package persist

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/wick/core"
	"github.com/lixenwraith/wick/fuse"
)

// Version is the current save format
const Version = 1

// ErrVersion is returned for saves written by an unknown format version
var ErrVersion = errors.New("persist: unsupported save version")

// SaveGame is a full sandbox snapshot
type SaveGame struct {
	Version int    `yaml:"version"`
	Frame   int64  `yaml:"frame"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Seed    uint64 `yaml:"seed"`

	Walls      []core.Point      `yaml:"walls,omitempty"`
	Explosives []ExplosiveRecord `yaml:"explosives,omitempty"`
	Agents     []AgentRecord     `yaml:"agents,omitempty"`
	Crates     []CrateRecord     `yaml:"crates,omitempty"`
}

// ExplosiveRecord is one fused entity
type ExplosiveRecord struct {
	Definition string        `yaml:"definition"`
	Position   core.Point    `yaml:"position"`
	HitPoints  int           `yaml:"hit_points"`
	Stack      int           `yaml:"stack,omitempty"`
	Fuse       fuse.Snapshot `yaml:"fuse,omitempty"`
}

// AgentRecord is one agent
type AgentRecord struct {
	Definition string     `yaml:"definition"`
	Position   core.Point `yaml:"position"`
	HitPoints  int        `yaml:"hit_points"`
}

// CrateRecord is one inert obstacle
type CrateRecord struct {
	Position  core.Point `yaml:"position"`
	HitPoints int        `yaml:"hit_points"`
}

// Encode writes g as YAML, stamping the current version
func Encode(w io.Writer, g *SaveGame) error {
	g.Version = Version
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("persist: encode: %w", err)
	}
	return enc.Close()
}

// Decode reads a save, rejecting unknown versions
func Decode(r io.Reader) (*SaveGame, error) {
	var g SaveGame
	if err := yaml.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("persist: decode: %w", err)
	}
	if g.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, g.Version)
	}
	return &g, nil
}

// Save writes g to path atomically through a temporary file
func Save(path string, g *SaveGame) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".wick-save-*")
	if err != nil {
		return fmt.Errorf("persist: create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, g); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("persist: close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("persist: rename: %w", err)
	}
	return nil
}

// Load reads the save at path
func Load(path string) (*SaveGame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("persist: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}
