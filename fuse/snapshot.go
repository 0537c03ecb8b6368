package fuse

// Snapshot is the persisted fuse tuple; keys match the historical save format
// so existing saves keep loading. Absent keys decode as zero values
type Snapshot struct {
	Started        bool `yaml:"wickStarted,omitempty"`
	TicksRemaining int  `yaml:"wickTicksLeft,omitempty"`
	TicksTotal     int  `yaml:"wickTotalTicks,omitempty"`
	Silent         bool `yaml:"wickIsSilent,omitempty"`
}

// IsZero reports an unarmed fuse with no timer history
func (s Snapshot) IsZero() bool {
	return s == Snapshot{}
}

// Snapshot captures the persisted tuple
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		Started:        m.started,
		TicksRemaining: m.ticksRemaining,
		TicksTotal:     m.ticksTotal,
		Silent:         m.silent,
	}
}

// Restore loads a persisted tuple. Audio restarts on the next step and no
// alert is broadcast, the agents were warned when the fuse was first lit
func (m *Machine) Restore(s Snapshot) {
	m.endLoop()
	m.started = s.Started
	m.silent = s.Silent
	m.ticksRemaining = max(s.TicksRemaining, 0)
	m.ticksTotal = max(s.TicksTotal, 0)
}
