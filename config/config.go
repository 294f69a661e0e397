// Package config holds the simulation settings of a run.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/mipssim/timing/core"
)

// SimConfig holds the settings of a simulation run.
type SimConfig struct {
	// EntryPC is the address of the first instruction. Default: 0.
	EntryPC uint32 `json:"entry_pc"`

	// MaxCycles is the cycle budget. 0 runs until the program ends.
	MaxCycles uint64 `json:"max_cycles"`

	// PhaseRestricted runs only fetch, decode and control each cycle.
	PhaseRestricted bool `json:"phase_restricted"`

	// QuietCycle suppresses the cycle header, PC and instruction trace.
	QuietCycle bool `json:"quiet_cycle"`

	// QuietDecode suppresses the post-decode signal trace.
	QuietDecode bool `json:"quiet_decode"`

	// QuietExecute suppresses the post-execute signal trace.
	QuietExecute bool `json:"quiet_execute"`

	// WireALUZero drives the branch decision from the ALU zero output.
	// Default: false, in which case beq is never taken.
	WireALUZero bool `json:"wire_alu_zero"`
}

// DefaultConfig returns a SimConfig that runs from address 0 to the end
// of the program with full tracing.
func DefaultConfig() *SimConfig {
	return &SimConfig{}
}

// LoadConfig loads a SimConfig from a JSON file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a SimConfig to a JSON file.
func (c *SimConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the settings describe a runnable simulation.
func (c *SimConfig) Validate() error {
	if c.EntryPC%4 != 0 {
		return fmt.Errorf("entry_pc must be word aligned, got 0x%08X", c.EntryPC)
	}
	return nil
}

// Mode returns the run-mode bitmask for the core.
func (c *SimConfig) Mode() core.Mode {
	var m core.Mode
	if c.PhaseRestricted {
		m |= core.ModePhaseRestricted
	}
	if c.QuietCycle {
		m |= core.ModeQuietCycle
	}
	if c.QuietDecode {
		m |= core.ModeQuietDecode
	}
	if c.QuietExecute {
		m |= core.ModeQuietExecute
	}
	return m
}

// SetMode sets the mode fields from a bitmask.
func (c *SimConfig) SetMode(m core.Mode) {
	c.PhaseRestricted = m.Has(core.ModePhaseRestricted)
	c.QuietCycle = m.Has(core.ModeQuietCycle)
	c.QuietDecode = m.Has(core.ModeQuietDecode)
	c.QuietExecute = m.Has(core.ModeQuietExecute)
}

// CoreOptions returns the core options that apply this configuration.
func (c *SimConfig) CoreOptions() []core.Option {
	return []core.Option{
		core.WithMode(c.Mode()),
		core.WithALUZeroWired(c.WireALUZero),
	}
}

// Clone returns a copy of the SimConfig.
func (c *SimConfig) Clone() *SimConfig {
	clone := *c
	return &clone
}
