package core

// Mode is the run-mode bitmask. It is fixed before a run starts.
type Mode uint8

// Mode bits.
const (
	// ModePhaseRestricted stops each cycle after decode and control:
	// no register-file, ALU, memory or writeback activity, and the PC
	// always advances by 4.
	ModePhaseRestricted Mode = 1 << iota
	// ModeQuietCycle suppresses the cycle header, PC and instruction lines.
	ModeQuietCycle
	// ModeQuietDecode suppresses the post-decode signal dump.
	ModeQuietDecode
	// ModeQuietExecute suppresses the post-execute signal dump.
	ModeQuietExecute
)

// ModeQuiet suppresses all trace output.
const ModeQuiet = ModeQuietCycle | ModeQuietDecode | ModeQuietExecute

// Has reports whether every bit of flag is set.
func (m Mode) Has(flag Mode) bool {
	return m&flag == flag
}
