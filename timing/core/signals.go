package core

import (
	"github.com/sarchlab/mipssim/emu"
	"github.com/sarchlab/mipssim/insts"
	"github.com/sarchlab/mipssim/timing/control"
)

// Signals holds every wire value computed during one cycle. A fresh value
// is built at the start of each cycle, so control flags never leak from
// one instruction into the next.
type Signals struct {
	// Program counter and its successors.
	PC       uint32
	PC4      uint32
	PCBranch uint32
	PCNew    uint32

	Instruction uint32

	// Decoded fields.
	Opcode    insts.Opcode
	Rs        uint8
	Rt        uint8
	Rd        uint8
	Funct     insts.Funct
	Immediate uint16

	SignExtendedImmediate int32

	// Control flags from the main control unit.
	control.Flags

	WriteRegister uint8
	ALUOperation  emu.ALUOperation

	BranchAddress uint32
	JumpAddress   uint32

	// Execute stage.
	ReadData1   uint32
	ReadData2   uint32
	ALUInput2   uint32
	ALUResult   uint32
	ALUZero     bool
	MemReadData uint32
	WriteData   uint32

	// Zero is the zero wire sampled by the branch decision. It is driven
	// from ALUZero only when the core is built WithALUZeroWired.
	Zero  bool
	PCSrc bool
}
