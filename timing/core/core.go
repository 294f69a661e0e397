// Package core provides the single-cycle CPU core model.
//
// Each call to Step performs one full clock cycle of the datapath: commit
// the writes staged by the previous cycle, fetch, decode, derive control
// signals, read registers, run the ALU, access data memory, stage the
// writeback and select the next PC.
package core

import (
	"fmt"

	"github.com/sarchlab/mipssim/emu"
	"github.com/sarchlab/mipssim/insts"
	"github.com/sarchlab/mipssim/timing/control"
)

// Tracer receives the diagnostic output of the core. It has no effect on
// simulated state.
type Tracer interface {
	// NewCycle starts the trace block of a cycle.
	NewCycle(cycle uint64)
	// Value reports a single named value, such as the PC.
	Value(name string, value uint32)
	// NoMoreInstructions reports that the PC ran past the program.
	NoMoreInstructions()
	// DecodeSignals dumps the signals known after decode and control.
	DecodeSignals(s *Signals)
	// ExecuteSignals dumps the signals known at the end of the cycle.
	ExecuteSignals(s *Signals)
}

type nopTracer struct{}

func (nopTracer) NewCycle(uint64) {}
func (nopTracer) Value(string, uint32) {}
func (nopTracer) NoMoreInstructions() {}
func (nopTracer) DecodeSignals(*Signals) {}
func (nopTracer) ExecuteSignals(*Signals) {}

// Stats holds instruction statistics for the core.
type Stats struct {
	// Cycles is the number of completed cycles.
	Cycles uint64
	// RType is the number of register-register instructions.
	RType uint64
	// AddImmediate is the number of addi instructions.
	AddImmediate uint64
	// Loads is the number of lw instructions.
	Loads uint64
	// Stores is the number of sw instructions.
	Stores uint64
	// Branches is the number of beq instructions.
	Branches uint64
	// BranchesTaken is the number of beq instructions that redirected the PC.
	BranchesTaken uint64
	// Jumps is the number of j instructions.
	Jumps uint64
}

// Core is a single-cycle MIPS datapath.
type Core struct {
	iMem    *emu.Memory
	dMem    *emu.Memory
	regFile *emu.RegFile
	pc      *emu.Register
	decoder *insts.Decoder

	tracer       Tracer
	mode         Mode
	aluZeroWired bool

	cycleNum uint64
	last     Signals
	stats    Stats
}

// Option is a functional option for configuring the Core.
type Option func(*Core)

// WithMode sets the run-mode bitmask.
func WithMode(mode Mode) Option {
	return func(c *Core) {
		c.mode = mode
	}
}

// WithTracer sets the sink for diagnostic trace output.
func WithTracer(t Tracer) Option {
	return func(c *Core) {
		c.tracer = t
	}
}

// WithALUZeroWired connects the ALU zero output to the zero wire read by
// the branch decision. Without it the branch decision always sees zero
// deasserted and beq never redirects the PC.
func WithALUZeroWired(wired bool) Option {
	return func(c *Core) {
		c.aluZeroWired = wired
	}
}

// WithInstructionMemory uses an existing instruction memory.
func WithInstructionMemory(m *emu.Memory) Option {
	return func(c *Core) {
		c.iMem = m
	}
}

// WithDataMemory uses an existing data memory.
func WithDataMemory(m *emu.Memory) Option {
	return func(c *Core) {
		c.dMem = m
	}
}

// WithRegFile uses an existing register file.
func WithRegFile(r *emu.RegFile) Option {
	return func(c *Core) {
		c.regFile = r
	}
}

// NewCore creates a core with its PC at 0.
func NewCore(opts ...Option) *Core {
	c := &Core{
		pc:      emu.NewRegister(0),
		decoder: insts.NewDecoder(),
		tracer:  nopTracer{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.iMem == nil {
		c.iMem = emu.NewMemory()
	}
	if c.dMem == nil {
		c.dMem = emu.NewMemory()
	}
	if c.regFile == nil {
		c.regFile = emu.NewRegFile()
	}
	if c.tracer == nil {
		c.tracer = nopTracer{}
	}

	return c
}

// InstructionMemory returns the instruction memory.
func (c *Core) InstructionMemory() *emu.Memory {
	return c.iMem
}

// DataMemory returns the data memory.
func (c *Core) DataMemory() *emu.Memory {
	return c.dMem
}

// RegFile returns the register file.
func (c *Core) RegFile() *emu.RegFile {
	return c.regFile
}

// Mode returns the run-mode bitmask.
func (c *Core) Mode() Mode {
	return c.mode
}

// PC returns the committed program counter.
func (c *Core) PC() uint32 {
	return c.pc.Read()
}

// Cycle returns the number of cycles completed over the core's lifetime.
func (c *Core) Cycle() uint64 {
	return c.cycleNum
}

// Stats returns instruction statistics.
func (c *Core) Stats() Stats {
	return c.stats
}

// LastSignals returns a copy of the signals of the most recent completed
// cycle.
func (c *Core) LastSignals() Signals {
	return c.last
}

// SetPC stages a new PC. It takes effect at the next clock edge, which is
// the start of the next cycle.
func (c *Core) SetPC(pc uint32) {
	c.pc.SetData(pc)
	c.pc.SetWrite(true)
}

// LoadProgram loads instruction words at entry and points the PC there.
func (c *Core) LoadProgram(entry uint32, words []uint32) error {
	if err := c.iMem.LoadWords(entry, words); err != nil {
		return fmt.Errorf("failed to load program: %w", err)
	}
	c.SetPC(entry)
	return nil
}

// Run executes cycles until maxCycles have completed (0 means no limit),
// the PC runs past the last instruction, or a cycle fails. It returns the
// number of cycles completed by this call.
func (c *Core) Run(maxCycles uint64) (uint64, error) {
	var n uint64

	for maxCycles == 0 || n < maxCycles {
		more, err := c.Step()
		if err != nil {
			return n, err
		}
		if !more {
			break
		}
		n++
	}

	return n, nil
}

// Step executes one cycle. It returns false, without counting the cycle,
// when the PC is past the end of the instruction memory.
func (c *Core) Step() (bool, error) {
	if !c.mode.Has(ModeQuietCycle) {
		c.tracer.NewCycle(c.cycleNum + 1)
	}

	// Clock edge: commit what the previous cycle staged.
	c.pc.Clock()
	c.regFile.Clock()

	s := &Signals{}
	s.PC = c.pc.Read()
	s.PC4 = s.PC + 4
	s.PCNew = s.PC4

	if !c.mode.Has(ModeQuietCycle) {
		c.tracer.Value("PC", s.PC)
	}

	end, ok := c.iMem.EndingAddress()
	if !ok || s.PC > end {
		if !c.mode.Has(ModeQuietCycle) {
			c.tracer.NoMoreInstructions()
		}
		return false, nil
	}

	if err := c.fetch(s); err != nil {
		return false, err
	}

	if !c.mode.Has(ModeQuietCycle) {
		c.tracer.Value("instruction", s.Instruction)
	}

	if err := c.decode(s); err != nil {
		return false, fmt.Errorf("cycle %d, PC 0x%08X: %w", c.cycleNum+1, s.PC, err)
	}

	if !c.mode.Has(ModeQuietDecode) {
		c.tracer.DecodeSignals(s)
	}

	if c.mode.Has(ModePhaseRestricted) {
		c.pc.SetData(s.PC4)
		c.pc.SetWrite(true)
		c.retire(s)
		return true, nil
	}

	if err := c.execute(s); err != nil {
		return false, fmt.Errorf("cycle %d, PC 0x%08X: %w", c.cycleNum+1, s.PC, err)
	}

	if !c.mode.Has(ModeQuietExecute) {
		c.tracer.ExecuteSignals(s)
	}

	c.retire(s)
	return true, nil
}

func (c *Core) fetch(s *Signals) error {
	c.iMem.SetAddress(s.PC)
	c.iMem.SetMemRead(true)
	c.iMem.SetMemWrite(false)
	if err := c.iMem.Run(); err != nil {
		return fmt.Errorf("instruction fetch at 0x%08X: %w", s.PC, err)
	}
	s.Instruction = c.iMem.Data()
	return nil
}

// decode derives everything that depends only on the instruction word.
// Nothing is written to architectural state here.
func (c *Core) decode(s *Signals) error {
	inst := c.decoder.Decode(s.Instruction)
	s.Opcode = inst.Opcode
	s.Rs = inst.Rs
	s.Rt = inst.Rt
	s.Rd = inst.Rd
	s.Funct = inst.Funct
	s.Immediate = inst.Immediate

	flags, err := control.MainControl(s.Opcode)
	if err != nil {
		return err
	}
	s.Flags = flags

	s.SignExtendedImmediate = SignExtend(s.Immediate)
	s.WriteRegister = emu.Mux2(s.Rt, s.Rd, s.RegDst)

	s.ALUOperation, err = control.ALUControl(s.ALUOp, s.Funct)
	if err != nil {
		return err
	}

	s.BranchAddress = BranchAddress(s.PC4, s.SignExtendedImmediate)
	s.JumpAddress = JumpAddress(s.PC4, s.Instruction)

	return nil
}

func (c *Core) execute(s *Signals) error {
	c.regFile.SetReadRegisters(s.Rs, s.Rt)
	s.ReadData1 = c.regFile.ReadData1()
	s.ReadData2 = c.regFile.ReadData2()

	s.ALUInput2 = emu.Mux2(s.ReadData2, uint32(s.SignExtendedImmediate), s.ALUSrc)
	s.ALUResult, s.ALUZero = emu.ALU32(s.ReadData1, s.ALUInput2, s.ALUOperation)
	if c.aluZeroWired {
		s.Zero = s.ALUZero
	}

	c.dMem.SetAddress(s.ALUResult)
	c.dMem.SetData(s.ReadData2)
	c.dMem.SetMemRead(s.MemRead)
	c.dMem.SetMemWrite(s.MemWrite)
	if err := c.dMem.Run(); err != nil {
		return fmt.Errorf("data memory access: %w", err)
	}
	s.MemReadData = c.dMem.Data()

	s.WriteData = emu.Mux2(s.ALUResult, s.MemReadData, s.MemtoReg)
	c.regFile.SetRegWrite(s.RegWrite)
	c.regFile.SetWriteRegister(s.WriteRegister)
	c.regFile.SetWriteData(s.WriteData)

	s.PCSrc = emu.And2(s.Branch, s.Zero)
	s.PCBranch = emu.Mux2(s.PC4, s.BranchAddress, s.PCSrc)
	s.PCNew = emu.Mux2(s.PCBranch, s.JumpAddress, s.Jump)

	c.pc.SetData(s.PCNew)
	c.pc.SetWrite(true)

	return nil
}

// retire finishes the bookkeeping of a completed cycle.
func (c *Core) retire(s *Signals) {
	c.cycleNum++
	c.last = *s

	c.stats.Cycles++
	switch s.Opcode {
	case insts.OpRType:
		c.stats.RType++
	case insts.OpADDI:
		c.stats.AddImmediate++
	case insts.OpLW:
		c.stats.Loads++
	case insts.OpSW:
		c.stats.Stores++
	case insts.OpBEQ:
		c.stats.Branches++
		if s.PCSrc {
			c.stats.BranchesTaken++
		}
	case insts.OpJ:
		c.stats.Jumps++
	}
}
