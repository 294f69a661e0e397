package emu

import (
	"errors"
	"fmt"

	"github.com/sarchlab/mipssim/insts"
)

// ErrUnknownInstruction is returned when the emulator fetches a word whose
// opcode it does not implement.
var ErrUnknownInstruction = errors.New("unknown instruction")

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Done is true when the PC has run past the last instruction.
	Done bool

	// Err is set if an error occurred during execution.
	Err error
}

// Emulator executes MIPS instructions functionally, one instruction per
// step, with register writes visible immediately. It follows the
// architectural semantics of the instruction subset, so beq is taken
// whenever its operands are equal. It serves as a reference for the
// cycle-level core.
type Emulator struct {
	regFile *RegFile
	iMem    *Memory
	dMem    *Memory
	decoder *insts.Decoder

	lsu        *LoadStoreUnit
	branchUnit *BranchUnit

	pc               uint32
	instructionCount uint64
	maxInstructions  uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// WithEmulatorRegFile uses an existing register file.
func WithEmulatorRegFile(regFile *RegFile) EmulatorOption {
	return func(e *Emulator) {
		e.regFile = regFile
	}
}

// WithEmulatorMemories uses existing instruction and data memories.
func WithEmulatorMemories(iMem, dMem *Memory) EmulatorOption {
	return func(e *Emulator) {
		e.iMem = iMem
		e.dMem = dMem
	}
}

// NewEmulator creates a new MIPS emulator with its PC at 0.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		decoder: insts.NewDecoder(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.regFile == nil {
		e.regFile = NewRegFile()
	}
	if e.iMem == nil {
		e.iMem = NewMemory()
	}
	if e.dMem == nil {
		e.dMem = NewMemory()
	}

	e.lsu = NewLoadStoreUnit(e.regFile, e.dMem)
	e.branchUnit = NewBranchUnit(e.regFile)

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// InstructionMemory returns the emulator's instruction memory.
func (e *Emulator) InstructionMemory() *Memory {
	return e.iMem
}

// DataMemory returns the emulator's data memory.
func (e *Emulator) DataMemory() *Memory {
	return e.dMem
}

// PC returns the address of the next instruction.
func (e *Emulator) PC() uint32 {
	return e.pc
}

// SetPC sets the address of the next instruction.
func (e *Emulator) SetPC(pc uint32) {
	e.pc = pc
}

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// LoadProgram loads instruction words at entry and points the PC there.
func (e *Emulator) LoadProgram(entry uint32, words []uint32) error {
	if err := e.iMem.LoadWords(entry, words); err != nil {
		return fmt.Errorf("failed to load program: %w", err)
	}
	e.pc = entry
	return nil
}

// Step executes a single instruction.
func (e *Emulator) Step() StepResult {
	end, ok := e.iMem.EndingAddress()
	if !ok || e.pc > end {
		return StepResult{Done: true}
	}

	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return StepResult{
			Err: fmt.Errorf("max instructions reached"),
		}
	}

	word, err := e.iMem.Read32(e.pc)
	if err != nil {
		return StepResult{Err: fmt.Errorf("fetch at PC=0x%08X: %w", e.pc, err)}
	}

	inst := e.decoder.Decode(word)
	if err := e.execute(inst); err != nil {
		return StepResult{Err: fmt.Errorf("PC=0x%08X: %w", e.pc, err)}
	}

	e.instructionCount++
	return StepResult{}
}

// Run executes instructions until the PC runs past the program or an error
// occurs. It returns the number of instructions executed by this call.
func (e *Emulator) Run() (uint64, error) {
	start := e.instructionCount
	for {
		result := e.Step()
		if result.Err != nil {
			return e.instructionCount - start, result.Err
		}
		if result.Done {
			return e.instructionCount - start, nil
		}
	}
}

// execute performs one decoded instruction and advances the PC.
func (e *Emulator) execute(inst *insts.Instruction) error {
	next := e.pc + 4
	imm := int32(int16(inst.Immediate))

	switch inst.Opcode {
	case insts.OpRType:
		a := e.regFile.ReadReg(inst.Rs)
		b := e.regFile.ReadReg(inst.Rt)
		result, _ := ALU32(a, b, functOperation(inst.Funct))
		e.regFile.WriteReg(inst.Rd, result)
	case insts.OpADDI:
		e.regFile.WriteReg(inst.Rt, e.regFile.ReadReg(inst.Rs)+uint32(imm))
	case insts.OpLW:
		if err := e.lsu.LW(inst.Rt, inst.Rs, imm); err != nil {
			return err
		}
	case insts.OpSW:
		if err := e.lsu.SW(inst.Rt, inst.Rs, imm); err != nil {
			return err
		}
	case insts.OpBEQ:
		next, _ = e.branchUnit.BEQ(e.pc, inst.Rs, inst.Rt, imm)
	case insts.OpJ:
		next = e.branchUnit.J(e.pc, inst.Target)
	default:
		return fmt.Errorf("%w: opcode 0x%02X", ErrUnknownInstruction, uint8(inst.Opcode))
	}

	e.pc = next
	return nil
}

// functOperation selects the ALU operation of an R-type instruction.
// Unlisted function codes fall back to AND, as the datapath's ALU
// control does.
func functOperation(funct insts.Funct) ALUOperation {
	switch funct {
	case insts.FunctADD:
		return ALUAdd
	case insts.FunctSUB:
		return ALUSub
	case insts.FunctOR:
		return ALUOr
	case insts.FunctSLT:
		return ALUSlt
	default:
		return ALUAnd
	}
}
