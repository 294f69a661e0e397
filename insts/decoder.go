package insts

import "fmt"

// Opcode is the 6-bit primary opcode field (bits 31-26).
type Opcode uint8

// Supported opcodes.
const (
	OpRType Opcode = 0  // 000000 register-register
	OpJ     Opcode = 2  // 000010 jump
	OpBEQ   Opcode = 4  // 000100 branch on equal
	OpADDI  Opcode = 8  // 001000 add immediate
	OpLW    Opcode = 35 // 100011 load word
	OpSW    Opcode = 43 // 101011 store word
)

// Funct is the 6-bit function field (bits 5-0) of R-type instructions.
type Funct uint8

// Supported function codes.
const (
	FunctADD Funct = 32 // 100000
	FunctSUB Funct = 34 // 100010
	FunctAND Funct = 36 // 100100
	FunctOR  Funct = 37 // 100101
	FunctSLT Funct = 42 // 101010
)

// Format represents an instruction encoding format.
type Format uint8

// Instruction formats.
const (
	FormatUnknown Format = iota
	FormatR              // opcode rs rt rd shamt funct
	FormatI              // opcode rs rt immediate
	FormatJ              // opcode target
)

// Field masks and shifts.
const (
	opcodeShift = 26
	rsShift     = 21
	rtShift     = 16
	rdShift     = 11
	shamtShift  = 6

	opcodeMask = 0x3F
	regMask    = 0x1F
	shamtMask  = 0x1F
	functMask  = 0x3F
	immMask    = 0xFFFF

	// TargetMask selects the 26-bit jump target field.
	TargetMask = 0x03FFFFFF
)

// Instruction is a decoded MIPS instruction word.
type Instruction struct {
	Word uint32 // Raw instruction word

	Opcode    Opcode // bits 31-26
	Rs        uint8  // bits 25-21
	Rt        uint8  // bits 20-16
	Rd        uint8  // bits 15-11
	Shamt     uint8  // bits 10-6
	Funct     Funct  // bits 5-0
	Immediate uint16 // bits 15-0, unsigned
	Target    uint32 // bits 25-0
}

// Decoder extracts instruction fields from machine words.
type Decoder struct{}

// NewDecoder creates a new MIPS instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode splits a 32-bit instruction word into its fields.
func (d *Decoder) Decode(word uint32) *Instruction {
	return &Instruction{
		Word:      word,
		Opcode:    Opcode((word >> opcodeShift) & opcodeMask),
		Rs:        uint8((word >> rsShift) & regMask),
		Rt:        uint8((word >> rtShift) & regMask),
		Rd:        uint8((word >> rdShift) & regMask),
		Shamt:     uint8((word >> shamtShift) & shamtMask),
		Funct:     Funct(word & functMask),
		Immediate: uint16(word & immMask),
		Target:    word & TargetMask,
	}
}

// Format reports the encoding format implied by the opcode.
func (i *Instruction) Format() Format {
	switch i.Opcode {
	case OpRType:
		return FormatR
	case OpJ:
		return FormatJ
	case OpBEQ, OpADDI, OpLW, OpSW:
		return FormatI
	default:
		return FormatUnknown
	}
}

// Mnemonic returns the assembler mnemonic, or "unknown".
func (i *Instruction) Mnemonic() string {
	switch i.Opcode {
	case OpRType:
		switch i.Funct {
		case FunctADD:
			return "add"
		case FunctSUB:
			return "sub"
		case FunctAND:
			return "and"
		case FunctOR:
			return "or"
		case FunctSLT:
			return "slt"
		}
	case OpJ:
		return "j"
	case OpBEQ:
		return "beq"
	case OpADDI:
		return "addi"
	case OpLW:
		return "lw"
	case OpSW:
		return "sw"
	}
	return "unknown"
}

// String disassembles the instruction.
func (i *Instruction) String() string {
	imm := int16(i.Immediate)

	switch i.Mnemonic() {
	case "add", "sub", "and", "or", "slt":
		return fmt.Sprintf("%s $%d, $%d, $%d", i.Mnemonic(), i.Rd, i.Rs, i.Rt)
	case "addi":
		return fmt.Sprintf("addi $%d, $%d, %d", i.Rt, i.Rs, imm)
	case "lw", "sw":
		return fmt.Sprintf("%s $%d, %d($%d)", i.Mnemonic(), i.Rt, imm, i.Rs)
	case "beq":
		return fmt.Sprintf("beq $%d, $%d, %d", i.Rs, i.Rt, imm)
	case "j":
		return fmt.Sprintf("j 0x%07X", i.Target)
	default:
		return fmt.Sprintf(".word 0x%08X", i.Word)
	}
}
