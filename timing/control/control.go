// Package control provides the main control unit and the ALU control unit
// of the single-cycle datapath.
package control

import (
	"errors"
	"fmt"

	"github.com/sarchlab/mipssim/emu"
	"github.com/sarchlab/mipssim/insts"
)

// ErrUnsupportedOpcode is returned by MainControl for an opcode outside the
// supported instruction set. It is fatal to the cycle that decoded it.
var ErrUnsupportedOpcode = errors.New("unsupported opcode")

// ErrUnsupportedALUOp is returned by ALUControl for an ALUOp value the main
// control unit never produces.
var ErrUnsupportedALUOp = errors.New("unsupported ALUOp")

// ALUOp is the 2-bit code passed from the main control unit to the ALU
// control unit.
type ALUOp uint8

// ALUOp values.
const (
	ALUOpAdd   ALUOp = 0 // 00 memory access and addi
	ALUOpSub   ALUOp = 1 // 01 branch comparison
	ALUOpFunct ALUOp = 2 // 10 decided by funct
)

// Flags is the control-signal vector produced from an opcode.
type Flags struct {
	RegDst   bool
	Jump     bool
	Branch   bool
	MemRead  bool
	MemtoReg bool
	ALUOp    ALUOp
	MemWrite bool
	ALUSrc   bool
	RegWrite bool
}

// MainControl derives the control signals for an opcode. Every signal
// starts deasserted.
func MainControl(opcode insts.Opcode) (Flags, error) {
	var s Flags

	switch opcode {
	case insts.OpRType:
		s.RegWrite = true
		s.RegDst = true
		s.ALUOp = ALUOpFunct
	case insts.OpADDI:
		s.ALUSrc = true
		s.RegWrite = true
	case insts.OpLW:
		s.ALUSrc = true
		s.MemtoReg = true
		s.RegWrite = true
		s.MemRead = true
	case insts.OpSW:
		s.ALUSrc = true
		s.MemWrite = true
	case insts.OpBEQ:
		s.Branch = true
		s.ALUOp = ALUOpSub
	case insts.OpJ:
		s.Jump = true
	default:
		return Flags{}, fmt.Errorf("%w 0x%02X", ErrUnsupportedOpcode, uint8(opcode))
	}

	return s, nil
}

// ALUControl maps an ALUOp and funct field to an ALU operation code.
//
// With ALUOpFunct, a funct value outside add/sub/and/or/slt selects
// bitwise AND rather than failing.
func ALUControl(aluOp ALUOp, funct insts.Funct) (emu.ALUOperation, error) {
	switch aluOp {
	case ALUOpAdd:
		return emu.ALUAdd, nil
	case ALUOpSub:
		return emu.ALUSub, nil
	case ALUOpFunct:
		return functOperation(funct), nil
	default:
		return emu.ALUAnd, fmt.Errorf("%w 0x%02X", ErrUnsupportedALUOp, uint8(aluOp))
	}
}

func functOperation(funct insts.Funct) emu.ALUOperation {
	switch funct {
	case insts.FunctADD:
		return emu.ALUAdd
	case insts.FunctSUB:
		return emu.ALUSub
	case insts.FunctAND:
		return emu.ALUAnd
	case insts.FunctOR:
		return emu.ALUOr
	case insts.FunctSLT:
		return emu.ALUSlt
	default:
		return emu.ALUAnd
	}
}
