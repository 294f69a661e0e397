package insts

// EncodeR encodes a register-register instruction: rd = rs <funct> rt.
func EncodeR(funct Funct, rd, rs, rt uint8) uint32 {
	return uint32(OpRType)<<opcodeShift |
		uint32(rs&regMask)<<rsShift |
		uint32(rt&regMask)<<rtShift |
		uint32(rd&regMask)<<rdShift |
		uint32(funct)&functMask
}

// EncodeI encodes an immediate-format instruction.
func EncodeI(op Opcode, rt, rs uint8, imm uint16) uint32 {
	return uint32(op&opcodeMask)<<opcodeShift |
		uint32(rs&regMask)<<rsShift |
		uint32(rt&regMask)<<rtShift |
		uint32(imm)
}

// EncodeJ encodes a jump-format instruction with a 26-bit word target.
func EncodeJ(op Opcode, target uint32) uint32 {
	return uint32(op&opcodeMask)<<opcodeShift | target&TargetMask
}

// ADD encodes add rd, rs, rt.
func ADD(rd, rs, rt uint8) uint32 { return EncodeR(FunctADD, rd, rs, rt) }

// SUB encodes sub rd, rs, rt.
func SUB(rd, rs, rt uint8) uint32 { return EncodeR(FunctSUB, rd, rs, rt) }

// AND encodes and rd, rs, rt.
func AND(rd, rs, rt uint8) uint32 { return EncodeR(FunctAND, rd, rs, rt) }

// OR encodes or rd, rs, rt.
func OR(rd, rs, rt uint8) uint32 { return EncodeR(FunctOR, rd, rs, rt) }

// SLT encodes slt rd, rs, rt.
func SLT(rd, rs, rt uint8) uint32 { return EncodeR(FunctSLT, rd, rs, rt) }

// ADDI encodes addi rt, rs, imm.
func ADDI(rt, rs uint8, imm int16) uint32 { return EncodeI(OpADDI, rt, rs, uint16(imm)) }

// LW encodes lw rt, offset(rs).
func LW(rt, rs uint8, offset int16) uint32 { return EncodeI(OpLW, rt, rs, uint16(offset)) }

// SW encodes sw rt, offset(rs).
func SW(rt, rs uint8, offset int16) uint32 { return EncodeI(OpSW, rt, rs, uint16(offset)) }

// BEQ encodes beq rs, rt, offset where offset counts words from PC+4.
func BEQ(rs, rt uint8, offset int16) uint32 { return EncodeI(OpBEQ, rt, rs, uint16(offset)) }

// J encodes j to the given byte address (the low 28 bits, word aligned).
func J(addr uint32) uint32 { return EncodeJ(OpJ, addr>>2) }
