package core

import "github.com/sarchlab/mipssim/insts"

// SignExtend widens a 16-bit immediate to a signed 32-bit value.
func SignExtend(imm uint16) int32 {
	if imm&0x8000 != 0 {
		return int32(imm) - 0x10000
	}
	return int32(imm)
}

// BranchAddress returns the target of a taken branch: PC+4 plus the
// word offset.
func BranchAddress(pc4 uint32, extended int32) uint32 {
	return pc4 + uint32(extended)*4
}

// JumpAddress keeps the top four bits of PC+4 and replaces the rest with
// the shifted 26-bit target field of the instruction.
func JumpAddress(pc4 uint32, instruction uint32) uint32 {
	return (pc4 & 0xF0000000) | (instruction&insts.TargetMask)*4
}
