package emu

// BranchUnit implements the control-transfer instructions of the
// reference emulator.
type BranchUnit struct {
	regFile *RegFile
}

// NewBranchUnit creates a new BranchUnit connected to the given register file.
func NewBranchUnit(regFile *RegFile) *BranchUnit {
	return &BranchUnit{regFile: regFile}
}

// BEQ returns the next PC of a branch on equal at pc. The offset counts
// words relative to pc+4.
func (b *BranchUnit) BEQ(pc uint32, rs, rt uint8, offset int32) (next uint32, taken bool) {
	next = pc + 4
	if b.regFile.ReadReg(rs) != b.regFile.ReadReg(rt) {
		return next, false
	}
	return next + uint32(offset)*4, true
}

// J returns the next PC of a jump at pc: the top four bits of pc+4
// followed by the 26-bit word target.
func (b *BranchUnit) J(pc uint32, target uint32) uint32 {
	return ((pc + 4) & 0xF0000000) | (target&0x03FFFFFF)<<2
}
