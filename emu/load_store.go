package emu

// LoadStoreUnit implements word loads and stores for the reference
// emulator.
type LoadStoreUnit struct {
	regFile *RegFile
	memory  *Memory
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given
// register file and memory.
func NewLoadStoreUnit(regFile *RegFile, memory *Memory) *LoadStoreUnit {
	return &LoadStoreUnit{
		regFile: regFile,
		memory:  memory,
	}
}

// LW performs a word load: rt = mem[rs + offset]
func (lsu *LoadStoreUnit) LW(rt, rs uint8, offset int32) error {
	addr := lsu.regFile.ReadReg(rs) + uint32(offset)
	value, err := lsu.memory.Read32(addr)
	if err != nil {
		return err
	}
	lsu.regFile.WriteReg(rt, value)
	return nil
}

// SW performs a word store: mem[rs + offset] = rt
func (lsu *LoadStoreUnit) SW(rt, rs uint8, offset int32) error {
	addr := lsu.regFile.ReadReg(rs) + uint32(offset)
	return lsu.memory.Write32(addr, lsu.regFile.ReadReg(rt))
}
