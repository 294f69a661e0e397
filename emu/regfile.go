// Package emu provides the hardware building blocks of the MIPS datapath:
// memories, the register file, clocked registers and the combinational
// ALU, selector and gate.
package emu

// NumRegisters is the number of general-purpose registers.
const NumRegisters = 32

// RegFile represents the MIPS general-purpose register file.
//
// Writes are edge-triggered: a write prepared with SetRegWrite,
// SetWriteRegister and SetWriteData becomes visible to reads only after
// the next call to Clock. Register 0 always reads as zero.
type RegFile struct {
	// X holds the committed register values.
	X [NumRegisters]uint32

	regWrite  bool
	readReg1  uint8
	readReg2  uint8
	writeReg  uint8
	writeData uint32
}

// NewRegFile creates a register file with every register cleared.
func NewRegFile() *RegFile {
	return &RegFile{}
}

// SetRegWrite sets the RegWrite control input.
func (r *RegFile) SetRegWrite(regWrite bool) {
	r.regWrite = regWrite
}

// SetReadRegisters selects the two registers presented on the read ports.
func (r *RegFile) SetReadRegisters(reg1, reg2 uint8) {
	r.readReg1 = reg1 & 0x1F
	r.readReg2 = reg2 & 0x1F
}

// ReadData1 returns the committed value of the first read register.
func (r *RegFile) ReadData1() uint32 {
	return r.ReadReg(r.readReg1)
}

// ReadData2 returns the committed value of the second read register.
func (r *RegFile) ReadData2() uint32 {
	return r.ReadReg(r.readReg2)
}

// SetWriteRegister selects the destination register of the staged write.
func (r *RegFile) SetWriteRegister(reg uint8) {
	r.writeReg = reg & 0x1F
}

// SetWriteData sets the value of the staged write.
func (r *RegFile) SetWriteData(value uint32) {
	r.writeData = value
}

// Pending reports the write that the next Clock will commit, if any.
func (r *RegFile) Pending() (reg uint8, value uint32, ok bool) {
	return r.writeReg, r.writeData, r.regWrite
}

// Clock latches the write-data input into the write register if RegWrite
// is set, then deasserts RegWrite.
func (r *RegFile) Clock() {
	if r.regWrite {
		r.WriteReg(r.writeReg, r.writeData)
	}
	r.regWrite = false
}

// ReadReg reads a committed register value. Register 0 returns 0.
func (r *RegFile) ReadReg(reg uint8) uint32 {
	if reg == 0 || reg >= NumRegisters {
		return 0
	}
	return r.X[reg]
}

// WriteReg writes a register immediately, bypassing the clock.
// It is meant for initial state setup. Writes to register 0 are ignored.
func (r *RegFile) WriteReg(reg uint8, value uint32) {
	if reg == 0 || reg >= NumRegisters {
		return
	}
	r.X[reg] = value
}

// Snapshot returns a copy of all committed register values.
func (r *RegFile) Snapshot() [NumRegisters]uint32 {
	return r.X
}
