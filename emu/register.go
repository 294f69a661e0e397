package emu

// Register is a single clocked 32-bit register, such as the PC.
//
// Data written with SetData is latched only when the write enable is set
// and Clock is called; Read always returns the latched value.
type Register struct {
	value   uint32
	next    uint32
	writeEn bool
}

// NewRegister creates a register holding the given value.
func NewRegister(value uint32) *Register {
	return &Register{value: value}
}

// SetData sets the value presented on the register's input.
func (r *Register) SetData(value uint32) {
	r.next = value
}

// SetWrite sets the write enable.
func (r *Register) SetWrite(enable bool) {
	r.writeEn = enable
}

// Read returns the latched value.
func (r *Register) Read() uint32 {
	return r.value
}

// Clock latches the input if the write enable is set, then clears the
// enable.
func (r *Register) Clock() {
	if r.writeEn {
		r.value = r.next
	}
	r.writeEn = false
}
