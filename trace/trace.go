// Package trace formats the per-cycle diagnostic output of the core.
package trace

import (
	"fmt"
	"io"

	"github.com/sarchlab/mipssim/insts"
	"github.com/sarchlab/mipssim/timing/core"
)

var _ core.Tracer = (*Writer)(nil)

// Writer is a core.Tracer that prints human-readable trace blocks.
type Writer struct {
	out     io.Writer
	decoder *insts.Decoder
}

// NewWriter creates a Writer printing to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{
		out:     out,
		decoder: insts.NewDecoder(),
	}
}

// NewCycle prints the cycle header.
func (w *Writer) NewCycle(cycle uint64) {
	_, _ = fmt.Fprintf(w.out, "\n================ cycle %d ================\n", cycle)
}

// Value prints one named 32-bit value in hex and decimal.
func (w *Writer) Value(name string, value uint32) {
	w.hex(name, value)
}

// NoMoreInstructions prints the end-of-program notice.
func (w *Writer) NoMoreInstructions() {
	_, _ = fmt.Fprintln(w.out, "No more instructions")
}

// DecodeSignals prints the fields and control signals of the cycle.
func (w *Writer) DecodeSignals(s *core.Signals) {
	_, _ = fmt.Fprintf(w.out, "-- decode: %s\n", w.decoder.Decode(s.Instruction))

	w.dec("opcode", uint32(s.Opcode))
	w.dec("rs", uint32(s.Rs))
	w.dec("rt", uint32(s.Rt))
	w.dec("rd", uint32(s.Rd))
	w.dec("funct", uint32(s.Funct))
	w.hex("immediate", uint32(s.Immediate))
	w.signed("sign_extended_immediate", s.SignExtendedImmediate)

	w.bit("RegDst", s.RegDst)
	w.bit("Jump", s.Jump)
	w.bit("Branch", s.Branch)
	w.bit("MemRead", s.MemRead)
	w.bit("MemtoReg", s.MemtoReg)
	w.dec("ALUOp", uint32(s.ALUOp))
	w.bit("MemWrite", s.MemWrite)
	w.bit("ALUSrc", s.ALUSrc)
	w.bit("RegWrite", s.RegWrite)

	w.dec("write_register", uint32(s.WriteRegister))
	_, _ = fmt.Fprintf(w.out, "  %-24s= %d (%s)\n",
		"ALU_operation", uint8(s.ALUOperation), s.ALUOperation)
	w.hex("branch_address", s.BranchAddress)
	w.hex("jump_address", s.JumpAddress)
}

// ExecuteSignals prints the datapath values at the end of the cycle.
func (w *Writer) ExecuteSignals(s *core.Signals) {
	_, _ = fmt.Fprintln(w.out, "-- execute")

	w.hex("RF_read_data_1", s.ReadData1)
	w.hex("RF_read_data_2", s.ReadData2)
	w.hex("ALU_input_2", s.ALUInput2)
	w.hex("ALU_result", s.ALUResult)
	w.bit("ALU_zero", s.ALUZero)
	w.hex("MEM_read_data", s.MemReadData)
	w.hex("write_data", s.WriteData)
	w.bit("Zero", s.Zero)
	w.bit("PCSrc", s.PCSrc)
	w.hex("PC_branch", s.PCBranch)
	w.hex("PC_new", s.PCNew)
}

func (w *Writer) hex(name string, v uint32) {
	_, _ = fmt.Fprintf(w.out, "  %-24s= 0x%08X (%d)\n", name, v, v)
}

func (w *Writer) dec(name string, v uint32) {
	_, _ = fmt.Fprintf(w.out, "  %-24s= %d\n", name, v)
}

func (w *Writer) signed(name string, v int32) {
	_, _ = fmt.Fprintf(w.out, "  %-24s= %d\n", name, v)
}

func (w *Writer) bit(name string, v bool) {
	b := 0
	if v {
		b = 1
	}
	_, _ = fmt.Fprintf(w.out, "  %-24s= %d\n", name, b)
}
