package control_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipssim/emu"
	"github.com/sarchlab/mipssim/insts"
	"github.com/sarchlab/mipssim/timing/control"
)

var _ = Describe("MainControl", func() {
	DescribeTable("supported opcodes",
		func(opcode insts.Opcode, want control.Flags) {
			flags, err := control.MainControl(opcode)
			Expect(err).NotTo(HaveOccurred())
			Expect(flags).To(Equal(want))
		},
		Entry("R-type", insts.OpRType, control.Flags{
			RegWrite: true, RegDst: true, ALUOp: control.ALUOpFunct,
		}),
		Entry("addi", insts.OpADDI, control.Flags{
			ALUSrc: true, RegWrite: true,
		}),
		Entry("lw", insts.OpLW, control.Flags{
			ALUSrc: true, MemtoReg: true, RegWrite: true, MemRead: true,
		}),
		Entry("sw", insts.OpSW, control.Flags{
			ALUSrc: true, MemWrite: true,
		}),
		Entry("beq", insts.OpBEQ, control.Flags{
			Branch: true, ALUOp: control.ALUOpSub,
		}),
		Entry("j", insts.OpJ, control.Flags{
			Jump: true,
		}),
	)

	It("should reject every other opcode", func() {
		supported := map[insts.Opcode]bool{0: true, 2: true, 4: true, 8: true, 35: true, 43: true}

		for op := insts.Opcode(0); op < 64; op++ {
			if supported[op] {
				continue
			}
			flags, err := control.MainControl(op)
			Expect(err).To(MatchError(control.ErrUnsupportedOpcode), "opcode %d", op)
			Expect(flags).To(BeZero())
		}
	})

	It("should name the offending opcode", func() {
		_, err := control.MainControl(63)
		Expect(err).To(MatchError(ContainSubstring("0x3F")))
	})
})

var _ = Describe("ALUControl", func() {
	DescribeTable("operation codes",
		func(aluOp control.ALUOp, funct insts.Funct, want emu.ALUOperation) {
			op, err := control.ALUControl(aluOp, funct)
			Expect(err).NotTo(HaveOccurred())
			Expect(op).To(Equal(want))
		},
		Entry("memory and addi add", control.ALUOpAdd, insts.Funct(0), emu.ALUAdd),
		Entry("memory and addi ignore funct", control.ALUOpAdd, insts.FunctSLT, emu.ALUAdd),
		Entry("beq subtracts", control.ALUOpSub, insts.Funct(0), emu.ALUSub),
		Entry("funct add", control.ALUOpFunct, insts.FunctADD, emu.ALUAdd),
		Entry("funct sub", control.ALUOpFunct, insts.FunctSUB, emu.ALUSub),
		Entry("funct and", control.ALUOpFunct, insts.FunctAND, emu.ALUAnd),
		Entry("funct or", control.ALUOpFunct, insts.FunctOR, emu.ALUOr),
		Entry("funct slt", control.ALUOpFunct, insts.FunctSLT, emu.ALUSlt),
	)

	It("should fall back to AND for an unmatched funct without failing", func() {
		for _, funct := range []insts.Funct{0, 1, 33, 35, 38, 39, 43, 63} {
			op, err := control.ALUControl(control.ALUOpFunct, funct)
			Expect(err).NotTo(HaveOccurred(), "funct %d", funct)
			Expect(op).To(Equal(emu.ALUAnd), "funct %d", funct)
			Expect(uint8(op)).To(BeZero())
		}
	})

	It("should reject an ALUOp the main control never produces", func() {
		_, err := control.ALUControl(control.ALUOp(3), insts.FunctADD)
		Expect(err).To(MatchError(control.ErrUnsupportedALUOp))
	})

	It("should only see ALUOp values it accepts from the main control table", func() {
		for _, op := range []insts.Opcode{insts.OpRType, insts.OpADDI, insts.OpLW, insts.OpSW, insts.OpBEQ, insts.OpJ} {
			flags, err := control.MainControl(op)
			Expect(err).NotTo(HaveOccurred())

			_, err = control.ALUControl(flags.ALUOp, insts.FunctADD)
			Expect(err).NotTo(HaveOccurred())
		}
	})
})
