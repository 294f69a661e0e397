package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipssim/emu"
)

var _ = Describe("ALU32", func() {
	DescribeTable("operations",
		func(a, b uint32, op emu.ALUOperation, want uint32, zero bool) {
			result, z := emu.ALU32(a, b, op)
			Expect(result).To(Equal(want))
			Expect(z).To(Equal(zero))
		},
		Entry("and", uint32(0b1100), uint32(0b1010), emu.ALUAnd, uint32(0b1000), false),
		Entry("or", uint32(0b1100), uint32(0b1010), emu.ALUOr, uint32(0b1110), false),
		Entry("add", uint32(5), uint32(7), emu.ALUAdd, uint32(12), false),
		Entry("add wraps", uint32(0xFFFFFFFF), uint32(1), emu.ALUAdd, uint32(0), true),
		Entry("sub", uint32(10), uint32(3), emu.ALUSub, uint32(7), false),
		Entry("sub equal operands", uint32(9), uint32(9), emu.ALUSub, uint32(0), true),
		Entry("slt signed less", uint32(0xFFFFFFFF), uint32(1), emu.ALUSlt, uint32(1), false),
		Entry("slt not less", uint32(1), uint32(0xFFFFFFFF), emu.ALUSlt, uint32(0), true),
		Entry("nor", uint32(0), uint32(0), emu.ALUNor, uint32(0xFFFFFFFF), false),
		Entry("unknown operation", uint32(3), uint32(4), emu.ALUOperation(15), uint32(0), true),
	)

	It("should name its operations", func() {
		Expect(emu.ALUAdd.String()).To(Equal("add"))
		Expect(emu.ALUSlt.String()).To(Equal("slt"))
		Expect(emu.ALUOperation(9).String()).To(Equal("unknown"))
	})
})

var _ = Describe("Gates", func() {
	It("should select with Mux2", func() {
		Expect(emu.Mux2(uint32(1), uint32(2), false)).To(Equal(uint32(1)))
		Expect(emu.Mux2(uint32(1), uint32(2), true)).To(Equal(uint32(2)))
	})

	It("should AND with And2", func() {
		Expect(emu.And2(true, true)).To(BeTrue())
		Expect(emu.And2(true, false)).To(BeFalse())
		Expect(emu.And2(false, true)).To(BeFalse())
		Expect(emu.And2(false, false)).To(BeFalse())
	})
})
