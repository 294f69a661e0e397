package core_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipssim/insts"
	"github.com/sarchlab/mipssim/timing/core"
)

var _ = Describe("Datapath helpers", func() {
	DescribeTable("SignExtend",
		func(imm uint16, expected int32) {
			Expect(core.SignExtend(imm)).To(Equal(expected))
		},
		Entry("zero", uint16(0x0000), int32(0)),
		Entry("largest positive", uint16(0x7FFF), int32(32767)),
		Entry("smallest negative", uint16(0x8000), int32(-32768)),
		Entry("minus one", uint16(0xFFFF), int32(-1)),
	)

	DescribeTable("BranchAddress",
		func(pc4 uint32, offset int32, expected uint32) {
			Expect(core.BranchAddress(pc4, offset)).To(Equal(expected))
		},
		Entry("forward", uint32(0x104), int32(3), uint32(0x110)),
		Entry("backward", uint32(0x104), int32(-2), uint32(0xFC)),
		Entry("self loop", uint32(0x8), int32(-1), uint32(0x4)),
		Entry("wraps below zero", uint32(0x4), int32(-2), uint32(0xFFFFFFFC)),
	)

	It("should keep the top four bits of PC+4 in a jump", func() {
		j := insts.EncodeJ(insts.OpJ, 0x10)
		Expect(core.JumpAddress(0xA0000004, j)).To(Equal(uint32(0xA0000040)))
		Expect(core.JumpAddress(0x00000004, j)).To(Equal(uint32(0x40)))
	})

	It("should use all 26 target bits", func() {
		j := insts.EncodeJ(insts.OpJ, insts.TargetMask)
		Expect(core.JumpAddress(0x10000000, j)).To(Equal(uint32(0x1FFFFFFC)))
	})
})

var _ = Describe("Mode", func() {
	It("should report set bits", func() {
		m := core.ModePhaseRestricted | core.ModeQuietDecode
		Expect(m.Has(core.ModePhaseRestricted)).To(BeTrue())
		Expect(m.Has(core.ModeQuietDecode)).To(BeTrue())
		Expect(m.Has(core.ModeQuietCycle)).To(BeFalse())
		Expect(core.ModeQuiet.Has(core.ModeQuietExecute)).To(BeTrue())
		Expect(core.ModeQuiet.Has(core.ModePhaseRestricted)).To(BeFalse())
	})
})
