package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipssim/emu"
)

var _ = Describe("RegFile", func() {
	var regFile *emu.RegFile

	BeforeEach(func() {
		regFile = emu.NewRegFile()
	})

	It("should start with every register cleared", func() {
		for i := uint8(0); i < emu.NumRegisters; i++ {
			Expect(regFile.ReadReg(i)).To(BeZero())
		}
	})

	It("should present the selected registers on the read ports", func() {
		regFile.WriteReg(1, 5)
		regFile.WriteReg(2, 7)

		regFile.SetReadRegisters(1, 2)

		Expect(regFile.ReadData1()).To(Equal(uint32(5)))
		Expect(regFile.ReadData2()).To(Equal(uint32(7)))
	})

	It("should hold a staged write until the clock edge", func() {
		regFile.WriteReg(3, 1)

		regFile.SetRegWrite(true)
		regFile.SetWriteRegister(3)
		regFile.SetWriteData(99)

		regFile.SetReadRegisters(3, 3)
		Expect(regFile.ReadData1()).To(Equal(uint32(1)))

		regFile.Clock()
		Expect(regFile.ReadData1()).To(Equal(uint32(99)))
	})

	It("should not write when RegWrite is deasserted", func() {
		regFile.SetRegWrite(false)
		regFile.SetWriteRegister(4)
		regFile.SetWriteData(123)

		regFile.Clock()

		Expect(regFile.ReadReg(4)).To(BeZero())
	})

	It("should commit a staged write only once", func() {
		regFile.SetRegWrite(true)
		regFile.SetWriteRegister(5)
		regFile.SetWriteData(10)
		regFile.Clock()

		regFile.WriteReg(5, 20)
		regFile.Clock()

		Expect(regFile.ReadReg(5)).To(Equal(uint32(20)))
	})

	It("should report the pending write", func() {
		regFile.SetRegWrite(true)
		regFile.SetWriteRegister(6)
		regFile.SetWriteData(66)

		reg, value, ok := regFile.Pending()
		Expect(ok).To(BeTrue())
		Expect(reg).To(Equal(uint8(6)))
		Expect(value).To(Equal(uint32(66)))

		regFile.Clock()
		_, _, ok = regFile.Pending()
		Expect(ok).To(BeFalse())
	})

	It("should keep register 0 at zero", func() {
		regFile.WriteReg(0, 42)
		Expect(regFile.ReadReg(0)).To(BeZero())

		regFile.SetRegWrite(true)
		regFile.SetWriteRegister(0)
		regFile.SetWriteData(42)
		regFile.Clock()
		Expect(regFile.ReadReg(0)).To(BeZero())
	})

	It("should return a snapshot that does not alias the register file", func() {
		regFile.WriteReg(7, 70)
		snapshot := regFile.Snapshot()
		regFile.WriteReg(7, 71)

		Expect(snapshot[7]).To(Equal(uint32(70)))
	})
})

var _ = Describe("Register", func() {
	It("should latch data only on a clock edge with write enabled", func() {
		r := emu.NewRegister(0x100)

		r.SetData(0x200)
		Expect(r.Read()).To(Equal(uint32(0x100)))

		r.Clock()
		Expect(r.Read()).To(Equal(uint32(0x100)))

		r.SetWrite(true)
		r.Clock()
		Expect(r.Read()).To(Equal(uint32(0x200)))
	})

	It("should clear the write enable after a clock edge", func() {
		r := emu.NewRegister(0)
		r.SetData(4)
		r.SetWrite(true)
		r.Clock()

		r.SetData(8)
		r.Clock()

		Expect(r.Read()).To(Equal(uint32(4)))
	})
})
