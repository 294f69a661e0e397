package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipssim/emu"
)

var _ = Describe("Memory", func() {
	var m *emu.Memory

	BeforeEach(func() {
		m = emu.NewMemory()
	})

	It("should read zero from untouched addresses", func() {
		v, err := m.Read32(0x8000)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(BeZero())
	})

	It("should store words big-endian", func() {
		Expect(m.Write32(0x100, 0xDEADBEEF)).To(Succeed())

		v, err := m.Read32(0x100)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(uint32(0xDEADBEEF)))

		Expect(m.LoadBytes(0x200, []byte{0x12, 0x34, 0x56, 0x78})).To(Succeed())
		v, err = m.Read32(0x200)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(uint32(0x12345678)))
	})

	It("should read through the ports when MemRead is set", func() {
		Expect(m.Write32(0x40, 77)).To(Succeed())

		m.SetAddress(0x40)
		m.SetMemRead(true)
		m.SetMemWrite(false)
		Expect(m.Run()).To(Succeed())

		Expect(m.Data()).To(Equal(uint32(77)))
	})

	It("should write through the ports when MemWrite is set", func() {
		m.SetAddress(0x44)
		m.SetData(88)
		m.SetMemRead(false)
		m.SetMemWrite(true)
		Expect(m.Run()).To(Succeed())

		v, err := m.Read32(0x44)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(uint32(88)))
	})

	It("should neither read nor write with both controls deasserted", func() {
		Expect(m.Write32(0x48, 5)).To(Succeed())

		m.SetAddress(0x48)
		m.SetData(6)
		m.SetMemRead(false)
		m.SetMemWrite(false)
		Expect(m.Run()).To(Succeed())

		Expect(m.Data()).To(BeZero())
		v, _ := m.Read32(0x48)
		Expect(v).To(Equal(uint32(5)))
	})

	It("should reject a word that runs past the address space", func() {
		_, err := m.Read32(0xFFFFFFFE)
		Expect(err).To(MatchError(emu.ErrAddressOutOfRange))

		Expect(m.Write32(0xFFFFFFFD, 1)).To(MatchError(emu.ErrAddressOutOfRange))
	})

	Describe("address range", func() {
		It("should report an empty memory", func() {
			_, ok := m.EndingAddress()
			Expect(ok).To(BeFalse())
		})

		It("should track the loaded range", func() {
			Expect(m.LoadWords(0x1000, []uint32{1, 2, 3})).To(Succeed())

			end, ok := m.EndingAddress()
			Expect(ok).To(BeTrue())
			Expect(end).To(Equal(uint32(0x1008)))

			start, ok := m.StartingAddress()
			Expect(ok).To(BeTrue())
			Expect(start).To(Equal(uint32(0x1000)))
		})

		It("should list written words in order", func() {
			Expect(m.Write32(0x20, 1)).To(Succeed())
			Expect(m.Write32(0x10, 2)).To(Succeed())
			Expect(m.Write32(0x20, 3)).To(Succeed())

			Expect(m.WrittenAddresses()).To(Equal([]uint32{0x10, 0x20}))
		})

		It("should track every word touched by a byte load", func() {
			Expect(m.LoadBytes(0x102, []byte{1, 2, 3, 4})).To(Succeed())

			Expect(m.WrittenAddresses()).To(Equal([]uint32{0x100, 0x104}))
		})
	})
})
